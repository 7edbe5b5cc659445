package fontatlas

import "testing"

func TestShelfPacker_Basic(t *testing.T) {
	p := newShelfPacker(64, 1, false)

	x, y, ok := p.place(10, 8)
	if !ok {
		t.Fatal("first placement failed")
	}
	if x != 2 || y != 1 {
		t.Errorf("first sprite at (%d,%d), want (2,1)", x, y)
	}

	x2, y2, ok := p.place(10, 6)
	if !ok {
		t.Fatal("second placement failed")
	}
	if y2 != 1 || x2 < x+10+1 {
		t.Errorf("second sprite at (%d,%d), want same shelf with margin", x2, y2)
	}

	if h := p.height(); h != 1+8+1 {
		t.Errorf("height = %d, want 10", h)
	}
}

func TestShelfPacker_NewShelf(t *testing.T) {
	p := newShelfPacker(32, 1, false)

	// Fill the first shelf.
	if _, _, ok := p.place(20, 10); !ok {
		t.Fatal("placement failed")
	}
	// Does not fit beside: starts a new shelf below.
	x, y, ok := p.place(20, 5)
	if !ok {
		t.Fatal("placement failed")
	}
	if y < 1+10+1-1 {
		t.Errorf("second sprite at (%d,%d), want a new shelf below y=11", x, y)
	}
	if x != 1 {
		t.Errorf("new shelf x = %d, want 1", x)
	}
}

func TestShelfPacker_Overflow(t *testing.T) {
	p := newShelfPacker(32, 1, false)

	if _, _, ok := p.place(31, 4); ok {
		t.Error("sprite wider than width-2*margin should fail")
	}
	if _, _, ok := p.place(30, 4); !ok {
		t.Error("sprite of exactly width-2*margin should fit")
	}
}

func TestShelfPacker_Pow2(t *testing.T) {
	p := newShelfPacker(48, 1, true)

	if w := p.atlasWidth(); w != 64 {
		t.Errorf("pow2 width = %d, want 64", w)
	}
	p.place(10, 10)
	if h := p.height(); h&(h-1) != 0 {
		t.Errorf("pow2 height = %d, not a power of two", h)
	}
}

func TestShelfPacker_Disjoint(t *testing.T) {
	p := newShelfPacker(40, 1, false)

	type rect struct{ x, y, w, h int }
	sizes := []rect{
		{w: 12, h: 9}, {w: 9, h: 9}, {w: 14, h: 8}, {w: 8, h: 8},
		{w: 11, h: 7}, {w: 12, h: 6}, {w: 5, h: 5}, {w: 20, h: 4},
	}
	var placed []rect
	for i, s := range sizes {
		x, y, ok := p.place(s.w, s.h)
		if !ok {
			t.Fatalf("placement %d failed", i)
		}
		placed = append(placed, rect{x, y, s.w, s.h})
	}

	height := p.height()
	for i, a := range placed {
		if a.x < 0 || a.y < 0 || a.x+a.w > 40 || a.y+a.h > height {
			t.Errorf("sprite %d rect %v outside atlas", i, a)
		}
		for j, b := range placed[i+1:] {
			if a.x-1 < b.x+b.w && b.x-1 < a.x+a.w &&
				a.y-1 < b.y+b.h && b.y-1 < a.y+a.h {
				t.Errorf("sprites %d and %d overlap within margin: %v %v", i, i+1+j, a, b)
			}
		}
	}
}
