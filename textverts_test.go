package fontatlas

import (
	"testing"
)

// stubFont builds a Font with known geometry: pixel height 10,
// ascent 8, glyphs 'A'/'V'/'W' 5-6 px wide with advance width+1.
func stubFont(t *testing.T) *Font {
	t.Helper()

	src := &stubSource{glyphs: map[rune]GlyphData{
		'?': stubGlyph(4, 6),
		'-': stubGlyph(4, 2),
		' ': {AdvanceX: 3},
		'A': stubGlyph(5, 6),
		'V': stubGlyph(5, 6),
		'W': stubGlyph(6, 6),
	}}
	f, err := Build(FontDesc{FaceName: "Stub", PixelHeight: 10}, src)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return f
}

func TestTextVertices_GlyphQuad(t *testing.T) {
	f := stubFont(t)
	flags := TriangleList | UseIndexBuffer16Bit
	desc := testBuffers(flags, 1)

	// 'A' is 5x6 px at height 10, origin on the baseline at ascent 8:
	// offset (0, 0.2), size (0.5, 0.6), drawn at size 10.
	f.TextVertices(flags, desc, Vec2{}, "A", 10, WrapSingleLine|HLeft|VTop, 0)

	lt, ltTC := vertexAt(desc, 0)
	rb, _ := vertexAt(desc, 3)
	if lt != (Vec2{0, 2}) {
		t.Errorf("LT = %v, want {0 2}", lt)
	}
	if rb != (Vec2{5, 8}) {
		t.Errorf("RB = %v, want {5 8}", rb)
	}
	if ltTC != (Vec2{f.Record('A').UVRect.X, f.Record('A').UVRect.Y}) {
		t.Errorf("LT tc = %v, want glyph uv corner", ltTC)
	}
}

func TestTextVertices_SkipsSpaces(t *testing.T) {
	f := stubFont(t)
	flags := TriangleList
	quads := f.QuadCount("A A", 10, WrapSingleLine|HLeft|VTop, 0)
	if quads != 2 {
		t.Fatalf("QuadCount = %d, want 2", quads)
	}
	desc := testBuffers(flags, quads)
	f.TextVertices(flags, desc, Vec2{}, "A A", 10, WrapSingleLine|HLeft|VTop, 0)

	// Second 'A' starts after advance(A) + advance(space) = 6 + 3 px.
	lt, _ := vertexAt(desc, 6)
	if lt != (Vec2{9, 2}) {
		t.Errorf("second glyph LT = %v, want {9 2}", lt)
	}
}

func TestTextVertices_Underline(t *testing.T) {
	f := stubFont(t)
	flags := TriangleList
	desc := testBuffers(flags, 1)

	// A space-only line emits just the decoration quad, spanning the
	// line width (space advance 0.3 * size).
	f.TextVertices(flags, desc, Vec2{}, " ", 10, WrapSingleLine|HLeft|VTop|Underline, 0)

	lt, tc := vertexAt(desc, 0)
	rb, _ := vertexAt(desc, 5)
	if !approx(lt.X, 0, 1e-5) || !approx(lt.Y, 9.5-0.75, 1e-5) {
		t.Errorf("underline LT = %v, want {0 8.75}", lt)
	}
	if !approx(rb.X, 3, 1e-5) || !approx(rb.Y, 9.5, 1e-5) {
		t.Errorf("underline RB = %v, want {3 9.5}", rb)
	}
	if tc != f.FillUV() {
		t.Errorf("underline tc = %v, want fill uv %v", tc, f.FillUV())
	}
}

func TestTextVertices_DoubleUnderlineWins(t *testing.T) {
	f := stubFont(t)
	flags := TriangleList
	layout := WrapSingleLine | HLeft | VTop | Underline | DoubleUnderline

	quads := f.QuadCount(" ", 10, layout, 0)
	if quads != 2 {
		t.Fatalf("QuadCount = %d, want 2 (double underline wins)", quads)
	}
	desc := testBuffers(flags, quads)
	f.TextVertices(flags, desc, Vec2{}, " ", 10, layout, 0)

	// First line at 0.98, second 0.13333 above it.
	_, y2a := cornerYs(desc, 0)
	if !approx(y2a, 9.8, 1e-4) {
		t.Errorf("first double underline bottom = %f, want 9.8", y2a)
	}
	_, y2b := cornerYs(desc, 1)
	if !approx(y2b, 9.8-10*doubleThickness*2, 1e-4) {
		t.Errorf("second double underline bottom = %f", y2b)
	}
}

// cornerYs returns quad q's top and bottom Y under unindexed
// TriangleList layout.
func cornerYs(desc *VertexBufferDesc, q int) (top, bottom float32) {
	lt, _ := vertexAt(desc, q*6)
	rb, _ := vertexAt(desc, q*6+5)
	return lt.Y, rb.Y
}

func TestTextVertices_OverlineStrikeout(t *testing.T) {
	f := stubFont(t)
	flags := TriangleList
	layout := WrapSingleLine | HLeft | VTop | Overline | Strikeout

	quads := f.QuadCount(" ", 10, layout, 0)
	if quads != 2 {
		t.Fatalf("QuadCount = %d, want 2", quads)
	}
	desc := testBuffers(flags, quads)
	f.TextVertices(flags, desc, Vec2{}, " ", 10, layout, 0)

	top, bottom := cornerYs(desc, 0)
	if !approx(top, 0.5, 1e-5) || !approx(bottom, 0.5+0.75, 1e-5) {
		t.Errorf("overline = [%f, %f], want [0.5, 1.25]", top, bottom)
	}
	top, bottom = cornerYs(desc, 1)
	if !approx(top, 6, 1e-5) || !approx(bottom, 6.75, 1e-5) {
		t.Errorf("strikeout = [%f, %f], want [6, 6.75]", top, bottom)
	}
}

func TestTextVertices_Alignment(t *testing.T) {
	f := stubFont(t)
	flags := TriangleList
	width := f.SingleLineWidth("A", 10)

	// HRight: the line ends at the anchor.
	desc := testBuffers(flags, 1)
	f.TextVertices(flags, desc, Vec2{X: 100}, "A", 10, WrapSingleLine|HRight|VTop, 0)
	lt, _ := vertexAt(desc, 0)
	if !approx(lt.X, 100-width, 1e-4) {
		t.Errorf("HRight LT.X = %f, want %f", lt.X, 100-width)
	}

	// HCenter: the line is centered on the anchor.
	desc = testBuffers(flags, 1)
	f.TextVertices(flags, desc, Vec2{X: 100}, "A", 10, WrapSingleLine|HCenter|VTop, 0)
	lt, _ = vertexAt(desc, 0)
	if !approx(lt.X, 100-width/2, 1e-4) {
		t.Errorf("HCenter LT.X = %f, want %f", lt.X, 100-width/2)
	}
}

func TestTextVertices_VerticalAlignment(t *testing.T) {
	f := stubFont(t)
	flags := TriangleList

	// VBottom with one line starts the line at anchor - size.
	desc := testBuffers(flags, 1)
	f.TextVertices(flags, desc, Vec2{Y: 50}, "A", 10, WrapSingleLine|HLeft|VBottom, 0)
	lt, _ := vertexAt(desc, 0)
	if !approx(lt.Y, 50-10+2, 1e-4) {
		t.Errorf("VBottom LT.Y = %f, want 42", lt.Y)
	}

	// VMiddle centers the block.
	desc = testBuffers(flags, 1)
	f.TextVertices(flags, desc, Vec2{Y: 50}, "A", 10, WrapSingleLine|HLeft|VMiddle, 0)
	lt, _ = vertexAt(desc, 0)
	if !approx(lt.Y, 50-5+2, 1e-4) {
		t.Errorf("VMiddle LT.Y = %f, want 47", lt.Y)
	}
}

func TestSingleLineTextVertices(t *testing.T) {
	f := stubFont(t)
	flags := TriangleList

	a := testBuffers(flags, 2)
	f.SingleLineTextVertices(flags, a, Vec2{X: 5, Y: 7}, "AV", 10)

	b := testBuffers(flags, 2)
	f.TextVertices(flags, b, Vec2{X: 5, Y: 7}, "AV", 10, HLeft|VTop|WrapSingleLine, maxTextWidth)

	for i := 0; i < 12; i++ {
		pa, ta := vertexAt(a, i)
		pb, tb := vertexAt(b, i)
		if pa != pb || ta != tb {
			t.Fatalf("vertex %d differs: (%v,%v) vs (%v,%v)", i, pa, ta, pb, tb)
		}
	}
}

func TestTextVertices_CountMatchesEmission(t *testing.T) {
	f := testFont(t, 32, 0)

	texts := []string{
		"Hello, world",
		"one two three four five",
		"line one\nline two\n",
		"   ",
		"wrap me somewhere sensible please",
	}
	layouts := []Flags{
		WrapSingleLine | HLeft | VTop,
		WrapNormal | HCenter | VMiddle | Underline,
		WrapWord | HRight | VBottom | DoubleUnderline | Strikeout,
		WrapChar | HLeft | VTop | Overline,
	}
	formats := []VertexBufferFlags{
		TriangleList,
		TriangleList | UseIndexBuffer16Bit,
		TriangleStripWithRestartIndex | UseIndexBuffer32Bit,
		TriangleStripWithDegenerateTriangles,
		TriangleStripWithDegenerateTriangles | UseIndexBuffer16Bit,
	}

	for _, text := range texts {
		for _, layout := range layouts {
			quads := f.QuadCount(text, 14, layout, 120)
			for _, format := range formats {
				if quads == 0 {
					continue
				}
				desc := testBuffers(format, quads)
				fillPattern(desc.Positions)
				fillPattern(desc.Indices)

				// Buffers are sized exactly from QuadCount; writing one
				// quad too many would panic, one too few leaves the
				// sentinel pattern in the final slot.
				f.TextVertices(format, desc, Vec2{X: 10, Y: 10}, text, 14, layout, 120)

				vcount, icount := QuadCountToVertexCount(format, quads)
				if isPattern(desc.Positions[(vcount-1)*desc.PositionStride : (vcount-1)*desc.PositionStride+8]) {
					t.Errorf("%q %#x %#x: last vertex not written", text, layout, format)
				}
				if icount > 0 {
					isz := 2
					if format&UseIndexBuffer32Bit != 0 {
						isz = 4
					}
					if isPattern(desc.Indices[(icount-1)*isz : icount*isz]) {
						t.Errorf("%q %#x %#x: last index not written", text, layout, format)
					}
				}
			}
		}
	}
}

// fillPattern fills a buffer with a sentinel byte.
func fillPattern(buf []byte) {
	for i := range buf {
		buf[i] = 0xAA
	}
}

// isPattern reports whether a buffer still holds only the sentinel.
func isPattern(buf []byte) bool {
	for _, b := range buf {
		if b != 0xAA {
			return false
		}
	}
	return true
}
