package fontatlas

import "testing"

func TestVec2_Ops(t *testing.T) {
	a := V2(1, 2)
	b := V2(3, -1)

	if got := a.Add(b); got != (Vec2{4, 1}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec2{-2, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Mul(2); got != (Vec2{2, 4}) {
		t.Errorf("Mul = %v", got)
	}
}

func TestVec4_Rect(t *testing.T) {
	r := Rect(V2(1, 2), V2(5, 8))
	if r != V4(1, 2, 5, 8) {
		t.Errorf("Rect = %v", r)
	}
	if r.LeftTop() != (Vec2{1, 2}) || r.RightBottom() != (Vec2{5, 8}) {
		t.Errorf("corners = %v, %v", r.LeftTop(), r.RightBottom())
	}
	if r.Width() != 4 || r.Height() != 6 {
		t.Errorf("extent = %f x %f", r.Width(), r.Height())
	}
}
