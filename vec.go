package fontatlas

// Vec2 is a 2D vector of float32. Glyph metrics are stored scaled to
// font size 1.0 and vertex channels are single-precision, so float32 is
// the working precision of the whole pipeline.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Vec4 is a 4D vector of float32. The library uses it for rectangles:
// (X, Y) is the left-top corner and (Z, W) the right-bottom corner, for
// both positions and texture coordinates.
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 is a convenience function to create a Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// Rect builds a Vec4 rectangle from two corner points.
func Rect(leftTop, rightBottom Vec2) Vec4 {
	return Vec4{X: leftTop.X, Y: leftTop.Y, Z: rightBottom.X, W: rightBottom.Y}
}

// LeftTop returns the (X, Y) corner.
func (v Vec4) LeftTop() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// RightBottom returns the (Z, W) corner.
func (v Vec4) RightBottom() Vec2 {
	return Vec2{X: v.Z, Y: v.W}
}

// Width returns Z - X.
func (v Vec4) Width() float32 {
	return v.Z - v.X
}

// Height returns W - Y.
func (v Vec4) Height() float32 {
	return v.W - v.Y
}
