package fontatlas

// unknownStr is the name for unknown enum values. No type in the
// package has a String method that returns it.
const unknownStr = "Unknown"

// FontFlags configure atlas construction.
type FontFlags uint32

const (
	// FontBold requests a bold weight from the glyph source.
	FontBold FontFlags = 0x1
	// FontItalic requests an italic slant from the glyph source.
	FontItalic FontFlags = 0x2

	// TextureFromLeftBottom flips the V axis of all texture coordinates
	// so that (0, 0) samples the atlas's bottom-left corner, as in
	// OpenGL. Without this flag (0, 0) is the top-left corner, as in
	// DirectX, Vulkan, and WebGPU.
	TextureFromLeftBottom FontFlags = 0x10
	// TexturePow2 rounds both atlas extents up to powers of two.
	TexturePow2 FontFlags = 0x20
)

// CharRange is an inclusive range of code points to render.
type CharRange struct {
	Lo, Hi rune
}

// Contains reports whether r falls inside the range.
func (c CharRange) Contains(r rune) bool {
	return r >= c.Lo && r <= c.Hi
}

// DefaultCharRange is the range used when FontDesc.CharRanges is empty:
// printable ASCII, 32..127 inclusive.
var DefaultCharRange = CharRange{Lo: 32, Hi: 127}

// FontDesc describes the font to build an atlas for.
type FontDesc struct {
	// FaceName is the logical font family name as known to the glyph
	// source, e.g. "Arial" or "Go".
	FaceName string

	// PixelHeight is the em-box height, in pixels, used during
	// rasterization. All stored metrics are divided by it so drawing at
	// any size is a single multiply.
	PixelHeight int

	// Flags select weight, slant, and texture conventions.
	Flags FontFlags

	// CharSet and PitchAndFamily are opaque hints passed through to the
	// glyph source. Backends that have no use for them ignore them.
	CharSet        uint32
	PitchAndFamily uint32

	// CharRanges lists the inclusive code point ranges to rasterize.
	// When empty, DefaultCharRange is used. Ranges must include ' ',
	// '-' and '?'.
	CharRanges []CharRange
}

// Validate checks the descriptor for structural problems. Build calls
// it; callers may use it to fail early.
func (d *FontDesc) Validate() error {
	if d.FaceName == "" {
		return ErrEmptyFaceName
	}
	if d.PixelHeight <= 0 {
		return ErrInvalidPixelHeight
	}
	if len(d.CharRanges) == 0 {
		return nil
	}
	for _, cr := range d.CharRanges {
		if cr.Lo > cr.Hi {
			return &RangeError{Reason: "lo > hi"}
		}
		if cr.Lo < 0 || cr.Hi >= charCount {
			return &RangeError{Reason: "code point outside [0, 65536)"}
		}
	}
	for _, required := range []rune{' ', '-', '?'} {
		if !d.containsRune(required) {
			return &RangeError{Reason: "missing required character " + string(required)}
		}
	}
	return nil
}

// containsRune reports whether r is in the requested set.
func (d *FontDesc) containsRune(r rune) bool {
	if len(d.CharRanges) == 0 {
		return DefaultCharRange.Contains(r)
	}
	for _, cr := range d.CharRanges {
		if cr.Contains(r) {
			return true
		}
	}
	return false
}

// effectiveRanges returns the requested ranges, substituting the
// default when none were given.
func (d *FontDesc) effectiveRanges() []CharRange {
	if len(d.CharRanges) == 0 {
		return []CharRange{DefaultCharRange}
	}
	return d.CharRanges
}
