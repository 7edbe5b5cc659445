package fontatlas

import (
	"fmt"
	"sort"
)

// charCount is the size of the dense glyph record table. Code points
// outside the Basic Multilingual Plane resolve to the '?' record.
const charCount = 0x10000

// kerningNone marks a glyph record with no kerning entries.
const kerningNone int32 = -1

// GlyphRecord holds everything needed to lay out and draw one code
// point. All metrics are scaled to font size 1.0; multiply by the
// display pixel size at draw time.
type GlyphRecord struct {
	// UVRect is the glyph sprite's texture rectangle: (X, Y) left-top,
	// (Z, W) right-bottom. Meaningless when the glyph has no sprite.
	UVRect Vec4
	// Advance is the horizontal pen step to the next character.
	Advance float32
	// Offset is the displacement from the pen position to the left-top
	// corner of the glyph quad.
	Offset Vec2
	// Size is the extent of the glyph quad.
	Size Vec2

	// kerningFirst indexes the first kerning entry whose First equals
	// this code point, or kerningNone.
	kerningFirst int32
}

// KerningEntry is one pair adjustment, scaled to font size 1.0. The
// table is sorted by (First, Second).
type KerningEntry struct {
	First, Second rune
	Amount        float32
}

// Font is an immutable glyph atlas: a packed coverage texture plus
// per-code-point records and a kerning table. Construct it with Build;
// afterwards it is safe to share read-only across goroutines.
//
// The texture pixel buffer can be released with FreeTextureData once
// uploaded to the GPU; all metrics remain usable for layout.
type Font struct {
	records [charCount]GlyphRecord
	present [charCount]bool
	kerning []KerningEntry
	fillUV  Vec2
	lineGap float32

	texWidth  int
	texHeight int
	rowPitch  int
	pixels    []byte
}

// buildGlyph is per-glyph scratch state during construction.
type buildGlyph struct {
	exists   bool
	w, h     int
	coverage []byte
	texX     int
	texY     int
}

// hasSprite reports whether the glyph has ink to pack.
func (g *buildGlyph) hasSprite() bool {
	return g.exists && g.w > 0 && g.h > 0
}

// Build constructs a Font by pulling glyphs from the source,
// bin-packing their coverage bitmaps into one texture, and indexing
// kerning pairs. It fails with ErrFontNotAvailable, MissingGlyphError,
// or PackingOverflowError; on failure no partial Font is returned.
func Build(desc FontDesc, src GlyphSource) (*Font, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	handle, err := src.Select(desc)
	if err != nil {
		return nil, err
	}
	defer handle.Close() //nolint:errcheck // release-only

	metrics := handle.Metrics()
	sizeInv := 1 / float32(desc.PixelHeight)

	f := &Font{
		lineGap: float32(metrics.LineGap) * sizeInv,
	}

	// Phase 1: collect glyph metrics and coverage bitmaps.
	glyphs := make([]buildGlyph, charCount)
	for _, cr := range desc.effectiveRanges() {
		for r := cr.Lo; r <= cr.Hi; r++ {
			if r == 0 || glyphs[r].exists {
				continue
			}
			data, ok := handle.Glyph(r)
			if !ok {
				continue
			}
			glyphs[r] = buildGlyph{
				exists:   true,
				w:        data.Width,
				h:        data.Height,
				coverage: data.Coverage,
			}
			f.records[r] = GlyphRecord{
				Advance: float32(data.AdvanceX) * sizeInv,
				Offset: Vec2{
					X: float32(data.OriginX) * sizeInv,
					Y: float32(metrics.Ascent-data.OriginY) * sizeInv,
				},
				Size: Vec2{
					X: float32(data.Width) * sizeInv,
					Y: float32(data.Height) * sizeInv,
				},
				kerningFirst: kerningNone,
			}
			f.present[r] = true
		}
	}

	for _, required := range []rune{'?', '-'} {
		if !glyphs[required].hasSprite() {
			return nil, &MissingGlyphError{Rune: required}
		}
	}

	// Phase 2: kerning table.
	f.buildKerning(handle.KerningPairs(), glyphs, sizeInv)

	// Phase 3: shelf packing, tallest sprites first.
	var order []rune
	for r := rune(1); r < charCount; r++ {
		if glyphs[r].hasSprite() {
			order = append(order, r)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return glyphs[order[i]].h > glyphs[order[j]].h
	})

	pow2 := desc.Flags&TexturePow2 != 0
	packer := newShelfPacker(desc.PixelHeight*8, 1, pow2)
	for _, r := range order {
		g := &glyphs[r]
		x, y, ok := packer.place(g.w, g.h)
		if !ok {
			return nil, &PackingOverflowError{
				Rune:        r,
				SpriteWidth: g.w,
				AtlasWidth:  packer.atlasWidth(),
			}
		}
		g.texX, g.texY = x, y
	}

	// Phase 4: allocate, blit, and compute texture coordinates.
	f.texWidth = packer.atlasWidth()
	f.texHeight = packer.height()
	f.rowPitch = alignUp(f.texWidth, 4)
	f.pixels = make([]byte, f.rowPitch*f.texHeight)

	flipV := desc.Flags&TextureFromLeftBottom != 0
	wInv := 1 / float32(f.texWidth)
	hInv := 1 / float32(f.texHeight)
	for _, r := range order {
		g := &glyphs[r]
		f.blitSprite(g)
		uv := Vec4{
			X: float32(g.texX) * wInv,
			Y: float32(g.texY) * hInv,
			Z: float32(g.texX+g.w) * wInv,
			W: float32(g.texY+g.h) * hInv,
		}
		if flipV {
			uv.Y = 1 - uv.Y
			uv.W = 1 - uv.W
		}
		f.records[r].UVRect = uv
	}

	// Phase 5: fill point and '?' aliasing.
	dash := f.records['-'].UVRect
	f.fillUV = Vec2{
		X: (dash.X + dash.Z) * 0.5,
		Y: (dash.Y + dash.W) * 0.5,
	}
	fallback := f.records['?']
	for i := range f.records {
		if !glyphs[i].exists {
			f.records[i] = fallback
		}
	}

	logger().Debug("fontatlas: built atlas",
		"face", desc.FaceName,
		"pixelHeight", desc.PixelHeight,
		"glyphs", len(order),
		"kerningEntries", len(f.kerning),
		"width", f.texWidth,
		"height", f.texHeight)

	return f, nil
}

// buildKerning filters, scales, sorts, and indexes the source kerning
// pairs. Entries referencing glyphs the source rejected are dropped
// silently.
func (f *Font) buildKerning(pairs []SourceKerningPair, glyphs []buildGlyph, sizeInv float32) {
	for _, p := range pairs {
		if p.AmountX == 0 {
			continue
		}
		if p.First <= 0 || p.First >= charCount || p.Second <= 0 || p.Second >= charCount {
			continue
		}
		if !glyphs[p.First].exists || !glyphs[p.Second].exists {
			continue
		}
		f.kerning = append(f.kerning, KerningEntry{
			First:  p.First,
			Second: p.Second,
			Amount: float32(p.AmountX) * sizeInv,
		})
	}

	sort.SliceStable(f.kerning, func(i, j int) bool {
		if f.kerning[i].First != f.kerning[j].First {
			return f.kerning[i].First < f.kerning[j].First
		}
		return f.kerning[i].Second < f.kerning[j].Second
	})

	for i := range f.kerning {
		first := f.kerning[i].First
		if f.records[first].kerningFirst == kerningNone {
			f.records[first].kerningFirst = int32(i)
		}
	}
}

// blitSprite copies one coverage bitmap into the atlas, expanding the
// source's 0..64 quantization to the full 0..255 range.
func (f *Font) blitSprite(g *buildGlyph) {
	srcPitch := alignUp(g.w, 4)
	for y := 0; y < g.h; y++ {
		src := g.coverage[y*srcPitch : y*srcPitch+g.w]
		dst := f.pixels[(g.texY+y)*f.rowPitch+g.texX:]
		for x, v := range src {
			dst[x] = remapCoverage(v)
		}
	}
}

// Record returns the glyph record for a code point. Code points the
// atlas does not cover — including everything outside the Basic
// Multilingual Plane — resolve to the '?' record.
func (f *Font) Record(r rune) *GlyphRecord {
	if r < 0 || r >= charCount {
		r = '?'
	}
	return &f.records[r]
}

// HasGlyph reports whether the code point has its own record rather
// than the '?' fallback.
func (f *Font) HasGlyph(r rune) bool {
	return r >= 0 && r < charCount && f.present[r]
}

// Kerning returns the pair adjustment between first and an immediately
// following second, scaled to font size 1.0. Zero when the pair has no
// entry.
func (f *Font) Kerning(first, second rune) float32 {
	idx := f.Record(first).kerningFirst
	if idx == kerningNone {
		return 0
	}
	for i := int(idx); i < len(f.kerning) && f.kerning[i].First == first; i++ {
		if f.kerning[i].Second == second {
			return f.kerning[i].Amount
		}
		if f.kerning[i].Second > second {
			break
		}
	}
	return 0
}

// KerningScaled returns the pair adjustment in pixels at the given
// font size.
func (f *Font) KerningScaled(first, second rune, fontSize float32) float32 {
	return f.Kerning(first, second) * fontSize
}

// AdvanceOf returns a code point's pen advance scaled to font size 1.0.
func (f *Font) AdvanceOf(r rune) float32 {
	return f.Record(r).Advance
}

// AdvanceOfScaled returns a code point's pen advance in pixels at the
// given font size.
func (f *Font) AdvanceOfScaled(r rune, fontSize float32) float32 {
	return f.Record(r).Advance * fontSize
}

// LineGap returns the extra spacing between lines, scaled to font
// size 1.0.
func (f *Font) LineGap() float32 {
	return f.lineGap
}

// LineGapScaled returns the extra spacing between lines in pixels at
// the given font size.
func (f *Font) LineGapScaled(fontSize float32) float32 {
	return f.lineGap * fontSize
}

// FillUV returns a texture coordinate that is guaranteed opaque (the
// center of the '-' sprite). Decoration and fill quads sample it to
// draw solid rectangles with the same texture bound.
func (f *Font) FillUV() Vec2 {
	return f.fillUV
}

// TextureData returns the atlas pixel buffer and its dimensions.
// Pixels are single-channel coverage, row-major top-down, value 255
// fully opaque; rowPitch is the byte step between rows. After
// FreeTextureData it returns a nil buffer and zero dimensions.
func (f *Font) TextureData() (pixels []byte, width, height, rowPitch int) {
	if f.pixels == nil {
		return nil, 0, 0, 0
	}
	return f.pixels, f.texWidth, f.texHeight, f.rowPitch
}

// FreeTextureData releases the atlas pixel buffer, typically after the
// caller uploaded it to GPU memory. Metrics, kerning, and texture
// coordinates remain valid for layout. Idempotent; must not race with
// readers of the pixel data.
func (f *Font) FreeTextureData() {
	f.pixels = nil
}

// String implements fmt.Stringer for diagnostics.
func (f *Font) String() string {
	return fmt.Sprintf("Font{%dx%d, %d kerning entries}", f.texWidth, f.texHeight, len(f.kerning))
}
