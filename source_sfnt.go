package fontatlas

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SourceOption configures an SFNTSource.
type SourceOption func(*sourceConfig)

// sourceConfig holds SFNTSource configuration.
type sourceConfig struct {
	// gotextKerning enables the HarfBuzz pair prober for faces whose
	// legacy kern table is empty.
	gotextKerning bool

	// kerningProbeLimit bounds the number of distinct runes the pair
	// probers are willing to handle. Probing is quadratic in the size
	// of the requested set.
	kerningProbeLimit int
}

// defaultSourceConfig returns the default SFNTSource configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		gotextKerning:     false,
		kerningProbeLimit: 512,
	}
}

// WithGoTextKerning enables GPOS-aware kerning via go-text/typesetting's
// HarfBuzz shaper. The sfnt parser only reads the legacy kern table;
// many modern fonts carry kerning exclusively in GPOS. With this option
// the source falls back to shaping glyph pairs when the kern table
// yields nothing.
func WithGoTextKerning() SourceOption {
	return func(c *sourceConfig) {
		c.gotextKerning = true
	}
}

// WithKerningProbeLimit overrides the maximum number of distinct runes
// the kerning probers accept before giving up. Probing is quadratic;
// the default is 512.
func WithKerningProbeLimit(n int) SourceOption {
	return func(c *sourceConfig) {
		if n > 0 {
			c.kerningProbeLimit = n
		}
	}
}

// SFNTSource is the default GlyphSource. It parses TTF/OTF font data
// with golang.org/x/image and rasterizes antialiased coverage masks in
// pure Go. One source can hold several faces; Select matches them by
// family name and style.
//
// SFNTSource is safe for concurrent use once constructed; the handles
// it produces are not.
type SFNTSource struct {
	faces  []*sfntFaceEntry
	config sourceConfig
}

// sfntFaceEntry is one parsed face inside an SFNTSource.
type sfntFaceEntry struct {
	data   []byte
	font   *sfnt.Font
	family string
	full   string
}

// NewSFNTSource creates a source from TTF or OTF font data. The data
// slice is retained; it must not be modified afterwards. More faces can
// be registered with AddFace.
func NewSFNTSource(data []byte, opts ...SourceOption) (*SFNTSource, error) {
	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}
	s := &SFNTSource{config: config}
	if err := s.AddFace(data); err != nil {
		return nil, err
	}
	return s, nil
}

// AddFace parses and registers another face with the source.
func (s *SFNTSource) AddFace(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyFontData
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("fontatlas: failed to parse font: %w", err)
	}
	entry := &sfntFaceEntry{data: data, font: f}
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil {
		entry.family = name
	}
	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil {
		entry.full = name
	}
	s.faces = append(s.faces, entry)
	return nil
}

// FaceNames returns the family names of all registered faces, in
// registration order.
func (s *SFNTSource) FaceNames() []string {
	names := make([]string, 0, len(s.faces))
	for _, entry := range s.faces {
		names = append(names, entry.family)
	}
	return names
}

// Select implements GlyphSource. It matches desc.FaceName against the
// registered faces' family and full names (case-insensitive). Among
// family matches, a face whose full name mentions the requested bold or
// italic style is preferred; plain family matches are the fallback.
func (s *SFNTSource) Select(desc FontDesc) (SourceHandle, error) {
	entry := s.match(desc)
	if entry == nil {
		return nil, fmt.Errorf("%w: %q", ErrFontNotAvailable, desc.FaceName)
	}

	face, err := opentype.NewFace(entry.font, &opentype.FaceOptions{
		Size:    float64(desc.PixelHeight),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrFontNotAvailable, desc.FaceName, err)
	}

	return &sfntHandle{
		entry:  entry,
		face:   face,
		desc:   desc,
		config: s.config,
	}, nil
}

// match finds the best face entry for the descriptor.
func (s *SFNTSource) match(desc FontDesc) *sfntFaceEntry {
	var fallback *sfntFaceEntry
	for _, entry := range s.faces {
		if !strings.EqualFold(entry.family, desc.FaceName) &&
			!strings.EqualFold(entry.full, desc.FaceName) {
			continue
		}
		if styleMatches(entry.full, desc.Flags) {
			return entry
		}
		if fallback == nil {
			fallback = entry
		}
	}
	return fallback
}

// styleMatches reports whether a face's full name agrees with the
// requested bold/italic flags.
func styleMatches(fullName string, flags FontFlags) bool {
	full := strings.ToLower(fullName)
	wantBold := flags&FontBold != 0
	wantItalic := flags&FontItalic != 0
	return wantBold == strings.Contains(full, "bold") &&
		wantItalic == strings.Contains(full, "italic")
}

// sfntHandle is the rasterization context produced by SFNTSource.
// It is not safe for concurrent use.
type sfntHandle struct {
	entry  *sfntFaceEntry
	face   font.Face
	desc   FontDesc
	config sourceConfig
	buf    sfnt.Buffer
}

// Metrics implements SourceHandle.
func (h *sfntHandle) Metrics() SourceMetrics {
	m := h.face.Metrics()
	ascent := m.Ascent.Ceil()
	descent := m.Descent.Ceil()
	lineGap := (m.Height - m.Ascent - m.Descent).Round()
	if lineGap < 0 {
		lineGap = 0
	}
	return SourceMetrics{
		Ascent:  ascent,
		Descent: descent,
		LineGap: lineGap,
	}
}

// Glyph implements SourceHandle. The coverage bitmap is rasterized with
// a font.Drawer into an alpha mask and quantized to the 0..64 range the
// atlas builder expects.
func (h *sfntHandle) Glyph(r rune) (GlyphData, bool) {
	gid, err := h.entry.font.GlyphIndex(&h.buf, r)
	if err != nil || gid == 0 {
		return GlyphData{}, false
	}

	bounds, advance, ok := h.face.GlyphBounds(r)
	if !ok {
		return GlyphData{}, false
	}

	minX := bounds.Min.X.Floor()
	minY := bounds.Min.Y.Floor()
	maxX := bounds.Max.X.Ceil()
	maxY := bounds.Max.Y.Ceil()
	w := maxX - minX
	h2 := maxY - minY

	data := GlyphData{
		AdvanceX: advance.Round(),
		OriginX:  minX,
		OriginY:  -minY,
	}
	if w <= 0 || h2 <= 0 {
		return data, true
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h2))
	drawer := &font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: h.face,
		Dot:  fixed.Point26_6{X: fixed.I(-minX), Y: fixed.I(-minY)},
	}
	drawer.DrawString(string(r))

	data.Width = w
	data.Height = h2
	data.Coverage = quantizeCoverage(mask, w, h2)
	return data, true
}

// quantizeCoverage copies an alpha mask into a fresh buffer with rows
// padded to a multiple of 4, squeezing 0..255 alpha into 0..64.
func quantizeCoverage(mask *image.Alpha, w, h int) []byte {
	pitch := alignUp(w, 4)
	out := make([]byte, pitch*h)
	for y := 0; y < h; y++ {
		srcRow := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		dstRow := out[y*pitch : y*pitch+w]
		for x, a := range srcRow {
			dstRow[x] = byte((int(a)*maxSourceCoverage + 127) / 255)
		}
	}
	return out
}

// KerningPairs implements SourceHandle. Pairs are probed over the
// requested character set via the face's kern table; when that yields
// nothing and GPOS kerning is enabled, the HarfBuzz prober takes over.
func (h *sfntHandle) KerningPairs() []SourceKerningPair {
	runes := h.presentRunes()
	if len(runes) > h.config.kerningProbeLimit {
		logger().Warn("fontatlas: requested set too large for kerning probe, skipping",
			"runes", len(runes), "limit", h.config.kerningProbeLimit)
		return nil
	}

	var pairs []SourceKerningPair
	for _, first := range runes {
		for _, second := range runes {
			amount := h.face.Kern(first, second).Round()
			if amount != 0 {
				pairs = append(pairs, SourceKerningPair{
					First:   first,
					Second:  second,
					AmountX: amount,
				})
			}
		}
	}

	if len(pairs) == 0 && h.config.gotextKerning {
		gtPairs, err := probeGoTextKerning(h.entry.data, h.desc.PixelHeight, runes)
		if err != nil {
			logger().Warn("fontatlas: gotext kerning probe failed", "error", err)
			return nil
		}
		pairs = gtPairs
	}
	return pairs
}

// presentRunes lists the requested code points that have glyphs.
func (h *sfntHandle) presentRunes() []rune {
	var runes []rune
	for _, cr := range h.desc.effectiveRanges() {
		for r := cr.Lo; r <= cr.Hi; r++ {
			if gid, err := h.entry.font.GlyphIndex(&h.buf, r); err == nil && gid != 0 {
				runes = append(runes, r)
			}
		}
	}
	return runes
}

// Close implements SourceHandle.
func (h *sfntHandle) Close() error {
	return h.face.Close()
}

// alignUp rounds val up to the nearest multiple of align.
func alignUp(val, align int) int {
	return (val + align - 1) / align * align
}

// nextPow2 returns the smallest power of two greater or equal to v.
func nextPow2(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}
