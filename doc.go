// Package fontatlas builds grayscale glyph atlas textures and emits
// vertex/index buffer data for GPU text rendering.
//
// # Overview
//
// fontatlas turns a font face at a fixed pixel size into a single
// 8-bit coverage texture packed with glyph sprites, plus per-code-point
// metrics and kerning tables. On top of that immutable Font object it
// provides text layout (word wrap, alignment, extents, hit testing) and
// quad emission into caller-supplied interleaved vertex/index memory.
// The graphics API that uploads the texture and draws the vertices is
// deliberately out of scope: outputs are plain bytes.
//
// # Quick Start
//
//	src, err := fontatlas.NewSFNTSource(ttfData)
//	if err != nil { ... }
//
//	font, err := fontatlas.Build(fontatlas.FontDesc{
//	    FaceName:    "Go",
//	    PixelHeight: 32,
//	}, src)
//	if err != nil { ... }
//
//	// Upload font.TextureData() to the GPU, then:
//	quads := font.QuadCount(text, 24, flags, maxWidth)
//	verts, idx := fontatlas.QuadCountToVertexCount(vbFlags, quads)
//	// ... allocate buffers, then:
//	font.TextVertices(vbFlags, desc, pos, text, 24, flags, maxWidth)
//
// # Architecture
//
// The library is organized into three layers:
//   - GlyphSource: pluggable adapter over a font rasterizer. The default
//     backend parses TTF/OTF via golang.org/x/image and rasterizes
//     antialiased coverage masks; kerning can optionally be probed
//     through go-text/typesetting's HarfBuzz shaper for GPOS-only fonts.
//   - Font: one-shot atlas construction (collection, kerning, shelf
//     packing, blitting), immutable and safe to share across goroutines.
//   - Layout & emission: stateless reads over a Font that split lines,
//     measure text, hit-test, and write quads under six vertex/index
//     buffer formats.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X right, Y down. Texture coordinates are
// normalized to [0,1] and top-down by default; TextureFromLeftBottom
// pre-flips the V axis for OpenGL-style sampling. All stored glyph
// metrics are scaled to font size 1.0 so drawing at any pixel size is a
// single multiply.
package fontatlas
