package fontatlas

// Decoration line placement, as a fraction of the font size. These
// values are empirical; they match the lines a classic text renderer
// synthesizes under each style.
const (
	decorThickness     = 0.075
	underlinePos       = 0.95
	strikeoutPos       = 0.6
	overlinePos        = 0.05
	doubleThickness    = 0.06666666667
	doubleUnderlinePos = 0.98
)

// FillVertices emits one solid quad covering positions, sampling the
// guaranteed-opaque fill point of the atlas. Useful for drawing plain
// rectangles without switching textures.
func (f *Font) FillVertices(vbFlags VertexBufferFlags, desc *VertexBufferDesc, positions Vec4) {
	w := newQuadWriter(vbFlags, desc)
	w.postQuad(positions, Rect(f.fillUV, f.fillUV))
}

// SingleLineTextVertices emits quads for one left-aligned, top-anchored
// line of text. Fast path equivalent to TextVertices with
// HLeft|VTop|WrapSingleLine.
func (f *Font) SingleLineTextVertices(vbFlags VertexBufferFlags, desc *VertexBufferDesc, pos Vec2, text string, fontSize float32) {
	f.TextVertices(vbFlags, desc, pos, text, fontSize,
		HLeft|VTop|WrapSingleLine, maxTextWidth)
}

// maxTextWidth disables width-driven wrapping.
const maxTextWidth = float32(3.4e38)

// TextVertices lays text out under flags and writes one quad per
// non-space character plus per-line decoration quads into the caller's
// buffers. The number of quads equals QuadCount with the same
// parameters; size the buffers with QuadCountToVertexCount.
func (f *Font) TextVertices(vbFlags VertexBufferFlags, desc *VertexBufferDesc, pos Vec2, text string, fontSize float32, flags Flags, textWidth float32) {
	w := newQuadWriter(vbFlags, desc)
	s := f.SplitLines(text, fontSize, flags, textWidth)

	if flags&VTop != 0 {
		// Stream line by line; the first line's top sits at pos.Y.
		currY := pos.Y
		for {
			line, ok := s.Next()
			if !ok {
				return
			}
			f.emitLine(&w, s.runes, line, pos.X, currY, fontSize, flags)
			currY += (1 + f.lineGap) * fontSize
		}
	}

	// VBottom and VMiddle need the line count before the first quad.
	var lines []Line
	for {
		line, ok := s.Next()
		if !ok {
			break
		}
		lines = append(lines, line)
	}

	currY := pos.Y
	if flags&VBottom != 0 {
		currY -= float32(len(lines)) * fontSize
	} else { // VMiddle
		currY -= float32(len(lines)) * fontSize * 0.5
	}
	for _, line := range lines {
		f.emitLine(&w, s.runes, line, pos.X, currY, fontSize, flags)
		currY += (1 + f.lineGap) * fontSize
	}
}

// emitLine writes one line's character quads and decoration quads.
func (f *Font) emitLine(w *quadWriter, runes []rune, line Line, posX, currY, fontSize float32, flags Flags) {
	var startX float32
	switch {
	case flags&HLeft != 0:
		startX = posX
	case flags&HRight != 0:
		startX = posX - line.Width
	default: // HCenter
		startX = posX - line.Width*0.5
	}

	currX := startX
	var prev rune
	for _, c := range runes[line.Begin:line.End] {
		rec := f.Record(c)
		if c != ' ' {
			w.postQuad(Vec4{
				X: currX + rec.Offset.X*fontSize,
				Y: currY + rec.Offset.Y*fontSize,
				Z: currX + (rec.Offset.X+rec.Size.X)*fontSize,
				W: currY + (rec.Offset.Y+rec.Size.Y)*fontSize,
			}, rec.UVRect)
		}
		currX += rec.Advance * fontSize
		if prev != 0 {
			currX += f.KerningScaled(prev, c, fontSize)
		}
		prev = c
	}

	if flags&decorationMask == 0 {
		return
	}

	fillRect := Rect(f.fillUV, f.fillUV)
	lineX2 := startX + line.Width

	if flags&DoubleUnderline != 0 {
		y2 := currY + fontSize*doubleUnderlinePos
		y1 := y2 - fontSize*doubleThickness
		w.postQuad(Vec4{X: startX, Y: y1, Z: lineX2, W: y2}, fillRect)
		y1 -= fontSize * doubleThickness * 2
		y2 -= fontSize * doubleThickness * 2
		w.postQuad(Vec4{X: startX, Y: y1, Z: lineX2, W: y2}, fillRect)
	} else if flags&Underline != 0 {
		y2 := currY + fontSize*underlinePos
		y1 := y2 - fontSize*decorThickness
		w.postQuad(Vec4{X: startX, Y: y1, Z: lineX2, W: y2}, fillRect)
	}
	if flags&Overline != 0 {
		y1 := currY + fontSize*overlinePos
		y2 := y1 + fontSize*decorThickness
		w.postQuad(Vec4{X: startX, Y: y1, Z: lineX2, W: y2}, fillRect)
	}
	if flags&Strikeout != 0 {
		y1 := currY + fontSize*strikeoutPos
		y2 := y1 + fontSize*decorThickness
		w.postQuad(Vec4{X: startX, Y: y1, Z: lineX2, W: y2}, fillRect)
	}
}
