package fontatlas

import "iter"

// Line is one line produced by line splitting. Begin and End are rune
// indices into the split text (End exclusive, line terminators not
// included); Width is the line's advance width in pixels, kerning
// included.
type Line struct {
	Begin, End int
	Width      float32
}

// LineSplitter iterates the lines of a text under a wrap mode. Create
// one with Font.SplitLines and call Next until it reports false.
//
// The zero width limit cases: WrapSingleLine and WrapNormal ignore
// textWidth entirely; WrapChar and WrapWord break when the running
// width would exceed it. The first character of a line is always
// accepted so iteration is guaranteed to terminate.
type LineSplitter struct {
	font      *Font
	runes     []rune
	fontSize  float32
	flags     Flags
	textWidth float32
	index     int
}

// SplitLines creates a line splitter over text. Only the wrap bits of
// flags have meaning here.
func (f *Font) SplitLines(text string, fontSize float32, flags Flags, textWidth float32) *LineSplitter {
	return &LineSplitter{
		font:      f,
		runes:     []rune(text),
		fontSize:  fontSize,
		flags:     flags,
		textWidth: textWidth,
	}
}

// Runes returns the rune view of the text that Line indices refer to.
func (s *LineSplitter) Runes() []rune {
	return s.runes
}

// Next returns the next line, or ok == false at the end of the text.
func (s *LineSplitter) Next() (line Line, ok bool) {
	n := len(s.runes)
	if s.index >= n {
		return Line{}, false
	}

	begin := s.index

	// Single line: one pass over the whole text, no wrap state.
	if s.flags&WrapSingleLine != 0 {
		var width float32
		var prev rune
		for s.index < n {
			c := s.runes[s.index]
			width += s.font.Record(c).Advance
			if prev != 0 {
				width += s.font.Kerning(prev, c)
			}
			prev = c
			s.index++
		}
		return Line{Begin: begin, End: s.index, Width: width * s.fontSize}, true
	}

	var width float32
	var prev rune
	// Last space seen on this line and the width accumulated before
	// it, for rewinding on word-boundary breaks.
	lastSpace := -1
	var widthAtSpace float32
	end := n

	for {
		if s.index >= n {
			end = n
			break
		}
		c := s.runes[s.index]

		if c == '\n' {
			end = s.index
			s.index++
			break
		}
		if c == '\r' {
			end = s.index
			s.index++
			if s.index < n && s.runes[s.index] == '\n' {
				s.index++
			}
			break
		}

		charWidth := s.font.Record(c).Advance * s.fontSize
		var kern float32
		if prev != 0 {
			kern = s.font.KerningScaled(prev, c, s.fontSize)
		}

		// Accept the character when wrapping is off, when it fits, or
		// when it is the first character of the line (otherwise a
		// too-narrow limit would loop forever).
		if s.flags&WrapNormal != 0 || width+charWidth+kern <= s.textWidth || s.index == begin {
			if c == ' ' {
				lastSpace = s.index
				widthAtSpace = width
			}
			width += charWidth + kern
			s.index++
		} else {
			// The overflowing character is a space: swallow it into
			// the break.
			if c == ' ' {
				end = s.index
				s.index++
				break
			}
			// The character right before it is a space: the split
			// lands retroactively on that space.
			if s.index > begin && s.runes[s.index-1] == ' ' {
				end = lastSpace
				width = widthAtSpace
				break
			}
			// Word wrap rewinds to the last space seen, if any.
			if s.flags&WrapWord != 0 && lastSpace >= 0 {
				end = lastSpace
				s.index = lastSpace + 1
				width = widthAtSpace
				break
			}
			// Character-boundary break.
			end = s.index
			break
		}
		prev = c
	}

	return Line{Begin: begin, End: end, Width: width}, true
}

// Lines returns an iterator over the lines of text. Equivalent to
// driving a LineSplitter manually.
func (f *Font) Lines(text string, fontSize float32, flags Flags, textWidth float32) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		s := f.SplitLines(text, fontSize, flags, textWidth)
		for {
			line, ok := s.Next()
			if !ok {
				return
			}
			if !yield(line) {
				return
			}
		}
	}
}

// SingleLineWidth returns the advance width of text drawn as a single
// line at the given font size, kerning included. Line terminators are
// measured like any other character.
func (f *Font) SingleLineWidth(text string, fontSize float32) float32 {
	return f.singleLineWidthRunes([]rune(text)) * fontSize
}

// singleLineWidthRunes sums advances and kerning, scaled to font
// size 1.0.
func (f *Font) singleLineWidthRunes(runes []rune) float32 {
	var width float32
	var prev rune
	for _, c := range runes {
		width += f.Record(c).Advance
		if prev != 0 {
			width += f.Kerning(prev, c)
		}
		prev = c
	}
	return width
}

// TextExtent returns the width and height of text drawn with the given
// parameters: the widest line, and line count plus inter-line gaps
// scaled to the font size.
func (f *Font) TextExtent(text string, fontSize float32, flags Flags, textWidth float32) Vec2 {
	if text == "" || fontSize == 0 {
		return Vec2{}
	}

	var extent Vec2
	var lineCount float32
	s := f.SplitLines(text, fontSize, flags, textWidth)
	for {
		line, ok := s.Next()
		if !ok {
			break
		}
		lineCount++
		if line.Width > extent.X {
			extent.X = line.Width
		}
	}
	if lineCount > 0 {
		extent.Y = (lineCount + (lineCount-1)*f.lineGap) * fontSize
	}
	return extent
}

// SingleLineQuadCount returns the number of quads needed to draw text
// as one line: one per non-space character plus the line's decoration
// quads. Only the decoration bits of flags have meaning.
func (f *Font) SingleLineQuadCount(text string, flags Flags) int {
	count := 0
	for _, c := range text {
		if c != ' ' {
			count++
		}
	}
	return count + decorationQuadCount(flags)
}

// QuadCount returns the number of quads TextVertices will emit for the
// same parameters: one per non-space character of every produced line,
// plus per-line decoration quads.
func (f *Font) QuadCount(text string, fontSize float32, flags Flags, textWidth float32) int {
	count := 0
	lineCount := 0
	s := f.SplitLines(text, fontSize, flags, textWidth)
	for {
		line, ok := s.Next()
		if !ok {
			break
		}
		for _, c := range s.runes[line.Begin:line.End] {
			if c != ' ' {
				count++
			}
		}
		lineCount++
	}
	return count + lineCount*decorationQuadCount(flags)
}

// decorationQuadCount returns the number of decoration quads per line.
// DoubleUnderline takes precedence over Underline.
func decorationQuadCount(flags Flags) int {
	count := 0
	if flags&DoubleUnderline != 0 {
		count += 2
	} else if flags&Underline != 0 {
		count++
	}
	if flags&Overline != 0 {
		count++
	}
	if flags&Strikeout != 0 {
		count++
	}
	return count
}
