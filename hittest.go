package fontatlas

// HitTestSingleLine finds the character of a single-line text under
// the point hitX, given the line's anchor posX and its horizontal
// alignment. It returns the rune index, the normalized position inside
// that character's cell in [0, 1), and ok == false when hitX falls
// outside the run. Only the horizontal alignment bits of flags have
// meaning.
func (f *Font) HitTestSingleLine(posX, hitX float32, text string, fontSize float32, flags Flags) (index int, percent float32, ok bool) {
	return f.hitTestLine([]rune(text), posX, hitX, fontSize, flags)
}

// hitTestLine is the rune-slice core of HitTestSingleLine, shared with
// the multi-line hit test.
func (f *Font) hitTestLine(runes []rune, posX, hitX float32, fontSize float32, flags Flags) (int, float32, bool) {
	switch {
	case flags&HRight != 0:
		return f.hitTestRight(runes, posX, hitX, fontSize)
	case flags&HCenter != 0:
		posX -= f.singleLineWidthRunes(runes) * fontSize * 0.5
		fallthrough
	default:
		return f.hitTestLeft(runes, posX, hitX, fontSize)
	}
}

// hitTestLeft scans cells left to right from posX.
func (f *Font) hitTestLeft(runes []rune, posX, hitX float32, fontSize float32) (int, float32, bool) {
	currX := posX
	if hitX < currX {
		return 0, 0, false
	}
	var prev rune
	for i, c := range runes {
		charWidth := f.AdvanceOfScaled(c, fontSize)
		var kern float32
		if prev != 0 {
			kern = f.KerningScaled(prev, c, fontSize)
		}
		newX := currX + charWidth
		if hitX < newX {
			return i, (hitX - currX) / charWidth, true
		}
		currX = newX + kern
		prev = c
	}
	return 0, 0, false
}

// hitTestRight scans cells right to left from posX.
func (f *Font) hitTestRight(runes []rune, posX, hitX float32, fontSize float32) (int, float32, bool) {
	currX := posX
	if hitX > currX {
		return 0, 0, false
	}
	var prev rune
	for i := len(runes) - 1; i >= 0; i-- {
		c := runes[i]
		charWidth := f.AdvanceOfScaled(c, fontSize)
		var kern float32
		if prev != 0 {
			kern = f.KerningScaled(c, prev, fontSize)
		}
		newX := currX - charWidth
		if hitX >= newX {
			return i, (hitX - newX) / charWidth, true
		}
		currX = newX - kern
		prev = c
	}
	return 0, 0, false
}

// HitTest finds the character of a multi-line text under the point
// hit, given the text block anchor pos and the full layout flags. It
// returns the rune index into text, the normalized position inside the
// character's cell, and ok == false on a miss.
//
// The returned percent.Y can fall outside [0, 1] when the hit lands in
// the gap between two lines: each line's vertical band extends halfway
// into the following gap.
func (f *Font) HitTest(pos, hit Vec2, text string, fontSize float32, flags Flags, textWidth float32) (index int, percent Vec2, ok bool) {
	s := f.SplitLines(text, fontSize, flags, textWidth)

	if flags&VTop != 0 {
		currY := pos.Y
		if hit.Y < currY {
			return 0, Vec2{}, false
		}
		for {
			line, lineOK := s.Next()
			if !lineOK {
				return 0, Vec2{}, false
			}
			if hit.Y < currY+(1+f.lineGap*0.5)*fontSize {
				return f.hitTestFoundLine(s.runes, line, pos.X, hit, currY, fontSize, flags)
			}
			currY += (1 + f.lineGap) * fontSize
		}
	}

	// VBottom and VMiddle need the line count up front.
	var lines []Line
	for {
		line, lineOK := s.Next()
		if !lineOK {
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

	if hit.Y < currY {
		return 0, Vec2{}, false
	}
	for _, line := range lines {
		if hit.Y < currY+(1+f.lineGap*0.5)*fontSize {
			return f.hitTestFoundLine(s.runes, line, pos.X, hit, currY, fontSize, flags)
		}
		currY += (1 + f.lineGap) * fontSize
	}
	return 0, Vec2{}, false
}

// hitTestFoundLine delegates the X axis to the single-line hit test
// once the vertical band is known.
func (f *Font) hitTestFoundLine(runes []rune, line Line, posX float32, hit Vec2, lineY, fontSize float32, flags Flags) (int, Vec2, bool) {
	idx, px, ok := f.hitTestLine(runes[line.Begin:line.End], posX, hit.X, fontSize, flags)
	if !ok {
		return 0, Vec2{}, false
	}
	return line.Begin + idx, Vec2{X: px, Y: (hit.Y - lineY) / fontSize}, true
}
