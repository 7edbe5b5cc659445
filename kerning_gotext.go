package fontatlas

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// probeGoTextKerning extracts pair kerning by shaping glyph pairs
// through go-text/typesetting's HarfBuzz implementation. Unlike the
// legacy kern table this sees GPOS pair positioning, which is where
// modern fonts keep their kerning.
//
// The probe shapes every two-rune combination of the requested set and
// compares the shaped advance against the sum of the isolated
// advances; the difference is the pair adjustment. Quadratic in the
// number of runes, so callers bound the set.
func probeGoTextKerning(data []byte, pixelHeight int, runes []rune) ([]SourceKerningPair, error) {
	gtFace, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fontatlas: gotext parse: %w", err)
	}

	prober := &gotextProber{
		face:   gtFace,
		shaper: &shaping.HarfbuzzShaper{},
		size:   fixed.I(pixelHeight),
	}

	// Isolated advances first, so each rune is shaped once.
	solo := make(map[rune]fixed.Int26_6, len(runes))
	for _, r := range runes {
		solo[r] = prober.advance([]rune{r})
	}

	var pairs []SourceKerningPair
	buf := make([]rune, 2)
	for _, first := range runes {
		for _, second := range runes {
			buf[0], buf[1] = first, second
			delta := prober.advance(buf) - solo[first] - solo[second]
			if amount := delta.Round(); amount != 0 {
				pairs = append(pairs, SourceKerningPair{
					First:   first,
					Second:  second,
					AmountX: amount,
				})
			}
		}
	}
	return pairs, nil
}

// gotextProber shapes short rune sequences and accumulates advances.
// Not safe for concurrent use; each probe owns its shaper.
type gotextProber struct {
	face   *gtfont.Face
	shaper *shaping.HarfbuzzShaper
	size   fixed.Int26_6
}

// advance shapes the runes and returns the total horizontal advance.
func (p *gotextProber) advance(runes []rune) fixed.Int26_6 {
	out := p.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      p.face,
		Size:      p.size,
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	})

	var total fixed.Int26_6
	for i := range out.Glyphs {
		total += out.Glyphs[i].Advance
	}
	return total
}
