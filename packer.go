package fontatlas

// shelfPacker implements shelf-based sprite packing for the atlas.
//
// The algorithm keeps a pen position on the current shelf and places
// incoming sprites left-to-right, separated by a fixed margin. The
// shelf height grows to the tallest sprite placed so far; when a sprite
// does not fit horizontally a new shelf is started below. Sprites are
// fed in descending height order, which keeps shelves dense.
type shelfPacker struct {
	width  int // Total width of the atlas
	margin int // Margin between sprites and around the borders
	penX   int // Current X position on the shelf
	penY   int // Y position of the current shelf top
	maxY   int // Lowest occupied Y so far
	pow2   bool
}

// newShelfPacker creates a packer for an atlas of the given width.
// With pow2 the width is rounded up to a power of two immediately and
// the reported height is rounded the same way.
func newShelfPacker(width, margin int, pow2 bool) *shelfPacker {
	if pow2 {
		width = nextPow2(width)
	}
	return &shelfPacker{
		width:  width,
		margin: margin,
		penX:   margin,
		penY:   margin,
		maxY:   margin,
		pow2:   pow2,
	}
}

// atlasWidth returns the (possibly pow2-rounded) atlas width.
func (p *shelfPacker) atlasWidth() int {
	return p.width
}

// place finds a position for a w×h sprite. It returns ok == false only
// when the sprite is wider than the atlas row and can never fit.
func (p *shelfPacker) place(w, h int) (x, y int, ok bool) {
	if w+2*p.margin > p.width {
		return 0, 0, false
	}
	for {
		p.penX += p.margin
		if p.penX+w+p.margin <= p.width {
			x, y = p.penX, p.penY
			if bottom := p.penY + h; bottom > p.maxY {
				p.maxY = bottom
			}
			p.penX += w
			return x, y, true
		}
		// Start a new shelf below everything placed so far.
		p.penX = 0
		p.penY = p.maxY + p.margin
	}
}

// height returns the final atlas height: the lowest occupied row plus
// the bottom margin, rounded up to a power of two when requested.
func (p *shelfPacker) height() int {
	h := p.maxY + p.margin
	if p.pow2 {
		return nextPow2(h)
	}
	return h
}
