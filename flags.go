package fontatlas

// Flags configure text layout and decoration. Exactly one wrap mode,
// one horizontal alignment, and one vertical alignment must be set;
// decorations combine freely.
type Flags uint32

const (
	// WrapSingleLine treats the whole text as one line, ignoring line
	// terminators and the width limit. Fast path.
	WrapSingleLine Flags = 0x1
	// WrapNormal breaks lines only on explicit '\n' or '\r' ("\r\n"
	// counts as one terminator). The width limit is ignored.
	WrapNormal Flags = 0x2
	// WrapChar additionally wraps on character boundaries when the
	// running width would exceed the width limit.
	WrapChar Flags = 0x4
	// WrapWord additionally wraps on whole word boundaries when
	// possible, falling back to character boundaries for unbroken runs.
	WrapWord Flags = 0x8

	// Underline draws one line under each text line.
	Underline Flags = 0x10
	// DoubleUnderline draws two lines under each text line. Takes
	// precedence over Underline when both are set.
	DoubleUnderline Flags = 0x20
	// Overline draws a line above each text line.
	Overline Flags = 0x40
	// Strikeout draws a line through each text line.
	Strikeout Flags = 0x80

	// HLeft aligns each line's left edge to the anchor X.
	HLeft Flags = 0x100
	// HCenter centers each line on the anchor X.
	HCenter Flags = 0x200
	// HRight aligns each line's right edge to the anchor X.
	HRight Flags = 0x400

	// VTop places the first line's top at the anchor Y.
	VTop Flags = 0x800
	// VMiddle centers the text block on the anchor Y.
	VMiddle Flags = 0x1000
	// VBottom places the text block's bottom at the anchor Y.
	VBottom Flags = 0x2000
)

// decorationMask selects the decoration bits.
const decorationMask = Underline | DoubleUnderline | Overline | Strikeout

// ValidateFlags reports whether flags carries exactly one wrap mode,
// exactly one horizontal alignment, and exactly one vertical alignment.
// Invalid combinations are programmer errors; layout entry points do
// not check them.
func ValidateFlags(flags Flags) bool {
	if countBits(flags, WrapSingleLine, WrapNormal, WrapChar, WrapWord) != 1 {
		return false
	}
	if countBits(flags, HLeft, HCenter, HRight) != 1 {
		return false
	}
	if countBits(flags, VTop, VMiddle, VBottom) != 1 {
		return false
	}
	return true
}

// countBits counts how many of the given bits are set in flags.
func countBits(flags Flags, bits ...Flags) int {
	n := 0
	for _, b := range bits {
		if flags&b != 0 {
			n++
		}
	}
	return n
}
