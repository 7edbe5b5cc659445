package fontatlas

import (
	"errors"
	"testing"
)

func TestFontDesc_Validate(t *testing.T) {
	valid := FontDesc{FaceName: "Go", PixelHeight: 32}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid desc: %v", err)
	}

	custom := FontDesc{FaceName: "Go", PixelHeight: 32,
		CharRanges: []CharRange{{Lo: 32, Hi: 127}, {Lo: 0x100, Hi: 0x17F}}}
	if err := custom.Validate(); err != nil {
		t.Errorf("valid custom ranges: %v", err)
	}

	cases := []struct {
		name string
		desc FontDesc
		want error
	}{
		{"empty name", FontDesc{PixelHeight: 32}, ErrEmptyFaceName},
		{"zero height", FontDesc{FaceName: "Go"}, ErrInvalidPixelHeight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.desc.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate = %v, want %v", err, tc.want)
			}
		})
	}

	var rangeErr *RangeError
	missing := FontDesc{FaceName: "Go", PixelHeight: 32,
		CharRanges: []CharRange{{Lo: 'a', Hi: 'z'}}}
	if err := missing.Validate(); !errors.As(err, &rangeErr) {
		t.Errorf("ranges without ' '/'-'/'?' = %v, want RangeError", err)
	}
	inverted := FontDesc{FaceName: "Go", PixelHeight: 32,
		CharRanges: []CharRange{{Lo: 'z', Hi: 'a'}}}
	if err := inverted.Validate(); !errors.As(err, &rangeErr) {
		t.Errorf("inverted range = %v, want RangeError", err)
	}
}

func TestFontDesc_ContainsRune(t *testing.T) {
	var d FontDesc
	if !d.containsRune('A') || d.containsRune(200) {
		t.Error("default range should span exactly 32..127")
	}

	d.CharRanges = []CharRange{{Lo: 32, Hi: 64}, {Lo: 0x100, Hi: 0x110}}
	for r, want := range map[rune]bool{' ': true, '@': true, 'z': false, 0x105: true, 0x111: false} {
		if got := d.containsRune(r); got != want {
			t.Errorf("containsRune(%#x) = %v, want %v", r, got, want)
		}
	}
}

func TestValidateFlags(t *testing.T) {
	cases := []struct {
		flags Flags
		want  bool
	}{
		{WrapSingleLine | HLeft | VTop, true},
		{WrapNormal | HCenter | VMiddle, true},
		{WrapWord | HRight | VBottom, true},
		{WrapChar | HLeft | VTop | Underline | Overline | Strikeout, true},

		{0, false},
		{WrapNormal | WrapChar | HLeft | VTop, false},
		{WrapNormal | VTop, false},
		{WrapNormal | HLeft | HRight | VTop, false},
		{WrapNormal | HLeft, false},
		{WrapNormal | HLeft | VTop | VBottom, false},
	}
	for _, tc := range cases {
		if got := ValidateFlags(tc.flags); got != tc.want {
			t.Errorf("ValidateFlags(%#x) = %v, want %v", tc.flags, got, tc.want)
		}
	}
}
