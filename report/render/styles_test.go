package render

import "testing"

func TestFindingStyle(t *testing.T) {
	cases := []struct {
		in   string
		want RunStyle
	}{
		{"Positive", RunStyle{Bold: true, Color: PositiveColor}},
		{"positive", RunStyle{Bold: true, Color: PositiveColor}},
		{"NEGATIVE", RunStyle{Bold: true, Color: NegativeColor}},
		{"Neutral", RunStyle{Bold: true, Color: NeutralColor}},
		{"Mixed", RunStyle{}},
		{"", RunStyle{}},
		{"positive ", RunStyle{}},
		{"Positively consistent", RunStyle{}},
	}
	for _, tc := range cases {
		if got := FindingStyle(tc.in); got != tc.want {
			t.Fatalf("FindingStyle(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestFindingStyleZeroMeansNoOverride(t *testing.T) {
	if !FindingStyle("Mixed").IsZero() {
		t.Fatalf("expected no override for unmatched finding")
	}
	if FindingStyle("neutral").IsZero() {
		t.Fatalf("expected override for neutral finding")
	}
}

func TestRGB(t *testing.T) {
	r, g, b := rgb(PositiveColor)
	if r != 0 || g != 0x64 || b != 0 {
		t.Fatalf("rgb(%s) = %d,%d,%d", PositiveColor, r, g, b)
	}
	r, g, b = rgb("c00000")
	if r != 0xC0 || g != 0 || b != 0 {
		t.Fatalf("rgb(c00000) = %d,%d,%d", r, g, b)
	}
	r, g, b = rgb("")
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("expected black for empty colour")
	}
}
