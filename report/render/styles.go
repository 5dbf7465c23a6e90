package render

import "strings"

// RunStyle captures inline run formatting. The zero value means no override.
type RunStyle struct {
	Bold   bool
	Italic bool
	Size   int
	Color  string
}

const (
	PositiveColor = "006400"
	NegativeColor = "C00000"
	NeutralColor  = "00008B"
	HeadingColor  = "1F2937"
)

// Half-point sizes used by both writers for headings.
const (
	Heading1Size = 32
	Heading2Size = 26
	Heading3Size = 24
	BodySize     = 22
)

// FindingStyle maps a qualitative finding to its run formatting. Matching is
// case-insensitive and exact; anything other than positive, negative or
// neutral gets no override.
func FindingStyle(finding string) RunStyle {
	switch strings.ToLower(finding) {
	case "positive":
		return RunStyle{Bold: true, Color: PositiveColor}
	case "negative":
		return RunStyle{Bold: true, Color: NegativeColor}
	case "neutral":
		return RunStyle{Bold: true, Color: NeutralColor}
	default:
		return RunStyle{}
	}
}

// IsZero reports whether the style applies no formatting.
func (s RunStyle) IsZero() bool {
	return s == RunStyle{}
}

// headingStyles centralizes heading formatting for the writers.
var headingStyles = map[int]RunStyle{
	1: {Bold: true, Size: Heading1Size, Color: HeadingColor},
	2: {Bold: true, Size: Heading2Size, Color: HeadingColor},
	3: {Bold: true, Size: Heading3Size, Color: HeadingColor},
}

func headingStyle(level int) RunStyle {
	if style, ok := headingStyles[level]; ok {
		return style
	}
	return headingStyles[3]
}

// rgb splits a hex colour into components for writers that need them.
func rgb(hex string) (int, int, int) {
	if len(hex) != 6 {
		return 0, 0, 0
	}
	var out [3]int
	for i := 0; i < 3; i++ {
		out[i] = hexByte(hex[i*2])*16 + hexByte(hex[i*2+1])
	}
	return out[0], out[1], out[2]
}

func hexByte(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 0
	}
}
