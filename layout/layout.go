// Package layout decides how a subcontractor name is laid out inside the
// fixed two-line region of the delivery-note overlay.
//
// The region is narrow, so names are split across at most two lines and the
// font is shrunk when a line would still overflow. Company names in this
// document set almost always carry a "SDN BHD" suffix, which marks the
// natural break point; names without it fall back to a midpoint split.
package layout

import "strings"

const (
	// MaxLineChars is the widest first line that still fits the region at
	// the default font size.
	MaxLineChars = 30

	// DefaultFontSize is used when both lines fit.
	DefaultFontSize = 6

	// CompactFontSize is used when the first line overflows anyway, or for
	// names known to need it.
	CompactFontSize = 4.5
)

// compactMarker names a subcontractor whose letterhead is wide enough that
// the default size always clips, regardless of how the split works out.
const compactMarker = "UNIVERSAL CELLULAR"

// Result is a computed two-line layout. Line2 is empty when the name fits
// on a single line. The function producing it is pure: equal inputs give
// equal Results.
type Result struct {
	Line1    string
	Line2    string
	FontSize float64
}

// Split lays out a subcontractor name across the two-line region.
//
// If a word containing "SDN" (any case) is present, the name breaks before
// it; the first line then sheds trailing words onto the second until it
// fits MaxLineChars or only one word remains. Without the marker, names of
// more than two words break just past the midpoint, and shorter names stay
// on one line.
func Split(name string) Result {
	words := strings.Fields(name)

	var line1, line2 string
	if i := sdnIndex(words); i >= 0 {
		head := words[:i:i]
		tail := words[i:]
		for len(strings.Join(head, " ")) > MaxLineChars && len(head) > 1 {
			last := head[len(head)-1]
			head = head[:len(head)-1]
			tail = append([]string{last}, tail...)
		}
		line1 = strings.Join(head, " ")
		line2 = strings.Join(tail, " ")
	} else if len(words) > 2 {
		mid := len(words)/2 + 1
		line1 = strings.Join(words[:mid], " ")
		line2 = strings.Join(words[mid:], " ")
	} else {
		line1 = name
	}

	size := float64(DefaultFontSize)
	if strings.Contains(strings.ToUpper(name), compactMarker) || len(line1) > MaxLineChars {
		size = CompactFontSize
	}

	return Result{Line1: line1, Line2: line2, FontSize: size}
}

// sdnIndex returns the index of the first word containing "SDN"
// case-insensitively, or -1.
func sdnIndex(words []string) int {
	for i, w := range words {
		if strings.Contains(strings.ToUpper(w), "SDN") {
			return i
		}
	}
	return -1
}
