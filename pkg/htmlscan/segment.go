// Package htmlscan splits raw HTML text into alternating comment and
// non-comment segments. The scanner tracks quoted attribute strings so that
// comment-shaped substrings inside quotes are never reported as comments.
package htmlscan

// Segment is a contiguous slice of the scanned document, classified as
// either an HTML comment (including its <!-- and --> delimiters) or
// ordinary text.
type Segment struct {
	// IsComment is true if this segment is a full <!--...--> comment token.
	IsComment bool

	// Text is the segment's text as it appeared in the document.
	Text string
}

// ValidateSegments checks that a segment slice concatenates back to the
// original document text in order. Documents containing backslash escapes
// inside quoted regions will not round-trip byte for byte, since the scanner
// consumes the escaping backslash; for all other input the check is exact.
func ValidateSegments(segments []Segment, text string) bool {
	total := 0
	for _, seg := range segments {
		total += len(seg.Text)
	}
	if total != len(text) {
		return false
	}

	offset := 0
	for _, seg := range segments {
		if text[offset:offset+len(seg.Text)] != seg.Text {
			return false
		}
		offset += len(seg.Text)
	}

	return true
}
