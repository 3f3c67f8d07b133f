package directive

// The name grammar is shared by template names and property names: an ASCII
// letter start, then ASCII letters, digits, ':', '_', '.', '-', or one of
// the Unicode ranges below. Matching is case-insensitive, which for the
// ASCII classes simply means both cases are accepted.

// isNameStart reports whether r may begin a name.
func isNameStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isNameRune reports whether r may continue a name. The Unicode ranges
// approximate the HTML custom-element-name character set, deliberately
// restricted to code points representable in 16-bit text units: the
// supplementary planes (U+10000 and above) are excluded even though the
// full HTML spec allows part of them.
func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z',
		r >= 'A' && r <= 'Z',
		r >= '0' && r <= '9',
		r == ':', r == '_', r == '.', r == '-':
		return true
	}

	switch {
	case r == 0xB7,
		r >= 0xC0 && r <= 0xD6,
		r >= 0xD8 && r <= 0xF6,
		r >= 0xF8 && r <= 0x37D,
		r >= 0x37F && r <= 0x1FFF,
		r == 0x200C, r == 0x200D,
		r >= 0x203F && r <= 0x2040,
		r >= 0x2070 && r <= 0x218F,
		r >= 0x2C00 && r <= 0x2FEF,
		r >= 0x3001 && r <= 0xD7FF,
		r >= 0xF900 && r <= 0xFDCF,
		r >= 0xFDF0 && r <= 0xFFFD:
		return true
	}

	return false
}

// isWhitespace reports whether c separates grammar elements.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
