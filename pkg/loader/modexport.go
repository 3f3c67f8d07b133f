package loader

import (
	"fmt"
	"strings"
)

// extractDefaultExport statically pulls the template text out of a
// JavaScript-style module source. Supported shapes:
//
//	export default "...";
//	export default `...`;
//	module.exports = '...';
//	export default () => "...";
//	export default function () { return `...`; }
//
// The function forms must take zero arguments and return a plain literal.
// Template literals with ${} interpolation, computed values, and anything
// requiring evaluation are rejected: the loader extracts text, it does not
// execute modules.
func extractDefaultExport(source string) (string, error) {
	rest, ok := afterExportMarker(source)
	if !ok {
		return "", ErrNoDefaultExport
	}

	rest = strings.TrimLeft(rest, " \t\r\n")
	if rest == "" {
		return "", ErrUnsupportedExport
	}

	switch {
	case rest[0] == '"' || rest[0] == '\'' || rest[0] == '`':
		text, _, err := scanStringLiteral(rest)
		return text, err

	case strings.HasPrefix(rest, "("):
		return extractArrowBody(rest)

	case strings.HasPrefix(rest, "function"):
		return extractFunctionBody(rest)
	}

	return "", fmt.Errorf("%w: default export must be a string literal or a zero-argument function", ErrUnsupportedExport)
}

// afterExportMarker returns the source following the first default-export
// marker.
func afterExportMarker(source string) (string, bool) {
	for _, marker := range []string{"export default", "module.exports ="} {
		if idx := strings.Index(source, marker); idx >= 0 {
			return source[idx+len(marker):], true
		}
	}
	return "", false
}

// scanStringLiteral consumes a quoted literal at the start of s and returns
// its decoded text and the remainder. Backslash escapes the next character.
// Interpolated template literals are rejected.
func scanStringLiteral(s string) (string, string, error) {
	quote := s[0]

	var text strings.Builder
	escaped := false

	for i := 1; i < len(s); i++ {
		c := s[i]

		switch {
		case escaped:
			// Decode the common whitespace escapes; keep everything else
			// literal, matching how the directive grammar treats escapes.
			switch c {
			case 'n':
				text.WriteByte('\n')
			case 't':
				text.WriteByte('\t')
			case 'r':
				text.WriteByte('\r')
			default:
				text.WriteByte(c)
			}
			escaped = false

		case c == '\\':
			escaped = true

		case c == quote:
			return text.String(), s[i+1:], nil

		case quote == '`' && c == '$' && i+1 < len(s) && s[i+1] == '{':
			return "", "", fmt.Errorf("%w: template literal uses interpolation", ErrUnsupportedExport)

		default:
			text.WriteByte(c)
		}
	}

	return "", "", fmt.Errorf("%w: unterminated string literal", ErrUnsupportedExport)
}

// extractArrowBody handles "() => literal" and "() => { return literal; }".
func extractArrowBody(rest string) (string, error) {
	body, ok := strings.CutPrefix(rest, "(")
	if !ok {
		return "", ErrUnsupportedExport
	}

	closeIdx := strings.IndexByte(body, ')')
	if closeIdx < 0 {
		return "", fmt.Errorf("%w: malformed arrow function", ErrUnsupportedExport)
	}
	if strings.TrimSpace(body[:closeIdx]) != "" {
		return "", fmt.Errorf("%w: exported function must take zero arguments", ErrUnsupportedExport)
	}

	body = strings.TrimLeft(body[closeIdx+1:], " \t\r\n")
	body, ok = strings.CutPrefix(body, "=>")
	if !ok {
		return "", fmt.Errorf("%w: malformed arrow function", ErrUnsupportedExport)
	}

	body = strings.TrimLeft(body, " \t\r\n")
	if strings.HasPrefix(body, "{") {
		return extractReturnedLiteral(body)
	}
	if body == "" {
		return "", fmt.Errorf("%w: malformed arrow function", ErrUnsupportedExport)
	}
	if body[0] == '"' || body[0] == '\'' || body[0] == '`' {
		text, _, err := scanStringLiteral(body)
		return text, err
	}

	return "", fmt.Errorf("%w: arrow function must return a string literal", ErrUnsupportedExport)
}

// extractFunctionBody handles "function name() { return literal; }".
func extractFunctionBody(rest string) (string, error) {
	openIdx := strings.IndexByte(rest, '(')
	if openIdx < 0 {
		return "", fmt.Errorf("%w: malformed function", ErrUnsupportedExport)
	}
	closeIdx := strings.IndexByte(rest[openIdx:], ')')
	if closeIdx < 0 {
		return "", fmt.Errorf("%w: malformed function", ErrUnsupportedExport)
	}
	if strings.TrimSpace(rest[openIdx+1:openIdx+closeIdx]) != "" {
		return "", fmt.Errorf("%w: exported function must take zero arguments", ErrUnsupportedExport)
	}

	body := strings.TrimLeft(rest[openIdx+closeIdx+1:], " \t\r\n")
	if !strings.HasPrefix(body, "{") {
		return "", fmt.Errorf("%w: malformed function", ErrUnsupportedExport)
	}

	return extractReturnedLiteral(body)
}

// extractReturnedLiteral finds "return <literal>" inside a braced body.
func extractReturnedLiteral(body string) (string, error) {
	idx := strings.Index(body, "return")
	if idx < 0 {
		return "", fmt.Errorf("%w: function body has no return", ErrUnsupportedExport)
	}

	value := strings.TrimLeft(body[idx+len("return"):], " \t\r\n")
	if value == "" || (value[0] != '"' && value[0] != '\'' && value[0] != '`') {
		return "", fmt.Errorf("%w: function must return a string literal", ErrUnsupportedExport)
	}

	text, _, err := scanStringLiteral(value)
	return text, err
}
