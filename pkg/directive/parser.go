package directive

import (
	"strings"
	"unicode/utf8"
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
)

// Parser interprets the text of one HTML comment, delimiters included, as a
// template directive.
//
// A Parser is a reusable value object: Load replaces the subject comment and
// resets all transient state, Reset clears transient state while keeping the
// text. Instances are not safe for concurrent use; parsing never sees text
// outside the single loaded comment.
type Parser struct {
	input  string
	loaded bool

	pos       int
	directive *Directive
}

// NewParser returns a Parser with no comment loaded.
func NewParser() *Parser {
	return &Parser{}
}

// Load replaces the parser's subject comment and resets all transient state.
// It returns ErrInvalidInput if the text is not valid UTF-8.
func (p *Parser) Load(comment string) error {
	if !utf8.ValidString(comment) {
		return ErrInvalidInput
	}

	p.input = comment
	p.loaded = true
	p.Reset()

	return nil
}

// Reset clears the cursor and the last parsed directive while preserving the
// loaded comment text.
func (p *Parser) Reset() {
	p.pos = 0
	p.directive = nil
}

// Directive returns the result of the most recent successful Transform, or
// nil if none has been produced.
func (p *Parser) Directive() *Directive {
	return p.directive
}

// Transform parses the loaded comment. It returns (nil, nil) when the
// comment is an ordinary HTML comment rather than a directive: that outcome
// is expected and deliberately distinct from every error below.
//
// Parsing is a single left-to-right pass with no backtracking; the first
// grammar violation aborts the call with a *ParseError and no partial
// Directive is ever returned.
func (p *Parser) Transform() (*Directive, error) {
	if !p.loaded {
		return nil, ErrNotLoaded
	}

	p.Reset()

	if !strings.HasPrefix(p.input, commentOpen) {
		return nil, p.fail(ErrMissingOpenDelimiter)
	}
	p.pos = len(commentOpen)
	p.skipWhitespace()

	// Absence of the '@' sigil is the "plain comment" signal, not an error.
	if p.pos >= len(p.input) || p.input[p.pos] != '@' {
		return nil, nil
	}
	p.pos++

	name, err := p.scanName()
	if err != nil {
		return nil, err
	}

	parsed := &Directive{Name: name}
	p.skipWhitespace()

	for p.nameNext() {
		prop, err := p.scanProperty()
		if err != nil {
			return nil, err
		}
		parsed.Properties = append(parsed.Properties, prop)

		p.skipWhitespace()
	}

	if p.pos >= len(p.input) {
		return nil, p.fail(ErrUnterminatedComment)
	}
	if !p.closeNext() {
		return nil, p.fail(ErrMissingCloseDelimiter)
	}
	p.pos += len(commentClose)

	p.directive = parsed

	return parsed, nil
}

// closeNext reports whether the closing delimiter sits at the cursor.
func (p *Parser) closeNext() bool {
	return strings.HasPrefix(p.input[p.pos:], commentClose)
}

// nameNext reports whether a name-start rune sits at the cursor, i.e.
// whether another property can begin here.
func (p *Parser) nameNext() bool {
	if p.pos >= len(p.input) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
	return isNameStart(r)
}

// skipWhitespace advances the cursor past spaces, tabs, and newlines.
func (p *Parser) skipWhitespace() {
	for p.pos < len(p.input) && isWhitespace(p.input[p.pos]) {
		p.pos++
	}
}

// scanName consumes one name per the shared name grammar.
func (p *Parser) scanName() (string, error) {
	if p.pos >= len(p.input) {
		return "", p.fail(ErrInvalidName)
	}

	r, size := utf8.DecodeRuneInString(p.input[p.pos:])
	if !isNameStart(r) {
		return "", p.fail(ErrInvalidName)
	}

	start := p.pos
	p.pos += size

	for p.pos < len(p.input) {
		r, size = utf8.DecodeRuneInString(p.input[p.pos:])
		if !isNameRune(r) {
			break
		}
		p.pos += size
	}

	return p.input[start:p.pos], nil
}

// scanProperty consumes one name="value" pair, tolerating whitespace around
// the '='.
func (p *Parser) scanProperty() (Property, error) {
	key, err := p.scanName()
	if err != nil {
		return Property{}, err
	}

	p.skipWhitespace()
	if p.pos >= len(p.input) || p.input[p.pos] != '=' {
		return Property{}, p.fail(ErrMissingEquals)
	}
	p.pos++
	p.skipWhitespace()

	value, err := p.scanValue()
	if err != nil {
		return Property{}, err
	}

	return Property{Key: key, Value: value}, nil
}

// scanValue consumes a quoted value. The backslash escapes the following
// character and is itself never emitted; an unescaped occurrence of the
// opening quote character ends the value.
func (p *Parser) scanValue() (string, error) {
	if p.pos >= len(p.input) || (p.input[p.pos] != '"' && p.input[p.pos] != '\'') {
		return "", p.fail(ErrMissingOpenQuote)
	}

	quote := p.input[p.pos]
	p.pos++

	var value strings.Builder
	escaped := false

	for p.pos < len(p.input) {
		c := p.input[p.pos]

		switch {
		case escaped:
			value.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == quote:
			p.pos++
			return value.String(), nil
		default:
			value.WriteByte(c)
		}

		p.pos++
	}

	return "", p.fail(ErrUnterminatedValue)
}

// fail wraps a sentinel error with the current cursor position.
func (p *Parser) fail(sentinel error) error {
	return &ParseError{Err: sentinel, Offset: p.pos, Input: p.input}
}
