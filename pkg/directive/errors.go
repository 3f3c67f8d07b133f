package directive

import (
	"errors"
	"fmt"
)

// Errors returned by Parser operations. The malformed-comment family
// (everything below ErrNotLoaded) is always delivered wrapped in a
// *ParseError carrying the offending text and cursor offset; match with
// errors.Is.
var (
	// ErrInvalidInput indicates the loaded value was not valid text.
	ErrInvalidInput = errors.New("input is not valid UTF-8 text")

	// ErrNotLoaded indicates Transform was called before any comment was loaded.
	ErrNotLoaded = errors.New("no comment loaded")

	// ErrMissingOpenDelimiter indicates the input does not begin with "<!--".
	ErrMissingOpenDelimiter = errors.New("comment does not begin with <!--")

	// ErrInvalidName indicates a template or property name violates the
	// name grammar.
	ErrInvalidName = errors.New("invalid name")

	// ErrMissingEquals indicates a property name was not followed by '='.
	ErrMissingEquals = errors.New("property is missing '='")

	// ErrMissingOpenQuote indicates a property value does not begin with a
	// single or double quote.
	ErrMissingOpenQuote = errors.New("property value must begin with a quote")

	// ErrUnterminatedValue indicates a property value's opening quote was
	// never closed. A value opened with one quote style and "closed" with
	// the other is indistinguishable from this and fails the same way.
	ErrUnterminatedValue = errors.New("unterminated property value")

	// ErrUnterminatedComment indicates the input ran out before the
	// closing "-->" was reached.
	ErrUnterminatedComment = errors.New("unterminated comment")

	// ErrMissingCloseDelimiter indicates text remained after the directive
	// grammar completed without a "-->" at the cursor.
	ErrMissingCloseDelimiter = errors.New("comment does not end with -->")
)

// ParseError is a grammar violation at a specific cursor offset. It wraps
// one of this package's sentinel errors.
type ParseError struct {
	// Err is the sentinel error identifying the violation.
	Err error

	// Offset is the byte offset into Input at which parsing failed.
	Offset int

	// Input is the full comment text being parsed.
	Input string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at offset %d in %q", e.Err, e.Offset, e.Input)
}

// Unwrap returns the sentinel error, enabling errors.Is matching.
func (e *ParseError) Unwrap() error {
	return e.Err
}
