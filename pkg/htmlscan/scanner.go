package htmlscan

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
)

// Errors returned by Scanner operations.
var (
	// ErrInvalidInput indicates the loaded value was not valid text.
	ErrInvalidInput = errors.New("input is not valid UTF-8 text")

	// ErrNotLoaded indicates Scan was called before any text was loaded.
	ErrNotLoaded = errors.New("no text loaded")
)

// Scanner performs a single left-to-right pass over an HTML document,
// splitting it into comment and non-comment segments.
//
// A Scanner is a reusable value object: Load replaces the subject text and
// resets all transient state, Reset clears transient state while keeping the
// text. Instances are not safe for concurrent use.
type Scanner struct {
	text   string
	loaded bool

	pos           int
	buf           strings.Builder
	inString      bool
	pendingEscape bool
	segments      []Segment
}

// New returns a Scanner with no text loaded.
func New() *Scanner {
	return &Scanner{}
}

// Load replaces the scanner's subject text and resets all transient state.
// It returns ErrInvalidInput if the text is not valid UTF-8.
func (s *Scanner) Load(text string) error {
	if !utf8.ValidString(text) {
		return ErrInvalidInput
	}

	s.text = text
	s.loaded = true
	s.Reset()

	return nil
}

// Reset clears the cursor and accumulated segments while preserving the
// loaded text.
func (s *Scanner) Reset() {
	s.pos = 0
	s.buf.Reset()
	s.inString = false
	s.pendingEscape = false
	s.segments = nil
}

// Segments returns the segments produced by the most recent Scan, or an
// empty slice if Scan has not been called.
func (s *Scanner) Segments() []Segment {
	return s.segments
}

// CommentNext reports whether the four characters at the current cursor are
// exactly "<!--". It does not consume any input.
func (s *Scanner) CommentNext() bool {
	return strings.HasPrefix(s.text[s.pos:], commentOpen)
}

// Scan splits the loaded text into segments. It returns ErrNotLoaded if no
// text has been loaded; otherwise it always succeeds. Anything that is not an
// exact <!--...--> match is ordinary text, so there is no malformed-HTML
// failure mode. An unterminated <!-- is scanned through as plain text.
func (s *Scanner) Scan() ([]Segment, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}

	s.Reset()

	for s.pos < len(s.text) {
		c := s.text[s.pos]

		switch {
		case c == '<' && !s.inString && s.CommentNext():
			if s.scanComment() {
				continue
			}
			// No closing --> before end of input: the "<" is ordinary text.
			s.buf.WriteByte(c)
			s.pos++

		case c == '\\':
			// A doubled backslash yields one literal backslash.
			if s.pendingEscape {
				s.buf.WriteByte('\\')
			}
			s.pendingEscape = !s.pendingEscape
			s.pos++

		case c == '"' || c == '\'':
			if s.pendingEscape {
				// Escaped quote: kept literally, does not toggle string state.
				s.pendingEscape = false
			} else {
				s.inString = !s.inString
			}
			s.buf.WriteByte(c)
			s.pos++

		default:
			s.buf.WriteByte(c)
			s.pos++
		}
	}

	s.flush()

	return s.segments, nil
}

// scanComment emits the shortest <!--...--> span starting at the cursor as a
// comment segment. The close search spans newlines. Returns false if no
// closing delimiter exists before end of input, leaving the cursor untouched.
func (s *Scanner) scanComment() bool {
	rel := strings.Index(s.text[s.pos:], commentClose)
	if rel < 0 {
		return false
	}

	s.flush()

	end := s.pos + rel + len(commentClose)
	s.segments = append(s.segments, Segment{IsComment: true, Text: s.text[s.pos:end]})
	s.pos = end

	return true
}

// flush emits the accumulating buffer as a non-comment segment. Empty
// segments are suppressed.
func (s *Scanner) flush() {
	if s.buf.Len() == 0 {
		return
	}
	s.segments = append(s.segments, Segment{Text: s.buf.String()})
	s.buf.Reset()
}
