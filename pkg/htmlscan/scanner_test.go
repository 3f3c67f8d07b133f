package htmlscan_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/snipscan/pkg/htmlscan"
)

func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []htmlscan.Segment
	}{
		{
			name:     "plain text only",
			input:    "<p>hello</p>",
			expected: []htmlscan.Segment{{Text: "<p>hello</p>"}},
		},
		{
			name:  "single comment between text",
			input: "<p>a</p><!-- note --><p>b</p>",
			expected: []htmlscan.Segment{
				{Text: "<p>a</p>"},
				{IsComment: true, Text: "<!-- note -->"},
				{Text: "<p>b</p>"},
			},
		},
		{
			name:  "leading comment suppresses empty segment",
			input: "<!-- first --><div></div>",
			expected: []htmlscan.Segment{
				{IsComment: true, Text: "<!-- first -->"},
				{Text: "<div></div>"},
			},
		},
		{
			name:  "trailing comment suppresses empty segment",
			input: "<div></div><!-- last -->",
			expected: []htmlscan.Segment{
				{Text: "<div></div>"},
				{IsComment: true, Text: "<!-- last -->"},
			},
		},
		{
			name:  "adjacent comments",
			input: "<!-- a --><!-- b -->",
			expected: []htmlscan.Segment{
				{IsComment: true, Text: "<!-- a -->"},
				{IsComment: true, Text: "<!-- b -->"},
			},
		},
		{
			name:  "comment spanning newlines",
			input: "x<!-- line one\nline two -->y",
			expected: []htmlscan.Segment{
				{Text: "x"},
				{IsComment: true, Text: "<!-- line one\nline two -->"},
				{Text: "y"},
			},
		},
		{
			name:  "shortest close wins",
			input: "<!-- a --> tail --><p></p>",
			expected: []htmlscan.Segment{
				{IsComment: true, Text: "<!-- a -->"},
				{Text: " tail --><p></p>"},
			},
		},
		{
			name:     "comment shape inside double quotes is text",
			input:    `<a title="<!-- not a comment -->">x</a>`,
			expected: []htmlscan.Segment{{Text: `<a title="<!-- not a comment -->">x</a>`}},
		},
		{
			name:     "comment shape inside single quotes is text",
			input:    `<a title='<!-- nope -->'>x</a>`,
			expected: []htmlscan.Segment{{Text: `<a title='<!-- nope -->'>x</a>`}},
		},
		{
			name:  "comment after closed quote is detected",
			input: `<a title="t">x</a><!-- real -->`,
			expected: []htmlscan.Segment{
				{Text: `<a title="t">x</a>`},
				{IsComment: true, Text: "<!-- real -->"},
			},
		},
		{
			name:     "unterminated comment falls through as text",
			input:    "<p>a</p><!-- never closed",
			expected: []htmlscan.Segment{{Text: "<p>a</p><!-- never closed"}},
		},
		{
			name:     "empty input yields no segments",
			input:    "",
			expected: nil,
		},
		{
			name:     "directive comment kept whole",
			input:    `<!-- @button class="primary" -->`,
			expected: []htmlscan.Segment{{IsComment: true, Text: `<!-- @button class="primary" -->`}},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var scanner htmlscan.Scanner
			if err := scanner.Load(testCase.input); err != nil {
				t.Fatalf("load: %v", err)
			}

			segments, err := scanner.Scan()
			if err != nil {
				t.Fatalf("scan: %v", err)
			}

			if len(segments) != len(testCase.expected) {
				t.Fatalf("expected %d segments, got %d: %#v",
					len(testCase.expected), len(segments), segments)
			}

			for i, seg := range segments {
				if seg != testCase.expected[i] {
					t.Errorf("segment %d: expected %#v, got %#v", i, testCase.expected[i], seg)
				}
			}
		})
	}
}

func TestScanner_RoundTrip(t *testing.T) {
	t.Parallel()

	// None of these contain backslash escapes, so concatenating segment
	// texts must reproduce the input exactly.
	inputs := []string{
		"",
		"plain text",
		"<!-- c -->",
		"a<!-- c -->b<!-- d -->c",
		"<html>\n<!-- multi\nline -->\n</html>",
		`<a href="x">link</a><!-- tail`,
		`quotes "inside <!-- --> text" and after<!-- real -->`,
	}

	for _, input := range inputs {
		var scanner htmlscan.Scanner
		if err := scanner.Load(input); err != nil {
			t.Fatalf("load %q: %v", input, err)
		}

		segments, err := scanner.Scan()
		if err != nil {
			t.Fatalf("scan %q: %v", input, err)
		}

		var rebuilt strings.Builder
		for _, seg := range segments {
			rebuilt.WriteString(seg.Text)
		}

		if rebuilt.String() != input {
			t.Errorf("round trip failed: input %q, rebuilt %q", input, rebuilt.String())
		}

		if !htmlscan.ValidateSegments(segments, input) {
			t.Errorf("ValidateSegments rejected segments for %q", input)
		}
	}
}

func TestScanner_Escapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "escaped double quote keeps string open",
			input:    `<a title="say \"hi\"">x</a>`,
			expected: `<a title="say "hi"">x</a>`,
		},
		{
			name:     "doubled backslash yields single backslash",
			input:    `path \\ here`,
			expected: `path \ here`,
		},
		{
			name:     "escaped single quote",
			input:    `<a title='it\'s'>x</a>`,
			expected: `<a title='it's'>x</a>`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var scanner htmlscan.Scanner
			if err := scanner.Load(testCase.input); err != nil {
				t.Fatalf("load: %v", err)
			}

			segments, err := scanner.Scan()
			if err != nil {
				t.Fatalf("scan: %v", err)
			}

			if len(segments) != 1 {
				t.Fatalf("expected 1 segment, got %d: %#v", len(segments), segments)
			}
			if segments[0].Text != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, segments[0].Text)
			}
		})
	}
}

func TestScanner_EscapedQuoteDoesNotCloseString(t *testing.T) {
	t.Parallel()

	// The comment shape sits inside a string whose quote was escaped, so it
	// must not be reported as a comment.
	input := `"an \" still inside <!-- hidden --> string"`

	var scanner htmlscan.Scanner
	if err := scanner.Load(input); err != nil {
		t.Fatalf("load: %v", err)
	}

	segments, err := scanner.Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	for _, seg := range segments {
		if seg.IsComment {
			t.Errorf("unexpected comment segment %q", seg.Text)
		}
	}
}

func TestScanner_NotLoaded(t *testing.T) {
	t.Parallel()

	var scanner htmlscan.Scanner

	if _, err := scanner.Scan(); !errors.Is(err, htmlscan.ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
}

func TestScanner_LoadInvalidUTF8(t *testing.T) {
	t.Parallel()

	var scanner htmlscan.Scanner

	err := scanner.Load(string([]byte{0xff, 0xfe}))
	if !errors.Is(err, htmlscan.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScanner_ResetAndRescan(t *testing.T) {
	t.Parallel()

	var scanner htmlscan.Scanner
	if err := scanner.Load("a<!-- c -->b"); err != nil {
		t.Fatalf("load: %v", err)
	}

	first, err := scanner.Scan()
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}

	scanner.Reset()
	if got := scanner.Segments(); len(got) != 0 {
		t.Fatalf("expected no segments after reset, got %d", len(got))
	}

	second, err := scanner.Scan()
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("rescan changed segment count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("segment %d differs after rescan", i)
		}
	}
}

func TestScanner_SegmentsBeforeScan(t *testing.T) {
	t.Parallel()

	var scanner htmlscan.Scanner
	if got := scanner.Segments(); len(got) != 0 {
		t.Errorf("expected empty segments before scan, got %d", len(got))
	}
}

func TestScanner_CommentNext(t *testing.T) {
	t.Parallel()

	var scanner htmlscan.Scanner
	if err := scanner.Load("<!-- c -->"); err != nil {
		t.Fatalf("load: %v", err)
	}

	if !scanner.CommentNext() {
		t.Error("expected CommentNext to be true at a comment open")
	}

	if err := scanner.Load("<div>"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if scanner.CommentNext() {
		t.Error("expected CommentNext to be false at plain markup")
	}
}

func TestScanner_LoadReplacesText(t *testing.T) {
	t.Parallel()

	var scanner htmlscan.Scanner
	if err := scanner.Load("<!-- old -->"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := scanner.Scan(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if err := scanner.Load("fresh"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	segments, err := scanner.Scan()
	if err != nil {
		t.Fatalf("rescan: %v", err)
	}

	if len(segments) != 1 || segments[0].Text != "fresh" || segments[0].IsComment {
		t.Errorf("expected single text segment %q, got %#v", "fresh", segments)
	}
}
