package runner

import (
	"github.com/yaklabco/snipscan/pkg/config"
	"github.com/yaklabco/snipscan/pkg/directive"
)

// Extraction is one directive found in a template, with the byte offset of
// its comment within the scanned template text.
type Extraction struct {
	// Offset is the byte offset of the comment's "<!--" in the scanned text.
	Offset int

	// Comment is the full comment token, delimiters included.
	Comment string

	// Directive is the parsed directive.
	Directive *directive.Directive
}

// CommentError is a directive-shaped comment that failed to parse.
type CommentError struct {
	// Offset is the byte offset of the comment's "<!--" in the scanned text.
	Offset int

	// Comment is the full comment token, delimiters included.
	Comment string

	// Err is the parse failure, wrapping one of the directive package's
	// sentinel errors.
	Err error
}

// FileReport is the extraction result for one template file.
type FileReport struct {
	// Name is the logical template name (base name, extension stripped).
	Name string

	// Kind records how the template text was obtained.
	Kind config.FileKind

	// CommentsSeen counts all comment segments in the template, directive
	// or not.
	CommentsSeen int

	// Directives holds the extracted directives in document order.
	Directives []Extraction

	// Malformed holds comments that attempted the directive grammar and
	// failed, in document order.
	Malformed []CommentError
}

// FileOutcome pairs a processed path with its report or error.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Report contains the extraction result for this file.
	// Nil if the file could not be processed.
	Report *FileReport

	// Error is set if the file could not be loaded or scanned.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// CommentsSeen is the total number of comment segments across all files.
	CommentsSeen int

	// DirectivesFound is the total number of directives extracted.
	DirectivesFound int

	// MalformedComments is the total number of comments that failed the
	// directive grammar.
	MalformedComments int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered
	// deterministically by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasMalformed reports whether any directive-shaped comment failed to parse.
func (r *Result) HasMalformed() bool {
	if r == nil {
		return false
	}
	return r.Stats.MalformedComments > 0
}

// HasErrors reports whether any file failed to load or scan.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Report == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.CommentsSeen += outcome.Report.CommentsSeen
	r.Stats.DirectivesFound += len(outcome.Report.Directives)
	r.Stats.MalformedComments += len(outcome.Report.Malformed)
}
