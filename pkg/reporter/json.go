package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/snipscan/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string          `json:"path"`
	Template   string          `json:"template,omitempty"`
	Kind       string          `json:"kind,omitempty"`
	Directives []JSONDirective `json:"directives"`
	Malformed  []JSONMalformed `json:"malformed,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// JSONDirective represents one extracted directive.
type JSONDirective struct {
	Offset     int            `json:"offset"`
	Name       string         `json:"name"`
	Properties []JSONProperty `json:"properties"`
}

// JSONProperty is one key/value pair; declaration order and duplicates are
// preserved, so this is a list rather than an object.
type JSONProperty struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// JSONMalformed represents a comment that failed the directive grammar.
type JSONMalformed struct {
	Offset  int    `json:"offset"`
	Comment string `json:"comment"`
	Error   string `json:"error"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesScanned      int `json:"filesScanned"`
	FilesErrored      int `json:"filesErrored"`
	CommentsSeen      int `json:"commentsSeen"`
	DirectivesFound   int `json:"directivesFound"`
	MalformedComments int `json:"malformedComments"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.DirectivesFound, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, outcome := range result.Files {
		fileResult := JSONFileResult{
			Path:       displayPath(outcome.Path, r.opts.WorkingDir),
			Directives: make([]JSONDirective, 0),
		}

		if outcome.Error != nil {
			fileResult.Error = outcome.Error.Error()
		}

		if report := outcome.Report; report != nil {
			fileResult.Template = report.Name
			fileResult.Kind = string(report.Kind)

			for _, extraction := range report.Directives {
				jsonDirective := JSONDirective{
					Offset:     extraction.Offset,
					Name:       extraction.Directive.Name,
					Properties: make([]JSONProperty, 0, len(extraction.Directive.Properties)),
				}
				for _, prop := range extraction.Directive.Properties {
					jsonDirective.Properties = append(jsonDirective.Properties, JSONProperty{
						Key:   prop.Key,
						Value: prop.Value,
					})
				}
				fileResult.Directives = append(fileResult.Directives, jsonDirective)
			}

			for _, malformed := range report.Malformed {
				fileResult.Malformed = append(fileResult.Malformed, JSONMalformed{
					Offset:  malformed.Offset,
					Comment: malformed.Comment,
					Error:   malformed.Err.Error(),
				})
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	output.Summary = JSONSummary{
		FilesScanned:      result.Stats.FilesProcessed,
		FilesErrored:      result.Stats.FilesErrored,
		CommentsSeen:      result.Stats.CommentsSeen,
		DirectivesFound:   result.Stats.DirectivesFound,
		MalformedComments: result.Stats.MalformedComments,
	}

	return output
}
