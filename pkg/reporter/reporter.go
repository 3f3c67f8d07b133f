// Package reporter formats and writes directive extraction results.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/snipscan/pkg/config"
	"github.com/yaklabco/snipscan/pkg/runner"
)

// Reporter formats and writes extraction results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of directives reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = config.FormatText
	}

	switch format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// displayPath makes a path relative to the working directory when possible.
func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || len(rel) >= len(path) {
		return path
	}
	return rel
}
