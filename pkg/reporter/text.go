package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/snipscan/internal/ui/pretty"
	"github.com/yaklabco/snipscan/pkg/runner"
)

// TextReporter formats results as styled terminal output, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	directives := 0

	for _, outcome := range result.Files {
		path := displayPath(outcome.Path, r.opts.WorkingDir)

		if outcome.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s %v\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render("error:"),
				outcome.Error)
			continue
		}

		report := outcome.Report
		if report == nil || (len(report.Directives) == 0 && len(report.Malformed) == 0) {
			continue
		}

		fmt.Fprintf(r.bw, "%s %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Dim.Render(fmt.Sprintf("(template %q)", report.Name)))

		for _, extraction := range report.Directives {
			directives++
			fmt.Fprintf(r.bw, "  %s %s%s\n",
				r.styles.Location.Render(fmt.Sprintf("%6d", extraction.Offset)),
				r.styles.Directive.Render("@"+extraction.Directive.Name),
				r.renderProperties(extraction))
		}

		for _, malformed := range report.Malformed {
			fmt.Fprintf(r.bw, "  %s %s %v\n",
				r.styles.Location.Render(fmt.Sprintf("%6d", malformed.Offset)),
				r.styles.Warning.Render("malformed:"),
				malformed.Err)
		}
	}

	if r.opts.ShowSummary {
		r.writeSummary(result)
	}

	return directives, nil
}

func (r *TextReporter) renderProperties(extraction runner.Extraction) string {
	if len(extraction.Directive.Properties) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, prop := range extraction.Directive.Properties {
		sb.WriteByte(' ')
		sb.WriteString(r.styles.PropKey.Render(prop.Key))
		sb.WriteByte('=')
		sb.WriteString(r.styles.PropValue.Render(fmt.Sprintf("%q", prop.Value)))
	}
	return sb.String()
}

func (r *TextReporter) writeSummary(result *runner.Result) {
	stats := result.Stats

	fmt.Fprintf(r.bw, "\n%s %d file(s), %d comment(s), %d directive(s)",
		r.styles.SummaryTitle.Render("Scanned"),
		stats.FilesProcessed, stats.CommentsSeen, stats.DirectivesFound)

	switch {
	case stats.MalformedComments > 0 || stats.FilesErrored > 0:
		fmt.Fprintf(r.bw, ", %s\n",
			r.styles.Failure.Render(fmt.Sprintf("%d malformed, %d errored",
				stats.MalformedComments, stats.FilesErrored)))
	default:
		fmt.Fprintf(r.bw, " %s\n", r.styles.Success.Render("✓"))
	}
}
