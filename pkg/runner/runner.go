package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/snipscan/pkg/directive"
	"github.com/yaklabco/snipscan/pkg/htmlscan"
	"github.com/yaklabco/snipscan/pkg/loader"
)

// Runner orchestrates multi-file directive extraction.
type Runner struct {
	loader *loader.Loader
}

// New creates a Runner using the given template loader.
func New(ldr *loader.Loader) *Runner {
	return &Runner{loader: ldr}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate
// stats. A malformed directive comment is recorded in the file's report, not
// returned as an error; only load/scan failures mark a file as errored.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; collect and rebuild in path order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh. Each
// worker owns one scanner and one parser and reuses them across files.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	var scanner htmlscan.Scanner
	var parser directive.Parser

	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: path}

		report, err := r.processFile(path, &scanner, &parser)
		if err != nil {
			outcome.Error = err
		} else {
			outcome.Report = report
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// processFile loads one template, scans it into segments, and feeds every
// comment segment through the directive parser.
func (r *Runner) processFile(path string, scanner *htmlscan.Scanner, parser *directive.Parser) (*FileReport, error) {
	tmpl, err := r.loader.Load(path)
	if err != nil {
		return nil, err
	}

	if err := scanner.Load(tmpl.Text); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	segments, err := scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}

	report := &FileReport{
		Name: tmpl.Name,
		Kind: tmpl.Kind,
	}

	offset := 0
	for _, segment := range segments {
		if segment.IsComment {
			report.CommentsSeen++

			if err := parser.Load(segment.Text); err != nil {
				report.Malformed = append(report.Malformed, CommentError{
					Offset:  offset,
					Comment: segment.Text,
					Err:     err,
				})
			} else if parsed, err := parser.Transform(); err != nil {
				report.Malformed = append(report.Malformed, CommentError{
					Offset:  offset,
					Comment: segment.Text,
					Err:     err,
				})
			} else if parsed != nil {
				report.Directives = append(report.Directives, Extraction{
					Offset:    offset,
					Comment:   segment.Text,
					Directive: parsed,
				})
			}
		}

		offset += len(segment.Text)
	}

	return report, nil
}
