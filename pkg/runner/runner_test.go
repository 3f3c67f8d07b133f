package runner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yaklabco/snipscan/pkg/config"
	"github.com/yaklabco/snipscan/pkg/directive"
	"github.com/yaklabco/snipscan/pkg/loader"
	"github.com/yaklabco/snipscan/pkg/runner"
)

func TestRunner_ExtractsDirectives(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"page.html": `<header><!-- @nav active="home" --></header>
<main><!-- plain comment --><!-- @card title="Hi" --></main>`,
		"widget.mjs": "export default `<div><!-- @button class=\"primary\" --></div>`;",
	})

	result, err := runner.New(loader.New(config.Default())).Run(context.Background(), runner.Options{
		WorkingDir: root,
		Config:     config.Default(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Stats.FilesDiscovered != 2 || result.Stats.FilesProcessed != 2 {
		t.Fatalf("unexpected stats: %+v", result.Stats)
	}
	if result.Stats.CommentsSeen != 4 {
		t.Errorf("expected 4 comments, got %d", result.Stats.CommentsSeen)
	}
	if result.Stats.DirectivesFound != 3 {
		t.Errorf("expected 3 directives, got %d", result.Stats.DirectivesFound)
	}
	if result.HasMalformed() {
		t.Errorf("expected no malformed comments: %+v", result.Stats)
	}

	// Deterministic order: page.html before widget.mjs.
	if len(result.Files) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(result.Files))
	}

	page := result.Files[0].Report
	if page == nil || page.Name != "page" {
		t.Fatalf("unexpected first outcome: %+v", result.Files[0])
	}
	if len(page.Directives) != 2 {
		t.Fatalf("expected 2 directives in page, got %d", len(page.Directives))
	}
	if page.Directives[0].Directive.Name != "nav" || page.Directives[1].Directive.Name != "card" {
		t.Errorf("directives out of document order: %+v", page.Directives)
	}
	if page.Directives[0].Offset >= page.Directives[1].Offset {
		t.Errorf("offsets should increase in document order: %+v", page.Directives)
	}

	widget := result.Files[1].Report
	if widget == nil || widget.Name != "widget" || widget.Kind != config.KindModule {
		t.Fatalf("unexpected second outcome: %+v", result.Files[1])
	}
	if len(widget.Directives) != 1 || widget.Directives[0].Directive.Name != "button" {
		t.Fatalf("unexpected widget directives: %+v", widget.Directives)
	}
	if v, ok := widget.Directives[0].Directive.Get("class"); !ok || v != "primary" {
		t.Errorf("expected class=primary, got %q %v", v, ok)
	}
}

func TestRunner_MalformedCommentsReported(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"broken.html": `<!-- @button class -->ok<!-- @card title="x" -->`,
	})

	result, err := runner.New(loader.New(config.Default())).Run(context.Background(), runner.Options{
		WorkingDir: root,
		Config:     config.Default(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !result.HasMalformed() {
		t.Fatal("expected malformed comment to be reported")
	}
	if result.Stats.DirectivesFound != 1 {
		t.Errorf("valid directive after a malformed one should still parse: %+v", result.Stats)
	}

	report := result.Files[0].Report
	if len(report.Malformed) != 1 {
		t.Fatalf("expected 1 malformed entry, got %+v", report.Malformed)
	}
	if !errors.Is(report.Malformed[0].Err, directive.ErrMissingEquals) {
		t.Errorf("expected ErrMissingEquals, got %v", report.Malformed[0].Err)
	}
	if report.Malformed[0].Comment != "<!-- @button class -->" {
		t.Errorf("malformed entry should carry the comment text, got %q", report.Malformed[0].Comment)
	}
}

func TestRunner_FileErrorsDoNotAbortRun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"good.html": "<!-- @ok -->",
		"bad.js":    `export const nope = 1;`,
	})

	result, err := runner.New(loader.New(config.Default())).Run(context.Background(), runner.Options{
		WorkingDir: root,
		Config:     config.Default(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !result.HasErrors() || result.Stats.FilesErrored != 1 {
		t.Fatalf("expected one errored file: %+v", result.Stats)
	}
	if result.Stats.FilesProcessed != 1 || result.Stats.DirectivesFound != 1 {
		t.Fatalf("good file should still be processed: %+v", result.Stats)
	}

	var loadErr error
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			loadErr = outcome.Error
		}
	}
	if !errors.Is(loadErr, loader.ErrNoDefaultExport) {
		t.Errorf("expected ErrNoDefaultExport, got %v", loadErr)
	}
}

func TestRunner_EmptyDiscovery(t *testing.T) {
	t.Parallel()

	result, err := runner.New(loader.New(config.Default())).Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Config:     config.Default(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Stats.FilesDiscovered != 0 || len(result.Files) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestRunner_ManyFilesDeterministicOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".html"] = "<!-- @" + name + " -->"
	}
	writeTree(t, root, files)

	result, err := runner.New(loader.New(config.Default())).Run(context.Background(), runner.Options{
		WorkingDir: root,
		Jobs:       4,
		Config:     config.Default(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(result.Files) != 8 {
		t.Fatalf("expected 8 outcomes, got %d", len(result.Files))
	}
	for i, outcome := range result.Files {
		expected := string(rune('a' + i))
		if outcome.Report == nil || outcome.Report.Name != expected {
			t.Errorf("outcome %d: expected template %q, got %+v", i, expected, outcome.Report)
		}
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.html": "<!-- @a -->"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(loader.New(config.Default())).Run(ctx, runner.Options{
		WorkingDir: root,
		Config:     config.Default(),
	})
	if err == nil {
		t.Error("expected error from cancelled context")
	}
}
