// Package loader turns template files into the text strings the scanner
// consumes. Each file is classified by extension as literal HTML or as a
// JavaScript-style module whose default export supplies the text; files
// matching neither class are rejected before any scanning happens.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/snipscan/pkg/config"
)

// Errors returned by Load.
var (
	// ErrUnknownExtension indicates the file's extension belongs to neither
	// configured extension class.
	ErrUnknownExtension = errors.New("extension is neither html nor module")

	// ErrNoDefaultExport indicates a module file has no recognizable
	// default export.
	ErrNoDefaultExport = errors.New("module has no default export")

	// ErrUnsupportedExport indicates the default export is not a string
	// literal or a zero-argument function returning one.
	ErrUnsupportedExport = errors.New("unsupported default export")

	// ErrNotText indicates the file content is not valid UTF-8 text.
	ErrNotText = errors.New("file is not valid UTF-8 text")
)

// Template is one loaded template: decoded text plus the logical name
// derived from the file's base name with the extension stripped.
type Template struct {
	// Name is the logical template name.
	Name string

	// Path is the file the template was loaded from.
	Path string

	// Kind records how the text was obtained.
	Kind config.FileKind

	// Text is the template's HTML text.
	Text string
}

// Loader reads template files according to a configured extension mapping.
type Loader struct {
	cfg *config.Config
}

// New creates a Loader using the given configuration's extension classes.
func New(cfg *config.Config) *Loader {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Loader{cfg: cfg}
}

// Load reads one template file and returns its decoded text. HTML-class
// files are returned verbatim; module-class files go through default-export
// extraction.
func (l *Loader) Load(path string) (*Template, error) {
	ext := strings.ToLower(filepath.Ext(path))

	kind := l.cfg.KindForExtension(ext)
	if kind == config.KindUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s", ErrNotText, path)
	}

	text := string(content)
	if kind == config.KindModule {
		text, err = extractDefaultExport(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	base := filepath.Base(path)

	return &Template{
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
		Path: path,
		Kind: kind,
		Text: text,
	}, nil
}
