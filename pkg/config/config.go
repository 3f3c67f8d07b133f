// Package config defines core configuration types for snipscan.
// These types are pure data structures with no dependency on how
// configuration is discovered or loaded.
package config

import "fmt"

// OutputFormat specifies the output format for extraction results.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the output format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// FileKind classifies how a template file's text is obtained.
type FileKind string

const (
	// KindHTML files are read as literal HTML text.
	KindHTML FileKind = "html"

	// KindModule files are JavaScript-style modules whose default export
	// supplies the template text.
	KindModule FileKind = "module"

	// KindUnknown marks extensions that belong to neither class. Such files
	// must be rejected before any template text is produced from them.
	KindUnknown FileKind = ""
)

// Config is the root configuration structure for snipscan.
type Config struct {
	// HTMLExtensions lists extensions (lowercase, leading dot) read as
	// literal HTML text.
	HTMLExtensions []string `yaml:"html_extensions"`

	// ModuleExtensions lists extensions treated as JavaScript-style modules
	// whose default export supplies the template text.
	ModuleExtensions []string `yaml:"module_extensions"`

	// Include contains glob patterns restricting which files are processed.
	// Empty means "everything that matches the extension classes".
	Include []string `yaml:"include"`

	// Ignore contains glob patterns for files and directories to skip.
	Ignore []string `yaml:"ignore"`

	// FollowSymlinks controls whether directory symlinks are traversed
	// during discovery.
	FollowSymlinks bool `yaml:"follow_symlinks"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Strict makes per-file errors (unreadable or unloadable files) affect
	// the exit code. Malformed directive comments always do.
	Strict bool `yaml:"-"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		HTMLExtensions:   []string{".html", ".htm"},
		ModuleExtensions: []string{".js", ".mjs"},
		Format:           FormatText,
	}
}

// KindForExtension classifies a file extension (lowercase, leading dot)
// against the configured extension classes. An extension listed in both
// classes resolves as HTML, the more literal reading.
func (c *Config) KindForExtension(ext string) FileKind {
	for _, e := range c.HTMLExtensions {
		if e == ext {
			return KindHTML
		}
	}
	for _, e := range c.ModuleExtensions {
		if e == ext {
			return KindModule
		}
	}
	return KindUnknown
}

// Extensions returns the union of both extension classes.
func (c *Config) Extensions() []string {
	exts := make([]string, 0, len(c.HTMLExtensions)+len(c.ModuleExtensions))
	exts = append(exts, c.HTMLExtensions...)
	exts = append(exts, c.ModuleExtensions...)
	return exts
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Format != "" && !c.Format.IsValid() {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	if len(c.HTMLExtensions) == 0 && len(c.ModuleExtensions) == 0 {
		return fmt.Errorf("no template extensions configured")
	}
	return nil
}
