package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// DefaultYAML returns the commented starter configuration written by
// `snipscan init`.
func DefaultYAML() []byte {
	return []byte(`# snipscan configuration.
#
# Extensions in html_extensions are read as literal HTML text; extensions in
# module_extensions are JavaScript-style modules whose default export
# supplies the template text. Files matching neither class are rejected.

html_extensions:
  - .html
  - .htm

module_extensions:
  - .js
  - .mjs

# Glob patterns. include restricts processing; ignore skips files and
# directories. Both support ** (e.g. "templates/**").
include: []
ignore:
  - node_modules/**
  - dist/**
`)
}
