package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/snipscan/pkg/config"
)

// envVarPrefix is the prefix for all snipscan environment variables.
const envVarPrefix = "SNIPSCAN_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FORMAT":            {field: "format", typ: envTypeString},
	"JOBS":              {field: "jobs", typ: envTypeInt},
	"STRICT":            {field: "strict", typ: envTypeBool},
	"FOLLOW_SYMLINKS":   {field: "follow_symlinks", typ: envTypeBool},
	"INCLUDE":           {field: "include", typ: envTypeSlice},
	"IGNORE":            {field: "ignore", typ: envTypeSlice},
	"HTML_EXTENSIONS":   {field: "html_extensions", typ: envTypeSlice},
	"MODULE_EXTENSIONS": {field: "module_extensions", typ: envTypeSlice},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SNIPSCAN_ (e.g., SNIPSCAN_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "strict":
		cfg.Strict = value
	case "follow_symlinks":
		cfg.FollowSymlinks = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "include":
		cfg.Include = value
	case "ignore":
		cfg.Ignore = value
	case "html_extensions":
		cfg.HTMLExtensions = value
	case "module_extensions":
		cfg.ModuleExtensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"SNIPSCAN_FORMAT":            "Output format: text or json",
		"SNIPSCAN_JOBS":              "Number of parallel workers (0 = auto)",
		"SNIPSCAN_STRICT":            "Treat per-file errors as fatal: true or false",
		"SNIPSCAN_FOLLOW_SYMLINKS":   "Follow symbolic links during discovery: true or false",
		"SNIPSCAN_INCLUDE":           "Comma-separated list of include patterns",
		"SNIPSCAN_IGNORE":            "Comma-separated list of ignore patterns",
		"SNIPSCAN_HTML_EXTENSIONS":   "Comma-separated list of HTML template extensions",
		"SNIPSCAN_MODULE_EXTENSIONS": "Comma-separated list of JS module extensions",
	}
}
