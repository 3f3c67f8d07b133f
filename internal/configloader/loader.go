// Package configloader provides configuration loading and resolution:
// project config discovery by upward search, environment variable
// overrides, and CLI flag merging.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/snipscan/pkg/config"
)

// configFileNames are the project config file names, tried in order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var configFileNames = []string{".snipscan.yml", ".snipscan.yaml"}

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (SNIPSCAN_*)
//  3. Explicit config file (opts.ExplicitPath) or discovered project config
//  4. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("config load cancelled: %w", ctx.Err())
	default:
	}

	result := &LoadResult{Config: config.Default()}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	configPath := opts.ExplicitPath
	if configPath == "" {
		configPath = discoverProjectConfig(workDir)
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}

	if configPath != "" {
		fileCfg, err := loadFile(configPath)
		if err != nil {
			return nil, err
		}
		merge(result.Config, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, configPath)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(result.Config); err != nil {
			result.Warnings = append(result.Warnings, err.Error())
		}
	}

	if opts.CLIConfig != nil {
		mergeCLI(result.Config, opts.CLIConfig)
	}

	if err := result.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return result, nil
}

// discoverProjectConfig searches workDir and its ancestors for a project
// config file, returning the first hit or "".
func discoverProjectConfig(workDir string) string {
	dir := workDir
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFile reads and parses one YAML config file.
func loadFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// merge applies non-empty fields of src over dst.
func merge(dst, src *config.Config) {
	if len(src.HTMLExtensions) > 0 {
		dst.HTMLExtensions = src.HTMLExtensions
	}
	if len(src.ModuleExtensions) > 0 {
		dst.ModuleExtensions = src.ModuleExtensions
	}
	if len(src.Include) > 0 {
		dst.Include = src.Include
	}
	if len(src.Ignore) > 0 {
		dst.Ignore = src.Ignore
	}
	if src.FollowSymlinks {
		dst.FollowSymlinks = true
	}
}

// mergeCLI applies CLI-provided values, which win over everything. Ignore
// patterns accumulate rather than replace, so --ignore adds to the
// project's list.
func mergeCLI(dst, cli *config.Config) {
	projectIgnore := dst.Ignore
	merge(dst, cli)
	dst.Ignore = projectIgnore

	if len(cli.Ignore) > 0 {
		seen := make(map[string]struct{}, len(dst.Ignore))
		for _, pattern := range dst.Ignore {
			seen[pattern] = struct{}{}
		}
		for _, pattern := range cli.Ignore {
			if _, ok := seen[pattern]; !ok {
				dst.Ignore = append(dst.Ignore, pattern)
			}
		}
	}

	if cli.Format != "" {
		dst.Format = cli.Format
	}
	if cli.Jobs != 0 {
		dst.Jobs = cli.Jobs
	}
	if cli.Strict {
		dst.Strict = true
	}
}
