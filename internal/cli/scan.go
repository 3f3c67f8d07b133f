package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/snipscan/internal/configloader"
	"github.com/yaklabco/snipscan/internal/logging"
	"github.com/yaklabco/snipscan/pkg/config"
	"github.com/yaklabco/snipscan/pkg/loader"
	"github.com/yaklabco/snipscan/pkg/reporter"
	"github.com/yaklabco/snipscan/pkg/runner"
)

// ErrMalformedFound is returned when malformed directives are found, and
// ErrFilesErrored when --strict escalates per-file errors. Both are exit
// signals the reporter has already explained; main does not log them.
var (
	ErrMalformedFound = errors.New("malformed directives found")
	ErrFilesErrored   = errors.New("files failed to process")
)

type scanFlags struct {
	format         string
	include        []string
	ignore         []string
	jobs           int
	strict         bool
	followSymlinks bool
	compact        bool
	noSummary      bool
}

func newScanCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Scan templates for directive comments",
		Long:  scanLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, flags)
		},
	}

	addScanFlags(cmd, flags)

	return cmd
}

const scanLongDescription = `Scan HTML templates and JS template modules for directive comments.

By default, scans all .html, .htm, .js and .mjs files in the current
directory and subdirectories. Specify paths to scan specific files or
directories.

Examples:
  snipscan scan                       # Scan current directory
  snipscan scan templates/            # Scan templates directory
  snipscan scan index.html            # Scan single file
  snipscan scan --format json         # Output as JSON for CI
  snipscan scan --ignore "dist/**"    # Skip built output
  snipscan scan --strict              # Treat file errors as fatal`

func runScan(cmd *cobra.Command, args []string, flags *scanFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("get working directory: %w", err)}
	}

	// Map flags to a CLI config overlay. Only explicitly provided values
	// should override file and env configuration.
	cliCfg := &config.Config{
		Include: flags.include,
		Ignore:  flags.ignore,
		Jobs:    flags.jobs,
		Strict:  flags.strict,
	}
	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("follow-symlinks") {
		cliCfg.FollowSymlinks = flags.followSymlinks
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return &ExitError{
			Code: ExitConfigError,
			Err:  errors.Join(errors.New("failed to load configuration"), err),
		}
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldFormat, finalCfg.Format,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldStrict, finalCfg.Strict,
	)

	scanRunner := runner.New(loader.New(finalCfg))

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		IncludeGlobs:   finalCfg.Include,
		ExcludeGlobs:   finalCfg.Ignore,
		FollowSymlinks: finalCfg.FollowSymlinks,
		Jobs:           finalCfg.Jobs,
		Config:         finalCfg,
	}

	logger.Debug("starting scan",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := scanRunner.Run(ctx, runOpts)
	if err != nil {
		return &ExitError{
			Code: ExitIOError,
			Err:  errors.Join(errors.New("scan failed"), err),
		}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      finalCfg.Format,
		Color:       colorMode,
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return &ExitError{Code: ExitConfigError, Err: fmt.Errorf("create reporter: %w", err)}
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("report results: %w", err)}
	}

	switch code := ExitCodeFromResult(result, finalCfg.Strict); code {
	case ExitSuccess:
		return nil
	case ExitMalformed:
		return &ExitError{Code: code, Err: ErrMalformedFound}
	default:
		return &ExitError{Code: code, Err: ErrFilesErrored}
	}
}

func addScanFlags(cmd *cobra.Command, flags *scanFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "glob patterns to include")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat file errors as fatal for exit code")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line")
}
