// Package main is the entry point for the snipscan CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/snipscan/internal/cli"
	"github.com/yaklabco/snipscan/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// The exit signals carry codes the reporter already explained;
		// everything else gets logged.
		if !errors.Is(err, cli.ErrMalformedFound) && !errors.Is(err, cli.ErrFilesErrored) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.CodeForError(err)
	}

	return cli.ExitSuccess
}
