// Package cli provides the Cobra command structure for snipscan.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/snipscan/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root snipscan command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "snipscan",
		Short: "Extract directives from HTML template comments",
		Long: `snipscan scans HTML templates and JS template modules for directive
comments of the form <!-- @name attr="value" -->.

It splits each template into comment and non-comment segments with a
quote-aware scanner, then parses every comment as a potential directive.
Comments that do not start with @ are ignored; comments that look like
directives but are malformed are reported with the byte offset of the
problem.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
