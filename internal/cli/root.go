// Package cli provides the Cobra command structure for mathdown.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mathdown/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mathdown command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mathdown",
		Short: "Markdown with LaTeX math, rendered to themed HTML",
		Long: `mathdown converts Markdown documents containing LaTeX math into HTML.

Math spans ($...$, $$...$$ and \begin{env}...\end{env}) are protected from
the Markdown converter and restored verbatim for MathJax. Headings can be
numbered hierarchically (1.a.i style) and collected into a table of
contents. Documents can be rendered one at a time, built in bulk, or
served from a directory.`,
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

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newTOCCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
