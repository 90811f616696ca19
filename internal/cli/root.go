// Package cli provides the Cobra command structure for gotexml.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexml/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gotexml command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "gotexml",
		Short: "Translate TeX and Markdown math into MathML documents",
		Long: `gotexml translates the formulas of TeX and Markdown sources into XML
documents with embedded MathML.

Before a formula is encoded, a layout pass wraps small delimiters that sit
next to big operators in their own rows, so that renderers keep the
parentheses and bars of an integrand at their natural size.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging (includes layout traces)")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().String("color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newTranslateCommand())
	rootCmd.AddCommand(newExplainCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd)

	return rootCmd
}
