// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface for apidocgen.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	output  string
	format  string
	verbose bool
	quiet   bool
)

// logger receives diagnostics from the engine. It is replaced before every
// command runs.
var logger = slog.New(slog.DiscardHandler)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "apidocgen",
	Short: "API documentation generator for ASP.NET controllers and OpenAPI documents",
	Long: `apidocgen builds API documentation from ASP.NET controller sources or
from an OpenAPI (or Swagger 2.0) document.

Controller files are read with routing attribute and XML doc comment
heuristics; OpenAPI documents are flattened into route, method, parameter
and schema field listings. Output is Markdown, YAML or JSON.

Example:
  apidocgen generate controllers ./src/Api   # Document controller routes
  apidocgen generate openapi swagger.json    # Document an OpenAPI file
  apidocgen check                            # Report malformed doc comments
  apidocgen watch                            # Regenerate on changes`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: apidocgen.yaml)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file path (default: api.md)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format: markdown, yaml, json (default: markdown)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(printCmd)
}

// newLogger creates the diagnostics logger: a charm handler behind slog,
// at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          "apidocgen",
		Level:           log.WarnLevel,
	})
	if verbose {
		handler.SetLevel(log.DebugLevel)
	}
	return slog.New(handler)
}

// printInfo prints a message if not in quiet mode.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(rootCmd.OutOrStdout(), format+"\n", args...)
	}
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(rootCmd.OutOrStdout(), format+"\n", args...)
	}
}

// printError prints an error message.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: "+format+"\n", args...)
}
