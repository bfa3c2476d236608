// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"github.com/spf13/cobra"
)

var generateOpts runOptions

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate API documentation",
	Long: `Generate API documentation from ASP.NET controllers or an OpenAPI document.

Sources:
  controllers  Scan C# controller files for routes and XML doc comments
  openapi      Flatten an OpenAPI 3.x or Swagger 2.0 document

Example:
  apidocgen generate controllers                  # Scan configured source paths
  apidocgen generate controllers ./src -o api.md  # Scan ./src
  apidocgen generate openapi swagger.json -f yaml # Document model as YAML
  apidocgen generate openapi api.yaml --dry-run   # Preview without writing`,
}

var generateControllersCmd = &cobra.Command{
	Use:   "controllers [paths...]",
	Short: "Generate documentation from ASP.NET controller files",
	RunE:  runGenerateControllers,
}

var generateOpenAPICmd = &cobra.Command{
	Use:   "openapi <file>",
	Short: "Generate documentation from an OpenAPI or Swagger document",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerateOpenAPI,
}

func init() {
	flags := generateCmd.PersistentFlags()
	flags.StringVar(&generateOpts.title, "title", "", "document title")
	flags.BoolVar(&generateOpts.continueOnError, "continue-on-error", false, "skip controller files that fail instead of aborting")
	flags.BoolVar(&generateOpts.dryRun, "dry-run", false, "print output instead of writing to file")

	generateControllersCmd.Flags().BoolVar(&generateOpts.grouped, "grouped", false, "use the grouped section layout instead of the flat controller layout")

	generateCmd.AddCommand(generateControllersCmd)
	generateCmd.AddCommand(generateOpenAPICmd)
}

func runGenerateControllers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyOptions(cfg, generateOpts)

	f, err := outputFormat(cfg)
	if err != nil {
		return err
	}

	printVerbose("Configuration:")
	printVerbose("  Title: %s", cfg.Title)
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Format: %s", f)

	fn, err := generateControllers(cfg, args, f, generateOpts.grouped)
	if err != nil {
		return err
	}
	return emit(cfg, fn, generateOpts.dryRun)
}

func runGenerateOpenAPI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyOptions(cfg, generateOpts)

	f, err := outputFormat(cfg)
	if err != nil {
		return err
	}

	printVerbose("Configuration:")
	printVerbose("  Input: %s", args[0])
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Format: %s", f)

	fn, err := generateOpenAPI(cfg, args[0], f)
	if err != nil {
		return err
	}
	return emit(cfg, fn, generateOpts.dryRun)
}
