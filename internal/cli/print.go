// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/api2spec/apidocgen/internal/render"
	"github.com/api2spec/apidocgen/internal/scanner"
)

var printCmd = &cobra.Command{
	Use:   "print <file|dir>",
	Short: "Print the document model to stdout",
	Long: `Print the document model to standard output.

A JSON or YAML file is loaded as an OpenAPI document; a C# file or a
directory is scanned for controllers. The model is printed as YAML unless
--format says otherwise.

This is useful for piping the output to other tools or for quick inspection.

Example:
  apidocgen print swagger.json              # OpenAPI model as YAML
  apidocgen print ./Controllers             # Controller model as YAML
  apidocgen print api.yaml -f json | jq .   # Pipe to jq for processing`,
	Args: cobra.ExactArgs(1),
	RunE: runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f := render.FormatYAML
	if format != "" {
		if f, err = render.ParseFormat(format); err != nil {
			return err
		}
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	printVerbose("Print configuration:")
	printVerbose("  Format: %s", f)

	if !info.IsDir() && !scanner.IsSupportedFile(path) {
		return newUsageError("unsupported input %s: expected a .cs, .json, .yaml or .yml file", path)
	}

	if !info.IsDir() && scanner.DetectLanguage(path) != "csharp" {
		fn, err := generateOpenAPI(cfg, path, f)
		if err != nil {
			return err
		}
		return fn(cmd.OutOrStdout())
	}

	fn, err := generateControllers(cfg, []string{path}, f, true)
	if err != nil {
		return err
	}
	return fn(cmd.OutOrStdout())
}
