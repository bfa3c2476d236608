// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/api2spec/apidocgen/internal/plugins/aspnet"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check controller files for malformed doc comments",
	Long: `Check extracts every controller file and reports the ones whose XML
doc comments cannot be parsed. It's useful in CI pipelines to keep the
generated documentation buildable.

Exit codes:
  0  No problems found
  1  At least one controller file has a malformed doc comment
  2  Error during analysis

Example:
  apidocgen check                      # Check configured source paths
  apidocgen check ./src/Api            # Check a specific directory`,
	RunE: runCheck,
}

// checkResult summarizes one check run.
type checkResult struct {
	Units    int
	Routed   int
	Problems []error
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}

	printVerbose("Check configuration:")
	units, err := scanUnits(cfg, args)
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}

	result := checkResult{Units: len(units)}
	extractor := aspnet.New()
	for _, unit := range units {
		ur, err := extractor.ExtractUnit(unit)
		if err != nil {
			result.Problems = append(result.Problems, err)
			continue
		}
		if ur.BasePath != "" || len(ur.Endpoints) > 0 {
			result.Routed++
		}
		printVerbose("  %s: %d endpoints", unit.Name, len(ur.Endpoints))
	}

	for _, p := range result.Problems {
		printError("%v", p)
	}

	printInfo("Checked %d files, %d with routes, %d with problems",
		result.Units, result.Routed, len(result.Problems))

	if len(result.Problems) > 0 {
		return &ExitError{
			Code: ExitCodeProblems,
			Err:  fmt.Errorf("%d controller files have malformed doc comments", len(result.Problems)),
		}
	}
	return nil
}
