// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/api2spec/apidocgen/internal/config"
	"github.com/api2spec/apidocgen/internal/document"
	"github.com/api2spec/apidocgen/internal/openapi"
	"github.com/api2spec/apidocgen/internal/render"
	"github.com/api2spec/apidocgen/internal/scanner"
	"github.com/api2spec/apidocgen/pkg/types"
)

// runOptions are the command-line overrides of one generation.
type runOptions struct {
	title           string
	continueOnError bool
	dryRun          bool
	grouped         bool
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyOptions applies command overrides on top of the config.
func applyOptions(cfg *config.Config, opts runOptions) {
	if opts.title != "" {
		cfg.Title = opts.title
	}
	if opts.continueOnError {
		cfg.Generation.ContinueOnError = true
	}
}

// outputFormat resolves the configured format, falling back to the output
// file extension.
func outputFormat(cfg *config.Config) (render.Format, error) {
	f, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return "", err
	}
	if f == "" {
		f = render.FormatFromPath(cfg.Output)
	}
	return f, nil
}

// newBuilder creates a document builder configured from cfg.
func newBuilder(cfg *config.Config) *document.Builder {
	return document.NewBuilder(
		document.WithTitle(cfg.Title),
		document.WithLogger(logger),
		document.WithContinueOnError(cfg.Generation.ContinueOnError),
		document.WithEmptySummary(cfg.Generation.EmitEmptySummary),
	)
}

// newScanner creates a controller file scanner configured from cfg.
func newScanner(cfg *config.Config) *scanner.Scanner {
	return scanner.New(scanner.Config{
		IncludePatterns: cfg.Source.Include,
		ExcludePatterns: cfg.Source.Exclude,
	})
}

// scanUnits reads the controller files under paths.
func scanUnits(cfg *config.Config, paths []string) ([]types.SourceUnit, error) {
	if len(paths) == 0 {
		paths = cfg.Source.Paths
	}
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	files, err := newScanner(cfg).ScanPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan files: %w", err)
	}
	logger.Debug("scanned controller files", "count", len(files))
	return scanner.Units(files), nil
}

// generateControllers runs controller mode and renders the result in f.
// With continue-on-error, unit errors are reported and the remaining units
// are still rendered.
func generateControllers(cfg *config.Config, paths []string, f render.Format, grouped bool) (func(io.Writer) error, error) {
	units, err := scanUnits(cfg, paths)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("no controller files found")
	}

	doc, cdoc, err := newBuilder(cfg).FromUnits(units)
	if err != nil {
		if doc == nil {
			return nil, err
		}
		printError("%v", err)
	}

	w := render.NewWriter()
	w.EmitEmptySummary = cfg.Generation.EmitEmptySummary
	if grouped {
		return func(out io.Writer) error { return w.Write(doc, f, out) }, nil
	}
	return func(out io.Writer) error { return w.WriteControllers(cdoc, f, out) }, nil
}

// generateOpenAPI runs OpenAPI mode and renders the result in f.
func generateOpenAPI(cfg *config.Config, path string, f render.Format) (func(io.Writer) error, error) {
	src, err := openapi.LoadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := newBuilder(cfg).FromOpenAPI(src)
	if err != nil {
		return nil, err
	}

	w := render.NewWriter()
	return func(out io.Writer) error { return w.Write(doc, f, out) }, nil
}

// emit writes the rendered document to the configured output, or to the
// command output in dry-run mode.
func emit(cfg *config.Config, fn func(io.Writer) error, dryRun bool) error {
	if dryRun {
		printVerbose("Dry run mode - no files will be written")
		return fn(rootCmd.OutOrStdout())
	}

	if err := render.NewWriter().WriteFile(cfg.Output, fn); err != nil {
		return err
	}
	printInfo("Wrote %s", cfg.Output)
	return nil
}
