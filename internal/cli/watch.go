// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/api2spec/apidocgen/internal/config"
	"github.com/api2spec/apidocgen/internal/scanner"
)

var (
	watchDebounce int
	watchOpts     runOptions
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch controller files and regenerate documentation",
	Long: `Watch for controller file changes and regenerate the documentation.

This command monitors your C# source files and runs a full generation after
changes settle. Generations run one at a time and share no state.

Example:
  apidocgen watch                          # Watch configured source paths
  apidocgen watch ./src/Api                # Watch specific paths
  apidocgen watch --debounce 1000          # Wait 1s before regenerating`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default: watch.debounce)")
	watchCmd.Flags().StringVar(&watchOpts.title, "title", "", "document title")
	watchCmd.Flags().BoolVar(&watchOpts.continueOnError, "continue-on-error", false, "skip controller files that fail instead of aborting")
	watchCmd.Flags().BoolVar(&watchOpts.grouped, "grouped", false, "use the grouped section layout")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyOptions(cfg, watchOpts)
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Source.Paths
	}

	printVerbose("Watch configuration:")
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)

	regenerate := func() {
		if err := generateOnce(cfg, paths); err != nil {
			printError("%v", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	s := newScanner(cfg)
	roots, err := addWatchPaths(watcher, s, paths)
	if err != nil {
		return err
	}

	regenerate()

	printInfo("Watching for changes in: %s", strings.Join(paths, ", "))
	printInfo("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	match := func(name string) bool { return matchesRoots(s, roots, name) }
	return watchLoop(ctx, watcher, match, time.Duration(cfg.Watch.Debounce)*time.Millisecond, regenerate)
}

// generateOnce runs one controller generation into the configured output.
func generateOnce(cfg *config.Config, paths []string) error {
	f, err := outputFormat(cfg)
	if err != nil {
		return err
	}
	fn, err := generateControllers(cfg, paths, f, watchOpts.grouped)
	if err != nil {
		return err
	}
	return emit(cfg, fn, false)
}

// addWatchPaths watches every non-excluded directory under paths and
// returns the absolute roots.
func addWatchPaths(w *fsnotify.Watcher, s *scanner.Scanner, paths []string) ([]string, error) {
	var roots []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("path does not exist: %s", abs)
		}
		roots = append(roots, abs)

		if !info.IsDir() {
			if err := w.Add(filepath.Dir(abs)); err != nil {
				return nil, fmt.Errorf("failed to watch %s: %w", abs, err)
			}
			continue
		}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			rel, _ := filepath.Rel(abs, path)
			if s.ExcludedDir(filepath.ToSlash(rel)) {
				return filepath.SkipDir
			}
			return w.Add(path)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to watch %s: %w", abs, err)
		}
	}
	return roots, nil
}

// matchesRoots reports whether name is a selected C# file under one of the
// roots, or is itself a watched root file.
func matchesRoots(s *scanner.Scanner, roots []string, name string) bool {
	for _, root := range roots {
		if name == root {
			return scanner.DetectLanguage(name) == "csharp"
		}
		rel, err := filepath.Rel(root, name)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if s.Matches(filepath.ToSlash(rel)) {
			return true
		}
	}
	return false
}

// watchLoop runs regenerate once events for matching files have been quiet
// for the debounce duration. Newly created directories are watched too.
// It returns when ctx is done.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, match func(string) bool, debounce time.Duration, regenerate func()) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.Add(event.Name)
				}
			}
			if event.Has(fsnotify.Chmod) || !match(event.Name) {
				continue
			}
			logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			printVerbose("Regenerating...")
			regenerate()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			printError("watch error: %v", err)
		}
	}
}
