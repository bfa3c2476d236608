// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/apidocgen/internal/config"
)

const itemsController = `namespace Shop.Controllers;

[Route("api/v{v:apiVersion}/[controller]")]
[ApiVersion("1")]
public class ItemsController : ControllerBase
{
    [HttpGet("list")]
    /// <summary>Gets items</summary>
    public IActionResult Get() => Ok();
}
`

const brokenController = `[Route("api/[controller]")]
public class BrokenController : ControllerBase
{
    [HttpGet]
    /// <summary>Unclosed
    public IActionResult Get() => Ok();
}
`

const widgetsOpenAPI = `{
  "openapi": "3.0.3",
  "info": {"title": "Widget API", "version": "1.0"},
  "paths": {
    "/widgets": {
      "get": {
        "tags": ["Widgets"],
        "summary": "List widgets",
        "responses": {"200": {"description": "OK"}}
      }
    }
  }
}`

// executeCommand runs a command and returns output and error.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

// resetFlags restores the flag-bound globals between command runs.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		cfgFile, output, format = "", "", ""
		verbose, quiet = false, false
		generateOpts = runOptions{}
		watchOpts = runOptions{}
		watchDebounce = 0
		initForce, initInteractive, initTitle = false, false, ""
	}
	reset()
	t.Cleanup(reset)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(original) })
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestRootCommand_Help(t *testing.T) {
	resetFlags(t)
	out, err := executeCommand(rootCmd, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "apidocgen")
	assert.Contains(t, out, "Available Commands")
	for _, name := range []string{"generate", "init", "check", "watch", "print", "version"} {
		assert.Contains(t, out, name)
	}
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	flags := map[string]string{
		"config":  "c",
		"output":  "o",
		"format":  "f",
		"verbose": "v",
		"quiet":   "q",
	}
	for name, short := range flags {
		f := rootCmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, short, f.Shorthand)
	}
}

func TestVersionCommand(t *testing.T) {
	resetFlags(t)
	out, err := executeCommand(rootCmd, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "apidocgen dev")
	assert.Contains(t, out, "Go Version:")
	assert.Equal(t, "apidocgen dev (commit: unknown, built: unknown)", GetVersionInfo())
}

func TestGenerateControllers_DryRun(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"Controllers/ItemsController.cs": itemsController})
	chdir(t, dir)

	out, err := executeCommand(rootCmd, "generate", "controllers", "Controllers", "--dry-run", "--title", "Shop")
	require.NoError(t, err)

	assert.Contains(t, out, "# Shop\n")
	assert.Contains(t, out, "\n## ItemsController v1\n")
	assert.Contains(t, out, "Base path: `api/v1/items`")
	assert.Contains(t, out, "1. `GET /api/v1/items/list`\n  - **Summary**: Gets items\n")
	assert.NoFileExists(t, filepath.Join(dir, "api.md"))
}

func TestGenerateControllers_WritesOutput(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"ItemsController.cs": itemsController})
	chdir(t, dir)

	out, err := executeCommand(rootCmd, "generate", "controllers", "-o", "docs/items.json", "-f", "json", "--grouped")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote docs/items.json")

	data, err := os.ReadFile(filepath.Join(dir, "docs", "items.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "GET /api/v1/items/list")
}

func TestGenerateControllers_MalformedComment(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"BrokenController.cs": brokenController,
		"ItemsController.cs":  itemsController,
	})
	chdir(t, dir)

	_, err := executeCommand(rootCmd, "generate", "controllers", "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BrokenController")

	out, err := executeCommand(rootCmd, "generate", "controllers", "--dry-run", "--continue-on-error")
	require.NoError(t, err)
	assert.Contains(t, out, "Error: BrokenController")
	assert.Contains(t, out, "GET /api/v1/items/list")
}

func TestGenerateControllers_NoFiles(t *testing.T) {
	resetFlags(t)
	chdir(t, t.TempDir())

	_, err := executeCommand(rootCmd, "generate", "controllers", "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no controller files found")
}

func TestGenerateOpenAPI_DryRun(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"openapi.json": widgetsOpenAPI})
	chdir(t, dir)

	out, err := executeCommand(rootCmd, "generate", "openapi", "openapi.json", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "# Widget API v1.0\n")
	assert.Contains(t, out, "\n## Widgets Endpoints\n")
	assert.Contains(t, out, "\n### 1. /widgets\n")
	assert.Contains(t, out, "**Summary**: List widgets")
}

func TestGenerateOpenAPI_MissingFile(t *testing.T) {
	resetFlags(t)
	chdir(t, t.TempDir())

	_, err := executeCommand(rootCmd, "generate", "openapi", "missing.json", "--dry-run")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerate_InvalidFormat(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"openapi.json": widgetsOpenAPI})
	chdir(t, dir)

	_, err := executeCommand(rootCmd, "generate", "openapi", "openapi.json", "-f", "docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestPrintCommand(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"openapi.json":       widgetsOpenAPI,
		"ItemsController.cs": itemsController,
	})
	chdir(t, dir)

	out, err := executeCommand(rootCmd, "print", "openapi.json")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Widget API v1.0")

	out, err = executeCommand(rootCmd, "print", "ItemsController.cs", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"GET /api/v1/items/list"`)

	writeFiles(t, dir, map[string]string{"notes.txt": "hello"})
	_, err = executeCommand(rootCmd, "print", "notes.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsage)
}

func TestCheckCommand(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		resetFlags(t)
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"ItemsController.cs": itemsController})
		chdir(t, dir)

		out, err := executeCommand(rootCmd, "check")
		require.NoError(t, err)
		assert.Equal(t, ExitCodeClean, ExitCode(err))
		assert.Contains(t, out, "Checked 1 files, 1 with routes, 0 with problems")
	})

	t.Run("problems", func(t *testing.T) {
		resetFlags(t)
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"BrokenController.cs": brokenController,
			"ItemsController.cs":  itemsController,
		})
		chdir(t, dir)

		out, err := executeCommand(rootCmd, "check")
		require.Error(t, err)
		assert.Equal(t, ExitCodeProblems, ExitCode(err))
		assert.Contains(t, out, "Checked 2 files, 1 with routes, 1 with problems")
	})

	t.Run("analysis error", func(t *testing.T) {
		resetFlags(t)
		chdir(t, t.TempDir())

		_, err := executeCommand(rootCmd, "check", "does-not-exist")
		require.Error(t, err)
		assert.Equal(t, ExitCodeCheckError, ExitCode(err))
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 2, ExitCode(fmt.Errorf("wrapped: %w", &ExitError{Code: 2, Err: errors.New("x")})))
}

func TestMatchesRoots(t *testing.T) {
	root := t.TempDir()
	s := newScanner(config.Default())
	roots := []string{root}

	assert.True(t, matchesRoots(s, roots, filepath.Join(root, "Controllers", "ItemsController.cs")))
	assert.False(t, matchesRoots(s, roots, filepath.Join(root, "obj", "Debug", "Gen.cs")))
	assert.False(t, matchesRoots(s, roots, filepath.Join(root, "README.md")))
	assert.False(t, matchesRoots(s, roots, filepath.Join(filepath.Dir(root), "Other.cs")))
}

func TestWatchLoop_DebouncesEvents(t *testing.T) {
	dir := t.TempDir()
	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()

	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, w, func(string) bool { return true }, 50*time.Millisecond, func() { runs.Add(1) })
	}()

	for i := range 3 {
		w.Events <- fsnotify.Event{Name: filepath.Join(dir, fmt.Sprintf("C%d.cs", i)), Op: fsnotify.Write}
	}

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())

	cancel()
	require.NoError(t, <-done)
}

func TestWatchLoop_IgnoresUnmatched(t *testing.T) {
	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()

	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, w, func(string) bool { return false }, 10*time.Millisecond, func() { runs.Add(1) })
	}()

	w.Events <- fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}
	time.Sleep(50 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	assert.Zero(t, runs.Load())
}

func TestAddWatchPaths_SkipsExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []string{"Controllers", "obj/Debug", "bin"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, d), 0o755))
	}

	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()

	roots, err := addWatchPaths(w, newScanner(config.Default()), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{dir}, roots)

	watched := w.WatchList()
	assert.Contains(t, watched, dir)
	assert.Contains(t, watched, filepath.Join(dir, "Controllers"))
	assert.NotContains(t, watched, filepath.Join(dir, "obj"))
	assert.NotContains(t, watched, filepath.Join(dir, "bin"))

	_, err = addWatchPaths(w, newScanner(config.Default()), []string{filepath.Join(dir, "missing")})
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false).Debug("hidden detail")
	newLogger(&buf, false).Warn("skipped unit", "unit", "BrokenController")
	assert.NotContains(t, buf.String(), "hidden detail")
	assert.Contains(t, buf.String(), "skipped unit")
	assert.Contains(t, buf.String(), "BrokenController")

	buf.Reset()
	newLogger(&buf, true).Debug("change detected")
	assert.Contains(t, buf.String(), "change detected")
}
