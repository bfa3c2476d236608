// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/apidocgen/internal/config"
	"github.com/api2spec/apidocgen/internal/plugins"
	_ "github.com/api2spec/apidocgen/internal/plugins/aspnet"
	"github.com/api2spec/apidocgen/internal/util"
)

var (
	initForce       bool
	initInteractive bool
	initTitle       string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new apidocgen configuration file",
	Long: `Initialize a new apidocgen configuration file in the current directory.

This command creates an apidocgen.yaml file with sensible defaults
that you can customize for your project.

Features:
  - Detects ASP.NET Core projects from their .csproj files
  - Infers the document title from the project name
  - Detects common controller directories

Example:
  apidocgen init                         # Create config with detected settings
  apidocgen init --force                 # Overwrite existing config
  apidocgen init --interactive           # Interactive mode with prompts
  apidocgen init --title "My API"        # Set custom document title`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "interactive mode with prompts")
	initCmd.Flags().StringVar(&initTitle, "title", "", "document title")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := config.DefaultFileName

	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	cfg := config.Default()

	printVerbose("Detecting framework...")
	if p, err := plugins.Detect(projectRoot); err != nil {
		printVerbose("Framework detection failed: %v", err)
		printInfo("No ASP.NET Core project detected, scanning all C# files.")
	} else {
		printInfo("Detected framework: %s", p.Name())
	}

	info := detectProjectInfo(projectRoot)
	if initTitle != "" {
		cfg.Title = initTitle
	} else if info.Title != "" {
		cfg.Title = info.Title
	}

	entryPoints := detectEntryPoints(projectRoot)
	cfg.Source.Paths = entryPoints
	printVerbose("Detected entry points: %s", strings.Join(entryPoints, ", "))

	if initInteractive && isTerminal() {
		if err := interactiveInit(cmd.InOrStdin(), cmd.OutOrStdout(), cfg); err != nil {
			return fmt.Errorf("interactive init failed: %w", err)
		}
	}

	output, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFile, []byte(output), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Output: %s", cfg.Output)
	printVerbose("Paths: %s", strings.Join(cfg.Source.Paths, ", "))

	return nil
}

// projectInfo holds information detected from the project.
type projectInfo struct {
	Title   string
	Project string
}

// detectProjectInfo derives a title from the first .csproj file found in
// projectRoot or one directory below it.
func detectProjectInfo(projectRoot string) projectInfo {
	matches, _ := filepath.Glob(filepath.Join(projectRoot, "*.csproj"))
	if len(matches) == 0 {
		matches, _ = filepath.Glob(filepath.Join(projectRoot, "*", "*.csproj"))
	}
	if len(matches) == 0 {
		return projectInfo{}
	}
	sort.Strings(matches)

	name := strings.TrimSuffix(filepath.Base(matches[0]), filepath.Ext(matches[0]))
	words := strings.Fields(util.Humanize(name))
	if n := len(words); n > 0 && strings.EqualFold(words[n-1], "api") {
		words = words[:n-1]
	}
	words = append(words, "API")
	return projectInfo{Title: strings.Join(words, " "), Project: name}
}

// detectEntryPoints returns the conventional controller directories present
// in projectRoot, or "." when there are none.
func detectEntryPoints(projectRoot string) []string {
	candidates := []string{"./Controllers", "./src", "./Api"}

	var paths []string
	for _, p := range candidates {
		if stat, err := os.Stat(filepath.Join(projectRoot, p)); err == nil && stat.IsDir() {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}
	return paths
}

// isTerminal checks if stdin is a terminal.
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// interactiveInit prompts for the settings most projects change.
func interactiveInit(in io.Reader, out io.Writer, cfg *config.Config) error {
	reader := bufio.NewReader(in)
	prompt := func(label string, value *string) error {
		fmt.Fprintf(out, "%s [%s]: ", label, *value)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if line = strings.TrimSpace(line); line != "" {
			*value = line
		}
		return nil
	}

	if err := prompt("Document title", &cfg.Title); err != nil {
		return err
	}
	if err := prompt("Output file", &cfg.Output); err != nil {
		return err
	}
	return prompt("Output format (markdown/yaml/json)", &cfg.Format)
}

// buildConfigYAML renders cfg as YAML behind a header comment.
func buildConfigYAML(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	header := `# apidocgen configuration file
# Environment variables prefixed with APIDOCGEN_ override these keys.

`
	return header + string(data), nil
}
