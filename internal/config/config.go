// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for apidocgen.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/api2spec/apidocgen/internal/render"
	"github.com/api2spec/apidocgen/internal/scanner"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. APIDOCGEN_GENERATION_CONTINUEONERROR=true.
const EnvPrefix = "APIDOCGEN"

// Config represents the apidocgen configuration.
type Config struct {
	// Title is the document title. OpenAPI mode falls back to info.title and
	// appends " v<info.version>"
	Title string `mapstructure:"title" yaml:"title" json:"title"`

	// Output is the output file path for the generated document
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Format is the output format (markdown, yaml, json)
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// Source contains controller scanning configuration
	Source SourceConfig `mapstructure:"source" yaml:"source" json:"source"`

	// Generation contains generation behavior configuration
	Generation GenerationConfig `mapstructure:"generation" yaml:"generation" json:"generation"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// SourceConfig contains controller scanning configuration.
type SourceConfig struct {
	// Paths is a list of paths to scan
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Include is a list of glob patterns to include
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude is a list of glob patterns to exclude
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// GenerationConfig contains generation behavior configuration.
type GenerationConfig struct {
	// ContinueOnError skips failing controller files instead of aborting
	ContinueOnError bool `mapstructure:"continueOnError" yaml:"continueOnError" json:"continueOnError"`

	// EmitEmptySummary keeps a "Summary" line for comments without <summary>
	EmitEmptySummary bool `mapstructure:"emitEmptySummary" yaml:"emitEmptySummary" json:"emitEmptySummary"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"apidocgen.yaml",
	"apidocgen.json",
	".apidocgen.yaml",
	".apidocgen.json",
}

// DefaultFileName is the file written by "apidocgen init".
const DefaultFileName = "apidocgen.yaml"

// supportedFormats is the list of supported output formats.
var supportedFormats = []string{
	string(render.FormatMarkdown),
	string(render.FormatYAML),
	string(render.FormatJSON),
}

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Output: "api.md",
		Format: string(render.FormatMarkdown),
		Source: SourceConfig{
			Paths:   []string{"."},
			Include: append([]string(nil), scanner.DefaultIncludePatterns...),
			Exclude: append([]string(nil), scanner.DefaultExcludePatterns...),
		},
		Generation: GenerationConfig{
			ContinueOnError:  false,
			EmitEmptySummary: true,
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
	}
}

// Load loads the configuration.
// It searches the working directory for config files in the following order:
// 1. apidocgen.yaml
// 2. apidocgen.json
// 3. .apidocgen.yaml
// 4. .apidocgen.json
//
// If configPath is provided, it will use that path instead. Environment
// variables prefixed with APIDOCGEN_ override file values and defaults.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findConfigFile(".")
	}
	return load(configPath)
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	return load(findConfigFile(dir))
}

func load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ConfigFilePath returns the path of the config file Load("") would read,
// or "" when there is none.
func ConfigFilePath() string {
	return findConfigFile(".")
}

func findConfigFile(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("title", d.Title)
	v.SetDefault("output", d.Output)
	v.SetDefault("format", d.Format)
	v.SetDefault("source.paths", d.Source.Paths)
	v.SetDefault("source.include", d.Source.Include)
	v.SetDefault("source.exclude", d.Source.Exclude)
	v.SetDefault("generation.continueOnError", d.Generation.ContinueOnError)
	v.SetDefault("generation.emitEmptySummary", d.Generation.EmitEmptySummary)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Format != "" && !contains(supportedFormats, c.Format) {
		errs = append(errs, ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported format %q, must be one of: %s", c.Format, strings.Join(supportedFormats, ", ")),
		})
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	for _, p := range append(append([]string(nil), c.Source.Include...), c.Source.Exclude...) {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, ValidationError{
				Field:   "source",
				Message: "glob patterns must not be empty",
			})
			break
		}
	}

	if len(c.Source.Paths) == 0 {
		errs = append(errs, ValidationError{
			Field:   "source.paths",
			Message: "at least one path is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
