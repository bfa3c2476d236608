// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Default patterns applied when the configuration leaves them empty.
var (
	DefaultIncludePatterns = []string{"**/*.cs"}
	DefaultExcludePatterns = []string{"bin/**", "obj/**", "**/bin/**", "**/obj/**"}
)

// Config holds scanner configuration.
type Config struct {
	// BasePath is the directory patterns are relative to (defaults to current directory)
	BasePath string

	// IncludePatterns are glob patterns for files to include (e.g., "Controllers/**/*.cs")
	IncludePatterns []string

	// ExcludePatterns are glob patterns for files to exclude (e.g., "bin/**")
	ExcludePatterns []string
}

// Scanner discovers controller source files in a project.
type Scanner struct {
	config Config
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	if config.BasePath == "" {
		config.BasePath = "."
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = DefaultIncludePatterns
	}
	return &Scanner{config: config}
}

// Scan discovers all source files below the base path.
func (s *Scanner) Scan() ([]SourceFile, error) {
	return s.ScanPath(s.config.BasePath)
}

// ScanPath scans a file or directory. Directory entries are visited in
// lexical order, so the result order is deterministic.
func (s *Scanner) ScanPath(path string) ([]SourceFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("path does not exist: %s", absPath)
		}
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	// An explicitly named file is taken as long as it is C#.
	if !info.IsDir() {
		if DetectLanguage(absPath) != "csharp" {
			return nil, nil
		}
		f, err := readSourceFile(absPath, info)
		if err != nil {
			return nil, err
		}
		return []SourceFile{f}, nil
	}

	var files []SourceFile
	err = filepath.WalkDir(absPath, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip inaccessible paths
			return nil
		}

		rel, relErr := filepath.Rel(absPath, filePath)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if s.ExcludedDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.Matches(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		f, err := readSourceFile(filePath, info)
		if err != nil {
			// Skip files we can't read
			return nil
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// ScanPaths scans multiple paths, dropping duplicates.
func (s *Scanner) ScanPaths(paths []string) ([]SourceFile, error) {
	var all []SourceFile
	seen := make(map[string]bool)

	for _, path := range paths {
		files, err := s.ScanPath(path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !seen[f.Path] {
				seen[f.Path] = true
				all = append(all, f)
			}
		}
	}

	return all, nil
}

// Matches reports whether a slash-separated path relative to the scanned
// directory is a C# file selected by the include and exclude patterns.
func (s *Scanner) Matches(rel string) bool {
	if DetectLanguage(rel) != "csharp" {
		return false
	}
	if matchesAny(rel, s.config.ExcludePatterns) {
		return false
	}
	return matchesAny(rel, s.config.IncludePatterns)
}

// ExcludedDir reports whether a whole directory is excluded, e.g. "bin" for "bin/**".
func (s *Scanner) ExcludedDir(rel string) bool {
	if rel == "" || rel == "." {
		return false
	}

	for _, pattern := range s.config.ExcludePatterns {
		dirPattern := strings.TrimSuffix(strings.TrimSuffix(pattern, "/**"), "/*")
		if rel == dirPattern {
			return true
		}
		if matched, _ := doublestar.Match(pattern, rel+"/x.cs"); matched {
			return true
		}
	}
	return false
}

func matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			// Invalid pattern, skip
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

func readSourceFile(path string, info fs.FileInfo) (SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return SourceFile{}, fmt.Errorf("failed to read file: %w", err)
	}
	return SourceFile{
		Path:     path,
		Language: DetectLanguage(path),
		Content:  content,
		ModTime:  info.ModTime(),
	}, nil
}
