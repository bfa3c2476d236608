// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner discovers controller source files on disk.
package scanner

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/api2spec/apidocgen/pkg/types"
)

// SourceFile represents a discovered source file.
type SourceFile struct {
	// Path is the absolute path to the file
	Path string

	// Language is the detected language ("csharp", "json", "yaml")
	Language string

	// Content is the file content
	Content []byte

	// ModTime is the last modification time
	ModTime time.Time
}

// Unit converts the file into a SourceUnit named after its base name
// without extension. CRLF line endings are normalised.
func (f SourceFile) Unit() types.SourceUnit {
	base := filepath.Base(f.Path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	text := strings.ReplaceAll(string(f.Content), "\r\n", "\n")
	text = strings.TrimPrefix(text, "\ufeff")

	return types.SourceUnit{
		Name:  name,
		Path:  f.Path,
		Lines: strings.Split(text, "\n"),
	}
}

// languageExtensions maps file extensions to language identifiers.
var languageExtensions = map[string]string{
	".cs":   "csharp",
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
}

// DetectLanguage detects the language from a file path.
func DetectLanguage(path string) string {
	return languageExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsSupportedFile checks if a file path has a supported extension.
func IsSupportedFile(path string) bool {
	return DetectLanguage(path) != ""
}

// Units converts files into source units, keeping only C# files.
func Units(files []SourceFile) []types.SourceUnit {
	units := make([]types.SourceUnit, 0, len(files))
	for _, f := range files {
		if f.Language != "csharp" {
			continue
		}
		units = append(units, f.Unit())
	}
	return units
}
