// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/api2spec/apidocgen/internal/document"
)

// Format is an output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
)

// ParseFormat parses a format name. Empty input yields an empty Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to
// Markdown.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatMarkdown
	}
}

// Writer writes rendered documents to various outputs.
type Writer struct {
	// Indent specifies the indentation for JSON and YAML output (default: 2 spaces)
	Indent int

	// EmitEmptySummary is passed to the controller Markdown layout
	EmitEmptySummary bool
}

// NewWriter creates a new Writer with default settings.
func NewWriter() *Writer {
	return &Writer{
		Indent:           2,
		EmitEmptySummary: true,
	}
}

// WriteYAML writes v as YAML.
func (w *Writer) WriteYAML(v any, out io.Writer) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(w.Indent)
	defer encoder.Close()

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}

// WriteJSON writes v as indented JSON.
func (w *Writer) WriteJSON(v any, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", w.Indent))

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// Write renders doc in format.
func (w *Writer) Write(doc *document.Document, format Format, out io.Writer) error {
	switch format {
	case FormatMarkdown, "":
		return Markdown(out, doc)
	case FormatYAML:
		return w.WriteYAML(doc, out)
	case FormatJSON:
		return w.WriteJSON(doc, out)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteControllers renders the flat controller layout in format.
func (w *Writer) WriteControllers(doc *document.ControllerDocument, format Format, out io.Writer) error {
	switch format {
	case FormatMarkdown, "":
		return ControllerMarkdown(out, doc, w.EmitEmptySummary)
	case FormatYAML:
		return w.WriteYAML(doc, out)
	case FormatJSON:
		return w.WriteJSON(doc, out)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteFile renders into path through fn, creating parent directories.
// The file is only created once rendering succeeded.
func (w *Writer) WriteFile(path string, fn func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
