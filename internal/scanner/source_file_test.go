// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"ItemsController.cs", "csharp"},
		{"Upper.CS", "csharp"},
		{"swagger.json", "json"},
		{"openapi.yaml", "yaml"},
		{"openapi.yml", "yaml"},
		{"readme.md", ""},
		{"Makefile", ""},
		{"/path/to/File.cs", "csharp"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectLanguage(tt.path))
			assert.Equal(t, tt.expected != "", IsSupportedFile(tt.path))
		})
	}
}

func TestSourceFile_Unit(t *testing.T) {
	f := SourceFile{
		Path:     "/src/Controllers/ItemsController.cs",
		Language: "csharp",
		Content:  []byte("\ufeff[Route(\"api\")]\r\npublic class ItemsController\r\n"),
	}

	unit := f.Unit()

	assert.Equal(t, "ItemsController", unit.Name)
	assert.Equal(t, f.Path, unit.Path)
	assert.Equal(t, []string{"[Route(\"api\")]", "public class ItemsController", ""}, unit.Lines)
}

func TestUnits_KeepsCSharpOnly(t *testing.T) {
	units := Units([]SourceFile{
		{Path: "A.cs", Language: "csharp"},
		{Path: "swagger.json", Language: "json"},
		{Path: "B.cs", Language: "csharp"},
	})

	if assert.Len(t, units, 2) {
		assert.Equal(t, "A", units[0].Name)
		assert.Equal(t, "B", units[1].Name)
	}
}
