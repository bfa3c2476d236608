// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package plugins provides framework plugin infrastructure for route extraction.
package plugins

import (
	"github.com/api2spec/apidocgen/internal/scanner"
	"github.com/api2spec/apidocgen/pkg/types"
)

// FrameworkPlugin defines the interface for framework-specific route extraction.
type FrameworkPlugin interface {
	// Name returns the plugin identifier (e.g., "aspnet").
	Name() string

	// Extensions returns the file extensions this plugin handles (e.g., []string{".cs"}).
	Extensions() []string

	// Detect checks if this framework is used in the project.
	Detect(projectRoot string) (bool, error)

	// ExtractRoutes extracts the routes of every source file it handles,
	// one UnitRoutes per file, in input order.
	ExtractRoutes(files []scanner.SourceFile) ([]types.UnitRoutes, error)

	UnitExtractor
}

// UnitExtractor extracts the routes of a single source unit.
type UnitExtractor interface {
	ExtractUnit(unit types.SourceUnit) (*types.UnitRoutes, error)
}

// PluginInfo provides metadata about a plugin.
type PluginInfo struct {
	// Name is the plugin identifier
	Name string

	// Version is the plugin version
	Version string

	// Description describes the plugin's purpose
	Description string

	// SupportedFrameworks lists framework versions supported by this plugin
	SupportedFrameworks []string
}

// InfoProvider is an optional interface plugins can implement to provide metadata.
type InfoProvider interface {
	Info() PluginInfo
}
