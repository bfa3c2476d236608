// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides the data structures shared by the extraction engine,
// the OpenAPI loader and the renderers.
package types

import "strings"

// SourceUnit is one controller source file, read fully into memory.
type SourceUnit struct {
	// Name is the file base name without extension (e.g., "ItemsController")
	Name string `json:"name" yaml:"name"`

	// Path is the file path the unit was read from
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Lines are the raw, untrimmed source lines
	Lines []string `json:"-" yaml:"-"`
}

// ParameterDescriptor describes one method parameter taken from a signature.
// A fragment that does not match the two or three token shape yields the zero value.
type ParameterDescriptor struct {
	// Origin is the binding attribute (e.g., "[FromQuery]"), empty when absent
	Origin string `json:"origin,omitempty" yaml:"origin,omitempty"`

	// Type is the declared parameter type
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Name is the parameter name
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// IsZero reports whether the descriptor is the degenerate empty descriptor.
func (p ParameterDescriptor) IsZero() bool {
	return p.Origin == "" && p.Type == "" && p.Name == ""
}

// EndpointDescriptor is one HTTP endpoint found in a source unit.
type EndpointDescriptor struct {
	// Verb is the uppercase HTTP verb (GET, POST, PUT, DELETE, ...)
	Verb string `json:"verb" yaml:"verb"`

	// PathFragment is the attribute's literal path prefixed with "/", empty when none
	PathFragment string `json:"pathFragment,omitempty" yaml:"pathFragment,omitempty"`

	// Path is the full route: base path combined with the fragment
	Path string `json:"path" yaml:"path"`

	// Method is the name of the C# action method
	Method string `json:"method,omitempty" yaml:"method,omitempty"`

	// Comment is the attached documentation block, if any
	Comment *CommentBlock `json:"comment,omitempty" yaml:"comment,omitempty"`

	// Line is the index of the attribute within the classified lines
	Line int `json:"line" yaml:"line"`
}

// CommentEntry is one documented parameter.
type CommentEntry struct {
	Label string `json:"label" yaml:"label"`
	Text  string `json:"text" yaml:"text"`
}

// CommentException is one documented exception.
type CommentException struct {
	TypeRef string `json:"typeRef" yaml:"typeRef"`
	Text    string `json:"text" yaml:"text"`
}

// CommentBlock holds the fields extracted from an XML documentation comment.
type CommentBlock struct {
	Summary    string             `json:"summary" yaml:"summary"`
	Parameters []CommentEntry     `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Returns    string             `json:"returns,omitempty" yaml:"returns,omitempty"`
	Exceptions []CommentException `json:"exceptions,omitempty" yaml:"exceptions,omitempty"`

	// HasSummary records whether a <summary> element was present
	HasSummary bool `json:"-" yaml:"-"`
}

// CommentLine is a labelled line of a rendered comment block.
type CommentLine struct {
	Label string
	Value string
}

// Comment line labels.
const (
	LabelSummary   = "Summary"
	LabelParam     = "Param"
	LabelReturns   = "Returns"
	LabelException = "Exception"
)

// Lines returns the block as ordered label/value pairs.
// The summary line is always present when emitEmptySummary is true,
// and otherwise only when a <summary> element was found.
func (c *CommentBlock) Lines(emitEmptySummary bool) []CommentLine {
	if c == nil {
		return nil
	}

	var out []CommentLine
	if c.HasSummary || emitEmptySummary {
		out = append(out, CommentLine{Label: LabelSummary, Value: c.Summary})
	}
	for _, p := range c.Parameters {
		out = append(out, CommentLine{Label: LabelParam, Value: strings.TrimSpace(p.Label + " " + p.Text)})
	}
	if c.Returns != "" {
		out = append(out, CommentLine{Label: LabelReturns, Value: c.Returns})
	}
	for _, e := range c.Exceptions {
		out = append(out, CommentLine{Label: LabelException, Value: strings.TrimSpace("(Type: " + e.TypeRef + ") " + e.Text)})
	}
	return out
}

// UnitRoutes is the route extraction result for one source unit.
type UnitRoutes struct {
	// Unit is the source unit name
	Unit string `json:"unit" yaml:"unit"`

	// Controller is the unit name without the "Controller" suffix
	Controller string `json:"controller" yaml:"controller"`

	// BasePath is the resolved routing attribute path, empty when the unit has no routing
	BasePath string `json:"basePath,omitempty" yaml:"basePath,omitempty"`

	// Versions are the [ApiVersion] values in source order
	Versions []string `json:"versions,omitempty" yaml:"versions,omitempty"`

	// Endpoints are the endpoints in source order
	Endpoints []EndpointDescriptor `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
}

// Heading returns the unit heading, "<Unit> <versions>" with the versions
// prefixed by "v" and comma-joined.
func (u *UnitRoutes) Heading() string {
	if len(u.Versions) == 0 {
		return u.Unit
	}
	vs := make([]string, len(u.Versions))
	for i, v := range u.Versions {
		vs[i] = "v" + v
	}
	return u.Unit + " " + strings.Join(vs, ", ")
}
