// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// SameTypeAsParent is the value of a field line that closes a schema cycle.
const SameTypeAsParent = "same type as parent"

// FieldLine is one flattened line of the document model: a schema field,
// a parameter, or a labelled comment line.
type FieldLine struct {
	// Depth is the nesting level, used for indentation only
	Depth int `json:"depth" yaml:"depth"`

	// Label is the field name or line label (e.g., "id", "Summary")
	Label string `json:"label" yaml:"label"`

	// Value is the display type or the label's value
	Value string `json:"value" yaml:"value"`

	// Description is the optional free-text description
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// In is the parameter location for parameter lines (path, query, ...)
	In string `json:"in,omitempty" yaml:"in,omitempty"`

	Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	ReadOnly bool `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Terminal marks a line whose children were cut off by cycle detection
	Terminal bool `json:"terminal,omitempty" yaml:"terminal,omitempty"`
}
