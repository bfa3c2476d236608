// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SchemaKind classifies a schema node for flattening.
type SchemaKind int

const (
	// KindScalar is any leaf value (string, integer, boolean, ...).
	KindScalar SchemaKind = iota
	// KindObject is a schema with named properties.
	KindObject
	// KindArray is a schema with an items schema.
	KindArray
)

// String returns the kind name.
func (k SchemaKind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "scalar"
	}
}

// Schema represents an OpenAPI schema object.
// It is a node in a graph: Ref points at a named component, and components
// may reference themselves directly or through a chain.
type Schema struct {
	// Name is the component name, set when the schema is registered as a component
	Name string `json:"-" yaml:"-"`

	// Ref is a reference to another schema ($ref)
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Types is the data type (string, number, integer, boolean, array, object).
	// OpenAPI 3.1 allows a list such as [string, null].
	Types TypeSet `json:"type,omitempty" yaml:"type,omitempty"`

	// Format is the data format (date-time, email, uuid, etc.)
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Title is a short title for the schema
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Description is a detailed description of the schema
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Enum is a list of allowed values
	Enum []interface{} `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Nullable indicates if the value can be null
	Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	// ReadOnly indicates the value is read-only
	ReadOnly bool `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`

	// Deprecated indicates the schema is deprecated
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	// Items is the schema for array items
	Items *Schema `json:"items,omitempty" yaml:"items,omitempty"`

	// Properties maps property names to their schemas, in declaration order
	Properties *OrderedMap[*Schema] `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Required is a list of required property names
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`
}

// TypeName returns the first non-null declared type.
func (s *Schema) TypeName() string {
	for _, t := range s.Types {
		if t != "null" {
			return t
		}
	}
	return ""
}

// IsNullable reports whether the schema admits null, either through the
// 3.0 nullable flag or a 3.1 "null" type entry.
func (s *Schema) IsNullable() bool {
	if s.Nullable {
		return true
	}
	for _, t := range s.Types {
		if t == "null" {
			return true
		}
	}
	return false
}

// Kind classifies the schema. Ref must be resolved before calling Kind.
func (s *Schema) Kind() SchemaKind {
	switch {
	case s.TypeName() == "array" || s.Items != nil:
		return KindArray
	case s.TypeName() == "object" || s.Properties.Len() > 0:
		return KindObject
	default:
		return KindScalar
	}
}

// DisplayType returns the format when present, otherwise the declared type.
func (s *Schema) DisplayType() string {
	if s.Format != "" {
		return s.Format
	}
	return s.TypeName()
}

// IsRequired reports whether name is listed in Required.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// TypeSet holds the schema "type" keyword, which is a string in OpenAPI 3.0
// and a string or a list of strings in 3.1.
type TypeSet []string

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (t *TypeSet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
		*t = TypeSet{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*t = list
		return nil
	default:
		return fmt.Errorf("line %d: invalid schema type", node.Line)
	}
}

// MarshalYAML encodes a single type as a scalar.
func (t TypeSet) MarshalYAML() (interface{}, error) {
	if len(t) == 1 {
		return t[0], nil
	}
	return []string(t), nil
}
