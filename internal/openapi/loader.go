// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package openapi loads OpenAPI 3.x and Swagger 2.0 documents into the
// typed, insertion-ordered document structures.
package openapi

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/api2spec/apidocgen/pkg/types"
)

// ErrorCode categorizes loader errors.
type ErrorCode string

const (
	InputError      ErrorCode = "InputError"
	ParseError      ErrorCode = "ParseError"
	VersionError    ErrorCode = "VersionError"
	ConversionError ErrorCode = "ConversionError"
)

// LoadError is a structured loader error.
type LoadError struct {
	Code     ErrorCode
	Location string // file path, empty for in-memory input
	Err      error
}

func (e *LoadError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Location, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Version is the major specification version of a document.
type Version int

const (
	VersionUnknown Version = 0
	Swagger2       Version = 2
	OpenAPI3       Version = 3
)

// LoadFile reads and parses the document at path.
func LoadFile(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: InputError, Location: path, Err: err}
	}

	doc, err := Parse(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Location = path
			return nil, le
		}
		return nil, err
	}
	return doc, nil
}

// Parse decodes a JSON or YAML document. Swagger 2.0 input is converted to
// OpenAPI 3 first; paths and schema properties keep their source order
// either way.
func Parse(data []byte) (*types.Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &LoadError{Code: ParseError, Err: err}
	}

	version, err := DetectVersion(&root)
	if err != nil {
		return nil, &LoadError{Code: VersionError, Err: err}
	}

	switch version {
	case OpenAPI3:
		var doc types.Document
		if err := root.Decode(&doc); err != nil {
			return nil, &LoadError{Code: ParseError, Err: err}
		}
		return &doc, nil
	default:
		doc, err := convertSwagger2(&root)
		if err != nil {
			return nil, &LoadError{Code: ConversionError, Err: err}
		}
		return doc, nil
	}
}

// DetectVersion reports whether root is an "openapi: 3.x" or a
// "swagger: 2.x" document.
func DetectVersion(root *yaml.Node) (Version, error) {
	m := mappingOf(root)
	if m == nil {
		return VersionUnknown, fmt.Errorf("document is not a mapping")
	}
	if v := mappingValue(m, "openapi"); v != nil && strings.HasPrefix(strings.TrimSpace(v.Value), "3.") {
		return OpenAPI3, nil
	}
	if v := mappingValue(m, "swagger"); v != nil && strings.HasPrefix(strings.TrimSpace(v.Value), "2.") {
		return Swagger2, nil
	}
	return VersionUnknown, fmt.Errorf("missing or unknown version (expected 'openapi: 3.x' or 'swagger: 2.0')")
}

// mappingOf returns the mapping node of a document node, or nil.
func mappingOf(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	return n
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// mappingKeys returns the keys of a mapping node in source order.
func mappingKeys(m *yaml.Node) []string {
	m = mappingOf(m)
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		keys = append(keys, m.Content[i].Value)
	}
	return keys
}
