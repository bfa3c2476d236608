// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package schema resolves $ref pointers against a document's component
// schemas and flattens schema graphs into ordered field lines.
package schema

import (
	"github.com/api2spec/apidocgen/pkg/types"
)

// Table maps component names to schemas. It is built once from a document
// and only read afterwards.
type Table struct {
	schemas *types.OrderedMap[*types.Schema]
}

// NewTable builds a table from the components/schemas map, recording each
// component's name on its schema node. Nil entries are skipped.
func NewTable(schemas *types.OrderedMap[*types.Schema]) *Table {
	t := &Table{schemas: types.NewOrderedMap[*types.Schema]()}
	for name, s := range schemas.All() {
		if s == nil {
			continue
		}
		s.Name = name
		t.schemas.Set(name, s)
	}
	return t
}

// TableFromDocument builds the component table of an OpenAPI document.
func TableFromDocument(doc *types.Document) *Table {
	if doc == nil || doc.Components == nil {
		return NewTable(nil)
	}
	return NewTable(doc.Components.Schemas)
}

// Get returns the component with the given name.
func (t *Table) Get(name string) (*types.Schema, bool) {
	return t.schemas.Get(name)
}

// Names returns the component names in document order.
func (t *Table) Names() []string {
	return t.schemas.Keys()
}

// Len returns the number of components.
func (t *Table) Len() int {
	return t.schemas.Len()
}
