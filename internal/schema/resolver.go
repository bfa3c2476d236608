// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"fmt"
	"strings"

	"github.com/api2spec/apidocgen/pkg/types"
)

// Display values for container kinds.
const (
	ObjectValue = "object"
	ArrayValue  = "Array"
	ItemsLabel  = "items"
)

// Resolver resolves references against a component table and flattens
// schemas into field lines.
type Resolver struct {
	table *Table
}

// NewResolver creates a resolver over the given table.
func NewResolver(table *Table) *Resolver {
	if table == nil {
		table = NewTable(nil)
	}
	return &Resolver{table: table}
}

// Table returns the resolver's component table.
func (r *Resolver) Table() *Table {
	return r.table
}

// RefName returns the component name a $ref points at: its last "/" segment,
// with JSON pointer escapes decoded.
func RefName(ref string) string {
	name := ref
	if i := strings.LastIndexByte(ref, '/'); i != -1 {
		name = ref[i+1:]
	}
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(name)
}

// Resolve returns the table's node for a schema with a $ref, or s itself
// when it has none. Components that are themselves pure references are
// followed until a concrete node is reached.
func (r *Resolver) Resolve(s *types.Schema) (*types.Schema, error) {
	if s == nil || s.Ref == "" {
		return s, nil
	}

	seen := make(map[string]bool)
	node := s
	for node.Ref != "" {
		name := RefName(node.Ref)
		if seen[name] {
			return nil, fmt.Errorf("%w: %s", ErrRefLoop, node.Ref)
		}
		seen[name] = true

		target, ok := r.table.Get(name)
		if !ok {
			return nil, &NotFoundError{Ref: node.Ref}
		}
		node = target
	}
	return node, nil
}

// Flatten flattens s into field lines, the first one at depth and labelled
// with the component name (empty for inline schemas).
func (r *Resolver) Flatten(s *types.Schema, depth int) ([]types.FieldLine, error) {
	node, err := r.Resolve(s)
	if err != nil {
		return nil, err
	}
	name := ""
	if node != nil {
		name = node.Name
	}
	return r.FlattenNamed(name, s, depth)
}

// FlattenNamed flattens s into field lines with the first line labelled name.
//
// Objects emit "name: object" followed by their properties one level deeper,
// arrays emit "name: Array" followed by their items, and scalars emit their
// format or type. A node already being flattened on the current path emits
// a terminal "same type as parent" line instead of recursing.
func (r *Resolver) FlattenNamed(name string, s *types.Schema, depth int) ([]types.FieldLine, error) {
	var out []types.FieldLine
	path := make(map[*types.Schema]bool)
	if err := r.flatten(&out, path, name, s, depth, false); err != nil {
		return nil, err
	}
	return out, nil
}

// FlattenProperties flattens the properties of an object schema starting at
// depth, without a line for the object itself. Any other schema is
// flattened as a whole.
func (r *Resolver) FlattenProperties(s *types.Schema, depth int) ([]types.FieldLine, error) {
	node, err := r.Resolve(s)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, nil
	}
	if node.Kind() != types.KindObject {
		return r.Flatten(s, depth)
	}

	var out []types.FieldLine
	path := map[*types.Schema]bool{node: true}
	for prop, ps := range node.Properties.All() {
		if err := r.flatten(&out, path, prop, ps, depth, node.IsRequired(prop)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Resolver) flatten(out *[]types.FieldLine, path map[*types.Schema]bool, name string, s *types.Schema, depth int, required bool) error {
	if s == nil {
		return nil
	}
	node, err := r.Resolve(s)
	if err != nil {
		return err
	}

	if path[node] {
		*out = append(*out, types.FieldLine{
			Depth:    depth,
			Label:    name,
			Value:    types.SameTypeAsParent,
			Required: required,
			Terminal: true,
		})
		return nil
	}

	line := types.FieldLine{
		Depth:       depth,
		Label:       name,
		Description: firstNonEmpty(s.Description, node.Description),
		Nullable:    s.IsNullable() || node.IsNullable(),
		ReadOnly:    s.ReadOnly || node.ReadOnly,
		Required:    required,
	}

	switch node.Kind() {
	case types.KindObject:
		line.Value = ObjectValue
		*out = append(*out, line)

		path[node] = true
		defer delete(path, node)
		for prop, ps := range node.Properties.All() {
			if err := r.flatten(out, path, prop, ps, depth+1, node.IsRequired(prop)); err != nil {
				return err
			}
		}

	case types.KindArray:
		line.Value = ArrayValue
		*out = append(*out, line)

		path[node] = true
		defer delete(path, node)
		if err := r.flatten(out, path, ItemsLabel, node.Items, depth+1, false); err != nil {
			return err
		}

	default:
		line.Value = node.DisplayType()
		*out = append(*out, line)
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
