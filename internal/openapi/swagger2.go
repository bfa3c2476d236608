// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"encoding/json"
	"fmt"
	"strings"

	openapi2 "github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/apidocgen/pkg/types"
)

// convertSwagger2 converts a Swagger 2.0 document to OpenAPI 3 and decodes
// the result. kin-openapi keeps maps unordered, so the source order of
// paths, definitions, properties and responses is restored from root.
func convertSwagger2(root *yaml.Node) (*types.Document, error) {
	var raw interface{}
	if err := root.Decode(&raw); err != nil {
		return nil, err
	}
	data, err := json.Marshal(jsonCompatible(raw))
	if err != nil {
		return nil, fmt.Errorf("encode swagger document: %w", err)
	}

	var v2 openapi2.T
	if err := json.Unmarshal(data, &v2); err != nil {
		return nil, fmt.Errorf("decode swagger document: %w", err)
	}
	v3, err := openapi2conv.ToV3(&v2)
	if err != nil {
		return nil, fmt.Errorf("convert v2 to v3: %w", err)
	}

	out, err := json.Marshal(v3)
	if err != nil {
		return nil, fmt.Errorf("encode converted document: %w", err)
	}
	var doc types.Document
	if err := yaml.Unmarshal(out, &doc); err != nil {
		return nil, fmt.Errorf("decode converted document: %w", err)
	}

	restoreOrder(&doc, mappingOf(root))
	return &doc, nil
}

// jsonCompatible rewrites the map[interface{}]interface{} values yaml.v3
// produces for non-string keys (such as unquoted status codes) into
// string-keyed maps.
func jsonCompatible(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, e := range t {
			t[k] = jsonCompatible(e)
		}
		return t
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = jsonCompatible(e)
		}
		return m
	case []interface{}:
		for i, e := range t {
			t[i] = jsonCompatible(e)
		}
		return t
	default:
		return v
	}
}

func restoreOrder(doc *types.Document, root *yaml.Node) {
	rawPaths := mappingValue(root, "paths")
	doc.Paths.Reorder(mappingKeys(rawPaths))

	if doc.Components != nil {
		rawDefs := mappingValue(root, "definitions")
		doc.Components.Schemas.Reorder(mappingKeys(rawDefs))
		for name, s := range doc.Components.Schemas.All() {
			reorderSchema(s, mappingValue(mappingOf(rawDefs), name))
		}
	}

	for path, item := range doc.Paths.All() {
		rawItem := mappingOf(mappingValue(rawPaths, path))
		for _, vo := range item.Operations() {
			reorderOperation(vo.Operation, mappingOf(mappingValue(rawItem, strings.ToLower(vo.Verb))))
		}
	}
}

func reorderOperation(op *types.Operation, raw *yaml.Node) {
	if op == nil || raw == nil {
		return
	}

	if op.RequestBody != nil {
		if body := bodyParameter(mappingValue(raw, "parameters")); body != nil {
			for _, mt := range op.RequestBody.Content.All() {
				if mt != nil {
					reorderSchema(mt.Schema, mappingValue(body, "schema"))
				}
			}
		}
	}

	rawResponses := mappingValue(raw, "responses")
	op.Responses.Reorder(mappingKeys(rawResponses))
	for status, resp := range op.Responses.All() {
		if resp == nil {
			continue
		}
		rawSchema := mappingValue(mappingOf(mappingValue(rawResponses, status)), "schema")
		for _, mt := range resp.Content.All() {
			if mt != nil {
				reorderSchema(mt.Schema, rawSchema)
			}
		}
	}
}

// bodyParameter returns the "in: body" entry of a v2 parameter list.
func bodyParameter(params *yaml.Node) *yaml.Node {
	if params == nil || params.Kind != yaml.SequenceNode {
		return nil
	}
	for _, p := range params.Content {
		p = mappingOf(p)
		if in := mappingValue(p, "in"); in != nil && in.Value == "body" {
			return p
		}
	}
	return nil
}

func reorderSchema(s *types.Schema, raw *yaml.Node) {
	raw = mappingOf(raw)
	if s == nil || raw == nil {
		return
	}

	rawProps := mappingValue(raw, "properties")
	s.Properties.Reorder(mappingKeys(rawProps))
	for name, ps := range s.Properties.All() {
		reorderSchema(ps, mappingValue(mappingOf(rawProps), name))
	}
	reorderSchema(s.Items, mappingValue(raw, "items"))
}
