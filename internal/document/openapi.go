// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package document

import (
	"fmt"
	"strings"

	"github.com/api2spec/apidocgen/internal/schema"
	"github.com/api2spec/apidocgen/internal/util"
	"github.com/api2spec/apidocgen/pkg/types"
)

// DefaultGroup is the group key for operations without tags whose path has
// no meaningful segment either.
const DefaultGroup = "default"

// FromOpenAPI builds the document model of an OpenAPI document.
//
// Paths are visited in document order and, within a path, verbs in the
// fixed order GET, PUT, POST, DELETE, PATCH, HEAD, OPTIONS, TRACE. Each
// operation is grouped under its first tag; a path whose verbs declare
// different tags contributes one route section to each of those groups.
// A $ref naming a missing component aborts the whole document.
func (b *Builder) FromOpenAPI(doc *types.Document) (*Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil OpenAPI document")
	}

	title := b.title
	if title == "" {
		title = doc.Info.Title
	}
	if doc.Info.Version != "" {
		title = fmt.Sprintf("%s v%s", title, doc.Info.Version)
	}
	out := NewDocument(title, doc.Info.Version)

	ob := &operationBuilder{
		doc:      doc,
		resolver: schema.NewResolver(schema.TableFromDocument(doc)),
	}
	b.logger.Debug("component table loaded", "schemas", ob.resolver.Table().Len())

	for path, item := range doc.Paths.All() {
		if item == nil {
			continue
		}

		routes := make(map[string]*Section)
		for _, vo := range item.Operations() {
			key := GroupKey(vo.Operation, path)

			route, ok := routes[key]
			if !ok {
				route = &Section{Title: path, Kind: KindRoute}
				routes[key] = route
				rm := out.Group(key)
				rm.Sections = append(rm.Sections, route)
			}

			method, err := ob.method(item, vo)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", vo.Verb, path, err)
			}
			route.Add(method)
		}
	}

	return out, nil
}

// GroupKey returns the operation's first tag. Untagged operations fall back
// to the first meaningful path segment, title-cased.
func GroupKey(op *types.Operation, path string) string {
	if op != nil && len(op.Tags) > 0 && op.Tags[0] != "" {
		return op.Tags[0]
	}
	if seg := firstSegment(path); seg != "" {
		return util.TitleCase(seg)
	}
	return DefaultGroup
}

// firstSegment returns the first path segment that is not an "api" or
// version prefix and not a parameter.
func firstSegment(path string) string {
	for _, part := range strings.Split(path, "/") {
		switch {
		case part == "", strings.EqualFold(part, "api"):
			continue
		case strings.HasPrefix(part, "{"):
			continue
		case isVersionSegment(part):
			continue
		}
		return part
	}
	return ""
}

func isVersionSegment(part string) bool {
	if len(part) < 2 || (part[0] != 'v' && part[0] != 'V') {
		return false
	}
	for _, c := range part[1:] {
		if (c < '0' || c > '9') && c != '.' {
			return false
		}
	}
	return true
}

// operationBuilder builds the method subsections of one document.
type operationBuilder struct {
	doc      *types.Document
	resolver *schema.Resolver
}

func (ob *operationBuilder) method(item *types.PathItem, vo types.VerbOperation) (*Section, error) {
	op := vo.Operation
	s := &Section{Title: vo.Verb, Kind: KindMethod, Verb: vo.Verb}

	if op.Summary != "" {
		s.AddLines(types.FieldLine{Label: types.LabelSummary, Value: op.Summary})
	}
	if op.Description != "" && op.Description != op.Summary {
		s.AddLines(types.FieldLine{Label: "Description", Value: op.Description})
	}
	if op.Deprecated {
		s.AddLines(types.FieldLine{Label: "Deprecated", Value: "true"})
	}

	params, err := ob.params(item, op)
	if err != nil {
		return nil, err
	}
	if params != nil {
		s.Add(params)
	}

	if op.RequestBody != nil {
		body, err := ob.requestBody(op.RequestBody)
		if err != nil {
			return nil, err
		}
		s.Add(body)
	}

	if op.Responses.Len() > 0 {
		responses, err := ob.responses(op.Responses)
		if err != nil {
			return nil, err
		}
		s.Add(responses)
	}

	return s, nil
}

// params builds the PARAMS section from path-level and operation-level
// parameters. Operation parameters override path parameters with the same
// name and location.
func (ob *operationBuilder) params(item *types.PathItem, op *types.Operation) (*Section, error) {
	var merged []*types.Parameter
	index := make(map[string]int)

	for _, list := range [][]*types.Parameter{item.Parameters, op.Parameters} {
		for _, p := range list {
			resolved, err := ob.parameter(p)
			if err != nil {
				return nil, err
			}
			if resolved == nil {
				continue
			}
			key := resolved.In + ":" + resolved.Name
			if i, ok := index[key]; ok {
				merged[i] = resolved
				continue
			}
			index[key] = len(merged)
			merged = append(merged, resolved)
		}
	}
	if len(merged) == 0 {
		return nil, nil
	}

	s := &Section{Title: TitleParams, Kind: KindParams}
	for _, p := range merged {
		line := types.FieldLine{
			Label:       p.Name,
			Description: p.Description,
			In:          p.In,
			Required:    p.Required,
		}

		node, err := ob.resolver.Resolve(p.Schema)
		if err != nil {
			return nil, err
		}
		if node == nil {
			s.AddLines(line)
			continue
		}

		line.Nullable = node.IsNullable()
		switch node.Kind() {
		case types.KindObject:
			line.Value = schema.ObjectValue
			s.AddLines(line)
			props, err := ob.resolver.FlattenProperties(p.Schema, 1)
			if err != nil {
				return nil, err
			}
			s.AddLines(props...)
		case types.KindArray:
			line.Value = schema.ArrayValue
			s.AddLines(line)
			items, err := ob.resolver.FlattenNamed(schema.ItemsLabel, node.Items, 1)
			if err != nil {
				return nil, err
			}
			s.AddLines(items...)
		default:
			line.Value = node.DisplayType()
			s.AddLines(line)
		}
	}
	return s, nil
}

func (ob *operationBuilder) requestBody(rb *types.RequestBody) (*Section, error) {
	rb, err := ob.requestBodyRef(rb)
	if err != nil {
		return nil, err
	}

	s := &Section{Title: TitleRequestBody, Kind: KindRequestBody}
	if rb.Description != "" {
		s.AddLines(types.FieldLine{Label: "Description", Value: rb.Description})
	}
	if rb.Required {
		s.AddLines(types.FieldLine{Label: "Required", Value: "true"})
	}
	if err := ob.content(s, rb.Content); err != nil {
		return nil, err
	}
	return s, nil
}

func (ob *operationBuilder) responses(responses *types.OrderedMap[*types.Response]) (*Section, error) {
	s := &Section{Title: TitleResponses, Kind: KindResponses}
	for status, resp := range responses.All() {
		if resp == nil {
			continue
		}
		resp, err := ob.responseRef(resp)
		if err != nil {
			return nil, err
		}

		rs := &Section{Title: status, Kind: KindResponse}
		if resp.Description != "" {
			rs.AddLines(types.FieldLine{Label: "Description", Value: resp.Description})
		}
		if err := ob.content(rs, resp.Content); err != nil {
			return nil, err
		}
		s.Add(rs)
	}
	return s, nil
}

// content adds one media type section per content entry, each holding the
// flattened schema.
func (ob *operationBuilder) content(parent *Section, content *types.OrderedMap[*types.MediaType]) error {
	for mediaType, mt := range content.All() {
		ms := &Section{Title: mediaType, Kind: KindMediaType}
		if mt != nil && mt.Schema != nil {
			lines, err := ob.resolver.FlattenProperties(mt.Schema, 0)
			if err != nil {
				return err
			}
			ms.AddLines(lines...)
		}
		parent.Add(ms)
	}
	return nil
}

func (ob *operationBuilder) parameter(p *types.Parameter) (*types.Parameter, error) {
	if p == nil || p.Ref == "" {
		return p, nil
	}
	if c := ob.doc.Components; c != nil {
		if resolved, ok := c.Parameters.Get(schema.RefName(p.Ref)); ok && resolved != nil {
			return resolved, nil
		}
	}
	return nil, &schema.NotFoundError{Ref: p.Ref}
}

func (ob *operationBuilder) requestBodyRef(rb *types.RequestBody) (*types.RequestBody, error) {
	if rb.Ref == "" {
		return rb, nil
	}
	if c := ob.doc.Components; c != nil {
		if resolved, ok := c.RequestBodies.Get(schema.RefName(rb.Ref)); ok && resolved != nil {
			return resolved, nil
		}
	}
	return nil, &schema.NotFoundError{Ref: rb.Ref}
}

func (ob *operationBuilder) responseRef(resp *types.Response) (*types.Response, error) {
	if resp.Ref == "" {
		return resp, nil
	}
	if c := ob.doc.Components; c != nil {
		if resolved, ok := c.Responses.Get(schema.RefName(resp.Ref)); ok && resolved != nil {
			return resolved, nil
		}
	}
	return nil, &schema.NotFoundError{Ref: resp.Ref}
}
