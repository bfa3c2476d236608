// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package document builds the ordered document model from controller
// source units or from an OpenAPI document.
package document

import (
	"github.com/api2spec/apidocgen/pkg/types"
)

// SectionKind identifies what a section holds.
type SectionKind string

// Section kinds.
const (
	KindRoute       SectionKind = "route"
	KindMethod      SectionKind = "method"
	KindParams      SectionKind = "params"
	KindRequestBody SectionKind = "requestBody"
	KindResponses   SectionKind = "responses"
	KindResponse    SectionKind = "response"
	KindMediaType   SectionKind = "mediaType"
)

// Fixed section titles.
const (
	TitleParams      = "PARAMS"
	TitleRequestBody = "REQUEST BODY"
	TitleResponses   = "RESPONSES"
)

// Node is a child of a section: a *Section or a FieldLine.
type Node interface {
	isNode()
}

// Section is a titled, ordered group of nodes.
type Section struct {
	Title    string      `json:"title" yaml:"title"`
	Kind     SectionKind `json:"kind" yaml:"kind"`
	Verb     string      `json:"verb,omitempty" yaml:"verb,omitempty"`
	Children []Node      `json:"children,omitempty" yaml:"children,omitempty"`
}

func (*Section) isNode() {}

// Add appends children to the section.
func (s *Section) Add(children ...Node) {
	s.Children = append(s.Children, children...)
}

// AddLines appends field lines to the section.
func (s *Section) AddLines(lines ...types.FieldLine) {
	for _, l := range lines {
		s.Children = append(s.Children, FieldLine(l))
	}
}

// FieldLine is a leaf line of a section.
type FieldLine types.FieldLine

func (FieldLine) isNode() {}

// RouteModel holds the sections of one group.
type RouteModel struct {
	GroupKey string     `json:"groupKey" yaml:"groupKey"`
	Sections []*Section `json:"sections" yaml:"sections"`
}

// Groups maps group keys to their routes, in first-seen order.
type Groups = types.OrderedMap[*RouteModel]

// Document is the ordered document model handed to a renderer.
type Document struct {
	Title   string  `json:"title" yaml:"title"`
	Version string  `json:"version,omitempty" yaml:"version,omitempty"`
	Groups  *Groups `json:"groups" yaml:"groups"`
}

// NewDocument creates an empty document.
func NewDocument(title, version string) *Document {
	return &Document{
		Title:   title,
		Version: version,
		Groups:  types.NewOrderedMap[*RouteModel](),
	}
}

// Group returns the route model for key, creating it at the end of the
// group order when it does not exist yet.
func (d *Document) Group(key string) *RouteModel {
	if rm, ok := d.Groups.Get(key); ok {
		return rm
	}
	rm := &RouteModel{GroupKey: key}
	d.Groups.Set(key, rm)
	return rm
}

// ControllerDocument is the flat controller-file layout: one entry per unit
// that declares routing, in scan order.
type ControllerDocument struct {
	Title string             `json:"title" yaml:"title"`
	Units []types.UnitRoutes `json:"units" yaml:"units"`
}
