// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package document

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/api2spec/apidocgen/internal/plugins"
	"github.com/api2spec/apidocgen/internal/plugins/aspnet"
	"github.com/api2spec/apidocgen/pkg/types"
)

// Builder aggregates extraction results into a Document.
// A Builder holds no state between runs and may be reused.
type Builder struct {
	title            string
	logger           *slog.Logger
	extractor        plugins.UnitExtractor
	continueOnError  bool
	emitEmptySummary bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(b *Builder) { b.title = title }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithExtractor replaces the route extractor used in controller mode.
func WithExtractor(e plugins.UnitExtractor) Option {
	return func(b *Builder) {
		if e != nil {
			b.extractor = e
		}
	}
}

// WithContinueOnError makes FromUnits skip failing units instead of
// aborting the run.
func WithContinueOnError(v bool) Option {
	return func(b *Builder) { b.continueOnError = v }
}

// WithEmptySummary controls whether a comment without <summary> still
// produces an empty "Summary" line.
func WithEmptySummary(v bool) Option {
	return func(b *Builder) { b.emitEmptySummary = v }
}

// NewBuilder creates a Builder. By default it extracts ASP.NET controllers,
// aborts on the first unit error, emits empty summaries and discards logs.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger:           slog.New(slog.DiscardHandler),
		extractor:        aspnet.New(),
		emitEmptySummary: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromUnits extracts every unit and groups its endpoints under the unit
// name. It also returns the flat controller layout of the same run.
//
// By default the first failing unit aborts the run. With ContinueOnError
// the failing unit is skipped and all unit errors are returned joined,
// alongside the model built from the remaining units.
func (b *Builder) FromUnits(units []types.SourceUnit) (*Document, *ControllerDocument, error) {
	doc := NewDocument(b.title, "")
	cdoc := &ControllerDocument{Title: b.title}

	var errs []error
	for _, unit := range units {
		ur, err := b.extractor.ExtractUnit(unit)
		if err != nil {
			if !b.continueOnError {
				return nil, nil, err
			}
			b.logger.Warn("skipping unit", "unit", unit.Name, "error", err)
			errs = append(errs, err)
			continue
		}

		if ur.BasePath == "" && len(ur.Endpoints) == 0 {
			b.logger.Debug("unit has no routing", "unit", unit.Name)
			continue
		}
		b.logger.Debug("extracted unit", "unit", unit.Name, "endpoints", len(ur.Endpoints))

		cdoc.Units = append(cdoc.Units, *ur)
		rm := doc.Group(ur.Unit)
		for _, ep := range ur.Endpoints {
			rm.Sections = append(rm.Sections, b.endpointSection(ep))
		}
	}

	return doc, cdoc, errors.Join(errs...)
}

// endpointSection renders one endpoint as "<VERB> <path>" with its comment lines.
func (b *Builder) endpointSection(ep types.EndpointDescriptor) *Section {
	s := &Section{
		Title: fmt.Sprintf("%s %s", ep.Verb, ep.Path),
		Kind:  KindRoute,
		Verb:  ep.Verb,
	}
	for _, cl := range ep.Comment.Lines(b.emitEmptySummary) {
		s.AddLines(types.FieldLine{Label: cl.Label, Value: cl.Value})
	}
	return s
}
