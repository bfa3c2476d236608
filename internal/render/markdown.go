// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/api2spec/apidocgen/internal/document"
	"github.com/api2spec/apidocgen/pkg/types"
)

// Markdown writes doc as Markdown: one "<group> Endpoints" heading per group
// in group order, then a numbered heading per route with its nested
// sections below it.
func Markdown(w io.Writer, doc *document.Document) error {
	return MarkdownWithContext(w, doc, NewContext())
}

// MarkdownWithContext writes doc using the given render context.
func MarkdownWithContext(w io.Writer, doc *document.Document, ctx *Context) error {
	var sb strings.Builder

	if doc.Title != "" {
		fmt.Fprintf(&sb, "# %s\n", doc.Title)
	}

	for key, rm := range doc.Groups.All() {
		fmt.Fprintf(&sb, "\n## %s Endpoints\n", key)

		list := ctx.NewList()
		for _, s := range rm.Sections {
			fmt.Fprintf(&sb, "\n### %d. %s\n", ctx.Next(list), s.Title)
			writeChildren(&sb, s, 4)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// ControllerMarkdown writes the flat controller layout: a heading per unit,
// its base path, and a numbered entry per endpoint followed by its comment
// lines.
func ControllerMarkdown(w io.Writer, doc *document.ControllerDocument, emitEmptySummary bool) error {
	return ControllerMarkdownWithContext(w, doc, emitEmptySummary, NewContext())
}

// ControllerMarkdownWithContext writes the controller layout using the
// given render context.
func ControllerMarkdownWithContext(w io.Writer, doc *document.ControllerDocument, emitEmptySummary bool, ctx *Context) error {
	var sb strings.Builder

	if doc.Title != "" {
		fmt.Fprintf(&sb, "# %s\n", doc.Title)
	}

	for _, ur := range doc.Units {
		fmt.Fprintf(&sb, "\n## %s\n", ur.Heading())
		if ur.BasePath != "" {
			fmt.Fprintf(&sb, "\nBase path: `%s`\n", ur.BasePath)
		}
		if len(ur.Endpoints) == 0 {
			continue
		}

		sb.WriteString("\n")
		list := ctx.NewList()
		for _, ep := range ur.Endpoints {
			fmt.Fprintf(&sb, "%d. `%s %s`\n", ctx.Next(list), ep.Verb, ep.Path)
			for _, cl := range ep.Comment.Lines(emitEmptySummary) {
				sb.WriteString(fieldLine(types.FieldLine{Depth: 1, Label: cl.Label, Value: cl.Value}))
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeChildren(sb *strings.Builder, s *document.Section, level int) {
	inList := false
	for _, child := range s.Children {
		switch c := child.(type) {
		case document.FieldLine:
			if !inList {
				sb.WriteString("\n")
				inList = true
			}
			sb.WriteString(fieldLine(types.FieldLine(c)))
		case *document.Section:
			inList = false
			sb.WriteString("\n")
			sb.WriteString(heading(level, c.Title))
			writeChildren(sb, c, level+1)
		}
	}
}

// heading renders a Markdown heading; levels past 6 become bold lines.
func heading(level int, title string) string {
	if level > 6 {
		return fmt.Sprintf("**%s**\n", title)
	}
	return fmt.Sprintf("%s %s\n", strings.Repeat("#", level), title)
}

// fieldLine renders one list item, indented two spaces per depth.
func fieldLine(l types.FieldLine) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", l.Depth))
	sb.WriteString("- **")
	sb.WriteString(l.Label)
	sb.WriteString("**:")
	if l.Value != "" {
		sb.WriteString(" ")
		if l.Terminal {
			fmt.Fprintf(&sb, "_%s_", l.Value)
		} else {
			sb.WriteString(l.Value)
		}
	}
	if notes := annotations(l); len(notes) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(notes, ", "))
	}
	if l.Description != "" {
		sb.WriteString(" ")
		sb.WriteString(l.Description)
	}
	sb.WriteString("\n")
	return sb.String()
}

func annotations(l types.FieldLine) []string {
	var notes []string
	if l.In != "" {
		notes = append(notes, "In: "+l.In)
	}
	if l.Required {
		notes = append(notes, "Required")
	}
	if l.Nullable {
		notes = append(notes, "nullable")
	}
	if l.ReadOnly {
		notes = append(notes, "read-only")
	}
	return notes
}
