// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/api2spec/apidocgen/pkg/types"
)

// Comment is an assembled documentation block.
type Comment struct {
	// Block holds the extracted summary, params, returns and exceptions
	Block *types.CommentBlock

	// End is the index of the last documentation line of the run
	End int

	// Signature is the index of the declaration line, -1 when none follows
	Signature int

	// Method is the declared method name, empty when there is no signature
	Method string

	// Params are the signature's parameters
	Params []types.ParameterDescriptor
}

type scanState int

const (
	stateComment scanState = iota
	stateSeek
	stateSignature
	stateDone
)

// AssembleComment assembles the documentation run starting at lines[start]
// together with the declaration that follows it.
//
// The run ends before the first non-documentation line. The declaration is
// the first public line after the run; a declaration wrapped over several
// lines is joined until a ')' or '{' appears.
func AssembleComment(unit string, lines []string, start int) (Comment, error) {
	if start < 0 || start >= len(lines) || !IsDocComment(lines[start]) {
		return Comment{}, fmt.Errorf("%s: no documentation comment at line %d", unit, start)
	}

	c := Comment{End: start, Signature: -1}
	var sig strings.Builder

	state := stateComment
	for i := start + 1; state != stateDone; i++ {
		if i >= len(lines) {
			break
		}
		line := lines[i]

		switch state {
		case stateComment:
			if IsDocComment(line) {
				c.End = i
				continue
			}
			state = stateSeek
			fallthrough
		case stateSeek:
			if !IsDeclaration(line) {
				continue
			}
			c.Signature = i
			sig.WriteString(line)
			state = stateSignature
			if strings.ContainsAny(line, "){") {
				state = stateDone
			}
		case stateSignature:
			sig.WriteByte(' ')
			sig.WriteString(line)
			if strings.ContainsAny(line, "){") {
				state = stateDone
			}
		}
	}

	if c.Signature != -1 {
		c.Method, c.Params = ParseSignature(sig.String())
	}

	elements, err := parseDocXML(lines[start : c.End+1])
	if err != nil {
		return Comment{}, &MalformedDocCommentError{Unit: unit, Line: start, Err: err}
	}
	c.Block = buildBlock(elements, c.Params)

	return c, nil
}

// docElement is one top-level element of a documentation block.
type docElement struct {
	name  string
	attrs map[string]string
	text  string
}

// parseDocXML strips the comment markers, joins the lines with single
// spaces and decodes the result inside a synthetic root element.
// Element text is all descendant character data with whitespace collapsed.
func parseDocXML(run []string) ([]docElement, error) {
	parts := make([]string, 0, len(run))
	for _, line := range run {
		parts = append(parts, strings.TrimSpace(strings.TrimPrefix(line, docCommentPrefix)))
	}
	fragment := "<root>" + strings.Join(parts, " ") + "</root>"

	dec := xml.NewDecoder(strings.NewReader(fragment))
	dec.Strict = true

	var (
		elements []docElement
		current  *docElement
		text     strings.Builder
		depth    int
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				current = &docElement{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
				for _, a := range t.Attr {
					current.attrs[a.Name.Local] = a.Value
				}
				text.Reset()
			}
		case xml.EndElement:
			if depth == 2 && current != nil {
				current.text = strings.Join(strings.Fields(text.String()), " ")
				elements = append(elements, *current)
				current = nil
			}
			depth--
		case xml.CharData:
			if depth >= 2 {
				text.Write(t)
			}
		}
	}

	return elements, nil
}

// buildBlock maps the decoded elements onto a CommentBlock, labelling each
// param with its origin from the signature when one is declared.
func buildBlock(elements []docElement, params []types.ParameterDescriptor) *types.CommentBlock {
	block := &types.CommentBlock{}

	for _, el := range elements {
		switch el.name {
		case "summary":
			if !block.HasSummary {
				block.Summary = el.text
				block.HasSummary = true
			}
		case "param":
			name := el.attrs["name"]
			label := "(" + name + ")"
			if p, ok := FindParameter(params, name); ok && p.Origin != "" {
				label = "(" + p.Origin + " " + name + ")"
			}
			block.Parameters = append(block.Parameters, types.CommentEntry{Label: label, Text: el.text})
		case "returns":
			if block.Returns == "" {
				block.Returns = el.text
			}
		case "exception":
			block.Exceptions = append(block.Exceptions, types.CommentException{
				TypeRef: el.attrs["cref"],
				Text:    el.text,
			})
		}
	}

	return block
}
