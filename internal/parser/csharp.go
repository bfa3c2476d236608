// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package parser provides the line-oriented C# heuristics used to extract
// routes and documentation comments from controller files.
// Nothing here parses the C# grammar; lines are classified by their prefix.
package parser

import (
	"strings"
	"unicode"

	"github.com/api2spec/apidocgen/pkg/types"
)

// Line prefixes recognised by the classifier.
const (
	attributePrefix   = "["
	docCommentPrefix  = "///"
	declarationPrefix = "public "
)

// IsAttribute reports whether a trimmed line is an attribute line (e.g., [HttpGet]).
func IsAttribute(line string) bool {
	return strings.HasPrefix(line, attributePrefix)
}

// IsDocComment reports whether a trimmed line is an XML documentation line.
func IsDocComment(line string) bool {
	return strings.HasPrefix(line, docCommentPrefix)
}

// IsDeclaration reports whether a trimmed line starts a public declaration.
func IsDeclaration(line string) bool {
	return strings.HasPrefix(line, declarationPrefix)
}

// Classify trims every line and keeps only attribute, documentation and
// public declaration lines, in their original order.
func Classify(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if IsAttribute(line) || IsDocComment(line) || IsDeclaration(line) {
			out = append(out, line)
		}
	}
	return out
}

// ParseParameter parses one trimmed parameter fragment such as
// "[FromQuery] int id". Two tokens are (type, name), three tokens are
// (origin, type, name). Any other shape yields the zero descriptor.
func ParseParameter(fragment string) types.ParameterDescriptor {
	tokens := splitTopLevel(strings.TrimSpace(fragment), unicode.IsSpace)

	switch len(tokens) {
	case 2:
		return types.ParameterDescriptor{Type: tokens[0], Name: tokens[1]}
	case 3:
		return types.ParameterDescriptor{Origin: tokens[0], Type: tokens[1], Name: tokens[2]}
	default:
		return types.ParameterDescriptor{}
	}
}

// ParseSignature splits a reconstructed method signature into the method
// name and its parameters, in declaration order.
// A signature without a parameter list yields no parameters.
func ParseSignature(signature string) (string, []types.ParameterDescriptor) {
	open := strings.IndexByte(signature, '(')
	if open == -1 {
		return "", nil
	}
	method := methodName(signature[:open])

	inner := signature[open+1:]
	if end := strings.LastIndexByte(inner, ')'); end != -1 {
		inner = inner[:end]
	}
	if strings.TrimSpace(inner) == "" {
		return method, nil
	}

	fragments := splitTopLevel(inner, func(r rune) bool { return r == ',' })
	params := make([]types.ParameterDescriptor, 0, len(fragments))
	for _, f := range fragments {
		params = append(params, ParseParameter(f))
	}
	return method, params
}

// FindParameter returns the descriptor with the given name.
func FindParameter(params []types.ParameterDescriptor, name string) (types.ParameterDescriptor, bool) {
	for _, p := range params {
		if p.Name != "" && p.Name == name {
			return p, true
		}
	}
	return types.ParameterDescriptor{}, false
}

// methodName returns the identifier at the end of prefix, skipping a
// trailing generic argument list such as Get<T>.
func methodName(prefix string) string {
	prefix = strings.TrimRightFunc(prefix, unicode.IsSpace)
	if strings.HasSuffix(prefix, ">") {
		depth := 0
		for i := len(prefix) - 1; i >= 0; i-- {
			switch prefix[i] {
			case '>':
				depth++
			case '<':
				depth--
			}
			if depth == 0 {
				prefix = strings.TrimRightFunc(prefix[:i], unicode.IsSpace)
				break
			}
		}
	}

	end := len(prefix)
	start := end
	for start > 0 {
		c := prefix[start-1]
		if c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			start--
			continue
		}
		break
	}
	return prefix[start:end]
}

// splitTopLevel splits src on separator runes that are not nested inside
// <...>, (...) or [...] groups. Empty pieces are dropped and each piece is trimmed.
func splitTopLevel(src string, isSep func(rune) bool) []string {
	var parts []string
	var current strings.Builder
	depth := 0

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			parts = append(parts, s)
		}
		current.Reset()
	}

	for _, ch := range src {
		switch ch {
		case '<', '(', '[':
			depth++
			current.WriteRune(ch)
		case '>', ')', ']':
			if depth > 0 {
				depth--
			}
			current.WriteRune(ch)
		default:
			if depth == 0 && isSep(ch) {
				flush()
				continue
			}
			current.WriteRune(ch)
		}
	}
	flush()

	return parts
}
