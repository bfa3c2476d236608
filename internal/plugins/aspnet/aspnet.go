// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package aspnet provides a plugin for extracting routes and documentation
// comments from ASP.NET Core controller files.
package aspnet

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/api2spec/apidocgen/internal/parser"
	"github.com/api2spec/apidocgen/internal/plugins"
	"github.com/api2spec/apidocgen/internal/scanner"
	"github.com/api2spec/apidocgen/pkg/types"
)

// httpMethods maps HTTP attribute names to their uppercase forms.
var httpMethods = map[string]string{
	"HttpGet":     "GET",
	"HttpPost":    "POST",
	"HttpPut":     "PUT",
	"HttpDelete":  "DELETE",
	"HttpPatch":   "PATCH",
	"HttpHead":    "HEAD",
	"HttpOptions": "OPTIONS",
}

var (
	// Matches [HttpGet], [HttpGet("path")], [HttpGet("{id}", Name = "x")]
	httpAttributeRegex = regexp.MustCompile(`^\[(Http\w+)(?:\s*\(\s*"([^"]*)")?`)

	// Matches the first string literal of an attribute
	stringLiteralRegex = regexp.MustCompile(`"([^"]*)"`)

	// Matches API version placeholders such as {v:apiVersion} or {version:apiVersion}
	versionPlaceholderRegex = regexp.MustCompile(`\{[^{}:]+:apiVersion\}`)
)

// Plugin implements the FrameworkPlugin interface for ASP.NET Core.
type Plugin struct{}

// New creates a new ASP.NET Core plugin instance.
func New() *Plugin {
	return &Plugin{}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "aspnet"
}

// Extensions returns the file extensions this plugin handles.
func (p *Plugin) Extensions() []string {
	return []string{".cs"}
}

// Info returns plugin metadata.
func (p *Plugin) Info() plugins.PluginInfo {
	return plugins.PluginInfo{
		Name:        "aspnet",
		Version:     "1.0.0",
		Description: "Extracts routes and XML doc comments from ASP.NET Core controllers",
		SupportedFrameworks: []string{
			"Microsoft.AspNetCore",
			"ASP.NET Core",
		},
	}
}

// Detect checks if ASP.NET Core is used in the project.
func (p *Plugin) Detect(projectRoot string) (bool, error) {
	csprojFiles, err := filepath.Glob(filepath.Join(projectRoot, "*.csproj"))
	if err != nil {
		return false, err
	}

	// Also check one level of subdirectories, e.g. src/Api/Api.csproj layouts
	// keep the project file next to a folder of the same name.
	entries, err := os.ReadDir(projectRoot)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				csprojFiles = append(csprojFiles, filepath.Join(projectRoot, entry.Name(), entry.Name()+".csproj"))
			}
		}
	}

	for _, csproj := range csprojFiles {
		if referencesAspNet(csproj) {
			return true, nil
		}
	}
	return false, nil
}

// referencesAspNet checks if a .csproj file references ASP.NET Core.
func referencesAspNet(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = file.Close() }()

	sc := bufio.NewScanner(file)
	for sc.Scan() {
		line := sc.Text()
		if strings.Contains(line, "Microsoft.AspNetCore") ||
			strings.Contains(line, "Microsoft.NET.Sdk.Web") {
			return true
		}
	}
	return false
}

// ExtractRoutes extracts the routes of every C# file, in input order.
// The first unit that fails aborts the extraction.
func (p *Plugin) ExtractRoutes(files []scanner.SourceFile) ([]types.UnitRoutes, error) {
	var out []types.UnitRoutes
	for _, unit := range scanner.Units(files) {
		ur, err := p.ExtractUnit(unit)
		if err != nil {
			return nil, err
		}
		out = append(out, *ur)
	}
	return out, nil
}

// ExtractUnit extracts the base path and endpoints of one controller file.
//
// The routing attribute is the first line containing "Route(". A unit
// without one yields no endpoints. Each documentation block is attached to
// the endpoints declared on the method it documents.
func (p *Plugin) ExtractUnit(unit types.SourceUnit) (*types.UnitRoutes, error) {
	lines := parser.Classify(unit.Lines)
	controller := strings.TrimSuffix(unit.Name, "Controller")

	ur := &types.UnitRoutes{
		Unit:       unit.Name,
		Controller: controller,
		Versions:   extractVersions(lines),
	}

	routeLine := -1
	for i, line := range lines {
		if strings.Contains(line, "Route(") {
			routeLine = i
			break
		}
	}
	if routeLine == -1 {
		return ur, nil
	}
	ur.BasePath = resolveBasePath(lines[routeLine], controller, ur.Versions)

	start := firstEndpointBlock(lines)
	if start == -1 {
		return ur, nil
	}

	var (
		endpoints []types.EndpointDescriptor
		declLines []int
		comments  []parser.Comment
	)
	for i := start; i < len(lines); i++ {
		line := lines[i]

		if parser.IsDocComment(line) {
			c, err := parser.AssembleComment(unit.Name, lines, i)
			if err != nil {
				return nil, err
			}
			comments = append(comments, c)
			// The block is consumed as a whole.
			i = c.End
			continue
		}

		m := httpAttributeRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		verb, ok := httpMethods[m[1]]
		if !ok {
			continue
		}

		decl := nextDeclaration(lines, i)
		method := ""
		if decl != -1 {
			method, _ = parser.ParseSignature(lines[decl])
		}

		endpoints = append(endpoints, newEndpoint(verb, m[2], ur.BasePath, method, i))
		declLines = append(declLines, decl)
	}

	for _, c := range comments {
		if c.Signature == -1 {
			continue
		}
		for j := range endpoints {
			if declLines[j] == c.Signature {
				endpoints[j].Comment = c.Block
			}
		}
	}

	ur.Endpoints = endpoints
	return ur, nil
}

// newEndpoint builds an endpoint from an attribute's literal path.
// Literals rooted at "/" or "~/" ignore the controller base path.
func newEndpoint(verb, literal, basePath, method string, line int) types.EndpointDescriptor {
	ep := types.EndpointDescriptor{
		Verb:   verb,
		Method: method,
		Line:   line,
	}

	absolute := strings.HasPrefix(literal, "/") || strings.HasPrefix(literal, "~/")
	relative := strings.TrimPrefix(strings.TrimPrefix(literal, "~"), "/")
	if literal != "" {
		ep.PathFragment = "/" + relative
	}

	if absolute {
		ep.Path = combinePaths("", relative)
	} else {
		ep.Path = combinePaths(basePath, relative)
	}
	if method != "" {
		ep.Path = strings.ReplaceAll(ep.Path, "[action]", strings.ToLower(method))
	}

	return ep
}

// extractVersions returns the first quoted argument of every [ApiVersion] line.
func extractVersions(lines []string) []string {
	var versions []string
	for _, line := range lines {
		if !strings.HasPrefix(line, "[ApiVersion") {
			continue
		}
		if m := stringLiteralRegex.FindStringSubmatch(line); m != nil {
			versions = append(versions, m[1])
		}
	}
	return versions
}

// resolveBasePath substitutes the controller and version placeholders of the
// routing attribute's first string literal.
func resolveBasePath(routeLine, controller string, versions []string) string {
	m := stringLiteralRegex.FindStringSubmatch(routeLine)
	if m == nil {
		return ""
	}

	path := strings.ReplaceAll(m[1], "[controller]", strings.ToLower(controller))
	path = versionPlaceholderRegex.ReplaceAllLiteralString(path, strings.Join(versions, ","))
	return path
}

// firstEndpointBlock returns the index where the first endpoint's attribute
// and comment block starts, or -1 when the unit declares no endpoint.
// Class-level comments before it are never assembled.
func firstEndpointBlock(lines []string) int {
	first := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "[Http") {
			first = i
			break
		}
	}
	if first == -1 {
		return -1
	}

	for first > 0 && (parser.IsDocComment(lines[first-1]) || parser.IsAttribute(lines[first-1])) {
		first--
	}
	return first
}

// nextDeclaration returns the index of the first declaration after from.
func nextDeclaration(lines []string, from int) int {
	for i := from + 1; i < len(lines); i++ {
		if parser.IsDeclaration(lines[i]) {
			return i
		}
	}
	return -1
}

// combinePaths combines a base path and a relative path into a rooted path.
func combinePaths(base, relative string) string {
	base = strings.Trim(base, "/")
	relative = strings.Trim(relative, "/")

	switch {
	case base == "" && relative == "":
		return "/"
	case base == "":
		return "/" + relative
	case relative == "":
		return "/" + base
	default:
		return "/" + base + "/" + relative
	}
}

// Register registers the ASP.NET Core plugin with the global registry.
func Register() {
	plugins.MustRegister(New())
}

func init() {
	Register()
}
