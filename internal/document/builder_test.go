// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/apidocgen/internal/parser"
	"github.com/api2spec/apidocgen/internal/schema"
	"github.com/api2spec/apidocgen/pkg/types"
)

func itemsUnit() types.SourceUnit {
	return types.SourceUnit{
		Name: "ItemsController",
		Lines: []string{
			`[Route("api/v{v:apiVersion}/[controller]")]`,
			`[ApiVersion("1")]`,
			`[HttpGet("list")]`,
			`/// <summary>Gets items</summary>`,
			`public IActionResult Get()`,
		},
	}
}

func lines(s *Section) []types.FieldLine {
	var out []types.FieldLine
	for _, c := range s.Children {
		if l, ok := c.(FieldLine); ok {
			out = append(out, types.FieldLine(l))
		}
	}
	return out
}

func subsections(s *Section) []*Section {
	var out []*Section
	for _, c := range s.Children {
		if sub, ok := c.(*Section); ok {
			out = append(out, sub)
		}
	}
	return out
}

func TestFromUnits_ItemsController(t *testing.T) {
	doc, cdoc, err := NewBuilder(WithTitle("Items API")).FromUnits([]types.SourceUnit{itemsUnit()})
	require.NoError(t, err)

	assert.Equal(t, "Items API", doc.Title)
	assert.Equal(t, []string{"ItemsController"}, doc.Groups.Keys())

	rm, ok := doc.Groups.Get("ItemsController")
	require.True(t, ok)
	require.Len(t, rm.Sections, 1)

	s := rm.Sections[0]
	assert.Equal(t, "GET /api/v1/items/list", s.Title)
	assert.Equal(t, KindRoute, s.Kind)
	assert.Equal(t, "GET", s.Verb)
	assert.Equal(t, []types.FieldLine{{Label: types.LabelSummary, Value: "Gets items"}}, lines(s))

	require.Len(t, cdoc.Units, 1)
	ur := cdoc.Units[0]
	assert.Equal(t, "api/v1/items", ur.BasePath)
	require.Len(t, ur.Endpoints, 1)
	assert.Equal(t, "GET", ur.Endpoints[0].Verb)
	assert.Equal(t, "/list", ur.Endpoints[0].PathFragment)
	assert.Equal(t, "Gets items", ur.Endpoints[0].Comment.Summary)
}

func TestFromUnits_SkipsUnitsWithoutRouting(t *testing.T) {
	base := types.SourceUnit{
		Name:  "BaseController",
		Lines: []string{"public abstract class BaseController : ControllerBase", "{", "}"},
	}

	doc, cdoc, err := NewBuilder().FromUnits([]types.SourceUnit{base, itemsUnit()})
	require.NoError(t, err)
	assert.Equal(t, []string{"ItemsController"}, doc.Groups.Keys())
	assert.Len(t, cdoc.Units, 1)
}

func TestFromUnits_EmptySummary(t *testing.T) {
	unit := types.SourceUnit{
		Name: "ItemsController",
		Lines: []string{
			`[Route("api/[controller]")]`,
			`[HttpDelete("{id}")]`,
			`/// <param name="id">Item id</param>`,
			`public IActionResult Delete(int id)`,
		},
	}

	t.Run("emitted by default", func(t *testing.T) {
		doc, _, err := NewBuilder().FromUnits([]types.SourceUnit{unit})
		require.NoError(t, err)
		rm, _ := doc.Groups.Get("ItemsController")
		require.Len(t, rm.Sections, 1)
		assert.Equal(t, []types.FieldLine{
			{Label: types.LabelSummary, Value: ""},
			{Label: types.LabelParam, Value: "(id) Item id"},
		}, lines(rm.Sections[0]))
	})

	t.Run("omitted when disabled", func(t *testing.T) {
		doc, _, err := NewBuilder(WithEmptySummary(false)).FromUnits([]types.SourceUnit{unit})
		require.NoError(t, err)
		rm, _ := doc.Groups.Get("ItemsController")
		assert.Equal(t, []types.FieldLine{
			{Label: types.LabelParam, Value: "(id) Item id"},
		}, lines(rm.Sections[0]))
	})
}

func TestFromUnits_MalformedComment(t *testing.T) {
	broken := types.SourceUnit{
		Name: "BrokenController",
		Lines: []string{
			`[Route("api/[controller]")]`,
			`[HttpGet]`,
			`/// <summary>Unclosed`,
			`public IActionResult Get()`,
		},
	}

	t.Run("aborts by default", func(t *testing.T) {
		doc, cdoc, err := NewBuilder().FromUnits([]types.SourceUnit{itemsUnit(), broken})
		require.Error(t, err)
		assert.Nil(t, doc)
		assert.Nil(t, cdoc)
		assert.ErrorIs(t, err, parser.ErrMalformedDocComment)
	})

	t.Run("continue on error keeps siblings", func(t *testing.T) {
		doc, cdoc, err := NewBuilder(WithContinueOnError(true)).
			FromUnits([]types.SourceUnit{broken, itemsUnit(), broken})
		require.Error(t, err)
		assert.ErrorIs(t, err, parser.ErrMalformedDocComment)

		var mdc *parser.MalformedDocCommentError
		require.True(t, errors.As(err, &mdc))
		assert.Equal(t, "BrokenController", mdc.Unit)

		require.NotNil(t, doc)
		assert.Equal(t, []string{"ItemsController"}, doc.Groups.Keys())
		assert.Len(t, cdoc.Units, 1)
	})
}

func widgetsDocument() *types.Document {
	paths := types.NewOrderedMap[*types.PathItem]()
	responses := types.NewOrderedMap[*types.Response]()
	responses.Set("200", &types.Response{Description: "OK"})
	paths.Set("/widgets", &types.PathItem{
		Get: &types.Operation{Tags: []string{"Widgets"}, Responses: responses},
	})
	return &types.Document{
		OpenAPI: "3.0.1",
		Info:    types.Info{Title: "Widget API", Version: "1.0"},
		Paths:   paths,
	}
}

func TestFromOpenAPI_Widgets(t *testing.T) {
	doc, err := NewBuilder().FromOpenAPI(widgetsDocument())
	require.NoError(t, err)

	assert.Equal(t, "Widget API v1.0", doc.Title)
	assert.Equal(t, []string{"Widgets"}, doc.Groups.Keys())

	rm, _ := doc.Groups.Get("Widgets")
	require.Len(t, rm.Sections, 1)
	route := rm.Sections[0]
	assert.Equal(t, "/widgets", route.Title)
	assert.Equal(t, KindRoute, route.Kind)

	methods := subsections(route)
	require.Len(t, methods, 1)
	assert.Equal(t, "GET", methods[0].Verb)
	assert.Equal(t, KindMethod, methods[0].Kind)

	resp := subsections(methods[0])
	require.Len(t, resp, 1)
	assert.Equal(t, TitleResponses, resp[0].Title)
	statuses := subsections(resp[0])
	require.Len(t, statuses, 1)
	assert.Equal(t, "200", statuses[0].Title)
	assert.Equal(t, []types.FieldLine{{Label: "Description", Value: "OK"}}, lines(statuses[0]))
}

func TestFromOpenAPI_TitleOverride(t *testing.T) {
	doc, err := NewBuilder(WithTitle("Inventory")).FromOpenAPI(widgetsDocument())
	require.NoError(t, err)
	assert.Equal(t, "Inventory v1.0", doc.Title)
}

func TestFromOpenAPI_FixedVerbOrder(t *testing.T) {
	paths := types.NewOrderedMap[*types.PathItem]()
	tag := []string{"Items"}
	paths.Set("/items", &types.PathItem{
		Delete: &types.Operation{Tags: tag},
		Post:   &types.Operation{Tags: tag},
		Patch:  &types.Operation{Tags: tag},
		Get:    &types.Operation{Tags: tag},
		Put:    &types.Operation{Tags: tag},
	})

	doc, err := NewBuilder().FromOpenAPI(&types.Document{Paths: paths})
	require.NoError(t, err)

	rm, _ := doc.Groups.Get("Items")
	require.Len(t, rm.Sections, 1)
	var verbs []string
	for _, m := range subsections(rm.Sections[0]) {
		verbs = append(verbs, m.Verb)
	}
	assert.Equal(t, []string{"GET", "PUT", "POST", "DELETE", "PATCH"}, verbs)
}

func TestFromOpenAPI_GroupOrderAndSplitTags(t *testing.T) {
	paths := types.NewOrderedMap[*types.PathItem]()
	paths.Set("/users", &types.PathItem{
		Post: &types.Operation{Tags: []string{"Admin"}},
		Get:  &types.Operation{Tags: []string{"Users", "Admin"}},
	})
	paths.Set("/users/{id}", &types.PathItem{
		Get: &types.Operation{Tags: []string{"Users"}},
	})
	paths.Set("/api/v2/orders/{id}", &types.PathItem{
		Get: &types.Operation{},
	})
	paths.Set("/", &types.PathItem{
		Get: &types.Operation{},
	})

	doc, err := NewBuilder().FromOpenAPI(&types.Document{Paths: paths})
	require.NoError(t, err)

	// GET is visited before POST, so Users is seen first.
	assert.Equal(t, []string{"Users", "Admin", "Orders", DefaultGroup}, doc.Groups.Keys())

	users, _ := doc.Groups.Get("Users")
	require.Len(t, users.Sections, 2)
	assert.Equal(t, "/users", users.Sections[0].Title)
	assert.Equal(t, "/users/{id}", users.Sections[1].Title)

	admin, _ := doc.Groups.Get("Admin")
	require.Len(t, admin.Sections, 1)
	assert.Equal(t, "/users", admin.Sections[0].Title)
	methods := subsections(admin.Sections[0])
	require.Len(t, methods, 1)
	assert.Equal(t, "POST", methods[0].Verb)
}

func TestGroupKey(t *testing.T) {
	tests := []struct {
		name string
		op   *types.Operation
		path string
		want string
	}{
		{"first tag", &types.Operation{Tags: []string{"Pets", "Store"}}, "/pets", "Pets"},
		{"path segment", &types.Operation{}, "/pets/{id}", "Pets"},
		{"skips api and version", &types.Operation{}, "/api/v1/store/orders", "Store"},
		{"only parameters", &types.Operation{}, "/{id}", DefaultGroup},
		{"nil operation", nil, "/", DefaultGroup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupKey(tt.op, tt.path))
		})
	}
}

func petStore() *types.Document {
	pet := &types.Schema{
		Types:      types.TypeSet{"object"},
		Properties: types.NewOrderedMap[*types.Schema](),
		Required:   []string{"name"},
	}
	pet.Properties.Set("name", &types.Schema{Types: types.TypeSet{"string"}, Description: "Pet name"})
	pet.Properties.Set("parent", &types.Schema{Ref: "#/components/schemas/Pet"})

	schemas := types.NewOrderedMap[*types.Schema]()
	schemas.Set("Pet", pet)

	limit := types.NewOrderedMap[*types.Parameter]()
	limit.Set("Limit", &types.Parameter{
		Name: "limit", In: "query", Description: "Page size",
		Schema: &types.Schema{Types: types.TypeSet{"integer"}, Format: "int32"},
	})

	bodies := types.NewOrderedMap[*types.RequestBody]()
	content := types.NewOrderedMap[*types.MediaType]()
	content.Set("application/json", &types.MediaType{Schema: &types.Schema{Ref: "#/components/schemas/Pet"}})
	bodies.Set("PetBody", &types.RequestBody{Description: "A pet", Required: true, Content: content})

	responses := types.NewOrderedMap[*types.Response]()
	responses.Set("201", &types.Response{Description: "Created"})

	paths := types.NewOrderedMap[*types.PathItem]()
	paths.Set("/pets/{id}", &types.PathItem{
		Parameters: []*types.Parameter{
			{Name: "id", In: "path", Required: true, Schema: &types.Schema{Types: types.TypeSet{"string"}}},
		},
		Post: &types.Operation{
			Tags:        []string{"Pets"},
			Summary:     "Create a pet",
			Parameters:  []*types.Parameter{{Ref: "#/components/parameters/Limit"}},
			RequestBody: &types.RequestBody{Ref: "#/components/requestBodies/PetBody"},
			Responses:   responses,
		},
	})

	return &types.Document{
		Paths: paths,
		Components: &types.Components{
			Schemas:       schemas,
			Parameters:    limit,
			RequestBodies: bodies,
		},
	}
}

func TestFromOpenAPI_MethodSections(t *testing.T) {
	doc, err := NewBuilder().FromOpenAPI(petStore())
	require.NoError(t, err)

	rm, _ := doc.Groups.Get("Pets")
	require.Len(t, rm.Sections, 1)
	methods := subsections(rm.Sections[0])
	require.Len(t, methods, 1)
	post := methods[0]

	assert.Equal(t, []types.FieldLine{{Label: types.LabelSummary, Value: "Create a pet"}}, lines(post))

	subs := subsections(post)
	require.Len(t, subs, 3)
	assert.Equal(t, TitleParams, subs[0].Title)
	assert.Equal(t, TitleRequestBody, subs[1].Title)
	assert.Equal(t, TitleResponses, subs[2].Title)

	assert.Equal(t, []types.FieldLine{
		{Label: "id", Value: "string", In: "path", Required: true},
		{Label: "limit", Value: "int32", Description: "Page size", In: "query"},
	}, lines(subs[0]))

	assert.Equal(t, []types.FieldLine{
		{Label: "Description", Value: "A pet"},
		{Label: "Required", Value: "true"},
	}, lines(subs[1]))
	media := subsections(subs[1])
	require.Len(t, media, 1)
	assert.Equal(t, "application/json", media[0].Title)
	assert.Equal(t, []types.FieldLine{
		{Depth: 0, Label: "name", Value: "string", Description: "Pet name", Required: true},
		{Depth: 0, Label: "parent", Value: types.SameTypeAsParent, Terminal: true},
	}, lines(media[0]))
}

func TestFromOpenAPI_OperationParameterOverridesPathParameter(t *testing.T) {
	paths := types.NewOrderedMap[*types.PathItem]()
	paths.Set("/items/{id}", &types.PathItem{
		Parameters: []*types.Parameter{{Name: "id", In: "path", Description: "path level"}},
		Get: &types.Operation{
			Tags:       []string{"Items"},
			Parameters: []*types.Parameter{{Name: "id", In: "path", Description: "operation level"}},
		},
	})

	doc, err := NewBuilder().FromOpenAPI(&types.Document{Paths: paths})
	require.NoError(t, err)

	rm, _ := doc.Groups.Get("Items")
	params := subsections(subsections(rm.Sections[0])[0])[0]
	assert.Equal(t, []types.FieldLine{{Label: "id", In: "path", Description: "operation level"}}, lines(params))
}

func TestFromOpenAPI_SchemaNotFound(t *testing.T) {
	content := types.NewOrderedMap[*types.MediaType]()
	content.Set("application/json", &types.MediaType{Schema: &types.Schema{Ref: "#/components/schemas/Missing"}})
	responses := types.NewOrderedMap[*types.Response]()
	responses.Set("200", &types.Response{Description: "OK", Content: content})

	paths := types.NewOrderedMap[*types.PathItem]()
	paths.Set("/things", &types.PathItem{Get: &types.Operation{Responses: responses}})

	doc, err := NewBuilder().FromOpenAPI(&types.Document{Paths: paths})
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, schema.ErrSchemaNotFound)
	assert.Contains(t, err.Error(), "GET /things")
	assert.Contains(t, err.Error(), "#/components/schemas/Missing")
}

func TestFromOpenAPI_MissingParameterRef(t *testing.T) {
	paths := types.NewOrderedMap[*types.PathItem]()
	paths.Set("/things", &types.PathItem{Get: &types.Operation{
		Parameters: []*types.Parameter{{Ref: "#/components/parameters/Nope"}},
	}})

	_, err := NewBuilder().FromOpenAPI(&types.Document{Paths: paths})
	assert.ErrorIs(t, err, schema.ErrSchemaNotFound)
}

func TestFromOpenAPI_Nil(t *testing.T) {
	_, err := NewBuilder().FromOpenAPI(nil)
	assert.Error(t, err)
}
