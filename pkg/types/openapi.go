// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// Document is a deserialized OpenAPI 3.x document.
// Every map whose order matters to the rendered output is an OrderedMap.
type Document struct {
	// OpenAPI is the OpenAPI specification version (e.g., "3.0.3", "3.1.0")
	OpenAPI string `json:"openapi" yaml:"openapi"`

	// Info provides metadata about the API
	Info Info `json:"info" yaml:"info"`

	// Paths holds the available paths and operations, in document order
	Paths *OrderedMap[*PathItem] `json:"paths,omitempty" yaml:"paths,omitempty"`

	// Components holds reusable objects
	Components *Components `json:"components,omitempty" yaml:"components,omitempty"`

	// Tags is a list of tags used by the document
	Tags []Tag `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Info provides metadata about the API.
type Info struct {
	// Title is the title of the API
	Title string `json:"title" yaml:"title"`

	// Description is a description of the API
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Version is the version of the API
	Version string `json:"version" yaml:"version"`
}

// Tag adds metadata to a tag used by operations.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem describes the operations available on a single path.
type PathItem struct {
	// Summary is a summary for all operations in this path
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Description is a description for all operations in this path
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Get     *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put     *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post    *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
	Trace   *Operation `json:"trace,omitempty" yaml:"trace,omitempty"`

	// Parameters are parameters applicable to all operations on this path
	Parameters []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// VerbOperation pairs an uppercase HTTP verb with its operation.
type VerbOperation struct {
	Verb      string
	Operation *Operation
}

// Operations returns the declared operations in emission order:
// GET, PUT, POST, DELETE first, then PATCH, HEAD, OPTIONS, TRACE.
func (p *PathItem) Operations() []VerbOperation {
	if p == nil {
		return nil
	}
	all := []VerbOperation{
		{"GET", p.Get},
		{"PUT", p.Put},
		{"POST", p.Post},
		{"DELETE", p.Delete},
		{"PATCH", p.Patch},
		{"HEAD", p.Head},
		{"OPTIONS", p.Options},
		{"TRACE", p.Trace},
	}
	out := make([]VerbOperation, 0, len(all))
	for _, vo := range all {
		if vo.Operation != nil {
			out = append(out, vo)
		}
	}
	return out
}

// Operation describes a single API operation on a path.
type Operation struct {
	// Tags are used to group operations
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Summary is a short summary of the operation
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Description is a detailed description of the operation
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// OperationID is a unique identifier for the operation
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`

	// Parameters are the operation parameters
	Parameters []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// RequestBody is the request body
	RequestBody *RequestBody `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`

	// Responses maps status codes to responses, in document order
	Responses *OrderedMap[*Response] `json:"responses,omitempty" yaml:"responses,omitempty"`

	// Deprecated indicates if the operation is deprecated
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Parameter describes a single operation parameter.
type Parameter struct {
	// Ref is a reference to a parameter component
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Name is the parameter name
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// In is the location of the parameter (path, query, header, cookie)
	In string `json:"in,omitempty" yaml:"in,omitempty"`

	// Description is a brief description of the parameter
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Required indicates if the parameter is required
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Deprecated indicates if the parameter is deprecated
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	// Schema defines the type of the parameter
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// RequestBody describes a request body.
type RequestBody struct {
	Ref         string                   `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Description string                   `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool                     `json:"required,omitempty" yaml:"required,omitempty"`
	Content     *OrderedMap[*MediaType] `json:"content,omitempty" yaml:"content,omitempty"`
}

// Response describes a single response from an API operation.
type Response struct {
	Ref         string                   `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Description string                   `json:"description,omitempty" yaml:"description,omitempty"`
	Content     *OrderedMap[*MediaType] `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType provides the schema for a content type.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Components holds reusable objects referenced from the rest of the document.
type Components struct {
	Schemas       *OrderedMap[*Schema]      `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	Parameters    *OrderedMap[*Parameter]   `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBodies *OrderedMap[*RequestBody] `json:"requestBodies,omitempty" yaml:"requestBodies,omitempty"`
	Responses     *OrderedMap[*Response]    `json:"responses,omitempty" yaml:"responses,omitempty"`
}
