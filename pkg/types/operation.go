// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"encoding/json"
	"slices"

	"gopkg.in/yaml.v3"
)

// Operation is one HTTP method on a path. Extensions such as
// x-ms-pageable and x-ms-docs-operation-type are written inline next to the
// standard fields.
type Operation struct {
	// Tags name the operation's groups; AddTag keeps them unique
	Tags         []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary      string        `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
	OperationID  string        `json:"operationId,omitempty" yaml:"operationId,omitempty"`

	// Parameters keep the order in which the pipeline added them
	Parameters  []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   *Responses   `json:"responses,omitempty" yaml:"responses,omitempty"`
	Deprecated  bool         `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	// Security overrides the document security; scopes come from restriction annotations
	Security []map[string][]string `json:"security,omitempty" yaml:"security,omitempty"`

	Extensions map[string]interface{} `json:"-" yaml:"-"`
}

// NewOperation returns an empty operation ready to be populated.
func NewOperation() *Operation {
	return &Operation{
		Responses:  NewResponses(),
		Extensions: make(map[string]interface{}),
	}
}

// AddTag adds a tag name unless it is already present.
func (o *Operation) AddTag(name string) {
	if !slices.Contains(o.Tags, name) {
		o.Tags = append(o.Tags, name)
	}
}

// HasParameter reports whether a parameter with the same name and location exists.
func (o *Operation) HasParameter(name, in string) bool {
	for _, p := range o.Parameters {
		if p.Name == name && p.In == in {
			return true
		}
	}
	return false
}

// MarshalJSON inlines the operation extensions.
func (o Operation) MarshalJSON() ([]byte, error) {
	type plain Operation
	data, err := json.Marshal(plain(o))
	if err != nil {
		return nil, err
	}
	return inlineExtensions(data, o.Extensions)
}

// UnmarshalJSON collects x- keys into Extensions.
func (o *Operation) UnmarshalJSON(data []byte) error {
	type plain Operation
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	ext, err := extensionsFromJSON(data)
	if err != nil {
		return err
	}
	*o = Operation(p)
	o.Extensions = ext
	return nil
}

// MarshalYAML inlines the operation extensions and keeps response order.
func (o Operation) MarshalYAML() (interface{}, error) {
	return jsonToYAMLNode(o)
}

// UnmarshalYAML collects x- keys into Extensions.
func (o *Operation) UnmarshalYAML(node *yaml.Node) error {
	type plain Operation
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	ext, err := extensionsFromYAML(node)
	if err != nil {
		return err
	}
	*o = Operation(p)
	o.Extensions = ext
	return nil
}

// Parameter is an inline parameter or, when Ref is set, a reference to a
// parameter component. Key parameters are path parameters named after the
// key property.
type Parameter struct {
	Ref         string `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	In          string `json:"in,omitempty" yaml:"in,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`

	// Style and Explode control how $select and $expand arrays serialize
	Style   string `json:"style,omitempty" yaml:"style,omitempty"`
	Explode *bool  `json:"explode,omitempty" yaml:"explode,omitempty"`

	Schema   *Schema             `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example  interface{}         `json:"example,omitempty" yaml:"example,omitempty"`
	Examples map[string]*Example `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// RequestBody is an inline body or a reference to a requestBodies component.
type RequestBody struct {
	Ref         string                `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool                  `json:"required,omitempty" yaml:"required,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// Response is an inline response or a reference to a responses component.
type Response struct {
	Ref         string                `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Headers     map[string]*Header    `json:"headers,omitempty" yaml:"headers,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty" yaml:"content,omitempty"`

	// Links point from navigation reads to the operations of the target
	Links map[string]*Link `json:"links,omitempty" yaml:"links,omitempty"`
}

type Header struct {
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// MediaType is the content of one media type, e.g. application/json.
type MediaType struct {
	Schema  *Schema     `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example interface{} `json:"example,omitempty" yaml:"example,omitempty"`
}

type Example struct {
	Summary     string      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Value       interface{} `json:"value,omitempty" yaml:"value,omitempty"`
}

// Link is an OpenAPI link object. Parameters map target parameter names to
// runtime expressions such as "$request.path.customer-id".
type Link struct {
	OperationID string                 `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters  map[string]interface{} `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
}
