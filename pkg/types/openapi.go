// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides the OpenAPI document structures produced by the converter.
package types

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// OpenAPI is the root of a generated document. Paths are keyed by path
// template, e.g. "/Customers/{customer-id}/Orders".
type OpenAPI struct {
	// OpenAPI is the version string, "3.0.3" or "3.1.0"
	OpenAPI      string                `json:"openapi" yaml:"openapi"`
	Info         Info                  `json:"info" yaml:"info"`
	Servers      []Server              `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths        map[string]PathItem   `json:"paths,omitempty" yaml:"paths,omitempty"`
	Components   *Components           `json:"components,omitempty" yaml:"components,omitempty"`
	Security     []map[string][]string `json:"security,omitempty" yaml:"security,omitempty"`
	Tags         []Tag                 `json:"tags,omitempty" yaml:"tags,omitempty"`
	ExternalDocs *ExternalDocs         `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// Info is the document's info object. Title and Version are required.
type Info struct {
	Title          string   `json:"title" yaml:"title"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	TermsOfService string   `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty"`
	Contact        *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`
	License        *License `json:"license,omitempty" yaml:"license,omitempty"`
	Version        string   `json:"version" yaml:"version"`
}

type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

type License struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem holds the operations of one path template. An OData service only
// ever needs the five methods below.
type PathItem struct {
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Get    *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put    *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post   *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Patch  *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
}

// slot returns the field holding the operation of method, or nil.
func (p *PathItem) slot(method string) **Operation {
	switch strings.ToUpper(method) {
	case "GET":
		return &p.Get
	case "PUT":
		return &p.Put
	case "POST":
		return &p.Post
	case "DELETE":
		return &p.Delete
	case "PATCH":
		return &p.Patch
	}
	return nil
}

var pathItemMethods = []string{"GET", "PUT", "POST", "DELETE", "PATCH"}

// SetOperation places op under the given HTTP method.
// It reports false for methods a path item cannot hold.
func (p *PathItem) SetOperation(method string, op *Operation) bool {
	field := p.slot(method)
	if field == nil {
		return false
	}
	*field = op
	return true
}

// Operations returns the operations of the path item keyed by upper-case method.
func (p PathItem) Operations() map[string]*Operation {
	ops := make(map[string]*Operation)
	for _, m := range pathItemMethods {
		if op := *p.slot(m); op != nil {
			ops[m] = op
		}
	}
	return ops
}

// Components holds the shared objects that operations reference by $ref.
type Components struct {
	Schemas         map[string]*Schema        `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	Responses       map[string]*Response      `json:"responses,omitempty" yaml:"responses,omitempty"`
	Parameters      map[string]*Parameter     `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Examples        map[string]*Example       `json:"examples,omitempty" yaml:"examples,omitempty"`
	RequestBodies   map[string]*RequestBody   `json:"requestBodies,omitempty" yaml:"requestBodies,omitempty"`
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes,omitempty" yaml:"securitySchemes,omitempty"`
}

// SecurityScheme is built from the configured security schemes.
type SecurityScheme struct {
	Type         string `json:"type" yaml:"type"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	In           string `json:"in,omitempty" yaml:"in,omitempty"`
	Scheme       string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	BearerFormat string `json:"bearerFormat,omitempty" yaml:"bearerFormat,omitempty"`
}

// Tag groups operations. Generated tags carry x-ms-docs-toc-type.
type Tag struct {
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`

	// Extensions holds x- vendor extensions, serialized inline.
	Extensions map[string]interface{} `json:"-" yaml:"-"`
}

// MarshalJSON inlines the tag extensions.
func (t Tag) MarshalJSON() ([]byte, error) {
	type plain Tag
	data, err := json.Marshal(plain(t))
	if err != nil {
		return nil, err
	}
	return inlineExtensions(data, t.Extensions)
}

// MarshalYAML inlines the tag extensions.
func (t Tag) MarshalYAML() (interface{}, error) {
	return jsonToYAMLNode(t)
}

// UnmarshalJSON collects x- keys into Extensions.
func (t *Tag) UnmarshalJSON(data []byte) error {
	type plain Tag
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	ext, err := extensionsFromJSON(data)
	if err != nil {
		return err
	}
	*t = Tag(p)
	t.Extensions = ext
	return nil
}

// UnmarshalYAML collects x- keys into Extensions.
func (t *Tag) UnmarshalYAML(node *yaml.Node) error {
	type plain Tag
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	ext, err := extensionsFromYAML(node)
	if err != nil {
		return err
	}
	*t = Tag(p)
	t.Extensions = ext
	return nil
}
