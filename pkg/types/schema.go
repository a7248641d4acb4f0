// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// SchemaRefPrefix is the JSON pointer prefix for schema components.
const SchemaRefPrefix = "#/components/schemas/"

// Schema is the subset of the OpenAPI schema object that an entity data
// model can produce.
type Schema struct {
	// Ref points at a component schema; when set the other fields are empty
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Title carries the structured type name
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Default holds a property default value converted to its JSON type
	Default interface{} `json:"default,omitempty" yaml:"default,omitempty"`
	Example interface{} `json:"example,omitempty" yaml:"example,omitempty"`

	// Enum lists the allowed values, e.g. $select and $expand names
	Enum []interface{} `json:"enum,omitempty" yaml:"enum,omitempty"`

	Nullable   bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	// Numeric bounds of the narrow integer primitives
	Minimum *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`

	// MaxLength is copied from the property facet of the same name
	MaxLength *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	Items       *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`

	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// AllOf composes a derived type with its base type
	AllOf []*Schema `json:"allOf,omitempty" yaml:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`

	// Discriminator is set on entity types that have derived types
	Discriminator *Discriminator `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
}

// Discriminator selects the concrete schema of a polymorphic payload by the
// value of one of its properties.
type Discriminator struct {
	PropertyName string `json:"propertyName" yaml:"propertyName"`

	// Mapping maps property values to schema references
	Mapping map[string]string `json:"mapping,omitempty" yaml:"mapping,omitempty"`
}

// ExternalDocs links to documentation outside the document.
type ExternalDocs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url" yaml:"url"`
}

// SchemaRef creates a reference to a schema in components.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: SchemaRefPrefix + name}
}

// ArrayOf returns an array schema with the given item schema.
func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}
