// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"strconv"

	"github.com/api2spec/odata2openapi/internal/edm"
	"github.com/api2spec/odata2openapi/internal/util"
	"github.com/api2spec/odata2openapi/internal/vocab"
	"github.com/api2spec/odata2openapi/pkg/types"
)

// primitives maps EDM primitive types to OpenAPI type and format.
var primitives = map[string]types.Schema{
	"Edm.String":         {Type: "string"},
	"Edm.Boolean":        {Type: "boolean"},
	"Edm.Byte":           {Type: "integer", Format: "uint8", Minimum: bound(0), Maximum: bound(255)},
	"Edm.SByte":          {Type: "integer", Format: "int8", Minimum: bound(-128), Maximum: bound(127)},
	"Edm.Int16":          {Type: "integer", Format: "int16", Minimum: bound(-32768), Maximum: bound(32767)},
	"Edm.Int32":          {Type: "integer", Format: "int32"},
	"Edm.Int64":          {Type: "integer", Format: "int64"},
	"Edm.Single":         {Type: "number", Format: "float"},
	"Edm.Double":         {Type: "number", Format: "double"},
	"Edm.Decimal":        {Type: "number", Format: "decimal"},
	"Edm.Guid":           {Type: "string", Format: "uuid", Pattern: "^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$"},
	"Edm.Date":           {Type: "string", Format: "date"},
	"Edm.DateTimeOffset": {Type: "string", Format: "date-time"},
	"Edm.TimeOfDay":      {Type: "string", Format: "time"},
	"Edm.Duration":       {Type: "string", Format: "duration"},
	"Edm.Binary":         {Type: "string", Format: "base64url"},
	"Edm.Stream":         {Type: "string", Format: "binary"},
}

func bound(v float64) *float64 { return &v }

// ForType returns the schema of an EDM type reference. Structured types are
// referenced by full name; unknown types become free-form objects.
func ForType(model edm.Model, typeRef string) *types.Schema {
	if inner, ok := util.CollectionElementType(typeRef); ok {
		return types.ArrayOf(ForType(model, inner))
	}
	if p, ok := primitives[typeRef]; ok {
		s := p
		if p.Minimum != nil {
			s.Minimum, s.Maximum = bound(*p.Minimum), bound(*p.Maximum)
		}
		return &s
	}
	if model != nil && (model.FindEntityType(typeRef) != nil || model.FindComplexType(typeRef) != nil) {
		return types.SchemaRef(typeRef)
	}
	return &types.Schema{Type: "object"}
}

// IsPrimitive reports whether the type reference names an EDM primitive.
func IsPrimitive(typeRef string) bool {
	t, _ := util.CollectionElementType(typeRef)
	_, ok := primitives[t]
	return ok
}

// ForProperty returns the schema of a structural property, including its
// maxLength and default value facets.
func ForProperty(model edm.Model, p *edm.Property) *types.Schema {
	s := ForType(model, p.Type)
	if s.Ref != "" || s.Type == "array" {
		return s
	}
	s.Nullable = p.Nullable
	if p.MaxLength != nil && s.Type == "string" {
		n := *p.MaxLength
		s.MaxLength = &n
	}
	if p.DefaultValue != "" {
		s.Default = defaultValue(s.Type, p.DefaultValue)
	}
	return s
}

// defaultValue converts a default literal to the JSON type of the schema.
// Literals that do not parse are kept as strings.
func defaultValue(typ, literal string) interface{} {
	switch typ {
	case "boolean":
		if v, err := strconv.ParseBool(literal); err == nil {
			return v
		}
	case "integer":
		if v, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return v
		}
	case "number":
		if v, err := strconv.ParseFloat(literal, 64); err == nil {
			return v
		}
	}
	return literal
}

// annotatedProperty adds the description and deprecation of the property's
// annotations to its schema.
func annotatedProperty(model edm.Model, store vocab.Store, p *edm.Property) *types.Schema {
	s := ForProperty(model, p)
	if store == nil || s.Ref != "" {
		return s
	}
	s.Description = store.Description(p.Target())
	for _, r := range store.Revisions(p.Target()) {
		if r.IsDeprecation() {
			s.Deprecated = true
		}
	}
	return s
}

// TypeProperty is the payload property that names the concrete entity type.
const TypeProperty = "@odata.type"

// discriminator maps the type names of all derived types of t to their
// schemas. It is nil when t has no derived types.
func discriminator(model edm.Model, t *edm.EntityType) *types.Discriminator {
	derived := model.DerivedTypes(t)
	if len(derived) == 0 {
		return nil
	}
	d := &types.Discriminator{PropertyName: TypeProperty, Mapping: make(map[string]string, len(derived)+1)}
	d.Mapping["#"+t.FullName()] = types.SchemaRefPrefix + t.FullName()
	for _, dt := range derived {
		d.Mapping["#"+dt.FullName()] = types.SchemaRefPrefix + dt.FullName()
	}
	return d
}

// EntitySchema returns the component schema of an entity type.
func EntitySchema(model edm.Model, store vocab.Store, t *edm.EntityType) *types.Schema {
	own := &types.Schema{
		Type:       "object",
		Title:      t.Name,
		Properties: make(map[string]*types.Schema),
	}
	if store != nil {
		own.Description = store.Description(t.FullName())
	}
	for _, p := range t.Properties {
		own.Properties[p.Name] = annotatedProperty(model, store, p)
	}
	if t.BaseType == "" {
		if d := discriminator(model, t); d != nil {
			own.Discriminator = d
			own.Properties[TypeProperty] = &types.Schema{Type: "string"}
		}
	}
	for _, n := range t.NavigationProperties {
		ref := types.SchemaRef(n.TargetTypeName())
		if n.IsCollection() {
			own.Properties[n.Name] = types.ArrayOf(ref)
		} else {
			own.Properties[n.Name] = ref
		}
	}
	if t.BaseType == "" {
		return own
	}
	return &types.Schema{AllOf: []*types.Schema{types.SchemaRef(t.BaseType), own}}
}

// ComplexSchema returns the component schema of a complex type.
func ComplexSchema(model edm.Model, store vocab.Store, t *edm.ComplexType) *types.Schema {
	own := &types.Schema{
		Type:       "object",
		Title:      t.Name,
		Properties: make(map[string]*types.Schema),
	}
	if store != nil {
		own.Description = store.Description(t.FullName())
	}
	for _, p := range t.Properties {
		own.Properties[p.Name] = annotatedProperty(model, store, p)
	}
	if t.BaseType == "" {
		return own
	}
	return &types.Schema{AllOf: []*types.Schema{types.SchemaRef(t.BaseType), own}}
}

// RegisterModel adds a schema component for every structured type of the model.
func RegisterModel(r *Registry, model edm.Model, store vocab.Store) {
	for _, t := range model.EntityTypes() {
		r.RegisterComponent(KindSchemas, t.FullName(), EntitySchema(model, store, t))
	}
	for _, c := range model.ComplexTypes() {
		r.RegisterComponent(KindSchemas, c.FullName(), ComplexSchema(model, store, c))
	}
}
