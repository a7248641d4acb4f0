// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import "github.com/api2spec/odata2openapi/pkg/types"

// ComponentKind names a section of the OpenAPI components object.
type ComponentKind string

// Component kinds.
const (
	KindSchemas       ComponentKind = "schemas"
	KindResponses     ComponentKind = "responses"
	KindParameters    ComponentKind = "parameters"
	KindRequestBodies ComponentKind = "requestBodies"
)

// Well-known component ids shared by generated operations.
const (
	ErrorResponse         = "error"
	ErrorSchema           = "ODataErrors.ODataError"
	MainErrorSchema       = "ODataErrors.MainError"
	ErrorDetailsSchema    = "ODataErrors.ErrorDetails"
	InnerErrorSchema      = "ODataErrors.InnerError"
	CountResponse         = "ODataCountResponse"
	ReferenceUpdateSchema = "ReferenceUpdate"
	ReferenceCreateSchema = "ReferenceCreate"
	StringCollection      = "StringCollectionResponse"
	PaginationBase        = "BaseCollectionPaginationCountResponse"
	RefPostBody           = "refPostBody"
	RefPutBody            = "refPutBody"

	ParamTop    = "top"
	ParamSkip   = "skip"
	ParamSearch = "search"
	ParamFilter = "filter"
	ParamCount  = "count"
)

// NextLinkName is the property carrying the next page link.
const NextLinkName = "@odata.nextLink"

// Ref returns the JSON pointer of a component.
func Ref(kind ComponentKind, id string) string {
	return "#/components/" + string(kind) + "/" + id
}

// CollectionResponseName returns the component id of the collection
// response for an element type, e.g. NS.CustomerCollectionResponse.
func CollectionResponseName(typeName string) string {
	return typeName + "CollectionResponse"
}

// RegisterDefaults adds the components every generated document references.
func RegisterDefaults(r *Registry, topExample int) {
	str := &types.Schema{Type: "string"}
	nullableStr := &types.Schema{Type: "string", Nullable: true}

	r.RegisterComponent(KindSchemas, ErrorSchema, &types.Schema{
		Type:     "object",
		Required: []string{"error"},
		Properties: map[string]*types.Schema{
			"error": types.SchemaRef(MainErrorSchema),
		},
	})
	r.RegisterComponent(KindSchemas, MainErrorSchema, &types.Schema{
		Type:     "object",
		Required: []string{"code", "message"},
		Properties: map[string]*types.Schema{
			"code":       str,
			"message":    str,
			"target":     nullableStr,
			"details":    types.ArrayOf(types.SchemaRef(ErrorDetailsSchema)),
			"innerError": types.SchemaRef(InnerErrorSchema),
		},
	})
	r.RegisterComponent(KindSchemas, ErrorDetailsSchema, &types.Schema{
		Type:     "object",
		Required: []string{"code", "message"},
		Properties: map[string]*types.Schema{
			"code":    str,
			"message": str,
			"target":  nullableStr,
		},
	})
	r.RegisterComponent(KindSchemas, InnerErrorSchema, &types.Schema{
		Type:        "object",
		Description: "The structure of this object is service-specific",
	})
	r.RegisterComponent(KindSchemas, CountResponse, &types.Schema{Type: "integer", Format: "int32"})
	r.RegisterComponent(KindSchemas, ReferenceUpdateSchema, &types.Schema{
		Type: "object",
		Properties: map[string]*types.Schema{
			"@odata.id":   str,
			"@odata.type": nullableStr,
		},
	})
	r.RegisterComponent(KindSchemas, ReferenceCreateSchema, &types.Schema{
		Type: "object",
		Properties: map[string]*types.Schema{
			"@odata.id": str,
		},
		AdditionalProperties: &types.Schema{Type: "object"},
	})
	r.RegisterComponent(KindSchemas, StringCollection, &types.Schema{
		Type:  "object",
		Title: "Collection of string",
		Properties: map[string]*types.Schema{
			"value": types.ArrayOf(str),
		},
	})
	r.RegisterComponent(KindSchemas, PaginationBase, &types.Schema{
		Type:  "object",
		Title: "Base collection pagination and count responses",
		Properties: map[string]*types.Schema{
			"@odata.count": {Type: "integer", Format: "int64", Nullable: true},
			NextLinkName:   nullableStr,
		},
	})

	r.RegisterComponent(KindResponses, ErrorResponse, &types.Response{
		Description: "error",
		Content: map[string]*types.MediaType{
			"application/json": {Schema: types.SchemaRef(ErrorSchema)},
		},
	})
	r.RegisterComponent(KindResponses, CountResponse, &types.Response{
		Description: "The count of the resource",
		Content: map[string]*types.MediaType{
			"text/plain": {Schema: types.SchemaRef(CountResponse)},
		},
	})

	r.RegisterComponent(KindRequestBodies, RefPostBody, &types.RequestBody{
		Description: "New navigation property ref value",
		Required:    true,
		Content: map[string]*types.MediaType{
			"application/json": {Schema: types.SchemaRef(ReferenceCreateSchema)},
		},
	})
	r.RegisterComponent(KindRequestBodies, RefPutBody, &types.RequestBody{
		Description: "New navigation property ref values",
		Required:    true,
		Content: map[string]*types.MediaType{
			"application/json": {Schema: types.SchemaRef(ReferenceUpdateSchema)},
		},
	})

	noExplode := false
	zero := 0.0
	r.RegisterComponent(KindParameters, ParamTop, &types.Parameter{
		Name:        "$top",
		In:          "query",
		Description: "Show only the first n items",
		Style:       "form",
		Explode:     &noExplode,
		Schema:      &types.Schema{Type: "integer", Minimum: &zero},
		Example:     topExample,
	})
	r.RegisterComponent(KindParameters, ParamSkip, &types.Parameter{
		Name:        "$skip",
		In:          "query",
		Description: "Skip the first n items",
		Style:       "form",
		Explode:     &noExplode,
		Schema:      &types.Schema{Type: "integer", Minimum: &zero},
	})
	r.RegisterComponent(KindParameters, ParamSearch, &types.Parameter{
		Name:        "$search",
		In:          "query",
		Description: "Search items by search phrases",
		Style:       "form",
		Explode:     &noExplode,
		Schema:      &types.Schema{Type: "string"},
	})
	r.RegisterComponent(KindParameters, ParamFilter, &types.Parameter{
		Name:        "$filter",
		In:          "query",
		Description: "Filter items by property values",
		Style:       "form",
		Explode:     &noExplode,
		Schema:      &types.Schema{Type: "string"},
	})
	r.RegisterComponent(KindParameters, ParamCount, &types.Parameter{
		Name:        "$count",
		In:          "query",
		Description: "Include count of items",
		Style:       "form",
		Explode:     &noExplode,
		Schema:      &types.Schema{Type: "boolean"},
	})
}

// CollectionResponse returns the schema of a paged collection of items.
func CollectionResponse(title string, items *types.Schema) *types.Schema {
	return &types.Schema{
		AllOf: []*types.Schema{
			types.SchemaRef(PaginationBase),
			{
				Type:  "object",
				Title: title,
				Properties: map[string]*types.Schema{
					"value": types.ArrayOf(items),
				},
			},
		},
	}
}
