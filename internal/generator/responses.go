// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"github.com/api2spec/odata2openapi/internal/edm"
	"github.com/api2spec/odata2openapi/internal/schema"
	"github.com/api2spec/odata2openapi/internal/util"
	"github.com/api2spec/odata2openapi/pkg/types"
)

// Media types.
const (
	mediaJSON   = "application/json"
	mediaXML    = "application/xml"
	mediaBinary = "application/octet-stream"
)

// Status codes.
const (
	statusOK        = "200"
	statusCreated   = "201"
	statusNoContent = "204"
	statusRange     = "2XX"
)

func errorResponseRef() string {
	return schema.Ref(schema.KindResponses, schema.ErrorResponse)
}

// successCode returns code, or the 2XX range token when the range setting
// is on.
func successCode(c *call, code string) string {
	if c.ctx.Settings.UseSuccessStatusCodeRange {
		return statusRange
	}
	return code
}

// noContent sets the exact 204 response of deletes and updates. "No
// Content" has no meaningful range, so the range setting does not apply.
func noContent(c *call) {
	c.op.Responses.Set(statusNoContent, &types.Response{Description: "Success"})
}

// responseContent wraps s in the response media types in scope.
func responseContent(c *call, s *types.Schema) map[string]*types.MediaType {
	mediaTypes := []string{mediaJSON}
	if c.restrictions != nil && len(c.restrictions.ResponseContentTypes) > 0 {
		mediaTypes = c.restrictions.ResponseContentTypes
	}
	return content(mediaTypes, s)
}

// requestContent wraps s in the request media types in scope.
func requestContent(c *call, s *types.Schema) map[string]*types.MediaType {
	mediaTypes := []string{mediaJSON}
	if c.restrictions != nil && len(c.restrictions.RequestContentTypes) > 0 {
		mediaTypes = c.restrictions.RequestContentTypes
	}
	return content(mediaTypes, s)
}

func content(mediaTypes []string, s *types.Schema) map[string]*types.MediaType {
	out := make(map[string]*types.MediaType, len(mediaTypes))
	for _, mt := range mediaTypes {
		out[mt] = &types.MediaType{Schema: s}
	}
	return out
}

// entitySchema references t, or any of t and its derived types when
// derived is set.
func entitySchema(c *call, t *edm.EntityType, derived bool) *types.Schema {
	ref := types.SchemaRef(t.FullName())
	if !derived {
		return ref
	}
	subs := c.ctx.Model.DerivedTypes(t)
	if len(subs) == 0 {
		return ref
	}
	s := &types.Schema{AnyOf: []*types.Schema{ref}}
	for _, d := range subs {
		s.AnyOf = append(s.AnyOf, types.SchemaRef(d.FullName()))
	}
	return s
}

// entityResponse sets the 200 response of a single entity read.
func entityResponse(c *call, t *edm.EntityType, description string) *types.Response {
	resp := &types.Response{
		Description: description,
		Content:     responseContent(c, entitySchema(c, t, c.ctx.Settings.EnableDerivedTypesReferencesForResponses)),
	}
	c.op.Responses.Set(successCode(c, statusOK), resp)
	return resp
}

// entityCollectionResponse sets the 200 response of a collection of t and
// registers the shared collection response component on first use.
func entityCollectionResponse(c *call, t *edm.EntityType) {
	name := schema.CollectionResponseName(t.FullName())
	items := entitySchema(c, t, c.ctx.Settings.EnableDerivedTypesReferencesForResponses)
	c.ctx.registerComponent(schema.KindSchemas, name, schema.CollectionResponse("Collection of "+t.Name, items))
	c.ctx.registerComponent(schema.KindResponses, name, &types.Response{
		Description: "Retrieved collection",
		Content:     content([]string{mediaJSON}, types.SchemaRef(name)),
	})
	c.op.Responses.Set(successCode(c, statusOK), &types.Response{Ref: schema.Ref(schema.KindResponses, name)})
	c.pageable = true
}

// valueCollectionResponse sets the 200 response of a collection of values
// that are not entities.
func valueCollectionResponse(c *call, elementType string) {
	title := "Collection of " + util.LastQualifiedPart(elementType)
	c.op.Responses.Set(successCode(c, statusOK), &types.Response{
		Description: "Success",
		Content:     responseContent(c, schema.CollectionResponse(title, schema.ForType(c.ctx.Model, elementType))),
	})
	c.pageable = true
}

// entityBody sets the JSON request body of a create or update of t.
func entityBody(c *call, t *edm.EntityType, description string) {
	c.op.RequestBody = &types.RequestBody{
		Description: description,
		Required:    true,
		Content:     requestContent(c, entitySchema(c, t, c.ctx.Settings.EnableDerivedTypesReferencesForRequestBody)),
	}
}

// addNavigationLinks links every navigation property of t to its read
// operation, passing the path parameters assembled so far.
func addNavigationLinks(c *call, resp *types.Response, t *edm.EntityType) {
	if !c.ctx.Settings.ShowLinks || !c.ctx.Settings.EnableOperationID || c.source == nil || t == nil {
		return
	}
	navs := c.ctx.Model.NavigationProperties(t)
	if len(navs) == 0 {
		return
	}
	params := make(map[string]interface{})
	for _, p := range c.op.Parameters {
		if p.In == "path" {
			params[p.Name] = "$request.path." + p.Name
		}
	}
	resp.Links = make(map[string]*types.Link, len(navs))
	for _, n := range navs {
		prefix := "Get"
		if n.IsCollection() {
			prefix = "List"
		}
		link := &types.Link{OperationID: c.source.Name + "." + prefix + util.UpperFirstChar(n.Name)}
		if len(params) > 0 {
			link.Parameters = make(map[string]interface{}, len(params))
			for k, v := range params {
				link.Parameters[k] = v
			}
		}
		resp.Links[n.Name] = link
	}
}
