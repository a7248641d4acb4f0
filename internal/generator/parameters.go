// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"fmt"
	"strings"

	"github.com/api2spec/odata2openapi/internal/edm"
	"github.com/api2spec/odata2openapi/internal/odatapath"
	"github.com/api2spec/odata2openapi/internal/schema"
	"github.com/api2spec/odata2openapi/internal/vocab"
	"github.com/api2spec/odata2openapi/pkg/types"
)

// baseParameters adds the path template parameters followed by the custom
// headers and query options of the resolved restriction.
func baseParameters(c *call) {
	for _, p := range c.path.Parameters() {
		c.addParameter(pathParameter(c, p))
	}
	if c.restrictions == nil {
		return
	}
	for _, cp := range c.restrictions.CustomHeaders {
		c.addParameter(customParameter(cp, "header"))
	}
	for _, cp := range c.restrictions.CustomQueryOptions {
		c.addParameter(customParameter(cp, "query"))
	}
}

// addParameter appends p unless a parameter with the same name and location
// is present. Component references are keyed by their target.
func (c *call) addParameter(p *types.Parameter) {
	if p.Ref != "" {
		for _, existing := range c.op.Parameters {
			if existing.Ref == p.Ref {
				return
			}
		}
	} else if c.op.HasParameter(p.Name, p.In) {
		return
	}
	c.op.Parameters = append(c.op.Parameters, p)
}

func pathParameter(c *call, p odatapath.PathParameter) *types.Parameter {
	param := &types.Parameter{
		Name:     p.Name,
		In:       "path",
		Required: true,
		Schema:   schema.ForType(c.ctx.Model, p.Type),
	}
	switch {
	case p.Key != nil:
		seg, _ := c.path.Segment(p.Segment).(*odatapath.KeySegment)
		if seg != nil && (seg.Alternate || len(seg.Keys) > 1) {
			param.Description = "Property in multi-part unique identifier of " + seg.Type.Name
		} else if seg != nil {
			param.Description = "The unique identifier of " + seg.Type.Name
		}
	case p.Operation != nil:
		value := "{" + p.Name + "}"
		if p.Type == edm.TypeString {
			value = "'" + value + "'"
		}
		param.Description = "Usage: " + p.Name + "=" + value
	}
	return param
}

// customParameter converts a custom header or query option.
func customParameter(cp vocab.CustomParameter, in string) *types.Parameter {
	p := &types.Parameter{
		Name:   cp.Name,
		In:     in,
		Schema: &types.Schema{Type: "string"},
	}
	if cp.Required != nil {
		p.Required = *cp.Required
	}
	if cp.Description != nil {
		p.Description = *cp.Description
	}
	if cp.DocumentationURL != nil {
		p.Description = strings.TrimSpace(p.Description + " Documentation URL: " + *cp.DocumentationURL)
	}
	if len(cp.ExampleValues) > 0 {
		p.Examples = make(map[string]*types.Example, len(cp.ExampleValues))
		for i, ex := range cp.ExampleValues {
			p.Examples[fmt.Sprintf("example-%d", i+1)] = &types.Example{
				Description: ex.Description,
				Value:       ex.Value,
			}
		}
	}
	return p
}

// collectionQueryOptions adds the system query options of a collection read
// of t, filtered by the query restrictions in scope.
func collectionQueryOptions(c *call, t *edm.EntityType) {
	q := c.queryRestrictions()
	if q == nil {
		q = &vocab.QueryRestrictions{}
	}
	if vocab.Supports(q.TopSupported) {
		c.addParameter(&types.Parameter{Ref: schema.Ref(schema.KindParameters, schema.ParamTop)})
	}
	if vocab.Supports(q.SkipSupported) {
		c.addParameter(&types.Parameter{Ref: schema.Ref(schema.KindParameters, schema.ParamSkip)})
	}
	if vocab.Supports(q.Searchable) {
		c.addParameter(&types.Parameter{Ref: schema.Ref(schema.KindParameters, schema.ParamSearch)})
	}
	if vocab.Supports(q.Filterable) {
		c.addParameter(&types.Parameter{Ref: schema.Ref(schema.KindParameters, schema.ParamFilter)})
	}
	if c.ctx.Settings.EnableCount && vocab.Supports(q.Countable) {
		c.addParameter(&types.Parameter{Ref: schema.Ref(schema.KindParameters, schema.ParamCount)})
	}
	if t == nil {
		return
	}
	if vocab.Supports(q.Sortable) {
		if p := orderByParameter(c, t, q.NonSortableProperties); p != nil {
			c.addParameter(p)
		}
	}
	selectExpandOptions(c, t, q)
}

// singleQueryOptions adds $select and $expand for a single entity read.
func singleQueryOptions(c *call, t *edm.EntityType) {
	if t == nil {
		return
	}
	q := c.queryRestrictions()
	if q == nil {
		q = &vocab.QueryRestrictions{}
	}
	selectExpandOptions(c, t, q)
}

// countQueryOptions adds the options a $count request accepts.
func countQueryOptions(c *call) {
	q := c.queryRestrictions()
	if q == nil {
		q = &vocab.QueryRestrictions{}
	}
	if vocab.Supports(q.Searchable) {
		c.addParameter(&types.Parameter{Ref: schema.Ref(schema.KindParameters, schema.ParamSearch)})
	}
	if vocab.Supports(q.Filterable) {
		c.addParameter(&types.Parameter{Ref: schema.Ref(schema.KindParameters, schema.ParamFilter)})
	}
}

func selectExpandOptions(c *call, t *edm.EntityType, q *vocab.QueryRestrictions) {
	if vocab.Supports(q.SelectSupported) {
		var names []interface{}
		for _, p := range c.ctx.Model.Properties(t) {
			names = append(names, p.Name)
		}
		for _, n := range c.ctx.Model.NavigationProperties(t) {
			names = append(names, n.Name)
		}
		if len(names) > 0 {
			c.addParameter(enumArrayParameter("$select", "Select properties to be returned", names))
		}
	}
	if vocab.Supports(q.Expandable) {
		navs := c.ctx.Model.NavigationProperties(t)
		if len(navs) > 0 {
			names := []interface{}{"*"}
			for _, n := range navs {
				names = append(names, n.Name)
			}
			c.addParameter(enumArrayParameter("$expand", "Expand related entities", names))
		}
	}
}

func orderByParameter(c *call, t *edm.EntityType, nonSortable []string) *types.Parameter {
	excluded := make(map[string]bool, len(nonSortable))
	for _, name := range nonSortable {
		excluded[name] = true
	}
	var values []interface{}
	for _, p := range c.ctx.Model.Properties(t) {
		if excluded[p.Name] || p.IsCollection() || p.IsStream() {
			continue
		}
		values = append(values, p.Name, p.Name+" desc")
	}
	if len(values) == 0 {
		return nil
	}
	return enumArrayParameter("$orderby", "Order items by property values", values)
}

func enumArrayParameter(name, description string, values []interface{}) *types.Parameter {
	noExplode := false
	return &types.Parameter{
		Name:        name,
		In:          "query",
		Description: description,
		Style:       "form",
		Explode:     &noExplode,
		Schema: &types.Schema{
			Type:        "array",
			UniqueItems: true,
			Items:       &types.Schema{Type: "string", Enum: values},
		},
	}
}

// ifMatchParameter is the optimistic concurrency header of deletes.
func ifMatchParameter() *types.Parameter {
	return &types.Parameter{
		Name:        "If-Match",
		In:          "header",
		Description: "ETag",
		Schema:      &types.Schema{Type: "string"},
	}
}
