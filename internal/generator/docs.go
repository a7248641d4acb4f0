// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"github.com/api2spec/odata2openapi/internal/odatapath"
	"github.com/api2spec/odata2openapi/internal/schema"
	"github.com/api2spec/odata2openapi/internal/vocab"
	"github.com/api2spec/odata2openapi/pkg/types"
)

// Vendor extension keys.
const (
	pageableKey    = "x-ms-pageable"
	deprecationKey = "x-ms-deprecation"
)

// externalDocsDescription is the description of generated external docs.
const externalDocsDescription = "Find more info here"

// setDeprecation marks the operation deprecated when any element the path
// touches carries a deprecation revision. The latest date wins, ties are
// broken by the latest removal date.
func setDeprecation(c *call) {
	if !c.ctx.Settings.EnableDeprecationInformation {
		return
	}
	var latest *vocab.Revision
	for _, target := range deprecationTargets(c) {
		for _, rev := range c.ctx.revisions(target) {
			if !rev.IsDeprecation() {
				continue
			}
			rev := rev
			if latest == nil || laterRevision(rev, *latest) {
				latest = &rev
			}
		}
	}
	if latest == nil {
		return
	}
	c.op.Deprecated = true
	c.op.Extensions[deprecationKey] = map[string]interface{}{
		"removalDate": latest.RemovalDate,
		"date":        latest.Date,
		"version":     latest.Version,
		"description": latest.Description,
	}
}

func laterRevision(a, b vocab.Revision) bool {
	ad, bd := a.ParsedDate(), b.ParsedDate()
	if !ad.Equal(bd) {
		return ad.After(bd)
	}
	return a.ParsedRemovalDate().After(b.ParsedRemovalDate())
}

// deprecationTargets lists every annotatable element the path touches.
func deprecationTargets(c *call) []string {
	out := []string{c.targetPath}
	seen := map[string]bool{c.targetPath: true}
	add := func(target string) {
		if target != "" && !seen[target] {
			seen[target] = true
			out = append(out, target)
		}
	}
	for _, s := range c.path.Segments() {
		switch seg := s.(type) {
		case *odatapath.NavigationSourceSegment:
			add(seg.Source.Target())
			add(seg.Source.EntityType.FullName())
		case *odatapath.NavigationPropertySegment:
			add(seg.Property.Target())
			add(seg.Target.FullName())
		case *odatapath.OperationSegment:
			add(seg.Operation.FullName())
		case *odatapath.OperationImportSegment:
			add(seg.Import.Target())
		case *odatapath.TypeCastSegment:
			add(seg.Type.FullName())
		case *odatapath.ComplexPropertySegment:
			add(seg.Property.Target())
		case *odatapath.StreamPropertySegment:
			add(seg.Property.Target())
		}
	}
	return out
}

// setExternalDocs links the Core.Links entry whose relation matches the
// configured relation for the handler.
func setExternalDocs(c *call) {
	if !c.ctx.Settings.ShowExternalDocs || c.linkRelKey == "" {
		return
	}
	rel := c.ctx.Settings.LinkRel(c.linkRelKey)
	if rel == "" {
		return
	}
	for _, target := range append([]string{c.targetPath}, c.targets...) {
		if link := vocab.FindLink(c.ctx.links(target), rel); link != nil {
			c.op.ExternalDocs = &types.ExternalDocs{
				Description: externalDocsDescription,
				URL:         link.Href,
			}
			return
		}
	}
}

// setSecurity adds one requirement per permission of the resolved restriction.
func setSecurity(c *call) {
	if c.restrictions == nil {
		return
	}
	for _, p := range c.restrictions.Permissions {
		c.op.Security = append(c.op.Security, map[string][]string{
			p.SchemeName: p.ScopeNames(),
		})
	}
}

// setPagination adds the paging extension to operations whose success
// payload is a collection. Every handler goes through this one helper.
func setPagination(c *call) {
	if !c.pageable || !c.ctx.Settings.EnablePagination {
		return
	}
	c.op.Extensions[pageableKey] = map[string]interface{}{
		"nextLinkName":  schema.NextLinkName,
		"operationName": c.ctx.Settings.PageableOperationName,
	}
}
