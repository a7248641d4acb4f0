// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"github.com/api2spec/odata2openapi/internal/odatapath"
	"github.com/api2spec/odata2openapi/internal/vocab"
)

// resolve returns the restriction record of term for the running path.
// The record at the exact target path wins; the first broader scope that
// carries a record fills its unset fields.
func resolve[T any, P vocab.Mergeable[T]](c *call, term vocab.Term, scopes ...string) *T {
	specific := vocab.Lookup[T](c.ctx.Store, c.targetPath, term)
	var broad *T
	for _, scope := range scopes {
		if scope == c.targetPath {
			continue
		}
		if broad = vocab.Lookup[T](c.ctx.Store, scope, term); broad != nil {
			break
		}
	}
	return (*T)(vocab.Merge[T, P](P(specific), P(broad)))
}

// resolveNavigation resolves term for a navigation property path. The broader
// scope is the RestrictedProperties entry of the navigation source, then a
// record annotated directly on the navigation property.
func resolveNavigation[T any, P vocab.Mergeable[T]](c *call, term vocab.Term, pick func(*vocab.NavigationPropertyRestriction) *T) *T {
	specific := vocab.Lookup[T](c.ctx.Store, c.targetPath, term)

	var broad *T
	if c.source != nil {
		nav := vocab.Lookup[vocab.NavigationRestrictions](c.ctx.Store, c.source.Target(), vocab.TermNavigationRestrictions)
		if entry := nav.Restricted(c.path.NavigationPropertyPath()); entry != nil {
			broad = pick(entry)
		}
	}
	if broad == nil && c.nav != nil {
		broad = vocab.Lookup[T](c.ctx.Store, c.nav.Property.Target(), term)
	}
	return (*T)(vocab.Merge[T, P](P(specific), P(broad)))
}

func (c *call) readRestrictions(byKey bool) *vocab.ReadRestrictions {
	var r *vocab.ReadRestrictions
	if c.nav != nil {
		r = resolveNavigation[vocab.ReadRestrictions](c, vocab.TermReadRestrictions,
			func(e *vocab.NavigationPropertyRestriction) *vocab.ReadRestrictions { return e.ReadRestrictions })
	} else {
		r = resolve[vocab.ReadRestrictions](c, vocab.TermReadRestrictions, c.targets...)
	}
	if byKey {
		r = r.ByKey()
	}
	return r
}

func (c *call) insertRestrictions() *vocab.InsertRestrictions {
	if c.nav != nil {
		return resolveNavigation[vocab.InsertRestrictions](c, vocab.TermInsertRestrictions,
			func(e *vocab.NavigationPropertyRestriction) *vocab.InsertRestrictions { return e.InsertRestrictions })
	}
	return resolve[vocab.InsertRestrictions](c, vocab.TermInsertRestrictions, c.targets...)
}

func (c *call) updateRestrictions() *vocab.UpdateRestrictions {
	if c.nav != nil {
		return resolveNavigation[vocab.UpdateRestrictions](c, vocab.TermUpdateRestrictions,
			func(e *vocab.NavigationPropertyRestriction) *vocab.UpdateRestrictions { return e.UpdateRestrictions })
	}
	return resolve[vocab.UpdateRestrictions](c, vocab.TermUpdateRestrictions, c.targets...)
}

func (c *call) deleteRestrictions() *vocab.DeleteRestrictions {
	if c.nav != nil {
		return resolveNavigation[vocab.DeleteRestrictions](c, vocab.TermDeleteRestrictions,
			func(e *vocab.NavigationPropertyRestriction) *vocab.DeleteRestrictions { return e.DeleteRestrictions })
	}
	return resolve[vocab.DeleteRestrictions](c, vocab.TermDeleteRestrictions, c.targets...)
}

func (c *call) operationRestrictions() *vocab.OperationRestrictions {
	return resolve[vocab.OperationRestrictions](c, vocab.TermOperationRestrictions, c.targets...)
}

func (c *call) queryRestrictions() *vocab.QueryRestrictions {
	return resolve[vocab.QueryRestrictions](c, vocab.TermQueryRestrictions, c.targets...)
}

// ReadRestrictionsFor resolves the read restrictions of path, using the
// by-key record when the path addresses a single entity.
func ReadRestrictionsFor(ctx *Context, path *odatapath.Path) *vocab.ReadRestrictions {
	return scoped(ctx, path).readRestrictions(path.EndsWithKey())
}

// InsertRestrictionsFor resolves the insert restrictions of path.
func InsertRestrictionsFor(ctx *Context, path *odatapath.Path) *vocab.InsertRestrictions {
	return scoped(ctx, path).insertRestrictions()
}

// UpdateRestrictionsFor resolves the update restrictions of path.
func UpdateRestrictionsFor(ctx *Context, path *odatapath.Path) *vocab.UpdateRestrictions {
	return scoped(ctx, path).updateRestrictions()
}

// DeleteRestrictionsFor resolves the delete restrictions of path.
func DeleteRestrictionsFor(ctx *Context, path *odatapath.Path) *vocab.DeleteRestrictions {
	return scoped(ctx, path).deleteRestrictions()
}

// scoped returns a call carrying the annotation scopes of path, for use
// outside a pipeline run.
func scoped(ctx *Context, path *odatapath.Path) *call {
	return newCall(ctx, path, nil)
}

// scopes returns the broader annotation targets the segments of path name,
// most specific first.
func scopes(path *odatapath.Path) []string {
	var out []string
	add := func(target string) {
		if target != "" {
			out = append(out, target)
		}
	}
	for _, s := range path.Segments() {
		switch seg := s.(type) {
		case *odatapath.NavigationSourceSegment:
			add(seg.Source.Target())
		case *odatapath.NavigationPropertySegment:
			add(seg.Property.Target())
		case *odatapath.OperationSegment:
			add(seg.Operation.FullName())
		case *odatapath.OperationImportSegment:
			if seg.Import.Operation != nil {
				add(seg.Import.Operation.FullName())
			}
			add(seg.Import.Target())
		case *odatapath.ComplexPropertySegment:
			add(seg.Property.Target())
		case *odatapath.StreamPropertySegment:
			add(seg.Property.Target())
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
