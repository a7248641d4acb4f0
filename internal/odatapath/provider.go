// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package odatapath

import (
	"github.com/api2spec/odata2openapi/internal/edm"
	"github.com/api2spec/odata2openapi/internal/util"
	"github.com/api2spec/odata2openapi/internal/vocab"
)

// ProviderOptions selects which path shapes are enumerated.
type ProviderOptions struct {
	Options

	EnableDollarCountPath        bool
	EnableNavigationPropertyPath bool
	EnableOperationPath          bool
	EnableOperationImportPath    bool
	EnableTypeCastPath           bool
}

// Provider enumerates the resource paths a model exposes.
type Provider struct {
	model edm.Model
	store vocab.Store
	opts  ProviderOptions
	paths []*Path
}

// NewProvider creates a provider. The store may be nil.
func NewProvider(model edm.Model, store vocab.Store, opts ProviderOptions) *Provider {
	return &Provider{model: model, store: store, opts: opts}
}

// Paths returns every path of the model in a stable order.
func (pv *Provider) Paths() []*Path {
	pv.paths = nil

	pv.add(New(pv.opts.Options, &MetadataSegment{}))

	for _, set := range pv.model.EntitySets() {
		pv.entitySet(set)
	}
	for _, s := range pv.model.Singletons() {
		pv.singleton(s)
	}
	if pv.opts.EnableOperationImportPath {
		for _, imp := range pv.model.OperationImports() {
			pv.add(New(pv.opts.Options, &OperationImportSegment{
				Import:  imp,
				Returns: pv.returnedEntity(imp.Operation),
			}))
		}
	}
	return pv.paths
}

func (pv *Provider) add(p *Path) {
	pv.paths = append(pv.paths, p)
}

func (pv *Provider) entitySet(set *edm.NavigationSource) {
	t := set.EntityType
	root := New(pv.opts.Options, &NavigationSourceSegment{Source: set})
	pv.add(root)
	pv.count(root)
	pv.typeCasts(root, t, true)
	pv.operations(root, t, true)

	keys := pv.model.Keys(t)
	if len(keys) > 0 {
		entity := root.Append(&KeySegment{Type: t, Keys: keys})
		pv.add(entity)
		pv.entityMembers(set, entity, t)
	}
	for _, alt := range t.AlternateKeys {
		if props := pv.properties(t, alt); len(props) == len(alt) {
			pv.add(root.Append(&KeySegment{Type: t, Keys: props, Alternate: true}))
		}
	}
}

func (pv *Provider) singleton(s *edm.NavigationSource) {
	root := New(pv.opts.Options, &NavigationSourceSegment{Source: s})
	pv.add(root)
	pv.entityMembers(s, root, s.EntityType)
}

// entityMembers adds the paths below a single entity.
func (pv *Provider) entityMembers(src *edm.NavigationSource, entity *Path, t *edm.EntityType) {
	if t.HasStream {
		pv.add(entity.Append(&StreamContentSegment{}))
	}
	for _, prop := range pv.model.Properties(t) {
		switch {
		case prop.IsStream():
			pv.add(entity.Append(&StreamPropertySegment{Property: prop}))
		case !prop.IsCollection():
			if ct := pv.model.FindComplexType(prop.Type); ct != nil {
				pv.add(entity.Append(&ComplexPropertySegment{Property: prop, Type: ct}))
			}
		}
	}
	pv.typeCasts(entity, t, false)
	pv.operations(entity, t, false)

	if !pv.opts.EnableNavigationPropertyPath {
		return
	}
	restrictions := vocab.Lookup[vocab.NavigationRestrictions](pv.store, src.Target(), vocab.TermNavigationRestrictions)
	for _, nav := range pv.model.NavigationProperties(t) {
		if !restrictions.IsNavigable(nav.Name) {
			continue
		}
		target := pv.model.FindEntityType(nav.TargetTypeName())
		navPath := entity.Append(&NavigationPropertySegment{Property: nav, Target: target})
		pv.add(navPath)
		if !nav.IsCollection() {
			pv.add(navPath.Append(&RefSegment{}))
			continue
		}
		pv.count(navPath)
		pv.add(navPath.Append(&RefSegment{}))
		if keys := pv.model.Keys(target); len(keys) > 0 {
			item := navPath.Append(&KeySegment{Type: target, Keys: keys})
			pv.add(item)
			pv.add(item.Append(&RefSegment{}))
		}
	}
}

func (pv *Provider) count(collection *Path) {
	if pv.opts.EnableDollarCountPath {
		pv.add(collection.Append(&DollarCountSegment{}))
	}
}

func (pv *Provider) typeCasts(p *Path, t *edm.EntityType, collection bool) {
	if !pv.opts.EnableTypeCastPath {
		return
	}
	for _, derived := range pv.model.DerivedTypes(t) {
		cast := p.Append(&TypeCastSegment{Type: derived})
		pv.add(cast)
		if collection {
			pv.count(cast)
		}
	}
}

func (pv *Provider) operations(p *Path, t *edm.EntityType, collection bool) {
	if !pv.opts.EnableOperationPath {
		return
	}
	for cur := t; cur != nil; cur = pv.model.BaseType(cur) {
		for _, op := range pv.model.BoundOperations(cur.FullName(), collection) {
			pv.add(p.Append(&OperationSegment{Operation: op, Returns: pv.returnedEntity(op)}))
		}
	}
}

func (pv *Provider) returnedEntity(op *edm.Operation) *edm.EntityType {
	if op == nil || op.ReturnType == "" {
		return nil
	}
	name, _ := util.CollectionElementType(op.ReturnType)
	return pv.model.FindEntityType(name)
}

func (pv *Provider) properties(t *edm.EntityType, names []string) []*edm.Property {
	all := pv.model.Properties(t)
	var out []*edm.Property
	for _, n := range names {
		for _, p := range all {
			if p.Name == n {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
