// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"sort"
	"sync"

	"github.com/api2spec/odata2openapi/pkg/types"
)

// Registry collects the document-wide tags and named components that
// operations reference while a document is being built.
type Registry struct {
	mu         sync.RWMutex
	components map[ComponentKind]map[string]interface{}
	tags       []types.Tag
	tagIndex   map[string]int
}

// NewRegistry creates a new component registry.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[ComponentKind]map[string]interface{}),
		tagIndex:   make(map[string]int),
	}
}

// RegisterComponent stores a component, replacing any previous value.
func (r *Registry) RegisterComponent(kind ComponentKind, id string, value interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.components[kind]
	if !ok {
		m = make(map[string]interface{})
		r.components[kind] = m
	}
	m[id] = value
}

// Component returns a component by kind and id.
func (r *Registry) Component(kind ComponentKind, id string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.components[kind][id]
	return v, ok
}

// HasComponent checks if a component exists in the registry.
func (r *Registry) HasComponent(kind ComponentKind, id string) bool {
	_, ok := r.Component(kind, id)
	return ok
}

// Names returns the component ids of kind in sorted order.
func (r *Registry) Names(kind ComponentKind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.components[kind]))
	for name := range r.components[kind] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of components of kind.
func (r *Registry) Count(kind ComponentKind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.components[kind])
}

// RegisterTag adds a tag unless one with the same name exists. Extensions
// are added to an existing tag only where the key is absent.
func (r *Registry) RegisterTag(name string, extensions map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.tagIndex[name]; ok {
		tag := &r.tags[i]
		for k, v := range extensions {
			if tag.Extensions == nil {
				tag.Extensions = make(map[string]interface{})
			}
			if _, exists := tag.Extensions[k]; !exists {
				tag.Extensions[k] = v
			}
		}
		return
	}

	tag := types.Tag{Name: name}
	if len(extensions) > 0 {
		tag.Extensions = make(map[string]interface{}, len(extensions))
		for k, v := range extensions {
			tag.Extensions[k] = v
		}
	}
	r.tagIndex[name] = len(r.tags)
	r.tags = append(r.tags, tag)
}

// Tags returns the registered tags sorted by name.
func (r *Registry) Tags() []types.Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]types.Tag, len(r.tags))
	copy(result, r.tags)
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Components returns the registered components as an OpenAPI components object.
func (r *Registry) Components() *types.Components {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := &types.Components{}
	for id, v := range r.components[KindSchemas] {
		if s, ok := v.(*types.Schema); ok {
			if c.Schemas == nil {
				c.Schemas = make(map[string]*types.Schema)
			}
			c.Schemas[id] = s
		}
	}
	for id, v := range r.components[KindResponses] {
		if resp, ok := v.(*types.Response); ok {
			if c.Responses == nil {
				c.Responses = make(map[string]*types.Response)
			}
			c.Responses[id] = resp
		}
	}
	for id, v := range r.components[KindParameters] {
		if p, ok := v.(*types.Parameter); ok {
			if c.Parameters == nil {
				c.Parameters = make(map[string]*types.Parameter)
			}
			c.Parameters[id] = p
		}
	}
	for id, v := range r.components[KindRequestBodies] {
		if b, ok := v.(*types.RequestBody); ok {
			if c.RequestBodies == nil {
				c.RequestBodies = make(map[string]*types.RequestBody)
			}
			c.RequestBodies[id] = b
		}
	}
	return c
}
