// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package edm

import (
	"fmt"
	"sort"
)

// Model is the read-only view of the entity data model used during conversion.
type Model interface {
	// Namespace returns the schema namespace.
	Namespace() string

	// ContainerName returns the full entity container name, e.g. "NS.Container".
	ContainerName() string

	// EntitySets returns the entity sets in declaration order.
	EntitySets() []*NavigationSource

	// Singletons returns the singletons in declaration order.
	Singletons() []*NavigationSource

	// OperationImports returns the operation imports in declaration order.
	OperationImports() []*OperationImport

	// EntityTypes returns all entity types in declaration order.
	EntityTypes() []*EntityType

	// ComplexTypes returns all complex types in declaration order.
	ComplexTypes() []*ComplexType

	// FindEntitySet returns the entity set with the given name, or nil.
	FindEntitySet(name string) *NavigationSource

	// FindEntityType returns the entity type with the given full name, or nil.
	FindEntityType(fullName string) *EntityType

	// FindComplexType returns the complex type with the given full name, or nil.
	FindComplexType(fullName string) *ComplexType

	// BaseType returns the base entity type, or nil.
	BaseType(t *EntityType) *EntityType

	// DerivedTypes returns all direct and indirect subtypes, sorted by full name.
	DerivedTypes(t *EntityType) []*EntityType

	// Keys returns the key properties, looking through base types.
	Keys(t *EntityType) []*Property

	// Properties returns declared and inherited structural properties.
	Properties(t *EntityType) []*Property

	// NavigationProperties returns declared and inherited navigation properties.
	NavigationProperties(t *EntityType) []*NavigationProperty

	// BoundOperations returns operations bound to the type name, either to the
	// single instance or to a collection of it.
	BoundOperations(typeName string, collection bool) []*Operation

	// IsOverloaded reports whether other operations share the full name and binding.
	IsOverloaded(op *Operation) bool
}

// Schema is an in-memory Model built from a model document.
type Schema struct {
	namespace  string
	container  string
	entitySets []*NavigationSource
	singletons []*NavigationSource
	imports    []*OperationImport
	entities   []*EntityType
	complexes  []*ComplexType
	operations []*Operation

	entityByName  map[string]*EntityType
	complexByName map[string]*ComplexType
	setByName     map[string]*NavigationSource
}

var _ Model = (*Schema)(nil)

// Namespace returns the schema namespace.
func (s *Schema) Namespace() string { return s.namespace }

// ContainerName returns the full entity container name.
func (s *Schema) ContainerName() string { return s.container }

// EntitySets returns the entity sets in declaration order.
func (s *Schema) EntitySets() []*NavigationSource { return s.entitySets }

// Singletons returns the singletons in declaration order.
func (s *Schema) Singletons() []*NavigationSource { return s.singletons }

// OperationImports returns the operation imports in declaration order.
func (s *Schema) OperationImports() []*OperationImport { return s.imports }

// EntityTypes returns all entity types.
func (s *Schema) EntityTypes() []*EntityType { return s.entities }

// ComplexTypes returns all complex types.
func (s *Schema) ComplexTypes() []*ComplexType { return s.complexes }

// Operations returns all functions and actions.
func (s *Schema) Operations() []*Operation { return s.operations }

// FindEntitySet returns the entity set with the given name, or nil.
func (s *Schema) FindEntitySet(name string) *NavigationSource { return s.setByName[name] }

// FindEntityType returns the entity type with the given full name, or nil.
func (s *Schema) FindEntityType(fullName string) *EntityType { return s.entityByName[fullName] }

// FindComplexType returns the complex type with the given full name, or nil.
func (s *Schema) FindComplexType(fullName string) *ComplexType { return s.complexByName[fullName] }

// BaseType returns the base entity type, or nil.
func (s *Schema) BaseType(t *EntityType) *EntityType {
	if t == nil || t.BaseType == "" {
		return nil
	}
	return s.entityByName[t.BaseType]
}

// DerivedTypes returns all direct and indirect subtypes of t.
func (s *Schema) DerivedTypes(t *EntityType) []*EntityType {
	var out []*EntityType
	for _, candidate := range s.entities {
		if candidate == t {
			continue
		}
		for base := s.BaseType(candidate); base != nil; base = s.BaseType(base) {
			if base == t {
				out = append(out, candidate)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName() < out[j].FullName() })
	return out
}

// Keys returns the key properties of t, looking through base types.
func (s *Schema) Keys(t *EntityType) []*Property {
	for cur := t; cur != nil; cur = s.BaseType(cur) {
		if len(cur.Key) == 0 {
			continue
		}
		props := s.Properties(t)
		keys := make([]*Property, 0, len(cur.Key))
		for _, name := range cur.Key {
			for _, p := range props {
				if p.Name == name {
					keys = append(keys, p)
					break
				}
			}
		}
		return keys
	}
	return nil
}

// Properties returns inherited properties first, then declared ones.
func (s *Schema) Properties(t *EntityType) []*Property {
	if t == nil {
		return nil
	}
	props := s.Properties(s.BaseType(t))
	return append(append([]*Property(nil), props...), t.Properties...)
}

// NavigationProperties returns inherited navigation properties first, then declared ones.
func (s *Schema) NavigationProperties(t *EntityType) []*NavigationProperty {
	if t == nil {
		return nil
	}
	navs := s.NavigationProperties(s.BaseType(t))
	return append(append([]*NavigationProperty(nil), navs...), t.NavigationProperties...)
}

// BoundOperations returns operations bound to typeName or to Collection(typeName).
func (s *Schema) BoundOperations(typeName string, collection bool) []*Operation {
	want := typeName
	if collection {
		want = "Collection(" + typeName + ")"
	}
	var out []*Operation
	for _, op := range s.operations {
		if binding := op.BindingParameter(); binding != nil && binding.Type == want {
			out = append(out, op)
		}
	}
	return out
}

// IsOverloaded reports whether another operation shares the full name, boundness
// and binding parameter type of op.
func (s *Schema) IsOverloaded(op *Operation) bool {
	count := 0
	for _, other := range s.operations {
		if other.FullName() != op.FullName() || other.IsBound != op.IsBound {
			continue
		}
		if op.IsBound && other.BindingParameter().Type != op.BindingParameter().Type {
			continue
		}
		count++
	}
	return count > 1
}

// validate checks that every type reference resolves.
func (s *Schema) validate() error {
	for _, t := range s.entities {
		if t.BaseType != "" && s.entityByName[t.BaseType] == nil {
			return fmt.Errorf("entity type %s: unknown base type %q", t.FullName(), t.BaseType)
		}
		if !t.Abstract && len(s.Keys(t)) == 0 && t.BaseType == "" {
			return fmt.Errorf("entity type %s: no key defined", t.FullName())
		}
		for _, n := range t.NavigationProperties {
			if s.entityByName[n.TargetTypeName()] == nil {
				return fmt.Errorf("navigation property %s: unknown target type %q", n.Target(), n.Type)
			}
		}
	}
	for _, op := range s.operations {
		if op.IsBound && len(op.Parameters) == 0 {
			return fmt.Errorf("operation %s: bound operation without binding parameter", op.FullName())
		}
	}
	return nil
}
