// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package edm

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/api2spec/odata2openapi/internal/util"
	"github.com/api2spec/odata2openapi/internal/vocab"
)

// Document is the on-disk description of a model. JSON documents are read
// through the same YAML decoder.
type Document struct {
	Namespace       string                              `yaml:"namespace" json:"namespace"`
	Container       string                              `yaml:"container" json:"container"`
	EntityTypes     []*EntityType                       `yaml:"entityTypes,omitempty" json:"entityTypes,omitempty"`
	ComplexTypes    []*ComplexType                      `yaml:"complexTypes,omitempty" json:"complexTypes,omitempty"`
	Functions       []*Operation                        `yaml:"functions,omitempty" json:"functions,omitempty"`
	Actions         []*Operation                        `yaml:"actions,omitempty" json:"actions,omitempty"`
	EntitySets      []SourceDecl                        `yaml:"entitySets,omitempty" json:"entitySets,omitempty"`
	Singletons      []SourceDecl                        `yaml:"singletons,omitempty" json:"singletons,omitempty"`
	FunctionImports []ImportDecl                        `yaml:"functionImports,omitempty" json:"functionImports,omitempty"`
	ActionImports   []ImportDecl                        `yaml:"actionImports,omitempty" json:"actionImports,omitempty"`
	Annotations     map[string]*vocab.TargetAnnotations `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// SourceDecl declares an entity set or singleton.
type SourceDecl struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// ImportDecl declares a function or action import.
type ImportDecl struct {
	Name      string `yaml:"name" json:"name"`
	Operation string `yaml:"operation" json:"operation"`
	EntitySet string `yaml:"entitySet,omitempty" json:"entitySet,omitempty"`
}

// LoadFile reads a model document from disk.
func LoadFile(path string) (*Schema, *vocab.MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	schema, store, err := Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}
	return schema, store, nil
}

// Parse decodes a YAML or JSON model document.
func Parse(data []byte) (*Schema, *vocab.MemoryStore, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse model document: %w", err)
	}
	schema, err := NewSchema(&doc)
	if err != nil {
		return nil, nil, err
	}
	return schema, vocab.NewMemoryStore(doc.Annotations), nil
}

// NewSchema builds a Model from a document, qualifying type names with the
// document namespace and resolving container elements.
func NewSchema(doc *Document) (*Schema, error) {
	if doc.Namespace == "" {
		return nil, fmt.Errorf("model document: namespace is required")
	}
	if doc.Container == "" {
		doc.Container = "Container"
	}

	s := &Schema{
		namespace:     doc.Namespace,
		container:     doc.Namespace + "." + doc.Container,
		entityByName:  make(map[string]*EntityType),
		complexByName: make(map[string]*ComplexType),
		setByName:     make(map[string]*NavigationSource),
	}
	q := func(name string) string { return qualify(doc.Namespace, name) }

	for _, t := range doc.EntityTypes {
		t.Namespace = doc.Namespace
		if t.BaseType != "" {
			t.BaseType = q(t.BaseType)
		}
		for _, p := range t.Properties {
			p.Type = q(p.Type)
			p.DeclaringType = t.FullName()
		}
		for _, n := range t.NavigationProperties {
			n.Type = q(n.Type)
			n.DeclaringType = t.FullName()
		}
		if _, dup := s.entityByName[t.FullName()]; dup {
			return nil, fmt.Errorf("entity type %s declared twice", t.FullName())
		}
		s.entities = append(s.entities, t)
		s.entityByName[t.FullName()] = t
	}

	for _, c := range doc.ComplexTypes {
		c.Namespace = doc.Namespace
		if c.BaseType != "" {
			c.BaseType = q(c.BaseType)
		}
		for _, p := range c.Properties {
			p.Type = q(p.Type)
			p.DeclaringType = c.FullName()
		}
		s.complexes = append(s.complexes, c)
		s.complexByName[c.FullName()] = c
	}

	addOps := func(ops []*Operation, kind OperationKind) {
		for _, op := range ops {
			op.Namespace = doc.Namespace
			op.Kind = kind
			if op.ReturnType != "" {
				op.ReturnType = q(op.ReturnType)
			}
			for _, p := range op.Parameters {
				p.Type = q(p.Type)
			}
			s.operations = append(s.operations, op)
		}
	}
	addOps(doc.Functions, KindFunction)
	addOps(doc.Actions, KindAction)

	addSources := func(decls []SourceDecl, kind SourceKind) error {
		for _, d := range decls {
			t := s.entityByName[q(d.Type)]
			if t == nil {
				return fmt.Errorf("%s: unknown entity type %q", d.Name, d.Type)
			}
			src := &NavigationSource{Name: d.Name, Kind: kind, EntityType: t, Container: s.container}
			if kind == SourceSingleton {
				s.singletons = append(s.singletons, src)
			} else {
				s.entitySets = append(s.entitySets, src)
			}
			s.setByName[d.Name] = src
		}
		return nil
	}
	if err := addSources(doc.EntitySets, SourceEntitySet); err != nil {
		return nil, err
	}
	if err := addSources(doc.Singletons, SourceSingleton); err != nil {
		return nil, err
	}

	addImports := func(decls []ImportDecl, kind OperationKind) error {
		for _, d := range decls {
			op := s.findUnbound(q(d.Operation), kind)
			if op == nil {
				return fmt.Errorf("import %s: unknown unbound operation %q", d.Name, d.Operation)
			}
			s.imports = append(s.imports, &OperationImport{
				Name:      d.Name,
				Operation: op,
				EntitySet: d.EntitySet,
				Container: s.container,
			})
		}
		return nil
	}
	if err := addImports(doc.FunctionImports, KindFunction); err != nil {
		return nil, err
	}
	if err := addImports(doc.ActionImports, KindAction); err != nil {
		return nil, err
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) findUnbound(fullName string, kind OperationKind) *Operation {
	for _, op := range s.operations {
		if !op.IsBound && op.Kind == kind && op.FullName() == fullName {
			return op
		}
	}
	return nil
}

// qualify prefixes unqualified type names with the namespace.
func qualify(namespace, name string) string {
	if inner, ok := util.CollectionElementType(name); ok {
		return "Collection(" + qualify(namespace, inner) + ")"
	}
	if name == "" || strings.Contains(name, ".") {
		return name
	}
	return namespace + "." + name
}
