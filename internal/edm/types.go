// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package edm provides the entity data model the converter reads from.
package edm

import (
	"github.com/api2spec/odata2openapi/internal/util"
)

// Primitive type names used by the converter.
const (
	TypeString = "Edm.String"
	TypeStream = "Edm.Stream"
)

// Property is a structural property of an entity or complex type.
type Property struct {
	// Name is the property name
	Name string `yaml:"name" json:"name"`

	// Type is the type reference, e.g. "Edm.String" or "Collection(NS.Address)"
	Type string `yaml:"type" json:"type"`

	// Nullable indicates the property accepts null
	Nullable bool `yaml:"nullable" json:"nullable"`

	// MaxLength limits string and binary values; nil means unbounded
	MaxLength *int `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`

	// DefaultValue is the literal default of the property, if any
	DefaultValue string `yaml:"defaultValue,omitempty" json:"defaultValue,omitempty"`

	// DeclaringType is the full name of the declaring type, set when the model is built
	DeclaringType string `yaml:"-" json:"-"`
}

// IsCollection reports whether the property is collection-valued.
func (p *Property) IsCollection() bool {
	_, ok := util.CollectionElementType(p.Type)
	return ok
}

// ElementType returns the type name with any collection wrapper removed.
func (p *Property) ElementType() string {
	t, _ := util.CollectionElementType(p.Type)
	return t
}

// IsStream reports whether the property is a named stream.
func (p *Property) IsStream() bool {
	return p.Type == TypeStream
}

// Target returns the annotation target of the property.
func (p *Property) Target() string {
	return p.DeclaringType + "/" + p.Name
}

// NavigationProperty relates an entity type to another entity type.
type NavigationProperty struct {
	// Name is the navigation property name
	Name string `yaml:"name" json:"name"`

	// Type is the target type reference, e.g. "Collection(NS.Order)"
	Type string `yaml:"type" json:"type"`

	// Nullable indicates a single-valued navigation may be absent
	Nullable bool `yaml:"nullable" json:"nullable"`

	// ContainsTarget marks a containment navigation property
	ContainsTarget bool `yaml:"containsTarget" json:"containsTarget"`

	// DeclaringType is the full name of the declaring type, set when the model is built
	DeclaringType string `yaml:"-" json:"-"`
}

// IsCollection reports whether the navigation property is collection-valued.
func (n *NavigationProperty) IsCollection() bool {
	_, ok := util.CollectionElementType(n.Type)
	return ok
}

// TargetTypeName returns the full name of the target entity type.
func (n *NavigationProperty) TargetTypeName() string {
	t, _ := util.CollectionElementType(n.Type)
	return t
}

// Target returns the annotation target of the navigation property.
func (n *NavigationProperty) Target() string {
	return n.DeclaringType + "/" + n.Name
}

// EntityType is a keyed structured type.
type EntityType struct {
	Name                 string                `yaml:"name" json:"name"`
	Namespace            string                `yaml:"-" json:"-"`
	BaseType             string                `yaml:"baseType,omitempty" json:"baseType,omitempty"`
	Abstract             bool                  `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	HasStream            bool                  `yaml:"hasStream,omitempty" json:"hasStream,omitempty"`
	Key                  []string              `yaml:"key,omitempty" json:"key,omitempty"`
	AlternateKeys        [][]string            `yaml:"alternateKeys,omitempty" json:"alternateKeys,omitempty"`
	Properties           []*Property           `yaml:"properties,omitempty" json:"properties,omitempty"`
	NavigationProperties []*NavigationProperty `yaml:"navigationProperties,omitempty" json:"navigationProperties,omitempty"`
}

// FullName returns the namespace-qualified name.
func (t *EntityType) FullName() string {
	return t.Namespace + "." + t.Name
}

// ComplexType is an unkeyed structured type.
type ComplexType struct {
	Name       string      `yaml:"name" json:"name"`
	Namespace  string      `yaml:"-" json:"-"`
	BaseType   string      `yaml:"baseType,omitempty" json:"baseType,omitempty"`
	Abstract   bool        `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Properties []*Property `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// FullName returns the namespace-qualified name.
func (t *ComplexType) FullName() string {
	return t.Namespace + "." + t.Name
}

// SourceKind distinguishes entity sets from singletons.
type SourceKind int

const (
	// SourceEntitySet is an entity set.
	SourceEntitySet SourceKind = iota
	// SourceSingleton is a singleton.
	SourceSingleton
)

// NavigationSource is an entity set or a singleton of the entity container.
type NavigationSource struct {
	// Name is the container element name
	Name string

	// Kind tells entity sets and singletons apart
	Kind SourceKind

	// EntityType is the element type
	EntityType *EntityType

	// Container is the full container name, e.g. "NS.Container"
	Container string
}

// IsSingleton reports whether the source is a singleton.
func (s *NavigationSource) IsSingleton() bool {
	return s.Kind == SourceSingleton
}

// Target returns the annotation target of the container element.
func (s *NavigationSource) Target() string {
	return s.Container + "/" + s.Name
}

// OperationKind distinguishes functions from actions.
type OperationKind int

const (
	// KindFunction is a side-effect free operation invoked with GET.
	KindFunction OperationKind = iota
	// KindAction is an operation invoked with POST.
	KindAction
)

// Parameter is an operation parameter.
type Parameter struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Nullable bool   `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	Optional bool   `yaml:"optional,omitempty" json:"optional,omitempty"`
}

// IsCollection reports whether the parameter is collection-valued.
func (p *Parameter) IsCollection() bool {
	_, ok := util.CollectionElementType(p.Type)
	return ok
}

// Operation is a function or an action.
type Operation struct {
	Name         string        `yaml:"name" json:"name"`
	Namespace    string        `yaml:"-" json:"-"`
	Kind         OperationKind `yaml:"-" json:"-"`
	IsBound      bool          `yaml:"isBound,omitempty" json:"isBound,omitempty"`
	IsComposable bool          `yaml:"isComposable,omitempty" json:"isComposable,omitempty"`
	Parameters   []*Parameter  `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	ReturnType   string        `yaml:"returnType,omitempty" json:"returnType,omitempty"`
}

// FullName returns the namespace-qualified name.
func (o *Operation) FullName() string {
	return o.Namespace + "." + o.Name
}

// IsAction reports whether the operation is an action.
func (o *Operation) IsAction() bool {
	return o.Kind == KindAction
}

// BindingParameter returns the binding parameter of a bound operation, or nil.
func (o *Operation) BindingParameter() *Parameter {
	if !o.IsBound || len(o.Parameters) == 0 {
		return nil
	}
	return o.Parameters[0]
}

// NonBindingParameters returns the parameters a caller supplies.
func (o *Operation) NonBindingParameters() []*Parameter {
	if o.IsBound && len(o.Parameters) > 0 {
		return o.Parameters[1:]
	}
	return o.Parameters
}

// ReturnsCollection reports whether the operation returns a collection.
func (o *Operation) ReturnsCollection() bool {
	_, ok := util.CollectionElementType(o.ReturnType)
	return ok
}

// OperationImport exposes an unbound operation at the service root.
type OperationImport struct {
	// Name is the import name
	Name string

	// Operation is the imported function or action
	Operation *Operation

	// EntitySet optionally names the entity set the result belongs to
	EntitySet string

	// Container is the full container name
	Container string
}

// IsActionImport reports whether the import exposes an action.
func (i *OperationImport) IsActionImport() bool {
	return i.Operation != nil && i.Operation.IsAction()
}

// Target returns the annotation target of the import.
func (i *OperationImport) Target() string {
	return i.Container + "/" + i.Name
}
