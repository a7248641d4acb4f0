// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package odatapath

import (
	"strings"

	"github.com/api2spec/odata2openapi/internal/edm"
)

// SegmentKind identifies the variant of a Segment.
type SegmentKind int

// Segment kinds.
const (
	SegmentNavigationSource SegmentKind = iota
	SegmentKey
	SegmentNavigationProperty
	SegmentOperation
	SegmentOperationImport
	SegmentTypeCast
	SegmentComplexProperty
	SegmentStreamProperty
	SegmentStreamContent
	SegmentRef
	SegmentDollarCount
	SegmentMetadata
)

var segmentKindNames = [...]string{
	"NavigationSource", "Key", "NavigationProperty", "Operation", "OperationImport",
	"TypeCast", "ComplexProperty", "StreamProperty", "StreamContent", "Ref",
	"DollarCount", "Metadata",
}

func (k SegmentKind) String() string {
	if int(k) < len(segmentKindNames) {
		return segmentKindNames[k]
	}
	return "Unknown"
}

// Segment is one typed element of a resource path. The set of variants is
// closed; each is a struct in this package.
type Segment interface {
	// Kind returns the variant.
	Kind() SegmentKind

	// Identifier returns the token the segment contributes to operation ids.
	Identifier() string

	// EntityType returns the entity type addressed after the segment, or nil.
	EntityType() *edm.EntityType

	// pathItemName renders the segment inside a path template.
	pathItemName(p *Path, index int) string
}

// NavigationSourceSegment addresses an entity set or singleton.
type NavigationSourceSegment struct {
	Source *edm.NavigationSource
}

func (s *NavigationSourceSegment) Kind() SegmentKind              { return SegmentNavigationSource }
func (s *NavigationSourceSegment) Identifier() string             { return s.Source.Name }
func (s *NavigationSourceSegment) EntityType() *edm.EntityType    { return s.Source.EntityType }
func (s *NavigationSourceSegment) pathItemName(*Path, int) string { return s.Source.Name }

// KeySegment addresses one entity of a collection by its key or by an
// alternate key.
type KeySegment struct {
	// Type is the entity type of the keyed collection
	Type *edm.EntityType

	// Keys are the key properties in declaration order
	Keys []*edm.Property

	// Alternate marks an alternate key
	Alternate bool
}

func (s *KeySegment) Kind() SegmentKind           { return SegmentKey }
func (s *KeySegment) EntityType() *edm.EntityType { return s.Type }

// Identifier returns the key property names joined by commas.
func (s *KeySegment) Identifier() string {
	names := make([]string, 0, len(s.Keys))
	for _, k := range s.Keys {
		names = append(names, k.Name)
	}
	return strings.Join(names, ",")
}

func (s *KeySegment) pathItemName(p *Path, index int) string {
	params := p.keyParams[index]
	if len(s.Keys) == 1 && !s.Alternate {
		if p.opts.KeyAsSegment {
			return "{" + params[0].Name + "}"
		}
		return "({" + params[0].Name + "})"
	}
	parts := make([]string, 0, len(s.Keys))
	for i, k := range s.Keys {
		parts = append(parts, k.Name+"="+quoteIfString(k.Type, "{"+params[i].Name+"}"))
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// NavigationPropertySegment follows a navigation property.
type NavigationPropertySegment struct {
	Property *edm.NavigationProperty
	Target   *edm.EntityType
}

func (s *NavigationPropertySegment) Kind() SegmentKind              { return SegmentNavigationProperty }
func (s *NavigationPropertySegment) Identifier() string             { return s.Property.Name }
func (s *NavigationPropertySegment) EntityType() *edm.EntityType    { return s.Target }
func (s *NavigationPropertySegment) pathItemName(*Path, int) string { return s.Property.Name }

// OperationSegment invokes a bound function or action.
type OperationSegment struct {
	Operation *edm.Operation

	// Returns is the entity type the operation returns, if any
	Returns *edm.EntityType
}

func (s *OperationSegment) Kind() SegmentKind           { return SegmentOperation }
func (s *OperationSegment) Identifier() string          { return s.Operation.Name }
func (s *OperationSegment) EntityType() *edm.EntityType { return s.Returns }

func (s *OperationSegment) pathItemName(*Path, int) string {
	return operationCall(s.Operation.FullName(), s.Operation)
}

// OperationImportSegment invokes a function or action import.
type OperationImportSegment struct {
	Import *edm.OperationImport

	// Returns is the entity type the operation returns, if any
	Returns *edm.EntityType
}

func (s *OperationImportSegment) Kind() SegmentKind           { return SegmentOperationImport }
func (s *OperationImportSegment) Identifier() string          { return s.Import.Name }
func (s *OperationImportSegment) EntityType() *edm.EntityType { return s.Returns }

func (s *OperationImportSegment) pathItemName(*Path, int) string {
	return operationCall(s.Import.Name, s.Import.Operation)
}

// operationCall renders a function call with inline parameter aliases.
// Actions take their parameters in the body.
func operationCall(name string, op *edm.Operation) string {
	if op.IsAction() {
		return name
	}
	params := op.NonBindingParameters()
	parts := make([]string, 0, len(params))
	for _, prm := range params {
		parts = append(parts, prm.Name+"="+quoteIfString(prm.Type, "{"+prm.Name+"}"))
	}
	return name + "(" + strings.Join(parts, ",") + ")"
}

func quoteIfString(edmType, value string) string {
	if edmType == edm.TypeString {
		return "'" + value + "'"
	}
	return value
}

// TypeCastSegment casts to a derived entity type.
type TypeCastSegment struct {
	Type *edm.EntityType
}

func (s *TypeCastSegment) Kind() SegmentKind              { return SegmentTypeCast }
func (s *TypeCastSegment) Identifier() string             { return s.Type.Name }
func (s *TypeCastSegment) EntityType() *edm.EntityType    { return s.Type }
func (s *TypeCastSegment) pathItemName(*Path, int) string { return s.Type.FullName() }

// ComplexPropertySegment addresses a complex-typed structural property.
type ComplexPropertySegment struct {
	Property *edm.Property
	Type     *edm.ComplexType
}

func (s *ComplexPropertySegment) Kind() SegmentKind              { return SegmentComplexProperty }
func (s *ComplexPropertySegment) Identifier() string             { return s.Property.Name }
func (s *ComplexPropertySegment) EntityType() *edm.EntityType    { return nil }
func (s *ComplexPropertySegment) pathItemName(*Path, int) string { return s.Property.Name }

// StreamPropertySegment addresses a named stream property.
type StreamPropertySegment struct {
	Property *edm.Property
}

func (s *StreamPropertySegment) Kind() SegmentKind              { return SegmentStreamProperty }
func (s *StreamPropertySegment) Identifier() string             { return s.Property.Name }
func (s *StreamPropertySegment) EntityType() *edm.EntityType    { return nil }
func (s *StreamPropertySegment) pathItemName(*Path, int) string { return s.Property.Name }

// StreamContentSegment addresses the media stream of a media entity ($value).
type StreamContentSegment struct{}

func (s *StreamContentSegment) Kind() SegmentKind              { return SegmentStreamContent }
func (s *StreamContentSegment) Identifier() string             { return "$value" }
func (s *StreamContentSegment) EntityType() *edm.EntityType    { return nil }
func (s *StreamContentSegment) pathItemName(*Path, int) string { return "$value" }

// RefSegment addresses entity references ($ref).
type RefSegment struct{}

func (s *RefSegment) Kind() SegmentKind              { return SegmentRef }
func (s *RefSegment) Identifier() string             { return "$ref" }
func (s *RefSegment) EntityType() *edm.EntityType    { return nil }
func (s *RefSegment) pathItemName(*Path, int) string { return "$ref" }

// DollarCountSegment addresses the count of a collection ($count).
type DollarCountSegment struct{}

func (s *DollarCountSegment) Kind() SegmentKind              { return SegmentDollarCount }
func (s *DollarCountSegment) Identifier() string             { return "$count" }
func (s *DollarCountSegment) EntityType() *edm.EntityType    { return nil }
func (s *DollarCountSegment) pathItemName(*Path, int) string { return "$count" }

// MetadataSegment addresses the service metadata document.
type MetadataSegment struct{}

func (s *MetadataSegment) Kind() SegmentKind              { return SegmentMetadata }
func (s *MetadataSegment) Identifier() string             { return "$metadata" }
func (s *MetadataSegment) EntityType() *edm.EntityType    { return nil }
func (s *MetadataSegment) pathItemName(*Path, int) string { return "$metadata" }
