// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package odatapath models resource paths as ordered, typed segments and
// enumerates the paths a model exposes.
package odatapath

import (
	"strconv"
	"strings"

	"github.com/api2spec/odata2openapi/internal/edm"
	"github.com/api2spec/odata2openapi/internal/util"
)

// Kind classifies a path by its segment shape.
type Kind int

// Path kinds.
const (
	KindUnknown Kind = iota
	KindEntitySet
	KindEntity
	KindSingleton
	KindNavigationProperty
	KindOperation
	KindOperationImport
	KindRef
	KindMediaEntity
	KindTypeCast
	KindDollarCount
	KindMetadata
	KindComplexProperty
)

var kindNames = [...]string{
	"Unknown", "EntitySet", "Entity", "Singleton", "NavigationProperty",
	"Operation", "OperationImport", "Ref", "MediaEntity", "TypeCast",
	"DollarCount", "Metadata", "ComplexProperty",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Options controls how key segments render in path templates.
type Options struct {
	// KeyAsSegment renders single keys as /Set/{key} instead of /Set({key})
	KeyAsSegment bool

	// PrefixEntityTypeNameBeforeKey names single key parameters <type>-<key>
	PrefixEntityTypeNameBeforeKey bool
}

// PathParameter is a parameter appearing in the path template.
type PathParameter struct {
	// Name is the template parameter name
	Name string

	// Type is the EDM type of the parameter
	Type string

	// Key is the key property the parameter binds to, if any
	Key *edm.Property

	// Operation is the function parameter the parameter binds to, if any
	Operation *edm.Parameter

	// Segment is the index of the segment declaring the parameter
	Segment int
}

// Path is an immutable ordered sequence of segments.
type Path struct {
	segments  []Segment
	opts      Options
	kind      Kind
	keyParams map[int][]PathParameter
	params    []PathParameter
}

// New builds a path from segments.
func New(opts Options, segments ...Segment) *Path {
	p := &Path{
		segments:  append([]Segment(nil), segments...),
		opts:      opts,
		keyParams: make(map[int][]PathParameter),
	}
	p.kind = classify(p.segments)
	p.assignParameters()
	return p
}

// Append returns a new path with extra segments appended.
func (p *Path) Append(segments ...Segment) *Path {
	all := make([]Segment, 0, len(p.segments)+len(segments))
	all = append(all, p.segments...)
	all = append(all, segments...)
	return New(p.opts, all...)
}

// Kind returns the path classification.
func (p *Path) Kind() Kind { return p.kind }

// Options returns the rendering options of the path.
func (p *Path) Options() Options { return p.opts }

// Len returns the number of segments.
func (p *Path) Len() int { return len(p.segments) }

// Segments returns a copy of the segments.
func (p *Path) Segments() []Segment { return append([]Segment(nil), p.segments...) }

// Segment returns the segment at index i.
func (p *Path) Segment(i int) Segment { return p.segments[i] }

// First returns the first segment, or nil for an empty path.
func (p *Path) First() Segment {
	if len(p.segments) == 0 {
		return nil
	}
	return p.segments[0]
}

// Last returns the last segment, or nil for an empty path.
func (p *Path) Last() Segment {
	if len(p.segments) == 0 {
		return nil
	}
	return p.segments[len(p.segments)-1]
}

// Has reports whether any segment is of kind k.
func (p *Path) Has(k SegmentKind) bool {
	return p.LastIndexOf(k) >= 0
}

// LastIndexOf returns the index of the last segment of kind k, or -1.
func (p *Path) LastIndexOf(k SegmentKind) int {
	for i := len(p.segments) - 1; i >= 0; i-- {
		if p.segments[i].Kind() == k {
			return i
		}
	}
	return -1
}

// Count returns the number of segments of kind k.
func (p *Path) Count(k SegmentKind) int {
	n := 0
	for _, s := range p.segments {
		if s.Kind() == k {
			n++
		}
	}
	return n
}

// Source returns the navigation source the path starts from, or nil.
func (p *Path) Source() *edm.NavigationSource {
	if s, ok := p.First().(*NavigationSourceSegment); ok {
		return s.Source
	}
	return nil
}

// EntityType returns the entity type addressed by the path, looking
// backwards through segments that do not change it.
func (p *Path) EntityType() *edm.EntityType {
	for i := len(p.segments) - 1; i >= 0; i-- {
		if t := p.segments[i].EntityType(); t != nil {
			return t
		}
	}
	return nil
}

// LastNavigationProperty returns the last navigation property segment, or nil.
func (p *Path) LastNavigationProperty() *NavigationPropertySegment {
	if i := p.LastIndexOf(SegmentNavigationProperty); i >= 0 {
		return p.segments[i].(*NavigationPropertySegment)
	}
	return nil
}

// LastOperation returns the last operation segment, or nil.
func (p *Path) LastOperation() *OperationSegment {
	if i := p.LastIndexOf(SegmentOperation); i >= 0 {
		return p.segments[i].(*OperationSegment)
	}
	return nil
}

// EndsWithKey reports whether the last segment is a key, making the path
// address a single entity.
func (p *Path) EndsWithKey() bool {
	_, ok := p.Last().(*KeySegment)
	return ok
}

// Parameters returns the path template parameters in order.
func (p *Path) Parameters() []PathParameter {
	return append([]PathParameter(nil), p.params...)
}

// KeyParameters returns the parameters of the key segment at index i.
func (p *Path) KeyParameters(i int) []PathParameter {
	return p.keyParams[i]
}

// SegmentPathItemName renders segment i as it appears in the path template.
func (p *Path) SegmentPathItemName(i int) string {
	return p.segments[i].pathItemName(p, i)
}

// PathItemName renders the path template, e.g. /Customers/{customer-id}/Orders.
func (p *Path) PathItemName() string {
	var b strings.Builder
	for i, s := range p.segments {
		name := s.pathItemName(p, i)
		if s.Kind() != SegmentKey || !strings.HasPrefix(name, "(") || i == 0 {
			b.WriteByte('/')
		}
		b.WriteString(name)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// String returns the path template.
func (p *Path) String() string { return p.PathItemName() }

// TargetPath returns the annotation target string of the exact path, e.g.
// NS.Container/Customers/Orders. Keys and system segments are skipped.
func (p *Path) TargetPath(container string) string {
	parts := []string{container}
	for _, s := range p.segments {
		switch seg := s.(type) {
		case *NavigationSourceSegment, *NavigationPropertySegment, *ComplexPropertySegment,
			*StreamPropertySegment, *OperationImportSegment:
			parts = append(parts, s.Identifier())
		case *TypeCastSegment:
			parts = append(parts, seg.Type.FullName())
		case *OperationSegment:
			parts = append(parts, seg.Operation.FullName())
		}
	}
	return strings.Join(parts, "/")
}

// NavigationPropertyPath returns the property path from the navigation
// source to the end of the path, e.g. Orders/Items. Keys, casts and the
// source are excluded.
func (p *Path) NavigationPropertyPath() string {
	var parts []string
	for _, s := range p.segments {
		switch s.(type) {
		case *NavigationPropertySegment, *ComplexPropertySegment:
			parts = append(parts, s.Identifier())
		}
	}
	return strings.Join(parts, "/")
}

func (p *Path) assignParameters() {
	used := make(map[string]int)
	unique := func(name string) string {
		n := used[name]
		used[name] = n + 1
		if n == 0 {
			return name
		}
		return name + strconv.Itoa(n)
	}

	for i, s := range p.segments {
		switch seg := s.(type) {
		case *KeySegment:
			params := make([]PathParameter, 0, len(seg.Keys))
			for _, k := range seg.Keys {
				if k == nil {
					continue
				}
				name := k.Name
				if len(seg.Keys) == 1 && !seg.Alternate && p.opts.PrefixEntityTypeNameBeforeKey {
					name = util.ToLowerCamelCase(seg.Type.Name) + "-" + strings.ToLower(k.Name)
				}
				params = append(params, PathParameter{Name: unique(name), Type: k.Type, Key: k, Segment: i})
			}
			p.keyParams[i] = params
			p.params = append(p.params, params...)
		case *OperationSegment:
			p.params = append(p.params, functionParameters(seg.Operation, i)...)
		case *OperationImportSegment:
			if seg.Import != nil {
				p.params = append(p.params, functionParameters(seg.Import.Operation, i)...)
			}
		}
	}
}

func functionParameters(op *edm.Operation, index int) []PathParameter {
	if op == nil || op.IsAction() {
		return nil
	}
	var out []PathParameter
	for _, prm := range op.NonBindingParameters() {
		out = append(out, PathParameter{Name: prm.Name, Type: prm.Type, Operation: prm, Segment: index})
	}
	return out
}

func classify(segs []Segment) Kind {
	if len(segs) == 0 {
		return KindUnknown
	}
	last := segs[len(segs)-1].Kind()
	has := func(k SegmentKind) bool {
		for _, s := range segs {
			if s.Kind() == k {
				return true
			}
		}
		return false
	}

	switch {
	case len(segs) == 1 && last == SegmentMetadata:
		return KindMetadata
	case last == SegmentDollarCount:
		return KindDollarCount
	case last == SegmentTypeCast:
		return KindTypeCast
	case last == SegmentComplexProperty:
		return KindComplexProperty
	case has(SegmentStreamProperty) || has(SegmentStreamContent):
		return KindMediaEntity
	case has(SegmentRef):
		return KindRef
	case has(SegmentOperationImport):
		return KindOperationImport
	case has(SegmentOperation):
		return KindOperation
	case has(SegmentNavigationProperty):
		return KindNavigationProperty
	}

	src, ok := segs[0].(*NavigationSourceSegment)
	if !ok || src.Source == nil {
		return KindUnknown
	}
	switch {
	case len(segs) == 1 && src.Source.IsSingleton():
		return KindSingleton
	case len(segs) == 1:
		return KindEntitySet
	case len(segs) == 2 && last == SegmentKey:
		return KindEntity
	}
	return KindUnknown
}
