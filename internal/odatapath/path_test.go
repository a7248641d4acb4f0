// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package odatapath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/odata2openapi/internal/edm"
)

const testModel = `
namespace: NS
container: Container
entityTypes:
  - name: Customer
    key: [ID]
    hasStream: true
    alternateKeys:
      - [Code]
    properties:
      - name: ID
        type: Edm.Int32
      - name: Code
        type: Edm.String
      - name: Address
        type: Address
      - name: Photo
        type: Edm.Stream
    navigationProperties:
      - name: Orders
        type: Collection(Order)
      - name: Manager
        type: Customer
  - name: VipCustomer
    baseType: Customer
  - name: Order
    key: [ID]
    properties:
      - name: ID
        type: Edm.Int32
  - name: Line
    key: [OrderID, No]
    properties:
      - name: OrderID
        type: Edm.Int32
      - name: No
        type: Edm.Int32
complexTypes:
  - name: Address
    properties:
      - name: City
        type: Edm.String
functions:
  - name: MyFunction
    isBound: true
    parameters:
      - name: bindingParameter
        type: Collection(Customer)
      - name: p1
        type: Edm.String
      - name: p2
        type: Edm.Int32
  - name: Rank
    isBound: true
    parameters:
      - name: bindingParameter
        type: Customer
    returnType: Edm.Int32
  - name: Top
    returnType: Collection(Customer)
actions:
  - name: Reset
entitySets:
  - name: Customers
    type: Customer
  - name: Lines
    type: Line
singletons:
  - name: Me
    type: Customer
functionImports:
  - name: Top
    operation: Top
actionImports:
  - name: Reset
    operation: Reset
annotations:
  NS.Container/Customers:
    navigationRestrictions:
      restrictedProperties:
        - navigationProperty: Manager
          navigability: None
`

func loadModel(t *testing.T) *edm.Schema {
	t.Helper()
	s, _, err := edm.Parse([]byte(testModel))
	require.NoError(t, err)
	return s
}

var segOpts = Options{KeyAsSegment: true, PrefixEntityTypeNameBeforeKey: true}

func customerSegments(t *testing.T, s *edm.Schema) (*NavigationSourceSegment, *KeySegment) {
	t.Helper()
	set := s.FindEntitySet("Customers")
	customer := set.EntityType
	return &NavigationSourceSegment{Source: set}, &KeySegment{Type: customer, Keys: s.Keys(customer)}
}

func TestClassify(t *testing.T) {
	s := loadModel(t)
	src, key := customerSegments(t, s)
	customer := src.Source.EntityType
	orders := s.NavigationProperties(customer)[0]
	order := s.FindEntityType("NS.Order")
	vip := s.FindEntityType("NS.VipCustomer")
	ops := s.BoundOperations("NS.Customer", true)
	imports := s.OperationImports()

	tests := []struct {
		name string
		segs []Segment
		want Kind
	}{
		{"empty", nil, KindUnknown},
		{"metadata", []Segment{&MetadataSegment{}}, KindMetadata},
		{"entity set", []Segment{src}, KindEntitySet},
		{"singleton", []Segment{&NavigationSourceSegment{Source: s.FindEntitySet("Me")}}, KindSingleton},
		{"entity", []Segment{src, key}, KindEntity},
		{"count", []Segment{src, &DollarCountSegment{}}, KindDollarCount},
		{"type cast", []Segment{src, &TypeCastSegment{Type: vip}}, KindTypeCast},
		{"count after cast", []Segment{src, &TypeCastSegment{Type: vip}, &DollarCountSegment{}}, KindDollarCount},
		{"complex", []Segment{src, key, &ComplexPropertySegment{Property: customer.Properties[2]}}, KindComplexProperty},
		{"media", []Segment{src, key, &StreamContentSegment{}}, KindMediaEntity},
		{"stream property", []Segment{src, key, &StreamPropertySegment{Property: customer.Properties[3]}}, KindMediaEntity},
		{"ref", []Segment{src, key, &NavigationPropertySegment{Property: orders, Target: order}, &RefSegment{}}, KindRef},
		{"navigation", []Segment{src, key, &NavigationPropertySegment{Property: orders, Target: order}}, KindNavigationProperty},
		{"operation", []Segment{src, &OperationSegment{Operation: ops[0]}}, KindOperation},
		{"operation import", []Segment{&OperationImportSegment{Import: imports[0]}}, KindOperationImport},
		{"key without source", []Segment{key}, KindUnknown},
		{"source without element", []Segment{&NavigationSourceSegment{}}, KindUnknown},
		{"import without element", []Segment{&OperationImportSegment{}}, KindOperationImport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(segOpts, tt.segs...).Kind())
		})
	}
}

func TestPathItemName(t *testing.T) {
	s := loadModel(t)
	src, key := customerSegments(t, s)
	customer := src.Source.EntityType
	orders := s.NavigationProperties(customer)[0]
	order := s.FindEntityType("NS.Order")
	lines := s.FindEntitySet("Lines")
	line := lines.EntityType

	tests := []struct {
		name string
		opts Options
		segs []Segment
		want string
	}{
		{
			name: "key as segment with prefix",
			opts: segOpts,
			segs: []Segment{src, key},
			want: "/Customers/{customer-id}",
		},
		{
			name: "parentheses without prefix",
			opts: Options{},
			segs: []Segment{src, key},
			want: "/Customers({ID})",
		},
		{
			name: "composite key",
			opts: segOpts,
			segs: []Segment{&NavigationSourceSegment{Source: lines}, &KeySegment{Type: line, Keys: s.Keys(line)}},
			want: "/Lines(OrderID={OrderID},No={No})",
		},
		{
			name: "alternate key",
			opts: segOpts,
			segs: []Segment{src, &KeySegment{Type: customer, Keys: customer.Properties[1:2], Alternate: true}},
			want: "/Customers(Code='{Code}')",
		},
		{
			name: "nested keys are unique",
			opts: segOpts,
			segs: []Segment{
				src, key,
				&NavigationPropertySegment{Property: s.NavigationProperties(customer)[1], Target: customer},
				&KeySegment{Type: customer, Keys: s.Keys(customer)},
			},
			want: "/Customers/{customer-id}/Manager/{customer-id1}",
		},
		{
			name: "navigation ref",
			opts: segOpts,
			segs: []Segment{src, key, &NavigationPropertySegment{Property: orders, Target: order}, &RefSegment{}},
			want: "/Customers/{customer-id}/Orders/$ref",
		},
		{
			name: "bound function",
			opts: segOpts,
			segs: []Segment{src, &OperationSegment{Operation: s.BoundOperations("NS.Customer", true)[0]}},
			want: "/Customers/NS.MyFunction(p1='{p1}',p2={p2})",
		},
		{
			name: "function import",
			opts: segOpts,
			segs: []Segment{&OperationImportSegment{Import: s.OperationImports()[0]}},
			want: "/Top()",
		},
		{
			name: "action import",
			opts: segOpts,
			segs: []Segment{&OperationImportSegment{Import: s.OperationImports()[1]}},
			want: "/Reset",
		},
		{
			name: "metadata",
			opts: segOpts,
			segs: []Segment{&MetadataSegment{}},
			want: "/$metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.opts, tt.segs...).PathItemName())
		})
	}
}

func TestPath_Parameters(t *testing.T) {
	s := loadModel(t)
	src, key := customerSegments(t, s)
	fn := s.BoundOperations("NS.Customer", false)[0]

	p := New(segOpts, src, key, &OperationSegment{Operation: fn})
	params := p.Parameters()
	require.Len(t, params, 1)
	assert.Equal(t, "customer-id", params[0].Name)
	assert.Equal(t, 1, params[0].Segment)
	assert.Equal(t, "ID", params[0].Key.Name)

	p = New(segOpts, src, &OperationSegment{Operation: s.BoundOperations("NS.Customer", true)[0]})
	params = p.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "p1", params[0].Name)
	assert.NotNil(t, params[0].Operation)
}

func TestPath_TargetAndNavigationPath(t *testing.T) {
	s := loadModel(t)
	src, key := customerSegments(t, s)
	customer := src.Source.EntityType
	orders := s.NavigationProperties(customer)[0]
	order := s.FindEntityType("NS.Order")

	p := New(segOpts, src, key, &NavigationPropertySegment{Property: orders, Target: order}, &RefSegment{})
	assert.Equal(t, "NS.Container/Customers/Orders", p.TargetPath("NS.Container"))
	assert.Equal(t, "Orders", p.NavigationPropertyPath())
	assert.Equal(t, order, p.EntityType())
	assert.Equal(t, src.Source, p.Source())
	assert.Same(t, orders, p.LastNavigationProperty().Property)
	assert.False(t, p.EndsWithKey())
	assert.Equal(t, 1, p.Count(SegmentKey))
}

func TestPath_AppendDoesNotMutate(t *testing.T) {
	s := loadModel(t)
	src, key := customerSegments(t, s)

	root := New(segOpts, src)
	entity := root.Append(key)

	assert.Equal(t, 1, root.Len())
	assert.Equal(t, 2, entity.Len())
	assert.Equal(t, KindEntitySet, root.Kind())
	assert.Equal(t, KindEntity, entity.Kind())
	assert.True(t, entity.EndsWithKey())
}
