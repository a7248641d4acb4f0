// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/api2spec/odata2openapi/internal/config"
	"github.com/api2spec/odata2openapi/internal/edm"
	"github.com/api2spec/odata2openapi/internal/odatapath"
	"github.com/api2spec/odata2openapi/internal/schema"
	"github.com/api2spec/odata2openapi/internal/vocab"
	"github.com/api2spec/odata2openapi/pkg/types"
)

const testModel = `
namespace: NS
container: Container
entityTypes:
  - name: Customer
    key: [ID]
    hasStream: true
    alternateKeys:
      - [CustomerCode]
    properties:
      - {name: ID, type: Edm.Int32}
      - {name: CustomerCode, type: Edm.String}
      - {name: Address, type: Address}
      - {name: Photo, type: Edm.Stream}
    navigationProperties:
      - {name: Orders, type: Collection(Order)}
      - {name: Manager, type: Customer}
  - name: VipCustomer
    baseType: Customer
  - name: Order
    key: [ID]
    properties:
      - {name: ID, type: Edm.Int32}
      - {name: Total, type: Edm.Decimal}
complexTypes:
  - name: Address
    properties:
      - {name: City, type: Edm.String}
functions:
  - name: MyFunction
    isBound: true
    parameters:
      - {name: bindingParameter, type: Collection(Customer)}
      - {name: p1, type: Edm.String}
  - name: MyFunction
    isBound: true
    parameters:
      - {name: bindingParameter, type: Collection(Customer)}
      - {name: p1, type: Edm.String}
      - {name: p2, type: Edm.Int32}
  - name: Rank
    isBound: true
    parameters:
      - {name: bindingParameter, type: Customer}
    returnType: Edm.Int32
  - name: Top
    returnType: Collection(Customer)
actions:
  - name: Reset
  - name: Promote
    isBound: true
    parameters:
      - {name: bindingParameter, type: Customer}
      - {name: level, type: Edm.Int32}
      - {name: note, type: Edm.String, nullable: true}
entitySets:
  - {name: Customers, type: Customer}
  - {name: Orders, type: Order}
singletons:
  - {name: Me, type: Customer}
functionImports:
  - {name: Top, operation: Top, entitySet: Customers}
actionImports:
  - {name: Reset, operation: Reset}
`

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// fixture is a parsed test model with its annotation store and the
// document registry operations register into.
type fixture struct {
	model *edm.Schema
	store *vocab.MemoryStore
	doc   *schema.Registry
	ctx   *Context
	paths map[string]*odatapath.Path
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	model, store, err := edm.Parse([]byte(testModel))
	require.NoError(t, err)

	settings := config.DefaultConversion()
	doc := schema.NewRegistry()
	f := &fixture{
		model: model,
		store: store,
		doc:   doc,
		ctx:   &Context{Model: model, Settings: settings, Store: store, Document: doc},
		paths: make(map[string]*odatapath.Path),
	}

	opts := odatapath.ProviderOptions{
		Options: odatapath.Options{
			KeyAsSegment:                  settings.KeyAsSegment,
			PrefixEntityTypeNameBeforeKey: settings.PrefixEntityTypeNameBeforeKey,
		},
		EnableDollarCountPath:        true,
		EnableNavigationPropertyPath: true,
		EnableOperationPath:          true,
		EnableOperationImportPath:    true,
		EnableTypeCastPath:           true,
	}
	for _, p := range odatapath.NewProvider(model, store, opts).Paths() {
		f.paths[p.PathItemName()] = p
	}
	return f
}

func (f *fixture) path(t *testing.T, name string) *odatapath.Path {
	t.Helper()
	p, ok := f.paths[name]
	require.True(t, ok, "path %s not generated", name)
	return p
}

func (f *fixture) annotate(target string, a *vocab.TargetAnnotations) {
	f.store.Annotate(target, a)
}

// operation builds the operation of method on the named path.
func (f *fixture) operation(t *testing.T, method, name string) *types.Operation {
	t.Helper()
	p := f.path(t, name)
	h := NewRegistry().Handler(p.Kind(), method)
	require.NotNil(t, h, "no handler for %s %s", p.Kind(), method)
	op, err := h.CreateOperation(f.ctx, p)
	require.NoError(t, err)
	return op
}
