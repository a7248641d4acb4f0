// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/odata2openapi/internal/config"
	"github.com/api2spec/odata2openapi/internal/edm"
	"github.com/api2spec/odata2openapi/internal/generator"
	"github.com/api2spec/odata2openapi/internal/odatapath"
	"github.com/api2spec/odata2openapi/pkg/types"
)

const testModel = `
namespace: NS
container: Container
entityTypes:
  - name: Customer
    key: [ID]
    properties:
      - {name: ID, type: Edm.Int32}
      - {name: Name, type: Edm.String}
    navigationProperties:
      - {name: Orders, type: Collection(Order)}
  - name: Order
    key: [ID]
    properties:
      - {name: ID, type: Edm.Int32}
functions:
  - name: Top
    returnType: Collection(Customer)
entitySets:
  - {name: Customers, type: Customer}
  - {name: Orders, type: Order}
singletons:
  - {name: Me, type: Customer}
functionImports:
  - {name: Top, operation: Top, entitySet: Customers}
`

func buildTestDoc(t *testing.T, cfg *config.Config, model string) *types.OpenAPI {
	t.Helper()
	m, store, err := edm.Parse([]byte(model))
	require.NoError(t, err)

	doc, err := NewBuilder(cfg).Build(m, store)
	require.NoError(t, err)
	return doc
}

// methods returns the sorted methods a path item defines.
func methods(item types.PathItem) []string {
	var out []string
	for _, m := range []string{"GET", "POST", "PATCH", "PUT", "DELETE"} {
		if _, ok := item.Operations()[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

func TestNewBuilder(t *testing.T) {
	cfg := config.Default()
	builder := NewBuilder(cfg)

	assert.NotNil(t, builder)
	assert.Equal(t, cfg, builder.config)
	assert.NotNil(t, builder.resolver)
	assert.Equal(t, slog.Default(), builder.log())
}

func TestBuilder_Build_NilModel(t *testing.T) {
	_, err := NewBuilder(config.Default()).Build(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil model")
}

func TestBuilder_Build_Info(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAPI.Info.Title = "Test API"
	cfg.OpenAPI.Info.Version = "2.0.0"
	cfg.OpenAPI.Info.Contact.Email = "api@example.com"
	cfg.OpenAPI.Info.License.Name = "MIT"
	cfg.OpenAPI.Servers = []config.ServerConfig{{URL: "https://example.com/odata", Description: "prod"}}

	doc := buildTestDoc(t, cfg, testModel)

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "Test API", doc.Info.Title)
	assert.Equal(t, "2.0.0", doc.Info.Version)
	require.NotNil(t, doc.Info.Contact)
	assert.Equal(t, "api@example.com", doc.Info.Contact.Email)
	require.NotNil(t, doc.Info.License)
	assert.Equal(t, "MIT", doc.Info.License.Name)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "https://example.com/odata", doc.Servers[0].URL)
}

func TestBuilder_Build_Methods(t *testing.T) {
	doc := buildTestDoc(t, config.Default(), testModel)

	tests := []struct {
		path string
		want []string
	}{
		{"/$metadata", []string{"GET"}},
		{"/Customers", []string{"GET", "POST"}},
		{"/Customers/{customer-id}", []string{"GET", "PATCH", "DELETE"}},
		{"/Customers/$count", []string{"GET"}},
		{"/Customers/{customer-id}/Orders", []string{"GET", "POST"}},
		{"/Customers/{customer-id}/Orders/{order-id}", []string{"GET", "PATCH", "DELETE"}},
		{"/Customers/{customer-id}/Orders/$ref", []string{"GET", "POST", "DELETE"}},
		{"/Customers/{customer-id}/Orders/{order-id}/$ref", []string{"DELETE"}},
		{"/Me", []string{"GET", "PATCH"}},
		{"/Top()", []string{"GET"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			item, ok := doc.Paths[tt.path]
			require.True(t, ok, "missing path %s", tt.path)
			assert.Equal(t, tt.want, methods(item))
		})
	}
}

func TestBuilder_Build_Capabilities(t *testing.T) {
	model := testModel + `
annotations:
  NS.Container/Customers:
    insertRestrictions:
      insertable: false
    updateRestrictions:
      updateMethod: PUT
    deleteRestrictions:
      deletable: false
  NS.Container/Orders:
    readRestrictions:
      readable: false
`
	doc := buildTestDoc(t, config.Default(), model)

	assert.Equal(t, []string{"GET"}, methods(doc.Paths["/Customers"]))
	assert.Equal(t, []string{"GET", "PUT"}, methods(doc.Paths["/Customers/{customer-id}"]))
	assert.Nil(t, doc.Paths["/Orders"].Get)
	assert.NotNil(t, doc.Paths["/Orders"].Post)
}

func TestBuilder_Build_PathFilters(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		present []string
		absent  []string
	}{
		{
			name:    "include",
			include: []string{"/Customers", "/Customers/**"},
			present: []string{"/Customers", "/Customers/{customer-id}/Orders"},
			absent:  []string{"/Orders", "/Me", "/$metadata"},
		},
		{
			name:    "exclude",
			exclude: []string{"/**/$ref", "/**/$count"},
			present: []string{"/Customers", "/Me"},
			absent:  []string{"/Customers/$count", "/Customers/{customer-id}/Orders/$ref"},
		},
		{
			name:    "exclude wins",
			include: []string{"/Customers/**"},
			exclude: []string{"/Customers/{customer-id}/**"},
			present: []string{"/Customers/$count"},
			absent:  []string{"/Customers/{customer-id}/Orders"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.Include = tt.include
			cfg.Paths.Exclude = tt.exclude

			doc := buildTestDoc(t, cfg, testModel)
			for _, p := range tt.present {
				assert.Contains(t, doc.Paths, p)
			}
			for _, p := range tt.absent {
				assert.NotContains(t, doc.Paths, p)
			}
		})
	}
}

func TestBuilder_Build_PathShapeSettings(t *testing.T) {
	cfg := config.Default()
	cfg.Conversion.KeyAsSegment = false
	cfg.Conversion.EnableDollarCountPath = false
	cfg.Conversion.EnableNavigationPropertyPath = false

	doc := buildTestDoc(t, cfg, testModel)

	assert.Contains(t, doc.Paths, "/Customers({customer-id})")
	assert.NotContains(t, doc.Paths, "/Customers/{customer-id}")
	for name := range doc.Paths {
		assert.False(t, strings.Contains(name, "$count"), name)
		assert.False(t, strings.Contains(name, "Orders/"), name)
	}
}

func TestBuilder_Build_Components(t *testing.T) {
	doc := buildTestDoc(t, config.Default(), testModel)

	require.NotNil(t, doc.Components)
	assert.Contains(t, doc.Components.Schemas, "NS.Customer")
	assert.Contains(t, doc.Components.Schemas, "NS.Order")
	assert.Contains(t, doc.Components.Schemas, "ODataErrors.ODataError")
	assert.Contains(t, doc.Components.Responses, "error")
	assert.Contains(t, doc.Components.Parameters, "top")
	assert.Nil(t, doc.Components.SecuritySchemes)
	assert.Nil(t, doc.Security)
}

func TestBuilder_Build_Tags(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAPI.Tags = []config.TagConfig{
		{Name: "Customers.Customer", Description: "Customer records"},
		{Name: "Admin", Description: "Not generated"},
	}

	doc := buildTestDoc(t, cfg, testModel)

	require.GreaterOrEqual(t, len(doc.Tags), 3)
	assert.Equal(t, "Customers.Customer", doc.Tags[0].Name)
	assert.Equal(t, "Customer records", doc.Tags[0].Description)
	assert.NotEmpty(t, doc.Tags[0].Extensions)
	assert.Equal(t, "Admin", doc.Tags[1].Name)

	seen := make(map[string]bool)
	for _, tag := range doc.Tags {
		assert.False(t, seen[tag.Name], "duplicate tag %s", tag.Name)
		seen[tag.Name] = true
	}
}

func TestBuilder_Build_Security(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAPI.Security.Schemes = map[string]config.SecuritySchemeConfig{
		"bearerAuth": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}
	cfg.OpenAPI.Security.Default = []string{"bearerAuth"}

	doc := buildTestDoc(t, cfg, testModel)

	require.Len(t, doc.Security, 1)
	assert.Contains(t, doc.Security[0], "bearerAuth")
	require.Contains(t, doc.Components.SecuritySchemes, "bearerAuth")
	assert.Equal(t, "bearer", doc.Components.SecuritySchemes["bearerAuth"].Scheme)
	assert.Contains(t, doc.Components.Schemas, "NS.Customer")
}

func TestBuilder_Build_UniqueOperationIDs(t *testing.T) {
	doc := buildTestDoc(t, config.Default(), testModel)

	seen := make(map[string]string)
	for name, item := range doc.Paths {
		for method, op := range item.Operations() {
			require.NotEmpty(t, op.OperationID, "%s %s", method, name)
			if prev, dup := seen[op.OperationID]; dup {
				t.Errorf("operation id %s used by %s and %s %s", op.OperationID, prev, method, name)
			}
			seen[op.OperationID] = method + " " + name
		}
	}
}

type emptyResolver struct{}

func (emptyResolver) Handler(odatapath.Kind, string) *generator.Handler { return nil }

func TestBuilder_WithResolver(t *testing.T) {
	m, store, err := edm.Parse([]byte(testModel))
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	doc, err := NewBuilder(config.Default()).
		WithResolver(emptyResolver{}).
		WithLogger(logger).
		Build(m, store)
	require.NoError(t, err)

	assert.Empty(t, doc.Paths)
	assert.Contains(t, logs.String(), "no handler")
	assert.Contains(t, logs.String(), "path=/Customers")
}

func TestBuilder_WithResolver_NilKeepsDefault(t *testing.T) {
	b := NewBuilder(config.Default())
	before := b.resolver
	b.WithResolver(nil)
	assert.Equal(t, before, b.resolver)
}

func TestBuilder_LogsSkippedDispatch(t *testing.T) {
	m, store, err := edm.Parse([]byte(testModel))
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err = NewBuilder(config.Default()).WithLogger(logger).Build(m, store)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "operation skipped")
	assert.Contains(t, logs.String(), "document built")
}
