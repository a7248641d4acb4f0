// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/odata2openapi/pkg/types"
)

func TestDefaultMergeOptions(t *testing.T) {
	opts := DefaultMergeOptions()

	assert.Equal(t, MergeStrategyOverwrite, opts.Strategy)
	assert.False(t, opts.PreservePaths)
	assert.False(t, opts.PreserveSchemas)
	assert.True(t, opts.PreserveInfo)
	assert.True(t, opts.PreserveServers)
	assert.True(t, opts.PreserveTags)
	assert.True(t, opts.PreserveSecurity)
}

func TestMerger_Merge_NilDocuments(t *testing.T) {
	doc := &types.OpenAPI{OpenAPI: "3.0.3", Info: types.Info{Title: "Generated"}}
	m := NewMerger(DefaultMergeOptions())

	result, err := m.Merge(nil, doc)
	require.NoError(t, err)
	assert.Same(t, doc, result)

	result, err = m.Merge(doc, nil)
	require.NoError(t, err)
	assert.Same(t, doc, result)
}

func TestMerger_Merge_TopLevel(t *testing.T) {
	existing := &types.OpenAPI{
		Info:     types.Info{Title: "Original API", Version: "2.0.0"},
		Servers:  []types.Server{{URL: "https://prod.example.com"}},
		Security: []map[string][]string{{"oauth": {"read"}}},
	}

	tests := []struct {
		name  string
		opts  func(*MergeOptions)
		check func(t *testing.T, result *types.OpenAPI)
	}{
		{
			name: "defaults preserve",
			opts: func(*MergeOptions) {},
			check: func(t *testing.T, result *types.OpenAPI) {
				assert.Equal(t, "Original API", result.Info.Title)
				assert.Equal(t, "https://prod.example.com", result.Servers[0].URL)
				assert.Equal(t, existing.Security, result.Security)
			},
		},
		{
			name: "nothing preserved",
			opts: func(o *MergeOptions) {
				o.PreserveInfo = false
				o.PreserveServers = false
				o.PreserveSecurity = false
			},
			check: func(t *testing.T, result *types.OpenAPI) {
				assert.Equal(t, "OData Service", result.Info.Title)
				assert.Empty(t, result.Servers)
				assert.Empty(t, result.Security)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultMergeOptions()
			tt.opts(&opts)
			generated := &types.OpenAPI{Info: types.Info{Title: "OData Service", Version: "1.0.0"}}

			result, err := NewMerger(opts).Merge(existing, generated)
			require.NoError(t, err)
			tt.check(t, result)
		})
	}
}

func TestMerger_Merge_Tags(t *testing.T) {
	existing := &types.OpenAPI{Tags: []types.Tag{
		{Name: "Customers.Customer", Description: "Hand written"},
		{Name: "Legacy"},
	}}
	generated := &types.OpenAPI{Tags: []types.Tag{
		{Name: "Customers.Customer", Extensions: map[string]interface{}{"x-ms-docs-toc-type": "page"}},
		{Name: "Orders.Order"},
	}}

	result, err := MergeDefault(existing, generated)
	require.NoError(t, err)

	require.Len(t, result.Tags, 3)
	assert.Equal(t, "Hand written", result.Tags[0].Description)
	assert.Equal(t, "page", result.Tags[0].Extensions["x-ms-docs-toc-type"])
	assert.Equal(t, "Legacy", result.Tags[1].Name)
	assert.Equal(t, "Orders.Order", result.Tags[2].Name)
}

func TestMerger_Merge_Operations(t *testing.T) {
	newExisting := func() *types.OpenAPI {
		get := op("Customers.Customer.ListCustomer")
		get.Description = "Hand written description"
		return &types.OpenAPI{Paths: map[string]types.PathItem{
			"/Customers": {Get: get, Delete: op("Customers.Legacy")},
			"/Legacy":    {Get: op("Legacy.Get")},
		}}
	}
	newGenerated := func() *types.OpenAPI {
		get := op("Customers.Customer.ListCustomer")
		get.Summary = "Get entities from Customers"
		return &types.OpenAPI{Paths: map[string]types.PathItem{
			"/Customers": {Get: get, Post: op("Customers.Customer.CreateCustomer")},
		}}
	}

	t.Run("overwrite keeps documentation", func(t *testing.T) {
		result, err := MergeDefault(newExisting(), newGenerated())
		require.NoError(t, err)

		item := result.Paths["/Customers"]
		assert.Equal(t, "Get entities from Customers", item.Get.Summary)
		assert.Equal(t, "Hand written description", item.Get.Description)
		assert.NotNil(t, item.Post)
		assert.Nil(t, item.Delete)
		assert.NotContains(t, result.Paths, "/Legacy")
	})

	t.Run("keep existing", func(t *testing.T) {
		opts := DefaultMergeOptions()
		opts.Strategy = MergeStrategyKeepExisting

		result, err := NewMerger(opts).Merge(newExisting(), newGenerated())
		require.NoError(t, err)

		item := result.Paths["/Customers"]
		assert.Empty(t, item.Get.Summary)
		assert.Equal(t, "Hand written description", item.Get.Description)
		assert.NotNil(t, item.Post)
	})

	t.Run("preserve paths", func(t *testing.T) {
		opts := DefaultMergeOptions()
		opts.PreservePaths = true

		result, err := NewMerger(opts).Merge(newExisting(), newGenerated())
		require.NoError(t, err)

		assert.NotNil(t, result.Paths["/Customers"].Delete)
		require.Contains(t, result.Paths, "/Legacy")
		assert.Equal(t, "Legacy.Get", result.Paths["/Legacy"].Get.OperationID)
	})
}

func TestMerger_Merge_Schemas(t *testing.T) {
	existing := &types.OpenAPI{Components: &types.Components{Schemas: map[string]*types.Schema{
		"NS.Customer": {Description: "old"},
		"Custom":      {Type: "object"},
	}}}

	t.Run("dropped by default", func(t *testing.T) {
		generated := &types.OpenAPI{Components: &types.Components{Schemas: map[string]*types.Schema{
			"NS.Customer": {Description: "new"},
		}}}
		result, err := MergeDefault(existing, generated)
		require.NoError(t, err)
		assert.NotContains(t, result.Components.Schemas, "Custom")
	})

	t.Run("preserved", func(t *testing.T) {
		generated := &types.OpenAPI{}
		opts := DefaultMergeOptions()
		opts.PreserveSchemas = true

		result, err := NewMerger(opts).Merge(existing, generated)
		require.NoError(t, err)
		assert.Contains(t, result.Components.Schemas, "Custom")
		assert.Equal(t, "old", result.Components.Schemas["NS.Customer"].Description)
	})

	t.Run("generated wins", func(t *testing.T) {
		generated := &types.OpenAPI{Components: &types.Components{Schemas: map[string]*types.Schema{
			"NS.Customer": {Description: "new"},
		}}}
		opts := DefaultMergeOptions()
		opts.PreserveSchemas = true

		result, err := NewMerger(opts).Merge(existing, generated)
		require.NoError(t, err)
		assert.Equal(t, "new", result.Components.Schemas["NS.Customer"].Description)
		assert.Contains(t, result.Components.Schemas, "Custom")
	})
}
