// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestResponses_Order(t *testing.T) {
	r := NewResponses()
	r.Set("204", &Response{Description: "Success"})
	r.Set("default", &Response{Ref: "#/components/responses/error"})
	r.Set("204", &Response{Description: "No Content"})

	assert.Equal(t, []string{"204", "default"}, r.Codes())
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "No Content", r.Get("204").Description)
	assert.Nil(t, r.Get("200"))

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"204":{"description":"No Content"},"default":{"$ref":"#/components/responses/error"}}`, string(data))
}

func TestResponses_NilSafe(t *testing.T) {
	var r *Responses
	assert.Nil(t, r.Get("200"))
	assert.Nil(t, r.Codes())
	assert.Equal(t, 0, r.Len())

	var zero Responses
	zero.Set("200", &Response{Description: "OK"})
	assert.Equal(t, []string{"200"}, zero.Codes())
}

func TestResponses_Decode(t *testing.T) {
	tests := []struct {
		name   string
		decode func(*Responses) error
	}{
		{
			name: "json",
			decode: func(r *Responses) error {
				return json.Unmarshal([]byte(`{"default":{"description":"err"},"2XX":{"description":"ok"},"404":{"description":"missing"}}`), r)
			},
		},
		{
			name: "yaml",
			decode: func(r *Responses) error {
				return yaml.Unmarshal([]byte("default:\n  description: err\n2XX:\n  description: ok\n\"404\":\n  description: missing\n"), r)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Responses
			require.NoError(t, tt.decode(&r))
			assert.Equal(t, []string{"default", "2XX", "404"}, r.Codes())
			assert.Equal(t, "ok", r.Get("2XX").Description)
		})
	}

	var r Responses
	assert.Error(t, json.Unmarshal([]byte(`[]`), &r))
	assert.Error(t, yaml.Unmarshal([]byte("- a\n- b\n"), &r))
}

func TestOperation_Extensions(t *testing.T) {
	op := NewOperation()
	op.OperationID = "People.Person.ListPerson"
	op.Responses.Set("200", &Response{Description: "Retrieved entities"})
	op.Extensions["x-ms-pageable"] = map[string]interface{}{"nextLinkName": "@odata.nextLink", "operationName": "listMore"}
	op.Extensions["x-ms-docs-operation-type"] = "operation"

	data, err := json.Marshal(op)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"x-ms-docs-operation-type":"operation"`)
	assert.Contains(t, s, `"x-ms-pageable":{"nextLinkName":"@odata.nextLink","operationName":"listMore"}`)
	assert.Less(t, strings.Index(s, "x-ms-docs-operation-type"), strings.Index(s, "x-ms-pageable"))

	t.Run("json round trip", func(t *testing.T) {
		var decoded Operation
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "People.Person.ListPerson", decoded.OperationID)
		assert.Equal(t, "operation", decoded.Extensions["x-ms-docs-operation-type"])
		assert.Equal(t, []string{"200"}, decoded.Responses.Codes())
	})

	t.Run("yaml round trip", func(t *testing.T) {
		out, err := yaml.Marshal(op)
		require.NoError(t, err)
		assert.Contains(t, string(out), "x-ms-pageable:")

		var decoded Operation
		require.NoError(t, yaml.Unmarshal(out, &decoded))
		assert.Equal(t, "People.Person.ListPerson", decoded.OperationID)
		pageable, ok := decoded.Extensions["x-ms-pageable"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "listMore", pageable["operationName"])
	})
}

func TestOperation_Helpers(t *testing.T) {
	op := NewOperation()
	op.AddTag("People.Person")
	op.AddTag("People.Person")
	op.AddTag("Me.Person")
	assert.Equal(t, []string{"People.Person", "Me.Person"}, op.Tags)

	op.Parameters = append(op.Parameters, &Parameter{Name: "UserName", In: "path"})
	assert.True(t, op.HasParameter("UserName", "path"))
	assert.False(t, op.HasParameter("UserName", "query"))
}

func TestPathItem_Operations(t *testing.T) {
	var item PathItem
	get, patch := NewOperation(), NewOperation()

	assert.True(t, item.SetOperation("get", get))
	assert.True(t, item.SetOperation("PATCH", patch))
	assert.False(t, item.SetOperation("TRACE", NewOperation()))

	ops := item.Operations()
	assert.Len(t, ops, 2)
	assert.Same(t, get, ops["GET"])
	assert.Same(t, patch, ops["PATCH"])
	assert.Empty(t, PathItem{}.Operations())
}

func TestTag_Extensions(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		want string
	}{
		{"plain", Tag{Name: "People.Person"}, `{"name":"People.Person"}`},
		{
			"extension",
			Tag{Name: "People.Person", Extensions: map[string]interface{}{"x-ms-docs-toc-type": "page"}},
			`{"name":"People.Person","x-ms-docs-toc-type":"page"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestTag_Decode(t *testing.T) {
	var fromJSON Tag
	require.NoError(t, json.Unmarshal([]byte(`{"name":"People.Person","x-ms-docs-toc-type":"page"}`), &fromJSON))
	assert.Equal(t, "People.Person", fromJSON.Name)
	assert.Equal(t, map[string]interface{}{"x-ms-docs-toc-type": "page"}, fromJSON.Extensions)

	var fromYAML Tag
	require.NoError(t, yaml.Unmarshal([]byte("name: People.Person\ndescription: people\nx-ms-docs-toc-type: page\n"), &fromYAML))
	assert.Equal(t, "people", fromYAML.Description)
	assert.Equal(t, "page", fromYAML.Extensions["x-ms-docs-toc-type"])

	var plain Tag
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Me.Person"}`), &plain))
	assert.Nil(t, plain.Extensions)
}

func TestInlineExtensions(t *testing.T) {
	data, err := inlineExtensions([]byte(`{}`), map[string]interface{}{"x-b": 2, "x-a": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"x-a":1,"x-b":2}`, string(data))

	data, err = inlineExtensions([]byte(`{"a":1}`), nil)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	_, err = inlineExtensions([]byte(`[]`), map[string]interface{}{"x-a": 1})
	assert.Error(t, err)
}

func TestSchemaHelpers(t *testing.T) {
	ref := SchemaRef("People.Person")
	assert.Equal(t, SchemaRefPrefix+"People.Person", ref.Ref)

	arr := ArrayOf(ref)
	assert.Equal(t, "array", arr.Type)
	assert.Same(t, ref, arr.Items)
}
