// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerCamelCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"single uppercase", "A", "a"},
		{"PascalCase", "UserName", "userName"},
		{"already camelCase", "userName", "userName"},
		{"all uppercase", "ID", "iD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToLowerCamelCase(tt.input))
		})
	}
}

func TestUpperFirstChar(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"lowercase word", "customerCode", "CustomerCode"},
		{"already upper", "Code", "Code"},
		{"keeps the rest", "iD", "ID"},
		{"non ascii", "ñandu", "Ñandu"},
		{"digit", "1abc", "1abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UpperFirstChar(tt.input))
		})
	}
}

func TestCollectionElementType(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expected   string
		collection bool
	}{
		{"single type", "NS.Customer", "NS.Customer", false},
		{"collection", "Collection(NS.Customer)", "NS.Customer", true},
		{"primitive collection", "Collection(Edm.String)", "Edm.String", true},
		{"padded", " Collection( NS.Order ) ", "NS.Order", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elem, ok := CollectionElementType(tt.input)
			assert.Equal(t, tt.expected, elem)
			assert.Equal(t, tt.collection, ok)
		})
	}
}

func TestLastQualifiedPart(t *testing.T) {
	assert.Equal(t, "Customer", LastQualifiedPart("NS.Sub.Customer"))
	assert.Equal(t, "Customer", LastQualifiedPart("Customer"))
}
