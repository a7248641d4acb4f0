// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/api2spec/odata2openapi/pkg/types"
)

// ErrInvalidDocument is wrapped by every validation failure.
var ErrInvalidDocument = errors.New("invalid OpenAPI document")

// Validate checks a document against the OpenAPI 3 rules kin-openapi enforces.
func Validate(ctx context.Context, doc *types.OpenAPI) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", ErrInvalidDocument)
	}
	data, err := NewWriter().Marshal(doc, FormatJSON)
	if err != nil {
		return err
	}
	return ValidateData(ctx, data)
}

// ValidateData loads an encoded document (YAML or JSON) and validates it.
func ValidateData(ctx context.Context, data []byte) error {
	loader := &openapi3.Loader{Context: ctx}

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("%w: failed to load: %v", ErrInvalidDocument, err)
	}
	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}

// ValidateFile reads and validates the document at path.
func ValidateFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return ValidateData(ctx, data)
}
