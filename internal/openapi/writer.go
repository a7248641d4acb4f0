// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/api2spec/odata2openapi/pkg/types"
)

// Output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Writer encodes documents as YAML or JSON.
type Writer struct {
	// Indent is the number of spaces per JSON nesting level. YAML always uses 2.
	Indent int
}

// NewWriter returns a Writer with a JSON indent of 2.
func NewWriter() *Writer {
	return &Writer{Indent: 2}
}

// formatOf maps a file extension to a format, or "" when it implies none.
func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return ""
}

// FormatFor returns format when set, otherwise the format implied by the
// extension of path. Unknown extensions mean YAML.
func FormatFor(path, format string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if f := formatOf(path); f != "" {
		return f
	}
	return FormatYAML
}

// Write encodes doc in the given format ("yaml", "yml" or "json"). JSON
// output leaves $ and & in path templates unescaped.
func (w *Writer) Write(doc *types.OpenAPI, out io.Writer, format string) error {
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", strings.Repeat(" ", w.Indent))
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// Marshal returns the encoded document.
func (w *Writer) Marshal(doc *types.OpenAPI, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(doc, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes doc and replaces path with the result. An empty format
// follows the extension of path. Missing parent directories are created, and
// the file is replaced through a rename so readers never see partial output.
func (w *Writer) WriteFile(doc *types.OpenAPI, path string, format string) error {
	data, err := w.Marshal(doc, FormatFor(path, format))
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Parse decodes a document. An empty format tries YAML, then JSON.
func Parse(data []byte, format string) (*types.OpenAPI, error) {
	var doc types.OpenAPI
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if yaml.Unmarshal(data, &doc) != nil {
			doc = types.OpenAPI{}
			if err := json.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("failed to parse document as YAML or JSON: %w", err)
			}
		}
	}
	return &doc, nil
}

// ReadFile decodes the document at path in the format its extension implies.
func ReadFile(path string) (*types.OpenAPI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data, formatOf(path))
}
