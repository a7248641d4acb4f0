// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"github.com/api2spec/odata2openapi/pkg/types"
)

// MergeStrategy defines how to handle an operation present in both documents.
type MergeStrategy string

const (
	// MergeStrategyKeepExisting keeps the existing operation.
	MergeStrategyKeepExisting MergeStrategy = "keep-existing"

	// MergeStrategyOverwrite takes the generated operation, keeping
	// hand-written documentation the generator left empty.
	MergeStrategyOverwrite MergeStrategy = "overwrite"
)

// MergeOptions configures the merge behavior.
type MergeOptions struct {
	// Strategy decides conflicts between operations.
	Strategy MergeStrategy

	// PreservePaths keeps operations that are only in the existing document.
	PreservePaths bool

	// PreserveSchemas keeps schemas that are only in the existing document.
	PreserveSchemas bool

	// PreserveInfo preserves info from the existing document.
	PreserveInfo bool

	// PreserveServers preserves servers from the existing document.
	PreserveServers bool

	// PreserveTags keeps existing tag descriptions and tags the generator no longer emits.
	PreserveTags bool

	// PreserveSecurity preserves security from the existing document.
	PreserveSecurity bool
}

// DefaultMergeOptions returns the default merge options.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		Strategy:         MergeStrategyOverwrite,
		PreservePaths:    false,
		PreserveSchemas:  false,
		PreserveInfo:     true,
		PreserveServers:  true,
		PreserveTags:     true,
		PreserveSecurity: true,
	}
}

// Merger handles merging OpenAPI documents.
type Merger struct {
	options MergeOptions
}

// NewMerger creates a new Merger with the given options.
func NewMerger(options MergeOptions) *Merger {
	return &Merger{
		options: options,
	}
}

// Merge combines an existing OpenAPI document with a generated one.
// The generated document is modified and returned.
func (m *Merger) Merge(existing, generated *types.OpenAPI) (*types.OpenAPI, error) {
	if existing == nil {
		return generated, nil
	}
	if generated == nil {
		return existing, nil
	}

	result := generated

	if m.options.PreserveInfo && existing.Info.Title != "" {
		result.Info = existing.Info
	}

	if m.options.PreserveServers && len(existing.Servers) > 0 {
		result.Servers = existing.Servers
	}

	if m.options.PreserveTags && len(existing.Tags) > 0 {
		result.Tags = mergeTags(existing.Tags, result.Tags)
	}

	if m.options.PreserveSecurity && len(existing.Security) > 0 {
		result.Security = existing.Security
	}

	m.mergePaths(existing, result)

	if m.options.PreserveSchemas && existing.Components != nil {
		if result.Components == nil {
			result.Components = &types.Components{}
		}
		for name, s := range existing.Components.Schemas {
			if _, ok := result.Components.Schemas[name]; ok {
				continue
			}
			if result.Components.Schemas == nil {
				result.Components.Schemas = make(map[string]*types.Schema)
			}
			result.Components.Schemas[name] = s
		}
	}

	return result, nil
}

func (m *Merger) mergePaths(existing, result *types.OpenAPI) {
	if result.Paths == nil {
		result.Paths = make(map[string]types.PathItem)
	}

	for name, oldItem := range existing.Paths {
		newItem, generatedPath := result.Paths[name]
		if !generatedPath && !m.options.PreservePaths {
			continue
		}

		newOps := newItem.Operations()
		for method, oldOp := range oldItem.Operations() {
			newOp, ok := newOps[method]
			switch {
			case !ok:
				if m.options.PreservePaths {
					newItem.SetOperation(method, oldOp)
				}
			case m.options.Strategy == MergeStrategyKeepExisting:
				newItem.SetOperation(method, oldOp)
			default:
				keepDocumentation(oldOp, newOp)
			}
		}
		if len(newItem.Operations()) > 0 {
			result.Paths[name] = newItem
		}
	}
}

// keepDocumentation copies hand-written text into the fields the generator left empty.
func keepDocumentation(from, to *types.Operation) {
	if to.Summary == "" {
		to.Summary = from.Summary
	}
	if to.Description == "" {
		to.Description = from.Description
	}
	if to.ExternalDocs == nil {
		to.ExternalDocs = from.ExternalDocs
	}
}

// mergeTags keeps the existing tags and their descriptions, adding generated
// tags that are new. Generated extensions are carried over.
func mergeTags(existing, generated []types.Tag) []types.Tag {
	out := make([]types.Tag, 0, len(existing)+len(generated))
	index := make(map[string]int, len(existing))
	for _, t := range existing {
		index[t.Name] = len(out)
		out = append(out, t)
	}
	for _, t := range generated {
		i, ok := index[t.Name]
		if !ok {
			out = append(out, t)
			continue
		}
		if out[i].Description == "" {
			out[i].Description = t.Description
		}
		if len(t.Extensions) > 0 {
			out[i].Extensions = t.Extensions
		}
	}
	return out
}

// MergeDefault merges two documents using default options.
func MergeDefault(existing, generated *types.OpenAPI) (*types.OpenAPI, error) {
	merger := NewMerger(DefaultMergeOptions())
	return merger.Merge(existing, generated)
}
