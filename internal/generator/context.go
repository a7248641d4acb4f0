// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package generator synthesizes OpenAPI operations from resource paths.
//
// A Handler is selected from a Registry by path kind and HTTP method. Its
// CreateOperation runs a fixed pipeline of steps over a per-call state value,
// so handlers hold no mutable state and may be shared between goroutines.
package generator

import (
	"github.com/api2spec/odata2openapi/internal/config"
	"github.com/api2spec/odata2openapi/internal/edm"
	"github.com/api2spec/odata2openapi/internal/schema"
	"github.com/api2spec/odata2openapi/internal/vocab"
)

// DocumentRegistry receives the tags and components generated operations
// share with the rest of the document.
type DocumentRegistry interface {
	// RegisterTag adds a tag, or adds absent extensions to an existing one.
	RegisterTag(name string, extensions map[string]interface{})

	// RegisterComponent stores a component under kind and id.
	RegisterComponent(kind schema.ComponentKind, id string, value interface{})

	// HasComponent reports whether a component exists.
	HasComponent(kind schema.ComponentKind, id string) bool
}

// Context carries everything a handler reads during a conversion run.
// It is not modified by handlers.
type Context struct {
	// Model is the entity data model
	Model edm.Model

	// Settings are the conversion switches
	Settings config.ConversionConfig

	// Store answers annotation lookups; nil means no annotations
	Store vocab.Store

	// Document receives shared tags and components; nil discards them
	Document DocumentRegistry
}

func (c *Context) description(target string) string {
	if c.Store == nil || target == "" {
		return ""
	}
	return c.Store.Description(target)
}

func (c *Context) longDescription(target string) string {
	if c.Store == nil || target == "" {
		return ""
	}
	return c.Store.LongDescription(target)
}

func (c *Context) links(target string) []vocab.Link {
	if c.Store == nil || target == "" {
		return nil
	}
	return c.Store.Links(target)
}

func (c *Context) revisions(target string) []vocab.Revision {
	if c.Store == nil || target == "" {
		return nil
	}
	return c.Store.Revisions(target)
}

func (c *Context) mediaTypes(target string) []string {
	if c.Store == nil || target == "" {
		return nil
	}
	return c.Store.AcceptableMediaTypes(target)
}

func (c *Context) registerTag(name string, extensions map[string]interface{}) {
	if c.Document != nil && name != "" {
		c.Document.RegisterTag(name, extensions)
	}
}

func (c *Context) registerComponent(kind schema.ComponentKind, id string, value interface{}) {
	if c.Document != nil && !c.Document.HasComponent(kind, id) {
		c.Document.RegisterComponent(kind, id, value)
	}
}
