// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package openapi assembles, writes, merges, diffs and validates OpenAPI documents.
package openapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/api2spec/odata2openapi/internal/config"
	"github.com/api2spec/odata2openapi/internal/edm"
	"github.com/api2spec/odata2openapi/internal/generator"
	"github.com/api2spec/odata2openapi/internal/odatapath"
	"github.com/api2spec/odata2openapi/internal/schema"
	"github.com/api2spec/odata2openapi/internal/vocab"
	"github.com/api2spec/odata2openapi/pkg/types"
)

// candidateMethods are tried on every path, in this order.
var candidateMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPatch,
	http.MethodPut,
	http.MethodDelete,
}

// Builder constructs an OpenAPI document from a model.
type Builder struct {
	config   *config.Config
	logger   *slog.Logger
	resolver generator.Resolver
}

// NewBuilder creates a new OpenAPI builder with the given configuration.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		config:   cfg,
		resolver: generator.NewCachedRegistry(generator.NewRegistry()),
	}
}

// WithLogger sets the logger for skipped operations.
// If not set, slog.Default() will be used.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithResolver replaces the handler registry.
func (b *Builder) WithResolver(r generator.Resolver) *Builder {
	if r != nil {
		b.resolver = r
	}
	return b
}

func (b *Builder) log() *slog.Logger {
	if b.logger == nil {
		return slog.Default()
	}
	return b.logger
}

// Build creates an OpenAPI document for every path the model exposes.
func (b *Builder) Build(model edm.Model, store vocab.Store) (*types.OpenAPI, error) {
	if model == nil {
		return nil, errors.New("failed to build document: nil model")
	}

	settings := b.config.Conversion
	reg := schema.NewRegistry()
	schema.RegisterDefaults(reg, settings.TopExample)
	schema.RegisterModel(reg, model, store)

	ctx := &generator.Context{
		Model:    model,
		Settings: settings,
		Store:    store,
		Document: reg,
	}

	doc := &types.OpenAPI{
		OpenAPI: b.config.OpenAPI.Version,
		Info:    b.buildInfo(),
		Servers: b.buildServers(),
		Paths:   make(map[string]types.PathItem),
	}

	provider := odatapath.NewProvider(model, store, providerOptions(settings))
	for _, path := range provider.Paths() {
		name := path.PathItemName()
		if !b.included(name) {
			b.log().Debug("path filtered", slog.String("path", name))
			continue
		}
		item, err := b.buildPathItem(ctx, path)
		if err != nil {
			return nil, err
		}
		if len(item.Operations()) == 0 {
			continue
		}
		doc.Paths[name] = item
	}

	doc.Tags = b.buildTags(reg.Tags())
	doc.Components = reg.Components()
	if len(b.config.OpenAPI.Security.Schemes) > 0 {
		doc.Security = b.buildSecurity()
		doc.Components.SecuritySchemes = b.buildSecuritySchemes()
	}

	b.log().Debug("document built",
		slog.Int("paths", len(doc.Paths)),
		slog.Int("schemas", reg.Count(schema.KindSchemas)))

	return doc, nil
}

// buildPathItem creates the operations of one path.
func (b *Builder) buildPathItem(ctx *generator.Context, path *odatapath.Path) (types.PathItem, error) {
	var item types.PathItem
	name := path.PathItemName()

	for _, method := range candidateMethods {
		if !allowed(ctx, path, method) {
			continue
		}
		h := b.resolver.Handler(path.Kind(), method)
		if h == nil {
			b.log().Debug("no handler",
				slog.String("path", name),
				slog.String("kind", path.Kind().String()),
				slog.String("method", method))
			continue
		}
		op, err := h.CreateOperation(ctx, path)
		if errors.Is(err, generator.ErrInvalidDispatch) {
			b.log().Debug("operation skipped",
				slog.String("path", name),
				slog.String("method", method),
				slog.Any("reason", err))
			continue
		}
		if err != nil {
			return item, fmt.Errorf("failed to build %s %s: %w", method, name, err)
		}
		item.SetOperation(method, op)
	}
	return item, nil
}

// allowed reports whether the capability annotations of path permit method.
func allowed(ctx *generator.Context, path *odatapath.Path, method string) bool {
	switch path.Kind() {
	case odatapath.KindOperation, odatapath.KindOperationImport, odatapath.KindMetadata:
		return true
	}

	switch method {
	case http.MethodGet:
		return generator.ReadRestrictionsFor(ctx, path).IsReadable()
	case http.MethodPost:
		return generator.InsertRestrictionsFor(ctx, path).IsInsertable()
	case http.MethodPatch, http.MethodPut:
		r := generator.UpdateRestrictionsFor(ctx, path)
		if !r.IsUpdatable() {
			return false
		}
		return (method == http.MethodPut) == usesPut(path.Kind(), r)
	case http.MethodDelete:
		return generator.DeleteRestrictionsFor(ctx, path).IsDeletable()
	}
	return false
}

// usesPut reports whether updates on a path of kind are sent with PUT.
// Streams and single-valued references are only ever replaced.
func usesPut(kind odatapath.Kind, r *vocab.UpdateRestrictions) bool {
	switch kind {
	case odatapath.KindMediaEntity, odatapath.KindRef:
		return true
	}
	return r.PrefersPut()
}

func providerOptions(s config.ConversionConfig) odatapath.ProviderOptions {
	return odatapath.ProviderOptions{
		Options: odatapath.Options{
			KeyAsSegment:                  s.KeyAsSegment,
			PrefixEntityTypeNameBeforeKey: s.PrefixEntityTypeNameBeforeKey,
		},
		EnableDollarCountPath:        s.EnableDollarCountPath,
		EnableNavigationPropertyPath: s.EnableNavigationPropertyPath,
		EnableOperationPath:          s.EnableOperationPath,
		EnableOperationImportPath:    s.EnableOperationImportPath,
		EnableTypeCastPath:           s.EnableTypeCastPath,
	}
}

// included applies the include and exclude patterns to a path template.
func (b *Builder) included(name string) bool {
	if len(b.config.Paths.Include) > 0 && !matchAny(b.config.Paths.Include, name) {
		return false
	}
	return !matchAny(b.config.Paths.Exclude, name)
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if config.MatchPath(pattern, name) {
			return true
		}
	}
	return false
}

// buildInfo copies the configured info; contact and license are omitted
// when empty.
func (b *Builder) buildInfo() types.Info {
	cfg := b.config.OpenAPI.Info
	info := types.Info{
		Title:          cfg.Title,
		Description:    cfg.Description,
		TermsOfService: cfg.TermsOfService,
		Version:        cfg.Version,
	}

	if cfg.Contact.Name != "" || cfg.Contact.Email != "" || cfg.Contact.URL != "" {
		info.Contact = &types.Contact{
			Name:  cfg.Contact.Name,
			URL:   cfg.Contact.URL,
			Email: cfg.Contact.Email,
		}
	}

	if cfg.License.Name != "" {
		info.License = &types.License{
			Name: cfg.License.Name,
			URL:  cfg.License.URL,
		}
	}

	return info
}

func (b *Builder) buildServers() []types.Server {
	var servers []types.Server
	for _, s := range b.config.OpenAPI.Servers {
		servers = append(servers, types.Server(s))
	}
	return servers
}

// buildTags puts the configured tags first, then the generated ones.
// A configured tag with the same name absorbs the generated extensions.
func (b *Builder) buildTags(generated []types.Tag) []types.Tag {
	tags := make([]types.Tag, 0, len(b.config.OpenAPI.Tags)+len(generated))
	index := make(map[string]int)
	for _, t := range b.config.OpenAPI.Tags {
		index[t.Name] = len(tags)
		tags = append(tags, types.Tag{Name: t.Name, Description: t.Description})
	}
	for _, t := range generated {
		if i, ok := index[t.Name]; ok {
			tags[i].Extensions = t.Extensions
			continue
		}
		tags = append(tags, t)
	}
	return tags
}

// buildSecurity requires each default scheme, without scopes, document-wide.
func (b *Builder) buildSecurity() []map[string][]string {
	var security []map[string][]string
	for _, name := range b.config.OpenAPI.Security.Default {
		security = append(security, map[string][]string{name: {}})
	}
	return security
}

func (b *Builder) buildSecuritySchemes() map[string]types.SecurityScheme {
	schemes := make(map[string]types.SecurityScheme, len(b.config.OpenAPI.Security.Schemes))
	for name, cfg := range b.config.OpenAPI.Security.Schemes {
		schemes[name] = types.SecurityScheme{
			Type:         cfg.Type,
			Description:  cfg.Description,
			Name:         cfg.Name,
			In:           cfg.In,
			Scheme:       cfg.Scheme,
			BearerFormat: cfg.BearerFormat,
		}
	}
	return schemes
}
