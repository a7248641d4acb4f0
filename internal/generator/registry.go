// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"net/http"
	"strings"
	"sync"

	"github.com/api2spec/odata2openapi/internal/odatapath"
)

// Resolver finds the handler for a path kind and HTTP method.
type Resolver interface {
	Handler(kind odatapath.Kind, method string) *Handler
}

type handlerKey struct {
	kind   odatapath.Kind
	method string
}

// Registry maps (path kind, method) pairs to handler constructors. Every
// lookup returns a fresh handler.
type Registry struct {
	constructors map[handlerKey]func() *Handler
}

// NewRegistry returns a registry holding every built-in handler.
func NewRegistry() *Registry {
	r := &Registry{constructors: make(map[handlerKey]func() *Handler)}

	r.register(odatapath.KindEntitySet, http.MethodGet, newEntitySetGet)
	r.register(odatapath.KindEntitySet, http.MethodPost, newEntitySetPost)

	r.register(odatapath.KindEntity, http.MethodGet, newEntityGet)
	r.register(odatapath.KindEntity, http.MethodPatch, func() *Handler { return newEntityUpdate(http.MethodPatch) })
	r.register(odatapath.KindEntity, http.MethodPut, func() *Handler { return newEntityUpdate(http.MethodPut) })
	r.register(odatapath.KindEntity, http.MethodDelete, newEntityDelete)

	r.register(odatapath.KindSingleton, http.MethodGet, newSingletonGet)
	r.register(odatapath.KindSingleton, http.MethodPatch, func() *Handler { return newSingletonUpdate(http.MethodPatch) })
	r.register(odatapath.KindSingleton, http.MethodPut, func() *Handler { return newSingletonUpdate(http.MethodPut) })

	r.register(odatapath.KindNavigationProperty, http.MethodGet, newNavigationGet)
	r.register(odatapath.KindNavigationProperty, http.MethodPost, newNavigationPost)
	r.register(odatapath.KindNavigationProperty, http.MethodPatch, func() *Handler { return newNavigationUpdate(http.MethodPatch) })
	r.register(odatapath.KindNavigationProperty, http.MethodPut, func() *Handler { return newNavigationUpdate(http.MethodPut) })
	r.register(odatapath.KindNavigationProperty, http.MethodDelete, newNavigationDelete)

	r.register(odatapath.KindOperation, http.MethodGet, func() *Handler { return newOperationHandler(http.MethodGet) })
	r.register(odatapath.KindOperation, http.MethodPost, func() *Handler { return newOperationHandler(http.MethodPost) })
	r.register(odatapath.KindOperationImport, http.MethodGet, func() *Handler { return newOperationImportHandler(http.MethodGet) })
	r.register(odatapath.KindOperationImport, http.MethodPost, func() *Handler { return newOperationImportHandler(http.MethodPost) })

	r.register(odatapath.KindRef, http.MethodGet, newRefGet)
	r.register(odatapath.KindRef, http.MethodPost, newRefPost)
	r.register(odatapath.KindRef, http.MethodPut, newRefPut)
	r.register(odatapath.KindRef, http.MethodDelete, newRefDelete)

	for _, m := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		method := m
		r.register(odatapath.KindMediaEntity, method, func() *Handler { return newMediaHandler(method) })
	}

	r.register(odatapath.KindTypeCast, http.MethodGet, newTypeCastGet)
	r.register(odatapath.KindDollarCount, http.MethodGet, newDollarCountGet)
	r.register(odatapath.KindMetadata, http.MethodGet, newMetadataGet)

	for _, m := range []string{http.MethodGet, http.MethodPatch, http.MethodPut, http.MethodPost} {
		method := m
		r.register(odatapath.KindComplexProperty, method, func() *Handler { return newComplexPropertyHandler(method) })
	}

	return r
}

func (r *Registry) register(kind odatapath.Kind, method string, ctor func() *Handler) {
	r.constructors[handlerKey{kind: kind, method: method}] = ctor
}

// Handler returns a handler for kind and method, or nil when the pair is
// not supported. The method is matched case-insensitively.
func (r *Registry) Handler(kind odatapath.Kind, method string) *Handler {
	ctor, ok := r.constructors[handlerKey{kind: kind, method: strings.ToUpper(method)}]
	if !ok {
		return nil
	}
	return ctor()
}

// Methods returns the methods registered for kind in a fixed order.
func (r *Registry) Methods(kind odatapath.Kind) []string {
	var out []string
	for _, m := range methodOrder {
		if _, ok := r.constructors[handlerKey{kind: kind, method: m}]; ok {
			out = append(out, m)
		}
	}
	return out
}

var methodOrder = []string{
	http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete,
}

// CachedRegistry memoizes the handlers of an inner resolver. Handlers hold
// no per-call state, so a cached handler may serve concurrent calls.
type CachedRegistry struct {
	inner Resolver

	mu       sync.RWMutex
	handlers map[handlerKey]*Handler
}

// NewCachedRegistry wraps inner with a cache.
func NewCachedRegistry(inner Resolver) *CachedRegistry {
	return &CachedRegistry{
		inner:    inner,
		handlers: make(map[handlerKey]*Handler),
	}
}

// Handler returns the cached handler for kind and method, resolving and
// storing it on first use. Misses are not cached.
func (r *CachedRegistry) Handler(kind odatapath.Kind, method string) *Handler {
	key := handlerKey{kind: kind, method: strings.ToUpper(method)}

	r.mu.RLock()
	h, ok := r.handlers[key]
	r.mu.RUnlock()
	if ok {
		return h
	}

	h = r.inner.Handler(kind, key.method)
	if h == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.handlers[key]; ok {
		return cached
	}
	r.handlers[key] = h
	return h
}

// Len returns the number of cached handlers.
func (r *CachedRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
