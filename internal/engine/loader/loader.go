// Package loader loads CommonJS module graphs into goja runtimes.
//
// Each call to Load builds a fresh load-graph: a new runtime and a new module
// registry, so exports are shared inside a graph and never across graphs.
// Compiled wrappers are cached across graphs.
package loader

import (
	"context"

	"go.trai.ch/bagel/internal/adapters/resolver"
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
)

var _ ports.ModuleLoader = (*Loader)(nil)

// Loader resolves, compiles and executes module graphs.
type Loader struct {
	opts     options
	resolve  ports.Resolver
	wrappers *WrapperCache
}

// New creates a Loader.
func New(opts ...Option) (*Loader, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.builtins == nil {
		o.builtins = NewBuiltins(nil)
	}
	if o.defaultResolver == nil {
		o.defaultResolver = resolver.NewNodeResolver(resolver.WithBuiltins(o.builtins.Has))
	}

	wrappers, err := NewWrapperCache(o.cacheSize)
	if err != nil {
		return nil, err
	}

	chain := make([]ports.Resolver, 0, len(o.resolvers)+1)
	chain = append(chain, o.resolvers...)
	chain = append(chain, o.defaultResolver)

	return &Loader{
		opts:     o,
		resolve:  resolver.Chain(chain...),
		wrappers: wrappers,
	}, nil
}

// Load requires name from rootDir in a new load-graph and returns its exports.
func (l *Loader) Load(ctx context.Context, name, rootDir string, reqCtx any) (*domain.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := newGraph(l, name, reqCtx)
	exports, err := g.require(rootDir, rootDir)(name)
	if err != nil {
		return nil, err
	}
	g.loaded = true

	return &domain.Module{ID: name, Runtime: g.rt, Exports: exports}, nil
}

// Wrappers returns the compiled wrapper cache.
func (l *Loader) Wrappers() *WrapperCache {
	return l.wrappers
}

// Purge drops every compiled wrapper.
func (l *Loader) Purge() {
	l.wrappers.Purge()
}
