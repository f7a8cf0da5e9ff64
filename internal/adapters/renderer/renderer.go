// Package renderer turns loaded components into HTML.
//
// A component is the module's default export, its render export, or the
// module exports themselves when they are a function. It is called with the
// job props and may return a string or a promise of one.
package renderer

import (
	"context"

	"github.com/dop251/goja"
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
)

// New returns the renderer registered under kind.
func New(kind string) (ports.Renderer, error) {
	switch kind {
	case domain.RendererString, "":
		return NewString(), nil
	case domain.RendererStream:
		return NewStream(), nil
	default:
		return nil, domain.Annotate(domain.ErrInvalidConfig, "renderer", kind)
	}
}

func component(m *domain.Module) (goja.Callable, error) {
	if m == nil {
		return nil, domain.ErrNotRenderable
	}
	if fn, ok := m.Func("default"); ok {
		return fn, nil
	}
	if fn, ok := m.Func("render"); ok {
		return fn, nil
	}
	if m.Exports != nil {
		if fn, ok := goja.AssertFunction(m.Exports); ok {
			return fn, nil
		}
	}
	return nil, domain.Annotate(domain.ErrNotRenderable, "module", m.ID)
}

func propsValue(rt *goja.Runtime, props map[string]any) goja.Value {
	if props == nil {
		return rt.NewObject()
	}
	return rt.ToValue(props)
}

// settle awaits v and returns it as HTML. Nullish values render nothing.
func settle(v goja.Value) (string, error) {
	v, err := domain.Await(v)
	if err != nil {
		return "", err
	}
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return "", nil
	}
	return v.String(), nil
}

// interruptOnDone stops JavaScript running in rt once ctx ends.
func interruptOnDone(ctx context.Context, rt *goja.Runtime) (stop func() bool) {
	return context.AfterFunc(ctx, func() {
		rt.Interrupt(ctx.Err())
	})
}
