package renderer

import (
	"context"

	"github.com/dop251/goja"
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
)

var _ ports.Renderer = (*StringRenderer)(nil)

// StringRenderer renders a component to a complete HTML string.
type StringRenderer struct{}

// NewString creates a StringRenderer.
func NewString() *StringRenderer {
	return &StringRenderer{}
}

// Render calls the component with the job props.
func (r *StringRenderer) Render(ctx context.Context, in *domain.RenderInput) (domain.RenderOutput, error) {
	fn, err := component(in.Component)
	if err != nil {
		return domain.RenderOutput{}, err
	}
	rt := in.Component.Runtime
	defer interruptOnDone(ctx, rt)()

	v, err := fn(goja.Undefined(), propsValue(rt, in.Props))
	if err != nil {
		return domain.RenderOutput{}, err
	}
	html, err := settle(v)
	if err != nil {
		return domain.RenderOutput{}, err
	}
	return domain.RenderOutput{HTML: html}, nil
}
