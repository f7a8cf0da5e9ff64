package renderer

import (
	"context"
	"io"

	"github.com/dop251/goja"
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
)

var _ ports.Renderer = (*StreamRenderer)(nil)

// StreamRenderer renders a component that writes its HTML in chunks. The
// component is called with (props, write); anything it returns is written last.
type StreamRenderer struct{}

// NewStream creates a StreamRenderer.
func NewStream() *StreamRenderer {
	return &StreamRenderer{}
}

// Render starts the component and returns its output stream. The runtime
// belongs to the render goroutine until the stream ends.
func (r *StreamRenderer) Render(ctx context.Context, in *domain.RenderInput) (domain.RenderOutput, error) {
	fn, err := component(in.Component)
	if err != nil {
		return domain.RenderOutput{}, err
	}

	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(r.run(ctx, fn, in, pw))
	}()
	return domain.RenderOutput{Stream: pr}, nil
}

func (r *StreamRenderer) run(ctx context.Context, fn goja.Callable, in *domain.RenderInput, w io.Writer) error {
	rt := in.Component.Runtime
	defer interruptOnDone(ctx, rt)()

	write := rt.ToValue(func(call goja.FunctionCall) goja.Value {
		chunk := call.Argument(0)
		if goja.IsUndefined(chunk) || goja.IsNull(chunk) {
			return goja.Undefined()
		}
		if _, err := io.WriteString(w, chunk.String()); err != nil {
			panic(rt.NewGoError(err))
		}
		return goja.Undefined()
	})

	v, err := fn(goja.Undefined(), propsValue(rt, in.Props), write)
	if err != nil {
		return err
	}
	tail, err := settle(v)
	if err != nil {
		return err
	}
	if tail != "" {
		_, err = io.WriteString(w, tail)
	}
	return err
}
