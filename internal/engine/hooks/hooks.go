// Package hooks groups plugin lifecycle hooks into ordered chains and wraps
// pipeline stages with them.
package hooks

import (
	"context"

	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
)

// Hook is one plugin's implementation of a lifecycle hook.
type Hook[T any] func(ctx context.Context, v T) error

// Chain runs the hooks of one lifecycle name in plugin order.
// A nil Chain means no plugin implements the hook.
type Chain[T any] []Hook[T]

// Run calls every hook with the same value and stops at the first error.
// Hooks communicate by mutating v.
func (c Chain[T]) Run(ctx context.Context, v T) error {
	for _, hook := range c {
		if err := hook(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// Hooks holds a chain per lifecycle name. It is built once and read-only afterwards.
type Hooks struct {
	BeforeBatch          Chain[*domain.BatchHandlerRequest]
	AfterBatch           Chain[*domain.BatchHandlerResponse]
	BeforeJob            Chain[*domain.JobHandlerRequest]
	AfterJob             Chain[*domain.JobHandlerResponse]
	BeforeLoadModule     Chain[*domain.JobHandlerRequest]
	AfterLoadModule      Chain[*domain.RenderHandlerRequest]
	BeforeRender         Chain[*domain.RenderHandlerRequest]
	AfterRender          Chain[*domain.JobHandlerResponse]
	AfterRequestComplete Chain[*domain.BatchHandlerRequest]
}

// New groups the hooks implemented by plugins, keeping plugin order.
func New(plugins []ports.Plugin) *Hooks {
	h := &Hooks{}
	for _, p := range plugins {
		if v, ok := p.(ports.BeforeBatchHook); ok {
			h.BeforeBatch = append(h.BeforeBatch, v.BeforeBatch)
		}
		if v, ok := p.(ports.AfterBatchHook); ok {
			h.AfterBatch = append(h.AfterBatch, v.AfterBatch)
		}
		if v, ok := p.(ports.BeforeJobHook); ok {
			h.BeforeJob = append(h.BeforeJob, v.BeforeJob)
		}
		if v, ok := p.(ports.AfterJobHook); ok {
			h.AfterJob = append(h.AfterJob, v.AfterJob)
		}
		if v, ok := p.(ports.BeforeLoadModuleHook); ok {
			h.BeforeLoadModule = append(h.BeforeLoadModule, v.BeforeLoadModule)
		}
		if v, ok := p.(ports.AfterLoadModuleHook); ok {
			h.AfterLoadModule = append(h.AfterLoadModule, v.AfterLoadModule)
		}
		if v, ok := p.(ports.BeforeRenderHook); ok {
			h.BeforeRender = append(h.BeforeRender, v.BeforeRender)
		}
		if v, ok := p.(ports.AfterRenderHook); ok {
			h.AfterRender = append(h.AfterRender, v.AfterRender)
		}
		if v, ok := p.(ports.AfterRequestCompleteHook); ok {
			h.AfterRequestComplete = append(h.AfterRequestComplete, v.AfterRequestComplete)
		}
	}
	return h
}

// Handler is one pipeline stage.
type Handler[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// ErrorFunc finalizes an untyped error raised while handling req.
type ErrorFunc[Req any] func(req Req, err error) *domain.ErrorResponse

// Wrap runs before, then handler, then after. Errors that already carry a
// stage type pass through unchanged; others are finalized by onError.
func Wrap[Req, Resp any](before Chain[Req], after Chain[Resp], handler Handler[Req, Resp], onError ErrorFunc[Req]) Handler[Req, Resp] {
	return func(ctx context.Context, req Req) (Resp, error) {
		resp, err := run(ctx, before, after, handler, req)
		if err == nil || onError == nil {
			return resp, err
		}
		if typed, ok := domain.AsErrorResponse(err); ok {
			return resp, typed
		}
		return resp, onError(req, err)
	}
}

func run[Req, Resp any](ctx context.Context, before Chain[Req], after Chain[Resp], handler Handler[Req, Resp], req Req) (Resp, error) {
	var zero Resp
	if err := before.Run(ctx, req); err != nil {
		return zero, err
	}
	resp, err := handler(ctx, req)
	if err != nil {
		return zero, err
	}
	if err := after.Run(ctx, resp); err != nil {
		return zero, err
	}
	return resp, nil
}
