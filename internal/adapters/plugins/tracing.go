package plugins

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/bagel/internal/core/domain"
)

// Tracing adds an event per hook to the span active in the hook's context.
type Tracing struct{}

// NewTracing creates a Tracing plugin.
func NewTracing() *Tracing {
	return &Tracing{}
}

// Name implements ports.Plugin.
func (p *Tracing) Name() string { return TracingName }

func event(ctx context.Context, name string, job *domain.JobRequest) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if job == nil {
		span.AddEvent(name)
		return
	}
	span.AddEvent(name, trace.WithAttributes(
		attribute.String("bagel.module", job.Name),
		attribute.String("bagel.job_id", job.JobID()),
	))
}

func (p *Tracing) BeforeBatch(ctx context.Context, req *domain.BatchHandlerRequest) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("bagel.batch_size", len(req.BatchRequest.Jobs)))
	event(ctx, "beforeBatch", nil)
	return nil
}

func (p *Tracing) AfterBatch(ctx context.Context, _ *domain.BatchHandlerResponse) error {
	event(ctx, "afterBatch", nil)
	return nil
}

func (p *Tracing) BeforeJob(ctx context.Context, req *domain.JobHandlerRequest) error {
	event(ctx, "beforeJob", req.JobRequest)
	return nil
}

func (p *Tracing) AfterJob(ctx context.Context, resp *domain.JobHandlerResponse) error {
	event(ctx, "afterJob", resp.JobRequest)
	return nil
}

func (p *Tracing) BeforeLoadModule(ctx context.Context, req *domain.JobHandlerRequest) error {
	event(ctx, "beforeLoadModule", req.JobRequest)
	return nil
}

func (p *Tracing) AfterLoadModule(ctx context.Context, req *domain.RenderHandlerRequest) error {
	event(ctx, "afterLoadModule", req.JobRequest)
	return nil
}

func (p *Tracing) BeforeRender(ctx context.Context, req *domain.RenderHandlerRequest) error {
	event(ctx, "beforeRender", req.JobRequest)
	return nil
}

func (p *Tracing) AfterRender(ctx context.Context, resp *domain.JobHandlerResponse) error {
	event(ctx, "afterRender", resp.JobRequest)
	return nil
}

func (p *Tracing) AfterRequestComplete(ctx context.Context, _ *domain.BatchHandlerRequest) error {
	event(ctx, "afterRequestComplete", nil)
	return nil
}
