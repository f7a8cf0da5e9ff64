package pipeline

import (
	"context"
	"io"

	"go.trai.ch/bagel/internal/core/domain"
)

// handleRender never fails. Renderer errors reject the render promise.
func (p *Pipeline) handleRender(ctx context.Context, req *domain.RenderHandlerRequest) (*domain.JobHandlerResponse, error) {
	job := req.JobRequest
	sw := req.Stopwatch()
	d := domain.StopwatchDescriptor{
		ID:     job.JobID(),
		Name:   domain.RenderEventName(job.Name),
		Module: job.Name,
	}

	ctx, span := p.tracer.Start(ctx, "render "+job.Name)
	sw.Start(d)

	promise, stream := p.startRender(ctx, req)
	promise = promise.Then(func(_ string, err error) {
		if err != nil {
			span.RecordError(err)
		}
		sw.Stop(d)
		span.End()
	})

	metadata := domain.NewMetadata(map[string]any{"name": job.Name})
	metadata.Merge(req.JobResponseMetadata.Snapshot())

	return &domain.JobHandlerResponse{
		JobRequest: job,
		JobResponse: &domain.JobResponse{
			Metadata:   metadata,
			RenderDone: promise,
			HTMLStream: stream,
		},
		ParentBatchRequest:    req.ParentBatchRequest,
		BatchResponseMetadata: req.BatchResponseMetadata,
	}, nil
}

func (p *Pipeline) startRender(ctx context.Context, req *domain.RenderHandlerRequest) (*domain.RenderPromise, *domain.HTMLStream) {
	job := req.JobRequest
	renderErr := func(err error) error {
		if typed, ok := domain.AsErrorResponse(err); ok {
			return typed
		}
		return domain.RenderError(err, job.Metadata, job.Name)
	}

	out, err := p.renderer.Render(ctx, &domain.RenderInput{
		Component:             req.Module,
		Props:                 job.Props,
		JobRequest:            job,
		ParentBatchRequest:    req.ParentBatchRequest,
		JobResponseMetadata:   req.JobResponseMetadata,
		BatchResponseMetadata: req.BatchResponseMetadata,
	})
	if err != nil {
		return domain.RejectedRender(renderErr(err)), nil
	}
	if out.Stream == nil {
		return domain.ResolvedRender(out.HTML), nil
	}

	promise := domain.NewRenderPromise()
	stream := domain.NewHTMLStream()
	go drain(out.Stream, stream, promise, renderErr)
	return promise, stream
}

// drain copies a render stream into the job's HTML stream and settles the
// promise once the renderer is done.
func drain(src io.Reader, dst *domain.HTMLStream, promise *domain.RenderPromise, renderErr func(error) error) {
	_, err := io.Copy(dst, src)
	if c, ok := src.(io.Closer); ok {
		_ = c.Close()
	}
	dst.Close(err)
	if err != nil {
		promise.Reject(renderErr(err))
		return
	}
	promise.Resolve(dst.String())
}
