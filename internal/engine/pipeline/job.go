package pipeline

import (
	"context"

	"go.trai.ch/bagel/internal/core/domain"
)

// handleJob loads and renders one job. A failed load produces a response
// whose render promise is rejected with the load error.
func (p *Pipeline) handleJob(ctx context.Context, req *domain.JobHandlerRequest) (*domain.JobHandlerResponse, error) {
	job := req.JobRequest
	sw := req.Stopwatch()
	d := domain.StopwatchDescriptor{
		ID:     job.JobID(),
		Name:   domain.JobEventName(job.Name),
		Module: job.Name,
		Async:  true,
	}
	sw.Start(d)

	ctx, span := p.tracer.Start(ctx, "job "+job.Name)
	span.SetAttribute("bagel.job_id", job.JobID())

	resp, err := p.loadAndRender(ctx, req)
	if err != nil {
		span.RecordError(err)
		resp = &domain.JobHandlerResponse{
			JobRequest: job,
			JobResponse: &domain.JobResponse{
				Metadata:   domain.NewMetadata(map[string]any{"name": job.Name}),
				RenderDone: domain.RejectedRender(err),
			},
			ParentBatchRequest:    req.ParentBatchRequest,
			BatchResponseMetadata: req.BatchResponseMetadata,
		}
	}

	resp.JobResponse.RenderDone = resp.JobResponse.RenderDone.Then(func(string, error) {
		sw.Stop(d)
		span.End()
	})

	return resp, nil
}

func (p *Pipeline) loadAndRender(ctx context.Context, req *domain.JobHandlerRequest) (*domain.JobHandlerResponse, error) {
	renderReq, err := p.loadModule(ctx, req)
	if err != nil {
		return nil, err
	}
	return p.render(ctx, renderReq)
}
