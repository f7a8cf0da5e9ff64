package pipeline

import (
	"context"

	"go.trai.ch/bagel/internal/core/domain"
)

func (p *Pipeline) handleLoadModule(ctx context.Context, req *domain.JobHandlerRequest) (*domain.RenderHandlerRequest, error) {
	job := req.JobRequest
	sw := req.Stopwatch()
	d := domain.StopwatchDescriptor{
		ID:     job.JobID(),
		Name:   domain.LoadEventName(job.Name),
		Module: job.Name,
	}

	ctx, span := p.tracer.Start(ctx, "load "+job.Name)
	defer span.End()

	sw.Start(d)
	mod, err := p.loader.Load(ctx, job.Name, p.rootDir, req)
	sw.Stop(d)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &domain.RenderHandlerRequest{JobHandlerRequest: req, Module: mod}, nil
}
