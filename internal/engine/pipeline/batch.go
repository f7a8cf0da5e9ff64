package pipeline

import (
	"context"

	"go.trai.ch/bagel/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// handleBatch fans the jobs out and returns once every job has a response.
// Failed jobs are logged and answered with a rejected render promise.
func (p *Pipeline) handleBatch(ctx context.Context, req *domain.BatchHandlerRequest) (*domain.BatchHandlerResponse, error) {
	batch := req.BatchRequest
	sw := batch.Context.Stopwatch
	d := domain.StopwatchDescriptor{Name: domain.BatchEventName(), Async: true}
	sw.Start(d)

	ctx, span := p.tracer.Start(ctx, "batch")
	span.SetAttribute("bagel.jobs", len(batch.Jobs))

	ids := batch.JobIDs()
	responses := make([]*domain.JobResponse, len(ids))

	var g errgroup.Group
	if p.concurrency > 0 {
		g.SetLimit(p.concurrency)
	}
	for i, id := range ids {
		g.Go(func() error {
			resp, err := p.job(ctx, &domain.JobHandlerRequest{
				JobRequest:            batch.Jobs[id],
				ParentBatchRequest:    batch,
				JobResponseMetadata:   domain.NewMetadata(nil),
				BatchResponseMetadata: req.BatchResponseMetadata,
			})
			if err != nil {
				p.log.Error(err)
				responses[i] = &domain.JobResponse{
					Metadata:   domain.NewMetadata(nil),
					RenderDone: domain.RejectedRender(err),
				}
				return nil
			}
			responses[i] = resp.JobResponse
			return nil
		})
	}
	_ = g.Wait()

	settled := make(chan struct{})
	go func() {
		defer close(settled)
		var first error
		for _, resp := range responses {
			if _, err := resp.RenderDone.Wait(); err != nil && first == nil {
				first = err
			}
		}
		if first != nil {
			p.log.Error(first)
		}
		sw.Stop(d)
		span.End()
	}()

	jobs := make(map[string]*domain.JobResponse, len(ids))
	for i, id := range ids {
		jobs[id] = responses[i]
	}

	return &domain.BatchHandlerResponse{
		BatchRequest: batch,
		BatchResponse: &domain.BatchResponse{
			Jobs:     jobs,
			Metadata: domain.NewMetadata(nil),
			Settled:  settled,
		},
		BatchResponseMetadata: req.BatchResponseMetadata,
	}, nil
}
