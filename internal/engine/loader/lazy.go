package loader

import "go.trai.ch/bagel/internal/core/domain"

// LazyLoadTimer times requires issued while a job renders under the job's
// lazy loading event. Request contexts other than a job request are ignored.
func LazyLoadTimer(reqCtx any) func() {
	req, ok := reqCtx.(*domain.JobHandlerRequest)
	if !ok || req.ParentBatchRequest == nil || req.ParentBatchRequest.Context == nil {
		return func() {}
	}

	sw := req.Stopwatch()
	d := domain.StopwatchDescriptor{
		ID:     req.JobRequest.JobID(),
		Name:   domain.LazyLoadEventName(req.JobRequest.Name),
		Module: req.JobRequest.Name,
	}
	sw.Start(d)
	return func() { sw.Stop(d) }
}
