// Package pipeline runs batches of jobs through loading and rendering,
// with plugin hooks around every stage.
package pipeline

import (
	"context"

	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
	"go.trai.ch/bagel/internal/engine/hooks"
)

var _ ports.BatchProcessor = (*Pipeline)(nil)

type (
	loadModuleHandler = hooks.Handler[*domain.JobHandlerRequest, *domain.RenderHandlerRequest]
	renderHandler     = hooks.Handler[*domain.RenderHandlerRequest, *domain.JobHandlerResponse]
	jobHandler        = hooks.Handler[*domain.JobHandlerRequest, *domain.JobHandlerResponse]
	batchHandler      = hooks.Handler[*domain.BatchHandlerRequest, *domain.BatchHandlerResponse]
)

// Pipeline is the batch processor. Its stages are composed once in New.
type Pipeline struct {
	loader   ports.ModuleLoader
	renderer ports.Renderer
	hooks    *hooks.Hooks
	tracer   ports.Tracer
	log      ports.Logger

	rootDir     string
	concurrency int

	loadModule loadModuleHandler
	render     renderHandler
	job        jobHandler
	batch      batchHandler
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRootDir sets the directory root module names are resolved from.
func WithRootDir(dir string) Option {
	return func(p *Pipeline) { p.rootDir = dir }
}

// WithConcurrency bounds the number of jobs of a batch that run at once.
// Zero or less means unbounded.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) { p.concurrency = n }
}

// New composes the load, render, job and batch stages with the hooks of h.
func New(
	loader ports.ModuleLoader,
	renderer ports.Renderer,
	h *hooks.Hooks,
	tracer ports.Tracer,
	log ports.Logger,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		loader:   loader,
		renderer: renderer,
		hooks:    h,
		tracer:   tracer,
		log:      log,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.loadModule = hooks.Wrap(h.BeforeLoadModule, h.AfterLoadModule, p.handleLoadModule,
		func(req *domain.JobHandlerRequest, err error) *domain.ErrorResponse {
			return domain.LoadModuleError(err, req.JobRequest.Metadata, req.JobRequest.Name)
		})
	p.render = hooks.Wrap(h.BeforeRender, h.AfterRender, p.handleRender,
		func(req *domain.RenderHandlerRequest, err error) *domain.ErrorResponse {
			return domain.RenderError(err, req.JobRequest.Metadata, req.JobRequest.Name)
		})
	p.job = hooks.Wrap(h.BeforeJob, h.AfterJob, p.handleJob,
		func(req *domain.JobHandlerRequest, err error) *domain.ErrorResponse {
			return domain.JobError(err, req.JobRequest.Metadata, req.JobRequest.Name)
		})
	p.batch = hooks.Wrap(h.BeforeBatch, h.AfterBatch, p.handleBatch,
		func(req *domain.BatchHandlerRequest, err error) *domain.ErrorResponse {
			return domain.BatchError(err, req.BatchRequest.Context, 0)
		})

	return p
}

// HandleBatch launches every job of the batch and returns once all of them
// have a response. Rendering may still be in progress.
func (p *Pipeline) HandleBatch(ctx context.Context, req *domain.BatchHandlerRequest) (*domain.BatchHandlerResponse, error) {
	return p.batch(ctx, req)
}

// AfterRequestComplete runs the after-request hooks.
func (p *Pipeline) AfterRequestComplete(ctx context.Context, req *domain.BatchHandlerRequest) error {
	return p.hooks.AfterRequestComplete.Run(ctx, req)
}
