package plugins

import (
	"context"

	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
)

// Lifecycle logs a debug line for every hook.
type Lifecycle struct {
	log ports.Logger
}

// NewLifecycle creates a Lifecycle plugin logging to log.
func NewLifecycle(log ports.Logger) *Lifecycle {
	return &Lifecycle{log: log}
}

// Name implements ports.Plugin.
func (p *Lifecycle) Name() string { return LifecycleName }

func (p *Lifecycle) BeforeBatch(context.Context, *domain.BatchHandlerRequest) error {
	p.log.Debug("beforeBatch")
	return nil
}

func (p *Lifecycle) BeforeJob(_ context.Context, req *domain.JobHandlerRequest) error {
	p.log.Debug("beforeJob. Name: " + req.JobRequest.Name)
	return nil
}

func (p *Lifecycle) BeforeLoadModule(_ context.Context, req *domain.JobHandlerRequest) error {
	p.log.Debug("beforeLoadModule. Name: " + req.JobRequest.Name)
	return nil
}

func (p *Lifecycle) AfterLoadModule(_ context.Context, req *domain.RenderHandlerRequest) error {
	p.log.Debug("afterLoadModule. Name: " + req.JobRequest.Name)
	return nil
}

func (p *Lifecycle) BeforeRender(_ context.Context, req *domain.RenderHandlerRequest) error {
	p.log.Debug("beforeRender. Name: " + req.JobRequest.Name)
	return nil
}

func (p *Lifecycle) AfterRender(_ context.Context, resp *domain.JobHandlerResponse) error {
	p.log.Debug("afterRender. Name: " + resp.JobRequest.Name)
	return nil
}

func (p *Lifecycle) AfterJob(_ context.Context, resp *domain.JobHandlerResponse) error {
	p.log.Debug("afterJob. Name: " + resp.JobRequest.Name)
	return nil
}

func (p *Lifecycle) AfterBatch(context.Context, *domain.BatchHandlerResponse) error {
	p.log.Debug("afterBatch")
	return nil
}
