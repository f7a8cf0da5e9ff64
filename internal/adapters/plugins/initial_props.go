package plugins

import (
	"context"

	"github.com/dop251/goja"
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/zerr"
)

// ErrInitialPropsNotObject is returned when getInitialProps resolves to something other than an object.
var ErrInitialPropsNotObject = zerr.New("getInitialProps did not resolve to an object")

// InitialProps replaces the props of a job with the result of the module's
// getInitialProps export, when it has one.
type InitialProps struct{}

// NewInitialProps creates an InitialProps plugin.
func NewInitialProps() *InitialProps {
	return &InitialProps{}
}

// Name implements ports.Plugin.
func (p *InitialProps) Name() string { return InitialPropsName }

// BeforeRender calls getInitialProps with the current props and records the
// result as finalProps.
func (p *InitialProps) BeforeRender(_ context.Context, req *domain.RenderHandlerRequest) error {
	fn, ok := req.Module.Func("getInitialProps")
	if !ok {
		return nil
	}

	job := req.JobRequest
	sw := req.Stopwatch()
	d := domain.StopwatchDescriptor{
		ID:     job.JobID(),
		Name:   domain.InitialPropsEventName(job.Name),
		Module: job.Name,
		Async:  true,
	}
	sw.Start(d)

	rt := req.Module.Runtime
	props := job.Props
	if props == nil {
		props = map[string]any{}
	}
	v, err := fn(goja.Undefined(), rt.ToValue(props))
	if err == nil {
		v, err = domain.Await(v)
	}
	sw.Stop(d)
	if err != nil {
		return err
	}

	finalProps, ok := v.Export().(map[string]any)
	if !ok {
		return domain.Annotate(ErrInitialPropsNotObject, "module", job.Name)
	}
	req.JobResponseMetadata.Set("finalProps", finalProps)
	job.Props = finalProps
	return nil
}
