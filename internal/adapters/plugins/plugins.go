// Package plugins provides the built-in pipeline plugins.
package plugins

import (
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
)

// Plugin names accepted in the configuration.
const (
	LifecycleName    = "lifecycle"
	UUIDName         = "uuid"
	InitialPropsName = "initialProps"
	TracingName      = "tracing"
)

// Build returns the default plugins followed by the named ones, in order.
func Build(names []string, log ports.Logger) ([]ports.Plugin, error) {
	out := []ports.Plugin{NewLifecycle(log), NewUUID()}
	for _, name := range names {
		switch name {
		case LifecycleName, UUIDName:
			// Always installed first.
		case InitialPropsName:
			out = append(out, NewInitialProps())
		case TracingName:
			out = append(out, NewTracing())
		default:
			return nil, domain.Annotate(domain.ErrUnknownPlugin, "plugin", name)
		}
	}
	return out, nil
}
