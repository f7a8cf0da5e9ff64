package plugins

import (
	"context"

	"github.com/google/uuid"
	"go.trai.ch/bagel/internal/core/domain"
)

// UUID tags every job with a random uuid and copies it to the job response.
type UUID struct {
	newID func() string
}

// NewUUID creates a UUID plugin.
func NewUUID() *UUID {
	return &UUID{newID: uuid.NewString}
}

// Name implements ports.Plugin.
func (p *UUID) Name() string { return UUIDName }

// BeforeJob sets metadata.uuid on the job request.
func (p *UUID) BeforeJob(_ context.Context, req *domain.JobHandlerRequest) error {
	req.JobRequest.Metadata.Set("uuid", p.newID())
	return nil
}

// AfterRender copies the uuid into the response metadata.
func (p *UUID) AfterRender(_ context.Context, resp *domain.JobHandlerResponse) error {
	if id, ok := resp.JobRequest.Metadata.Get("uuid"); ok {
		resp.JobResponse.Metadata.Set("uuid", id)
	}
	return nil
}
