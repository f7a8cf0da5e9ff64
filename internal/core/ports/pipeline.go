package ports

import (
	"context"

	"go.trai.ch/bagel/internal/core/domain"
)

// BatchProcessor runs batches through the plugin hook pipeline.
//
//go:generate mockgen -source=pipeline.go -destination=mocks/mock_pipeline.go -package=mocks
type BatchProcessor interface {
	// HandleBatch launches every job of the batch. It returns without waiting
	// for rendering; each job response carries its own render promise.
	HandleBatch(ctx context.Context, req *domain.BatchHandlerRequest) (*domain.BatchHandlerResponse, error)

	// AfterRequestComplete runs the after-request hooks once the response was delivered.
	AfterRequestComplete(ctx context.Context, req *domain.BatchHandlerRequest) error
}
