package ports

import (
	"context"

	"go.trai.ch/bagel/internal/core/domain"
)

// Renderer turns a loaded component and its props into HTML.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	Render(ctx context.Context, in *domain.RenderInput) (domain.RenderOutput, error)
}
