package ports

import (
	"context"

	"go.trai.ch/bagel/internal/core/domain"
)

//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks

// ModuleLoader loads a root module and its dependency graph into a fresh runtime.
type ModuleLoader interface {
	// Load resolves name relative to rootDir and executes it.
	// reqCtx is handed to every resolver and interceptor of the graph.
	Load(ctx context.Context, name, rootDir string, reqCtx any) (*domain.Module, error)
}

// Transformer rewrites module source before compilation.
type Transformer interface {
	Transform(in domain.TransformInput) domain.TransformResult
}
