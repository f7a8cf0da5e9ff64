package ports

import (
	"context"

	"go.trai.ch/bagel/internal/core/domain"
)

//go:generate mockgen -source=plugin.go -destination=mocks/mock_plugin.go -package=mocks

// Plugin is a named bundle of lifecycle hooks. A plugin implements any subset
// of the hook interfaces below; hooks it does not implement are skipped.
type Plugin interface {
	Name() string
}

// BeforeBatchHook runs before the jobs of a batch are launched.
type BeforeBatchHook interface {
	BeforeBatch(ctx context.Context, req *domain.BatchHandlerRequest) error
}

// AfterBatchHook runs once every job of a batch has been launched.
type AfterBatchHook interface {
	AfterBatch(ctx context.Context, resp *domain.BatchHandlerResponse) error
}

// BeforeJobHook runs before a job starts loading.
type BeforeJobHook interface {
	BeforeJob(ctx context.Context, req *domain.JobHandlerRequest) error
}

// AfterJobHook runs after a job produced its response.
type AfterJobHook interface {
	AfterJob(ctx context.Context, resp *domain.JobHandlerResponse) error
}

// BeforeLoadModuleHook runs before the root module of a job is loaded.
type BeforeLoadModuleHook interface {
	BeforeLoadModule(ctx context.Context, req *domain.JobHandlerRequest) error
}

// AfterLoadModuleHook runs after the root module of a job was loaded.
type AfterLoadModuleHook interface {
	AfterLoadModule(ctx context.Context, req *domain.RenderHandlerRequest) error
}

// BeforeRenderHook runs before the loaded module is rendered.
type BeforeRenderHook interface {
	BeforeRender(ctx context.Context, req *domain.RenderHandlerRequest) error
}

// AfterRenderHook runs after rendering was started.
type AfterRenderHook interface {
	AfterRender(ctx context.Context, resp *domain.JobHandlerResponse) error
}

// AfterRequestCompleteHook runs once the transport delivered the response.
type AfterRequestCompleteHook interface {
	AfterRequestComplete(ctx context.Context, req *domain.BatchHandlerRequest) error
}
