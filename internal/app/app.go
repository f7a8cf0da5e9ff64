// Package app implements the application layer for bagel.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.trai.ch/bagel/internal/adapters/plugins"
	"go.trai.ch/bagel/internal/adapters/renderer"
	"go.trai.ch/bagel/internal/adapters/resolver"
	"go.trai.ch/bagel/internal/adapters/telemetry"
	"go.trai.ch/bagel/internal/adapters/transport"
	"go.trai.ch/bagel/internal/adapters/watcher"
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
	"go.trai.ch/bagel/internal/engine/hooks"
	"go.trai.ch/bagel/internal/engine/loader"
	"go.trai.ch/bagel/internal/engine/pipeline"
	"go.trai.ch/bagel/internal/engine/wire"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader  ports.ConfigLoader
	logger        ports.Logger
	tracer        ports.Tracer
	resolverCache *resolver.Cache
	watcher       ports.Watcher
	progress      ports.SpanSink
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	log ports.Logger,
	tracer ports.Tracer,
	resolverCache *resolver.Cache,
	w ports.Watcher,
	progress ports.SpanSink,
) *App {
	return &App{
		configLoader:  configLoader,
		logger:        log,
		tracer:        tracer,
		resolverCache: resolverCache,
		watcher:       w,
		progress:      progress,
	}
}

// ServeOptions configures Serve. Zero values keep the configured setting.
type ServeOptions struct {
	Dir        string
	ConfigPath string
	Addr       string
	Port       int
	Transport  string
	Watch      bool
}

// RenderOptions configures Render.
type RenderOptions struct {
	Dir        string
	ConfigPath string
	Input      io.Reader
	Output     io.Writer
	Progress   bool
}

// Serve runs the configured transport until ctx is done.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	cfg, err := a.loadConfig(opts.Dir, opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Port != 0 {
		cfg.Port = opts.Port
	}
	if opts.Transport != "" {
		cfg.Transport = opts.Transport
	}
	cfg.Watch = cfg.Watch || opts.Watch

	proc, ld, err := a.buildPipeline(cfg)
	if err != nil {
		return err
	}
	handler, err := transport.New(cfg.Transport, proc, a.logger)
	if err != nil {
		return err
	}

	addr := opts.Addr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.Port)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return transport.ListenAndServe(ctx, addr, handler, a.logger)
	})
	if cfg.Watch {
		inv := watcher.NewInvalidator(a.watcher, a.logger, ld, a.resolverCache)
		g.Go(func() error {
			return inv.Run(ctx, cfg.Root)
		})
	}
	return g.Wait()
}

// Render runs a single batch read from opts.Input and writes the server
// response to opts.Output.
func (a *App) Render(ctx context.Context, opts RenderOptions) error {
	cfg, err := a.loadConfig(opts.Dir, opts.ConfigPath)
	if err != nil {
		return err
	}

	if opts.Progress && a.progress != nil {
		tp := telemetry.Setup(telemetry.NewBridge(a.progress))
		defer func() {
			_ = tp.Shutdown(context.WithoutCancel(ctx))
		}()
	}

	proc, _, err := a.buildPipeline(cfg)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(opts.Input)
	if err != nil {
		return zerr.Wrap(err, "failed to read batch request")
	}

	req, err := wire.ParseBatch(body, a.logger.Warn)
	if err != nil {
		return a.fail(opts.Output, err)
	}
	resp, err := proc.HandleBatch(ctx, req)
	if err != nil {
		return a.fail(opts.Output, err)
	}
	resp.BatchResponse.Metadata.Merge(resp.BatchResponseMetadata.Snapshot())

	out, err := wire.ServerResponse(ctx, resp)
	if err != nil {
		return a.fail(opts.Output, err)
	}
	if err := wire.Encode(opts.Output, out); err != nil {
		return zerr.Wrap(err, "failed to write response")
	}

	return proc.AfterRequestComplete(ctx, &domain.BatchHandlerRequest{
		BatchRequest:          req.BatchRequest,
		BatchResponseMetadata: domain.NewMetadata(nil),
	})
}

func (a *App) fail(w io.Writer, err error) error {
	if encErr := wire.Encode(w, wire.ServerError(err, a.logger)); encErr != nil {
		return zerr.Wrap(encErr, "failed to write response")
	}
	return domain.ErrBatchFailed
}

// levelSetter is implemented by the logger adapter.
type levelSetter interface {
	SetLevel(level domain.LogLevel)
	SetJSON(enable bool)
}

func (a *App) loadConfig(dir, path string) (*domain.Config, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		dir = wd
	}

	cfg, err := a.configLoader.Load(dir, path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if ls, ok := a.logger.(levelSetter); ok {
		ls.SetLevel(cfg.Log.Level)
		ls.SetJSON(cfg.Log.JSON)
	}
	return cfg, nil
}

// buildPipeline assembles the config-dependent parts: loader, renderer, plugins and stages.
func (a *App) buildPipeline(cfg *domain.Config) (*pipeline.Pipeline, *loader.Loader, error) {
	ld, err := loader.FromConfig(cfg, a.logger, a.resolverCache)
	if err != nil {
		return nil, nil, err
	}
	rend, err := renderer.New(cfg.Renderer)
	if err != nil {
		return nil, nil, err
	}
	plugs, err := plugins.Build(cfg.Plugins, a.logger)
	if err != nil {
		return nil, nil, err
	}

	p := pipeline.New(ld, rend, hooks.New(plugs), a.tracer, a.logger,
		pipeline.WithRootDir(cfg.Root),
		pipeline.WithConcurrency(cfg.Concurrency),
	)
	return p, ld, nil
}

// Components holds what the command layer needs.
type Components struct {
	App          *App
	Logger       ports.Logger
	ConfigLoader ports.ConfigLoader
}
