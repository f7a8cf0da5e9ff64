// Package transport exposes the batch processor over HTTP and WebSocket.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
	"go.trai.ch/bagel/internal/engine/wire"
	"go.trai.ch/zerr"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// New returns the handler for the named transport.
func New(kind string, processor ports.BatchProcessor, log ports.Logger) (http.Handler, error) {
	switch kind {
	case domain.TransportHTTP, "":
		return NewHTTP(processor, log), nil
	case domain.TransportWebSocket:
		return NewWebSocket(processor, log), nil
	default:
		return nil, domain.Annotate(domain.ErrUnknownTransport, "transport", kind)
	}
}

// Serve serves h on ln until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, log ports.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(fmt.Sprintf("listening on %s", ln.Addr()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return zerr.Wrap(err, "server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(err, "server shutdown failed")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.Wrap(err, "server failed")
	}
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, log ports.Logger) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", addr)
	}
	return Serve(ctx, ln, h, log)
}

// batchRunner holds what both transports share: parsing, processing and the
// after-request hook.
type batchRunner struct {
	processor ports.BatchProcessor
	log       ports.Logger
	now       func() time.Time
}

// run parses body and hands it to the processor. The returned request is nil
// when body could not be parsed.
func (b *batchRunner) run(
	ctx context.Context,
	body []byte,
	requestStart string,
	prepare func(*domain.BatchHandlerRequest),
) (*domain.BatchHandlerRequest, *domain.BatchHandlerResponse, error) {
	req, err := wire.ParseBatch(body, b.log.Warn)
	if err != nil {
		return nil, nil, err
	}
	wire.RecordRequestOverhead(req.BatchRequest.Context.Stopwatch, requestStart, b.now())
	if prepare != nil {
		prepare(req)
	}

	resp, err := b.processor.HandleBatch(ctx, req)
	if err != nil {
		return req, nil, err
	}
	if resp.BatchResponse.Metadata == nil {
		resp.BatchResponse.Metadata = domain.NewMetadata(nil)
	}
	resp.BatchResponse.Metadata.Merge(resp.BatchResponseMetadata.Snapshot())
	return req, resp, nil
}

// complete runs the after-request hooks for a parsed request.
func (b *batchRunner) complete(ctx context.Context, req *domain.BatchHandlerRequest) {
	if req == nil {
		return
	}
	done := &domain.BatchHandlerRequest{
		BatchRequest:          req.BatchRequest,
		BatchResponseMetadata: domain.NewMetadata(nil),
	}
	if err := b.processor.AfterRequestComplete(context.WithoutCancel(ctx), done); err != nil {
		b.log.Error(zerr.Wrap(err, "afterRequestComplete failed"))
	}
}
