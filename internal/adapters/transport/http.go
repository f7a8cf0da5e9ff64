package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
	"go.trai.ch/bagel/internal/engine/wire"
	"go.trai.ch/zerr"
)

// maxBodyBytes bounds the size of one batch request.
const maxBodyBytes = 32 << 20

// HTTPHandler serves POST /batch and POST /batchStreaming.
type HTTPHandler struct {
	batchRunner
	mux *http.ServeMux
}

// NewHTTP creates the HTTP transport handler.
func NewHTTP(processor ports.BatchProcessor, log ports.Logger) *HTTPHandler {
	h := &HTTPHandler{
		batchRunner: batchRunner{processor: processor, log: log, now: time.Now},
		mux:         http.NewServeMux(),
	}
	h.mux.HandleFunc("POST /batch", h.handleBatch)
	h.mux.HandleFunc("POST /batchStreaming", h.handleBatchStreaming)
	return h
}

func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *HTTPHandler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.InvalidRequestError(zerr.Wrap(err, domain.ErrMalformedRequest.Error()), nil, domain.UnknownModuleName)
	}
	return body, nil
}

func (h *HTTPHandler) handleBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req *domain.BatchHandlerRequest
	defer func() { h.complete(ctx, req) }()

	body, err := h.readBody(w, r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	req, resp, err := h.run(ctx, body, r.Header.Get(wire.RequestStartHeader), nil)
	if err != nil {
		h.writeError(w, err)
		return
	}

	out, err := wire.ServerResponse(ctx, resp)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := wire.Encode(w, out); err != nil {
		h.log.Error(zerr.Wrap(err, "failed to write response"))
	}
}

func (h *HTTPHandler) handleBatchStreaming(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := h.readBody(w, r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	req, resp, err := h.run(ctx, body, r.Header.Get(wire.RequestStartHeader), nil)
	if err != nil {
		h.writeError(w, err)
		return
	}

	sw := &streamWriter{w: w, rc: http.NewResponseController(w)}
	for _, id := range req.BatchRequest.JobIDs() {
		if err := streamJob(ctx, sw, resp.BatchResponse.Jobs[id]); err != nil {
			if !sw.started {
				h.writeError(w, err)
				return
			}
			// Headers are gone; the client sees a truncated body.
			wire.ServerError(err, h.log)
			return
		}
	}
	h.complete(ctx, req)
}

// streamJob writes one job's html as it is produced and waits for its render to settle.
func streamJob(ctx context.Context, w *streamWriter, job *domain.JobResponse) error {
	if job == nil {
		return nil
	}
	if job.HTMLStream != nil {
		// A failed render stream also rejects the promise, which is checked below.
		if _, err := io.Copy(w, job.HTMLStream.NewReader()); err != nil {
			var wErr *writeError
			if errors.As(err, &wErr) {
				return wErr.err
			}
		}
	}

	select {
	case <-job.RenderDone.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	html, err := job.RenderDone.Wait()
	if err != nil {
		return err
	}
	if job.HTMLStream == nil && html != "" {
		if _, err := io.WriteString(w, html); err != nil {
			return err
		}
	}
	return nil
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	out := wire.ServerError(err, h.log)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = wire.EncodeCompact(w, out)
}

// streamWriter flushes after every write.
type streamWriter struct {
	w       http.ResponseWriter
	rc      *http.ResponseController
	started bool
}

type writeError struct{ err error }

func (e *writeError) Error() string { return e.err.Error() }
func (e *writeError) Unwrap() error { return e.err }

func (s *streamWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if !s.started {
		s.w.Header().Set("Content-Type", "text/html; charset=utf-8")
		s.started = true
	}
	n, err := s.w.Write(p)
	if err != nil {
		return n, &writeError{err: err}
	}
	if err := s.rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return n, &writeError{err: err}
	}
	return n, nil
}
