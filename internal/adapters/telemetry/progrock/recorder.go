// Package progrock records pipeline spans as progrock vertices.
package progrock

import (
	"sync"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/bagel/internal/core/ports"
)

var _ ports.SpanSink = (*Recorder)(nil)

// Recorder implements ports.SpanSink on a progrock recording session.
// Each span becomes one vertex, keyed by the digest of its span id.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu       sync.Mutex
	vertices map[string]*progrock.VertexRecorder
}

// New creates a Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:        w,
		rec:      progrock.NewRecorder(w),
		vertices: make(map[string]*progrock.VertexRecorder),
	}
}

// OnSpanStart opens a vertex for the span.
func (r *Recorder) OnSpanStart(spanID, _, name string, _ time.Time) {
	v := r.rec.Vertex(digest.FromString(spanID), name)

	r.mu.Lock()
	r.vertices[spanID] = v
	r.mu.Unlock()
}

// OnSpanEnd completes the vertex of the span. Unknown span ids are ignored.
func (r *Recorder) OnSpanEnd(spanID string, _ time.Time, err error) {
	r.mu.Lock()
	v, ok := r.vertices[spanID]
	delete(r.vertices, spanID)
	r.mu.Unlock()

	if ok {
		v.Done(err)
	}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.w.Close()
}
