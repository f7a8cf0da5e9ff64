package domain

import (
	"io"
	"sync"
)

// HTMLStream buffers the chunks of a streaming render. Writers never block;
// any number of readers replay the stream from its first byte and follow it
// until Close.
type HTMLStream struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []byte
	closed bool
	err    error
}

// NewHTMLStream creates an open, empty stream.
func NewHTMLStream() *HTMLStream {
	s := &HTMLStream{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Write appends p to the stream.
func (s *HTMLStream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, io.ErrClosedPipe
	}
	s.buf = append(s.buf, p...)
	s.cond.Broadcast()
	return len(p), nil
}

// Close ends the stream. Readers see err after the buffered bytes, or io.EOF
// when err is nil. Only the first Close counts.
func (s *HTMLStream) Close(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	s.cond.Broadcast()
}

// String returns everything written so far.
func (s *HTMLStream) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.buf)
}

// NewReader returns a reader positioned at the start of the stream.
func (s *HTMLStream) NewReader() io.Reader {
	return &htmlStreamReader{s: s}
}

type htmlStreamReader struct {
	s   *HTMLStream
	off int
}

func (r *htmlStreamReader) Read(p []byte) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for r.off >= len(s.buf) && !s.closed {
		s.cond.Wait()
	}
	if r.off < len(s.buf) {
		n := copy(p, s.buf[r.off:])
		r.off += n
		return n, nil
	}
	if s.err != nil {
		return 0, s.err
	}
	return 0, io.EOF
}
