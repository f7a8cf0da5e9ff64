package domain

import "sync"

// RenderPromise is a settle-once future for the HTML of one job.
type RenderPromise struct {
	once sync.Once
	done chan struct{}
	html string
	err  error
}

// NewRenderPromise creates a pending RenderPromise.
func NewRenderPromise() *RenderPromise {
	return &RenderPromise{done: make(chan struct{})}
}

// ResolvedRender returns a promise already fulfilled with html.
func ResolvedRender(html string) *RenderPromise {
	p := NewRenderPromise()
	p.Resolve(html)
	return p
}

// RejectedRender returns a promise already rejected with err.
func RejectedRender(err error) *RenderPromise {
	p := NewRenderPromise()
	p.Reject(err)
	return p
}

// Resolve fulfills the promise. Later calls to Resolve or Reject are ignored.
func (p *RenderPromise) Resolve(html string) {
	p.once.Do(func() {
		p.html = html
		close(p.done)
	})
}

// Reject rejects the promise. Later calls to Resolve or Reject are ignored.
func (p *RenderPromise) Reject(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Done returns a channel closed once the promise settles.
func (p *RenderPromise) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the promise settles and returns its outcome.
func (p *RenderPromise) Wait() (string, error) {
	<-p.done
	return p.html, p.err
}

// Then returns a promise that settles with the outcome of p once fn has run
// on that outcome.
func (p *RenderPromise) Then(fn func(html string, err error)) *RenderPromise {
	next := NewRenderPromise()
	go func() {
		html, err := p.Wait()
		fn(html, err)
		if err != nil {
			next.Reject(err)
			return
		}
		next.Resolve(html)
	}()
	return next
}
