package watcher

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/bagel/internal/core/ports"
)

// Invalidator purges caches whenever sources under a root change.
type Invalidator struct {
	watcher ports.Watcher
	caches  []ports.Purger
	log     ports.Logger
	window  time.Duration
}

// NewInvalidator creates an Invalidator purging caches on events from w.
func NewInvalidator(w ports.Watcher, log ports.Logger, caches ...ports.Purger) *Invalidator {
	return &Invalidator{
		watcher: w,
		caches:  caches,
		log:     log,
		window:  DefaultWindow,
	}
}

// WithWindow sets the debounce window.
func (i *Invalidator) WithWindow(window time.Duration) *Invalidator {
	i.window = window
	return i
}

// Run watches root until ctx is done or the watcher stops. Pending changes are
// flushed before Run returns.
func (i *Invalidator) Run(ctx context.Context, root string) error {
	if err := i.watcher.Start(ctx, root); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() { _ = i.watcher.Stop() })
	defer stop()

	d := NewDebouncer(i.window, i.purge)
	for ev := range i.watcher.Events() {
		d.Add(ev.Path)
	}
	d.Flush()
	return nil
}

func (i *Invalidator) purge(paths []string) {
	for _, c := range i.caches {
		c.Purge()
	}
	if i.log != nil {
		i.log.Debug(fmt.Sprintf("sources changed, purged module caches (%d paths)", len(paths)))
	}
}
