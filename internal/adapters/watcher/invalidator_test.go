package watcher_test

import (
	"context"
	"errors"
	"iter"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/require"
	"go.trai.ch/bagel/internal/adapters/watcher"
	"go.trai.ch/bagel/internal/core/ports"
	"go.trai.ch/bagel/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func seqOf(events ...ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for _, ev := range events {
			if !yield(ev) {
				return
			}
		}
	}
}

func TestInvalidator_PurgesCaches(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		w := mocks.NewMockWatcher(ctrl)
		wrappers := mocks.NewMockPurger(ctrl)
		resolved := mocks.NewMockPurger(ctrl)
		log := mocks.NewMockLogger(ctrl)

		w.EXPECT().Start(gomock.Any(), "/components").Return(nil)
		w.EXPECT().Events().Return(seqOf(
			ports.WatchEvent{Path: "/components/a.js", Operation: ports.OpWrite},
			ports.WatchEvent{Path: "/components/b.js", Operation: ports.OpCreate},
		))
		w.EXPECT().Stop().Return(nil).AnyTimes()
		wrappers.EXPECT().Purge()
		resolved.EXPECT().Purge()
		log.EXPECT().Debug("sources changed, purged module caches (2 paths)")

		inv := watcher.NewInvalidator(w, log, wrappers, resolved)
		require.NoError(t, inv.Run(context.Background(), "/components"))
	})
}

func TestInvalidator_StartError(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockWatcher(ctrl)
	w.EXPECT().Start(gomock.Any(), "/components").Return(errors.New("no such dir"))

	err := watcher.NewInvalidator(w, nil).Run(context.Background(), "/components")
	require.EqualError(t, err, "no such dir")
}

func TestInvalidator_StopsOnCancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		w := mocks.NewMockWatcher(ctrl)

		events := make(chan ports.WatchEvent)
		w.EXPECT().Start(gomock.Any(), "/components").Return(nil)
		w.EXPECT().Events().Return(func(yield func(ports.WatchEvent) bool) {
			for ev := range events {
				if !yield(ev) {
					return
				}
			}
		})
		w.EXPECT().Stop().DoAndReturn(func() error {
			close(events)
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- watcher.NewInvalidator(w, nil).Run(ctx, "/components") }()

		synctest.Wait()
		cancel()
		require.NoError(t, <-done)
	})
}
