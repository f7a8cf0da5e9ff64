package domain_test

import (
	"errors"
	"io"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bagel/internal/core/domain"
)

func TestHTMLStream_ReplaysFromStart(t *testing.T) {
	s := domain.NewHTMLStream()
	_, err := s.Write([]byte("<div>"))
	require.NoError(t, err)
	_, err = s.Write([]byte("</div>"))
	require.NoError(t, err)
	s.Close(nil)

	for range 2 {
		out, err := io.ReadAll(s.NewReader())
		require.NoError(t, err)
		assert.Equal(t, "<div></div>", string(out))
	}
	assert.Equal(t, "<div></div>", s.String())
}

func TestHTMLStream_ReaderFollowsWriter(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s := domain.NewHTMLStream()
		done := make(chan string)

		go func() {
			out, _ := io.ReadAll(s.NewReader())
			done <- string(out)
		}()

		synctest.Wait()
		_, _ = s.Write([]byte("a"))
		synctest.Wait()
		_, _ = s.Write([]byte("b"))
		s.Close(nil)

		assert.Equal(t, "ab", <-done)
	})
}

func TestHTMLStream_CloseWithError(t *testing.T) {
	s := domain.NewHTMLStream()
	boom := errors.New("boom")
	_, _ = s.Write([]byte("partial"))
	s.Close(boom)
	s.Close(nil)

	out, err := io.ReadAll(s.NewReader())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "partial", string(out))

	_, err = s.Write([]byte("late"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
