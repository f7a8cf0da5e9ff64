package progrock

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
	"go.trai.ch/bagel/internal/ui/style"
)

var _ progrock.Writer = (*LineWriter)(nil)

// LineWriter is a progrock.Writer printing one line per completed vertex.
type LineWriter struct {
	mu   sync.Mutex
	out  io.Writer
	done map[string]bool

	ok   lipgloss.Style
	fail lipgloss.Style
	dim  lipgloss.Style
}

// NewLineWriter creates a LineWriter printing to out.
func NewLineWriter(out io.Writer) *LineWriter {
	return &LineWriter{
		out:  out,
		done: make(map[string]bool),
		ok:   lipgloss.NewStyle().Foreground(style.Green),
		fail: lipgloss.NewStyle().Foreground(style.Red),
		dim:  lipgloss.NewStyle().Foreground(style.Slate),
	}
}

// WriteStatus prints the vertices of update that completed since the last call.
func (w *LineWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		if v.Completed == nil || w.done[v.Id] {
			continue
		}
		w.done[v.Id] = true

		var took time.Duration
		if v.Started != nil {
			took = v.Completed.AsTime().Sub(v.Started.AsTime())
		}
		elapsed := w.dim.Render(took.Round(time.Millisecond).String())

		var err error
		if v.Error != nil {
			_, err = fmt.Fprintf(w.out, "%s %s %s: %s\n", w.fail.Render(style.Cross), v.Name, elapsed, *v.Error)
		} else {
			_, err = fmt.Fprintf(w.out, "%s %s %s\n", w.ok.Render(style.Check), v.Name, elapsed)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Close does nothing.
func (w *LineWriter) Close() error {
	return nil
}
