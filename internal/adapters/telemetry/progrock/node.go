package progrock

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/bagel/internal/core/ports"
)

// NodeID is the unique identifier for the progress sink node.
const NodeID graft.ID = "adapter.progress"

func init() {
	graft.Register(graft.Node[ports.SpanSink]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SpanSink, error) {
			return NewRecorder(NewLineWriter(os.Stderr)), nil
		},
	})
}
