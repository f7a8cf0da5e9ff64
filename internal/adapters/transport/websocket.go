package transport

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.trai.ch/bagel/internal/core/domain"
	"go.trai.ch/bagel/internal/core/ports"
	"go.trai.ch/bagel/internal/engine/wire"
	"go.trai.ch/zerr"
)

// ConnMetadataKey is the batch context metadata key holding the *websocket.Conn.
const ConnMetadataKey = "ws"

const writeWait = 10 * time.Second

// WebSocketHandler serves one batch per connection: the first message is the
// request, the reply is the response, then the connection is closed.
type WebSocketHandler struct {
	batchRunner
	upgrader websocket.Upgrader
}

// NewWebSocket creates the WebSocket transport handler.
func NewWebSocket(processor ports.BatchProcessor, log ports.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		batchRunner: batchRunner{processor: processor, log: log, now: time.Now},
		upgrader: websocket.Upgrader{
			// Callers are servers, not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		h.log.Debug("websocket upgrade failed: " + err.Error())
		return
	}
	ctx := r.Context()
	conn.SetReadLimit(maxBodyBytes)

	var req *domain.BatchHandlerRequest
	defer func() {
		_ = conn.Close()
		h.complete(ctx, req)
	}()

	_, msg, err := conn.ReadMessage()
	if err != nil {
		h.log.Debug("websocket closed before a request arrived: " + err.Error())
		return
	}

	req, resp, err := h.run(ctx, msg, r.Header.Get(wire.RequestStartHeader), func(req *domain.BatchHandlerRequest) {
		req.BatchRequest.Context.Metadata.Set(ConnMetadataKey, conn)
	})

	var payload []byte
	if err == nil {
		var out *wire.Response
		if out, err = wire.ServerResponse(ctx, resp); err == nil {
			payload, err = wire.Marshal(out, true)
		}
	}
	if err != nil {
		payload, _ = wire.Marshal(wire.ServerError(err, h.log), false)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		h.log.Error(zerr.Wrap(err, "failed to write websocket response"))
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
