package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/birddigital/avax-l1-explorer/internal/web/sse"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WSHandler streams broadcaster events to WebSocket clients as JSON frames
type WSHandler struct {
	broadcaster *sse.Broadcaster
	upgrader    websocket.Upgrader
	streamConfig
}

// NewWSHandler creates a WebSocket handler streaming events from b
func NewWSHandler(b *sse.Broadcaster, opts ...Option) *WSHandler {
	return &WSHandler{
		broadcaster: b,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // CORS middleware governs browser origins
			},
		},
		streamConfig: newStreamConfig(opts),
	}
}

// ServeHTTP upgrades the connection and streams events until either side
// closes it
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	topics, err := sse.ParseTopics(r.URL.Query().Get("events"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		h.logger.Debug().Err(err).Msg("ws_upgrade_failed")
		return
	}
	defer conn.Close()

	clientID := uuid.New().String()
	logger := h.logger.With().Str("client_id", clientID).Logger()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	client := h.broadcaster.Register(ctx, clientID, topics...)
	defer h.broadcaster.Unregister(clientID)
	defer h.track("ws")()

	go h.readPump(conn, cancel, logger)
	h.writePump(ctx, conn, client, logger)
}

// readPump drains client frames so pongs and close frames are processed.
// It cancels the connection context when the peer goes away.
func (h *WSHandler) readPump(conn *websocket.Conn, cancel context.CancelFunc, logger zerolog.Logger) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Warn().Err(err).Msg("ws_read_failed")
			}
			return
		}
	}
}

// writePump sends the connected frame, then events and pings
func (h *WSHandler) writePump(ctx context.Context, conn *websocket.Conn, client *sse.Client, logger zerolog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if err := h.writeEvent(conn, connectedEvent(client.ID)); err != nil {
		logger.Debug().Err(err).Msg("ws_initial_event_failed")
		return
	}

	for {
		select {
		case <-ctx.Done():
			h.writeClose(conn)
			return

		case event, ok := <-client.Messages:
			if !ok {
				h.writeClose(conn)
				return
			}
			if err := h.writeEvent(conn, event); err != nil {
				logger.Debug().Err(err).Msg("ws_write_failed")
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) writeEvent(conn *websocket.Conn, event sse.Event) error {
	data, err := event.JSON()
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (h *WSHandler) writeClose(conn *websocket.Conn) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
