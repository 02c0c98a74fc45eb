// Package handlers serves the live event stream over Server-Sent Events and
// WebSocket.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/birddigital/avax-l1-explorer/internal/web/sse"
)

const connectedMessage = "Connected to Avalanche L1 explorer"

// StreamMetrics tracks connected stream clients; implemented by
// *metrics.APIMetrics
type StreamMetrics interface {
	StreamConnected(transport string) (disconnected func())
}

// Option configures a stream handler
type Option func(*streamConfig)

type streamConfig struct {
	logger  zerolog.Logger
	metrics StreamMetrics
}

// WithLogger sets the handler logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *streamConfig) { c.logger = logger }
}

// WithMetrics tracks connected clients
func WithMetrics(m StreamMetrics) Option {
	return func(c *streamConfig) { c.metrics = m }
}

func newStreamConfig(opts []Option) streamConfig {
	c := streamConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c streamConfig) track(transport string) func() {
	if c.metrics == nil {
		return func() {}
	}
	return c.metrics.StreamConnected(transport)
}

// connectedEvent is the first event a new client receives
func connectedEvent(clientID string) sse.Event {
	return sse.Event{
		Type: sse.EventTypeConnected,
		Data: sse.ConnectedData{
			ClientID:  clientID,
			Message:   connectedMessage,
			Timestamp: time.Now().Unix(),
		},
	}
}

// SSEHandler handles Server-Sent Events connections
type SSEHandler struct {
	broadcaster *sse.Broadcaster
	streamConfig
}

// NewSSEHandler creates an SSE handler streaming events from b
func NewSSEHandler(b *sse.Broadcaster, opts ...Option) *SSEHandler {
	return &SSEHandler{
		broadcaster:  b,
		streamConfig: newStreamConfig(opts),
	}
}

// ServeHTTP implements http.Handler for SSE endpoint
func (h *SSEHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Verify SSE support
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	topics, err := sse.ParseTopics(r.URL.Query().Get("events"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	clientID := uuid.New().String()
	logger := h.logger.With().Str("client_id", clientID).Logger()

	client := h.broadcaster.Register(r.Context(), clientID, topics...)
	defer h.broadcaster.Unregister(clientID)
	defer h.track("sse")()

	if err := h.sendEvent(w, flusher, connectedEvent(clientID)); err != nil {
		logger.Debug().Err(err).Msg("sse_initial_event_failed")
		return
	}

	// Stream events to client
	for {
		select {
		case <-r.Context().Done():
			return

		case event, ok := <-client.Messages:
			if !ok {
				logger.Debug().Msg("sse_client_channel_closed")
				return
			}

			if err := h.sendEvent(w, flusher, event); err != nil {
				logger.Debug().Err(err).Msg("sse_write_failed")
				return
			}
		}
	}
}

// sendEvent sends a single event to the client
func (h *SSEHandler) sendEvent(w http.ResponseWriter, flusher http.Flusher, event sse.Event) error {
	formatted, err := event.Format()
	if err != nil {
		return fmt.Errorf("format event: %w", err)
	}

	if _, err := fmt.Fprint(w, formatted); err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	flusher.Flush()
	return nil
}
