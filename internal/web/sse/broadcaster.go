package sse

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// DefaultHeartbeatInterval is the period of heartbeat events
const DefaultHeartbeatInterval = 30 * time.Second

const (
	// clientBuffer is the number of events queued per client before it is
	// considered too slow and disconnected
	clientBuffer = 32
	// queueSize bounds events waiting for fan-out
	queueSize = 100
)

// Client is one stream subscriber. Messages is closed once the broadcaster
// drops the client.
type Client struct {
	ID       string
	Messages chan Event

	topics map[EventType]struct{}
	ctx    context.Context
	cancel context.CancelFunc
}

// Done is closed when the client is removed or its context ends
func (c *Client) Done() <-chan struct{} {
	return c.ctx.Done()
}

// wants reports whether the client subscribed to t. A client without
// topics gets everything; heartbeats reach every client.
func (c *Client) wants(t EventType) bool {
	if len(c.topics) == 0 || t == EventTypeHeartbeat {
		return true
	}
	_, ok := c.topics[t]
	return ok
}

// Option configures a Broadcaster
type Option func(*Broadcaster)

// WithLogger sets the broadcaster logger
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Broadcaster) { b.logger = logger }
}

// WithHeartbeat sets the heartbeat interval
func WithHeartbeat(interval time.Duration) Option {
	return func(b *Broadcaster) { b.heartbeatInterval = interval }
}

// Broadcaster fans events out to stream clients. A single goroutine owns
// the client set; everything else talks to it over channels.
type Broadcaster struct {
	joins  chan *Client
	leaves chan string
	events chan Event

	connected atomic.Int64

	heartbeatInterval time.Duration
	logger            zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewBroadcaster creates a broadcaster whose loop runs until ctx ends or
// Shutdown is called
func NewBroadcaster(ctx context.Context, opts ...Option) *Broadcaster {
	ctx, cancel := context.WithCancel(ctx)

	b := &Broadcaster{
		joins:             make(chan *Client),
		leaves:            make(chan string),
		events:            make(chan Event, queueSize),
		heartbeatInterval: DefaultHeartbeatInterval,
		logger:            zerolog.Nop(),
		ctx:               ctx,
		cancel:            cancel,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.heartbeatInterval <= 0 {
		b.heartbeatInterval = DefaultHeartbeatInterval
	}

	go b.loop()
	return b
}

func (b *Broadcaster) loop() {
	clients := make(map[string]*Client)
	heartbeat := time.NewTicker(b.heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-b.ctx.Done():
			for id := range clients {
				b.drop(clients, id)
			}
			b.logger.Info().Msg("stream_broadcaster_shutdown")
			return

		case c := <-b.joins:
			if _, taken := clients[c.ID]; taken {
				b.drop(clients, c.ID)
			}
			clients[c.ID] = c
			b.connected.Store(int64(len(clients)))
			b.logger.Debug().Str("client_id", c.ID).Int("total", len(clients)).Msg("stream_client_connected")

		case id := <-b.leaves:
			if _, ok := clients[id]; ok {
				b.drop(clients, id)
			}

		case e := <-b.events:
			b.fanOut(clients, e)

		case t := <-heartbeat.C:
			b.fanOut(clients, Event{Type: EventTypeHeartbeat, Data: HeartbeatData{Timestamp: t.Unix()}})
		}
	}
}

// fanOut delivers e to every interested client, dropping the ones that
// went away or cannot keep up
func (b *Broadcaster) fanOut(clients map[string]*Client, e Event) {
	for id, c := range clients {
		if c.ctx.Err() != nil {
			b.drop(clients, id)
			continue
		}
		if !c.wants(e.Type) {
			continue
		}

		select {
		case c.Messages <- e:
		default:
			b.logger.Warn().Str("client_id", id).Str("event", string(e.Type)).Msg("stream_client_too_slow")
			b.drop(clients, id)
		}
	}
}

// drop must only be called from loop
func (b *Broadcaster) drop(clients map[string]*Client, id string) {
	c := clients[id]
	delete(clients, id)
	c.cancel()
	close(c.Messages)
	b.connected.Store(int64(len(clients)))
	b.logger.Debug().Str("client_id", id).Int("total", len(clients)).Msg("stream_client_disconnected")
}

// Register subscribes a client to the given event types, or to every type
// when none are given. The client is dropped when ctx ends. After shutdown
// the returned client is already closed.
func (b *Broadcaster) Register(ctx context.Context, clientID string, topics ...EventType) *Client {
	clientCtx, cancel := context.WithCancel(ctx)

	c := &Client{
		ID:       clientID,
		Messages: make(chan Event, clientBuffer),
		ctx:      clientCtx,
		cancel:   cancel,
	}
	if len(topics) > 0 {
		c.topics = make(map[EventType]struct{}, len(topics))
		for _, t := range topics {
			c.topics[t] = struct{}{}
		}
	}

	select {
	case b.joins <- c:
	case <-b.ctx.Done():
		cancel()
		close(c.Messages)
	}
	return c
}

// Unregister removes a client. Unknown IDs are ignored.
func (b *Broadcaster) Unregister(clientID string) {
	select {
	case b.leaves <- clientID:
	case <-b.ctx.Done():
	}
}

// Broadcast queues an event for fan-out. Events are dropped when the queue
// is full or the broadcaster is shut down.
func (b *Broadcaster) Broadcast(event Event) {
	select {
	case <-b.ctx.Done():
		return
	default:
	}

	select {
	case b.events <- event:
	default:
		b.logger.Warn().Str("event", string(event.Type)).Msg("stream_broadcast_dropped")
	}
}

// ClientCount returns the current number of connected clients
func (b *Broadcaster) ClientCount() int {
	return int(b.connected.Load())
}

// Shutdown stops the loop and closes every client
func (b *Broadcaster) Shutdown() {
	b.cancel()
}
