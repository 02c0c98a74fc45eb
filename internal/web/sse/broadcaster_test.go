package sse

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birddigital/avax-l1-explorer/internal/testutil"
)

func TestBroadcaster_RegisterUnregister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBroadcaster(ctx)
	defer b.Shutdown()

	client := b.Register(ctx, "test-client-1")
	require.NotNil(t, client)

	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 1 }, time.Second, "client not registered")

	b.Unregister("test-client-1")

	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 0 }, time.Second, "client not unregistered")
	_, ok := <-client.Messages
	assert.False(t, ok)
}

func TestBroadcaster_Broadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBroadcaster(ctx)
	defer b.Shutdown()

	client := b.Register(ctx, "test-client-1")
	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 1 }, time.Second, "client not registered")

	b.Broadcast(Event{
		Type: EventTypeNetworksUpdate,
		Data: NetworksUpdateData{Total: 10, Origin: "fallback"},
	})

	select {
	case received := <-client.Messages:
		assert.Equal(t, EventTypeNetworksUpdate, received.Type)
		data, ok := received.Data.(NetworksUpdateData)
		require.True(t, ok)
		assert.Equal(t, 10, data.Total)
		assert.Equal(t, "fallback", data.Origin)
	case <-time.After(1 * time.Second):
		t.Fatal("Timeout waiting for event")
	}
}

func TestBroadcaster_MultipleClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBroadcaster(ctx)
	defer b.Shutdown()

	clients := make([]*Client, 3)
	for i := range clients {
		clients[i] = b.Register(ctx, fmt.Sprintf("client-%d", i))
	}
	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 3 }, time.Second, "clients not registered")

	b.Broadcast(Event{Type: EventTypeICMAnalytics, Data: map[string]int{"totalRoutes": 4}})

	for i, client := range clients {
		select {
		case received := <-client.Messages:
			assert.Equal(t, EventTypeICMAnalytics, received.Type)
		case <-time.After(1 * time.Second):
			t.Fatalf("Client %d did not receive event", i)
		}
	}
}

func TestBroadcaster_ClientDisconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBroadcaster(ctx)
	defer b.Shutdown()

	clientCtx, clientCancel := context.WithCancel(ctx)
	client := b.Register(clientCtx, "test-client-1")
	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 1 }, time.Second, "client not registered")

	// Cancel client context (simulates disconnect)
	clientCancel()

	// Broadcast event - should trigger cleanup
	b.Broadcast(Event{Type: EventTypeHeartbeat, Data: HeartbeatData{Timestamp: 1}})

	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 0 }, time.Second, "client not removed")
	_, ok := <-client.Messages
	assert.False(t, ok, "Client channel should be closed")
}

func TestBroadcaster_Heartbeat(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBroadcaster(ctx, WithHeartbeat(20*time.Millisecond), WithLogger(testutil.Logger()))
	defer b.Shutdown()

	client := b.Register(ctx, "test-client-1")

	timeout := time.After(time.Second)
	for {
		select {
		case event := <-client.Messages:
			if event.Type == EventTypeHeartbeat {
				_, ok := event.Data.(HeartbeatData)
				assert.True(t, ok)
				return
			}
		case <-timeout:
			t.Fatal("Did not receive heartbeat within expected time")
		}
	}
}

func TestEvent_Format(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		expected string
	}{
		{
			name: "event with ID",
			event: Event{
				Type: EventTypePerformanceUpdate,
				ID:   "123",
				Data: map[string]any{"test": "data"},
			},
			expected: "id: 123\nevent: performance-update\ndata: {\"test\":\"data\"}\n\n",
		},
		{
			name: "event without ID",
			event: Event{
				Type: EventTypeHeartbeat,
				Data: HeartbeatData{Timestamp: 1234567890},
			},
			expected: "event: heartbeat\ndata: {\"timestamp\":1234567890}\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatted, err := tt.event.Format()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, formatted)
		})
	}
}

func TestEvent_JSON(t *testing.T) {
	e := Event{Type: EventTypeValidatorRankings, ID: "r-1", Data: []int{1, 2}}

	data, err := e.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"validator-rankings","id":"r-1","data":[1,2]}`, string(data))

	bad := Event{Type: EventTypeHeartbeat, Data: make(chan int)}
	_, err = bad.JSON()
	assert.Error(t, err)
}

func TestBroadcaster_SlowClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBroadcaster(ctx)
	defer b.Shutdown()

	client := b.Register(ctx, "slow-client")
	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 1 }, time.Second, "client not registered")

	// Overflow the client buffer without reading
	for i := 0; i < clientBuffer+10; i++ {
		b.Broadcast(Event{Type: EventTypeICMMessages, Data: i})
	}

	timeout := time.After(1 * time.Second)
	for {
		select {
		case _, ok := <-client.Messages:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("Timeout waiting for client channel to close")
		}
	}
}

func TestBroadcaster_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBroadcaster(ctx)

	for i := 0; i < 3; i++ {
		b.Register(ctx, fmt.Sprintf("client-%d", i))
	}
	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 3 }, time.Second, "clients not registered")

	b.Shutdown()

	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 0 }, time.Second, "clients not closed")

	// no-ops once shut down
	b.Unregister("client-0")
	b.Broadcast(Event{Type: EventTypeHeartbeat})
}

func TestBroadcaster_TopicFilter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBroadcaster(ctx)
	defer b.Shutdown()

	icmOnly := b.Register(ctx, "icm-only", EventTypeICMRoutes)
	everything := b.Register(ctx, "everything")
	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 2 }, time.Second, "clients not registered")

	b.Broadcast(Event{Type: EventTypePerformanceUpdate, Data: 1})
	b.Broadcast(Event{Type: EventTypeICMRoutes, Data: 2})

	for _, want := range []EventType{EventTypePerformanceUpdate, EventTypeICMRoutes} {
		select {
		case e := <-everything.Messages:
			assert.Equal(t, want, e.Type)
		case <-time.After(time.Second):
			t.Fatalf("unfiltered client missed %s", want)
		}
	}

	select {
	case e := <-icmOnly.Messages:
		assert.Equal(t, EventTypeICMRoutes, e.Type)
	case <-time.After(time.Second):
		t.Fatal("filtered client missed its topic")
	}
	assert.Empty(t, icmOnly.Messages)
}

func TestBroadcaster_DuplicateIDReplacesClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBroadcaster(ctx)
	defer b.Shutdown()

	first := b.Register(ctx, "same")
	second := b.Register(ctx, "same")

	select {
	case _, ok := <-first.Messages:
		assert.False(t, ok, "replaced client must be closed")
	case <-time.After(time.Second):
		t.Fatal("replaced client was not closed")
	}
	assert.Equal(t, 1, b.ClientCount())

	b.Broadcast(Event{Type: EventTypeHealthStatus})
	select {
	case e := <-second.Messages:
		assert.Equal(t, EventTypeHealthStatus, e.Type)
	case <-time.After(time.Second):
		t.Fatal("replacement client missed the event")
	}
}

func TestBroadcaster_RegisterAfterShutdown(t *testing.T) {
	b := NewBroadcaster(context.Background())
	b.Shutdown()

	client := b.Register(context.Background(), "late")
	_, ok := <-client.Messages
	assert.False(t, ok)
	assert.Zero(t, b.ClientCount())
}

func TestParseTopics(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []EventType
		wantErr bool
	}{
		{name: "empty means all", in: ""},
		{name: "single", in: "icm-routes", want: []EventType{EventTypeICMRoutes}},
		{name: "list with blanks", in: " performance-update, ,health-status", want: []EventType{EventTypePerformanceUpdate, EventTypeHealthStatus}},
		{name: "heartbeat is implicit", in: "heartbeat", wantErr: true},
		{name: "unknown", in: "icm-routes,prices", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTopics(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownTopic)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
