package handlers

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birddigital/avax-l1-explorer/internal/testutil"
	"github.com/birddigital/avax-l1-explorer/internal/web/sse"
)

type fakeStreamMetrics struct {
	mu        sync.Mutex
	connected map[string]int
}

func (f *fakeStreamMetrics) StreamConnected(transport string) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connected == nil {
		f.connected = make(map[string]int)
	}
	f.connected[transport]++
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.connected[transport]--
	}
}

func (f *fakeStreamMetrics) Connected(transport string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected[transport]
}

// readEvent reads one SSE frame, up to the blank line that ends it
func readEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()

	frame := make(chan string, 1)
	go func() {
		var b strings.Builder
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				frame <- b.String()
				return
			}
			if line == "\n" {
				frame <- b.String()
				return
			}
			b.WriteString(line)
		}
	}()

	select {
	case f := <-frame:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for SSE event")
		return ""
	}
}

func connectSSE(t *testing.T, ctx context.Context, url string) (*http.Response, *bufio.Reader) {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp, bufio.NewReader(resp.Body)
}

func TestSSEHandler_Connection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := sse.NewBroadcaster(ctx)
	defer b.Shutdown()
	srv := httptest.NewServer(NewSSEHandler(b, WithLogger(testutil.Logger())))
	defer srv.Close()

	resp, r := connectSSE(t, ctx, srv.URL)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))

	first := readEvent(t, r)
	assert.Contains(t, first, "event: connected")
	assert.Contains(t, first, connectedMessage)
	assert.Contains(t, first, `"clientId":"`)
}

func TestSSEHandler_StreamsBroadcasts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := sse.NewBroadcaster(ctx)
	defer b.Shutdown()
	srv := httptest.NewServer(NewSSEHandler(b))
	defer srv.Close()

	_, r := connectSSE(t, ctx, srv.URL)
	readEvent(t, r)
	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 1 }, time.Second, "client not registered")

	b.Broadcast(sse.Event{
		Type: sse.EventTypeNetworksUpdate,
		ID:   "7",
		Data: sse.NetworksUpdateData{Total: 10, Origin: "fallback", LastUpdated: 1704067200},
	})

	got := readEvent(t, r)
	assert.Equal(t, "id: 7\nevent: networks-update\ndata: {\"total\":10,\"origin\":\"fallback\",\"lastUpdated\":1704067200}\n", got)
}

func TestSSEHandler_EventFilter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := sse.NewBroadcaster(ctx)
	defer b.Shutdown()
	srv := httptest.NewServer(NewSSEHandler(b))
	defer srv.Close()

	_, r := connectSSE(t, ctx, srv.URL+"?events=icm-routes")
	readEvent(t, r)
	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 1 }, time.Second, "client not registered")

	b.Broadcast(sse.Event{Type: sse.EventTypePerformanceUpdate, Data: []int{}})
	b.Broadcast(sse.Event{Type: sse.EventTypeICMRoutes, Data: []int{1}})

	assert.Equal(t, "event: icm-routes\ndata: [1]\n", readEvent(t, r))
}

func TestSSEHandler_UnknownEventFilter(t *testing.T) {
	b := sse.NewBroadcaster(context.Background())
	defer b.Shutdown()

	rec := httptest.NewRecorder()
	NewSSEHandler(b).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stream?events=prices", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown event type: prices")
	assert.Zero(t, b.ClientCount())
}

func TestSSEHandler_DisconnectionCleanup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := sse.NewBroadcaster(ctx)
	defer b.Shutdown()
	m := &fakeStreamMetrics{}
	srv := httptest.NewServer(NewSSEHandler(b, WithMetrics(m)))
	defer srv.Close()

	clientCtx, clientCancel := context.WithCancel(ctx)
	_, r := connectSSE(t, clientCtx, srv.URL)
	readEvent(t, r)

	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 1 }, time.Second, "client not registered")
	assert.Equal(t, 1, m.Connected("sse"))

	clientCancel()

	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 0 }, 2*time.Second, "client not cleaned up")
	testutil.WaitForCondition(t, func() bool { return m.Connected("sse") == 0 }, 2*time.Second, "stream gauge not released")
}

func TestSSEHandler_BroadcasterShutdownEndsStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := sse.NewBroadcaster(ctx)
	srv := httptest.NewServer(NewSSEHandler(b))
	defer srv.Close()

	_, r := connectSSE(t, ctx, srv.URL)
	readEvent(t, r)
	testutil.WaitForCondition(t, func() bool { return b.ClientCount() == 1 }, time.Second, "client not registered")

	b.Shutdown()

	// the handler returns and the body ends
	assert.Empty(t, readEvent(t, r))
}

// noFlushWriter hides the recorder's Flush method
type noFlushWriter struct {
	http.ResponseWriter
}

func TestSSEHandler_RequiresFlusher(t *testing.T) {
	b := sse.NewBroadcaster(context.Background())
	defer b.Shutdown()

	rec := httptest.NewRecorder()
	NewSSEHandler(b).ServeHTTP(noFlushWriter{rec}, httptest.NewRequest(http.MethodGet, "/api/stream", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, b.ClientCount())
}
