package health

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birddigital/avax-l1-explorer/internal/testutil"
	"github.com/birddigital/avax-l1-explorer/internal/web/sse"
)

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []sse.Event
}

func (b *recordingBroadcaster) Broadcast(e sse.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

func (b *recordingBroadcaster) last() sse.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.events[len(b.events)-1]
}

// togglePinger fails while down is set
type togglePinger struct{ down atomic.Bool }

func (p *togglePinger) Ping(context.Context) error {
	if p.down.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func ok() Pinger { return PingFunc(func(context.Context) error { return nil }) }

func TestNewMonitor_Defaults(t *testing.T) {
	m := NewMonitor(nil, nil, MonitorConfig{}, testutil.Logger())

	assert.Equal(t, DefaultMonitorConfig(), m.config)
	assert.False(t, m.Checked())
}

func TestMonitor_Report(t *testing.T) {
	tests := []struct {
		name       string
		components []Component
		want       string
	}{
		{
			name:       "all healthy",
			components: []Component{{Name: "rpc", Pinger: ok()}, {Name: "cache", Pinger: ok(), Critical: true}},
			want:       StatusHealthy,
		},
		{
			name: "non critical failure degrades",
			components: []Component{
				{Name: "rpc", Pinger: PingFunc(func(context.Context) error { return assert.AnError })},
				{Name: "cache", Pinger: ok(), Critical: true},
			},
			want: StatusDegraded,
		},
		{
			name: "critical failure",
			components: []Component{
				{Name: "rpc", Pinger: ok()},
				{Name: "cache", Pinger: PingFunc(func(context.Context) error { return assert.AnError }), Critical: true},
			},
			want: StatusUnhealthy,
		},
		{
			name:       "missing pinger",
			components: []Component{{Name: "rpc"}},
			want:       StatusDegraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMonitor(tt.components, nil, DefaultMonitorConfig(), testutil.Logger())
			report := m.Check(context.Background())

			assert.Equal(t, tt.want, report.Status)
			assert.Len(t, report.Components, len(tt.components))
			assert.False(t, report.CheckedAt.IsZero())
			assert.True(t, m.Checked())
		})
	}
}

func TestMonitor_UnhealthyMessage(t *testing.T) {
	m := NewMonitor([]Component{{Name: "rpc", Pinger: PingFunc(func(context.Context) error { return assert.AnError })}}, nil, DefaultMonitorConfig(), testutil.Logger())

	status := m.Check(context.Background()).Components["rpc"]
	assert.Equal(t, StatusUnhealthy, status.Status)
	assert.Contains(t, status.Message, "rpc ping failed")
	assert.False(t, status.LastCheck.IsZero())
}

func TestMonitor_ReportBeforeFirstCheck(t *testing.T) {
	m := NewMonitor([]Component{{Name: "rpc", Pinger: ok()}}, nil, DefaultMonitorConfig(), testutil.Logger())

	report := m.Report()
	assert.Equal(t, StatusUnknown, report.Components["rpc"].Status)
	assert.Equal(t, StatusDegraded, report.Status)
}

func TestMonitor_BroadcastsOnChangeOnly(t *testing.T) {
	rpc := &togglePinger{}
	b := &recordingBroadcaster{}
	m := NewMonitor([]Component{{Name: "rpc", Pinger: rpc}}, b, DefaultMonitorConfig(), testutil.Logger())
	ctx := context.Background()

	m.Check(ctx)
	require.Equal(t, 1, b.count())

	m.Check(ctx)
	assert.Equal(t, 1, b.count(), "unchanged status is not rebroadcast")

	rpc.down.Store(true)
	m.Check(ctx)
	require.Equal(t, 2, b.count())

	e := b.last()
	assert.Equal(t, sse.EventTypeHealthStatus, e.Type)
	data, isHealth := e.Data.(*sse.HealthStatusData)
	require.True(t, isHealth)
	assert.Equal(t, StatusDegraded, data.Status)
	assert.Equal(t, map[string]string{"rpc": StatusUnhealthy}, data.Components)
}

func TestMonitor_CheckTimeout(t *testing.T) {
	slow := PingFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	m := NewMonitor([]Component{{Name: "rpc", Pinger: slow}}, nil, MonitorConfig{CheckInterval: time.Minute, CheckTimeout: 20 * time.Millisecond}, testutil.Logger())

	start := time.Now()
	report := m.Check(context.Background())
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, StatusUnhealthy, report.Components["rpc"].Status)
}

func TestMonitor_StartStop(t *testing.T) {
	var calls atomic.Int32
	counting := PingFunc(func(context.Context) error {
		calls.Add(1)
		return nil
	})
	m := NewMonitor([]Component{{Name: "cache", Pinger: counting}}, nil, MonitorConfig{CheckInterval: 10 * time.Millisecond}, testutil.Logger())

	m.Start(context.Background())
	testutil.WaitForCondition(t, func() bool { return calls.Load() >= 3 }, time.Second, "monitor did not tick")
	require.NoError(t, m.Stop())

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}
