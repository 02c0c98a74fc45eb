package icm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birddigital/avax-l1-explorer/internal/testutil"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// staticSource serves fixed routes and delegates messages to a generator
type staticSource struct {
	routes   []types.ICMRoute
	messages DataSource
	err      error
}

func (s *staticSource) Messages(ctx context.Context, l1ID string, limit int) ([]types.ICMMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.messages.Messages(ctx, l1ID, limit)
}

func (s *staticSource) Routes(ctx context.Context) ([]types.ICMRoute, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.routes, nil
}

func newTestService(opts ...Option) *Service {
	return NewService(append([]Option{WithSource(testutil.Source(1))}, opts...)...)
}

func TestMessages_SourceNeverEqualsDestination(t *testing.T) {
	svc := newTestService()

	for _, l1 := range append([]string{""}, messagePool...) {
		messages, err := svc.Messages(context.Background(), l1, 200)
		require.NoError(t, err)
		require.Len(t, messages, 200)
		for _, m := range messages {
			assert.NotEqual(t, m.SourceL1, m.DestinationL1)
			if l1 != "" {
				assert.Equal(t, l1, m.SourceL1)
			}
		}
	}
}

func TestMessages_Shape(t *testing.T) {
	svc := newTestService()
	messages, err := svc.Messages(context.Background(), "", 10)
	require.NoError(t, err)

	now := testutil.FixedTime()
	for i, m := range messages {
		assert.Equal(t, now.Add(-time.Duration(i)*30*time.Second), m.Timestamp)
		assert.GreaterOrEqual(t, m.Latency, 500.0)
		assert.Less(t, m.Latency, 5500.0)
		assert.Contains(t, types.MessageTypes, m.MessageType)
		assert.Contains(t, types.MessageStatuses, m.Status)
		assert.Regexp(t, `^icm_\d+_\d+$`, m.ID)
		assert.Regexp(t, `^\d+\.\d{4} AVAX$`, m.Fees)
		assert.NotEmpty(t, m.Payload.Type)
		assert.GreaterOrEqual(t, m.SourceBlockHeight, 500000)
	}
}

func TestMessages_DefaultLimit(t *testing.T) {
	svc := newTestService()

	messages, err := svc.Messages(context.Background(), "GUNZ", 0)
	require.NoError(t, err)
	assert.Len(t, messages, DefaultMessageLimit)
}

func TestRoutes_HealthMatchesDecisionTable(t *testing.T) {
	svc := newTestService()
	routes, err := svc.Routes(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, routes)

	for _, r := range routes {
		assert.NotEqual(t, r.SourceL1, r.DestinationL1)
		assert.Equal(t, ClassifyRoute(r.AvgLatency, r.FailureRate), r.RouteHealth)
		assert.GreaterOrEqual(t, r.MessagesLast24h, 50)
		assert.Less(t, r.MessagesLast24h, 1050)
	}
}

func TestRoutes_InjectedRouteIsExcellentOnEveryCall(t *testing.T) {
	data := &staticSource{routes: []types.ICMRoute{
		{SourceL1: "GUNZ", DestinationL1: "Beam", AvgLatency: 1000, FailureRate: 0.5, IsActive: true, MessagesLast24h: 10},
	}}
	svc := newTestService(WithDataSource(data))

	first, err := svc.Routes(context.Background())
	require.NoError(t, err)
	second, err := svc.Routes(context.Background())
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, types.RouteExcellent, first[0].RouteHealth)
	assert.Equal(t, types.RouteExcellent, second[0].RouteHealth)
	assert.Empty(t, data.routes[0].RouteHealth, "source data must not be mutated")
}

func TestAggregate(t *testing.T) {
	routes := []types.ICMRoute{
		{SourceL1: "A", DestinationL1: "B", MessagesLast24h: 10, AvgLatency: 1000, IsActive: true, RouteHealth: types.RouteExcellent},
		{SourceL1: "B", DestinationL1: "A", MessagesLast24h: 300, AvgLatency: 2000, IsActive: false, RouteHealth: types.RouteGood},
		{SourceL1: "A", DestinationL1: "C", MessagesLast24h: 200, AvgLatency: 3000, IsActive: true, RouteHealth: types.RouteDegraded},
		{SourceL1: "C", DestinationL1: "A", MessagesLast24h: 50, AvgLatency: 5000, IsActive: true, RouteHealth: types.RouteFailing},
		{SourceL1: "B", DestinationL1: "C", MessagesLast24h: 70, AvgLatency: 1000, IsActive: true, RouteHealth: types.RouteExcellent},
		{SourceL1: "C", DestinationL1: "B", MessagesLast24h: 60, AvgLatency: 1000, IsActive: true, RouteHealth: types.RouteExcellent},
	}
	messages := []types.ICMMessage{{MessageType: types.MessageTransfer}, {MessageType: types.MessageCustom}}

	a := Aggregate(routes, messages)

	assert.Equal(t, 2, a.TotalMessages24h)
	assert.Equal(t, 6, a.TotalRoutes)
	assert.Equal(t, 5, a.ActiveRoutes)
	assert.InDelta(t, 13000.0/6, a.AvgCrossChainLatency, 1e-9)
	assert.InDelta(t, (100+80+60+30+100+100)/6.0, a.NetworkEfficiency, 1e-9)
	require.Len(t, a.TopRoutes, 5)
	assert.Equal(t, "B → A", a.TopRoutes[0].Route)
	assert.Equal(t, 300, a.TopRoutes[0].Volume)
	assert.Equal(t, "A → C", a.TopRoutes[1].Route)
	assert.Equal(t, 50, a.TopRoutes[4].Volume)
	assert.Equal(t, 1, a.MessageTypeDistribution.Transfers)
	assert.Equal(t, 1, a.MessageTypeDistribution.Custom)

	// input order untouched
	assert.Equal(t, "A", routes[0].SourceL1)
}

func TestAnalytics(t *testing.T) {
	svc := newTestService()
	a, err := svc.Analytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, DefaultMessageLimit, a.TotalMessages24h)
	assert.LessOrEqual(t, len(a.TopRoutes), 5)
	assert.GreaterOrEqual(t, a.NetworkEfficiency, 30.0)
	assert.LessOrEqual(t, a.NetworkEfficiency, 100.0)
	d := a.MessageTypeDistribution
	assert.Equal(t, DefaultMessageLimit, d.Transfers+d.ContractCalls+d.Validations+d.Custom)
}

func TestAnalytics_EmptyRoutes(t *testing.T) {
	svc := newTestService(WithDataSource(&staticSource{messages: NewSyntheticSource(testutil.Source(2))}))
	a, err := svc.Analytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 100.0, a.NetworkEfficiency)
	assert.Equal(t, 0.0, a.AvgCrossChainLatency)
	assert.Empty(t, a.TopRoutes)
}

func TestAnalytics_SourceError(t *testing.T) {
	svc := newTestService(WithDataSource(&staticSource{err: errors.New("upstream down")}))
	_, err := svc.Analytics(context.Background())
	assert.Error(t, err)
}

func TestMessageFlow(t *testing.T) {
	svc := newTestService()
	flows := svc.MessageFlow(context.Background())

	require.NotEmpty(t, flows)
	for _, f := range flows {
		assert.NotEqual(t, f.From, f.To)
		assert.GreaterOrEqual(t, f.Count, 50)
		assert.Less(t, f.Count, 550)
		assert.Regexp(t, `^\d+\.\d AVAX$`, f.Volume)
	}
}

func TestNetworkStats(t *testing.T) {
	svc := newTestService()
	stats := svc.NetworkStats(context.Background(), "some-l1")

	assert.Equal(t, "some-l1", stats.L1ID)
	assert.Contains(t, routePool, stats.L1Name)
	assert.GreaterOrEqual(t, stats.ConnectedL1s, 2)
	assert.Len(t, stats.BridgeConnections, stats.ConnectedL1s)
	assert.True(t, stats.Capabilities.NativeMessaging)
	for _, b := range stats.BridgeConnections {
		assert.NotEqual(t, stats.L1Name, b.L1Name)
		assert.Equal(t, "l1_"+b.L1Name, b.L1ID)
		assert.Contains(t, types.BridgeTypes, b.BridgeType)
	}
}

func TestMonitoring_PublishesInOrder(t *testing.T) {
	svc := newTestService()

	var mu sync.Mutex
	var seen []EventType
	unsubscribe := svc.Subscribe(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e.Type)
		switch e.Type {
		case EventAnalytics:
			assert.NotNil(t, e.Analytics)
		case EventMessages:
			assert.Len(t, e.Messages, monitorMessageLimit)
		}
	})
	defer unsubscribe()

	task := svc.StartMonitoring(context.Background(), 10*time.Millisecond)
	testutil.WaitForCondition(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) >= 3
	}, time.Second, "no monitoring events")
	svc.StopMonitoring(task)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []EventType{EventAnalytics, EventRoutes, EventMessages}, seen[:3])
}

func TestMonitoring_ErrorsSkipTick(t *testing.T) {
	svc := newTestService(WithDataSource(&staticSource{err: errors.New("upstream down")}))

	var mu sync.Mutex
	events := 0
	svc.Subscribe(func(Event) {
		mu.Lock()
		events++
		mu.Unlock()
	})

	task := svc.StartMonitoring(context.Background(), 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	svc.StopMonitoring(task)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, events)
}
