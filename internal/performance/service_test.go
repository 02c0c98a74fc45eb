package performance

import (
	"context"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birddigital/avax-l1-explorer/internal/synth"
	"github.com/birddigital/avax-l1-explorer/internal/testutil"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// steppingClock advances by step on every call
type steppingClock struct {
	now  time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func newTestService(opts ...Option) *Service {
	return NewService(append([]Option{WithSource(testutil.Source(1))}, opts...)...)
}

func TestGetPerformance_Ranges(t *testing.T) {
	svc := newTestService()
	perf := svc.GetPerformance(context.Background(), "network-a")

	assert.Equal(t, "network-a", perf.L1ID)
	assert.Contains(t, namePool, perf.L1Name)
	assert.GreaterOrEqual(t, perf.CurrentBlockTime, 0.5)
	assert.GreaterOrEqual(t, perf.NetworkLoad, 0.0)
	assert.Less(t, perf.NetworkLoad, 100.0)
	assert.Regexp(t, `^\d+\.\d Gwei$`, perf.GasPrice)
	assert.GreaterOrEqual(t, perf.FinalityTime, 1.0)
	assert.Less(t, perf.FinalityTime, 4.0)
	assert.GreaterOrEqual(t, perf.UptimePercentage, 99.5)
	assert.Less(t, perf.UptimePercentage, 100.0)
	assert.Equal(t, 2.1, perf.AvgBlockTime24h)
	assert.Equal(t, testutil.FixedTime(), perf.LastUpdated)
}

func TestGetPerformance_TPSIsHashSeeded(t *testing.T) {
	now := testutil.FixedTime()
	src := synth.NewSource(5, synth.FixedClock(now))
	svc := NewService(WithSource(src))

	base := float64(20 + synth.HashString("network-a")%80)
	variation := (math.Sin(float64(now.UnixMilli())/60000) + 1) * 0.5
	want := math.Round(base * (0.7 + variation*0.6))

	first := svc.GetPerformance(context.Background(), "network-a")
	second := svc.GetPerformance(context.Background(), "network-a")

	assert.Equal(t, want, first.CurrentTPS)
	assert.Equal(t, want, second.CurrentTPS)
	assert.Equal(t, math.Round(base*0.8*(0.7+variation*0.6)), first.AvgTPS24h)
}

func TestGetPerformance_BlockTimeBaseline(t *testing.T) {
	svc := newTestService()
	base := 1.5 + float64(synth.HashString("network-b")%100)/100

	for i := 0; i < 50; i++ {
		perf := svc.GetPerformance(context.Background(), "network-b")
		assert.InDelta(t, math.Max(0.5, base), perf.CurrentBlockTime, 0.25)
	}
}

func TestGetPerformance_CachedAveragesPersist(t *testing.T) {
	clock := &steppingClock{now: testutil.FixedTime(), step: time.Minute}
	svc := NewService(WithSource(synth.NewSource(2, clock.Now)))

	first := svc.GetPerformance(context.Background(), "net")
	second := svc.GetPerformance(context.Background(), "net")

	assert.Equal(t, first.AvgTPS24h, second.AvgTPS24h)
	assert.Equal(t, first.AvgBlockTime24h, second.AvgBlockTime24h)
}

func TestGetPerformance_HistoryAppendEvict(t *testing.T) {
	clock := &steppingClock{now: testutil.FixedTime(), step: time.Hour}
	svc := NewService(WithSource(synth.NewSource(3, clock.Now)))
	ctx := context.Background()

	first := svc.GetPerformance(ctx, "net")
	require.Len(t, first.Historical.TPS, HistoryLength)
	assert.Equal(t, testutil.FixedTime(), first.Historical.TPS[HistoryLength-1].Timestamp)

	second := svc.GetPerformance(ctx, "net")
	third := svc.GetPerformance(ctx, "net")

	for _, perf := range []types.NetworkPerformance{second, third} {
		assert.Len(t, perf.Historical.TPS, HistoryLength)
		assert.Len(t, perf.Historical.BlockTime, HistoryLength)
		assert.Len(t, perf.Historical.GasPrice, HistoryLength)
		assertChronological(t, perf.Historical.TPS)
	}

	// oldest dropped, newest appended
	assert.Equal(t, first.Historical.TPS[1], second.Historical.TPS[0])
	assert.Equal(t, second.Historical.TPS[1:], third.Historical.TPS[:HistoryLength-1])
	assert.Equal(t, testutil.FixedTime().Add(2*time.Hour), third.Historical.TPS[HistoryLength-1].Timestamp)
}

func TestGetPerformance_HistorySampleRanges(t *testing.T) {
	svc := newTestService()
	perf := svc.GetPerformance(context.Background(), "net")

	for _, s := range perf.Historical.TPS {
		assert.GreaterOrEqual(t, s.Value, 20.0)
		assert.Less(t, s.Value, 120.0)
	}
	for _, s := range perf.Historical.BlockTime {
		assert.GreaterOrEqual(t, s.Value, 1.0)
		assert.Less(t, s.Value, 3.0)
	}
	for _, s := range perf.Historical.GasPrice {
		assert.GreaterOrEqual(t, s.Value, 20.0)
		assert.Less(t, s.Value, 100.0)
	}
}

func TestGetPerformance_NameResolver(t *testing.T) {
	svc := newTestService(WithNameResolver(func(id string) string {
		if id == "known" {
			return "Dexalot"
		}
		return ""
	}))

	assert.Equal(t, "Dexalot", svc.GetPerformance(context.Background(), "known").L1Name)
	unknown := svc.GetPerformance(context.Background(), "unknown")
	assert.Equal(t, namePool[synth.HashString("unknown")%int64(len(namePool))], unknown.L1Name)
}

func TestGetAllPerformance_NotifiesSubscribers(t *testing.T) {
	svc := newTestService()

	var got [][]types.NetworkPerformance
	unsubscribe := svc.Subscribe(func(p []types.NetworkPerformance) { got = append(got, p) })

	all := svc.GetAllPerformance(context.Background(), []string{"a", "b"})
	require.Len(t, all, 2)
	require.Len(t, got, 1)
	assert.Equal(t, all, got[0])

	unsubscribe()
	unsubscribe()
	svc.GetAllPerformance(context.Background(), []string{"a"})
	assert.Len(t, got, 1)
}

func TestRealTimeUpdates(t *testing.T) {
	svc := newTestService()

	var ticks atomic.Int32
	svc.Subscribe(func(p []types.NetworkPerformance) {
		if len(p) == 2 {
			ticks.Add(1)
		}
	})

	task := svc.StartRealTimeUpdates(context.Background(), func() []string { return []string{"a", "b"} }, 10*time.Millisecond)
	testutil.WaitForCondition(t, func() bool { return ticks.Load() >= 2 }, time.Second, "no real-time updates")

	svc.StopRealTimeUpdates(task)
	after := ticks.Load()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, after, ticks.Load())

	svc.StopRealTimeUpdates(task)
}

func TestICMActivity(t *testing.T) {
	svc := newTestService()

	for i := 0; i < 20; i++ {
		act := svc.ICMActivity(context.Background(), "l1-1")
		assert.GreaterOrEqual(t, act.MessagesPerHour, 50)
		assert.Less(t, act.MessagesPerHour, 550)
		assert.GreaterOrEqual(t, act.AvgLatency, 500.0)
		assert.Less(t, act.FailureRate, 2.0)
		assert.NotEmpty(t, act.ConnectedL1s)
		assert.LessOrEqual(t, len(act.ConnectedL1s), 3)
		assert.NotContains(t, act.ConnectedL1s, "l1-1")
		assert.False(t, act.LastMessage.After(testutil.FixedTime()))
	}
}

func TestValidatorPerformance(t *testing.T) {
	svc := newTestService()
	validators := svc.ValidatorPerformance(context.Background(), "net")

	assert.GreaterOrEqual(t, len(validators), 5)
	assert.Less(t, len(validators), 20)
	for _, v := range validators {
		assert.Regexp(t, `^NodeID-[A-Za-z0-9]{40}$`, v.NodeID)
		assert.GreaterOrEqual(t, v.Uptime24h, 99.0)
		assert.Less(t, v.MissedBlocks, 5)
		assert.Regexp(t, `^\d\.\dK AVAX$`, v.Stake)
	}
}

func assertChronological(t *testing.T, samples []types.Sample) {
	t.Helper()
	for i := 1; i < len(samples); i++ {
		assert.True(t, samples[i].Timestamp.After(samples[i-1].Timestamp), "sample %d out of order", i)
	}
}
