// Package performance synthesizes per-network throughput, latency and load
// metrics with a rolling 24-hour history.
package performance

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/birddigital/avax-l1-explorer/internal/pubsub"
	"github.com/birddigital/avax-l1-explorer/internal/synth"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// DefaultUpdateInterval is the real-time update period
const DefaultUpdateInterval = 5 * time.Second

// namePool labels networks the resolver does not know
var namePool = []string{"GUNZ", "Beam", "Dexalot", "Shrapnel", "Merit Circle", "DFK Crystalvale"}

// defaultPeers are the L1 IDs reported as ICM peers
var defaultPeers = []string{"l1-1", "l1-2", "l1-3", "l1-4", "l1-5"}

// NameResolver maps a network ID to its display name, or "" if unknown
type NameResolver func(l1ID string) string

// Option configures a Service
type Option func(*Service)

// WithSource sets the randomness and clock
func WithSource(src synth.Source) Option {
	return func(s *Service) { s.source = src }
}

// WithLogger sets the service logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithNameResolver sets how network IDs are turned into names
func WithNameResolver(names NameResolver) Option {
	return func(s *Service) { s.names = names }
}

// WithPeers sets the L1 IDs reported as ICM peers
func WithPeers(peers []string) Option {
	return func(s *Service) { s.peers = peers }
}

type entry struct {
	record  types.NetworkPerformance
	history history
}

// Service owns the performance cache and its subscribers
type Service struct {
	source synth.Source
	names  NameResolver
	peers  []string
	logger zerolog.Logger

	mu    sync.Mutex
	cache map[string]*entry

	hub *pubsub.Hub[[]types.NetworkPerformance]
}

// NewService creates a performance synthesizer
func NewService(opts ...Option) *Service {
	s := &Service{
		source: synth.NewSource(0, nil),
		peers:  defaultPeers,
		logger: zerolog.Nop(),
		cache:  make(map[string]*entry),
		hub:    pubsub.NewHub[[]types.NetworkPerformance](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetPerformance synthesizes the current performance of one network and
// advances its history
func (s *Service) GetPerformance(ctx context.Context, l1ID string) types.NetworkPerformance {
	name := s.resolveName(l1ID)
	now := s.source.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, cached := s.cache[l1ID]
	if !cached {
		e = &entry{}
		s.cache[l1ID] = e
	}

	avgTPS := e.record.AvgTPS24h
	if avgTPS == 0 {
		avgTPS = s.tps(l1ID, now, 0.8)
	}
	avgBlockTime := e.record.AvgBlockTime24h
	if avgBlockTime == 0 {
		avgBlockTime = 2.1
	}

	e.history.advance(now, s.historySample)

	e.record = types.NetworkPerformance{
		L1ID:             l1ID,
		L1Name:           name,
		CurrentTPS:       s.tps(l1ID, now, 1),
		AvgTPS24h:        avgTPS,
		CurrentBlockTime: s.blockTime(l1ID),
		AvgBlockTime24h:  avgBlockTime,
		NetworkLoad:      float64(s.source.Intn(100)),
		GasPrice:         fmt.Sprintf("%.1f Gwei", synth.Range(s.source, 20, 100)),
		FinalityTime:     synth.Range(s.source, 1, 4),
		UptimePercentage: synth.Range(s.source, 99.5, 100),
		LastUpdated:      now,
		Historical:       e.history.snapshot(),
	}
	return e.record
}

// GetAllPerformance synthesizes every listed network and notifies subscribers
func (s *Service) GetAllPerformance(ctx context.Context, l1IDs []string) []types.NetworkPerformance {
	out := make([]types.NetworkPerformance, 0, len(l1IDs))
	for _, id := range l1IDs {
		out = append(out, s.GetPerformance(ctx, id))
	}
	s.hub.Publish(out)
	return out
}

// Subscribe registers fn for every GetAllPerformance result
func (s *Service) Subscribe(fn func([]types.NetworkPerformance)) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

// StartRealTimeUpdates refreshes l1IDs every interval until the returned
// task is stopped. ids is called on each tick so the set may change.
func (s *Service) StartRealTimeUpdates(ctx context.Context, ids func() []string, interval time.Duration) *pubsub.Task {
	if interval <= 0 {
		interval = DefaultUpdateInterval
	}
	s.logger.Info().Dur("interval", interval).Msg("performance_updates_started")
	return pubsub.Every(ctx, interval, func(ctx context.Context) {
		s.GetAllPerformance(ctx, ids())
	})
}

// StopRealTimeUpdates cancels a task returned by StartRealTimeUpdates
func (s *Service) StopRealTimeUpdates(task *pubsub.Task) {
	task.Stop()
	s.logger.Info().Msg("performance_updates_stopped")
}

// ICMActivity synthesizes the interchain activity of one network
func (s *Service) ICMActivity(ctx context.Context, l1ID string) types.ICMActivity {
	now := s.source.Now()
	count := synth.IntRange(s.source, 1, 4)

	connected := make([]string, 0, count)
	for _, peer := range s.peers {
		if len(connected) == count {
			break
		}
		if peer != l1ID {
			connected = append(connected, peer)
		}
	}

	return types.ICMActivity{
		L1ID:            l1ID,
		MessagesPerHour: synth.IntRange(s.source, 50, 550),
		AvgLatency:      synth.Range(s.source, 500, 2500),
		FailureRate:     synth.Range(s.source, 0, 2),
		ConnectedL1s:    connected,
		LastMessage:     now.Add(-time.Duration(s.source.Float64() * float64(5*time.Minute))),
	}
}

// ValidatorPerformance synthesizes the validator panel of one network
func (s *Service) ValidatorPerformance(ctx context.Context, l1ID string) []types.ValidatorPerformance {
	now := s.source.Now()
	count := synth.IntRange(s.source, 5, 20)

	out := make([]types.ValidatorPerformance, count)
	for i := range out {
		out[i] = types.ValidatorPerformance{
			NodeID:             synth.NodeID(s.source, 40),
			Uptime24h:          synth.Range(s.source, 99, 100),
			MissedBlocks:       s.source.Intn(5),
			ResponseTime:       synth.Range(s.source, 50, 150),
			Stake:              fmt.Sprintf("%.1fK AVAX", synth.Range(s.source, 1, 4)),
			Commission:         synth.Range(s.source, 0, 10),
			DelegationCapacity: synth.Range(s.source, 0, 100),
			IsActive:           s.source.Float64() > 0.1,
			LastSeen:           now.Add(-time.Duration(s.source.Float64() * float64(time.Minute))),
		}
	}
	return out
}

// tps is the hash-seeded throughput with a slow sinusoidal drift
func (s *Service) tps(l1ID string, now time.Time, factor float64) float64 {
	base := float64(20 + synth.HashString(l1ID)%80)
	variation := (math.Sin(float64(now.UnixMilli())/60000) + 1) * 0.5
	return math.Round(base * factor * (0.7 + variation*0.6))
}

func (s *Service) blockTime(l1ID string) float64 {
	base := 1.5 + float64(synth.HashString(l1ID)%100)/100
	return math.Max(0.5, base+synth.Range(s.source, -0.25, 0.25))
}

func (s *Service) historySample() (tps, blockTime, gas float64) {
	return synth.Range(s.source, 20, 120), synth.Range(s.source, 1, 3), synth.Range(s.source, 20, 100)
}

func (s *Service) resolveName(l1ID string) string {
	if s.names != nil {
		if name := s.names(l1ID); name != "" {
			return name
		}
	}
	return namePool[synth.HashString(l1ID)%int64(len(namePool))]
}
