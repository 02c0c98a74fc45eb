package collector

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/birddigital/avax-l1-explorer/internal/icm"
	"github.com/birddigital/avax-l1-explorer/internal/metrics"
	"github.com/birddigital/avax-l1-explorer/internal/staking"
	"github.com/birddigital/avax-l1-explorer/internal/web/sse"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// PerformanceFeed is implemented by *performance.Service
type PerformanceFeed interface {
	Subscribe(fn func([]types.NetworkPerformance)) (unsubscribe func())
}

// ICMFeed is implemented by *icm.Service
type ICMFeed interface {
	Subscribe(fn func(icm.Event)) (unsubscribe func())
}

// StakingFeed is implemented by *staking.Service
type StakingFeed interface {
	Subscribe(fn func(staking.Event)) (unsubscribe func())
}

// Relay forwards synthesizer events to a broadcaster as stream events
type Relay struct {
	broadcaster Broadcaster
	metrics     *metrics.ExplorerMetrics
	logger      zerolog.Logger

	seq atomic.Uint64

	mu           sync.Mutex
	unsubscribes []func()
}

// NewRelay creates a relay. m may be nil.
func NewRelay(b Broadcaster, m *metrics.ExplorerMetrics, logger zerolog.Logger) *Relay {
	return &Relay{
		broadcaster: b,
		metrics:     m,
		logger:      logger,
	}
}

// WatchPerformance relays performance updates
func (r *Relay) WatchPerformance(feed PerformanceFeed) {
	r.track(feed.Subscribe(func(perf []types.NetworkPerformance) {
		if r.metrics != nil {
			r.metrics.RecordPerformance(perf)
		}
		r.forward("performance", "update", sse.EventTypePerformanceUpdate, perf)
	}))
}

// WatchICM relays ICM analytics, routes and messages
func (r *Relay) WatchICM(feed ICMFeed) {
	r.track(feed.Subscribe(func(e icm.Event) {
		switch e.Type {
		case icm.EventAnalytics:
			if e.Analytics == nil {
				return
			}
			if r.metrics != nil {
				r.metrics.RecordICMAnalytics(*e.Analytics)
			}
			r.forward("icm", string(e.Type), sse.EventTypeICMAnalytics, e.Analytics)
		case icm.EventRoutes:
			r.forward("icm", string(e.Type), sse.EventTypeICMRoutes, e.Routes)
		case icm.EventMessages:
			r.forward("icm", string(e.Type), sse.EventTypeICMMessages, e.Messages)
		default:
			r.logger.Debug().Str("type", string(e.Type)).Msg("relay_unknown_icm_event")
		}
	}))
}

// WatchStaking relays staking analytics and validator rankings
func (r *Relay) WatchStaking(feed StakingFeed) {
	r.track(feed.Subscribe(func(e staking.Event) {
		switch e.Type {
		case staking.EventAnalytics:
			if e.Analytics == nil {
				return
			}
			if r.metrics != nil {
				r.metrics.RecordStakingAnalytics(*e.Analytics)
			}
			r.forward("staking", string(e.Type), sse.EventTypeStakingAnalytics, e.Analytics)
		case staking.EventRankings:
			r.forward("staking", string(e.Type), sse.EventTypeValidatorRankings, e.Rankings)
		default:
			r.logger.Debug().Str("type", string(e.Type)).Msg("relay_unknown_staking_event")
		}
	}))
}

func (r *Relay) forward(synthesizer, event string, eventType sse.EventType, data any) {
	if r.metrics != nil {
		r.metrics.RecordSynthEvent(synthesizer, event)
	}
	r.broadcaster.Broadcast(sse.Event{
		Type: eventType,
		ID:   strconv.FormatUint(r.seq.Add(1), 10),
		Data: data,
	})
}

func (r *Relay) track(unsubscribe func()) {
	r.mu.Lock()
	r.unsubscribes = append(r.unsubscribes, unsubscribe)
	r.mu.Unlock()
}

// Close detaches the relay from every feed
func (r *Relay) Close() {
	r.mu.Lock()
	unsubscribes := r.unsubscribes
	r.unsubscribes = nil
	r.mu.Unlock()

	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
}
