// Package staking synthesizes validator metrics and derives rankings,
// staking opportunities, delegation plans and aggregate analytics from them.
package staking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/birddigital/avax-l1-explorer/internal/pubsub"
	"github.com/birddigital/avax-l1-explorer/internal/synth"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// ErrValidatorNotFound is returned when no cached population holds a node ID
var ErrValidatorNotFound = errors.New("validator not found")

const (
	// DefaultMonitorInterval is the monitoring tick period
	DefaultMonitorInterval = 30 * time.Second

	topPerformerCount      = 10
	analyticsOpportunities = 5
	analyticsStakeAmount   = 100000
)

// EventType names the category of a monitoring event
type EventType string

const (
	EventAnalytics EventType = "analytics"
	EventRankings  EventType = "rankings"
)

// Event is published to subscribers on each monitoring step
type Event struct {
	Type      EventType
	Analytics *types.StakingAnalytics
	Rankings  []types.ValidatorRanking
}

// Option configures a Service
type Option func(*Service)

// WithSource sets the randomness and clock
func WithSource(src synth.Source) Option {
	return func(s *Service) { s.source = src }
}

// WithDataSource sets where validator samples come from
func WithDataSource(data DataSource) Option {
	return func(s *Service) { s.data = data }
}

// WithLogger sets the service logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// Service caches validator populations per L1 and derives staking views
type Service struct {
	source synth.Source
	data   DataSource
	logger zerolog.Logger

	mu          sync.Mutex
	populations map[string][]types.ValidatorMetrics
	generation  uint64
	ranks       map[types.RankingMetric]*rankSnapshot
	analytics   *types.StakingAnalytics

	hub *pubsub.Hub[Event]
}

// NewService creates a staking synthesizer. Without WithDataSource it
// generates synthetic validators from its source.
func NewService(opts ...Option) *Service {
	s := &Service{
		source:      synth.NewSource(0, nil),
		logger:      zerolog.Nop(),
		populations: make(map[string][]types.ValidatorMetrics),
		ranks:       make(map[types.RankingMetric]*rankSnapshot),
		hub:         pubsub.NewHub[Event](),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.data == nil {
		s.data = NewSyntheticSource(s.source)
	}
	return s
}

// ValidatorMetrics returns the validator population of l1ID, or of the whole
// ecosystem when l1ID is empty. Populations are cached until Refresh.
func (s *Service) ValidatorMetrics(ctx context.Context, l1ID string) ([]types.ValidatorMetrics, error) {
	s.mu.Lock()
	cached, ok := s.populations[l1ID]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	validators, err := s.fetch(ctx, l1ID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.populations[l1ID]; ok {
		return existing, nil
	}
	s.populations[l1ID] = validators
	return validators, nil
}

func (s *Service) fetch(ctx context.Context, l1ID string) ([]types.ValidatorMetrics, error) {
	samples, err := s.data.Validators(ctx, l1ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch validator metrics: %w", err)
	}
	out := make([]types.ValidatorMetrics, len(samples))
	for i, sample := range samples {
		out[i] = Build(sample)
	}
	return out, nil
}

// Refresh re-samples every cached population and invalidates analytics.
// Populations that fail to refresh keep their previous values.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	keys := make([]string, 0, len(s.populations)+1)
	keys = append(keys, "")
	for k := range s.populations {
		if k != "" {
			keys = append(keys, k)
		}
	}
	s.mu.Unlock()

	fresh := make(map[string][]types.ValidatorMetrics, len(keys))
	var errs []error
	for _, k := range keys {
		validators, err := s.fetch(ctx, k)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fresh[k] = validators
	}

	s.mu.Lock()
	for k, v := range fresh {
		s.populations[k] = v
	}
	s.generation++
	s.analytics = nil
	s.mu.Unlock()

	return errors.Join(errs...)
}

// Rankings ranks the ecosystem population by metric. Change24h is the rank
// movement since the previous population.
func (s *Service) Rankings(ctx context.Context, metric types.RankingMetric) ([]types.ValidatorRanking, error) {
	validators, err := s.ValidatorMetrics(ctx, "")
	if err != nil {
		return nil, err
	}
	if metric == "" {
		metric = types.RankByPerformance
	}

	rankings := Rank(validators, metric)

	s.mu.Lock()
	snap, ok := s.ranks[metric]
	if !ok {
		snap = &rankSnapshot{generation: s.generation}
		s.ranks[metric] = snap
	}
	snap.apply(s.generation, rankings)
	s.mu.Unlock()

	return rankings, nil
}

// Opportunities lists validators suitable for delegating amount at the
// given risk tolerance, best first
func (s *Service) Opportunities(ctx context.Context, amount float64, tolerance types.RiskLevel) ([]types.StakingOpportunity, error) {
	validators, err := s.ValidatorMetrics(ctx, "")
	if err != nil {
		return nil, err
	}
	return FindOpportunities(validators, amount, tolerance), nil
}

// Delegation recommends how to split amount across validators
func (s *Service) Delegation(ctx context.Context, amount float64, strategy types.DelegationStrategy) (types.DelegationRecommendation, error) {
	opportunities, err := s.Opportunities(ctx, amount, ToleranceFor(strategy))
	if err != nil {
		return types.DelegationRecommendation{}, err
	}
	return Allocate(opportunities, amount, strategy), nil
}

// Analytics returns the aggregate staking view. The result is cached until
// InvalidateAnalytics or Refresh.
func (s *Service) Analytics(ctx context.Context) (types.StakingAnalytics, error) {
	s.mu.Lock()
	cached := s.analytics
	s.mu.Unlock()
	if cached != nil {
		return *cached, nil
	}

	validators, err := s.ValidatorMetrics(ctx, "")
	if err != nil {
		return types.StakingAnalytics{}, err
	}
	rankings, err := s.Rankings(ctx, types.RankByPerformance)
	if err != nil {
		return types.StakingAnalytics{}, err
	}

	analytics := Summarize(validators, rankings)
	analytics.ComputedAt = s.source.Now()

	s.mu.Lock()
	s.analytics = &analytics
	s.mu.Unlock()
	return analytics, nil
}

// InvalidateAnalytics drops the cached analytics
func (s *Service) InvalidateAnalytics() {
	s.mu.Lock()
	s.analytics = nil
	s.mu.Unlock()
}

// Summarize aggregates a population. rankings must be the performance
// ranking of the same validators.
func Summarize(validators []types.ValidatorMetrics, rankings []types.ValidatorRanking) types.StakingAnalytics {
	var totalStake, uptime, commission, apy float64
	var risk types.RiskDistribution
	var distribution []types.NetworkStakeDistribution
	stakeByL1 := make(map[string]float64)
	apyByL1 := make(map[string]float64)
	index := make(map[string]int)

	for _, v := range validators {
		totalStake += v.Stake.TotalStake
		uptime += v.Uptime
		commission += v.Commission
		apy += v.Performance.Profitability

		switch v.Performance.RiskLevel {
		case types.RiskLow:
			risk.Low++
		case types.RiskMedium:
			risk.Medium++
		case types.RiskHigh:
			risk.High++
		}

		i, ok := index[v.L1Name]
		if !ok {
			i = len(distribution)
			index[v.L1Name] = i
			distribution = append(distribution, types.NetworkStakeDistribution{L1Name: v.L1Name})
		}
		distribution[i].ValidatorCount++
		stakeByL1[v.L1Name] += v.Stake.TotalStake
		apyByL1[v.L1Name] += v.Performance.Profitability
	}

	for i := range distribution {
		d := &distribution[i]
		d.TotalStake = FormatAVAX(stakeByL1[d.L1Name])
		d.AverageAPY = apyByL1[d.L1Name] / float64(d.ValidatorCount)
	}

	top := rankings
	if len(top) > topPerformerCount {
		top = top[:topPerformerCount]
	}
	opportunities := FindOpportunities(validators, analyticsStakeAmount, types.RiskMedium)
	if len(opportunities) > analyticsOpportunities {
		opportunities = opportunities[:analyticsOpportunities]
	}

	a := types.StakingAnalytics{
		TotalValidators:      len(validators),
		TotalStaked:          FormatAVAX(totalStake),
		TopPerformers:        top,
		StakingOpportunities: opportunities,
		NetworkDistribution:  distribution,
		RiskDistribution:     risk,
	}
	if n := float64(len(validators)); n > 0 {
		a.AverageUptime = uptime / n
		a.AverageCommission = commission / n
		a.AverageAPY = apy / n
	}
	return a
}

// Profile finds a validator by node ID in any cached population, loading
// the ecosystem population first if needed
func (s *Service) Profile(ctx context.Context, nodeID string) (types.ValidatorMetrics, error) {
	if _, err := s.ValidatorMetrics(ctx, ""); err != nil {
		return types.ValidatorMetrics{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, population := range s.populations {
		for _, v := range population {
			if v.NodeID == nodeID {
				return v, nil
			}
		}
	}
	return types.ValidatorMetrics{}, fmt.Errorf("%w: %s", ErrValidatorNotFound, nodeID)
}

// Subscribe registers fn for monitoring events
func (s *Service) Subscribe(fn func(Event)) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

// StartMonitoring refreshes the populations and publishes analytics then
// rankings every interval until the returned task is stopped
func (s *Service) StartMonitoring(ctx context.Context, interval time.Duration) *pubsub.Task {
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	s.logger.Info().Dur("interval", interval).Msg("validator_monitoring_started")
	return pubsub.Every(ctx, interval, s.tick)
}

// StopMonitoring cancels a task returned by StartMonitoring
func (s *Service) StopMonitoring(task *pubsub.Task) {
	task.Stop()
	s.logger.Info().Msg("validator_monitoring_stopped")
}

func (s *Service) tick(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("validator_refresh_partial")
	}

	analytics, err := s.Analytics(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("validator_monitoring_failed")
		return
	}
	s.hub.Publish(Event{Type: EventAnalytics, Analytics: &analytics})

	rankings, err := s.Rankings(ctx, types.RankByPerformance)
	if err != nil {
		s.logger.Error().Err(err).Msg("validator_monitoring_failed")
		return
	}
	s.hub.Publish(Event{Type: EventRankings, Rankings: rankings})
}
