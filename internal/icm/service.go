// Package icm synthesizes interchain messaging analytics: messages, route
// health, aggregate efficiency and flow between L1s.
package icm

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/birddigital/avax-l1-explorer/internal/pubsub"
	"github.com/birddigital/avax-l1-explorer/internal/synth"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

const (
	// DefaultMonitorInterval is the monitoring tick period
	DefaultMonitorInterval = 10 * time.Second
	// DefaultMessageLimit is the message count used when none is given
	DefaultMessageLimit = 50
	// monitorMessageLimit is the message count published per tick
	monitorMessageLimit = 20
	// topRouteCount is the number of routes kept in analytics
	topRouteCount = 5
)

// EventType names the category of a monitoring event
type EventType string

const (
	EventAnalytics EventType = "analytics"
	EventRoutes    EventType = "routes"
	EventMessages  EventType = "messages"
)

// Event is published to subscribers on each monitoring step
type Event struct {
	Type      EventType
	Analytics *types.ICMAnalytics
	Routes    []types.ICMRoute
	Messages  []types.ICMMessage
}

// Option configures a Service
type Option func(*Service)

// WithSource sets the randomness and clock used for flows and stats
func WithSource(src synth.Source) Option {
	return func(s *Service) { s.source = src }
}

// WithDataSource sets where messages and routes come from
func WithDataSource(data DataSource) Option {
	return func(s *Service) { s.data = data }
}

// WithLogger sets the service logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// Service generates ICM views and publishes them to subscribers. Every
// call reads fresh data from the source.
type Service struct {
	source synth.Source
	data   DataSource
	logger zerolog.Logger

	hub *pubsub.Hub[Event]
}

// NewService creates an ICM synthesizer. Without WithDataSource it
// generates synthetic data from its source.
func NewService(opts ...Option) *Service {
	s := &Service{
		source: synth.NewSource(0, nil),
		logger: zerolog.Nop(),
		hub:    pubsub.NewHub[Event](),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.data == nil {
		s.data = NewSyntheticSource(s.source)
	}
	return s
}

// Messages returns up to limit recent messages, optionally for one L1
func (s *Service) Messages(ctx context.Context, l1ID string, limit int) ([]types.ICMMessage, error) {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	messages, err := s.data.Messages(ctx, l1ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ICM messages: %w", err)
	}
	return messages, nil
}

// Routes returns the current routes with their health classified
func (s *Service) Routes(ctx context.Context) ([]types.ICMRoute, error) {
	raw, err := s.data.Routes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ICM routes: %w", err)
	}

	routes := make([]types.ICMRoute, len(raw))
	copy(routes, raw)
	for i := range routes {
		routes[i].RouteHealth = ClassifyRoute(routes[i].AvgLatency, routes[i].FailureRate)
	}
	return routes, nil
}

// Analytics aggregates a fresh set of routes and messages
func (s *Service) Analytics(ctx context.Context) (types.ICMAnalytics, error) {
	routes, err := s.Routes(ctx)
	if err != nil {
		return types.ICMAnalytics{}, err
	}
	messages, err := s.Messages(ctx, "", DefaultMessageLimit)
	if err != nil {
		return types.ICMAnalytics{}, err
	}
	return Aggregate(routes, messages), nil
}

// Aggregate computes analytics over routes and messages
func Aggregate(routes []types.ICMRoute, messages []types.ICMMessage) types.ICMAnalytics {
	active := 0
	for _, r := range routes {
		if r.IsActive {
			active++
		}
	}

	sorted := make([]types.ICMRoute, len(routes))
	copy(sorted, routes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MessagesLast24h > sorted[j].MessagesLast24h
	})
	if len(sorted) > topRouteCount {
		sorted = sorted[:topRouteCount]
	}

	top := make([]types.TopRoute, 0, len(sorted))
	for _, r := range sorted {
		top = append(top, types.TopRoute{
			Route:   r.SourceL1 + " → " + r.DestinationL1,
			Volume:  r.MessagesLast24h,
			Latency: r.AvgLatency,
		})
	}

	return types.ICMAnalytics{
		TotalMessages24h:        len(messages),
		TotalRoutes:             len(routes),
		ActiveRoutes:            active,
		AvgCrossChainLatency:    AverageLatency(routes),
		NetworkEfficiency:       NetworkEfficiency(routes),
		TopRoutes:               top,
		MessageTypeDistribution: Distribution(messages),
	}
}

// MessageFlow samples the source/destination flow matrix; each ordered pair
// is connected with probability 0.7
func (s *Service) MessageFlow(ctx context.Context) []types.MessageFlow {
	var flows []types.MessageFlow
	for _, from := range routePool {
		for _, to := range routePool {
			if from == to || s.source.Float64() <= 0.3 {
				continue
			}
			count := synth.IntRange(s.source, 50, 550)
			flows = append(flows, types.MessageFlow{
				From:       from,
				To:         to,
				Count:      count,
				Volume:     fmt.Sprintf("%.1f AVAX", float64(count)*synth.Range(s.source, 1, 11)),
				AvgLatency: synth.Range(s.source, 500, 3500),
			})
		}
	}
	return flows
}

// NetworkStats synthesizes the messaging footprint of one L1
func (s *Service) NetworkStats(ctx context.Context, l1ID string) types.ICMNetworkStats {
	name := synth.Pick(s.source, routePool)
	peers := without(routePool, name)
	if n := synth.IntRange(s.source, 2, 6); n < len(peers) {
		peers = peers[:n]
	}

	bridges := make([]types.BridgeConnection, 0, len(peers))
	for _, peer := range peers {
		bridges = append(bridges, types.BridgeConnection{
			L1ID:       "l1_" + peer,
			L1Name:     peer,
			BridgeType: synth.Pick(s.source, types.BridgeTypes),
			IsActive:   s.source.Float64() > 0.1,
		})
	}

	return types.ICMNetworkStats{
		L1ID:               l1ID,
		L1Name:             name,
		TotalMessagesIn:    synth.IntRange(s.source, 500, 5500),
		TotalMessagesOut:   synth.IntRange(s.source, 500, 5500),
		ConnectedL1s:       len(peers),
		MessageVolume24h:   synth.IntRange(s.source, 100, 1100),
		AvgIncomingLatency: synth.Range(s.source, 800, 2800),
		AvgOutgoingLatency: synth.Range(s.source, 800, 2800),
		FailureRate:        synth.Range(s.source, 0, 3),
		Capabilities: types.ICMCapabilities{
			NativeMessaging: true,
			ContractCalls:   s.source.Float64() > 0.3,
			AssetTransfers:  s.source.Float64() > 0.2,
			CustomProtocols: s.source.Float64() > 0.5,
		},
		BridgeConnections: bridges,
	}
}

// Subscribe registers fn for monitoring events
func (s *Service) Subscribe(fn func(Event)) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

// StartMonitoring publishes analytics, routes and messages, in that order,
// every interval until the returned task is stopped
func (s *Service) StartMonitoring(ctx context.Context, interval time.Duration) *pubsub.Task {
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	s.logger.Info().Dur("interval", interval).Msg("icm_monitoring_started")
	return pubsub.Every(ctx, interval, s.tick)
}

// StopMonitoring cancels a task returned by StartMonitoring
func (s *Service) StopMonitoring(task *pubsub.Task) {
	task.Stop()
	s.logger.Info().Msg("icm_monitoring_stopped")
}

func (s *Service) tick(ctx context.Context) {
	analytics, err := s.Analytics(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("icm_monitoring_failed")
		return
	}
	s.hub.Publish(Event{Type: EventAnalytics, Analytics: &analytics})

	routes, err := s.Routes(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("icm_monitoring_failed")
		return
	}
	s.hub.Publish(Event{Type: EventRoutes, Routes: routes})

	messages, err := s.Messages(ctx, "", monitorMessageLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("icm_monitoring_failed")
		return
	}
	s.hub.Publish(Event{Type: EventMessages, Messages: messages})
}
