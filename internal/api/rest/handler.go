package rest

import (
	"context"

	"github.com/birddigital/avax-l1-explorer/internal/collector"
	"github.com/birddigital/avax-l1-explorer/internal/registry"
	"github.com/birddigital/avax-l1-explorer/internal/services/health"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// Networks serves the cached network registry
type Networks interface {
	Listing(ctx context.Context) (registry.Listing, error)
	Network(ctx context.Context, id string) (types.Network, error)
	IDs() []string
}

// Performance synthesizes per-network performance panels
type Performance interface {
	GetPerformance(ctx context.Context, l1ID string) types.NetworkPerformance
	GetAllPerformance(ctx context.Context, l1IDs []string) []types.NetworkPerformance
	ICMActivity(ctx context.Context, l1ID string) types.ICMActivity
	ValidatorPerformance(ctx context.Context, l1ID string) []types.ValidatorPerformance
}

// ICM synthesizes cross-chain messaging analytics
type ICM interface {
	Messages(ctx context.Context, l1ID string, limit int) ([]types.ICMMessage, error)
	Routes(ctx context.Context) ([]types.ICMRoute, error)
	Analytics(ctx context.Context) (types.ICMAnalytics, error)
	MessageFlow(ctx context.Context) []types.MessageFlow
	NetworkStats(ctx context.Context, l1ID string) types.ICMNetworkStats
}

// Staking synthesizes validator and delegation views
type Staking interface {
	ValidatorMetrics(ctx context.Context, l1ID string) ([]types.ValidatorMetrics, error)
	Rankings(ctx context.Context, metric types.RankingMetric) ([]types.ValidatorRanking, error)
	Opportunities(ctx context.Context, amount float64, tolerance types.RiskLevel) ([]types.StakingOpportunity, error)
	Delegation(ctx context.Context, amount float64, strategy types.DelegationStrategy) (types.DelegationRecommendation, error)
	Analytics(ctx context.Context) (types.StakingAnalytics, error)
	Profile(ctx context.Context, nodeID string) (types.ValidatorMetrics, error)
}

// HealthReporter exposes component health
type HealthReporter interface {
	Check(ctx context.Context) health.Report
	Report() health.Report
	Checked() bool
}

// CollectorStats reports network refresh counters;
// implemented by *collector.NetworkCollector
type CollectorStats interface {
	Stats() collector.CollectorStats
}

// CacheStats reports backend statistics; implemented by cache.Store
type CacheStats interface {
	Stats(ctx context.Context) (map[string]any, error)
}

// Lifecycle reports whether the process is shutting down;
// implemented by *collector.ShutdownManager
type Lifecycle interface {
	IsShuttingDown() bool
}

// Handler holds the dependencies of every JSON endpoint
type Handler struct {
	networks    Networks
	performance Performance
	icm         ICM
	staking     Staking
	health      HealthReporter
	collector   CollectorStats
	cache       CacheStats
	lifecycle   Lifecycle
	version     string
}

// Deps groups the services a Handler reads from. Health, Collector, Cache
// and Lifecycle may be nil.
type Deps struct {
	Networks    Networks
	Performance Performance
	ICM         ICM
	Staking     Staking
	Health      HealthReporter
	Collector   CollectorStats
	Cache       CacheStats
	Lifecycle   Lifecycle
	Version     string
}

// NewHandler creates the JSON API handler set
func NewHandler(deps Deps) *Handler {
	version := deps.Version
	if version == "" {
		version = "1.0.0"
	}
	return &Handler{
		networks:    deps.Networks,
		performance: deps.Performance,
		icm:         deps.ICM,
		staking:     deps.Staking,
		health:      deps.Health,
		collector:   deps.Collector,
		cache:       deps.Cache,
		lifecycle:   deps.Lifecycle,
		version:     version,
	}
}
