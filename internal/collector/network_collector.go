// Package collector keeps the network listing warm in the cache and relays
// synthesizer events to live stream clients.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/birddigital/avax-l1-explorer/internal/cache"
	"github.com/birddigital/avax-l1-explorer/internal/metrics"
	"github.com/birddigital/avax-l1-explorer/internal/pubsub"
	"github.com/birddigital/avax-l1-explorer/internal/registry"
	"github.com/birddigital/avax-l1-explorer/internal/web/sse"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// Lister produces network listings; implemented by *registry.Adapter
type Lister interface {
	ListNetworks(ctx context.Context) registry.Listing
}

// Broadcaster fans events out to stream clients; implemented by
// *sse.Broadcaster
type Broadcaster interface {
	Broadcast(event sse.Event)
}

// CollectorConfig contains configuration for the network collector
type CollectorConfig struct {
	RefreshInterval time.Duration
	TTL             cache.TTLStrategy
}

// DefaultCollectorConfig returns default collector configuration
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		RefreshInterval: 60 * time.Second,
		TTL:             cache.DefaultTTLStrategy(),
	}
}

// NetworkCollector serves network listings through the cache and refreshes
// them periodically
type NetworkCollector struct {
	lister      Lister
	store       cache.Store
	broadcaster Broadcaster
	metrics     *metrics.ExplorerMetrics
	config      CollectorConfig
	logger      zerolog.Logger

	refreshMu sync.Mutex

	mu          sync.RWMutex
	latest      registry.Listing
	lastRefresh time.Time
	refreshes   uint64
	cacheErrors uint64

	task *pubsub.Task
}

// CollectorOption configures a NetworkCollector
type CollectorOption func(*NetworkCollector)

// WithBroadcaster publishes networks-update events after each refresh
func WithBroadcaster(b Broadcaster) CollectorOption {
	return func(c *NetworkCollector) { c.broadcaster = b }
}

// WithMetrics records listing gauges after each refresh
func WithMetrics(m *metrics.ExplorerMetrics) CollectorOption {
	return func(c *NetworkCollector) { c.metrics = m }
}

// WithLogger sets the collector logger
func WithLogger(logger zerolog.Logger) CollectorOption {
	return func(c *NetworkCollector) { c.logger = logger }
}

// NewNetworkCollector creates a new network collector
func NewNetworkCollector(lister Lister, store cache.Store, config CollectorConfig, opts ...CollectorOption) *NetworkCollector {
	defaults := DefaultCollectorConfig()
	if config.RefreshInterval <= 0 {
		config.RefreshInterval = defaults.RefreshInterval
	}
	if config.TTL == (cache.TTLStrategy{}) {
		config.TTL = defaults.TTL
	}

	c := &NetworkCollector{
		lister: lister,
		store:  store,
		config: config,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Listing returns the cached listing, refreshing it on a miss
func (c *NetworkCollector) Listing(ctx context.Context) (registry.Listing, error) {
	if err := ctx.Err(); err != nil {
		return registry.Listing{}, err
	}

	var listing registry.Listing
	err := c.store.Get(ctx, cache.NetworkListKey, &listing)
	if err == nil {
		return listing, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		c.cacheFailed(err, "network_cache_read_failed")
	}
	return c.Refresh(ctx)
}

// Network returns one network by ID, from the cache when possible
func (c *NetworkCollector) Network(ctx context.Context, id string) (types.Network, error) {
	var network types.Network
	err := c.store.Get(ctx, cache.NetworkKey(id), &network)
	if err == nil {
		return network, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		c.cacheFailed(err, "network_cache_read_failed")
	}

	listing, err := c.Listing(ctx)
	if err != nil {
		return types.Network{}, err
	}
	network, err = registry.Find(listing.Networks, id)
	if err != nil {
		return types.Network{}, err
	}

	if err := c.store.Set(ctx, cache.NetworkKey(id), network, c.config.TTL.NetworkDetail); err != nil {
		c.cacheFailed(err, "network_cache_write_failed")
	}
	return network, nil
}

// Refresh lists networks from the registry, stores them in the cache and
// announces the new listing. Concurrent calls are serialized.
func (c *NetworkCollector) Refresh(ctx context.Context) (registry.Listing, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	start := time.Now()
	listing := c.lister.ListNetworks(ctx)
	if err := ctx.Err(); err != nil {
		return registry.Listing{}, fmt.Errorf("network refresh cancelled: %w", err)
	}
	took := time.Since(start)

	c.storeListing(ctx, listing)

	c.mu.Lock()
	c.latest = listing
	c.lastRefresh = listing.UpdatedAt
	c.refreshes++
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.RecordNetworks(string(listing.Origin), listing.Networks, took)
	}
	if c.broadcaster != nil {
		c.broadcaster.Broadcast(sse.Event{
			Type: sse.EventTypeNetworksUpdate,
			Data: sse.NetworksUpdateData{
				Total:       len(listing.Networks),
				Origin:      string(listing.Origin),
				LastUpdated: listing.UpdatedAt.Unix(),
			},
		})
	}

	c.logger.Info().
		Int("networks", len(listing.Networks)).
		Str("origin", string(listing.Origin)).
		Dur("took", took).
		Msg("networks_refreshed")

	return listing, nil
}

func (c *NetworkCollector) storeListing(ctx context.Context, listing registry.Listing) {
	if err := c.store.Set(ctx, cache.NetworkListKey, listing, c.config.TTL.NetworkList); err != nil {
		c.cacheFailed(err, "network_cache_write_failed")
		return
	}

	details := make(map[string]any, len(listing.Networks))
	for _, n := range listing.Networks {
		details[cache.NetworkKey(n.ID)] = n
	}
	if err := c.store.BatchSet(ctx, details, c.config.TTL.NetworkDetail); err != nil {
		c.cacheFailed(err, "network_cache_write_failed")
	}
}

func (c *NetworkCollector) cacheFailed(err error, msg string) {
	c.mu.Lock()
	c.cacheErrors++
	c.mu.Unlock()
	c.logger.Warn().Err(err).Msg(msg)
}

// IDs returns the network IDs of the latest refresh
func (c *NetworkCollector) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, len(c.latest.Networks))
	for i, n := range c.latest.Networks {
		ids[i] = n.ID
	}
	return ids
}

// Name resolves a chain or subnet ID to its display name from the latest
// refresh. It returns "" when the ID is unknown.
func (c *NetworkCollector) Name(id string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, n := range c.latest.Networks {
		if n.ID == id || n.SubnetID == id {
			return n.Name
		}
	}
	return ""
}

// SubnetID resolves a chain ID to the subnet that validates it. A subnet
// ID resolves to itself; unknown IDs resolve to "".
func (c *NetworkCollector) SubnetID(id string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, n := range c.latest.Networks {
		if n.ID == id || n.SubnetID == id {
			return n.SubnetID
		}
	}
	return ""
}

// Start refreshes once and then every RefreshInterval until Stop
func (c *NetworkCollector) Start(ctx context.Context) {
	if _, err := c.Refresh(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("initial_network_refresh_failed")
	}

	task := pubsub.Every(ctx, c.config.RefreshInterval, func(ctx context.Context) {
		if _, err := c.Refresh(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("network_refresh_failed")
		}
	})

	c.mu.Lock()
	c.task = task
	c.mu.Unlock()

	c.logger.Info().Dur("interval", c.config.RefreshInterval).Msg("network_collector_started")
}

// Stop ends the refresh loop and waits for an in-flight refresh
func (c *NetworkCollector) Stop() {
	c.mu.Lock()
	task := c.task
	c.task = nil
	c.mu.Unlock()

	if task == nil {
		return
	}
	task.Stop()
	c.logger.Info().Msg("network_collector_stopped")
}

// CollectorStats is a point-in-time view of the collector
type CollectorStats struct {
	Networks    int       `json:"networks"`
	Origin      string    `json:"origin"`
	LastRefresh time.Time `json:"lastRefresh"`
	Refreshes   uint64    `json:"refreshes"`
	CacheErrors uint64    `json:"cacheErrors"`
}

// Stats returns collector statistics
func (c *NetworkCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CollectorStats{
		Networks:    len(c.latest.Networks),
		Origin:      string(c.latest.Origin),
		LastRefresh: c.lastRefresh,
		Refreshes:   c.refreshes,
		CacheErrors: c.cacheErrors,
	}
}
