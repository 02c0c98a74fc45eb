// Package registry lists Avalanche L1 networks from the platform chain and
// enriches them with display metadata.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/birddigital/avax-l1-explorer/internal/synth"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// ErrNotFound is returned when no network matches the requested ID
var ErrNotFound = errors.New("network not found")

// PlatformAPI is the subset of the P-chain API the adapter needs
type PlatformAPI interface {
	GetBlockchains(ctx context.Context) ([]types.Blockchain, error)
	GetCurrentValidators(ctx context.Context, subnetID string) ([]types.PlatformValidator, error)
}

// BlockHeighter returns the latest block height served at an endpoint
type BlockHeighter interface {
	BlockNumber(ctx context.Context, endpoint string) (uint64, error)
}

// Origin tells whether a listing came from the live chain or the fallback
type Origin string

const (
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
)

// Listing is the result of a registry fetch
type Listing struct {
	Networks  []types.Network `json:"networks"`
	Origin    Origin          `json:"origin"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Options configures an Adapter
type Options struct {
	// MaxValidators caps the validator summaries kept per network
	MaxValidators int
	// Concurrency bounds parallel per-chain validator fetches
	Concurrency int
	// ChainRPCTemplate, when set, is formatted with a chain ID to build the
	// chain's EVM endpoint for block height lookups
	ChainRPCTemplate string
}

// DefaultOptions returns the adapter defaults
func DefaultOptions() Options {
	return Options{
		MaxValidators: 20,
		Concurrency:   8,
	}
}

// Adapter turns raw platform chain data into explorer networks
type Adapter struct {
	platform PlatformAPI
	heights  BlockHeighter
	source   synth.Source
	opts     Options
	logger   zerolog.Logger
}

// NewAdapter creates a registry adapter. heights may be nil.
func NewAdapter(platform PlatformAPI, heights BlockHeighter, source synth.Source, opts Options, logger zerolog.Logger) *Adapter {
	if opts.MaxValidators <= 0 {
		opts.MaxValidators = DefaultOptions().MaxValidators
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultOptions().Concurrency
	}
	return &Adapter{
		platform: platform,
		heights:  heights,
		source:   source,
		opts:     opts,
		logger:   logger,
	}
}

// ListNetworks returns every meaningful L1 network. It never fails: when the
// chain list cannot be fetched the static fallback dataset is returned.
func (a *Adapter) ListNetworks(ctx context.Context) Listing {
	now := a.source.Now()

	chains, err := a.platform.GetBlockchains(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("rpc_fallback_engaged")
		return Listing{Networks: FallbackNetworks(now), Origin: OriginFallback, UpdatedAt: now}
	}

	var meaningful []types.Blockchain
	for _, chain := range chains {
		if IsMeaningfulChain(chain.Name) {
			meaningful = append(meaningful, chain)
		}
	}

	networks := make([]types.Network, len(meaningful))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Concurrency)
	for i, chain := range meaningful {
		g.Go(func() error {
			network, err := a.enrich(gctx, chain, now)
			if err != nil {
				a.logger.Warn().
					Err(err).
					Str("chain_id", chain.ID).
					Str("chain_name", chain.Name).
					Msg("chain_enrichment_failed")
				network = degraded(chain, now)
			}
			networks[i] = network
			return nil
		})
	}
	_ = g.Wait()

	a.logger.Debug().
		Int("chains", len(chains)).
		Int("networks", len(networks)).
		Msg("networks_listed")

	return Listing{Networks: networks, Origin: OriginLive, UpdatedAt: now}
}

// GetNetwork returns the network with the given ID
func (a *Adapter) GetNetwork(ctx context.Context, id string) (types.Network, error) {
	return Find(a.ListNetworks(ctx).Networks, id)
}

// Find returns the network with the given ID from networks
func Find(networks []types.Network, id string) (types.Network, error) {
	for _, n := range networks {
		if n.ID == id {
			return n, nil
		}
	}
	return types.Network{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (a *Adapter) enrich(ctx context.Context, chain types.Blockchain, now time.Time) (types.Network, error) {
	raw, err := a.platform.GetCurrentValidators(ctx, chain.SubnetID)
	if err != nil {
		return types.Network{}, fmt.Errorf("failed to fetch validators for subnet %s: %w", chain.SubnetID, err)
	}

	kept := raw
	if len(kept) > a.opts.MaxValidators {
		kept = kept[:a.opts.MaxValidators]
	}
	validators := make([]types.ValidatorSummary, 0, len(kept))
	for _, v := range kept {
		validators = append(validators, summarize(v))
	}

	status := types.NetworkInactive
	if len(raw) > 0 {
		status = types.NetworkActive
	}

	return types.Network{
		ID:             chain.ID,
		Name:           FormatNetworkName(chain.Name),
		SubnetID:       chain.SubnetID,
		VMID:           chain.VMID,
		Description:    Describe(chain.Name),
		Website:        Website(chain.Name),
		TokenSymbol:    TokenSymbol(chain.Name),
		ValidatorCount: len(raw),
		Validators:     validators,
		Status:         status,
		ICMEnabled:     IsICMEnabled(chain.VMID),
		TotalSupply:    "N/A",
		CreatedAt:      "N/A",
		BlockHeight:    a.blockHeight(ctx, chain),
		LastBlockTime:  now,
		AvgBlockTime:   2.0,
		TPS:            synth.Range(a.source, 20, 70),
	}, nil
}

// blockHeight is best effort; failures report 0
func (a *Adapter) blockHeight(ctx context.Context, chain types.Blockchain) uint64 {
	if a.heights == nil || a.opts.ChainRPCTemplate == "" {
		return 0
	}
	endpoint := fmt.Sprintf(a.opts.ChainRPCTemplate, chain.ID)
	height, err := a.heights.BlockNumber(ctx, endpoint)
	if err != nil {
		a.logger.Debug().Err(err).Str("chain_id", chain.ID).Msg("block_height_unavailable")
		return 0
	}
	return height
}

func summarize(v types.PlatformValidator) types.ValidatorSummary {
	uptime := 99.0
	if u, err := strconv.ParseFloat(strings.TrimSpace(v.Uptime), 64); err == nil {
		uptime = u
	}
	connected := true
	if v.Connected != nil {
		connected = *v.Connected
	}
	weight := v.Weight
	if weight == "" {
		weight = v.StakeAmount
	}
	return types.ValidatorSummary{
		NodeID:    v.NodeID,
		Stake:     FormatStake(weight),
		Uptime:    uptime,
		Connected: connected,
	}
}

func degraded(chain types.Blockchain, now time.Time) types.Network {
	return types.Network{
		ID:            chain.ID,
		Name:          FormatNetworkName(chain.Name),
		SubnetID:      chain.SubnetID,
		VMID:          chain.VMID,
		Description:   chain.Name + " blockchain on Avalanche",
		TokenSymbol:   strings.ToUpper(chain.Name),
		Validators:    []types.ValidatorSummary{},
		Status:        types.NetworkUnknown,
		TotalSupply:   "N/A",
		CreatedAt:     "N/A",
		LastBlockTime: now,
	}
}
