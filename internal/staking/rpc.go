package staking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/birddigital/avax-l1-explorer/internal/synth"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

const (
	// nAVAXPerAVAX converts platform chain weights to AVAX
	nAVAXPerAVAX = 1e9
	// delegationMultiplier caps delegated stake at this multiple of self stake
	delegationMultiplier = 4
	// primaryNetworkName labels validators of the primary network
	primaryNetworkName = "Primary Network"
)

// ErrUnknownL1 is returned when an L1 cannot be mapped to a subnet
var ErrUnknownL1 = errors.New("unknown L1")

// ValidatorLister lists the current validators of a subnet
type ValidatorLister interface {
	GetCurrentValidators(ctx context.Context, subnetID string) ([]types.PlatformValidator, error)
}

// NetworkResolver maps an L1 chain ID to its validating subnet and display
// name; implemented by *collector.NetworkCollector
type NetworkResolver interface {
	SubnetID(l1ID string) string
	Name(l1ID string) string
}

// RPCSource reads validators from the platform chain. An empty l1ID selects
// the primary network. Observations the platform chain does not report are
// sampled synthetically.
type RPCSource struct {
	platform ValidatorLister
	filler   *SyntheticSource
	networks NetworkResolver
}

// NewRPCSource creates a platform chain backed source. Without a resolver
// l1ID is sent as the subnet ID unchanged.
func NewRPCSource(platform ValidatorLister, src synth.Source, networks NetworkResolver) *RPCSource {
	return &RPCSource{
		platform: platform,
		filler:   NewSyntheticSource(src),
		networks: networks,
	}
}

// Validators fetches and converts the current validator set
func (r *RPCSource) Validators(ctx context.Context, l1ID string) ([]Sample, error) {
	subnetID, err := r.subnetID(l1ID)
	if err != nil {
		return nil, err
	}

	raw, err := r.platform.GetCurrentValidators(ctx, subnetID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch validators for %q: %w", l1ID, err)
	}

	name := r.l1Name(l1ID)
	now := r.filler.src.Now()
	out := make([]Sample, 0, len(raw))
	for i, v := range raw {
		s := convert(v)
		s.L1ID = l1ID
		s.L1Name = name
		r.filler.fill(&s, now, i)
		out = append(out, s)
	}
	return out, nil
}

func (r *RPCSource) subnetID(l1ID string) (string, error) {
	if l1ID == "" || r.networks == nil {
		return l1ID, nil
	}
	subnetID := r.networks.SubnetID(l1ID)
	if subnetID == "" {
		return "", fmt.Errorf("%w: no subnet known for %q", ErrUnknownL1, l1ID)
	}
	return subnetID, nil
}

func (r *RPCSource) l1Name(l1ID string) string {
	if r.networks != nil {
		if n := r.networks.Name(l1ID); n != "" {
			return n
		}
	}
	if l1ID == "" {
		return primaryNetworkName
	}
	return l1ID
}

// convert maps the fields the platform chain reports
func convert(v types.PlatformValidator) Sample {
	self := avax(v.StakeAmount)
	if self == 0 {
		self = avax(v.Weight)
	}
	delegated := avax(v.DelegatorWeight)

	uptime := 99.0
	if u, err := strconv.ParseFloat(v.Uptime, 64); err == nil {
		uptime = u
	}
	fee, _ := strconv.ParseFloat(v.DelegationFee, 64)
	count, _ := strconv.Atoi(v.DelegatorCount)

	var capacity float64
	if self > 0 {
		capacity = clamp(0, 100, delegated/(self*delegationMultiplier)*100)
	}

	s := Sample{
		NodeID:          v.NodeID,
		SelfStake:       self,
		DelegatedStake:  delegated,
		Uptime:          uptime,
		Commission:      fee,
		DelegationFee:   fee,
		Capacity:        capacity,
		IsActive:        v.Connected == nil || *v.Connected,
		TotalEarned:     avax(v.PotentialReward),
		DelegatorCount:  count,
		DelegationSplit: count,
	}

	start, startOK := unix(v.StartTime)
	end, endOK := unix(v.EndTime)
	if startOK && endOK {
		s.StartTime = start
		s.EndTime = end
		s.DurationDays = int(end.Sub(start) / day)
	}
	return s
}

func avax(nAVAX string) float64 {
	n, err := strconv.ParseFloat(nAVAX, 64)
	if err != nil {
		return 0
	}
	return n / nAVAXPerAVAX
}

func unix(s string) (time.Time, bool) {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(sec, 0).UTC(), true
}

// FallbackSource serves from primary and switches to secondary for any
// call where primary fails
type FallbackSource struct {
	primary   DataSource
	secondary DataSource
	logger    zerolog.Logger
}

// NewFallbackSource chains two sources
func NewFallbackSource(primary, secondary DataSource, logger zerolog.Logger) *FallbackSource {
	return &FallbackSource{primary: primary, secondary: secondary, logger: logger}
}

// Validators implements DataSource
func (f *FallbackSource) Validators(ctx context.Context, l1ID string) ([]Sample, error) {
	samples, err := f.primary.Validators(ctx, l1ID)
	if err == nil {
		return samples, nil
	}

	f.logger.Warn().
		Err(err).
		Str("l1_id", l1ID).
		Msg("staking_source_fallback")
	return f.secondary.Validators(ctx, l1ID)
}
