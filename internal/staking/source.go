package staking

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/birddigital/avax-l1-explorer/internal/synth"
	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// Sample holds the raw observations for one validator. Derived scores are
// computed by Build.
type Sample struct {
	NodeID         string
	L1ID           string
	L1Name         string
	SelfStake      float64
	DelegatedStake float64
	Uptime         float64
	UptimeRank     int
	Commission     float64
	DelegationFee  float64
	// Capacity is the share of the delegation limit already used, in percent
	Capacity       float64
	IsActive       bool
	MissedBlocks   int
	ProposedBlocks int
	ResponseTime   float64
	StartTime      time.Time
	EndTime        time.Time
	DurationDays   int
	Location       types.Location
	TotalEarned    float64
	LastReward     time.Time
	DelegatorCount int
	// DelegationSplit divides delegated stake into an average delegation
	DelegationSplit int
	Reputation      float64
	Website         string
	Twitter         string
}

// DataSource produces raw validator samples for an L1, or for the whole
// ecosystem when l1ID is empty
type DataSource interface {
	Validators(ctx context.Context, l1ID string) ([]Sample, error)
}

var (
	l1Names        = []string{"GUNZ", "Beam", "Dexalot", "Shrapnel", "Merit Circle", "DFK", "Numbers Protocol"}
	validatorNames = []string{"Avalanche Foundation", "Coinbase Validator", "Kraken Staking", "Figment", "P2P Validator", "Everstake", "Stakin", "ChainFlow", "Delight Labs", "NodeReal"}
	countries      = []string{"United States", "Germany", "Singapore", "Canada", "United Kingdom", "Netherlands", "Japan", "Switzerland"}
	regions        = map[string]string{
		"United States":  "North America",
		"Canada":         "North America",
		"Germany":        "Europe",
		"United Kingdom": "Europe",
		"Netherlands":    "Europe",
		"Switzerland":    "Europe",
		"Singapore":      "Asia Pacific",
		"Japan":          "Asia Pacific",
	}
)

const (
	ecosystemPopulation = 50
	nodeIDLength        = 40
	day                 = 24 * time.Hour
)

type identity struct {
	nodeID string
	l1ID   string
	l1Name string
	index  int
}

// SyntheticSource generates validator populations. Node identities are
// fixed per L1 key on first use; every call re-samples their metrics.
type SyntheticSource struct {
	src synth.Source

	mu         sync.Mutex
	identities map[string][]identity
}

// NewSyntheticSource creates a generator driven by src
func NewSyntheticSource(src synth.Source) *SyntheticSource {
	return &SyntheticSource{
		src:        src,
		identities: make(map[string][]identity),
	}
}

// Validators samples the population for l1ID: 50 validators spread over the
// known L1s when l1ID is empty, otherwise between 5 and 19.
func (g *SyntheticSource) Validators(ctx context.Context, l1ID string) ([]Sample, error) {
	ids := g.population(l1ID)
	out := make([]Sample, len(ids))
	for i, id := range ids {
		out[i] = g.sample(id)
	}
	return out, nil
}

func (g *SyntheticSource) population(l1ID string) []identity {
	g.mu.Lock()
	defer g.mu.Unlock()

	if ids, ok := g.identities[l1ID]; ok {
		return ids
	}

	count := ecosystemPopulation
	if l1ID != "" {
		count = synth.IntRange(g.src, 5, 20)
	}

	ids := make([]identity, count)
	for i := range ids {
		key := l1ID
		if key == "" {
			key = "l1_" + strconv.Itoa(i)
		}
		ids[i] = identity{
			nodeID: synth.NodeID(g.src, nodeIDLength),
			l1ID:   key,
			l1Name: synth.Pick(g.src, l1Names),
			index:  i,
		}
	}
	g.identities[l1ID] = ids
	return ids
}

func (g *SyntheticSource) sample(id identity) Sample {
	now := g.src.Now()
	self := synth.Range(g.src, 2000, 502000)
	delegated := synth.Range(g.src, 10000, 2010000)
	commission := synth.Range(g.src, 0, 10)

	s := Sample{
		NodeID:          id.nodeID,
		L1ID:            id.l1ID,
		L1Name:          id.l1Name,
		SelfStake:       self,
		DelegatedStake:  delegated,
		Uptime:          synth.Range(g.src, 99, 100),
		Commission:      commission,
		DelegationFee:   commission + synth.Range(g.src, 0, 2),
		Capacity:        synth.Range(g.src, 0, 100),
		IsActive:        g.src.Float64() > 0.05,
		TotalEarned:     (self + delegated) * 0.1 * g.src.Float64(),
		DelegatorCount:  synth.IntRange(g.src, 10, 510),
		DelegationSplit: synth.IntRange(g.src, 10, 60),
	}
	g.fill(&s, now, id.index)
	return s
}

// fill samples the observations no upstream API reports
func (g *SyntheticSource) fill(s *Sample, now time.Time, index int) {
	s.UptimeRank = synth.IntRange(g.src, 1, 101)
	s.MissedBlocks = g.src.Intn(50)
	s.ProposedBlocks = synth.IntRange(g.src, 100, 1100)
	s.ResponseTime = synth.Range(g.src, 50, 250)
	if s.StartTime.IsZero() {
		s.StartTime = now.Add(-time.Duration(g.src.Float64() * float64(365*day)))
		s.EndTime = now.Add(time.Duration(g.src.Float64() * float64(365*day)))
		s.DurationDays = synth.IntRange(g.src, 30, 395)
	}
	s.LastReward = now.Add(-time.Duration(g.src.Float64() * float64(day)))

	country := synth.Pick(g.src, countries)
	s.Location = types.Location{
		Country:     country,
		Region:      regions[country],
		Coordinates: []float64{synth.Range(g.src, -90, 90), synth.Range(g.src, -180, 180)},
	}

	name := validatorNames[index%len(validatorNames)]
	if g.src.Float64() > 0.5 {
		s.Website = "https://" + strings.ToLower(strings.ReplaceAll(name, " ", "")) + ".com"
	}
	if g.src.Float64() > 0.6 {
		s.Twitter = "@" + strings.ReplaceAll(name, " ", "")
	}
	s.Reputation = float64(synth.IntRange(g.src, 60, 100))
}

// Build derives the full metrics record, including scores, from a sample
func Build(s Sample) types.ValidatorMetrics {
	total := s.SelfStake + s.DelegatedStake
	apy := ProjectedAPY(s.Uptime, s.Commission)

	split := s.DelegationSplit
	if split <= 0 {
		split = 1
	}

	return types.ValidatorMetrics{
		NodeID:        s.NodeID,
		L1ID:          s.L1ID,
		L1Name:        s.L1Name,
		ValidatorName: ValidatorName(s.NodeID),
		Stake: types.Stake{
			SelfStake:          s.SelfStake,
			DelegatedStake:     s.DelegatedStake,
			TotalStake:         total,
			SelfStakeFormatted: FormatAVAX(s.SelfStake),
			DelegatedFormatted: FormatAVAX(s.DelegatedStake),
			TotalFormatted:     FormatAVAX(total),
		},
		ValidationPeriod: types.ValidationPeriod{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Duration:  s.DurationDays,
		},
		Uptime:             s.Uptime,
		UptimeRank:         s.UptimeRank,
		Commission:         s.Commission,
		DelegationFee:      s.DelegationFee,
		DelegationCapacity: s.Capacity,
		IsActive:           s.IsActive,
		MissedBlocks:       s.MissedBlocks,
		ProposedBlocks:     s.ProposedBlocks,
		ResponseTime:       s.ResponseTime,
		Location:           s.Location,
		Performance: types.Performance{
			Score:         PerformanceScore(s.Uptime, s.Commission, total),
			Reliability:   ReliabilityFor(s.Uptime),
			Profitability: apy,
			RiskLevel:     RiskLevelFor(s.Uptime, s.Commission, total),
		},
		Rewards: types.Rewards{
			TotalEarned:  FormatAVAX(s.TotalEarned),
			LastReward:   s.LastReward,
			DailyAverage: FormatAVAX(total * 0.0003),
			ProjectedAPY: apy,
		},
		Delegators: types.Delegators{
			Count:         s.DelegatorCount,
			AverageStake:  FormatAVAX(s.DelegatedStake / float64(split)),
			TopDelegation: FormatAVAX(s.DelegatedStake * 0.3),
		},
		SocialMetrics: types.SocialMetrics{
			Website:    s.Website,
			Twitter:    s.Twitter,
			Reputation: s.Reputation,
		},
	}
}

// ValidatorName is the short display name derived from a node ID
func ValidatorName(nodeID string) string {
	name := strings.TrimPrefix(nodeID, "NodeID-")
	if len(name) > 13 {
		name = name[:13]
	}
	return name
}
