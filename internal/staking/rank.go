package staking

import (
	"sort"

	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

// metricValue returns the value validators are ranked by; higher ranks first
func metricValue(r types.ValidatorRanking, metric types.RankingMetric) float64 {
	switch metric {
	case types.RankByUptime:
		return r.Metrics.Uptime
	case types.RankByProfitability:
		return r.Metrics.Profitability
	case types.RankByCapacity:
		return r.Metrics.Capacity
	default:
		return r.TotalScore
	}
}

// Rank orders validators by metric, descending, and numbers them from 1.
// An unknown metric ranks by performance. Change24h is left at zero.
func Rank(validators []types.ValidatorMetrics, metric types.RankingMetric) []types.ValidatorRanking {
	out := make([]types.ValidatorRanking, len(validators))
	for i, v := range validators {
		out[i] = types.ValidatorRanking{
			Validator:  v,
			TotalScore: v.Performance.Score,
			Metrics: types.RankingMetrics{
				Reliability:   v.Performance.Score,
				Profitability: v.Performance.Profitability,
				Capacity:      100 - v.DelegationCapacity,
				Uptime:        v.Uptime,
				Reputation:    v.SocialMetrics.Reputation,
			},
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return metricValue(out[i], metric) > metricValue(out[j], metric)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// rankSnapshot remembers the ranks of one metric for the current and the
// previous validator population
type rankSnapshot struct {
	generation uint64
	current    map[string]int
	previous   map[string]int
}

// apply records rankings for generation and fills Change24h with the
// movement since the previous generation; positive means moved up
func (s *rankSnapshot) apply(generation uint64, rankings []types.ValidatorRanking) {
	if s.generation != generation {
		s.previous = s.current
		s.generation = generation
	}

	current := make(map[string]int, len(rankings))
	for i := range rankings {
		nodeID := rankings[i].Validator.NodeID
		current[nodeID] = rankings[i].Rank
		if prev, ok := s.previous[nodeID]; ok {
			rankings[i].Change24h = prev - rankings[i].Rank
		}
	}
	s.current = current
}

// FindOpportunities filters active validators with spare capacity by risk
// tolerance and orders them by recommendation score. Tolerance low keeps
// only low risk, high keeps everything and anything else excludes high risk.
func FindOpportunities(validators []types.ValidatorMetrics, amount float64, tolerance types.RiskLevel) []types.StakingOpportunity {
	out := make([]types.StakingOpportunity, 0, len(validators))
	for _, v := range validators {
		if !v.IsActive || v.DelegationCapacity >= 90 {
			continue
		}
		if !tolerates(tolerance, v.Performance.RiskLevel) {
			continue
		}

		apy := v.Performance.Profitability
		out = append(out, types.StakingOpportunity{
			Validator:           v,
			RecommendationScore: RecommendationScore(v),
			ExpectedAPY:         apy,
			RiskScore:           RiskScore(v),
			MinimumStake:        MinimumStake,
			DelegationCapacity:  100 - v.DelegationCapacity,
			EstimatedRewards: types.EstimatedRewards{
				Daily:   FormatAVAX(amount * apy / 100 / 365),
				Monthly: FormatAVAX(amount * apy / 100 / 12),
				Yearly:  FormatAVAX(amount * apy / 100),
			},
			Pros: Pros(v),
			Cons: Cons(v),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecommendationScore > out[j].RecommendationScore
	})
	return out
}

func tolerates(tolerance, risk types.RiskLevel) bool {
	switch tolerance {
	case types.RiskLow:
		return risk == types.RiskLow
	case types.RiskHigh:
		return true
	default:
		return risk != types.RiskHigh
	}
}

type slot struct {
	weight    float64
	reasoning string
}

var strategySlots = map[types.DelegationStrategy][]slot{
	types.StrategyConservative: {
		{60, "Primary allocation to highest-rated validator"},
		{40, "Secondary allocation for diversification"},
	},
	types.StrategyAggressive: {
		{100, "Full allocation to highest-yield validator"},
	},
	types.StrategyBalanced: {
		{50, "Primary allocation"},
		{25, "Diversification allocation"},
		{25, "Diversification allocation"},
	},
}

// ToleranceFor is the risk tolerance used to pick candidates for a strategy
func ToleranceFor(strategy types.DelegationStrategy) types.RiskLevel {
	switch strategy {
	case types.StrategyConservative:
		return types.RiskLow
	case types.StrategyAggressive:
		return types.RiskHigh
	default:
		return types.RiskMedium
	}
}

// Allocate splits amount over the best opportunities according to strategy.
// When fewer candidates than slots exist, the used weights are scaled so the
// percentages still sum to 100. An unknown strategy is treated as balanced.
func Allocate(opportunities []types.StakingOpportunity, amount float64, strategy types.DelegationStrategy) types.DelegationRecommendation {
	slots, ok := strategySlots[strategy]
	if !ok {
		strategy = types.StrategyBalanced
		slots = strategySlots[strategy]
	}
	if len(opportunities) < len(slots) {
		slots = slots[:len(opportunities)]
	}

	var total float64
	for _, s := range slots {
		total += s.weight
	}

	rec := types.DelegationRecommendation{
		Strategy:    strategy,
		Allocations: make([]types.Allocation, 0, len(slots)),
		RiskLevel:   string(strategy),
	}
	for i, s := range slots {
		pct := s.weight / total * 100
		opp := opportunities[i]
		rec.Allocations = append(rec.Allocations, types.Allocation{
			Validator:  opp.Validator,
			Amount:     FormatAVAX(amount * pct / 100),
			Percentage: pct,
			Reasoning:  s.reasoning,
		})
		rec.ExpectedAPY += opp.ExpectedAPY * pct / 100
	}
	rec.DiversificationScore = float64(len(rec.Allocations) * 20)
	return rec
}
