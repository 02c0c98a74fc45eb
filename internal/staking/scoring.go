package staking

import (
	"fmt"
	"math"

	"github.com/birddigital/avax-l1-explorer/pkg/types"
)

const (
	// BaseAPY is the network reward rate before uptime and commission
	BaseAPY = 8.0
	// smallStakeThreshold marks validators whose total stake adds risk
	smallStakeThreshold = 50000
	// MinimumStake is the smallest delegation accepted
	MinimumStake = "25 AVAX"
)

func clamp(lo, hi, v float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// PerformanceScore rates a validator from 0 to 100. Uptime contributes up
// to 50 points, low commission up to 30 and stake size up to 20.
func PerformanceScore(uptime, commission, totalStake float64) float64 {
	uptimeScore := (uptime - 99) * 50
	commissionScore := (10 - commission) * 3
	stakeScore := math.Min(totalStake/100000, 1) * 20
	return clamp(0, 100, uptimeScore+commissionScore+stakeScore)
}

// ReliabilityFor grades an uptime percentage
func ReliabilityFor(uptime float64) types.Reliability {
	switch {
	case uptime >= 99.8:
		return types.ReliabilityExcellent
	case uptime >= 99.5:
		return types.ReliabilityGood
	case uptime >= 99.0:
		return types.ReliabilityFair
	default:
		return types.ReliabilityPoor
	}
}

// ProjectedAPY is the yield a delegator can expect after commission
func ProjectedAPY(uptime, commission float64) float64 {
	return BaseAPY * (uptime / 100) * (1 - commission/100)
}

// RiskLevelFor classifies a validator as low, medium or high risk
func RiskLevelFor(uptime, commission, totalStake float64) types.RiskLevel {
	score := (100-uptime)*2 + commission
	if totalStake < smallStakeThreshold {
		score += 20
	}
	switch {
	case score < 5:
		return types.RiskLow
	case score < 15:
		return types.RiskMedium
	default:
		return types.RiskHigh
	}
}

// RiskScore is the 0-100 opportunity risk of delegating to v; lower is better
func RiskScore(v types.ValidatorMetrics) float64 {
	score := (100-v.Uptime)*10 + v.Commission
	if v.DelegationCapacity > 80 {
		score += 20
	}
	if v.Stake.TotalStake < smallStakeThreshold {
		score += 15
	}
	return math.Min(100, score)
}

// RecommendationScore adjusts the performance score for capacity,
// reputation and commission; higher is better
func RecommendationScore(v types.ValidatorMetrics) float64 {
	score := v.Performance.Score
	if v.DelegationCapacity < 50 {
		score += 10
	}
	if v.SocialMetrics.Reputation > 80 {
		score += 5
	}
	if v.Commission > 5 {
		score -= 10
	}
	return clamp(0, 100, score)
}

// Pros lists up to three strengths of a validator
func Pros(v types.ValidatorMetrics) []string {
	pros := make([]string, 0, 3)
	if v.Uptime > 99.5 {
		pros = append(pros, "Excellent uptime record")
	}
	if v.Commission < 3 {
		pros = append(pros, "Low commission rate")
	}
	if v.DelegationCapacity < 70 {
		pros = append(pros, "Good delegation capacity available")
	}
	if v.SocialMetrics.Reputation > 80 {
		pros = append(pros, "Strong community reputation")
	}
	if v.Performance.Profitability > 7 {
		pros = append(pros, "High projected returns")
	}
	if len(pros) > 3 {
		pros = pros[:3]
	}
	return pros
}

// Cons lists up to two weaknesses of a validator
func Cons(v types.ValidatorMetrics) []string {
	cons := make([]string, 0, 2)
	if v.Uptime < 99.2 {
		cons = append(cons, "Below-average uptime")
	}
	if v.Commission > 6 {
		cons = append(cons, "High commission rate")
	}
	if v.DelegationCapacity > 85 {
		cons = append(cons, "Limited delegation capacity")
	}
	if v.Stake.TotalStake < 100000 {
		cons = append(cons, "Relatively small validator")
	}
	if v.Performance.RiskLevel == types.RiskHigh {
		cons = append(cons, "Higher risk profile")
	}
	if len(cons) > 2 {
		cons = cons[:2]
	}
	return cons
}

// FormatAVAX renders an AVAX amount as "1.25M AVAX", "12.5K AVAX" or "12.50 AVAX"
func FormatAVAX(amount float64) string {
	switch {
	case amount >= 1_000_000:
		return fmt.Sprintf("%.2fM AVAX", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("%.1fK AVAX", amount/1_000)
	default:
		return fmt.Sprintf("%.2f AVAX", amount)
	}
}
