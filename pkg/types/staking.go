package types

import "time"

// Reliability grades a validator's uptime
type Reliability string

const (
	ReliabilityExcellent Reliability = "excellent"
	ReliabilityGood      Reliability = "good"
	ReliabilityFair      Reliability = "fair"
	ReliabilityPoor      Reliability = "poor"
)

// RiskLevel classifies how risky a validator is to delegate to
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RankingMetric selects the field validators are ranked by
type RankingMetric string

const (
	RankByPerformance   RankingMetric = "performance"
	RankByUptime        RankingMetric = "uptime"
	RankByProfitability RankingMetric = "profitability"
	RankByCapacity      RankingMetric = "capacity"
)

// DelegationStrategy selects how stake is split across validators
type DelegationStrategy string

const (
	StrategyConservative DelegationStrategy = "conservative"
	StrategyBalanced     DelegationStrategy = "balanced"
	StrategyAggressive   DelegationStrategy = "aggressive"
)

// Stake holds raw and formatted stake amounts in AVAX
type Stake struct {
	SelfStake          float64 `json:"selfStake"`
	DelegatedStake     float64 `json:"delegatedStake"`
	TotalStake         float64 `json:"totalStake"`
	SelfStakeFormatted string  `json:"selfStakeFormatted"`
	DelegatedFormatted string  `json:"delegatedStakeFormatted"`
	TotalFormatted     string  `json:"totalStakeFormatted"`
}

// ValidationPeriod is the staking window of a validator
type ValidationPeriod struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Duration  int       `json:"duration"`
}

// Location is the approximate physical location of a node
type Location struct {
	Country     string    `json:"country"`
	Region      string    `json:"region"`
	Coordinates []float64 `json:"coordinates"`
}

// Performance is the composite score block of a validator
type Performance struct {
	Score         float64     `json:"score"`
	Reliability   Reliability `json:"reliability"`
	Profitability float64     `json:"profitability"`
	RiskLevel     RiskLevel   `json:"riskLevel"`
}

// Rewards summarizes validator earnings
type Rewards struct {
	TotalEarned  string    `json:"totalEarned"`
	LastReward   time.Time `json:"lastReward"`
	DailyAverage string    `json:"dailyAverage"`
	ProjectedAPY float64   `json:"projectedAPY"`
}

// Delegators summarizes the delegators of a validator
type Delegators struct {
	Count         int    `json:"count"`
	AverageStake  string `json:"averageStake"`
	TopDelegation string `json:"topDelegation"`
}

// SocialMetrics holds public profile data of a validator operator
type SocialMetrics struct {
	Website    string  `json:"website,omitempty"`
	Twitter    string  `json:"twitter,omitempty"`
	Reputation float64 `json:"reputation"`
}

// ValidatorMetrics is the full synthesized record of a validator
type ValidatorMetrics struct {
	NodeID             string           `json:"nodeId"`
	L1ID               string           `json:"l1Id"`
	L1Name             string           `json:"l1Name"`
	ValidatorName      string           `json:"validatorName"`
	Stake              Stake            `json:"stake"`
	ValidationPeriod   ValidationPeriod `json:"validationPeriod"`
	Uptime             float64          `json:"uptime"`
	UptimeRank         int              `json:"uptimeRank"`
	Commission         float64          `json:"commission"`
	DelegationFee      float64          `json:"delegationFee"`
	DelegationCapacity float64          `json:"delegationCapacity"`
	IsActive           bool             `json:"isActive"`
	MissedBlocks       int              `json:"missedBlocks"`
	ProposedBlocks     int              `json:"proposedBlocks"`
	ResponseTime       float64          `json:"responseTime"`
	Location           Location         `json:"location"`
	Performance        Performance      `json:"performance"`
	Rewards            Rewards          `json:"rewards"`
	Delegators         Delegators       `json:"delegators"`
	SocialMetrics      SocialMetrics    `json:"socialMetrics"`
}

// RankingMetrics are the per-dimension values shown next to a rank
type RankingMetrics struct {
	Reliability   float64 `json:"reliability"`
	Profitability float64 `json:"profitability"`
	Capacity      float64 `json:"capacity"`
	Uptime        float64 `json:"uptime"`
	Reputation    float64 `json:"reputation"`
}

// ValidatorRanking is one row of a validator leaderboard
type ValidatorRanking struct {
	Rank       int              `json:"rank"`
	Validator  ValidatorMetrics `json:"validator"`
	TotalScore float64          `json:"totalScore"`
	Metrics    RankingMetrics   `json:"metrics"`
	Change24h  int              `json:"change24h"`
}

// EstimatedRewards projects delegation rewards over three horizons
type EstimatedRewards struct {
	Daily   string `json:"daily"`
	Monthly string `json:"monthly"`
	Yearly  string `json:"yearly"`
}

// StakingOpportunity is a validator recommended for a given stake amount
type StakingOpportunity struct {
	Validator           ValidatorMetrics `json:"validator"`
	RecommendationScore float64          `json:"recommendationScore"`
	ExpectedAPY         float64          `json:"expectedAPY"`
	RiskScore           float64          `json:"riskScore"`
	MinimumStake        string           `json:"minimumStake"`
	DelegationCapacity  float64          `json:"delegationCapacity"`
	EstimatedRewards    EstimatedRewards `json:"estimatedRewards"`
	Pros                []string         `json:"pros"`
	Cons                []string         `json:"cons"`
}

// NetworkStakeDistribution groups validators by L1
type NetworkStakeDistribution struct {
	L1Name         string  `json:"l1Name"`
	ValidatorCount int     `json:"validatorCount"`
	TotalStake     string  `json:"totalStake"`
	AverageAPY     float64 `json:"averageAPY"`
}

// RiskDistribution counts validators by risk level
type RiskDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// StakingAnalytics is the aggregate staking dashboard
type StakingAnalytics struct {
	TotalValidators      int                        `json:"totalValidators"`
	TotalStaked          string                     `json:"totalStaked"`
	AverageAPY           float64                    `json:"averageAPY"`
	AverageUptime        float64                    `json:"averageUptime"`
	AverageCommission    float64                    `json:"averageCommission"`
	TopPerformers        []ValidatorRanking         `json:"topPerformers"`
	StakingOpportunities []StakingOpportunity       `json:"stakingOpportunities"`
	NetworkDistribution  []NetworkStakeDistribution `json:"networkDistribution"`
	RiskDistribution     RiskDistribution           `json:"riskDistribution"`
	ComputedAt           time.Time                  `json:"computedAt"`
}

// Allocation is one validator's share of a delegation
type Allocation struct {
	Validator  ValidatorMetrics `json:"validator"`
	Amount     string           `json:"amount"`
	Percentage float64          `json:"percentage"`
	Reasoning  string           `json:"reasoning"`
}

// DelegationRecommendation splits a stake amount across validators
type DelegationRecommendation struct {
	Strategy             DelegationStrategy `json:"strategy"`
	Allocations          []Allocation       `json:"allocations"`
	ExpectedAPY          float64            `json:"expectedAPY"`
	RiskLevel            string             `json:"riskLevel"`
	DiversificationScore float64            `json:"diversificationScore"`
}
