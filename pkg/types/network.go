package types

import "time"

// NetworkStatus represents the operational state of an L1 network
type NetworkStatus string

const (
	NetworkActive   NetworkStatus = "active"
	NetworkInactive NetworkStatus = "inactive"
	NetworkUnknown  NetworkStatus = "unknown"
)

// ValidatorSummary is the light validator view embedded in a Network
type ValidatorSummary struct {
	NodeID    string  `json:"nodeID"`
	Stake     string  `json:"stake"`
	Uptime    float64 `json:"uptime"`
	Connected bool    `json:"connected"`
}

// Network represents an Avalanche L1 as presented by the explorer
type Network struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	SubnetID       string             `json:"subnetID"`
	VMID           string             `json:"vmID"`
	Description    string             `json:"description"`
	Website        string             `json:"website,omitempty"`
	TokenSymbol    string             `json:"tokenSymbol"`
	ValidatorCount int                `json:"validatorCount"`
	Validators     []ValidatorSummary `json:"validators"`
	Status         NetworkStatus      `json:"status"`
	ICMEnabled     bool               `json:"icmEnabled"`
	TotalSupply    string             `json:"totalSupply"`
	CreatedAt      string             `json:"createdAt"`
	BlockHeight    uint64             `json:"blockHeight"`
	LastBlockTime  time.Time          `json:"lastBlockTime"`
	AvgBlockTime   float64            `json:"avgBlockTime"`
	TPS            float64            `json:"tps"`
}

// Blockchain is a raw chain entry as listed by the platform chain
type Blockchain struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SubnetID string `json:"subnetID"`
	VMID     string `json:"vmID"`
}

// PlatformValidator is a raw validator entry as listed by the platform chain.
// Numeric quantities arrive as decimal strings.
type PlatformValidator struct {
	NodeID          string `json:"nodeID"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Weight          string `json:"weight"`
	StakeAmount     string `json:"stakeAmount,omitempty"`
	Uptime          string `json:"uptime,omitempty"`
	Connected       *bool  `json:"connected,omitempty"`
	DelegationFee   string `json:"delegationFee,omitempty"`
	DelegatorCount  string `json:"delegatorCount,omitempty"`
	DelegatorWeight string `json:"delegatorWeight,omitempty"`
	PotentialReward string `json:"potentialReward,omitempty"`
}
