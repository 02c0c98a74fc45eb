package types

import "time"

// Sample is a single timestamped point in a historical series
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// HistoricalData holds the rolling 24-point series for a network
type HistoricalData struct {
	TPS       []Sample `json:"tps"`
	BlockTime []Sample `json:"blockTime"`
	GasPrice  []Sample `json:"gasPrice"`
}

// NetworkPerformance is the synthesized performance record of an L1
type NetworkPerformance struct {
	L1ID             string         `json:"l1Id"`
	L1Name           string         `json:"l1Name"`
	CurrentTPS       float64        `json:"currentTPS"`
	AvgTPS24h        float64        `json:"avgTPS24h"`
	CurrentBlockTime float64        `json:"currentBlockTime"`
	AvgBlockTime24h  float64        `json:"avgBlockTime24h"`
	NetworkLoad      float64        `json:"networkLoad"`
	GasPrice         string         `json:"gasPrice"`
	FinalityTime     float64        `json:"finalityTime"`
	UptimePercentage float64        `json:"uptimePercentage"`
	LastUpdated      time.Time      `json:"lastUpdated"`
	Historical       HistoricalData `json:"historicalData"`
}

// ICMActivity summarizes the interchain messaging activity of one L1
type ICMActivity struct {
	L1ID            string    `json:"l1Id"`
	MessagesPerHour int       `json:"messagesPerHour"`
	AvgLatency      float64   `json:"avgLatency"`
	FailureRate     float64   `json:"failureRate"`
	ConnectedL1s    []string  `json:"connectedL1s"`
	LastMessage     time.Time `json:"lastMessage"`
}

// ValidatorPerformance is the per-validator panel shown on a network page
type ValidatorPerformance struct {
	NodeID             string    `json:"nodeId"`
	Uptime24h          float64   `json:"uptime24h"`
	MissedBlocks       int       `json:"missedBlocks"`
	ResponseTime       float64   `json:"responseTime"`
	Stake              string    `json:"stake"`
	Commission         float64   `json:"commission"`
	DelegationCapacity float64   `json:"delegationCapacity"`
	IsActive           bool      `json:"isActive"`
	LastSeen           time.Time `json:"lastSeen"`
}
