package types

import "time"

// MessageType classifies an interchain message
type MessageType string

const (
	MessageTransfer     MessageType = "transfer"
	MessageContractCall MessageType = "contract_call"
	MessageValidation   MessageType = "validation"
	MessageCustom       MessageType = "custom"
)

// MessageTypes lists every message type in declaration order
var MessageTypes = []MessageType{MessageTransfer, MessageContractCall, MessageValidation, MessageCustom}

// MessageStatus is the delivery state of an interchain message
type MessageStatus string

const (
	MessagePending   MessageStatus = "pending"
	MessageDelivered MessageStatus = "delivered"
	MessageFailed    MessageStatus = "failed"
	MessageExpired   MessageStatus = "expired"
)

// MessageStatuses lists every delivery state in declaration order
var MessageStatuses = []MessageStatus{MessagePending, MessageDelivered, MessageFailed, MessageExpired}

// RouteHealth is the categorical health of a messaging route
type RouteHealth string

const (
	RouteExcellent RouteHealth = "excellent"
	RouteGood      RouteHealth = "good"
	RouteDegraded  RouteHealth = "degraded"
	RouteFailing   RouteHealth = "failing"
)

// MessagePayload carries the type-specific body of a message.
// Only the fields relevant to the payload type are set.
type MessagePayload struct {
	Type     string `json:"type"`
	Amount   string `json:"amount,omitempty"`
	TokenID  string `json:"tokenId,omitempty"`
	Method   string `json:"method,omitempty"`
	Data     string `json:"data,omitempty"`
	Proposal string `json:"proposal,omitempty"`
}

// ICMMessage is a single cross-chain message
type ICMMessage struct {
	ID                     string         `json:"id"`
	SourceL1               string         `json:"sourceL1"`
	DestinationL1          string         `json:"destinationL1"`
	MessageType            MessageType    `json:"messageType"`
	Status                 MessageStatus  `json:"status"`
	Timestamp              time.Time      `json:"timestamp"`
	Latency                float64        `json:"latency"`
	Payload                MessagePayload `json:"payload"`
	GasUsed                string         `json:"gasUsed"`
	Fees                   string         `json:"fees"`
	SourceBlockHeight      int            `json:"sourceBlockHeight"`
	DestinationBlockHeight int            `json:"destinationBlockHeight"`
}

// ICMRoute aggregates traffic on an ordered source/destination pair
type ICMRoute struct {
	SourceL1        string      `json:"sourceL1"`
	DestinationL1   string      `json:"destinationL1"`
	MessagesLast24h int         `json:"messagesLast24h"`
	AvgLatency      float64     `json:"avgLatency"`
	FailureRate     float64     `json:"failureRate"`
	TotalVolume     string      `json:"totalVolume"`
	IsActive        bool        `json:"isActive"`
	LastMessage     time.Time   `json:"lastMessage"`
	RouteHealth     RouteHealth `json:"routeHealth"`
}

// TopRoute is a condensed route entry for analytics
type TopRoute struct {
	Route   string  `json:"route"`
	Volume  int     `json:"volume"`
	Latency float64 `json:"latency"`
}

// MessageTypeDistribution counts messages by type
type MessageTypeDistribution struct {
	Transfers     int `json:"transfers"`
	ContractCalls int `json:"contractCalls"`
	Validations   int `json:"validations"`
	Custom        int `json:"custom"`
}

// ICMAnalytics is an aggregate snapshot over current messages and routes
type ICMAnalytics struct {
	TotalMessages24h        int                     `json:"totalMessages24h"`
	TotalRoutes             int                     `json:"totalRoutes"`
	ActiveRoutes            int                     `json:"activeRoutes"`
	AvgCrossChainLatency    float64                 `json:"avgCrossChainLatency"`
	NetworkEfficiency       float64                 `json:"networkEfficiency"`
	TopRoutes               []TopRoute              `json:"topRoutes"`
	MessageTypeDistribution MessageTypeDistribution `json:"messageTypeDistribution"`
}

// ICMCapabilities describes the messaging features of an L1
type ICMCapabilities struct {
	NativeMessaging bool `json:"nativeMessaging"`
	ContractCalls   bool `json:"contractCalls"`
	AssetTransfers  bool `json:"assetTransfers"`
	CustomProtocols bool `json:"customProtocols"`
}

// BridgeType is the mechanism behind a bridge connection
type BridgeType string

const (
	BridgeNative     BridgeType = "native"
	BridgeWarp       BridgeType = "warp"
	BridgeTeleporter BridgeType = "teleporter"
	BridgeCustom     BridgeType = "custom"
)

// BridgeTypes lists every bridge type in declaration order
var BridgeTypes = []BridgeType{BridgeNative, BridgeWarp, BridgeTeleporter, BridgeCustom}

// BridgeConnection is a messaging link from one L1 to another
type BridgeConnection struct {
	L1ID       string     `json:"l1Id"`
	L1Name     string     `json:"l1Name"`
	BridgeType BridgeType `json:"bridgeType"`
	IsActive   bool       `json:"isActive"`
}

// ICMNetworkStats describes the messaging footprint of one L1
type ICMNetworkStats struct {
	L1ID               string             `json:"l1Id"`
	L1Name             string             `json:"l1Name"`
	TotalMessagesIn    int                `json:"totalMessagesIn"`
	TotalMessagesOut   int                `json:"totalMessagesOut"`
	ConnectedL1s       int                `json:"connectedL1s"`
	MessageVolume24h   int                `json:"messageVolume24h"`
	AvgIncomingLatency float64            `json:"avgIncomingLatency"`
	AvgOutgoingLatency float64            `json:"avgOutgoingLatency"`
	FailureRate        float64            `json:"failureRate"`
	Capabilities       ICMCapabilities    `json:"icmCapabilities"`
	BridgeConnections  []BridgeConnection `json:"bridgeConnections"`
}

// MessageFlow is one edge of the source/destination flow matrix
type MessageFlow struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Count      int     `json:"count"`
	Volume     string  `json:"volume"`
	AvgLatency float64 `json:"avgLatency"`
}
