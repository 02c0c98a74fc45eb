package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// EventType represents different stream event types
type EventType string

const (
	EventTypeNetworksUpdate    EventType = "networks-update"
	EventTypePerformanceUpdate EventType = "performance-update"
	EventTypeICMAnalytics      EventType = "icm-analytics"
	EventTypeICMRoutes         EventType = "icm-routes"
	EventTypeICMMessages       EventType = "icm-messages"
	EventTypeStakingAnalytics  EventType = "staking-analytics"
	EventTypeValidatorRankings EventType = "validator-rankings"
	EventTypeHealthStatus      EventType = "health-status"
	EventTypeHeartbeat         EventType = "heartbeat"
	EventTypeConnected         EventType = "connected"
)

// ErrUnknownTopic is returned by ParseTopics for an unsubscribable name
var ErrUnknownTopic = errors.New("unknown event type")

// subscribable are the event types a client may filter on
var subscribable = map[EventType]struct{}{
	EventTypeNetworksUpdate:    {},
	EventTypePerformanceUpdate: {},
	EventTypeICMAnalytics:      {},
	EventTypeICMRoutes:         {},
	EventTypeICMMessages:       {},
	EventTypeStakingAnalytics:  {},
	EventTypeValidatorRankings: {},
	EventTypeHealthStatus:      {},
}

// ParseTopics reads a comma separated list of event types. An empty list
// means every type.
func ParseTopics(s string) ([]EventType, error) {
	var topics []EventType
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t := EventType(name)
		if _, ok := subscribable[t]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, name)
		}
		topics = append(topics, t)
	}
	return topics, nil
}

// Event represents a stream event with typed data
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
	ID   string    `json:"id,omitempty"` // Optional event ID for resume
}

// HeartbeatData is the payload of heartbeat events
type HeartbeatData struct {
	Timestamp int64 `json:"timestamp"`
}

// ConnectedData is the first event sent to a new stream client
type ConnectedData struct {
	ClientID  string `json:"clientId"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// NetworksUpdateData summarizes a registry refresh
type NetworksUpdateData struct {
	Total       int    `json:"total"`
	Origin      string `json:"origin"`
	LastUpdated int64  `json:"lastUpdated"` // Unix timestamp
}

// HealthStatusData represents system health status
type HealthStatusData struct {
	Status     string            `json:"status"` // healthy, degraded, unhealthy
	Components map[string]string `json:"components"`
	CheckedAt  int64             `json:"checkedAt"`
}

// Format formats the event for SSE transmission
func (e *Event) Format() (string, error) {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return "", fmt.Errorf("marshal event data: %w", err)
	}

	var output string
	if e.ID != "" {
		output += fmt.Sprintf("id: %s\n", e.ID)
	}
	output += fmt.Sprintf("event: %s\n", e.Type)
	output += fmt.Sprintf("data: %s\n\n", data)

	return output, nil
}

// envelope is the JSON frame sent to WebSocket clients
type envelope struct {
	Type EventType `json:"type"`
	ID   string    `json:"id,omitempty"`
	Data any       `json:"data"`
}

// JSON encodes the event as a single JSON frame for WebSocket clients
func (e *Event) JSON() ([]byte, error) {
	data, err := json.Marshal(envelope{Type: e.Type, ID: e.ID, Data: e.Data})
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}
