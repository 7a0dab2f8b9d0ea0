package ws

import (
	"encoding/json"
	"time"
)

// Event types - Client → Server
const (
	EventTypePing         = "ping"
	EventTypeCountdownGet = "countdown.get"
)

// Event types - Server → Client
const (
	EventTypeEventStarted    = "event.started"
	EventTypePartnerAssigned = "partner.assigned"
	EventTypeCountdown       = "countdown"
	EventTypePong            = "pong"
	EventTypeError           = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Server → Client payloads ---

type EventStartedPayload struct {
	StartedBy string `json:"started_by"`
}

type PartnerAssignedPayload struct {
	Snowflake string `json:"snowflake"`
}

type CountdownPayload struct {
	Countdown string `json:"countdown"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
