package ws

import (
	"encoding/json"
	"time"

	"github.com/flintapp/flint/internal/domain"
)

// Event types - Client → Server
const (
	EventTypeJoinMatch   = "join_match"
	EventTypeSendMessage = "send_message"
	EventTypePing        = "ping"
)

// Event types - Server → Client
const (
	EventTypeReceiveMessage = "receive_message"
	EventTypePong           = "pong"
	EventTypeError          = "error"
)

// Event is the envelope for all websocket traffic. Each type has a
// fixed payload schema; anything that does not parse into it is
// rejected before dispatch.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Client → Server payloads ---

type JoinMatchPayload struct {
	MatchID int64 `json:"match_id"`
}

type SendMessagePayload struct {
	MatchID  int64   `json:"match_id"`
	Content  *string `json:"content,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

// --- Server → Client payloads ---

type ReceiveMessagePayload struct {
	domain.Message
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
