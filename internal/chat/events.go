// Package chat implements the realtime messaging relay: per-user presence
// rooms over WebSocket connections, typing-indicator relay, and
// persist-then-broadcast message delivery.
package chat

import (
	"encoding/json"
	"fmt"
)

// Inbound event names.
const (
	EventJoinChat    = "join_chat"
	EventTyping      = "typing"
	EventSendMessage = "send_message"
)

// Outbound event names.
const (
	EventUserTyping   = "user_typing"
	EventNewMessage   = "new_message"
	EventMessageError = "message_error"
)

// Envelope is the wire format in both directions: an event name plus a
// JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// TypingPayload is the inbound "typing" payload.
type TypingPayload struct {
	ReceiverID string `json:"receiverId"`
	IsTyping   bool   `json:"isTyping"`
}

// SendMessagePayload is the inbound "send_message" payload.
type SendMessagePayload struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

// UserTypingPayload is the outbound "user_typing" payload.
type UserTypingPayload struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// MessageErrorPayload is the outbound "message_error" payload, sent only to
// the connection whose send_message failed to persist.
type MessageErrorPayload struct {
	Error string `json:"error"`
}

// encodeEvent marshals an event name and payload into the wire envelope.
func encodeEvent(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}
