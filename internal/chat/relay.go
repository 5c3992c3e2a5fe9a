package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/message"
)

// MessageStore persists chat messages before they are broadcast.
type MessageStore interface {
	Insert(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*message.Message, error)
}

// Relay routes inbound chat events: typing indicators go straight to the
// recipient's room; messages are persisted first and broadcast to both the
// recipient's and the sender's rooms only after the write succeeds.
type Relay struct {
	presence *Presence
	store    MessageStore
	log      zerolog.Logger
}

// NewRelay wires a relay to its presence router and message store.
func NewRelay(presence *Presence, store MessageStore, log zerolog.Logger) *Relay {
	return &Relay{
		presence: presence,
		store:    store,
		log:      log.With().Str("component", "relay").Logger(),
	}
}

// Presence exposes the relay's presence router.
func (r *Relay) Presence() *Presence { return r.presence }

// HandleConnect registers an authenticated connection with its user's room.
func (r *Relay) HandleConnect(c *Conn) {
	r.presence.Join(c)
}

// HandleDisconnect removes the connection from its room and closes its send
// queue. Pending persistence for already-received events is unaffected.
func (r *Relay) HandleDisconnect(c *Conn) {
	r.presence.Leave(c)
}

// HandleEvent dispatches one inbound frame from the connection. Events on a
// single connection are handled serially by the caller's read loop; only the
// error that should terminate the connection is returned.
func (r *Relay) HandleEvent(c *Conn, frame []byte) error {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Event {
	case EventJoinChat:
		// Room membership is established at connect time; a late join_chat
		// from the client is an idempotent re-join.
		r.presence.Join(c)
		return nil
	case EventTyping:
		return r.handleTyping(c, env.Data)
	case EventSendMessage:
		return r.handleSendMessage(c, env.Data)
	default:
		r.log.Warn().Str("event", env.Event).Str("user_id", c.UserID).Msg("unknown event")
		return nil
	}
}

func (r *Relay) handleTyping(c *Conn, data json.RawMessage) error {
	var p TypingPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode typing payload: %w", err)
	}
	if p.ReceiverID == "" {
		return errors.New("typing: missing receiverId")
	}

	frame, err := encodeEvent(EventUserTyping, UserTypingPayload{
		UserID:   c.UserID,
		IsTyping: p.IsTyping,
	})
	if err != nil {
		return err
	}
	// Offline recipient: the indicator is dropped, never persisted or queued.
	r.presence.BroadcastToUser(p.ReceiverID, frame)
	return nil
}

func (r *Relay) handleSendMessage(c *Conn, data json.RawMessage) error {
	var p SendMessagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode send_message payload: %w", err)
	}

	senderID, err := uuid.Parse(c.UserID)
	if err != nil {
		return fmt.Errorf("send_message: bad sender id: %w", err)
	}
	receiverID, err := uuid.Parse(p.ReceiverID)
	if err != nil {
		r.sendError(c, "invalid receiverId")
		return nil
	}
	if p.Content == "" {
		r.sendError(c, "content must not be empty")
		return nil
	}

	// Persist with a background context so a disconnect mid-write cannot
	// cancel the insert: once received, a message is durable or errored,
	// never silently lost.
	stored, err := r.store.Insert(context.Background(), senderID, receiverID, p.Content)
	if err != nil {
		r.log.Error().Err(err).
			Str("sender_id", c.UserID).
			Str("receiver_id", p.ReceiverID).
			Msg("persist message failed")
		r.sendError(c, "failed to save message")
		return nil
	}

	frame, err := encodeEvent(EventNewMessage, stored)
	if err != nil {
		return err
	}
	r.presence.BroadcastToUser(stored.ReceiverID.String(), frame)
	if stored.SenderID != stored.ReceiverID {
		r.presence.BroadcastToUser(stored.SenderID.String(), frame)
	}
	return nil
}

// sendError queues a message_error frame on the failing connection only.
// Broadcast errors are not fanned out to the peer.
func (r *Relay) sendError(c *Conn, msg string) {
	frame, err := encodeEvent(EventMessageError, MessageErrorPayload{Error: msg})
	if err != nil {
		return
	}
	select {
	case c.Send <- frame:
	default:
	}
}
