package chat

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/message"
)

type mockStore struct {
	inserts   int
	insertErr error
	last      *message.Message
}

func (m *mockStore) Insert(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*message.Message, error) {
	m.inserts++
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	m.last = &message.Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	return m.last, nil
}

func newTestRelay(store MessageStore) *Relay {
	return NewRelay(NewPresence(zerolog.Nop()), store, zerolog.Nop())
}

func frame(t *testing.T, event string, payload interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func mustReceive(t *testing.T, c *Conn) Envelope {
	t.Helper()
	select {
	case raw := <-c.Send:
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("bad frame %q: %v", raw, err)
		}
		return env
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return Envelope{}
	}
}

func mustBeQuiet(t *testing.T, c *Conn) {
	t.Helper()
	select {
	case raw := <-c.Send:
		t.Fatalf("unexpected frame %q", raw)
	default:
	}
}

func TestSendMessagePersistsThenFansOutToBothRooms(t *testing.T) {
	store := &mockStore{}
	r := newTestRelay(store)

	sender := uuid.New().String()
	receiver := uuid.New().String()

	senderTab1 := NewConn(sender)
	senderTab2 := NewConn(sender)
	receiverConn := NewConn(receiver)
	r.HandleConnect(senderTab1)
	r.HandleConnect(senderTab2)
	r.HandleConnect(receiverConn)

	err := r.HandleEvent(senderTab1, frame(t, EventSendMessage, SendMessagePayload{
		ReceiverID: receiver,
		Content:    "take your medication at 8pm",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.inserts != 1 {
		t.Fatalf("expected 1 insert, got %d", store.inserts)
	}

	// Exactly one new_message per connection: both sender tabs and the
	// receiver, three deliveries total.
	for _, c := range []*Conn{senderTab1, senderTab2, receiverConn} {
		env := mustReceive(t, c)
		if env.Event != EventNewMessage {
			t.Fatalf("expected %s, got %s", EventNewMessage, env.Event)
		}
		var got message.Message
		if err := json.Unmarshal(env.Data, &got); err != nil {
			t.Fatal(err)
		}
		if got.ID != store.last.ID || got.Content != store.last.Content {
			t.Fatalf("broadcast payload does not match stored row: %+v", got)
		}
		mustBeQuiet(t, c)
	}
}

func TestSendMessageToOfflineReceiverStillPersists(t *testing.T) {
	store := &mockStore{}
	r := newTestRelay(store)

	sender := NewConn(uuid.New().String())
	r.HandleConnect(sender)

	err := r.HandleEvent(sender, frame(t, EventSendMessage, SendMessagePayload{
		ReceiverID: uuid.New().String(),
		Content:    "hello",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.inserts != 1 {
		t.Fatalf("expected 1 insert, got %d", store.inserts)
	}
	// Sender still gets the echo copy.
	if env := mustReceive(t, sender); env.Event != EventNewMessage {
		t.Fatalf("expected %s, got %s", EventNewMessage, env.Event)
	}
}

func TestSendMessagePersistFailureAcksSenderOnly(t *testing.T) {
	store := &mockStore{insertErr: errors.New("connection refused")}
	r := newTestRelay(store)

	sender := NewConn(uuid.New().String())
	receiver := NewConn(uuid.New().String())
	r.HandleConnect(sender)
	r.HandleConnect(receiver)

	err := r.HandleEvent(sender, frame(t, EventSendMessage, SendMessagePayload{
		ReceiverID: receiver.UserID,
		Content:    "hello",
	}))
	if err != nil {
		t.Fatalf("persist failure must not kill the connection: %v", err)
	}

	env := mustReceive(t, sender)
	if env.Event != EventMessageError {
		t.Fatalf("expected %s, got %s", EventMessageError, env.Event)
	}
	mustBeQuiet(t, receiver)
}

func TestSendMessageEmptyContentRejected(t *testing.T) {
	store := &mockStore{}
	r := newTestRelay(store)
	sender := NewConn(uuid.New().String())
	r.HandleConnect(sender)

	if err := r.HandleEvent(sender, frame(t, EventSendMessage, SendMessagePayload{
		ReceiverID: uuid.New().String(),
	})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.inserts != 0 {
		t.Fatal("empty message must not be persisted")
	}
	if env := mustReceive(t, sender); env.Event != EventMessageError {
		t.Fatalf("expected %s, got %s", EventMessageError, env.Event)
	}
}

func TestTypingRelaysToReceiverWithoutPersistence(t *testing.T) {
	store := &mockStore{}
	r := newTestRelay(store)

	sender := NewConn(uuid.New().String())
	receiver := NewConn(uuid.New().String())
	r.HandleConnect(sender)
	r.HandleConnect(receiver)

	err := r.HandleEvent(sender, frame(t, EventTyping, TypingPayload{
		ReceiverID: receiver.UserID,
		IsTyping:   true,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.inserts != 0 {
		t.Fatal("typing must never touch the store")
	}

	env := mustReceive(t, receiver)
	if env.Event != EventUserTyping {
		t.Fatalf("expected %s, got %s", EventUserTyping, env.Event)
	}
	var p UserTypingPayload
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatal(err)
	}
	if p.UserID != sender.UserID || !p.IsTyping {
		t.Fatalf("unexpected payload %+v", p)
	}
	// The sender never sees its own indicator.
	mustBeQuiet(t, sender)
}

func TestTypingToOfflineReceiverIsNoOp(t *testing.T) {
	store := &mockStore{}
	r := newTestRelay(store)
	sender := NewConn(uuid.New().String())
	r.HandleConnect(sender)

	err := r.HandleEvent(sender, frame(t, EventTyping, TypingPayload{
		ReceiverID: uuid.New().String(),
		IsTyping:   true,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.inserts != 0 {
		t.Fatal("typing must never touch the store")
	}
	mustBeQuiet(t, sender)
}

func TestUnknownEventIsIgnored(t *testing.T) {
	r := newTestRelay(&mockStore{})
	c := NewConn(uuid.New().String())
	r.HandleConnect(c)

	if err := r.HandleEvent(c, []byte(`{"event":"dance","data":{}}`)); err != nil {
		t.Fatalf("unknown event must be ignored, got %v", err)
	}
	mustBeQuiet(t, c)
}

func TestMalformedFrameTerminatesConnection(t *testing.T) {
	r := newTestRelay(&mockStore{})
	c := NewConn(uuid.New().String())
	r.HandleConnect(c)

	if err := r.HandleEvent(c, []byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestJoinChatEventIsIdempotentRejoin(t *testing.T) {
	r := newTestRelay(&mockStore{})
	c := NewConn(uuid.New().String())
	r.HandleConnect(c)

	if err := r.HandleEvent(c, []byte(`{"event":"join_chat"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Presence().Connections(c.UserID); got != 1 {
		t.Fatalf("expected 1 connection, got %d", got)
	}
}
