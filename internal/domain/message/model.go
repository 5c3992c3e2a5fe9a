package message

import (
	"time"

	"github.com/google/uuid"
)

// Message is a persisted chat message between two users. Messages are
// immutable once stored; this subsystem never updates or deletes them.
type Message struct {
	ID         uuid.UUID `db:"id" json:"id"`
	SenderID   uuid.UUID `db:"sender_id" json:"sender_id"`
	ReceiverID uuid.UUID `db:"receiver_id" json:"receiver_id"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Conversation summarizes the most recent exchange with one chat partner,
// used to render the conversation list.
type Conversation struct {
	OtherUserID     uuid.UUID `db:"other_user_id" json:"other_user_id"`
	LastMessageTime time.Time `db:"last_message_time" json:"last_message_time"`
	FirstName       string    `db:"first_name" json:"first_name"`
	LastName        string    `db:"last_name" json:"last_name"`
}
