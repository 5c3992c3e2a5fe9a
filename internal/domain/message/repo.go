package message

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the durable store of messages.
type Repository interface {
	// Insert stores a new message and returns the full stored record,
	// including the generated id and server-assigned timestamp.
	Insert(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*Message, error)
	// Conversations lists the user's chat partners ordered by most recent
	// message.
	Conversations(ctx context.Context, userID uuid.UUID) ([]*Conversation, error)
	// History returns the full two-party history in chronological order.
	History(ctx context.Context, userA, userB uuid.UUID) ([]*Message, error)
}
