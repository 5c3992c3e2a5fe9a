package message

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	messages Repository
}

func NewService(messages Repository) *Service {
	return &Service{messages: messages}
}

// Send persists a message from sender to receiver and returns the stored
// record. The receiver is not checked for existence here: an unknown or
// offline recipient is not an error, the message is simply retrievable later.
func (s *Service) Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*Message, error) {
	if senderID == uuid.Nil {
		return nil, fmt.Errorf("sender_id is required")
	}
	if receiverID == uuid.Nil {
		return nil, fmt.Errorf("receiver_id is required")
	}
	if content == "" {
		return nil, fmt.Errorf("content is required")
	}
	return s.messages.Insert(ctx, senderID, receiverID, content)
}

func (s *Service) Conversations(ctx context.Context, userID uuid.UUID) ([]*Conversation, error) {
	return s.messages.Conversations(ctx, userID)
}

func (s *Service) History(ctx context.Context, userA, userB uuid.UUID) ([]*Message, error) {
	return s.messages.History(ctx, userA, userB)
}
