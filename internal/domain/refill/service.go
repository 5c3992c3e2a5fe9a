package refill

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidAction is returned for decision actions other than approve or
// reject.
var ErrInvalidAction = errors.New("invalid action")

// Service implements refill request handling.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Request, error) {
	return s.repo.Create(ctx, req.PrescriptionID, req.PatientID)
}

func (s *Service) List(ctx context.Context) ([]*Request, error) {
	return s.repo.List(ctx)
}

// Decide applies an approve or reject action to a pending request.
func (s *Service) Decide(ctx context.Context, id uuid.UUID, action string) (*Request, error) {
	var status string
	switch action {
	case "approve":
		status = StatusApproved
	case "reject":
		status = StatusRejected
	default:
		return nil, ErrInvalidAction
	}
	return s.repo.SetStatus(ctx, id, status)
}
