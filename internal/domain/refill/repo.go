package refill

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no refill request matches the id.
var ErrNotFound = errors.New("refill request not found")

// Repository is the refill request store.
type Repository interface {
	Create(ctx context.Context, prescriptionID, patientID uuid.UUID) (*Request, error)
	// List returns all requests, newest first, with the requesting patient's
	// name and the prescription's medications attached.
	List(ctx context.Context) ([]*Request, error)
	// SetStatus stamps the decision and responded_at.
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*Request, error)
}
