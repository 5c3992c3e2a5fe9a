package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no patient matches the id.
var ErrNotFound = errors.New("patient not found")

// Repository is the patient profile store.
type Repository interface {
	// List returns one page of patients plus the total row count.
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	Get(ctx context.Context, id uuid.UUID) (*Patient, error)
	Create(ctx context.Context, p *Patient) (*Patient, error)
	Update(ctx context.Context, p *Patient) (*Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
