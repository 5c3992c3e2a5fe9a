package doctor

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no doctor matches the lookup.
var ErrNotFound = errors.New("doctor not found")

// SearchLimit caps name and email search results.
const SearchLimit = 10

// Repository is the doctor profile store.
type Repository interface {
	List(ctx context.Context) ([]*Doctor, error)
	Get(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByEmail(ctx context.Context, email string) (*Doctor, error)
	// Search matches the query case-insensitively against first name, last
	// name and email, capped at SearchLimit rows.
	Search(ctx context.Context, query string) ([]*Doctor, error)
	Create(ctx context.Context, d *Doctor) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) (*Doctor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
