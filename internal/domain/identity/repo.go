package identity

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no account matches the lookup.
var ErrNotFound = errors.New("user not found")

// Repository is the account store.
type Repository interface {
	// Create inserts the user and, for patient and doctor roles, the matching
	// profile row in the same transaction.
	Create(ctx context.Context, u *User, req *RegisterRequest) (*User, error)
	// FindByEmail returns the account for the email or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// EmailTaken reports whether an account already uses the email.
	EmailTaken(ctx context.Context, email string) (bool, error)
}
