package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is a doctor profile. UserID links the profile to its login account.
type Doctor struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	UserID         *uuid.UUID `db:"user_id" json:"userId,omitempty"`
	FirstName      string     `db:"first_name" json:"firstName"`
	LastName       string     `db:"last_name" json:"lastName"`
	Email          string     `db:"email" json:"email"`
	Specialization string     `db:"specialization" json:"specialization"`
	PhoneNumber    string     `db:"phone_number" json:"phoneNumber"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

// UpsertRequest carries the create and full-update forms.
type UpsertRequest struct {
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Specialization string `json:"specialization" validate:"required"`
	PhoneNumber    string `json:"phoneNumber" validate:"required"`
}
