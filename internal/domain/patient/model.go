package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a patient profile. UserID links the profile to its login
// account and is null for records created directly by staff.
type Patient struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	UserID      *uuid.UUID `db:"user_id" json:"userId,omitempty"`
	FirstName   string     `db:"first_name" json:"firstName"`
	LastName    string     `db:"last_name" json:"lastName"`
	Email       string     `db:"email" json:"email"`
	DateOfBirth time.Time  `db:"date_of_birth" json:"dateOfBirth"`
	Gender      string     `db:"gender" json:"gender"`
	PhoneNumber string     `db:"phone_number" json:"phoneNumber"`
	Address     string     `db:"address" json:"address"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// UpsertRequest carries the create and full-update forms.
type UpsertRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Gender      string `json:"gender" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Address     string `json:"address"`
}
