package identity

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user account can hold.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// User is an account row. PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     string    `db:"last_name" json:"lastName"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// RegisterRequest carries the signup form. Patient and doctor registrations
// also create the matching profile row, so the role-specific fields are
// required for those roles.
type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Role           string `json:"role" validate:"required,oneof=patient doctor admin"`
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	DateOfBirth    string `json:"dateOfBirth" validate:"required_if=Role patient"`
	Gender         string `json:"gender" validate:"required_if=Role patient"`
	PhoneNumber    string `json:"phoneNumber" validate:"required_unless=Role admin"`
	Specialization string `json:"specialization" validate:"required_if=Role doctor"`
}

// LoginRequest carries the login form.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PublicUser is the account shape returned to clients.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// AuthResult is a signed token plus the account it identifies.
type AuthResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

func (u *User) public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
