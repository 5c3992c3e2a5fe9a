package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no appointment matches the id.
	ErrNotFound = errors.New("appointment not found")
	// ErrDoctorNotFound is returned when booking against an unknown doctor.
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrPatientNotFound is returned when booking against an unknown patient.
	ErrPatientNotFound = errors.New("patient not found")
)

// Repository is the appointment store.
type Repository interface {
	// List returns all appointments with doctor and patient names joined in,
	// ordered by appointment date.
	List(ctx context.Context) ([]*Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error)
	// Create verifies the doctor (and patient when set) exist before
	// inserting, returning ErrDoctorNotFound or ErrPatientNotFound.
	Create(ctx context.Context, a *Appointment) (*Appointment, error)
	// Update applies only the non-nil fields.
	Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
