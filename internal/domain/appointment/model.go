package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment is a booking between a doctor and, optionally, a patient.
// The name fields are denormalized from the joined profiles for list views.
type Appointment struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	DoctorID         uuid.UUID  `db:"doctor_id" json:"doctorId"`
	PatientID        *uuid.UUID `db:"patient_id" json:"patientId,omitempty"`
	AppointmentDate  time.Time  `db:"appointment_date" json:"appointmentDate"`
	Status           string     `db:"status" json:"status"`
	Notes            string     `db:"notes" json:"notes"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
	DoctorFirstName  string     `db:"doctor_first_name" json:"doctorFirstName,omitempty"`
	DoctorLastName   string     `db:"doctor_last_name" json:"doctorLastName,omitempty"`
	PatientFirstName string     `db:"patient_first_name" json:"patientFirstName,omitempty"`
	PatientLastName  string     `db:"patient_last_name" json:"patientLastName,omitempty"`
}

// CreateRequest carries the booking form.
type CreateRequest struct {
	DoctorID        uuid.UUID  `json:"doctorId" validate:"required"`
	PatientID       *uuid.UUID `json:"patientId"`
	AppointmentDate time.Time  `json:"appointmentDate" validate:"required"`
	Status          string     `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Notes           string     `json:"notes"`
}

// UpdateRequest carries a partial update: nil fields are left untouched.
type UpdateRequest struct {
	AppointmentDate *time.Time `json:"appointmentDate"`
	Status          *string    `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	Notes           *string    `json:"notes"`
}
