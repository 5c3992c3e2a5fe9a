package refill

import (
	"time"

	"github.com/google/uuid"
)

// Refill request statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Medication mirrors a prescription line item for the refill review screen.
type Medication struct {
	MedicationName string `json:"medicationName"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	Duration       string `json:"duration"`
}

// Request is a patient's ask to renew a prescription. RespondedAt is set
// when a doctor approves or rejects it.
type Request struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	PrescriptionID   uuid.UUID    `db:"prescription_id" json:"prescriptionId"`
	PatientID        uuid.UUID    `db:"patient_id" json:"patientId"`
	Status           string       `db:"status" json:"status"`
	RequestedAt      time.Time    `db:"requested_at" json:"requestedAt"`
	RespondedAt      *time.Time   `db:"responded_at" json:"respondedAt,omitempty"`
	PatientFirstName string       `db:"patient_first_name" json:"patientFirstName,omitempty"`
	PatientLastName  string       `db:"patient_last_name" json:"patientLastName,omitempty"`
	Medications      []Medication `json:"medications,omitempty"`
}

// CreateRequest carries the refill ask.
type CreateRequest struct {
	PrescriptionID uuid.UUID `json:"prescriptionId" validate:"required"`
	PatientID      uuid.UUID `json:"patientId" validate:"required"`
}
