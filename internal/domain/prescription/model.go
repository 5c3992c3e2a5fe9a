package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Medication is one line item on a prescription.
type Medication struct {
	MedicationName string `db:"medication_name" json:"medicationName"`
	Dosage         string `db:"dosage" json:"dosage"`
	Frequency      string `db:"frequency" json:"frequency"`
	Duration       string `db:"duration" json:"duration"`
}

// Prescription is a set of medications issued by a doctor to a patient.
// Medications is populated on single-record fetches; the name fields are
// denormalized from the joined profiles.
type Prescription struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	DoctorID         uuid.UUID    `db:"doctor_id" json:"doctorId"`
	PatientID        uuid.UUID    `db:"patient_id" json:"patientId"`
	Notes            string       `db:"notes" json:"notes"`
	CreatedAt        time.Time    `db:"created_at" json:"createdAt"`
	Medications      []Medication `json:"medications,omitempty"`
	DoctorFirstName  string       `db:"doctor_first_name" json:"doctorFirstName,omitempty"`
	DoctorLastName   string       `db:"doctor_last_name" json:"doctorLastName,omitempty"`
	PatientFirstName string       `db:"patient_first_name" json:"patientFirstName,omitempty"`
	PatientLastName  string       `db:"patient_last_name" json:"patientLastName,omitempty"`
}

// PatientHit is a patient row returned by the prescribing search.
type PatientHit struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"firstName"`
	LastName    string    `db:"last_name" json:"lastName"`
	Email       string    `db:"email" json:"email"`
	DateOfBirth time.Time `db:"date_of_birth" json:"dateOfBirth"`
	Gender      string    `db:"gender" json:"gender"`
}

// MedicationRequest is one line item on the create form.
type MedicationRequest struct {
	MedicationName string `json:"medicationName" validate:"required"`
	Dosage         string `json:"dosage" validate:"required"`
	Frequency      string `json:"frequency" validate:"required"`
	Duration       string `json:"duration" validate:"required"`
}

// CreateRequest carries the create form.
type CreateRequest struct {
	DoctorID    uuid.UUID           `json:"doctorId" validate:"required"`
	PatientID   uuid.UUID           `json:"patientId" validate:"required"`
	Medications []MedicationRequest `json:"medications" validate:"required,min=1,dive"`
	Notes       string              `json:"notes"`
}
