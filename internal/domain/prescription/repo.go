package prescription

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no prescription matches the id.
	ErrNotFound = errors.New("prescription not found")
	// ErrDoctorNotFound is returned when prescribing as an unknown doctor.
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrPatientNotFound is returned when prescribing for an unknown patient.
	ErrPatientNotFound = errors.New("patient not found")
)

// SearchLimit caps prescribing patient search results.
const SearchLimit = 10

// Repository is the prescription store.
type Repository interface {
	List(ctx context.Context) ([]*Prescription, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Prescription, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Prescription, error)
	// Get returns one prescription with its medications attached.
	Get(ctx context.Context, id uuid.UUID) (*Prescription, error)
	// Create verifies the doctor and patient exist, then inserts the
	// prescription and its line items in one transaction.
	Create(ctx context.Context, p *Prescription) (*Prescription, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SearchPatients matches the query against patient names and emails,
	// capped at SearchLimit rows.
	SearchPatients(ctx context.Context, query string) ([]*PatientHit, error)
}
