package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNoFields is returned when a partial update names nothing to change.
var ErrNoFields = errors.New("no fields to update")

// Service implements appointment booking and management.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// Create books an appointment. Status defaults to scheduled.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Appointment, error) {
	status := req.Status
	if status == "" {
		status = StatusScheduled
	}
	return s.repo.Create(ctx, &Appointment{
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		AppointmentDate: req.AppointmentDate,
		Status:          status,
		Notes:           req.Notes,
	})
}

// Update applies the provided fields only.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Appointment, error) {
	if req.AppointmentDate == nil && req.Status == nil && req.Notes == nil {
		return nil, ErrNoFields
	}
	return s.repo.Update(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
