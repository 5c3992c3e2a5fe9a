package prescription

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyQuery is returned when a patient search is attempted without a
// query.
var ErrEmptyQuery = errors.New("search query is required")

// Service implements prescription issuing and lookup.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Prescription, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Prescription, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Prescription, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Prescription, error) {
	p := &Prescription{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		Notes:     req.Notes,
	}
	for _, m := range req.Medications {
		p.Medications = append(p.Medications, Medication(m))
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) SearchPatients(ctx context.Context, query string) ([]*PatientHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.repo.SearchPatients(ctx, query)
}
