package doctor

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyQuery is returned when a search is attempted without a query.
var ErrEmptyQuery = errors.New("search query is required")

// Service implements doctor profile management and lookup.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Doctor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) Search(ctx context.Context, query string) ([]*Doctor, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.repo.Search(ctx, query)
}

func (s *Service) Create(ctx context.Context, req *UpsertRequest) (*Doctor, error) {
	return s.repo.Create(ctx, fromRequest(req))
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpsertRequest) (*Doctor, error) {
	d := fromRequest(req)
	d.ID = id
	return s.repo.Update(ctx, d)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func fromRequest(req *UpsertRequest) *Doctor {
	return &Doctor{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Specialization: req.Specialization,
		PhoneNumber:    req.PhoneNumber,
	}
}
