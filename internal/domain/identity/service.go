package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/auth"
)

var (
	// ErrEmailTaken is returned when registering an email that already has an
	// account.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so login failures are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service implements registration and login.
type Service struct {
	repo   Repository
	tokens *auth.Manager
	log    zerolog.Logger
}

func NewService(repo Repository, tokens *auth.Manager, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		log:    log.With().Str("component", "identity").Logger(),
	}
}

// Register creates the account plus its role profile and returns a signed
// token for the new user.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.repo.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	u, err = s.repo.Create(ctx, u, req)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", u.ID.String()).Str("role", u.Role).Msg("registered user")

	return s.authResult(u)
}

// Login verifies the credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.authResult(u)
}

func (s *Service) authResult(u *User) (*AuthResult, error) {
	token, err := s.tokens.Issue(u.ID.String(), u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, User: u.public()}, nil
}
