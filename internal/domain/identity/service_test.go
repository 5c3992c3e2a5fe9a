package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/auth"
)

type mockRepo struct {
	byEmail   map[string]*User
	createErr error
	profiles  map[string]string
}

func newMockRepo() *mockRepo {
	return &mockRepo{byEmail: make(map[string]*User), profiles: make(map[string]string)}
}

func (m *mockRepo) Create(ctx context.Context, u *User, req *RegisterRequest) (*User, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	m.byEmail[u.Email] = u
	switch u.Role {
	case RolePatient:
		m.profiles[u.Email] = "patient:" + req.Gender
	case RoleDoctor:
		m.profiles[u.Email] = "doctor:" + req.Specialization
	}
	return u, nil
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func newTestService(repo Repository) *Service {
	tokens := auth.NewManager("test-secret-at-least-16-bytes", time.Hour)
	return NewService(repo, tokens, zerolog.Nop())
}

func patientRequest() *RegisterRequest {
	return &RegisterRequest{
		Email:       "Jane.Doe@Example.com",
		Password:    "hunter22",
		Role:        RolePatient,
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: "1990-04-02",
		Gender:      "female",
		PhoneNumber: "555-0101",
	}
}

func TestRegisterPatientCreatesAccountAndProfile(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	result, err := svc.Register(context.Background(), patientRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token")
	}
	if result.User.Email != "jane.doe@example.com" {
		t.Fatalf("email not normalized: %q", result.User.Email)
	}
	if repo.profiles["jane.doe@example.com"] != "patient:female" {
		t.Fatal("patient profile row not created")
	}

	stored := repo.byEmail["jane.doe@example.com"]
	if stored.PasswordHash == "hunter22" {
		t.Fatal("password stored in plaintext")
	}
	if !auth.CheckPassword(stored.PasswordHash, "hunter22") {
		t.Fatal("stored hash does not verify the password")
	}
}

func TestRegisterDoctorCreatesProfile(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	req := &RegisterRequest{
		Email:          "dr@example.com",
		Password:       "secret1",
		Role:           RoleDoctor,
		FirstName:      "Greg",
		LastName:       "House",
		Specialization: "Cardiology",
		PhoneNumber:    "555-0102",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.profiles["dr@example.com"] != "doctor:Cardiology" {
		t.Fatal("doctor profile row not created")
	}
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), patientRequest()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), patientRequest())
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), patientRequest()); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "jane.doe@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.User.Role != RolePatient {
		t.Fatalf("unexpected role %q", result.User.Role)
	}

	// The issued token carries the user's identity.
	tokens := auth.NewManager("test-secret-at-least-16-bytes", time.Hour)
	claims, err := tokens.Verify(result.Token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.UserID != result.User.ID.String() {
		t.Fatal("token subject does not match user")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), patientRequest()); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name  string
		email string
		pass  string
	}{
		{"unknown email", "nobody@example.com", "hunter22"},
		{"wrong password", "jane.doe@example.com", "wrong"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &LoginRequest{Email: tc.email, Password: tc.pass})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}
