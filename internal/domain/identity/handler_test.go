package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/validation"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	return e
}

func doRequest(t *testing.T, e *echo.Echo, h *Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(newTestService(newMockRepo()))
	h.RegisterRoutes(e.Group("/api"))

	body := `{
		"email": "jane@example.com",
		"password": "hunter22",
		"role": "patient",
		"firstName": "Jane",
		"lastName": "Doe",
		"dateOfBirth": "1990-04-02",
		"gender": "female",
		"phoneNumber": "555-0101"
	}`
	rec := doRequest(t, e, h, http.MethodPost, "/api/auth/register", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var result AuthResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Token == "" || result.User.Email != "jane@example.com" {
		t.Fatalf("unexpected response %+v", result)
	}
}

func TestRegisterValidation(t *testing.T) {
	e := newTestEcho()
	h := NewHandler(newTestService(newMockRepo()))
	h.RegisterRoutes(e.Group("/api"))

	cases := []struct {
		name string
		body string
	}{
		{"bad email", `{"email":"nope","password":"hunter22","role":"patient","firstName":"J","lastName":"D","dateOfBirth":"1990-01-01","gender":"f","phoneNumber":"1"}`},
		{"short password", `{"email":"a@b.com","password":"short","role":"patient","firstName":"J","lastName":"D","dateOfBirth":"1990-01-01","gender":"f","phoneNumber":"1"}`},
		{"bad role", `{"email":"a@b.com","password":"hunter22","role":"wizard","firstName":"J","lastName":"D"}`},
		{"patient without dob", `{"email":"a@b.com","password":"hunter22","role":"patient","firstName":"J","lastName":"D","gender":"f","phoneNumber":"1"}`},
		{"doctor without specialization", `{"email":"a@b.com","password":"hunter22","role":"doctor","firstName":"J","lastName":"D","phoneNumber":"1"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, e, h, http.MethodPost, "/api/auth/register", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	e := newTestEcho()
	repo := newMockRepo()
	svc := newTestService(repo)
	h := NewHandler(svc)
	h.RegisterRoutes(e.Group("/api"))

	register := `{
		"email": "jane@example.com",
		"password": "hunter22",
		"role": "admin",
		"firstName": "Jane",
		"lastName": "Doe"
	}`
	if rec := doRequest(t, e, h, http.MethodPost, "/api/auth/register", register); rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}

	rec := doRequest(t, e, h, http.MethodPost, "/api/auth/login", `{"email":"jane@example.com","password":"hunter22"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, e, h, http.MethodPost, "/api/auth/login", `{"email":"jane@example.com","password":"bad"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad password, got %d", rec.Code)
	}
}
