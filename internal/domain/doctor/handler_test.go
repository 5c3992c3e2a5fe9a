package doctor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/validation"
)

func newTestServer() *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	NewHandler(NewService(newMockRepo())).RegisterRoutes(e.Group("/api"))
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSearchRouteNotShadowedByIDRoute(t *testing.T) {
	e := newTestServer()

	if rec := get(e, "/api/doctors/search?query=house"); rec.Code != http.StatusOK {
		t.Fatalf("search: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := get(e, "/api/doctors/search"); rec.Code != http.StatusBadRequest {
		t.Fatalf("search without query: expected 400, got %d", rec.Code)
	}
}

func TestCreateThenLookupByEmail(t *testing.T) {
	e := newTestServer()

	body := `{"firstName":"Greg","lastName":"House","email":"house@example.com","specialization":"Diagnostics","phoneNumber":"555-0102"}`
	req := httptest.NewRequest(http.MethodPost, "/api/doctors", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = get(e, "/api/doctors/email/house@example.com")
	if rec.Code != http.StatusOK {
		t.Fatalf("by email: expected 200, got %d", rec.Code)
	}
	var d Doctor
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatal(err)
	}
	if d.Specialization != "Diagnostics" {
		t.Fatalf("unexpected doctor %+v", d)
	}

	if rec := get(e, "/api/doctors/email/nobody@example.com"); rec.Code != http.StatusNotFound {
		t.Fatalf("missing email: expected 404, got %d", rec.Code)
	}
}
