package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func runRBAC(t *testing.T, principal *Principal, allowed ...string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if principal != nil {
		req = req.WithContext(WithPrincipal(req.Context(), *principal))
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return h(c)
}

func TestRequireRole_Allowed(t *testing.T) {
	p := Principal{ID: uuid.New(), Role: RoleReceptionist}
	if err := runRBAC(t, &p, RoleReceptionist, RoleDoctor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole_AdminBypass(t *testing.T) {
	p := Principal{ID: uuid.New(), Role: RoleAdmin}
	if err := runRBAC(t, &p, RoleDoctor); err != nil {
		t.Fatalf("expected admin to bypass role check: %v", err)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	p := Principal{ID: uuid.New(), Role: RolePatient}
	err := runRBAC(t, &p, RoleDoctor, RoleReceptionist)
	assertHTTPError(t, err, http.StatusForbidden)
}

func TestRequireRole_Unauthenticated(t *testing.T) {
	err := runRBAC(t, nil, RoleDoctor)
	assertHTTPError(t, err, http.StatusUnauthorized)
}
