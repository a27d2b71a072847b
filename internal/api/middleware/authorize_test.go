package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shopgrid/commerce-api/internal/core/domain"
)

func newContext(claims *domain.Claims) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if claims != nil {
		SetClaims(c, claims)
	}
	return c
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}

func TestAuthorize_Allows(t *testing.T) {
	c := newContext(&domain.Claims{Identity: domain.Identity{SubjectID: "1", Role: domain.RoleShopAssistant}})

	claims, err := Authorize(c, domain.RoleOperator, domain.RoleShopAssistant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.SubjectID != "1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthorize_AnyAuthenticated(t *testing.T) {
	c := newContext(&domain.Claims{Identity: domain.Identity{SubjectID: "1", Role: domain.RoleCustomer}})

	if _, err := Authorize(c); err != nil {
		t.Fatalf("expected any role admitted, got %v", err)
	}
}

func TestAuthorize_Forbids(t *testing.T) {
	c := newContext(&domain.Claims{Identity: domain.Identity{SubjectID: "1", Role: domain.RoleCustomer}})

	_, err := Authorize(c, domain.RoleSuperAdmin)
	if got := statusOf(t, err); got != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", got)
	}
}

func TestAuthorize_NoClaims(t *testing.T) {
	_, err := Authorize(newContext(nil), domain.RoleSuperAdmin)
	if got := statusOf(t, err); got != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", got)
	}
}
