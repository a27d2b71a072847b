package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shopgrid/commerce-api/internal/api/middleware"
	"github.com/shopgrid/commerce-api/internal/core/domain"
	"github.com/shopgrid/commerce-api/internal/core/ports"
)

type stubOperatorService struct {
	signupFn    func(ctx context.Context, in ports.CreateOperatorInput) (string, *domain.Operator, error)
	loginFn     func(ctx context.Context, username, password string) (string, *domain.Operator, error)
	profileFn   func(ctx context.Context, subjectID string) (*domain.Operator, error)
	provisionFn func(ctx context.Context, in ports.CreateOperatorInput) (*domain.Operator, error)
}

func (s *stubOperatorService) Signup(ctx context.Context, in ports.CreateOperatorInput) (string, *domain.Operator, error) {
	return s.signupFn(ctx, in)
}

func (s *stubOperatorService) Login(ctx context.Context, username, password string) (string, *domain.Operator, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubOperatorService) Profile(ctx context.Context, subjectID string) (*domain.Operator, error) {
	return s.profileFn(ctx, subjectID)
}

func (s *stubOperatorService) Provision(ctx context.Context, in ports.CreateOperatorInput) (*domain.Operator, error) {
	return s.provisionFn(ctx, in)
}

type stubShopService struct {
	createFn func(ctx context.Context, in ports.CreateShopInput) (*domain.Shop, error)
	listFn   func(ctx context.Context) ([]*domain.Shop, error)
}

func (s *stubShopService) Create(ctx context.Context, in ports.CreateShopInput) (*domain.Shop, error) {
	return s.createFn(ctx, in)
}

func (s *stubShopService) List(ctx context.Context) ([]*domain.Shop, error) {
	return s.listFn(ctx)
}

type stubItemService struct {
	createFn func(ctx context.Context, in ports.CreateItemInput) (*domain.Item, error)
	listFn   func(ctx context.Context, shopID string) ([]*domain.Item, error)
}

func (s *stubItemService) Create(ctx context.Context, in ports.CreateItemInput) (*domain.Item, error) {
	return s.createFn(ctx, in)
}

func (s *stubItemService) ListByShop(ctx context.Context, shopID string) ([]*domain.Item, error) {
	return s.listFn(ctx, shopID)
}

type stubInvoiceService struct {
	createFn func(ctx context.Context, in ports.CreateInvoiceInput) (*domain.Invoice, error)
	listFn   func(ctx context.Context, identity domain.Identity) ([]*domain.Invoice, error)
}

func (s *stubInvoiceService) Create(ctx context.Context, in ports.CreateInvoiceInput) (*domain.Invoice, error) {
	return s.createFn(ctx, in)
}

func (s *stubInvoiceService) List(ctx context.Context, identity domain.Identity) ([]*domain.Invoice, error) {
	return s.listFn(ctx, identity)
}

// newContext builds an echo context for method/path with an optional JSON
// body and, when role is non-empty, authenticated claims for subject "u-1".
func newContext(t *testing.T, method, path, body string, role domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		middleware.SetClaims(c, &domain.Claims{Identity: domain.Identity{SubjectID: "u-1", Username: "user", Role: role}})
	}
	return c, rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	out := make(map[string]string, len(ve.Fields))
	for _, f := range ve.Fields {
		out[f.Field] = f.Message
	}
	return out
}
