package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/shopgrid/commerce-api/internal/core/domain"
	"github.com/shopgrid/commerce-api/internal/core/ports"
)

func TestOperatorHandler_Signup_Success(t *testing.T) {
	stub := &stubOperatorService{
		signupFn: func(ctx context.Context, in ports.CreateOperatorInput) (string, *domain.Operator, error) {
			if in.Username != "alice" || in.OperatorName != "Alice" || in.Role != domain.RoleOperator {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "tok", &domain.Operator{ID: "op-1", Username: in.Username}, nil
		},
	}
	h := NewOperatorHandler(stub)

	c, rec := newContext(t, http.MethodPost, "/api/operator/signup",
		`{"operator_name":"  Alice ","username":" alice","password":"secret1","role":"operator"}`, "")
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Operator created successfully" || resp["token"] != "tok" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestOperatorHandler_Signup_Validation(t *testing.T) {
	stub := &stubOperatorService{
		signupFn: func(ctx context.Context, in ports.CreateOperatorInput) (string, *domain.Operator, error) {
			t.Fatal("service must not be called")
			return "", nil, nil
		},
	}
	h := NewOperatorHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/api/operator/signup",
		`{"operator_name":"   ","username":"bob","password":"12345","role":"super_admin"}`, "")
	fields := validationFields(t, h.Signup(c))

	for _, f := range []string{"operator_name", "password", "role"} {
		if _, ok := fields[f]; !ok {
			t.Fatalf("expected error on %q, got %+v", f, fields)
		}
	}
	if _, ok := fields["username"]; ok {
		t.Fatalf("username is valid, got %+v", fields)
	}
}

func TestOperatorHandler_Signup_PasswordByteLimit(t *testing.T) {
	var called bool
	h := NewOperatorHandler(&stubOperatorService{
		signupFn: func(ctx context.Context, in ports.CreateOperatorInput) (string, *domain.Operator, error) {
			called = true
			return "tok", &domain.Operator{ID: "op-1"}, nil
		},
	})

	// 40 runes, 80 bytes.
	long := strings.Repeat("é", 40)
	c, _ := newContext(t, http.MethodPost, "/api/operator/signup",
		`{"operator_name":"Eve","username":"eve","password":"`+long+`","role":"operator"}`, "")
	fields := validationFields(t, h.Signup(c))
	if fields["password"] != "password must be at most 72 bytes" {
		t.Fatalf("expected byte limit error on password, got %+v", fields)
	}
	if called {
		t.Fatal("service must not be called")
	}

	// 72 ASCII bytes is the largest accepted password.
	c, rec := newContext(t, http.MethodPost, "/api/operator/signup",
		`{"operator_name":"Eve","username":"eve","password":"`+strings.Repeat("a", 72)+`","role":"operator"}`, "")
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || !called {
		t.Fatalf("expected 201 from service, got %d", rec.Code)
	}
}

func TestOperatorHandler_Signup_BadJSON(t *testing.T) {
	h := NewOperatorHandler(&stubOperatorService{})
	c, _ := newContext(t, http.MethodPost, "/api/operator/signup", `{"username":`, "")
	if code := httpStatus(t, h.Signup(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestOperatorHandler_Signup_Duplicate(t *testing.T) {
	stub := &stubOperatorService{
		signupFn: func(ctx context.Context, in ports.CreateOperatorInput) (string, *domain.Operator, error) {
			return "", nil, domain.ErrOperatorExists
		},
	}
	h := NewOperatorHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/api/operator/signup",
		`{"operator_name":"Bob","username":"bob","password":"secret1","role":"shop_assistant"}`, "")
	if err := h.Signup(c); !errors.Is(err, domain.ErrOperatorExists) {
		t.Fatalf("expected ErrOperatorExists, got %v", err)
	}
}

func TestOperatorHandler_Login(t *testing.T) {
	stub := &stubOperatorService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.Operator, error) {
			if username == "alice" && password == "secret1" {
				return "tok", &domain.Operator{ID: "op-1"}, nil
			}
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewOperatorHandler(stub)

	c, rec := newContext(t, http.MethodPost, "/api/operator/login", `{"username":"alice","password":"secret1"}`, "")
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["message"] != "Login successful" || resp["token"] != "tok" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	c, _ = newContext(t, http.MethodPost, "/api/operator/login", `{"username":"alice","password":"nope"}`, "")
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginResult(t *testing.T) {
	cases := map[error]string{
		domain.ErrInvalidCredentials: "invalid_credentials",
		domain.ErrTooManyAttempts:    "throttled",
		errors.New("boom"):           "error",
	}
	for err, want := range cases {
		if got := loginResult(err); got != want {
			t.Fatalf("loginResult(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestOperatorHandler_Profile(t *testing.T) {
	stub := &stubOperatorService{
		profileFn: func(ctx context.Context, subjectID string) (*domain.Operator, error) {
			if subjectID != "u-1" {
				return nil, domain.ErrOperatorNotFound
			}
			return &domain.Operator{ID: "u-1", Username: "user", PasswordHash: "$2a$hash", Role: domain.RoleOperator}, nil
		},
	}
	h := NewOperatorHandler(stub)

	c, rec := newContext(t, http.MethodGet, "/api/operator/profile", "", domain.RoleOperator)
	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["id"] != "u-1" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	for k := range resp {
		if k == "password" || k == "password_hash" || k == "PasswordHash" {
			t.Fatalf("password hash leaked: %+v", resp)
		}
	}
}

func TestOperatorHandler_Profile_RoleGate(t *testing.T) {
	h := NewOperatorHandler(&stubOperatorService{})

	c, _ := newContext(t, http.MethodGet, "/api/operator/profile", "", domain.RoleCustomer)
	if code := httpStatus(t, h.Profile(c)); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}

	c, _ = newContext(t, http.MethodGet, "/api/operator/profile", "", "")
	if code := httpStatus(t, h.Profile(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestOperatorHandler_Provision(t *testing.T) {
	stub := &stubOperatorService{
		provisionFn: func(ctx context.Context, in ports.CreateOperatorInput) (*domain.Operator, error) {
			return &domain.Operator{ID: "op-9", Username: in.Username, Role: in.Role}, nil
		},
	}
	h := NewOperatorHandler(stub)
	body := `{"operator_name":"Owner","username":"owner","password":"secret1","role":"shop_owner"}`

	c, rec := newContext(t, http.MethodPost, "/api/operator/accounts", body, domain.RoleSuperAdmin)
	if err := h.Provision(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["role"] != "shop_owner" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	c, _ = newContext(t, http.MethodPost, "/api/operator/accounts", body, domain.RoleShopOwner)
	if code := httpStatus(t, h.Provision(c)); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}
