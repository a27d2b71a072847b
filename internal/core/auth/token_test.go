package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shopgrid/commerce-api/internal/core/domain"
)

var issuedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func newTestCodec(t *testing.T, clock *fakeClock) *TokenCodec {
	t.Helper()
	c, err := NewTokenCodec("test-secret", 24*time.Hour, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return c
}

func TestNewTokenCodec_RejectsBlankSecret(t *testing.T) {
	for _, secret := range []string{"", "   "} {
		if _, err := NewTokenCodec(secret, time.Hour); !errors.Is(err, ErrMissingSecret) {
			t.Fatalf("secret %q: expected ErrMissingSecret, got %v", secret, err)
		}
	}
}

func TestNewTokenCodec_DefaultTTL(t *testing.T) {
	c, err := NewTokenCodec("s", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ttl != DefaultTokenTTL {
		t.Fatalf("expected default ttl, got %s", c.ttl)
	}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	c := newTestCodec(t, clock)

	token, err := c.Encode(domain.Identity{SubjectID: "op-1", Username: "alice", Role: domain.RoleShopOwner})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	claims, err := c.Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if claims.SubjectID != "op-1" || claims.Username != "alice" || claims.Role != domain.RoleShopOwner {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.IssuedAt.Equal(issuedAt) {
		t.Fatalf("expected iat %s, got %s", issuedAt, claims.IssuedAt)
	}
	if !claims.ExpiresAt.Equal(issuedAt.Add(24 * time.Hour)) {
		t.Fatalf("unexpected exp %s", claims.ExpiresAt)
	}
}

func TestTokenCodec_ExpiryBoundary(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	c := newTestCodec(t, clock)

	token, err := c.Encode(domain.Identity{SubjectID: "op-1", Username: "alice", Role: domain.RoleOperator})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	clock.t = issuedAt.Add(23*time.Hour + 59*time.Minute)
	if _, err := c.Decode(token); err != nil {
		t.Fatalf("expected token valid at T+23h59m, got %v", err)
	}

	clock.t = issuedAt.Add(24*time.Hour + time.Minute)
	if _, err := c.Decode(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken at T+24h01m, got %v", err)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	c := newTestCodec(t, clock)
	other, _ := NewTokenCodec("other-secret", time.Hour, WithClock(clock.Now))

	token, _ := other.Encode(domain.Identity{SubjectID: "op-1", Role: domain.RoleOperator})
	if _, err := c.Decode(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenCodec_TamperedPayload(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	c := newTestCodec(t, clock)

	token, _ := c.Encode(domain.Identity{SubjectID: "op-1", Role: domain.RoleCustomer})
	parts := strings.Split(token, ".")
	forged, _ := c.Encode(domain.Identity{SubjectID: "op-1", Role: domain.RoleSuperAdmin})
	// splice the super_admin payload onto the customer signature
	parts[1] = strings.Split(forged, ".")[1]

	if _, err := c.Decode(strings.Join(parts, ".")); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenCodec_RejectsMalformedAndForeignTokens(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	c := newTestCodec(t, clock)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":   "op-1",
		"role": "super_admin",
		"exp":  issuedAt.Add(time.Hour).Unix(),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "op-1", "role": "operator"})
	noExpToken, _ := noExp.SignedString([]byte("test-secret"))

	badRole := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "op-1",
		"role": "root",
		"exp":  issuedAt.Add(time.Hour).Unix(),
	})
	badRoleToken, _ := badRole.SignedString([]byte("test-secret"))

	cases := map[string]string{
		"garbage":      "not-a-token",
		"empty":        "",
		"alg none":     unsigned,
		"missing exp":  noExpToken,
		"unknown role": badRoleToken,
	}
	for name, token := range cases {
		if _, err := c.Decode(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}
