// Package auth holds the token codec and the role check every protected
// route composes with.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shopgrid/commerce-api/internal/core/domain"
)

const DefaultTokenTTL = 24 * time.Hour

// ErrMissingSecret is returned by NewTokenCodec when no signing key is set.
var ErrMissingSecret = errors.New("auth: signing secret is required")

// tokenClaims is the signed payload: {id, username, role} plus sub/iat/exp.
type tokenClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 identity tokens.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a TokenCodec.
type Option func(*TokenCodec)

// WithClock overrides the time source used for iat/exp and verification.
func WithClock(now func() time.Time) Option {
	return func(c *TokenCodec) { c.now = now }
}

// NewTokenCodec returns a codec signing with secret. A blank secret is
// rejected; ttl <= 0 falls back to DefaultTokenTTL.
func NewTokenCodec(secret string, ttl time.Duration, opts ...Option) (*TokenCodec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	c := &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Encode signs identity with an expiry of now+ttl.
func (c *TokenCodec) Encode(identity domain.Identity) (string, error) {
	now := c.now()
	claims := tokenClaims{
		ID:       identity.SubjectID,
		Username: identity.Username,
		Role:     string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies token and returns its claims. Every failure (bad
// signature, wrong algorithm, malformed payload, expiry) is reported as
// domain.ErrInvalidToken.
func (c *TokenCodec) Decode(token string) (*domain.Claims, error) {
	var claims tokenClaims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	if claims.ID == "" || !role.Valid() {
		return nil, fmt.Errorf("%w: incomplete identity", domain.ErrInvalidToken)
	}

	out := &domain.Claims{
		Identity: domain.Identity{
			SubjectID: claims.ID,
			Username:  claims.Username,
			Role:      role,
		},
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
