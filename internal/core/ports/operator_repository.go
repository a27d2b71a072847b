package ports

import (
	"context"

	"github.com/shopgrid/commerce-api/internal/core/domain"
)

// OperatorRepository persists operator accounts.
type OperatorRepository interface {
	// Create inserts op. A username collision is reported as
	// domain.ErrOperatorExists by the store's unique constraint.
	Create(ctx context.Context, op *domain.Operator) (*domain.Operator, error)
	FindByUsername(ctx context.Context, username string) (*domain.Operator, error)
	FindByID(ctx context.Context, id string) (*domain.Operator, error)
}

// TokenCodec signs and verifies identity claims.
type TokenCodec interface {
	Encode(identity domain.Identity) (string, error)
	Decode(token string) (*domain.Claims, error)
}

// LoginThrottle counts failed logins per username.
type LoginThrottle interface {
	Allowed(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
