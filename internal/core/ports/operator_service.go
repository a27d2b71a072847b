package ports

import (
	"context"

	"github.com/shopgrid/commerce-api/internal/core/domain"
)

// CreateOperatorInput carries signup and provisioning fields.
type CreateOperatorInput struct {
	OperatorName string
	Username     string
	Password     string
	Role         domain.Role
}

// OperatorService handles account signup, login and profile lookup.
type OperatorService interface {
	// Signup creates a self-service account and returns a signed token for it.
	Signup(ctx context.Context, input CreateOperatorInput) (string, *domain.Operator, error)
	Login(ctx context.Context, username, password string) (string, *domain.Operator, error)
	Profile(ctx context.Context, subjectID string) (*domain.Operator, error)
	// Provision creates an account of any role without issuing a token.
	Provision(ctx context.Context, input CreateOperatorInput) (*domain.Operator, error)
}
