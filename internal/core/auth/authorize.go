package auth

import "github.com/shopgrid/commerce-api/internal/core/domain"

// Authorize checks claims against a route's allowed roles. An empty allowed
// set admits any authenticated identity; nil claims are never admitted.
func Authorize(allowed []domain.Role, claims *domain.Claims) (*domain.Claims, error) {
	if claims == nil {
		return nil, domain.ErrUnauthenticated
	}
	if len(allowed) > 0 && !claims.Role.In(allowed) {
		return nil, domain.ErrForbidden
	}
	return claims, nil
}
