package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopgrid/commerce-api/internal/api/metrics"
	"github.com/shopgrid/commerce-api/internal/core/auth"
	"github.com/shopgrid/commerce-api/internal/core/domain"
)

const msgForbidden = "Insufficient permissions"

// Authorize admits the request only if the authenticated identity holds one
// of allowed (any identity when allowed is empty). Handlers call it first
// thing, so each route declares its own role set.
func Authorize(c echo.Context, allowed ...domain.Role) (*domain.Claims, error) {
	claims, err := auth.Authorize(allowed, ClaimsFrom(c))
	switch {
	case err == nil:
		metrics.AuthDecisionsTotal.WithLabelValues(metrics.OutcomeAllowed).Inc()
		return claims, nil
	case errors.Is(err, domain.ErrForbidden):
		metrics.AuthDecisionsTotal.WithLabelValues(metrics.OutcomeForbidden).Inc()
		return nil, echo.NewHTTPError(http.StatusForbidden, msgForbidden).SetInternal(err)
	default:
		metrics.AuthDecisionsTotal.WithLabelValues(metrics.OutcomeUnauthenticated).Inc()
		return nil, echo.NewHTTPError(http.StatusUnauthorized, msgAuthRequired).SetInternal(err)
	}
}
