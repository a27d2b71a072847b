package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shopgrid/commerce-api/internal/api/metrics"
	"github.com/shopgrid/commerce-api/internal/core/domain"
	"github.com/shopgrid/commerce-api/internal/core/ports"
)

const claimsKey = "auth.claims"

const (
	msgAuthRequired = "Authentication required"
	msgInvalidToken = "Invalid token"
)

// Authenticate verifies the bearer token and attaches its claims to the
// context. It does not look at roles; handlers do that with Authorize.
func Authenticate(codec ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthDecisionsTotal.WithLabelValues(metrics.OutcomeMissingToken).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgAuthRequired)
			}

			claims, err := codec.Decode(token)
			if err != nil {
				metrics.AuthDecisionsTotal.WithLabelValues(metrics.OutcomeInvalidToken).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken).SetInternal(err)
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// bearerToken extracts <token> from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// ClaimsFrom returns the claims attached by Authenticate, or nil.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(claimsKey).(*domain.Claims)
	return claims
}

// SetClaims attaches claims to c. Used by tests and internal callers that
// authenticate by other means.
func SetClaims(c echo.Context, claims *domain.Claims) {
	c.Set(claimsKey, claims)
}
