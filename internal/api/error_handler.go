package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopgrid/commerce-api/internal/api/handler"
	"github.com/shopgrid/commerce-api/internal/core/domain"
)

const msgInternal = "Something went wrong!"

// messageResponse is the canonical error envelope for all API errors.
type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type validationResponse struct {
	Errors []handler.FieldError `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
//   - Echoes raw store errors only when exposeErrors is set.
func NewHTTPErrorHandler(log zerolog.Logger, exposeErrors bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *handler.ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, validationResponse{Errors: ve.Fields})
			return
		}
		if errors.Is(err, domain.ErrPasswordTooLong) {
			_ = c.JSON(http.StatusBadRequest, validationResponse{Errors: []handler.FieldError{
				{Field: "password", Message: err.Error()},
			}})
			return
		}

		code, body := resolveError(err, log, c, exposeErrors)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, exposeErrors bool) (int, messageResponse) {
	// Echo's own errors (bind failures, 404 from router, auth gate, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Int("status", he.Code).Str("path", c.Path()).Msg("request rejected")
		}
		return he.Code, messageResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrOperatorExists):
		return http.StatusBadRequest, messageResponse{Message: "Operator already exists"}
	case errors.Is(err, domain.ErrInvalidRole), errors.Is(err, domain.ErrNegativeAmount):
		return http.StatusBadRequest, messageResponse{Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, messageResponse{Message: "Invalid credentials"}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, messageResponse{Message: "Authentication required"}
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, messageResponse{Message: "Invalid token"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, messageResponse{Message: "Insufficient permissions"}
	case errors.Is(err, domain.ErrOperatorNotFound):
		return http.StatusNotFound, messageResponse{Message: "Operator not found"}
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, messageResponse{Message: "Too many login attempts"}
	}

	event := log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path())

	var oe *handler.OperationError
	if errors.As(err, &oe) {
		event.Msg(oe.Message)
		resp := messageResponse{Message: oe.Message}
		if exposeErrors {
			resp.Error = oe.Err.Error()
		}
		return http.StatusInternalServerError, resp
	}

	// Unexpected error: log the real cause, return a generic message.
	event.Msg("unhandled error")
	return http.StatusInternalServerError, messageResponse{Message: msgInternal}
}
