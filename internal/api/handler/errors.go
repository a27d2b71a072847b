package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a request body fails validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// OperationError marks a failed store operation. Message is safe to show to
// clients; Err is the underlying cause.
type OperationError struct {
	Message string
	Err     error
}

func (e *OperationError) Error() string { return e.Message + ": " + e.Err.Error() }

func (e *OperationError) Unwrap() error { return e.Err }

func operationFailed(message string, err error) error {
	return &OperationError{Message: message, Err: err}
}

// normalizer is implemented by request bodies that clean their own input
// (trimming, case folding) before validation.
type normalizer interface {
	normalize()
}

// bindAndValidate decodes the JSON body into req and validates it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload").SetInternal(err)
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	return c.Validate(req)
}

// nonNil keeps empty listings serialised as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
