package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopgrid/commerce-api/internal/api/metrics"
	"github.com/shopgrid/commerce-api/internal/api/middleware"
	"github.com/shopgrid/commerce-api/internal/core/domain"
	"github.com/shopgrid/commerce-api/internal/core/ports"
)

// OperatorHandler serves signup, login, profile and account provisioning.
type OperatorHandler struct {
	service ports.OperatorService
}

func NewOperatorHandler(service ports.OperatorService) *OperatorHandler {
	return &OperatorHandler{service: service}
}

// Signup creates a self-service account and returns a token for it.
//
// @Summary      Sign up
// @Tags         operator
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  map[string]any
// @Failure      500   {object}  map[string]string
// @Router       /api/operator/signup [post]
func (h *OperatorHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, _, err := h.service.Signup(c.Request().Context(), ports.CreateOperatorInput{
		OperatorName: req.OperatorName,
		Username:     req.Username,
		Password:     req.Password,
		Role:         domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("operator").Inc()
	return c.JSON(http.StatusCreated, tokenResponse{Message: "Operator created successfully", Token: token})
}

// Login exchanges credentials for a token.
//
// @Summary      Login
// @Tags         operator
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/operator/login [post]
func (h *OperatorHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, _, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Message: "Login successful", Token: token})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}

// Profile returns the caller's own account.
//
// @Summary      Current operator profile
// @Tags         operator
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Operator
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/operator/profile [get]
func (h *OperatorHandler) Profile(c echo.Context) error {
	claims, err := middleware.Authorize(c, domain.RoleOperator, domain.RoleShopAssistant)
	if err != nil {
		return err
	}

	op, err := h.service.Profile(c.Request().Context(), claims.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, op)
}

// Provision creates an account of any role. Restricted to super admins.
//
// @Summary      Provision an account
// @Tags         operator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      provisionRequest  true  "Account details"
// @Success      201   {object}  domain.Operator
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/operator/accounts [post]
func (h *OperatorHandler) Provision(c echo.Context) error {
	if _, err := middleware.Authorize(c, domain.RoleSuperAdmin); err != nil {
		return err
	}

	var req provisionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	op, err := h.service.Provision(c.Request().Context(), ports.CreateOperatorInput{
		OperatorName: req.OperatorName,
		Username:     req.Username,
		Password:     req.Password,
		Role:         domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("operator").Inc()
	return c.JSON(http.StatusCreated, op)
}
