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

// InvoiceHandler handles HTTP requests for invoices.
type InvoiceHandler struct {
	service ports.InvoiceService
}

func NewInvoiceHandler(service ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// Create records an invoice against a shop the caller owns.
//
// @Summary      Create an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createInvoiceRequest  true  "Invoice"
// @Success      201   {object}  domain.Invoice
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	claims, err := middleware.Authorize(c, domain.RoleShopOwner)
	if err != nil {
		return err
	}

	var req createInvoiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	invoice, err := h.service.Create(c.Request().Context(), ports.CreateInvoiceInput{
		ShopID:      req.ShopID,
		CustomerID:  req.CustomerID,
		TotalAmount: *req.TotalAmount,
		RequesterID: claims.SubjectID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrShopNotOwned) {
			metrics.OwnershipDenialsTotal.WithLabelValues("invoice").Inc()
			return echo.NewHTTPError(http.StatusForbidden, "Not authorized to create invoices for this shop").SetInternal(err)
		}
		return operationFailed("Error creating invoice", err)
	}

	metrics.RecordsCreatedTotal.WithLabelValues("invoice").Inc()
	return c.JSON(http.StatusCreated, invoice)
}

// List returns the invoices visible to the caller: customers see their own,
// shop owners see those of their shops.
//
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Invoice
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	claims, err := middleware.Authorize(c)
	if err != nil {
		return err
	}

	invoices, err := h.service.List(c.Request().Context(), claims.Identity)
	if err != nil {
		return operationFailed("Error fetching invoices", err)
	}
	return c.JSON(http.StatusOK, nonNil(invoices))
}
