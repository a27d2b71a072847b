package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopgrid/commerce-api/internal/api/metrics"
	"github.com/shopgrid/commerce-api/internal/api/middleware"
	"github.com/shopgrid/commerce-api/internal/core/domain"
	"github.com/shopgrid/commerce-api/internal/core/ports"
)

// ShopHandler handles HTTP requests for shops.
type ShopHandler struct {
	service ports.ShopService
}

func NewShopHandler(service ports.ShopService) *ShopHandler {
	return &ShopHandler{service: service}
}

// Create registers a new shop.
//
// @Summary      Create a shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShopRequest  true  "Shop"
// @Success      201   {object}  domain.Shop
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/shops [post]
func (h *ShopHandler) Create(c echo.Context) error {
	if _, err := middleware.Authorize(c, domain.RoleSuperAdmin); err != nil {
		return err
	}

	var req createShopRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	shop, err := h.service.Create(c.Request().Context(), ports.CreateShopInput{
		Name:    req.Name,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return operationFailed("Error creating shop", err)
	}

	metrics.RecordsCreatedTotal.WithLabelValues("shop").Inc()
	return c.JSON(http.StatusCreated, shop)
}

// List returns every shop.
//
// @Summary      List shops
// @Tags         shops
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Shop
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/shops [get]
func (h *ShopHandler) List(c echo.Context) error {
	if _, err := middleware.Authorize(c); err != nil {
		return err
	}

	shops, err := h.service.List(c.Request().Context())
	if err != nil {
		return operationFailed("Error fetching shops", err)
	}
	return c.JSON(http.StatusOK, nonNil(shops))
}
