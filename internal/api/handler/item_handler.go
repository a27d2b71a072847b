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

// ItemHandler handles HTTP requests for shop items.
type ItemHandler struct {
	service ports.ItemService
}

func NewItemHandler(service ports.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// Create adds an item to a shop the caller owns.
//
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createItemRequest  true  "Item"
// @Success      201   {object}  domain.Item
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	claims, err := middleware.Authorize(c, domain.RoleShopOwner)
	if err != nil {
		return err
	}

	var req createItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.service.Create(c.Request().Context(), ports.CreateItemInput{
		Name:        req.Name,
		Price:       *req.Price,
		ShopID:      req.ShopID,
		RequesterID: claims.SubjectID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrShopNotOwned) {
			metrics.OwnershipDenialsTotal.WithLabelValues("item").Inc()
			return echo.NewHTTPError(http.StatusForbidden, "Not authorized to add items to this shop").SetInternal(err)
		}
		return operationFailed("Error creating item", err)
	}

	metrics.RecordsCreatedTotal.WithLabelValues("item").Inc()
	return c.JSON(http.StatusCreated, item)
}

// ListByShop returns the items of one shop.
//
// @Summary      List items of a shop
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        shopId  path      string  true  "Shop ID"
// @Success      200     {array}   domain.Item
// @Failure      401     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/items/shop/{shopId} [get]
func (h *ItemHandler) ListByShop(c echo.Context) error {
	if _, err := middleware.Authorize(c); err != nil {
		return err
	}

	items, err := h.service.ListByShop(c.Request().Context(), c.Param("shopId"))
	if err != nil {
		return operationFailed("Error fetching items", err)
	}
	return c.JSON(http.StatusOK, nonNil(items))
}
