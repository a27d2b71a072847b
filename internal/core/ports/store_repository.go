package ports

import (
	"context"

	"github.com/shopgrid/commerce-api/internal/core/domain"
)

// ShopRepository persists shops.
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	List(ctx context.Context) ([]*domain.Shop, error)
	// FindOwned returns the shop with id shopID whose owner is ownerID, or
	// domain.ErrShopNotFound when no such shop exists.
	FindOwned(ctx context.Context, shopID, ownerID string) (*domain.Shop, error)
	IDsByOwner(ctx context.Context, ownerID string) ([]string, error)
}

// ItemRepository persists items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	ListByShop(ctx context.Context, shopID string) ([]*domain.Item, error)
}

// InvoiceFilter narrows an invoice listing. A zero filter is unscoped.
type InvoiceFilter struct {
	CustomerID string
	// ShopIDs restricts results to these shops when ScopeToShops is set;
	// an empty slice then matches nothing.
	ShopIDs      []string
	ScopeToShops bool
}

// InvoiceRepository persists invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]*domain.Invoice, error)
}
