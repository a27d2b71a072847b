package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shopgrid/commerce-api/internal/core/domain"
)

// CreateShopInput carries the fields for a new shop.
type CreateShopInput struct {
	Name    string
	OwnerID string
}

// CreateItemInput carries the fields for a new item. RequesterID is the
// authenticated subject and must own ShopID.
type CreateItemInput struct {
	Name        string
	Price       decimal.Decimal
	ShopID      string
	RequesterID string
}

// CreateInvoiceInput carries the fields for a new invoice. RequesterID is the
// authenticated subject and must own ShopID.
type CreateInvoiceInput struct {
	ShopID      string
	CustomerID  string
	TotalAmount decimal.Decimal
	RequesterID string
}

type ShopService interface {
	Create(ctx context.Context, input CreateShopInput) (*domain.Shop, error)
	List(ctx context.Context) ([]*domain.Shop, error)
}

type ItemService interface {
	Create(ctx context.Context, input CreateItemInput) (*domain.Item, error)
	ListByShop(ctx context.Context, shopID string) ([]*domain.Item, error)
}

type InvoiceService interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)
	// List returns the invoices visible to identity.
	List(ctx context.Context, identity domain.Identity) ([]*domain.Invoice, error)
}
