package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shop is a storefront. OwnerID links it to the identity allowed to create
// items and invoices under it; it may be empty for unassigned shops.
type Shop struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Item is a product sold by a shop.
type Item struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ShopID    string          `json:"shop_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// Invoice records a sale from a shop to a customer.
type Invoice struct {
	ID          string          `json:"id"`
	ShopID      string          `json:"shop_id"`
	CustomerID  string          `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
}
