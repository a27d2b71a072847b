package handler

import (
	"strings"

	"github.com/shopspring/decimal"
)

// --- Request / Response types ---

type signupRequest struct {
	OperatorName string `json:"operator_name" validate:"required"`
	Username     string `json:"username"      validate:"required"`
	Password     string `json:"password"      validate:"required,min=6,bcryptlen"`
	Role         string `json:"role"          validate:"required,oneof=shop_assistant operator"`
}

func (r *signupRequest) normalize() {
	r.OperatorName = strings.TrimSpace(r.OperatorName)
	r.Username = strings.TrimSpace(r.Username)
	r.Role = strings.TrimSpace(r.Role)
}

// provisionRequest is signupRequest with every role allowed.
type provisionRequest struct {
	OperatorName string `json:"operator_name" validate:"required"`
	Username     string `json:"username"      validate:"required"`
	Password     string `json:"password"      validate:"required,min=6,bcryptlen"`
	Role         string `json:"role"          validate:"required,oneof=super_admin shop_owner operator shop_assistant customer"`
}

func (r *provisionRequest) normalize() {
	r.OperatorName = strings.TrimSpace(r.OperatorName)
	r.Username = strings.TrimSpace(r.Username)
	r.Role = strings.TrimSpace(r.Role)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type createShopRequest struct {
	Name    string `json:"name"     validate:"required"`
	OwnerID string `json:"owner_id"`
}

func (r *createShopRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.OwnerID = strings.TrimSpace(r.OwnerID)
}

// Amounts are pointers so a missing field fails "required" while 0 passes.
// They decode from a JSON number or a quoted string without going through float64.

type createItemRequest struct {
	Name   string           `json:"name"    validate:"required"`
	Price  *decimal.Decimal `json:"price"   validate:"required,gte=0" swaggertype:"string" example:"12.50"`
	ShopID string           `json:"shop_id" validate:"required"`
}

func (r *createItemRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.ShopID = strings.TrimSpace(r.ShopID)
}

type createInvoiceRequest struct {
	ShopID      string           `json:"shop_id"      validate:"required"`
	CustomerID  string           `json:"customer_id"  validate:"required"`
	TotalAmount *decimal.Decimal `json:"total_amount" validate:"required,gte=0" swaggertype:"string" example:"99.90"`
}

func (r *createInvoiceRequest) normalize() {
	r.ShopID = strings.TrimSpace(r.ShopID)
	r.CustomerID = strings.TrimSpace(r.CustomerID)
}
