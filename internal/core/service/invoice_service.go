package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shopgrid/commerce-api/internal/core/domain"
	"github.com/shopgrid/commerce-api/internal/core/ports"
)

type InvoiceService struct {
	invoices ports.InvoiceRepository
	shops    ports.ShopRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewInvoiceService(invoices ports.InvoiceRepository, shops ports.ShopRepository, logger zerolog.Logger) *InvoiceService {
	return &InvoiceService{invoices: invoices, shops: shops, logger: logger, now: time.Now}
}

// Create records an invoice against a shop owned by the requester.
func (s *InvoiceService) Create(ctx context.Context, input ports.CreateInvoiceInput) (*domain.Invoice, error) {
	if input.TotalAmount.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}
	if err := VerifyOwnership(ctx, s.shops, input.ShopID, input.RequesterID); err != nil {
		return nil, err
	}

	invoice := &domain.Invoice{
		ID:          uuid.NewString(),
		ShopID:      input.ShopID,
		CustomerID:  input.CustomerID,
		TotalAmount: input.TotalAmount,
		CreatedAt:   s.now().UTC(),
	}

	created, err := s.invoices.Create(ctx, invoice)
	if err != nil {
		s.logger.Error().Err(err).Str("shop_id", input.ShopID).Msg("failed to create invoice")
		return nil, err
	}

	s.logger.Info().
		Str("invoice_id", created.ID).
		Str("shop_id", created.ShopID).
		Str("customer_id", created.CustomerID).
		Msg("invoice created")
	return created, nil
}

// List scopes invoices by role: customers see their own, shop owners see
// those of the shops they own, every other role sees all of them.
func (s *InvoiceService) List(ctx context.Context, identity domain.Identity) ([]*domain.Invoice, error) {
	var filter ports.InvoiceFilter

	switch identity.Role {
	case domain.RoleCustomer:
		filter.CustomerID = identity.SubjectID
	case domain.RoleShopOwner:
		ids, err := s.shops.IDsByOwner(ctx, identity.SubjectID)
		if err != nil {
			return nil, fmt.Errorf("list owned shops: %w", err)
		}
		filter.ShopIDs = ids
		filter.ScopeToShops = true
	}

	return s.invoices.List(ctx, filter)
}
