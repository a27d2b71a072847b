package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopgrid/commerce-api/internal/core/domain"
	"github.com/shopgrid/commerce-api/internal/core/ports"
)

// VerifyOwnership fails with domain.ErrShopNotOwned unless a shop with id
// shopID and owner subjectID exists. It must run before any write to the
// shop's items or invoices.
func VerifyOwnership(ctx context.Context, shops ports.ShopRepository, shopID, subjectID string) error {
	if shopID == "" || subjectID == "" {
		return domain.ErrShopNotOwned
	}

	if _, err := shops.FindOwned(ctx, shopID, subjectID); err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			return domain.ErrShopNotOwned
		}
		return fmt.Errorf("verify ownership: %w", err)
	}
	return nil
}
