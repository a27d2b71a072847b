package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shopgrid/commerce-api/internal/core/domain"
	"github.com/shopgrid/commerce-api/internal/core/ports"
)

type ItemService struct {
	items  ports.ItemRepository
	shops  ports.ShopRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewItemService(items ports.ItemRepository, shops ports.ShopRepository, logger zerolog.Logger) *ItemService {
	return &ItemService{items: items, shops: shops, logger: logger, now: time.Now}
}

// Create adds an item to a shop owned by the requester.
func (s *ItemService) Create(ctx context.Context, input ports.CreateItemInput) (*domain.Item, error) {
	if input.Price.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}
	if err := VerifyOwnership(ctx, s.shops, input.ShopID, input.RequesterID); err != nil {
		return nil, err
	}

	item := &domain.Item{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Price:     input.Price,
		ShopID:    input.ShopID,
		CreatedAt: s.now().UTC(),
	}

	created, err := s.items.Create(ctx, item)
	if err != nil {
		s.logger.Error().Err(err).Str("shop_id", input.ShopID).Msg("failed to create item")
		return nil, err
	}

	s.logger.Info().Str("item_id", created.ID).Str("shop_id", created.ShopID).Msg("item created")
	return created, nil
}

func (s *ItemService) ListByShop(ctx context.Context, shopID string) ([]*domain.Item, error) {
	return s.items.ListByShop(ctx, shopID)
}
