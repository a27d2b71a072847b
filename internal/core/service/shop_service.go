package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shopgrid/commerce-api/internal/core/domain"
	"github.com/shopgrid/commerce-api/internal/core/ports"
)

type ShopService struct {
	repo   ports.ShopRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewShopService(repo ports.ShopRepository, logger zerolog.Logger) *ShopService {
	return &ShopService{repo: repo, logger: logger, now: time.Now}
}

func (s *ShopService) Create(ctx context.Context, input ports.CreateShopInput) (*domain.Shop, error) {
	shop := &domain.Shop{
		ID:        uuid.NewString(),
		Name:      input.Name,
		OwnerID:   input.OwnerID,
		CreatedAt: s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, shop)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create shop")
		return nil, err
	}

	s.logger.Info().Str("shop_id", created.ID).Str("owner_id", created.OwnerID).Msg("shop created")
	return created, nil
}

func (s *ShopService) List(ctx context.Context) ([]*domain.Shop, error) {
	return s.repo.List(ctx)
}
