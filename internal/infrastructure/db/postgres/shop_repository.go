package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/shopgrid/commerce-api/internal/core/domain"
)

var shopColumns = []string{"id", "name", "owner_id", "created_at"}

// ShopRepository implements ports.ShopRepository on the shops table.
type ShopRepository struct {
	db *sql.DB
}

func NewShopRepository(db *sql.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

func (r *ShopRepository) Create(ctx context.Context, s *domain.Shop) (*domain.Shop, error) {
	query, args, err := psql.Insert("shops").
		Columns(shopColumns...).
		Values(s.ID, s.Name, nullString(s.OwnerID), s.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert shop: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert shop: %w", err)
	}

	created := *s
	return &created, nil
}

func (r *ShopRepository) List(ctx context.Context) ([]*domain.Shop, error) {
	query, args, err := psql.Select(shopColumns...).From("shops").OrderBy("created_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list shops: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()

	shops := make([]*domain.Shop, 0)
	for rows.Next() {
		s, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shops: %w", err)
	}
	return shops, nil
}

// FindOwned returns domain.ErrShopNotFound when shopID does not exist or is
// owned by someone else.
func (r *ShopRepository) FindOwned(ctx context.Context, shopID, ownerID string) (*domain.Shop, error) {
	query, args, err := psql.Select(shopColumns...).
		From("shops").
		Where(sq.Eq{"id": shopID, "owner_id": ownerID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find shop: %w", err)
	}

	s, err := scanShop(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrShopNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *ShopRepository) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	query, args, err := psql.Select("id").From("shops").Where(sq.Eq{"owner_id": ownerID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build owned shops: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list owned shops: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan shop id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owned shops: %w", err)
	}
	return ids, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanShop(row scanner) (*domain.Shop, error) {
	var (
		s     domain.Shop
		owner sql.NullString
	)
	if err := row.Scan(&s.ID, &s.Name, &owner, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan shop: %w", err)
	}
	s.OwnerID = owner.String
	s.CreatedAt = s.CreatedAt.UTC()
	return &s, nil
}
