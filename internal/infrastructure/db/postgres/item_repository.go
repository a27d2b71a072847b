package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/shopgrid/commerce-api/internal/core/domain"
)

var itemColumns = []string{"id", "name", "price", "shop_id", "created_at"}

// ItemRepository implements ports.ItemRepository on the items table.
type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	query, args, err := psql.Insert("items").
		Columns(itemColumns...).
		Values(item.ID, item.Name, item.Price, item.ShopID, item.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert item: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	created := *item
	return &created, nil
}

func (r *ItemRepository) ListByShop(ctx context.Context, shopID string) ([]*domain.Item, error) {
	query, args, err := psql.Select(itemColumns...).
		From("items").
		Where(sq.Eq{"shop_id": shopID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.Item, 0)
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.ShopID, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.CreatedAt = it.CreatedAt.UTC()
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}
