package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/shopgrid/commerce-api/internal/core/domain"
	"github.com/shopgrid/commerce-api/internal/core/ports"
)

var invoiceColumns = []string{"id", "shop_id", "customer_id", "total_amount", "created_at"}

// InvoiceRepository implements ports.InvoiceRepository on the invoices table.
type InvoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	query, args, err := psql.Insert("invoices").
		Columns(invoiceColumns...).
		Values(inv.ID, inv.ShopID, inv.CustomerID, inv.TotalAmount, inv.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert invoice: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}

	created := *inv
	return &created, nil
}

func (r *InvoiceRepository) List(ctx context.Context, filter ports.InvoiceFilter) ([]*domain.Invoice, error) {
	if filter.ScopeToShops && len(filter.ShopIDs) == 0 {
		return []*domain.Invoice{}, nil
	}

	query, args, err := invoiceListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list invoices: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]*domain.Invoice, 0)
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(&inv.ID, &inv.ShopID, &inv.CustomerID, &inv.TotalAmount, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		inv.CreatedAt = inv.CreatedAt.UTC()
		invoices = append(invoices, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return invoices, nil
}

func invoiceListQuery(filter ports.InvoiceFilter) sq.SelectBuilder {
	q := psql.Select(invoiceColumns...).From("invoices").OrderBy("created_at")
	if filter.CustomerID != "" {
		q = q.Where(sq.Eq{"customer_id": filter.CustomerID})
	}
	if filter.ScopeToShops {
		q = q.Where(sq.Eq{"shop_id": filter.ShopIDs})
	}
	return q
}
