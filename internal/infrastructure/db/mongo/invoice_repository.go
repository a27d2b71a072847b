package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopgrid/commerce-api/internal/core/domain"
	"github.com/shopgrid/commerce-api/internal/core/ports"
)

// InvoiceRepository implements ports.InvoiceRepository using MongoDB.
type InvoiceRepository struct {
	col *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) *InvoiceRepository {
	return &InvoiceRepository{col: db.Collection(collectionInvoices)}
}

type invoiceDoc struct {
	ID          string               `bson:"_id"`
	ShopID      string               `bson:"shop_id"`
	CustomerID  string               `bson:"customer_id"`
	TotalAmount primitive.Decimal128 `bson:"total_amount"`
	CreatedAt   time.Time            `bson:"created_at"`
}

func (d invoiceDoc) toDomain() (*domain.Invoice, error) {
	total, err := fromDecimal128(d.TotalAmount)
	if err != nil {
		return nil, err
	}
	return &domain.Invoice{
		ID:          d.ID,
		ShopID:      d.ShopID,
		CustomerID:  d.CustomerID,
		TotalAmount: total,
		CreatedAt:   d.CreatedAt.UTC(),
	}, nil
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := toDecimal128(inv.TotalAmount)
	if err != nil {
		return nil, err
	}
	doc := invoiceDoc{
		ID:          inv.ID,
		ShopID:      inv.ShopID,
		CustomerID:  inv.CustomerID,
		TotalAmount: total,
		CreatedAt:   inv.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}
	return doc.toDomain()
}

func (r *InvoiceRepository) List(ctx context.Context, filter ports.InvoiceFilter) ([]*domain.Invoice, error) {
	if filter.ScopeToShops && len(filter.ShopIDs) == 0 {
		return []*domain.Invoice{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, invoiceQuery(filter), options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	var docs []invoiceDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode invoices: %w", err)
	}

	invoices := make([]*domain.Invoice, 0, len(docs))
	for _, d := range docs {
		inv, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func invoiceQuery(filter ports.InvoiceFilter) bson.M {
	q := bson.M{}
	if filter.CustomerID != "" {
		q["customer_id"] = filter.CustomerID
	}
	if filter.ScopeToShops {
		q["shop_id"] = bson.M{"$in": filter.ShopIDs}
	}
	return q
}
