package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopgrid/commerce-api/internal/core/domain"
)

// ShopRepository implements ports.ShopRepository using MongoDB.
type ShopRepository struct {
	col *mongo.Collection
}

func NewShopRepository(db *mongo.Database) *ShopRepository {
	return &ShopRepository{col: db.Collection(collectionShops)}
}

type shopDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	OwnerID   string    `bson:"owner_id,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d shopDoc) toDomain() *domain.Shop {
	return &domain.Shop{ID: d.ID, Name: d.Name, OwnerID: d.OwnerID, CreatedAt: d.CreatedAt.UTC()}
}

// Create inserts a new shop document.
func (r *ShopRepository) Create(ctx context.Context, s *domain.Shop) (*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := shopDoc{ID: s.ID, Name: s.Name, OwnerID: s.OwnerID, CreatedAt: s.CreatedAt}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert shop: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns every shop, oldest first.
func (r *ShopRepository) List(ctx context.Context) ([]*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	var docs []shopDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode shops: %w", err)
	}

	shops := make([]*domain.Shop, 0, len(docs))
	for _, d := range docs {
		shops = append(shops, d.toDomain())
	}
	return shops, nil
}

// FindOwned retrieves the shop only when ownerID owns it.
func (r *ShopRepository) FindOwned(ctx context.Context, shopID, ownerID string) (*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc shopDoc
	err := r.col.FindOne(ctx, bson.M{"_id": shopID, "owner_id": ownerID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShopNotFound
		}
		return nil, fmt.Errorf("find shop: %w", err)
	}
	return doc.toDomain(), nil
}

// IDsByOwner lists the ids of the shops ownerID owns.
func (r *ShopRepository) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list owned shops: %w", err)
	}
	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode owned shops: %w", err)
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}
