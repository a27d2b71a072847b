package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopgrid/commerce-api/internal/core/domain"
)

// OperatorRepository implements ports.OperatorRepository using MongoDB.
type OperatorRepository struct {
	coll *mongo.Collection
}

func NewOperatorRepository(db *mongo.Database) *OperatorRepository {
	return &OperatorRepository{coll: db.Collection(collectionOperators)}
}

type operatorDoc struct {
	ID           string    `bson:"_id"`
	OperatorName string    `bson:"operator_name"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	JoinDate     time.Time `bson:"join_date"`
}

func (d operatorDoc) toDomain() *domain.Operator {
	return &domain.Operator{
		ID:           d.ID,
		OperatorName: d.OperatorName,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		JoinDate:     d.JoinDate.UTC(),
	}
}

func (r *OperatorRepository) Create(ctx context.Context, op *domain.Operator) (*domain.Operator, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := operatorDoc{
		ID:           op.ID,
		OperatorName: op.OperatorName,
		Username:     op.Username,
		PasswordHash: op.PasswordHash,
		Role:         string(op.Role),
		JoinDate:     op.JoinDate,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrOperatorExists
		}
		return nil, fmt.Errorf("insert operator: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OperatorRepository) FindByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *OperatorRepository) FindByID(ctx context.Context, id string) (*domain.Operator, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *OperatorRepository) findOne(ctx context.Context, filter bson.M) (*domain.Operator, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc operatorDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOperatorNotFound
		}
		return nil, fmt.Errorf("find operator: %w", err)
	}
	return doc.toDomain(), nil
}
