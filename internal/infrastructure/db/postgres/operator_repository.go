package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/shopgrid/commerce-api/internal/core/domain"
)

var operatorColumns = []string{"id", "operator_name", "username", "password_hash", "role", "join_date"}

// OperatorRepository implements ports.OperatorRepository on the operators table.
type OperatorRepository struct {
	db *sql.DB
}

func NewOperatorRepository(db *sql.DB) *OperatorRepository {
	return &OperatorRepository{db: db}
}

// Create inserts op. The unique index on username decides duplicates.
func (r *OperatorRepository) Create(ctx context.Context, op *domain.Operator) (*domain.Operator, error) {
	query, args, err := psql.Insert("operators").
		Columns(operatorColumns...).
		Values(op.ID, op.OperatorName, op.Username, op.PasswordHash, string(op.Role), op.JoinDate).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert operator: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pgCode(err) == pgerrcode.UniqueViolation {
			return nil, domain.ErrOperatorExists
		}
		return nil, fmt.Errorf("insert operator: %w", err)
	}

	created := *op
	return &created, nil
}

func (r *OperatorRepository) FindByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	return r.findOne(ctx, sq.Eq{"username": username})
}

func (r *OperatorRepository) FindByID(ctx context.Context, id string) (*domain.Operator, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *OperatorRepository) findOne(ctx context.Context, where sq.Eq) (*domain.Operator, error) {
	query, args, err := psql.Select(operatorColumns...).From("operators").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select operator: %w", err)
	}

	var (
		op   domain.Operator
		role string
	)
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&op.ID, &op.OperatorName, &op.Username, &op.PasswordHash, &role, &op.JoinDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOperatorNotFound
		}
		return nil, fmt.Errorf("find operator: %w", err)
	}
	op.Role = domain.Role(role)
	op.JoinDate = op.JoinDate.UTC()
	return &op, nil
}
