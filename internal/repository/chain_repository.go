package repository

import (
	"context"
	"fmt"

	"fintrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ChainRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewChainRepository(db *pgxpool.Pool, logger *zap.Logger) *ChainRepository {
	return &ChainRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTransfer persists the transfer legs and the chain record in a single
// database transaction: either every leg and the record land, or nothing
// does. No orphaned leg can survive a mid-write failure.
func (r *ChainRepository) CreateTransfer(ctx context.Context, legs []*models.Transaction, record *models.ChainRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transfer: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, leg := range legs {
		if err := insertTransaction(ctx, tx, leg); err != nil {
			return fmt.Errorf("insert transfer leg: %w", err)
		}
	}

	memberIDs := make([]string, len(record.TransactionIDs))
	for i, id := range record.TransactionIDs {
		memberIDs[i] = id.String()
	}

	query := squirrel.Insert("chained_transactions").
		Columns("id", "user_id", "transaction_ids", "status", "created_at").
		Values(record.ID, record.UserID, memberIDs, record.Status, record.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert chain record: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *ChainRepository) GetByID(ctx context.Context, chainID uuid.UUID) (*models.ChainRecord, error) {
	query := squirrel.Select("id", "user_id", "transaction_ids", "status", "created_at").
		From("chained_transactions").
		Where(squirrel.Eq{"id": chainID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var record models.ChainRecord
	var memberIDs []string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&record.ID, &record.UserID, &memberIDs, &record.Status, &record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.TransactionIDs = make([]uuid.UUID, 0, len(memberIDs))
	for _, raw := range memberIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("malformed member id in chain %s: %w", record.ID, err)
		}
		record.TransactionIDs = append(record.TransactionIDs, id)
	}

	return &record, nil
}

// DeleteCascade removes every transaction sharing the chain id and the chain
// record itself, atomically.
func (r *ChainRepository) DeleteCascade(ctx context.Context, chainID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cascade delete: %w", err)
	}
	defer tx.Rollback(ctx)

	delTxs := squirrel.Delete("transactions").
		Where(squirrel.Eq{"chain_id": chainID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := delTxs.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete chain members: %w", err)
	}

	delChain := squirrel.Delete("chained_transactions").
		Where(squirrel.Eq{"id": chainID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = delChain.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete chain record: %w", err)
	}

	return tx.Commit(ctx)
}
