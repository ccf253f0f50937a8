package repository

import (
	"context"
	"time"

	"fintrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// execer is satisfied by both pgxpool.Pool and pgx.Tx, so the transfer path
// can reuse the single-transaction insert inside a database transaction.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

var transactionColumns = []string{
	"id", "account_id", "user_id", "amount", "type", "category", "description",
	"counterparty", "chain_id", "requires_payback", "payback_due_date",
	"payback_status", "payback_completed_at", "date", "created_at", "updated_at",
}

func insertTransaction(ctx context.Context, db execer, tx *models.Transaction) error {
	var dueDate, completedAt *time.Time
	var status *models.PaybackStatus
	if tx.Payback != nil {
		dueDate = &tx.Payback.DueDate
		status = &tx.Payback.Status
		completedAt = tx.Payback.CompletedAt
	}

	query := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		Values(
			tx.ID, tx.AccountID, tx.UserID, tx.Amount, tx.Type, tx.Category, tx.Description,
			tx.Counterparty, tx.ChainID, tx.RequiresPayback, dueDate, status, completedAt,
			tx.Date, tx.CreatedAt, tx.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return insertTransaction(ctx, r.db, tx)
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var tx models.Transaction
	var dueDate, completedAt *time.Time
	var status *string
	err := row.Scan(
		&tx.ID, &tx.AccountID, &tx.UserID, &tx.Amount, &tx.Type, &tx.Category, &tx.Description,
		&tx.Counterparty, &tx.ChainID, &tx.RequiresPayback, &dueDate, &status, &completedAt,
		&tx.Date, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate != nil {
		tx.Payback = &models.PaybackDetails{
			DueDate:     *dueDate,
			CompletedAt: completedAt,
		}
		if status != nil {
			tx.Payback.Status = models.PaybackStatus(*status)
		}
	}

	return &tx, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanTransaction(r.db.QueryRow(ctx, sql, args...))
}

// ListByAccount returns the account's transactions newest first, optionally
// bounded by an inclusive date range on the transaction date.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, from, to *time.Time) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if from != nil {
		query = query.Where(squirrel.GtOrEq{"date": *from})
	}
	if to != nil {
		query = query.Where(squirrel.LtOrEq{"date": *to})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryTransactions(ctx, sql, args)
}

func (r *TransactionRepository) ListByChain(ctx context.Context, chainID uuid.UUID) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"chain_id": chainID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryTransactions(ctx, sql, args)
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, sql string, args []any) ([]*models.Transaction, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func (r *TransactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	var dueDate, completedAt *time.Time
	var status *models.PaybackStatus
	if tx.Payback != nil {
		dueDate = &tx.Payback.DueDate
		status = &tx.Payback.Status
		completedAt = tx.Payback.CompletedAt
	}

	query := squirrel.Update("transactions").
		Set("amount", tx.Amount).
		Set("type", tx.Type).
		Set("category", tx.Category).
		Set("description", tx.Description).
		Set("counterparty", tx.Counterparty).
		Set("requires_payback", tx.RequiresPayback).
		Set("payback_due_date", dueDate).
		Set("payback_status", status).
		Set("payback_completed_at", completedAt).
		Set("date", tx.Date).
		Set("updated_at", tx.UpdatedAt).
		Where(squirrel.Eq{"id": tx.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("transactions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
