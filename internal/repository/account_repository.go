package repository

import (
	"context"

	"fintrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type AccountRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAccountRepository(db *pgxpool.Pool, logger *zap.Logger) *AccountRepository {
	return &AccountRepository{
		db:     db,
		logger: logger,
	}
}

var accountColumns = []string{"id", "user_id", "name", "color", "is_archived", "created_at", "updated_at"}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := squirrel.Insert("accounts").
		Columns(accountColumns...).
		Values(account.ID, account.UserID, account.Name, account.Color, account.IsArchived, account.CreatedAt, account.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := squirrel.Select(accountColumns...).
		From("accounts").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var account models.Account
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&account.ID, &account.UserID, &account.Name, &account.Color, &account.IsArchived, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// ListByOwner returns the owner's active accounts; archived ones stay out of
// listings but keep their rows for balance history.
func (r *AccountRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*models.Account, error) {
	query := squirrel.Select(accountColumns...).
		From("accounts").
		Where(squirrel.Eq{"user_id": userID, "is_archived": false}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(
			&account.ID, &account.UserID, &account.Name, &account.Color, &account.IsArchived, &account.CreatedAt, &account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, &account)
	}

	return accounts, rows.Err()
}

// NameExists reports whether an active account of the owner already carries
// the exact name. The comparison is case-sensitive.
func (r *AccountRepository) NameExists(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	query := squirrel.Select("COUNT(*)").
		From("accounts").
		Where(squirrel.Eq{"user_id": userID, "name": name, "is_archived": false}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	query := squirrel.Update("accounts").
		Set("name", account.Name).
		Set("color", account.Color).
		Set("updated_at", account.UpdatedAt).
		Where(squirrel.Eq{"id": account.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Archive soft-deletes the account. Rows are never removed.
func (r *AccountRepository) Archive(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Update("accounts").
		Set("is_archived", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
