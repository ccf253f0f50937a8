package repository

import (
	"context"

	"fintrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CategoryRepository stores custom categories only. Built-ins never touch
// the database; the service merges them in at read time.
type CategoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCategoryRepository(db *pgxpool.Pool, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

var categoryColumns = []string{"id", "user_id", "name", "type", "icon", "color", "created_at", "updated_at"}

func (r *CategoryRepository) Create(ctx context.Context, cat *models.Category) error {
	query := squirrel.Insert("categories").
		Columns(categoryColumns...).
		Values(cat.ID, cat.UserID, cat.Name, cat.Type, cat.Icon, cat.Color, cat.CreatedAt, cat.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query := squirrel.Select(categoryColumns...).
		From("categories").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var cat models.Category
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&cat.ID, &cat.UserID, &cat.Name, &cat.Type, &cat.Icon, &cat.Color, &cat.CreatedAt, &cat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	cat.IsCustom = true

	return &cat, nil
}

func (r *CategoryRepository) ListByOwnerAndType(ctx context.Context, userID string, catType models.CategoryType) ([]*models.Category, error) {
	query := squirrel.Select(categoryColumns...).
		From("categories").
		Where(squirrel.Eq{"user_id": userID, "type": catType}).
		OrderBy("name ASC").
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

	var categories []*models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(
			&cat.ID, &cat.UserID, &cat.Name, &cat.Type, &cat.Icon, &cat.Color, &cat.CreatedAt, &cat.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cat.IsCustom = true
		categories = append(categories, &cat)
	}

	return categories, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, cat *models.Category) error {
	query := squirrel.Update("categories").
		Set("name", cat.Name).
		Set("icon", cat.Icon).
		Set("color", cat.Color).
		Set("updated_at", cat.UpdatedAt).
		Where(squirrel.Eq{"id": cat.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	query := squirrel.Delete("categories").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
