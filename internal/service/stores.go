package service

import (
	"context"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

// Store interfaces consumed by the services. The repository package provides
// the Postgres implementations; tests run against in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*models.Account, error)
	NameExists(ctx context.Context, userID uuid.UUID, name string) (bool, error)
	Update(ctx context.Context, account *models.Account) error
	Archive(ctx context.Context, id uuid.UUID) error
}

type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, from, to *time.Time) ([]*models.Transaction, error)
	ListByChain(ctx context.Context, chainID uuid.UUID) ([]*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ChainStore interface {
	CreateTransfer(ctx context.Context, legs []*models.Transaction, record *models.ChainRecord) error
	GetByID(ctx context.Context, chainID uuid.UUID) (*models.ChainRecord, error)
	DeleteCascade(ctx context.Context, chainID uuid.UUID) error
}

type CategoryStore interface {
	Create(ctx context.Context, cat *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	ListByOwnerAndType(ctx context.Context, userID string, catType models.CategoryType) ([]*models.Category, error)
	Update(ctx context.Context, cat *models.Category) error
	Delete(ctx context.Context, id string) error
}
