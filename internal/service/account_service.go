package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AccountService struct {
	accountStore AccountStore
	txStore      TransactionStore
	logger       *zap.Logger
}

func NewAccountService(accountStore AccountStore, txStore TransactionStore, logger *zap.Logger) *AccountService {
	return &AccountService{
		accountStore: accountStore,
		txStore:      txStore,
		logger:       logger,
	}
}

// Create inserts a new active account. The duplicate-name check is
// case-sensitive and only counts non-archived accounts, so a name freed by
// archiving can be reused.
func (s *AccountService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: account name is required", ErrInvalidInput)
	}

	exists, err := s.accountStore.NameExists(ctx, userID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAccountExists
	}

	now := time.Now()
	account := &models.Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.accountStore.Create(ctx, account); err != nil {
		return nil, err
	}

	return toAccountResponse(account, decimal.Zero), nil
}

// ListByOwner returns the owner's active accounts with derived balances. The
// balance of an account is the signed sum over every transaction it ever
// recorded, transfer legs included; the per-account fetches fan out
// concurrently since the sum does not care about arrival order.
func (s *AccountService) ListByOwner(ctx context.Context, userID uuid.UUID) ([]dto.AccountResponse, error) {
	accounts, err := s.accountStore.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	balances := make([]decimal.Decimal, len(accounts))
	g, gctx := errgroup.WithContext(ctx)
	for i, account := range accounts {
		i, account := i, account
		g.Go(func() error {
			txs, err := s.txStore.ListByAccount(gctx, account.ID, nil, nil)
			if err != nil {
				return err
			}
			balances[i] = balanceOf(txs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	responses := make([]dto.AccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = *toAccountResponse(account, balances[i])
	}
	return responses, nil
}

func (s *AccountService) GetByID(ctx context.Context, id, userID uuid.UUID) (*dto.AccountResponse, error) {
	account, err := s.ownedAccount(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	txs, err := s.txStore.ListByAccount(ctx, account.ID, nil, nil)
	if err != nil {
		return nil, err
	}

	return toAccountResponse(account, balanceOf(txs)), nil
}

func (s *AccountService) Update(ctx context.Context, id, userID uuid.UUID, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	account, err := s.ownedAccount(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != account.Name {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: account name is required", ErrInvalidInput)
		}
		exists, err := s.accountStore.NameExists(ctx, userID, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrAccountExists
		}
		account.Name = *req.Name
	}
	if req.Color != nil {
		account.Color = *req.Color
	}

	account.UpdatedAt = time.Now()
	if err := s.accountStore.Update(ctx, account); err != nil {
		return nil, err
	}

	txs, err := s.txStore.ListByAccount(ctx, account.ID, nil, nil)
	if err != nil {
		return nil, err
	}

	return toAccountResponse(account, balanceOf(txs)), nil
}

// Archive soft-deletes the account. Its transactions stay put, so historical
// balances remain intact and the name becomes reusable.
func (s *AccountService) Archive(ctx context.Context, id, userID uuid.UUID) error {
	account, err := s.ownedAccount(ctx, id, userID)
	if err != nil {
		return err
	}

	s.logger.Info("Archiving account",
		zap.String("account_id", account.ID.String()),
		zap.String("name", account.Name),
	)
	return s.accountStore.Archive(ctx, account.ID)
}

func (s *AccountService) ownedAccount(ctx context.Context, id, userID uuid.UUID) (*models.Account, error) {
	account, err := s.accountStore.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if account.UserID != userID {
		return nil, ErrUnauthorized
	}
	return account, nil
}

func balanceOf(txs []*models.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range txs {
		balance = balance.Add(tx.SignedAmount())
	}
	return balance
}

func toAccountResponse(account *models.Account, balance decimal.Decimal) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:        account.ID.String(),
		Name:      account.Name,
		Color:     account.Color,
		Balance:   balance,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
		UpdatedAt: account.UpdatedAt.Format(time.RFC3339),
	}
}
