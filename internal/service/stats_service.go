package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type StatsService struct {
	accountStore AccountStore
	txStore      TransactionStore
	logger       *zap.Logger
}

func NewStatsService(accountStore AccountStore, txStore TransactionStore, logger *zap.Logger) *StatsService {
	return &StatsService{
		accountStore: accountStore,
		txStore:      txStore,
		logger:       logger,
	}
}

// SpendingByCategory replays the owner's transactions over [from, to] and
// sums NEGATIVE amounts per category label. Transfer legs move money between
// the user's own accounts and are excluded. Read-side only; nothing is
// persisted.
func (s *StatsService) SpendingByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time) (*dto.SpendingResponse, error) {
	accounts, err := s.accountStore.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, account := range accounts {
		account := account
		g.Go(func() error {
			txs, err := s.txStore.ListByAccount(gctx, account.ID, &from, &to)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, tx := range txs {
				if tx.Type != models.TransactionNegative || tx.IsTransferLeg() {
					continue
				}
				totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	categories := make([]dto.CategorySpending, 0, len(totals))
	for category, total := range totals {
		categories = append(categories, dto.CategorySpending{Category: category, Total: total})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Total.Equal(categories[j].Total) {
			return categories[i].Category < categories[j].Category
		}
		return categories[i].Total.GreaterThan(categories[j].Total)
	})

	return &dto.SpendingResponse{
		From:       from.Format("2006-01-02"),
		To:         to.Format("2006-01-02"),
		Categories: categories,
	}, nil
}
