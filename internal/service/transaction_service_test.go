package service

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTxTestEnv(t *testing.T) (*TransactionService, *memStore, uuid.UUID, *models.Account) {
	t.Helper()
	store := newMemStore()
	userID := uuid.New()
	account := &models.Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "Checking",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, store.Create(context.Background(), account))

	svc := NewTransactionService(store.TxStore(), store.ChainStore(), store, zap.NewNop())
	return svc, store, userID, account
}

func TestCreateTransactionValidation(t *testing.T) {
	svc, _, userID, account := newTxTestEnv(t)

	valid := dto.CreateTransactionRequest{
		AccountID:   account.ID.String(),
		Amount:      decimal.NewFromInt(10),
		Type:        "NEGATIVE",
		Category:    "Groceries",
		Description: "weekly shop",
	}

	tests := []struct {
		name    string
		mutate  func(r *dto.CreateTransactionRequest)
		wantErr error
	}{
		{
			name:    "missing account id",
			mutate:  func(r *dto.CreateTransactionRequest) { r.AccountID = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty description",
			mutate:  func(r *dto.CreateTransactionRequest) { r.Description = "  " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty category",
			mutate:  func(r *dto.CreateTransactionRequest) { r.Category = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero amount",
			mutate:  func(r *dto.CreateTransactionRequest) { r.Amount = decimal.Zero },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(r *dto.CreateTransactionRequest) { r.Amount = decimal.NewFromInt(-5) },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unknown type",
			mutate:  func(r *dto.CreateTransactionRequest) { r.Type = "DEBIT" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "payback without due date",
			mutate:  func(r *dto.CreateTransactionRequest) { r.RequiresPayback = true },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "transfer category outside a transfer",
			mutate:  func(r *dto.CreateTransactionRequest) { r.Category = models.CategoryTransfer },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), userID, &req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	resp, err := svc.Create(context.Background(), userID, &valid)
	require.NoError(t, err)
	assert.Equal(t, "NEGATIVE", resp.Type)
	assert.Empty(t, resp.ChainID)
}

func TestCreateTransactionWithPayback(t *testing.T) {
	svc, _, userID, account := newTxTestEnv(t)

	resp, err := svc.Create(context.Background(), userID, &dto.CreateTransactionRequest{
		AccountID:       account.ID.String(),
		Amount:          decimal.NewFromFloat(25.50),
		Type:            "NEGATIVE",
		Category:        "Dining",
		Description:     "lunch for two",
		RequiresPayback: true,
		Payback:         &dto.PaybackRequest{DueDate: "2026-09-15"},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Payback)
	assert.Equal(t, string(models.PaybackPending), resp.Payback.Status)
	assert.Empty(t, resp.Payback.CompletedAt)
}

func TestCreateTransfer(t *testing.T) {
	svc, store, userID, src := newTxTestEnv(t)

	dst := &models.Account{ID: uuid.New(), UserID: userID, Name: "Savings", CreatedAt: time.Now()}
	require.NoError(t, store.Create(context.Background(), dst))

	amount := decimal.NewFromFloat(50.00)
	resp, err := svc.CreateTransfer(context.Background(), userID, &dto.CreateTransferRequest{
		SourceAccountID:      src.ID.String(),
		DestinationAccountID: dst.ID.String(),
		Amount:               amount,
		Description:          "move",
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.ChainCompleted), resp.Status)
	require.Len(t, resp.TransactionIDs, 2)
	require.Len(t, resp.Transactions, 2)

	debit, credit := resp.Transactions[0], resp.Transactions[1]
	assert.Equal(t, src.ID.String(), debit.AccountID)
	assert.Equal(t, "NEGATIVE", debit.Type)
	assert.Equal(t, dst.ID.String(), credit.AccountID)
	assert.Equal(t, "POSITIVE", credit.Type)
	for _, leg := range resp.Transactions {
		assert.True(t, amount.Equal(leg.Amount))
		assert.Equal(t, models.CategoryTransfer, leg.Category)
		assert.Equal(t, resp.ID, leg.ChainID)
	}

	chainID := uuid.MustParse(resp.ID)
	chain, err := svc.ListByChain(context.Background(), chainID, userID)
	require.NoError(t, err)
	assert.Len(t, chain.Transactions, 2)
}

func TestCreateTransferRejectsSameAccount(t *testing.T) {
	svc, _, userID, src := newTxTestEnv(t)

	_, err := svc.CreateTransfer(context.Background(), userID, &dto.CreateTransferRequest{
		SourceAccountID:      src.ID.String(),
		DestinationAccountID: src.ID.String(),
		Amount:               decimal.NewFromInt(10),
		Description:          "noop",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateTransferRejectsNonPositiveAmount(t *testing.T) {
	svc, store, userID, src := newTxTestEnv(t)

	dst := &models.Account{ID: uuid.New(), UserID: userID, Name: "Savings"}
	require.NoError(t, store.Create(context.Background(), dst))

	_, err := svc.CreateTransfer(context.Background(), userID, &dto.CreateTransferRequest{
		SourceAccountID:      src.ID.String(),
		DestinationAccountID: dst.ID.String(),
		Amount:               decimal.Zero,
		Description:          "nothing",
	})
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDeleteChainMemberCascades(t *testing.T) {
	svc, store, userID, src := newTxTestEnv(t)

	dst := &models.Account{ID: uuid.New(), UserID: userID, Name: "Savings"}
	require.NoError(t, store.Create(context.Background(), dst))

	resp, err := svc.CreateTransfer(context.Background(), userID, &dto.CreateTransferRequest{
		SourceAccountID:      src.ID.String(),
		DestinationAccountID: dst.ID.String(),
		Amount:               decimal.NewFromInt(30),
		Description:          "move",
	})
	require.NoError(t, err)

	// Deleting one leg removes both legs and the chain record.
	legID := uuid.MustParse(resp.TransactionIDs[0])
	require.NoError(t, svc.Delete(context.Background(), legID, userID))

	for _, raw := range resp.TransactionIDs {
		_, err := svc.GetByID(context.Background(), uuid.MustParse(raw), userID)
		assert.ErrorIs(t, err, ErrNotFound)
	}
	_, err = svc.ListByChain(context.Background(), uuid.MustParse(resp.ID), userID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteStandaloneRemovesOnlyItself(t *testing.T) {
	svc, _, userID, account := newTxTestEnv(t)

	first, err := svc.Create(context.Background(), userID, &dto.CreateTransactionRequest{
		AccountID:   account.ID.String(),
		Amount:      decimal.NewFromInt(10),
		Type:        "NEGATIVE",
		Category:    "Groceries",
		Description: "shop",
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), userID, &dto.CreateTransactionRequest{
		AccountID:   account.ID.String(),
		Amount:      decimal.NewFromInt(20),
		Type:        "POSITIVE",
		Category:    "Salary",
		Description: "pay",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), uuid.MustParse(first.ID), userID))

	_, err = svc.GetByID(context.Background(), uuid.MustParse(first.ID), userID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetByID(context.Background(), uuid.MustParse(second.ID), userID)
	assert.NoError(t, err)
}

func TestUpdateTransferLegDropsLockedFields(t *testing.T) {
	svc, store, userID, src := newTxTestEnv(t)

	dst := &models.Account{ID: uuid.New(), UserID: userID, Name: "Savings"}
	require.NoError(t, store.Create(context.Background(), dst))

	resp, err := svc.CreateTransfer(context.Background(), userID, &dto.CreateTransferRequest{
		SourceAccountID:      src.ID.String(),
		DestinationAccountID: dst.ID.String(),
		Amount:               decimal.NewFromInt(40),
		Description:          "move",
	})
	require.NoError(t, err)

	legID := uuid.MustParse(resp.TransactionIDs[0])
	newAmount := decimal.NewFromInt(999)
	newType := "POSITIVE"
	newCategory := "Groceries"
	newDescription := "relabeled"

	updated, err := svc.Update(context.Background(), legID, userID, &dto.UpdateTransactionRequest{
		Amount:      &newAmount,
		Type:        &newType,
		Category:    &newCategory,
		Description: &newDescription,
	})
	require.NoError(t, err)

	// The locked fields are silently dropped, the rest of the patch applies.
	assert.True(t, decimal.NewFromInt(40).Equal(updated.Amount))
	assert.Equal(t, "NEGATIVE", updated.Type)
	assert.Equal(t, models.CategoryTransfer, updated.Category)
	assert.Equal(t, "relabeled", updated.Description)
}

func TestUpdateRegularTransactionAppliesFullPatch(t *testing.T) {
	svc, _, userID, account := newTxTestEnv(t)

	created, err := svc.Create(context.Background(), userID, &dto.CreateTransactionRequest{
		AccountID:   account.ID.String(),
		Amount:      decimal.NewFromInt(10),
		Type:        "NEGATIVE",
		Category:    "Groceries",
		Description: "shop",
	})
	require.NoError(t, err)

	newAmount := decimal.NewFromInt(15)
	newType := "POSITIVE"
	newCategory := "Salary"

	updated, err := svc.Update(context.Background(), uuid.MustParse(created.ID), userID, &dto.UpdateTransactionRequest{
		Amount:   &newAmount,
		Type:     &newType,
		Category: &newCategory,
	})
	require.NoError(t, err)
	assert.True(t, newAmount.Equal(updated.Amount))
	assert.Equal(t, "POSITIVE", updated.Type)
	assert.Equal(t, "Salary", updated.Category)
}

func TestUpdateCannotRecategorizeAsTransfer(t *testing.T) {
	svc, _, userID, account := newTxTestEnv(t)

	created, err := svc.Create(context.Background(), userID, &dto.CreateTransactionRequest{
		AccountID:   account.ID.String(),
		Amount:      decimal.NewFromInt(10),
		Type:        "NEGATIVE",
		Category:    "Groceries",
		Description: "shop",
	})
	require.NoError(t, err)

	transfer := models.CategoryTransfer
	id := uuid.MustParse(created.ID)

	_, err = svc.Update(context.Background(), id, userID, &dto.UpdateTransactionRequest{
		Category: &transfer,
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	kept, err := svc.GetByID(context.Background(), id, userID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", kept.Category)
}

func TestTransactionOwnership(t *testing.T) {
	svc, _, userID, account := newTxTestEnv(t)

	created, err := svc.Create(context.Background(), userID, &dto.CreateTransactionRequest{
		AccountID:   account.ID.String(),
		Amount:      decimal.NewFromInt(10),
		Type:        "NEGATIVE",
		Category:    "Groceries",
		Description: "shop",
	})
	require.NoError(t, err)

	stranger := uuid.New()
	id := uuid.MustParse(created.ID)

	_, err = svc.GetByID(context.Background(), id, stranger)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Update(context.Background(), id, stranger, &dto.UpdateTransactionRequest{})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, svc.Delete(context.Background(), id, stranger), ErrUnauthorized)

	_, err = svc.GetByID(context.Background(), uuid.New(), userID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByAccountRequiresAccountID(t *testing.T) {
	svc, _, userID, _ := newTxTestEnv(t)

	_, err := svc.ListByAccount(context.Background(), userID, "", nil, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByAccountDateRangeInclusive(t *testing.T) {
	svc, _, userID, account := newTxTestEnv(t)

	for _, date := range []string{"2026-03-01", "2026-03-15", "2026-03-31", "2026-04-01"} {
		_, err := svc.Create(context.Background(), userID, &dto.CreateTransactionRequest{
			AccountID:   account.ID.String(),
			Amount:      decimal.NewFromInt(5),
			Type:        "NEGATIVE",
			Category:    "Groceries",
			Description: "shop " + date,
			Date:        date,
		})
		require.NoError(t, err)
	}

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	txs, err := svc.ListByAccount(context.Background(), userID, account.ID.String(), &from, &to)
	require.NoError(t, err)
	assert.Len(t, txs, 3)
}
