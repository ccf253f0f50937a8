package service

import (
	"context"
	"testing"

	"fintrack/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAccountTestEnv(t *testing.T) (*AccountService, *TransactionService, *memStore, uuid.UUID) {
	t.Helper()
	store := newMemStore()
	userID := uuid.New()
	accountSvc := NewAccountService(store, store.TxStore(), zap.NewNop())
	txSvc := NewTransactionService(store.TxStore(), store.ChainStore(), store, zap.NewNop())
	return accountSvc, txSvc, store, userID
}

func TestCreateAccountRejectsDuplicateName(t *testing.T) {
	accountSvc, _, _, userID := newAccountTestEnv(t)

	_, err := accountSvc.Create(context.Background(), userID, &dto.CreateAccountRequest{Name: "Checking"})
	require.NoError(t, err)

	_, err = accountSvc.Create(context.Background(), userID, &dto.CreateAccountRequest{Name: "Checking"})
	require.ErrorIs(t, err, ErrAccountExists)

	// The check is case-sensitive: a different casing is a different name.
	_, err = accountSvc.Create(context.Background(), userID, &dto.CreateAccountRequest{Name: "checking"})
	require.NoError(t, err)

	// Another user is free to reuse the name.
	_, err = accountSvc.Create(context.Background(), uuid.New(), &dto.CreateAccountRequest{Name: "Checking"})
	require.NoError(t, err)
}

func TestArchiveFreesAccountName(t *testing.T) {
	accountSvc, _, _, userID := newAccountTestEnv(t)

	created, err := accountSvc.Create(context.Background(), userID, &dto.CreateAccountRequest{Name: "Checking"})
	require.NoError(t, err)

	require.NoError(t, accountSvc.Archive(context.Background(), uuid.MustParse(created.ID), userID))

	_, err = accountSvc.Create(context.Background(), userID, &dto.CreateAccountRequest{Name: "Checking"})
	require.NoError(t, err)

	accounts, err := accountSvc.ListByOwner(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.NotEqual(t, created.ID, accounts[0].ID)
}

func TestBalanceIsSignedSumOfAllTransactions(t *testing.T) {
	accountSvc, txSvc, _, userID := newAccountTestEnv(t)

	account, err := accountSvc.Create(context.Background(), userID, &dto.CreateAccountRequest{Name: "Checking"})
	require.NoError(t, err)

	entries := []struct {
		amount float64
		txType string
	}{
		{100.00, "POSITIVE"},
		{33.50, "NEGATIVE"},
		{0.01, "POSITIVE"},
		{12.26, "NEGATIVE"},
	}
	for _, e := range entries {
		_, err := txSvc.Create(context.Background(), userID, &dto.CreateTransactionRequest{
			AccountID:   account.ID,
			Amount:      decimal.NewFromFloat(e.amount),
			Type:        e.txType,
			Category:    "Groceries",
			Description: "entry",
		})
		require.NoError(t, err)
	}

	got, err := accountSvc.GetByID(context.Background(), uuid.MustParse(account.ID), userID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(54.25).Equal(got.Balance), "got %s", got.Balance)
}

func TestTransferMovesBalanceBetweenAccounts(t *testing.T) {
	accountSvc, txSvc, _, userID := newAccountTestEnv(t)

	checking, err := accountSvc.Create(context.Background(), userID, &dto.CreateAccountRequest{Name: "Checking", Color: "#000"})
	require.NoError(t, err)
	savings, err := accountSvc.Create(context.Background(), userID, &dto.CreateAccountRequest{Name: "Savings", Color: "#111"})
	require.NoError(t, err)

	_, err = txSvc.CreateTransfer(context.Background(), userID, &dto.CreateTransferRequest{
		SourceAccountID:      checking.ID,
		DestinationAccountID: savings.ID,
		Amount:               decimal.NewFromFloat(50.00),
		Description:          "move",
	})
	require.NoError(t, err)

	accounts, err := accountSvc.ListByOwner(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	byName := map[string]decimal.Decimal{}
	for _, a := range accounts {
		byName[a.Name] = a.Balance
	}
	assert.True(t, decimal.NewFromFloat(-50.00).Equal(byName["Checking"]), "got %s", byName["Checking"])
	assert.True(t, decimal.NewFromFloat(50.00).Equal(byName["Savings"]), "got %s", byName["Savings"])
}

func TestUpdateAccountChecksDuplicateOnRename(t *testing.T) {
	accountSvc, _, _, userID := newAccountTestEnv(t)

	first, err := accountSvc.Create(context.Background(), userID, &dto.CreateAccountRequest{Name: "Checking"})
	require.NoError(t, err)
	_, err = accountSvc.Create(context.Background(), userID, &dto.CreateAccountRequest{Name: "Savings"})
	require.NoError(t, err)

	rename := "Savings"
	_, err = accountSvc.Update(context.Background(), uuid.MustParse(first.ID), userID, &dto.UpdateAccountRequest{Name: &rename})
	require.ErrorIs(t, err, ErrAccountExists)

	color := "#abc"
	updated, err := accountSvc.Update(context.Background(), uuid.MustParse(first.ID), userID, &dto.UpdateAccountRequest{Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "#abc", updated.Color)
}

func TestAccountOwnership(t *testing.T) {
	accountSvc, _, _, userID := newAccountTestEnv(t)

	created, err := accountSvc.Create(context.Background(), userID, &dto.CreateAccountRequest{Name: "Checking"})
	require.NoError(t, err)

	stranger := uuid.New()
	id := uuid.MustParse(created.ID)

	_, err = accountSvc.GetByID(context.Background(), id, stranger)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, accountSvc.Archive(context.Background(), id, stranger), ErrUnauthorized)

	_, err = accountSvc.GetByID(context.Background(), uuid.New(), userID)
	assert.ErrorIs(t, err, ErrNotFound)
}
