package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionService struct {
	txStore      TransactionStore
	chainStore   ChainStore
	accountStore AccountStore
	logger       *zap.Logger
}

func NewTransactionService(txStore TransactionStore, chainStore ChainStore, accountStore AccountStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		txStore:      txStore,
		chainStore:   chainStore,
		accountStore: accountStore,
		logger:       logger,
	}
}

// Create validates and persists a single transaction. The transaction date
// defaults to the moment of the write unless the caller supplies one.
func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	tx, err := s.buildTransaction(userID, req, nil)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedAccount(ctx, userID, tx.AccountID); err != nil {
		return nil, err
	}

	if err := s.txStore.Create(ctx, tx); err != nil {
		return nil, err
	}

	return toTransactionResponse(tx), nil
}

// buildTransaction runs the standard validator over a draft and materializes
// the entity. Transfer legs come through here too, with their chain id set.
func (s *TransactionService) buildTransaction(userID uuid.UUID, req *dto.CreateTransactionRequest, chainID *uuid.UUID) (*models.Transaction, error) {
	if req.AccountID == "" {
		return nil, fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed account id", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	// Only the transfer path hands out chain ids; a TRANSFER transaction
	// without one would be a frozen leg no chain can ever delete.
	if req.Category == models.CategoryTransfer && chainID == nil {
		return nil, fmt.Errorf("%w: transfer transactions can only be created through a transfer", ErrInvalidInput)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidAmount)
	}

	txType := models.TransactionType(req.Type)
	if txType != models.TransactionPositive && txType != models.TransactionNegative {
		return nil, fmt.Errorf("%w: type must be POSITIVE or NEGATIVE", ErrInvalidInput)
	}

	now := time.Now()
	date := now
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed date", ErrInvalidInput)
		}
		date = parsed
	}

	tx := &models.Transaction{
		ID:              uuid.New(),
		AccountID:       accountID,
		UserID:          userID,
		Amount:          req.Amount,
		Type:            txType,
		Category:        req.Category,
		Description:     sanitizeUTF8(req.Description),
		ChainID:         chainID,
		RequiresPayback: req.RequiresPayback,
		Date:            date,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if req.Counterparty != "" {
		counterparty := sanitizeUTF8(req.Counterparty)
		tx.Counterparty = &counterparty
	}

	if req.RequiresPayback {
		if req.Payback == nil || req.Payback.DueDate == "" {
			return nil, fmt.Errorf("%w: payback requires a due date", ErrInvalidInput)
		}
		dueDate, err := parseDate(req.Payback.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed payback due date", ErrInvalidInput)
		}
		tx.Payback = &models.PaybackDetails{
			DueDate: dueDate,
			Status:  models.PaybackPending,
		}
	}

	return tx, nil
}

// Update applies a partial patch after the ownership check. For transfer
// legs the amount, type and category fields of the patch are silently
// dropped; the rest applies. This narrowing keeps both legs of a transfer
// consistent and is deliberately not an error.
func (s *TransactionService) Update(ctx context.Context, id, userID uuid.UUID, req *dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	tx, err := s.ownedTransaction(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	patch := *req
	if tx.IsTransferLeg() {
		patch.Amount = nil
		patch.Type = nil
		patch.Category = nil
	}

	if patch.Amount != nil {
		if !patch.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidAmount)
		}
		tx.Amount = *patch.Amount
	}
	if patch.Type != nil {
		txType := models.TransactionType(*patch.Type)
		if txType != models.TransactionPositive && txType != models.TransactionNegative {
			return nil, fmt.Errorf("%w: type must be POSITIVE or NEGATIVE", ErrInvalidInput)
		}
		tx.Type = txType
	}
	if patch.Category != nil {
		if strings.TrimSpace(*patch.Category) == "" {
			return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
		}
		if *patch.Category == models.CategoryTransfer {
			return nil, fmt.Errorf("%w: transactions cannot be recategorized as transfers", ErrInvalidInput)
		}
		tx.Category = *patch.Category
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
		}
		tx.Description = sanitizeUTF8(*patch.Description)
	}
	if patch.Counterparty != nil {
		counterparty := sanitizeUTF8(*patch.Counterparty)
		tx.Counterparty = &counterparty
	}
	if patch.Date != nil {
		date, err := parseDate(*patch.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed date", ErrInvalidInput)
		}
		tx.Date = date
	}
	if patch.RequiresPayback != nil {
		tx.RequiresPayback = *patch.RequiresPayback
		if !tx.RequiresPayback {
			tx.Payback = nil
		}
	}
	if patch.Payback != nil {
		dueDate, err := parseDate(patch.Payback.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed payback due date", ErrInvalidInput)
		}
		if tx.Payback == nil {
			tx.Payback = &models.PaybackDetails{Status: models.PaybackPending}
		}
		tx.Payback.DueDate = dueDate
	}
	if tx.RequiresPayback && tx.Payback == nil {
		return nil, fmt.Errorf("%w: payback requires a due date", ErrInvalidInput)
	}
	if patch.PaybackStatus != nil && tx.Payback != nil {
		status := models.PaybackStatus(*patch.PaybackStatus)
		if status != models.PaybackPending && status != models.PaybackPaid {
			return nil, fmt.Errorf("%w: payback status must be PENDING or PAID", ErrInvalidInput)
		}
		tx.Payback.Status = status
		if status == models.PaybackPaid && tx.Payback.CompletedAt == nil {
			now := time.Now()
			tx.Payback.CompletedAt = &now
		}
	}

	tx.UpdatedAt = time.Now()
	if err := s.txStore.Update(ctx, tx); err != nil {
		return nil, err
	}

	return toTransactionResponse(tx), nil
}

// Delete removes a transaction. A transaction that belongs to a chain takes
// the whole chain with it: every member leg plus the chain record, in one
// database transaction.
func (s *TransactionService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tx, err := s.ownedTransaction(ctx, id, userID)
	if err != nil {
		return err
	}

	if tx.ChainID != nil {
		s.logger.Info("Deleting transaction chain",
			zap.String("transaction_id", id.String()),
			zap.String("chain_id", tx.ChainID.String()),
		)
		return s.chainStore.DeleteCascade(ctx, *tx.ChainID)
	}

	return s.txStore.Delete(ctx, id)
}

func (s *TransactionService) GetByID(ctx context.Context, id, userID uuid.UUID) (*dto.TransactionResponse, error) {
	tx, err := s.ownedTransaction(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(tx), nil
}

func (s *TransactionService) ListByAccount(ctx context.Context, userID uuid.UUID, accountID string, from, to *time.Time) ([]dto.TransactionResponse, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	accID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed account id", ErrInvalidInput)
	}

	if _, err := s.ownedAccount(ctx, userID, accID); err != nil {
		return nil, err
	}

	txs, err := s.txStore.ListByAccount(ctx, accID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TransactionResponse, len(txs))
	for i, tx := range txs {
		responses[i] = *toTransactionResponse(tx)
	}
	return responses, nil
}

func (s *TransactionService) ListByChain(ctx context.Context, chainID, userID uuid.UUID) (*dto.ChainResponse, error) {
	record, err := s.chainStore.GetByID(ctx, chainID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if record.UserID != userID {
		return nil, ErrUnauthorized
	}

	txs, err := s.txStore.ListByChain(ctx, chainID)
	if err != nil {
		return nil, err
	}

	return toChainResponse(record, txs), nil
}

// CreateTransfer creates the debit leg, the credit leg and the chain record
// of a transfer as one atomic write. Leg order is fixed: index 0 debits the
// source account, index 1 credits the destination.
func (s *TransactionService) CreateTransfer(ctx context.Context, userID uuid.UUID, req *dto.CreateTransferRequest) (*dto.ChainResponse, error) {
	if req.SourceAccountID == req.DestinationAccountID {
		return nil, fmt.Errorf("%w: source and destination accounts must differ", ErrInvalidInput)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidAmount)
	}

	chainID := uuid.New()

	drafts := []dto.CreateTransactionRequest{
		{
			AccountID:   req.SourceAccountID,
			Amount:      req.Amount,
			Type:        string(models.TransactionNegative),
			Category:    models.CategoryTransfer,
			Description: req.Description,
			Date:        req.Date,
		},
		{
			AccountID:   req.DestinationAccountID,
			Amount:      req.Amount,
			Type:        string(models.TransactionPositive),
			Category:    models.CategoryTransfer,
			Description: req.Description,
			Date:        req.Date,
		},
	}

	legs := make([]*models.Transaction, 0, len(drafts))
	memberIDs := make([]uuid.UUID, 0, len(drafts))
	for i := range drafts {
		leg, err := s.buildTransaction(userID, &drafts[i], &chainID)
		if err != nil {
			return nil, err
		}
		if _, err := s.ownedAccount(ctx, userID, leg.AccountID); err != nil {
			return nil, err
		}
		legs = append(legs, leg)
		memberIDs = append(memberIDs, leg.ID)
	}

	record := &models.ChainRecord{
		ID:             chainID,
		UserID:         userID,
		TransactionIDs: memberIDs,
		Status:         models.ChainCompleted,
		CreatedAt:      time.Now(),
	}

	if err := s.chainStore.CreateTransfer(ctx, legs, record); err != nil {
		return nil, err
	}

	s.logger.Info("Transfer created",
		zap.String("chain_id", chainID.String()),
		zap.String("amount", req.Amount.String()),
	)

	return toChainResponse(record, legs), nil
}

func (s *TransactionService) ownedTransaction(ctx context.Context, id, userID uuid.UUID) (*models.Transaction, error) {
	tx, err := s.txStore.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if tx.UserID != userID {
		return nil, ErrUnauthorized
	}
	return tx, nil
}

func (s *TransactionService) ownedAccount(ctx context.Context, userID, accountID uuid.UUID) (*models.Account, error) {
	account, err := s.accountStore.GetByID(ctx, accountID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if account.UserID != userID {
		return nil, ErrUnauthorized
	}
	return account, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func toTransactionResponse(tx *models.Transaction) *dto.TransactionResponse {
	resp := &dto.TransactionResponse{
		ID:              tx.ID.String(),
		AccountID:       tx.AccountID.String(),
		Amount:          tx.Amount,
		Type:            string(tx.Type),
		Category:        tx.Category,
		Description:     tx.Description,
		RequiresPayback: tx.RequiresPayback,
		Date:            tx.Date.Format(time.RFC3339),
		CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.Counterparty != nil {
		resp.Counterparty = *tx.Counterparty
	}
	if tx.ChainID != nil {
		resp.ChainID = tx.ChainID.String()
	}
	if tx.Payback != nil {
		resp.Payback = &dto.PaybackResponse{
			DueDate: tx.Payback.DueDate.Format(time.RFC3339),
			Status:  string(tx.Payback.Status),
		}
		if tx.Payback.CompletedAt != nil {
			resp.Payback.CompletedAt = tx.Payback.CompletedAt.Format(time.RFC3339)
		}
	}
	return resp
}

func toChainResponse(record *models.ChainRecord, txs []*models.Transaction) *dto.ChainResponse {
	resp := &dto.ChainResponse{
		ID:        record.ID.String(),
		Status:    string(record.Status),
		CreatedAt: record.CreatedAt.Format(time.RFC3339),
	}
	for _, id := range record.TransactionIDs {
		resp.TransactionIDs = append(resp.TransactionIDs, id.String())
	}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, *toTransactionResponse(tx))
	}
	return resp
}
