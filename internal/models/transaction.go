package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionPositive TransactionType = "POSITIVE"
	TransactionNegative TransactionType = "NEGATIVE"
)

// CategoryTransfer marks the two legs of a transfer. Transactions carrying it
// must always reference a chain, and their amount/type/category are frozen
// after creation.
const CategoryTransfer = "TRANSFER"

type PaybackStatus string

const (
	PaybackPending PaybackStatus = "PENDING"
	PaybackPaid    PaybackStatus = "PAID"
)

type PaybackDetails struct {
	DueDate     time.Time     `db:"payback_due_date"`
	Status      PaybackStatus `db:"payback_status"`
	CompletedAt *time.Time    `db:"payback_completed_at"`
}

type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	AccountID       uuid.UUID       `db:"account_id"`
	UserID          uuid.UUID       `db:"user_id"`
	Amount          decimal.Decimal `db:"amount"`
	Type            TransactionType `db:"type"`
	Category        string          `db:"category"`
	Description     string          `db:"description"`
	Counterparty    *string         `db:"counterparty"`
	ChainID         *uuid.UUID      `db:"chain_id"`
	RequiresPayback bool            `db:"requires_payback"`
	Payback         *PaybackDetails
	Date            time.Time `db:"date"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// SignedAmount folds the (amount, type) pair into the value a balance sum
// sees: positive for income, negative for spending.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionNegative {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t *Transaction) IsTransferLeg() bool {
	return t.Category == CategoryTransfer
}
