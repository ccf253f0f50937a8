package dto

import "github.com/shopspring/decimal"

type CreateTransferRequest struct {
	SourceAccountID      string          `json:"source_account_id" validate:"required"`
	DestinationAccountID string          `json:"destination_account_id" validate:"required"`
	Amount               decimal.Decimal `json:"amount" validate:"required"`
	Description          string          `json:"description" validate:"required"`
	Date                 string          `json:"date,omitempty"`
}

type ChainResponse struct {
	ID             string                `json:"id"`
	Status         string                `json:"status"`
	TransactionIDs []string              `json:"transaction_ids"`
	Transactions   []TransactionResponse `json:"transactions,omitempty"`
	CreatedAt      string                `json:"created_at"`
}
