package dto

import "github.com/shopspring/decimal"

type PaybackRequest struct {
	DueDate string `json:"due_date" validate:"required"`
}

type CreateTransactionRequest struct {
	AccountID       string          `json:"account_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	Type            string          `json:"type" validate:"required,oneof=POSITIVE NEGATIVE"`
	Category        string          `json:"category" validate:"required"`
	Description     string          `json:"description" validate:"required"`
	Counterparty    string          `json:"counterparty,omitempty"`
	Date            string          `json:"date,omitempty"`
	RequiresPayback bool            `json:"requires_payback"`
	Payback         *PaybackRequest `json:"payback_details,omitempty"`
}

// UpdateTransactionRequest carries a partial patch; nil fields are left
// untouched. Amount, type and category are ignored for transfer legs.
type UpdateTransactionRequest struct {
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Type            *string          `json:"type,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Counterparty    *string          `json:"counterparty,omitempty"`
	Date            *string          `json:"date,omitempty"`
	RequiresPayback *bool            `json:"requires_payback,omitempty"`
	Payback         *PaybackRequest  `json:"payback_details,omitempty"`
	PaybackStatus   *string          `json:"payback_status,omitempty"`
}

type PaybackResponse struct {
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
	CompletedAt string `json:"completed_at,omitempty"`
}

type TransactionResponse struct {
	ID              string           `json:"id"`
	AccountID       string           `json:"account_id"`
	Amount          decimal.Decimal  `json:"amount"`
	Type            string           `json:"type"`
	Category        string           `json:"category"`
	Description     string           `json:"description"`
	Counterparty    string           `json:"counterparty,omitempty"`
	ChainID         string           `json:"chain_id,omitempty"`
	RequiresPayback bool             `json:"requires_payback"`
	Payback         *PaybackResponse `json:"payback_details,omitempty"`
	Date            string           `json:"date"`
	CreatedAt       string           `json:"created_at"`
}
