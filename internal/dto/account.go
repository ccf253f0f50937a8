package dto

import "github.com/shopspring/decimal"

type CreateAccountRequest struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
}

type UpdateAccountRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Color     string          `json:"color"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}
