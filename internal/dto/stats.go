package dto

import "github.com/shopspring/decimal"

type CategorySpending struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type SpendingResponse struct {
	From       string             `json:"from"`
	To         string             `json:"to"`
	Categories []CategorySpending `json:"categories"`
}
