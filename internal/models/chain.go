package models

import (
	"time"

	"github.com/google/uuid"
)

type ChainStatus string

const (
	ChainPending   ChainStatus = "PENDING"
	ChainCompleted ChainStatus = "COMPLETED"
	ChainFailed    ChainStatus = "FAILED"
)

// ChainRecord groups the transactions created by one transfer. It is the
// authority for membership; the legs only carry a back-reference (chain_id).
type ChainRecord struct {
	ID             uuid.UUID   `db:"id"`
	UserID         uuid.UUID   `db:"user_id"`
	TransactionIDs []uuid.UUID `db:"transaction_ids"`
	Status         ChainStatus `db:"status"`
	CreatedAt      time.Time   `db:"created_at"`
}
