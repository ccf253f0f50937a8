package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is never physically deleted: archiving keeps its transactions in
// every balance it ever contributed to.
type Account struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	Name       string    `db:"name"`
	Color      string    `db:"color"`
	IsArchived bool      `db:"is_archived"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
