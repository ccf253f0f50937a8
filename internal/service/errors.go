package service

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrInvalidInput and ErrInvalidAmount are wrapped with a detail message
	// via fmt.Errorf("%w: ..."); match them with errors.Is.
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidAmount = errors.New("invalid amount")

	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")

	ErrAccountExists  = errors.New("account name already exists")
	ErrCategoryExists = errors.New("category name already exists")
)

// translateNotFound maps the storage layer's no-rows answer onto the domain
// error; everything else passes through untouched.
func translateNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
