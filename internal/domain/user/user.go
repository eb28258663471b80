package user

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("user: not found")
	ErrNotActive         = errors.New("user: not active")
	ErrInvalidDailyLimit = errors.New("user: daily limit must be zero or greater")
)

// User is an account as seen by the payment context. It is owned by an
// external identity subsystem; this context only reads it.
type User struct {
	ID         string
	Active     bool
	DailyLimit decimal.Decimal
}

func New(id string, active bool, dailyLimit decimal.Decimal) (*User, error) {
	if dailyLimit.IsNegative() {
		return nil, ErrInvalidDailyLimit
	}
	return &User{
		ID:         id,
		Active:     active,
		DailyLimit: dailyLimit,
	}, nil
}
