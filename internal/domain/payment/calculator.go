package payment

import (
	"fmt"

	"github.com/shopspring/decimal"

	"payflow/internal/domain/user"
)

// IDGenerator supplies identities for new payments. Pluggable so tests can
// use deterministic ids.
type IDGenerator interface {
	NewID() string
}

// Calculator is the single authority on whether a user may make a payment.
// It never persists or publishes; it only validates and constructs.
type Calculator struct {
	ids IDGenerator
}

func NewCalculator(ids IDGenerator) *Calculator {
	return &Calculator{ids: ids}
}

// Process validates amount against the user's eligibility and daily limit and
// returns a new pending payment owned by the user. An amount equal to the
// limit is allowed; only strictly greater amounts are rejected.
func (c *Calculator) Process(u *user.User, amount decimal.Decimal) (*Payment, error) {
	if !u.Active {
		return nil, fmt.Errorf("%w: %s", user.ErrNotActive, u.ID)
	}
	if amount.GreaterThan(u.DailyLimit) {
		return nil, fmt.Errorf("%w: amount %s, limit %s", ErrLimitExceeded, amount, u.DailyLimit)
	}
	return New(c.ids.NewID(), u.ID, amount)
}
