package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound               = errors.New("payment: not found")
	ErrInvalidAmount          = errors.New("payment: amount must be greater than zero")
	ErrLimitExceeded          = errors.New("payment: amount exceeds daily limit")
	ErrCannotBeCancelled      = errors.New("payment: only pending payments can be cancelled")
	ErrNotFailed              = errors.New("payment: only failed payments can be retried")
	ErrInvalidStateTransition = errors.New("payment: invalid state transition")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusProcessed Status = "PROCESSED"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

// Payment is a single spending attempt by a user. Its status only changes
// through the transition methods below; PROCESSED and CANCELLED are terminal.
type Payment struct {
	ID        string
	UserID    string
	Amount    decimal.Decimal
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(id, userID string, amount decimal.Decimal) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	now := time.Now().UTC()
	return &Payment{
		ID:        id,
		UserID:    userID,
		Amount:    amount,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Cancel moves a pending payment to CANCELLED.
func (p *Payment) Cancel() error {
	if p.Status != StatusPending {
		return fmt.Errorf("%w: status is %s", ErrCannotBeCancelled, p.Status)
	}
	p.Status = StatusCancelled
	p.touch()
	return nil
}

// MarkProcessed records a successful settlement of a pending payment.
func (p *Payment) MarkProcessed() error {
	if p.Status != StatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, p.Status, StatusProcessed)
	}
	p.Status = StatusProcessed
	p.touch()
	return nil
}

// MarkFailed records a failed settlement of a pending payment.
func (p *Payment) MarkFailed() error {
	if p.Status != StatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, p.Status, StatusFailed)
	}
	p.Status = StatusFailed
	p.touch()
	return nil
}

func (p *Payment) IsFailed() bool {
	return p.Status == StatusFailed
}

func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (p *Payment) touch() {
	p.UpdatedAt = time.Now().UTC()
}
