package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatedEvent is emitted after a new payment has been persisted.
// The settlement worker reacts to it.
type CreatedEvent struct {
	PaymentID  string
	UserID     string
	Amount     decimal.Decimal
	OccurredAt time.Time
}

func (CreatedEvent) EventName() string { return "payment.created" }

func NewCreatedEvent(p *Payment) CreatedEvent {
	return CreatedEvent{
		PaymentID:  p.ID,
		UserID:     p.UserID,
		Amount:     p.Amount,
		OccurredAt: time.Now().UTC(),
	}
}

// ProcessedEvent notifies interested parties that a payment settled.
type ProcessedEvent struct {
	PaymentID  string
	UserID     string
	Amount     decimal.Decimal
	Status     Status
	OccurredAt time.Time
}

func (ProcessedEvent) EventName() string { return "payment.processed" }

func NewProcessedEvent(p *Payment) ProcessedEvent {
	return ProcessedEvent{
		PaymentID:  p.ID,
		UserID:     p.UserID,
		Amount:     p.Amount,
		Status:     p.Status,
		OccurredAt: time.Now().UTC(),
	}
}
