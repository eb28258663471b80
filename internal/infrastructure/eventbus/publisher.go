package eventbus

import (
	"context"

	"payflow/internal/domain/event"
	"payflow/internal/domain/payment"
)

// PaymentPublisher adapts the bus to the application's EventPublisher port.
type PaymentPublisher struct {
	bus event.Publisher
}

func NewPaymentPublisher(bus event.Publisher) *PaymentPublisher {
	return &PaymentPublisher{bus: bus}
}

func (p *PaymentPublisher) PublishPaymentProcessed(ctx context.Context, pay *payment.Payment) error {
	return p.bus.Publish(ctx, payment.NewProcessedEvent(pay))
}
