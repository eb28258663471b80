package payment

import (
	"context"

	dompay "payflow/internal/domain/payment"
)

// EventPublisher is the outbound port used by NotifyPayment. Failures are
// propagated to the caller, not swallowed here.
type EventPublisher interface {
	PublishPaymentProcessed(ctx context.Context, p *dompay.Payment) error
}
