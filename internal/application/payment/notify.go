package payment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	dompay "payflow/internal/domain/payment"
)

const useCaseNotify = "payment.notify"

type NotifyPaymentCommand struct {
	PaymentID string
}

// NotifyPaymentUseCase invokes the event publisher for a payment exactly
// once. Publisher failures propagate to the caller.
type NotifyPaymentUseCase struct {
	payments  dompay.Repository
	publisher EventPublisher
	tel       telemetry
}

func NewNotifyPaymentUseCase(payments dompay.Repository, publisher EventPublisher, log *zap.Logger, metrics *Metrics) *NotifyPaymentUseCase {
	return &NotifyPaymentUseCase{
		payments:  payments,
		publisher: publisher,
		tel:       newTelemetry(log, metrics),
	}
}

func (uc *NotifyPaymentUseCase) Execute(ctx context.Context, cmd NotifyPaymentCommand) (err error) {
	ctx, _, done := uc.tel.start(ctx, useCaseNotify,
		attribute.String("payment.id", cmd.PaymentID),
	)
	defer func() { done(err) }()

	p, err := uc.payments.FindByID(ctx, cmd.PaymentID)
	if err != nil {
		if errors.Is(err, dompay.ErrNotFound) {
			return fmt.Errorf("%w: %s", dompay.ErrNotFound, cmd.PaymentID)
		}
		return wrapRepositoryError(err)
	}

	if err = uc.publisher.PublishPaymentProcessed(ctx, p); err != nil {
		return err
	}
	return nil
}
