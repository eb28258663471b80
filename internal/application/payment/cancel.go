package payment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	dompay "payflow/internal/domain/payment"
)

const useCaseCancel = "payment.cancel"

type CancelPaymentCommand struct {
	PaymentID string
}

// CancelPaymentUseCase cancels a pending payment. The cancellability guard
// lives on the entity; this use case only loads, transitions, and persists.
type CancelPaymentUseCase struct {
	payments dompay.Repository
	tel      telemetry
}

func NewCancelPaymentUseCase(payments dompay.Repository, log *zap.Logger, metrics *Metrics) *CancelPaymentUseCase {
	return &CancelPaymentUseCase{
		payments: payments,
		tel:      newTelemetry(log, metrics),
	}
}

func (uc *CancelPaymentUseCase) Execute(ctx context.Context, cmd CancelPaymentCommand) (err error) {
	ctx, _, done := uc.tel.start(ctx, useCaseCancel,
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

	if err = p.Cancel(); err != nil {
		return err
	}

	if err = uc.payments.Save(ctx, p); err != nil {
		err = wrapRepositoryError(err)
		return err
	}
	return nil
}
