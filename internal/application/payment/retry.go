package payment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"payflow/internal/domain/event"
	dompay "payflow/internal/domain/payment"
	"payflow/internal/domain/user"
)

const useCaseRetry = "payment.retry"

type RetryPaymentCommand struct {
	PaymentID string
}

// RetryPaymentUseCase re-runs the calculator for a failed payment, producing
// a fresh pending payment with a new identity. The failed record is left
// untouched as an audit trail of attempts.
type RetryPaymentUseCase struct {
	users      user.Repository
	payments   dompay.Repository
	calculator *dompay.Calculator
	bus        event.Publisher
	tel        telemetry
}

func NewRetryPaymentUseCase(
	users user.Repository,
	payments dompay.Repository,
	calculator *dompay.Calculator,
	bus event.Publisher,
	log *zap.Logger,
	metrics *Metrics,
) *RetryPaymentUseCase {
	return &RetryPaymentUseCase{
		users:      users,
		payments:   payments,
		calculator: calculator,
		bus:        bus,
		tel:        newTelemetry(log, metrics),
	}
}

func (uc *RetryPaymentUseCase) Execute(ctx context.Context, cmd RetryPaymentCommand) (_ *PaymentResult, err error) {
	ctx, span, done := uc.tel.start(ctx, useCaseRetry,
		attribute.String("payment.id", cmd.PaymentID),
	)
	defer func() { done(err) }()

	failed, err := uc.payments.FindByID(ctx, cmd.PaymentID)
	if err != nil {
		if errors.Is(err, dompay.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", dompay.ErrNotFound, cmd.PaymentID)
		}
		return nil, wrapRepositoryError(err)
	}

	if !failed.IsFailed() {
		return nil, fmt.Errorf("%w: status is %s", dompay.ErrNotFailed, failed.Status)
	}

	u, err := uc.users.FindByID(ctx, failed.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", user.ErrNotFound, failed.UserID)
		}
		return nil, wrapRepositoryError(err)
	}

	retried, err := uc.calculator.Process(u, failed.Amount)
	if err != nil {
		return nil, err
	}

	if err = uc.payments.Save(ctx, retried); err != nil {
		err = wrapRepositoryError(err)
		return nil, err
	}

	publishCreated(ctx, uc.bus, uc.tel.log, retried)

	span.SetAttributes(attribute.String("payment.retry_id", retried.ID))
	return &PaymentResult{PaymentID: retried.ID, Amount: retried.Amount}, nil
}
