package payment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	dompay "payflow/internal/domain/payment"
)

const useCaseStatus = "payment.status"

type GetPaymentStatusCommand struct {
	PaymentID string
}

type PaymentStatusResult struct {
	PaymentID string
	Status    dompay.Status
}

// GetPaymentStatusUseCase is a pure read of a payment's lifecycle status.
type GetPaymentStatusUseCase struct {
	payments dompay.Repository
	tel      telemetry
}

func NewGetPaymentStatusUseCase(payments dompay.Repository, log *zap.Logger, metrics *Metrics) *GetPaymentStatusUseCase {
	return &GetPaymentStatusUseCase{
		payments: payments,
		tel:      newTelemetry(log, metrics),
	}
}

func (uc *GetPaymentStatusUseCase) Execute(ctx context.Context, cmd GetPaymentStatusCommand) (_ *PaymentStatusResult, err error) {
	ctx, _, done := uc.tel.start(ctx, useCaseStatus,
		attribute.String("payment.id", cmd.PaymentID),
	)
	defer func() { done(err) }()

	p, err := uc.payments.FindByID(ctx, cmd.PaymentID)
	if err != nil {
		if errors.Is(err, dompay.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", dompay.ErrNotFound, cmd.PaymentID)
		}
		return nil, wrapRepositoryError(err)
	}

	return &PaymentStatusResult{PaymentID: p.ID, Status: p.Status}, nil
}
