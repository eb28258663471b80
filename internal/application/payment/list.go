package payment

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	dompay "payflow/internal/domain/payment"
)

const useCaseList = "payment.list"

type ListUserPaymentsCommand struct {
	UserID string
}

type UserPayment struct {
	PaymentID string
	Amount    decimal.Decimal
	Status    dompay.Status
}

// ListUserPaymentsUseCase returns every payment owned by a user, in the
// order the repository yields them. A user with no payments gets an empty
// list, not an error.
type ListUserPaymentsUseCase struct {
	payments dompay.Repository
	tel      telemetry
}

func NewListUserPaymentsUseCase(payments dompay.Repository, log *zap.Logger, metrics *Metrics) *ListUserPaymentsUseCase {
	return &ListUserPaymentsUseCase{
		payments: payments,
		tel:      newTelemetry(log, metrics),
	}
}

func (uc *ListUserPaymentsUseCase) Execute(ctx context.Context, cmd ListUserPaymentsCommand) (_ []UserPayment, err error) {
	ctx, _, done := uc.tel.start(ctx, useCaseList,
		attribute.String("payment.user_id", cmd.UserID),
	)
	defer func() { done(err) }()

	found, err := uc.payments.FindByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, wrapRepositoryError(err)
	}

	result := make([]UserPayment, 0, len(found))
	for _, p := range found {
		result = append(result, UserPayment{
			PaymentID: p.ID,
			Amount:    p.Amount,
			Status:    p.Status,
		})
	}
	return result, nil
}
