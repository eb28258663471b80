package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"payflow/internal/domain/event"
	dompay "payflow/internal/domain/payment"
	"payflow/internal/domain/user"
)

const useCaseProcess = "payment.process"

type ProcessPaymentCommand struct {
	UserID string
	Amount decimal.Decimal
}

type PaymentResult struct {
	PaymentID string
	Amount    decimal.Decimal
}

// ProcessPaymentUseCase resolves the user, delegates the eligibility and
// limit decision to the calculator, and persists the resulting payment.
// Validation failures short-circuit before any save.
type ProcessPaymentUseCase struct {
	users      user.Repository
	payments   dompay.Repository
	calculator *dompay.Calculator
	bus        event.Publisher
	tel        telemetry
}

func NewProcessPaymentUseCase(
	users user.Repository,
	payments dompay.Repository,
	calculator *dompay.Calculator,
	bus event.Publisher,
	log *zap.Logger,
	metrics *Metrics,
) *ProcessPaymentUseCase {
	return &ProcessPaymentUseCase{
		users:      users,
		payments:   payments,
		calculator: calculator,
		bus:        bus,
		tel:        newTelemetry(log, metrics),
	}
}

func (uc *ProcessPaymentUseCase) Execute(ctx context.Context, cmd ProcessPaymentCommand) (_ *PaymentResult, err error) {
	ctx, span, done := uc.tel.start(ctx, useCaseProcess,
		attribute.String("payment.user_id", cmd.UserID),
	)
	defer func() { done(err) }()

	u, err := uc.users.FindByID(ctx, cmd.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", user.ErrNotFound, cmd.UserID)
		}
		return nil, wrapRepositoryError(err)
	}

	p, err := uc.calculator.Process(u, cmd.Amount)
	if err != nil {
		return nil, err
	}

	if err = uc.payments.Save(ctx, p); err != nil {
		err = wrapRepositoryError(err)
		return nil, err
	}

	publishCreated(ctx, uc.bus, uc.tel.log, p)

	span.SetAttributes(attribute.String("payment.id", p.ID))
	return &PaymentResult{PaymentID: p.ID, Amount: p.Amount}, nil
}
