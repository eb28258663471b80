package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	dompay "payflow/internal/domain/payment"
	"payflow/internal/domain/user"
)

func newProcessUseCase(users *stubUserRepo, payments *stubPaymentRepo) *ProcessPaymentUseCase {
	return NewProcessPaymentUseCase(users, payments, newCalculator(), nil, nil, nil)
}

func TestProcessPayment(t *testing.T) {
	users := &stubUserRepo{users: map[string]*user.User{
		"u1": mustUser("u1", true, "100.00"),
	}}
	payments := newStubPaymentRepo()
	uc := newProcessUseCase(users, payments)

	result, err := uc.Execute(context.Background(), ProcessPaymentCommand{
		UserID: "u1",
		Amount: decimal.RequireFromString("50.00"),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.PaymentID == "" {
		t.Error("PaymentID is empty")
	}
	if !result.Amount.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("Amount = %s, want 50.00", result.Amount)
	}
	if payments.saves != 1 {
		t.Errorf("saves = %d, want 1", payments.saves)
	}

	persisted := payments.payments[result.PaymentID]
	if persisted == nil {
		t.Fatal("payment not persisted under returned id")
	}
	if persisted.Status != dompay.StatusPending {
		t.Errorf("persisted status = %s, want %s", persisted.Status, dompay.StatusPending)
	}
	if persisted.UserID != "u1" {
		t.Errorf("persisted user = %q, want u1", persisted.UserID)
	}
}

func TestProcessPaymentUserNotFound(t *testing.T) {
	users := &stubUserRepo{users: map[string]*user.User{}}
	payments := newStubPaymentRepo()
	uc := newProcessUseCase(users, payments)

	_, err := uc.Execute(context.Background(), ProcessPaymentCommand{
		UserID: "user-404",
		Amount: decimal.RequireFromString("50.00"),
	})
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("err = %v, want user.ErrNotFound", err)
	}
	if payments.saves != 0 {
		t.Errorf("saves = %d, want 0", payments.saves)
	}
}

func TestProcessPaymentInactiveUser(t *testing.T) {
	users := &stubUserRepo{users: map[string]*user.User{
		"u1": mustUser("u1", false, "100.00"),
	}}
	payments := newStubPaymentRepo()
	uc := newProcessUseCase(users, payments)

	_, err := uc.Execute(context.Background(), ProcessPaymentCommand{
		UserID: "u1",
		Amount: decimal.RequireFromString("10.00"),
	})
	if !errors.Is(err, user.ErrNotActive) {
		t.Fatalf("err = %v, want user.ErrNotActive", err)
	}
	if payments.saves != 0 {
		t.Errorf("saves = %d, want 0", payments.saves)
	}
}

func TestProcessPaymentLimitExceeded(t *testing.T) {
	users := &stubUserRepo{users: map[string]*user.User{
		"u1": mustUser("u1", true, "100.00"),
	}}
	payments := newStubPaymentRepo()
	uc := newProcessUseCase(users, payments)

	_, err := uc.Execute(context.Background(), ProcessPaymentCommand{
		UserID: "u1",
		Amount: decimal.RequireFromString("150.00"),
	})
	if !errors.Is(err, dompay.ErrLimitExceeded) {
		t.Fatalf("err = %v, want ErrLimitExceeded", err)
	}
	if payments.saves != 0 {
		t.Errorf("saves = %d, want 0", payments.saves)
	}
}

func TestProcessPaymentAtLimitBoundary(t *testing.T) {
	users := &stubUserRepo{users: map[string]*user.User{
		"u1": mustUser("u1", true, "100.00"),
	}}
	payments := newStubPaymentRepo()
	uc := newProcessUseCase(users, payments)

	if _, err := uc.Execute(context.Background(), ProcessPaymentCommand{
		UserID: "u1",
		Amount: decimal.RequireFromString("100.00"),
	}); err != nil {
		t.Fatalf("Execute at boundary: %v", err)
	}
	if payments.saves != 1 {
		t.Errorf("saves = %d, want 1", payments.saves)
	}
}

func TestProcessPaymentInvalidAmount(t *testing.T) {
	users := &stubUserRepo{users: map[string]*user.User{
		"u1": mustUser("u1", true, "100.00"),
	}}
	payments := newStubPaymentRepo()
	uc := newProcessUseCase(users, payments)

	_, err := uc.Execute(context.Background(), ProcessPaymentCommand{
		UserID: "u1",
		Amount: decimal.Zero,
	})
	if !errors.Is(err, dompay.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
	if payments.saves != 0 {
		t.Errorf("saves = %d, want 0", payments.saves)
	}
}

func TestProcessPaymentRepositoryFailure(t *testing.T) {
	users := &stubUserRepo{users: map[string]*user.User{
		"u1": mustUser("u1", true, "100.00"),
	}}
	payments := newStubPaymentRepo()
	payments.saveErr = errors.New("connection reset")
	uc := newProcessUseCase(users, payments)

	_, err := uc.Execute(context.Background(), ProcessPaymentCommand{
		UserID: "u1",
		Amount: decimal.RequireFromString("50.00"),
	})
	if !errors.Is(err, ErrRepository) {
		t.Fatalf("err = %v, want ErrRepository", err)
	}
}
