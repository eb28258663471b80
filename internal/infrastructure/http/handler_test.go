package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	apppay "payflow/internal/application/payment"
	dompay "payflow/internal/domain/payment"
	"payflow/internal/domain/user"
	"payflow/internal/infrastructure/id"
	"payflow/internal/infrastructure/memory"
)

type testEnv struct {
	router   http.Handler
	payments *memory.PaymentRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := memory.NewUserRepository()
	active, err := user.New("u1", true, decimal.RequireFromString("100.00"))
	if err != nil {
		t.Fatalf("user.New: %v", err)
	}
	users.Add(active)
	inactive, err := user.New("u2", false, decimal.RequireFromString("100.00"))
	if err != nil {
		t.Fatalf("user.New: %v", err)
	}
	users.Add(inactive)

	payments := memory.NewPaymentRepository()
	calculator := dompay.NewCalculator(id.NewUUIDGenerator())

	handler := NewHandler(
		apppay.NewProcessPaymentUseCase(users, payments, calculator, nil, nil, nil),
		apppay.NewCancelPaymentUseCase(payments, nil, nil),
		apppay.NewRetryPaymentUseCase(users, payments, calculator, nil, nil, nil),
		apppay.NewGetPaymentStatusUseCase(payments, nil, nil),
		apppay.NewListUserPaymentsUseCase(payments, nil, nil),
		apppay.NewNotifyPaymentUseCase(payments, &noopPublisher{}, nil, nil),
	)

	return &testEnv{router: handler.Router(), payments: payments}
}

type noopPublisher struct{}

func (noopPublisher) PublishPaymentProcessed(ctx context.Context, p *dompay.Payment) error {
	_ = ctx
	return nil
}

func (env *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleProcess(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/payment/process", `{"user_id":"u1","amount":"50.00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body)
	}

	var resp struct {
		PaymentID string          `json:"payment_id"`
		Amount    decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.PaymentID == "" {
		t.Error("payment_id is empty")
	}
	if !resp.Amount.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("amount = %s, want 50.00", resp.Amount)
	}
}

func TestHandleProcessInactiveUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/payment/process", `{"user_id":"u2","amount":"50.00"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body %s", rec.Code, rec.Body)
	}
}

func TestHandleProcessLimitExceeded(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/payment/process", `{"user_id":"u1","amount":"150.00"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body %s", rec.Code, rec.Body)
	}
}

func TestHandleProcessUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/payment/process", `{"user_id":"nobody","amount":"50.00"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", rec.Code, rec.Body)
	}
}

func TestHandleStatusNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/payment/status?payment_id=missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", rec.Code, rec.Body)
	}
}

func TestCancelFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/payment/process", `{"user_id":"u1","amount":"50.00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("process status = %d; body %s", rec.Code, rec.Body)
	}
	var created struct {
		PaymentID string `json:"payment_id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = env.do(t, http.MethodPost, "/payment/cancel", `{"payment_id":"`+created.PaymentID+`"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("cancel status = %d, want 204; body %s", rec.Code, rec.Body)
	}

	// Second cancel conflicts with the terminal state.
	rec = env.do(t, http.MethodPost, "/payment/cancel", `{"payment_id":"`+created.PaymentID+`"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("re-cancel status = %d, want 409; body %s", rec.Code, rec.Body)
	}

	rec = env.do(t, http.MethodGet, "/payment/status?payment_id="+created.PaymentID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	var status struct {
		Status dompay.Status `json:"status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Status != dompay.StatusCancelled {
		t.Errorf("status = %s, want %s", status.Status, dompay.StatusCancelled)
	}
}

func TestHandleListEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/payment/list?user_id=u1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
	var resp struct {
		Payments []json.RawMessage `json:"payments"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Payments == nil {
		t.Error("payments is null, want []")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/payment/process", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
