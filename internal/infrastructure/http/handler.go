package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	apppay "payflow/internal/application/payment"
	dompay "payflow/internal/domain/payment"
	domuser "payflow/internal/domain/user"
)

type Handler struct {
	process *apppay.ProcessPaymentUseCase
	cancel  *apppay.CancelPaymentUseCase
	retry   *apppay.RetryPaymentUseCase
	status  *apppay.GetPaymentStatusUseCase
	list    *apppay.ListUserPaymentsUseCase
	notify  *apppay.NotifyPaymentUseCase
}

func NewHandler(
	process *apppay.ProcessPaymentUseCase,
	cancel *apppay.CancelPaymentUseCase,
	retry *apppay.RetryPaymentUseCase,
	status *apppay.GetPaymentStatusUseCase,
	list *apppay.ListUserPaymentsUseCase,
	notify *apppay.NotifyPaymentUseCase,
) *Handler {
	return &Handler{
		process: process,
		cancel:  cancel,
		retry:   retry,
		status:  status,
		list:    list,
		notify:  notify,
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/payment/process", h.method(http.MethodPost, h.handleProcess))
	mux.HandleFunc("/payment/cancel", h.method(http.MethodPost, h.handleCancel))
	mux.HandleFunc("/payment/retry", h.method(http.MethodPost, h.handleRetry))
	mux.HandleFunc("/payment/notify", h.method(http.MethodPost, h.handleNotify))
	mux.HandleFunc("/payment/status", h.method(http.MethodGet, h.handleStatus))
	mux.HandleFunc("/payment/list", h.method(http.MethodGet, h.handleList))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}

type processPaymentRequest struct {
	UserID string          `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

type paymentResponse struct {
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processPaymentRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.process.Execute(r.Context(), apppay.ProcessPaymentCommand{
		UserID: req.UserID,
		Amount: req.Amount,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, paymentResponse{
		PaymentID: result.PaymentID,
		Amount:    result.Amount,
	})
}

type paymentIDRequest struct {
	PaymentID string `json:"payment_id"`
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	var req paymentIDRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.cancel.Execute(r.Context(), apppay.CancelPaymentCommand{PaymentID: req.PaymentID}); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRetry(w http.ResponseWriter, r *http.Request) {
	var req paymentIDRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.retry.Execute(r.Context(), apppay.RetryPaymentCommand{PaymentID: req.PaymentID})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, paymentResponse{
		PaymentID: result.PaymentID,
		Amount:    result.Amount,
	})
}

func (h *Handler) handleNotify(w http.ResponseWriter, r *http.Request) {
	var req paymentIDRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.notify.Execute(r.Context(), apppay.NotifyPaymentCommand{PaymentID: req.PaymentID}); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

type paymentStatusResponse struct {
	PaymentID string        `json:"payment_id"`
	Status    dompay.Status `json:"status"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	paymentID := r.URL.Query().Get("payment_id")
	if paymentID == "" {
		writeError(w, http.StatusBadRequest, errors.New("payment_id is required"))
		return
	}

	result, err := h.status.Execute(r.Context(), apppay.GetPaymentStatusCommand{PaymentID: paymentID})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, paymentStatusResponse{
		PaymentID: result.PaymentID,
		Status:    result.Status,
	})
}

type userPaymentResponse struct {
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    dompay.Status   `json:"status"`
}

type listPaymentsResponse struct {
	Payments []userPaymentResponse `json:"payments"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, errors.New("user_id is required"))
		return
	}

	result, err := h.list.Execute(r.Context(), apppay.ListUserPaymentsCommand{UserID: userID})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	payments := make([]userPaymentResponse, 0, len(result))
	for _, p := range result {
		payments = append(payments, userPaymentResponse{
			PaymentID: p.PaymentID,
			Amount:    p.Amount,
			Status:    p.Status,
		})
	}
	writeJSON(w, http.StatusOK, listPaymentsResponse{Payments: payments})
}

func (h *Handler) method(method string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		handler(w, r)
	}
}

func decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	_ = ctx
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dompay.ErrNotFound),
		errors.Is(err, domuser.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, dompay.ErrInvalidAmount),
		errors.Is(err, domuser.ErrInvalidDailyLimit):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, domuser.ErrNotActive):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, dompay.ErrLimitExceeded):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, dompay.ErrCannotBeCancelled),
		errors.Is(err, dompay.ErrNotFailed),
		errors.Is(err, dompay.ErrInvalidStateTransition):
		writeError(w, http.StatusConflict, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
