package settlement

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"payflow/internal/domain/event"
	"payflow/internal/domain/payment"
)

const componentWorker = "settlement_worker"

// Worker simulates an external settlement collaborator. It consumes
// payment.created events, settles each pending payment with a configured
// success rate, records the outcome, and announces successful settlements.
type Worker struct {
	mu          sync.Mutex
	random      *rand.Rand
	successRate float64
	payments    payment.Repository
	subscriber  event.Subscriber
	publisher   event.Publisher
	log         *zap.Logger
}

func New(payments payment.Repository, subscriber event.Subscriber, publisher event.Publisher, successRate float64, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		random:      rand.New(rand.NewSource(time.Now().UnixNano())),
		successRate: successRate,
		payments:    payments,
		subscriber:  subscriber,
		publisher:   publisher,
		log:         logger.With(zap.String("component", componentWorker)),
	}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(payment.CreatedEvent{}.EventName(), w.handlePaymentCreated)
}

func (w *Worker) handlePaymentCreated(ctx context.Context, e event.Event) error {
	evt, ok := e.(payment.CreatedEvent)
	if !ok {
		return nil
	}

	logger := w.log.With(zap.String("payment_id", evt.PaymentID))

	p, err := w.payments.FindByID(ctx, evt.PaymentID)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			logger.Warn("settlement_payment_missing")
			return nil
		}
		return err
	}
	if p.Status != payment.StatusPending {
		// Cancelled between creation and settlement; nothing to do.
		return nil
	}

	if w.settle() {
		if err := p.MarkProcessed(); err != nil {
			return err
		}
	} else {
		if err := p.MarkFailed(); err != nil {
			return err
		}
	}

	if err := w.payments.Save(ctx, p); err != nil {
		logger.Error("settlement_save_failed", zap.Error(err))
		return err
	}

	logger.Info("settlement_done", zap.String("status", string(p.Status)))

	if p.Status == payment.StatusProcessed && w.publisher != nil {
		if err := w.publisher.Publish(ctx, payment.NewProcessedEvent(p)); err != nil {
			logger.Warn("settlement_publish_failed", zap.Error(err))
		}
	}
	return nil
}

func (w *Worker) settle() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.random.Float64() <= w.successRate
}
