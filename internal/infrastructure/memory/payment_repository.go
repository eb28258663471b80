package memory

import (
	"context"
	"fmt"
	"sync"

	"payflow/internal/domain/payment"
)

type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*payment.Payment
	byUser   map[string][]string
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		payments: make(map[string]*payment.Payment),
		byUser:   make(map[string][]string),
	}
}

// Save upserts by payment id. First save of an id appends it to the owner's
// insertion-ordered index; updates keep the original position.
func (r *PaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	_ = ctx
	if p == nil || p.ID == "" {
		return fmt.Errorf("payment repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[p.ID]; !exists {
		r.byUser[p.UserID] = append(r.byUser[p.UserID], p.ID)
	}
	r.payments[p.ID] = p.Clone()
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*payment.Payment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, payment.ErrNotFound
	}

	return p.Clone(), nil
}

func (r *PaymentRepository) FindByUserID(ctx context.Context, userID string) ([]*payment.Payment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byUser[userID]
	found := make([]*payment.Payment, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.payments[id]; ok {
			found = append(found, p.Clone())
		}
	}
	return found, nil
}
