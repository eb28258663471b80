package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	dompay "payflow/internal/domain/payment"
	"payflow/internal/domain/user"
)

type stubUserRepo struct {
	users map[string]*user.User
	err   error
}

func (r *stubUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	_ = ctx
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

type stubPaymentRepo struct {
	payments map[string]*dompay.Payment
	order    []string
	saves    int
	saveErr  error
	findErr  error
}

func newStubPaymentRepo(seed ...*dompay.Payment) *stubPaymentRepo {
	r := &stubPaymentRepo{payments: make(map[string]*dompay.Payment)}
	for _, p := range seed {
		r.payments[p.ID] = p.Clone()
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *stubPaymentRepo) Save(ctx context.Context, p *dompay.Payment) error {
	_ = ctx
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	if _, exists := r.payments[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.payments[p.ID] = p.Clone()
	return nil
}

func (r *stubPaymentRepo) FindByID(ctx context.Context, id string) (*dompay.Payment, error) {
	_ = ctx
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.payments[id]
	if !ok {
		return nil, dompay.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *stubPaymentRepo) FindByUserID(ctx context.Context, userID string) ([]*dompay.Payment, error) {
	_ = ctx
	if r.findErr != nil {
		return nil, r.findErr
	}
	found := make([]*dompay.Payment, 0)
	for _, id := range r.order {
		if p := r.payments[id]; p.UserID == userID {
			found = append(found, p.Clone())
		}
	}
	return found, nil
}

type stubPublisher struct {
	published []*dompay.Payment
	err       error
}

func (p *stubPublisher) PublishPaymentProcessed(ctx context.Context, pay *dompay.Payment) error {
	_ = ctx
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, pay)
	return nil
}

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("pay-%d", g.n)
}

func mustUser(id string, active bool, limit string) *user.User {
	u, err := user.New(id, active, decimal.RequireFromString(limit))
	if err != nil {
		panic(err)
	}
	return u
}

func mustPayment(id, userID, amount string) *dompay.Payment {
	p, err := dompay.New(id, userID, decimal.RequireFromString(amount))
	if err != nil {
		panic(err)
	}
	return p
}

func newCalculator() *dompay.Calculator {
	return dompay.NewCalculator(&seqIDs{})
}
