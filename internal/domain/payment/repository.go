package payment

import "context"

type Repository interface {
	// Save upserts by payment id.
	Save(ctx context.Context, p *Payment) error
	FindByID(ctx context.Context, id string) (*Payment, error)
	FindByUserID(ctx context.Context, userID string) ([]*Payment, error)
}
