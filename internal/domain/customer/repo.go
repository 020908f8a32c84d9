package customer

import "context"

// Repository is the persistence contract for customer profiles.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByUserID(ctx context.Context, userID string) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
}
