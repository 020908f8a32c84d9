package identity

import "context"

// Repository is the persistence contract for identity records.
type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByUserID(ctx context.Context, userID string) (*Record, error)
	Update(ctx context.Context, r *Record) error
}
