package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows appointment listings.
type ListFilter struct {
	CustomerID string
	DoctorID   uuid.UUID
	Status     string
	From       time.Time
	To         time.Time
}

// Repository is the persistence contract for appointments.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error)
	Stats(ctx context.Context) (*Stats, error)
}
