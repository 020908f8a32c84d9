package directory

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows the doctor listing. Zero values disable a clause;
// SortBy/SortOrder default to rating descending.
type ListFilter struct {
	Status    string
	Specialty string
	City      string
	MaxFee    int
	SortBy    string
	SortOrder string
}

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByUserID(ctx context.Context, userID string) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Doctor, int, error)
	Stats(ctx context.Context) (*DoctorStats, error)
}

type SpecialtyRepository interface {
	Create(ctx context.Context, s *Specialty) error
	GetByID(ctx context.Context, id uuid.UUID) (*Specialty, error)
	Update(ctx context.Context, s *Specialty) error
	List(ctx context.Context, activeOnly bool) ([]*Specialty, error)
}
