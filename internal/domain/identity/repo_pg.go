package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medsearch/medsearch/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const identityCols = `user_id, email, role, onboarding_completed, version_id, created_at, updated_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(&rec.UserID, &rec.Email, &rec.Role, &rec.OnboardingCompleted,
		&rec.VersionID, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	return &rec, err
}

func (r *repoPG) Create(ctx context.Context, rec *Record) error {
	rec.VersionID = 1
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO identity (user_id, email, role, onboarding_completed, version_id)
		VALUES ($1,$2,$3,$4,$5)`,
		rec.UserID, rec.Email, rec.Role, rec.OnboardingCompleted, rec.VersionID)
	return err
}

func (r *repoPG) GetByUserID(ctx context.Context, userID string) (*Record, error) {
	return scanRecord(r.conn(ctx).QueryRow(ctx,
		`SELECT `+identityCols+` FROM identity WHERE user_id = $1`, userID))
}

// Update applies a compare-and-swap on version_id so two concurrent role
// assignments surface as db.ErrVersionConflict instead of one silently
// overwriting the other.
func (r *repoPG) Update(ctx context.Context, rec *Record) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE identity SET email=$2, role=$3, onboarding_completed=$4,
			version_id = version_id + 1, updated_at = NOW()
		WHERE user_id = $1 AND version_id = $5`,
		rec.UserID, rec.Email, rec.Role, rec.OnboardingCompleted, rec.VersionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrVersionConflict
	}
	rec.SetVersionID(rec.GetVersionID() + 1)
	return nil
}
