package customer

import (
	"context"
	"errors"

	"github.com/google/uuid"
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

const customerCols = `id, user_id, name, date_of_birth, gender, phone_number,
	address, emergency_contact, medical_info, notifications, favorites, active,
	version_id, created_at, updated_at`

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.DateOfBirth, &c.Gender, &c.PhoneNumber,
		&c.Address, &c.EmergencyContact, &c.MedicalInfo, &c.Notifications, &c.Favorites, &c.Active,
		&c.VersionID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	return &c, err
}

func (r *repoPG) Create(ctx context.Context, c *Customer) error {
	c.ID = uuid.New()
	c.VersionID = 1
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO customer (id, user_id, name, date_of_birth, gender, phone_number,
			address, emergency_contact, medical_info, notifications, favorites, active, version_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		c.ID, c.UserID, c.Name, c.DateOfBirth, c.Gender, c.PhoneNumber,
		c.Address, c.EmergencyContact, c.MedicalInfo, c.Notifications, c.Favorites, c.Active, c.VersionID)
	return err
}

func (r *repoPG) GetByUserID(ctx context.Context, userID string) (*Customer, error) {
	return scanCustomer(r.conn(ctx).QueryRow(ctx,
		`SELECT `+customerCols+` FROM customer WHERE user_id = $1`, userID))
}

// Update applies a compare-and-swap on version_id so a stale write surfaces
// as db.ErrVersionConflict.
func (r *repoPG) Update(ctx context.Context, c *Customer) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE customer SET name=$2, date_of_birth=$3, gender=$4, phone_number=$5,
			address=$6, emergency_contact=$7, medical_info=$8, notifications=$9,
			favorites=$10, active=$11,
			version_id = version_id + 1, updated_at = NOW()
		WHERE id = $1 AND version_id = $12`,
		c.ID, c.Name, c.DateOfBirth, c.Gender, c.PhoneNumber,
		c.Address, c.EmergencyContact, c.MedicalInfo, c.Notifications,
		c.Favorites, c.Active, c.VersionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrVersionConflict
	}
	c.SetVersionID(c.GetVersionID() + 1)
	return nil
}
