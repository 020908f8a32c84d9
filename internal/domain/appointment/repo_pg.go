package appointment

import (
	"context"
	"errors"
	"fmt"

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

const appointmentCols = `id, customer_id, doctor_id, scheduled_at, duration, type, status,
	reason_for_visit, patient_notes, diagnosis, doctor_notes, vital_signs, prescriptions,
	follow_up_required, follow_up_date, rescheduled_from, cancel_reason,
	version_id, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.CustomerID, &a.DoctorID, &a.ScheduledAt, &a.Duration, &a.Type, &a.Status,
		&a.ReasonForVisit, &a.PatientNotes, &a.Diagnosis, &a.DoctorNotes, &a.VitalSigns, &a.Prescriptions,
		&a.FollowUpRequired, &a.FollowUpDate, &a.RescheduledFrom, &a.CancelReason,
		&a.VersionID, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	a.VersionID = 1
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (id, customer_id, doctor_id, scheduled_at, duration, type, status,
			reason_for_visit, patient_notes, diagnosis, doctor_notes, vital_signs, prescriptions,
			follow_up_required, follow_up_date, rescheduled_from, cancel_reason, version_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		a.ID, a.CustomerID, a.DoctorID, a.ScheduledAt, a.Duration, a.Type, a.Status,
		a.ReasonForVisit, a.PatientNotes, a.Diagnosis, a.DoctorNotes, a.VitalSigns, a.Prescriptions,
		a.FollowUpRequired, a.FollowUpDate, a.RescheduledFrom, a.CancelReason, a.VersionID)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx, `SELECT `+appointmentCols+` FROM appointment WHERE id = $1`, id))
}

// Update applies a compare-and-swap on version_id so a stale write surfaces
// as db.ErrVersionConflict.
func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET scheduled_at=$2, duration=$3, type=$4, status=$5,
			reason_for_visit=$6, patient_notes=$7, diagnosis=$8, doctor_notes=$9,
			vital_signs=$10, prescriptions=$11, follow_up_required=$12, follow_up_date=$13,
			rescheduled_from=$14, cancel_reason=$15,
			version_id = version_id + 1, updated_at = NOW()
		WHERE id = $1 AND version_id = $16`,
		a.ID, a.ScheduledAt, a.Duration, a.Type, a.Status,
		a.ReasonForVisit, a.PatientNotes, a.Diagnosis, a.DoctorNotes,
		a.VitalSigns, a.Prescriptions, a.FollowUpRequired, a.FollowUpDate,
		a.RescheduledFrom, a.CancelReason, a.VersionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrVersionConflict
	}
	a.SetVersionID(a.GetVersionID() + 1)
	return nil
}

func (r *repoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	query := `SELECT ` + appointmentCols + ` FROM appointment WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM appointment WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.CustomerID != "" {
		clause := fmt.Sprintf(` AND customer_id = $%d`, idx)
		query += clause
		countQuery += clause
		args = append(args, f.CustomerID)
		idx++
	}
	if f.DoctorID != uuid.Nil {
		clause := fmt.Sprintf(` AND doctor_id = $%d`, idx)
		query += clause
		countQuery += clause
		args = append(args, f.DoctorID)
		idx++
	}
	if f.Status != "" {
		clause := fmt.Sprintf(` AND status = $%d`, idx)
		query += clause
		countQuery += clause
		args = append(args, f.Status)
		idx++
	}
	if !f.From.IsZero() {
		clause := fmt.Sprintf(` AND scheduled_at >= $%d`, idx)
		query += clause
		countQuery += clause
		args = append(args, f.From)
		idx++
	}
	if !f.To.IsZero() {
		clause := fmt.Sprintf(` AND scheduled_at < $%d`, idx)
		query += clause
		countQuery += clause
		args = append(args, f.To)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY scheduled_at ASC`
	query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'confirmed'),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE status = 'cancelled'),
		       COUNT(*) FILTER (WHERE status = 'no_show'),
		       COUNT(*) FILTER (WHERE scheduled_at::date = CURRENT_DATE)
		FROM appointment`).Scan(&s.Total, &s.Pending, &s.Confirmed, &s.Completed, &s.Cancelled, &s.NoShow, &s.Today)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
