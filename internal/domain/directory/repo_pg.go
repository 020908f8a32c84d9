package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medsearch/medsearch/internal/platform/db"
)

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

func (r *doctorRepoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const doctorCols = `id, user_id, name, license_number, specialty_ids, primary_specialty,
	consultation_fee, consultation_duration, languages, address, availability,
	insurance_accepted, emergency_available, years_experience,
	rating_average, rating_count, status, version_id, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.LicenseNumber, &d.SpecialtyIDs, &d.PrimarySpecialty,
		&d.ConsultationFee, &d.ConsultationDuration, &d.Languages, &d.Address, &d.Availability,
		&d.InsuranceAccepted, &d.EmergencyAvailable, &d.YearsExperience,
		&d.Rating.Average, &d.Rating.Count, &d.Status, &d.VersionID, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	return &d, err
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	d.VersionID = 1
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctor (id, user_id, name, license_number, specialty_ids, primary_specialty,
			consultation_fee, consultation_duration, languages, address, availability,
			insurance_accepted, emergency_available, years_experience,
			rating_average, rating_count, status, version_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		d.ID, d.UserID, d.Name, d.LicenseNumber, d.SpecialtyIDs, d.PrimarySpecialty,
		d.ConsultationFee, d.ConsultationDuration, d.Languages, d.Address, d.Availability,
		d.InsuranceAccepted, d.EmergencyAvailable, d.YearsExperience,
		d.Rating.Average, d.Rating.Count, d.Status, d.VersionID)
	return err
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *doctorRepoPG) GetByUserID(ctx context.Context, userID string) (*Doctor, error) {
	return scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE user_id = $1`, userID))
}

// Update applies a compare-and-swap on version_id so a concurrent edit
// surfaces as db.ErrVersionConflict instead of being overwritten.
func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctor SET name=$2, license_number=$3, specialty_ids=$4, primary_specialty=$5,
			consultation_fee=$6, consultation_duration=$7, languages=$8, address=$9,
			availability=$10, insurance_accepted=$11, emergency_available=$12,
			years_experience=$13, rating_average=$14, rating_count=$15, status=$16,
			version_id = version_id + 1, updated_at = NOW()
		WHERE id = $1 AND version_id = $17`,
		d.ID, d.Name, d.LicenseNumber, d.SpecialtyIDs, d.PrimarySpecialty,
		d.ConsultationFee, d.ConsultationDuration, d.Languages, d.Address,
		d.Availability, d.InsuranceAccepted, d.EmergencyAvailable,
		d.YearsExperience, d.Rating.Average, d.Rating.Count, d.Status,
		d.VersionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrVersionConflict
	}
	d.SetVersionID(d.GetVersionID() + 1)
	return nil
}

func (r *doctorRepoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Doctor, int, error) {
	query := `SELECT ` + doctorCols + ` FROM doctor WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM doctor WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.Status != "" {
		clause := fmt.Sprintf(` AND status = $%d`, idx)
		query += clause
		countQuery += clause
		args = append(args, f.Status)
		idx++
	}
	if f.Specialty != "" {
		clause := fmt.Sprintf(` AND primary_specialty = $%d`, idx)
		query += clause
		countQuery += clause
		args = append(args, f.Specialty)
		idx++
	}
	if f.City != "" {
		clause := fmt.Sprintf(` AND address->>'city' ILIKE '%%' || $%d || '%%'`, idx)
		query += clause
		countQuery += clause
		args = append(args, f.City)
		idx++
	}
	if f.MaxFee > 0 {
		clause := fmt.Sprintf(` AND consultation_fee <= $%d`, idx)
		query += clause
		countQuery += clause
		args = append(args, f.MaxFee)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY ` + orderClause(f.SortBy, f.SortOrder)
	query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

// orderClause maps the public sort keys onto whitelisted column expressions.
// Arbitrary input never reaches the ORDER BY.
func orderClause(sortBy, sortOrder string) string {
	col := "rating_average"
	dir := "DESC"
	switch sortBy {
	case "fee":
		col, dir = "consultation_fee", "ASC"
	case "experience":
		col, dir = "years_experience", "DESC"
	case "rating", "":
	default:
	}
	if sortOrder == "asc" {
		dir = "ASC"
	} else if sortOrder == "desc" {
		dir = "DESC"
	}
	return col + " " + dir + ", created_at DESC"
}

func (r *doctorRepoPG) Stats(ctx context.Context) (*DoctorStats, error) {
	var s DoctorStats
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'verified'),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COALESCE(AVG(rating_average) FILTER (WHERE rating_count > 0), 0)
		FROM doctor`).Scan(&s.Total, &s.Verified, &s.Pending, &s.AverageRating)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// =========== Specialty Repository ===========

type specialtyRepoPG struct{ pool *pgxpool.Pool }

func NewSpecialtyRepoPG(pool *pgxpool.Pool) SpecialtyRepository { return &specialtyRepoPG{pool: pool} }

func (r *specialtyRepoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const specialtyCols = `id, name_en, name_es, description_en, description_es, icon, category,
	common_conditions, common_procedures, seo_keywords, priority, active,
	version_id, created_at, updated_at`

func scanSpecialty(row pgx.Row) (*Specialty, error) {
	var s Specialty
	err := row.Scan(&s.ID, &s.NameEN, &s.NameES, &s.DescriptionEN, &s.DescriptionES, &s.Icon, &s.Category,
		&s.CommonConditions, &s.CommonProcedures, &s.SEOKeywords, &s.Priority, &s.Active,
		&s.VersionID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	return &s, err
}

func (r *specialtyRepoPG) Create(ctx context.Context, s *Specialty) error {
	s.ID = uuid.New()
	s.VersionID = 1
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO specialty (id, name_en, name_es, description_en, description_es, icon, category,
			common_conditions, common_procedures, seo_keywords, priority, active, version_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		s.ID, s.NameEN, s.NameES, s.DescriptionEN, s.DescriptionES, s.Icon, s.Category,
		s.CommonConditions, s.CommonProcedures, s.SEOKeywords, s.Priority, s.Active, s.VersionID)
	return err
}

func (r *specialtyRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Specialty, error) {
	return scanSpecialty(r.conn(ctx).QueryRow(ctx, `SELECT `+specialtyCols+` FROM specialty WHERE id = $1`, id))
}

func (r *specialtyRepoPG) Update(ctx context.Context, s *Specialty) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE specialty SET name_en=$2, name_es=$3, description_en=$4, description_es=$5,
			icon=$6, category=$7, common_conditions=$8, common_procedures=$9,
			seo_keywords=$10, priority=$11, active=$12,
			version_id = version_id + 1, updated_at = NOW()
		WHERE id = $1 AND version_id = $13`,
		s.ID, s.NameEN, s.NameES, s.DescriptionEN, s.DescriptionES,
		s.Icon, s.Category, s.CommonConditions, s.CommonProcedures,
		s.SEOKeywords, s.Priority, s.Active, s.VersionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrVersionConflict
	}
	s.SetVersionID(s.GetVersionID() + 1)
	return nil
}

func (r *specialtyRepoPG) List(ctx context.Context, activeOnly bool) ([]*Specialty, error) {
	query := `SELECT ` + specialtyCols + ` FROM specialty`
	if activeOnly {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY priority DESC, name_en ASC`

	rows, err := r.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Specialty
	for rows.Next() {
		s, err := scanSpecialty(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}
