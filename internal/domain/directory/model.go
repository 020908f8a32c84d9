package directory

import (
	"time"

	"github.com/google/uuid"
)

// Doctor statuses. Only verified doctors surface in patient-facing search.
const (
	DoctorStatusPending   = "pending"
	DoctorStatusVerified  = "verified"
	DoctorStatusSuspended = "suspended"
)

// Rating is the aggregate review score for a doctor.
type Rating struct {
	Average float64 `db:"rating_average" json:"average"`
	Count   int     `db:"rating_count" json:"count"`
}

type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// DaySlot is one day of the weekly availability grid. Times are "HH:MM"
// in the practice's local time.
type DaySlot struct {
	Active bool   `json:"active"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// Doctor maps to the doctor table. PrimarySpecialty is denormalized from the
// first entry of SpecialtyIDs so search never needs a join per keystroke.
type Doctor struct {
	ID                   uuid.UUID   `db:"id" json:"id"`
	UserID               string      `db:"user_id" json:"user_id"`
	Name                 string      `db:"name" json:"name"`
	LicenseNumber        string      `db:"license_number" json:"license_number"`
	SpecialtyIDs         []uuid.UUID `db:"specialty_ids" json:"specialty_ids"`
	PrimarySpecialty     string      `db:"primary_specialty" json:"primary_specialty"`
	ConsultationFee      int         `db:"consultation_fee" json:"consultation_fee"`
	ConsultationDuration int         `db:"consultation_duration" json:"consultation_duration"`
	Languages            []string    `db:"languages" json:"languages"`
	Address              Address     `db:"address" json:"address"`
	Availability         [7]DaySlot  `db:"availability" json:"availability"`
	InsuranceAccepted    []string    `db:"insurance_accepted" json:"insurance_accepted"`
	EmergencyAvailable   bool        `db:"emergency_available" json:"emergency_available"`
	YearsExperience      int         `db:"years_experience" json:"years_experience"`
	Rating               Rating      `json:"rating"`
	Status               string      `db:"status" json:"status"`
	VersionID            int         `db:"version_id" json:"version_id"`
	CreatedAt            time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time   `db:"updated_at" json:"updated_at"`
}

// GetVersionID returns the current version.
func (d *Doctor) GetVersionID() int { return d.VersionID }

// SetVersionID sets the current version.
func (d *Doctor) SetVersionID(v int) { d.VersionID = v }

// Specialty categories (closed enum).
const (
	CategoryPrimaryCare  = "primary_care"
	CategorySpecialty    = "specialty_care"
	CategorySurgery      = "surgery"
	CategoryDiagnostics  = "diagnostics"
	CategoryMentalHealth = "mental_health"
	CategoryDental       = "dental"
)

// Specialty maps to the specialty table. Names and descriptions are held in
// both English and Spanish; Priority (1-10, higher first) controls listing
// order.
type Specialty struct {
	ID               uuid.UUID `db:"id" json:"id"`
	NameEN           string    `db:"name_en" json:"name_en"`
	NameES           string    `db:"name_es" json:"name_es"`
	DescriptionEN    string    `db:"description_en" json:"description_en"`
	DescriptionES    string    `db:"description_es" json:"description_es"`
	Icon             string    `db:"icon" json:"icon"`
	Category         string    `db:"category" json:"category"`
	CommonConditions []string  `db:"common_conditions" json:"common_conditions"`
	CommonProcedures []string  `db:"common_procedures" json:"common_procedures"`
	SEOKeywords      []string  `db:"seo_keywords" json:"seo_keywords"`
	Priority         int       `db:"priority" json:"priority"`
	Active           bool      `db:"active" json:"active"`
	VersionID        int       `db:"version_id" json:"version_id"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// GetVersionID returns the current version.
func (s *Specialty) GetVersionID() int { return s.VersionID }

// SetVersionID sets the current version.
func (s *Specialty) SetVersionID(v int) { s.VersionID = v }

// DoctorStats is the aggregate payload for the stats overview endpoint.
type DoctorStats struct {
	Total         int     `json:"total"`
	Verified      int     `json:"verified"`
	Pending       int     `json:"pending"`
	AverageRating float64 `json:"average_rating"`
}
