package customer

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Address is the customer's mailing address, stored as JSONB.
type Address struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// EmergencyContact is who to call when the patient cannot answer.
type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// MedicalInfo carries the patient's standing medical background.
type MedicalInfo struct {
	BloodType          string   `json:"bloodType,omitempty"`
	Allergies          []string `json:"allergies,omitempty"`
	ChronicConditions  []string `json:"chronicConditions,omitempty"`
	CurrentMedications []string `json:"currentMedications,omitempty"`
	Insurance          string   `json:"insurance,omitempty"`
}

// NotificationPreferences controls which channels the customer hears on.
type NotificationPreferences struct {
	Email     bool `json:"email"`
	SMS       bool `json:"sms"`
	Reminders bool `json:"reminders"`
}

// Customer is a patient profile keyed by the identity provider's user ID.
type Customer struct {
	ID     uuid.UUID `db:"id" json:"id"`
	UserID string    `db:"user_id" json:"userId"`

	Name        string `db:"name" json:"name"`
	DateOfBirth string `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	Gender      string `db:"gender" json:"gender,omitempty"`
	PhoneNumber string `db:"phone_number" json:"phoneNumber,omitempty"`

	Address          Address                 `db:"address" json:"address"`
	EmergencyContact EmergencyContact        `db:"emergency_contact" json:"emergencyContact"`
	MedicalInfo      MedicalInfo             `db:"medical_info" json:"medicalInfo"`
	Notifications    NotificationPreferences `db:"notifications" json:"notificationPreferences"`

	Favorites []uuid.UUID `db:"favorites" json:"favorites"`
	Active    bool        `db:"active" json:"active"`

	VersionID int       `db:"version_id" json:"versionId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (c *Customer) GetVersionID() int  { return c.VersionID }
func (c *Customer) SetVersionID(v int) { c.VersionID = v }

// completenessFields is the fixed checklist the score is computed over.
func (c *Customer) completenessFields() []string {
	return []string{
		c.DateOfBirth,
		c.Gender,
		c.PhoneNumber,
		c.Address.Street,
		c.EmergencyContact.Name,
		c.MedicalInfo.BloodType,
	}
}

// CompletenessScore returns the profile completeness as a whole percent.
// A field counts only when it is non-blank after trimming whitespace.
func CompletenessScore(c *Customer) int {
	fields := c.completenessFields()
	filled := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			filled++
		}
	}
	return int(math.Round(100 * float64(filled) / float64(len(fields))))
}
