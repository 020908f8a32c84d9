package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	StatusPending     = "pending"
	StatusConfirmed   = "confirmed"
	StatusInProgress  = "in_progress"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusNoShow      = "no_show"
	StatusRescheduled = "rescheduled"
)

// Appointment types.
const (
	TypeConsultation = "consultation"
	TypeFollowUp     = "follow_up"
	TypeEmergency    = "emergency"
	TypePreventive   = "preventive"
	TypeProcedure    = "procedure"
	TypeTelemedicine = "telemedicine"
)

// transitions is the allowed status graph. Completed, cancelled, no_show
// and rescheduled are terminal; a rescheduled appointment is replaced by a
// new record that points back via RescheduledFrom.
var transitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled, StatusRescheduled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow, StatusRescheduled},
	StatusInProgress: {StatusCompleted},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status string) bool {
	return len(transitions[status]) == 0 && ValidStatus(status)
}

// ValidStatus reports whether the value is a known appointment status.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// ValidType reports whether the value is a known appointment type.
func ValidType(t string) bool {
	switch t {
	case TypeConsultation, TypeFollowUp, TypeEmergency, TypePreventive,
		TypeProcedure, TypeTelemedicine:
		return true
	}
	return false
}

// VitalSigns captures measurements taken during a visit. All fields are
// optional; merges happen per field.
type VitalSigns struct {
	BloodPressure string  `json:"bloodPressure,omitempty"`
	HeartRate     int     `json:"heartRate,omitempty"`
	Temperature   float64 `json:"temperature,omitempty"`
	Weight        float64 `json:"weight,omitempty"`
	Height        float64 `json:"height,omitempty"`
}

// Prescription is one medication line on the clinical record.
type Prescription struct {
	Medication string `json:"medication"`
	Dosage     string `json:"dosage,omitempty"`
	Frequency  string `json:"frequency,omitempty"`
	Duration   string `json:"duration,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Appointment is a scheduled visit between a customer and a doctor,
// carrying the clinical record filled in by the doctor during and after
// the visit.
type Appointment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CustomerID string    `db:"customer_id" json:"customerId"`
	DoctorID   uuid.UUID `db:"doctor_id" json:"doctorId"`

	ScheduledAt time.Time `db:"scheduled_at" json:"scheduledAt"`
	Duration    int       `db:"duration" json:"duration"`
	Type        string    `db:"type" json:"type"`
	Status      string    `db:"status" json:"status"`

	ReasonForVisit string `db:"reason_for_visit" json:"reasonForVisit,omitempty"`
	PatientNotes   string `db:"patient_notes" json:"patientNotes,omitempty"`

	// Clinical record, doctor-editable only.
	Diagnosis     string         `db:"diagnosis" json:"diagnosis,omitempty"`
	DoctorNotes   string         `db:"doctor_notes" json:"doctorNotes,omitempty"`
	VitalSigns    *VitalSigns    `db:"vital_signs" json:"vitalSigns,omitempty"`
	Prescriptions []Prescription `db:"prescriptions" json:"prescriptions,omitempty"`

	FollowUpRequired bool       `db:"follow_up_required" json:"followUpRequired"`
	FollowUpDate     *time.Time `db:"follow_up_date" json:"followUpDate,omitempty"`

	RescheduledFrom *uuid.UUID `db:"rescheduled_from" json:"rescheduledFrom,omitempty"`
	CancelReason    string     `db:"cancel_reason" json:"cancelReason,omitempty"`

	VersionID int       `db:"version_id" json:"versionId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (a *Appointment) GetVersionID() int  { return a.VersionID }
func (a *Appointment) SetVersionID(v int) { a.VersionID = v }

// IsUpcoming reports whether the appointment has not reached a terminal
// status and is scheduled at or after now. An appointment starting exactly
// now still counts as upcoming.
func (a *Appointment) IsUpcoming(now time.Time) bool {
	return !a.ScheduledAt.Before(now) && !IsTerminal(a.Status)
}

// Stats aggregates appointment counts for the admin overview.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	NoShow    int `json:"noShow"`
	Today     int `json:"today"`
}
