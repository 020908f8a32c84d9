package appointment

import (
	"fmt"
	"time"
)

// PrescriptionOp mutates the prescription list. Exactly one of the
// operations applies: Append adds a new line, Update merges non-empty
// fields into the line at Index, Remove deletes the line at Index.
type PrescriptionOp struct {
	Op           string        `json:"op"` // "append", "update", "remove"
	Index        int           `json:"index,omitempty"`
	Prescription *Prescription `json:"prescription,omitempty"`
}

// ClinicalUpdate is a partial edit to the clinical record. Nil pointers
// leave the existing value untouched; non-nil pointers overwrite, including
// overwriting with the empty string.
type ClinicalUpdate struct {
	Diagnosis     *string          `json:"diagnosis,omitempty"`
	DoctorNotes   *string          `json:"doctorNotes,omitempty"`
	VitalSigns    *VitalSigns      `json:"vitalSigns,omitempty"`
	Prescriptions []PrescriptionOp `json:"prescriptions,omitempty"`

	FollowUpRequired *bool      `json:"followUpRequired,omitempty"`
	FollowUpDate     *time.Time `json:"followUpDate,omitempty"`
}

// ApplyClinicalUpdate merges the update into the appointment's clinical
// record. Vital signs merge per sub-field (zero values in the update keep
// the stored reading). Prescription order is preserved across operations.
// Clearing followUpRequired also clears followUpDate.
func ApplyClinicalUpdate(a *Appointment, u *ClinicalUpdate) error {
	if u.Diagnosis != nil {
		a.Diagnosis = *u.Diagnosis
	}
	if u.DoctorNotes != nil {
		a.DoctorNotes = *u.DoctorNotes
	}
	if u.VitalSigns != nil {
		a.VitalSigns = mergeVitals(a.VitalSigns, u.VitalSigns)
	}
	for _, op := range u.Prescriptions {
		if err := applyPrescriptionOp(a, op); err != nil {
			return err
		}
	}
	if u.FollowUpRequired != nil {
		a.FollowUpRequired = *u.FollowUpRequired
		if !a.FollowUpRequired {
			a.FollowUpDate = nil
		}
	}
	if u.FollowUpDate != nil {
		if !a.FollowUpRequired {
			return fmt.Errorf("follow_up_date requires follow_up_required")
		}
		d := *u.FollowUpDate
		a.FollowUpDate = &d
	}
	return nil
}

func mergeVitals(current, update *VitalSigns) *VitalSigns {
	merged := VitalSigns{}
	if current != nil {
		merged = *current
	}
	if update.BloodPressure != "" {
		merged.BloodPressure = update.BloodPressure
	}
	if update.HeartRate != 0 {
		merged.HeartRate = update.HeartRate
	}
	if update.Temperature != 0 {
		merged.Temperature = update.Temperature
	}
	if update.Weight != 0 {
		merged.Weight = update.Weight
	}
	if update.Height != 0 {
		merged.Height = update.Height
	}
	return &merged
}

func applyPrescriptionOp(a *Appointment, op PrescriptionOp) error {
	switch op.Op {
	case "append":
		if op.Prescription == nil || op.Prescription.Medication == "" {
			return fmt.Errorf("prescription append requires a medication")
		}
		a.Prescriptions = append(a.Prescriptions, *op.Prescription)
	case "update":
		if op.Index < 0 || op.Index >= len(a.Prescriptions) {
			return fmt.Errorf("prescription index %d out of range", op.Index)
		}
		if op.Prescription == nil {
			return fmt.Errorf("prescription update requires a body")
		}
		mergePrescription(&a.Prescriptions[op.Index], op.Prescription)
	case "remove":
		if op.Index < 0 || op.Index >= len(a.Prescriptions) {
			return fmt.Errorf("prescription index %d out of range", op.Index)
		}
		a.Prescriptions = append(a.Prescriptions[:op.Index], a.Prescriptions[op.Index+1:]...)
	default:
		return fmt.Errorf("unknown prescription op: %s", op.Op)
	}
	return nil
}

func mergePrescription(current, update *Prescription) {
	if update.Medication != "" {
		current.Medication = update.Medication
	}
	if update.Dosage != "" {
		current.Dosage = update.Dosage
	}
	if update.Frequency != "" {
		current.Frequency = update.Frequency
	}
	if update.Duration != "" {
		current.Duration = update.Duration
	}
	if update.Notes != "" {
		current.Notes = update.Notes
	}
}
