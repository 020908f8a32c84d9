package appointment

import (
	"testing"
	"time"
)

func strPtr(s string) *string        { return &s }
func boolPtr(b bool) *bool           { return &b }
func timePtr(t time.Time) *time.Time { return &t }

func TestApplyClinicalUpdate_NilFieldsLeaveValues(t *testing.T) {
	a := &Appointment{Diagnosis: "hypertension", DoctorNotes: "monitor weekly"}

	if err := ApplyClinicalUpdate(a, &ClinicalUpdate{DoctorNotes: strPtr("monitor daily")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Diagnosis != "hypertension" {
		t.Errorf("diagnosis must survive an update that omits it, got %q", a.Diagnosis)
	}
	if a.DoctorNotes != "monitor daily" {
		t.Errorf("doctor notes = %q, want %q", a.DoctorNotes, "monitor daily")
	}
}

func TestApplyClinicalUpdate_ExplicitEmptyOverwrites(t *testing.T) {
	a := &Appointment{Diagnosis: "hypertension"}

	if err := ApplyClinicalUpdate(a, &ClinicalUpdate{Diagnosis: strPtr("")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Diagnosis != "" {
		t.Errorf("explicit empty string must clear the diagnosis, got %q", a.Diagnosis)
	}
}

func TestApplyClinicalUpdate_VitalsMergePerField(t *testing.T) {
	a := &Appointment{VitalSigns: &VitalSigns{BloodPressure: "120/80", HeartRate: 72}}

	u := &ClinicalUpdate{VitalSigns: &VitalSigns{Temperature: 37.2, HeartRate: 80}}
	if err := ApplyClinicalUpdate(a, u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.VitalSigns.BloodPressure != "120/80" {
		t.Errorf("blood pressure must survive a partial vitals update, got %q", a.VitalSigns.BloodPressure)
	}
	if a.VitalSigns.HeartRate != 80 {
		t.Errorf("heart rate = %d, want 80", a.VitalSigns.HeartRate)
	}
	if a.VitalSigns.Temperature != 37.2 {
		t.Errorf("temperature = %v, want 37.2", a.VitalSigns.Temperature)
	}
}

func TestApplyClinicalUpdate_VitalsOnEmptyRecord(t *testing.T) {
	a := &Appointment{}
	if err := ApplyClinicalUpdate(a, &ClinicalUpdate{VitalSigns: &VitalSigns{HeartRate: 65}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.VitalSigns == nil || a.VitalSigns.HeartRate != 65 {
		t.Errorf("vitals = %+v, want heart rate 65", a.VitalSigns)
	}
}

func TestApplyClinicalUpdate_Prescriptions(t *testing.T) {
	a := &Appointment{Prescriptions: []Prescription{
		{Medication: "lisinopril", Dosage: "10mg"},
		{Medication: "metformin", Dosage: "500mg"},
	}}

	u := &ClinicalUpdate{Prescriptions: []PrescriptionOp{
		{Op: "append", Prescription: &Prescription{Medication: "aspirin", Dosage: "81mg"}},
		{Op: "update", Index: 0, Prescription: &Prescription{Dosage: "20mg"}},
		{Op: "remove", Index: 1},
	}}
	if err := ApplyClinicalUpdate(a, u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a.Prescriptions) != 2 {
		t.Fatalf("expected 2 prescriptions, got %d", len(a.Prescriptions))
	}
	if a.Prescriptions[0].Medication != "lisinopril" || a.Prescriptions[0].Dosage != "20mg" {
		t.Errorf("index 0 = %+v, want lisinopril 20mg", a.Prescriptions[0])
	}
	// metformin removed, appended aspirin keeps its position after it
	if a.Prescriptions[1].Medication != "aspirin" {
		t.Errorf("index 1 = %+v, want aspirin", a.Prescriptions[1])
	}
}

func TestApplyClinicalUpdate_PrescriptionErrors(t *testing.T) {
	tests := []struct {
		name string
		op   PrescriptionOp
	}{
		{"append without medication", PrescriptionOp{Op: "append", Prescription: &Prescription{}}},
		{"append without body", PrescriptionOp{Op: "append"}},
		{"update out of range", PrescriptionOp{Op: "update", Index: 5, Prescription: &Prescription{Dosage: "1mg"}}},
		{"remove negative index", PrescriptionOp{Op: "remove", Index: -1}},
		{"unknown op", PrescriptionOp{Op: "replace", Index: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{Prescriptions: []Prescription{{Medication: "x"}}}
			if err := ApplyClinicalUpdate(a, &ClinicalUpdate{Prescriptions: []PrescriptionOp{tt.op}}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestApplyClinicalUpdate_FollowUp(t *testing.T) {
	due := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	a := &Appointment{}
	u := &ClinicalUpdate{FollowUpRequired: boolPtr(true), FollowUpDate: timePtr(due)}
	if err := ApplyClinicalUpdate(a, u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.FollowUpRequired || a.FollowUpDate == nil || !a.FollowUpDate.Equal(due) {
		t.Fatalf("follow-up not applied: required=%v date=%v", a.FollowUpRequired, a.FollowUpDate)
	}

	// clearing the flag clears the date too
	if err := ApplyClinicalUpdate(a, &ClinicalUpdate{FollowUpRequired: boolPtr(false)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.FollowUpRequired || a.FollowUpDate != nil {
		t.Errorf("clearing follow-up must null the date: required=%v date=%v", a.FollowUpRequired, a.FollowUpDate)
	}

	// a date without the flag is rejected
	if err := ApplyClinicalUpdate(a, &ClinicalUpdate{FollowUpDate: timePtr(due)}); err == nil {
		t.Error("expected error for follow-up date without the flag")
	}
}
