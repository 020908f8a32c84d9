package directory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repositories --

type mockDoctorRepo struct {
	doctors map[uuid.UUID]*Doctor
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockDoctorRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = uuid.New()
	d.VersionID = 1
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()
	m.doctors[d.ID] = d
	return nil
}

func (m *mockDoctorRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return d, nil
}

func (m *mockDoctorRepo) GetByUserID(_ context.Context, userID string) (*Doctor, error) {
	for _, d := range m.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockDoctorRepo) Update(_ context.Context, d *Doctor) error {
	m.doctors[d.ID] = d
	return nil
}

func (m *mockDoctorRepo) List(_ context.Context, f ListFilter, limit, offset int) ([]*Doctor, int, error) {
	var result []*Doctor
	for _, d := range m.doctors {
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		result = append(result, d)
	}
	return result, len(result), nil
}

func (m *mockDoctorRepo) Stats(_ context.Context) (*DoctorStats, error) {
	s := &DoctorStats{Total: len(m.doctors)}
	for _, d := range m.doctors {
		if d.Status == DoctorStatusVerified {
			s.Verified++
		}
		if d.Status == DoctorStatusPending {
			s.Pending++
		}
	}
	return s, nil
}

type mockSpecialtyRepo struct {
	specialties map[uuid.UUID]*Specialty
}

func newMockSpecialtyRepo() *mockSpecialtyRepo {
	return &mockSpecialtyRepo{specialties: make(map[uuid.UUID]*Specialty)}
}

func (m *mockSpecialtyRepo) Create(_ context.Context, s *Specialty) error {
	s.ID = uuid.New()
	s.VersionID = 1
	m.specialties[s.ID] = s
	return nil
}

func (m *mockSpecialtyRepo) GetByID(_ context.Context, id uuid.UUID) (*Specialty, error) {
	s, ok := m.specialties[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return s, nil
}

func (m *mockSpecialtyRepo) Update(_ context.Context, s *Specialty) error {
	m.specialties[s.ID] = s
	return nil
}

func (m *mockSpecialtyRepo) List(_ context.Context, activeOnly bool) ([]*Specialty, error) {
	var result []*Specialty
	for _, s := range m.specialties {
		if activeOnly && !s.Active {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func newTestService(t *testing.T) (*Service, *mockSpecialtyRepo) {
	t.Helper()
	spRepo := newMockSpecialtyRepo()
	return NewService(newMockDoctorRepo(), spRepo), spRepo
}

func validTestDoctor() *Doctor {
	return &Doctor{
		UserID:               "auth0|doc1",
		Name:                 "Ana García",
		LicenseNumber:        "LIC-12345",
		ConsultationFee:      800,
		ConsultationDuration: 30,
		Languages:            []string{"es", "en"},
	}
}

// -- Tests --

func TestCreateDoctor_Defaults(t *testing.T) {
	svc, _ := newTestService(t)

	d := validTestDoctor()
	if err := svc.CreateDoctor(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != DoctorStatusPending {
		t.Errorf("expected default status pending, got %s", d.Status)
	}
}

func TestCreateDoctor_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name   string
		mutate func(*Doctor)
	}{
		{"missing name", func(d *Doctor) { d.Name = "  " }},
		{"missing license", func(d *Doctor) { d.LicenseNumber = "" }},
		{"negative fee", func(d *Doctor) { d.ConsultationFee = -1 }},
		{"bad duration", func(d *Doctor) { d.ConsultationDuration = 20 }},
		{"no languages", func(d *Doctor) { d.Languages = nil }},
		{"bad status", func(d *Doctor) { d.Status = "ghost" }},
		{"active day without window", func(d *Doctor) { d.Availability[2] = DaySlot{Active: true} }},
		{"inverted window", func(d *Doctor) { d.Availability[0] = DaySlot{Active: true, Start: "18:00", End: "09:00"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validTestDoctor()
			tt.mutate(d)
			if err := svc.CreateDoctor(context.Background(), d); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCreateDoctor_DenormalizesPrimarySpecialty(t *testing.T) {
	svc, spRepo := newTestService(t)

	sp := &Specialty{NameEN: "Cardiology", NameES: "Cardiología", Category: CategorySpecialty, Priority: 9, Active: true}
	if err := spRepo.Create(context.Background(), sp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d := validTestDoctor()
	d.SpecialtyIDs = []uuid.UUID{sp.ID}
	if err := svc.CreateDoctor(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.PrimarySpecialty != "Cardiology" {
		t.Errorf("expected primary specialty Cardiology, got %q", d.PrimarySpecialty)
	}
}

func TestCreateDoctor_UnknownSpecialty(t *testing.T) {
	svc, _ := newTestService(t)

	d := validTestDoctor()
	d.SpecialtyIDs = []uuid.UUID{uuid.New()}
	if err := svc.CreateDoctor(context.Background(), d); err == nil {
		t.Error("expected error for unknown specialty reference")
	}
}

func TestCreateSpecialty_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name    string
		sp      Specialty
		wantErr bool
	}{
		{"valid", Specialty{NameEN: "Dentistry", NameES: "Odontología", Category: CategoryDental, Priority: 5}, false},
		{"missing spanish name", Specialty{NameEN: "Dentistry", Category: CategoryDental, Priority: 5}, true},
		{"bad category", Specialty{NameEN: "X", NameES: "X", Category: "astrology", Priority: 5}, true},
		{"priority too low", Specialty{NameEN: "X", NameES: "X", Category: CategoryDental, Priority: 0}, true},
		{"priority too high", Specialty{NameEN: "X", NameES: "X", Category: CategoryDental, Priority: 11}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := tt.sp
			err := svc.CreateSpecialty(context.Background(), &sp)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateSpecialty() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSearchDoctors_OnlyVerified(t *testing.T) {
	svc, _ := newTestService(t)

	verified := validTestDoctor()
	verified.Status = DoctorStatusVerified
	if err := svc.CreateDoctor(context.Background(), verified); err != nil {
		t.Fatal(err)
	}
	pending := validTestDoctor()
	pending.UserID = "auth0|doc2"
	pending.Name = "Luis Pérez"
	if err := svc.CreateDoctor(context.Background(), pending); err != nil {
		t.Fatal(err)
	}

	got, err := svc.SearchDoctors(context.Background(), Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ana García" {
		t.Errorf("search must only see verified doctors, got %v", got)
	}
}

func TestDoctorStats(t *testing.T) {
	svc, _ := newTestService(t)

	for _, status := range []string{DoctorStatusVerified, DoctorStatusVerified, DoctorStatusPending} {
		d := validTestDoctor()
		d.Status = status
		if err := svc.CreateDoctor(context.Background(), d); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	stats, err := svc.DoctorStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 3 || stats.Verified != 2 || stats.Pending != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
