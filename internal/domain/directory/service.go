package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	doctors     DoctorRepository
	specialties SpecialtyRepository
}

func NewService(doctors DoctorRepository, specialties SpecialtyRepository) *Service {
	return &Service{doctors: doctors, specialties: specialties}
}

// -- Doctor --

var validDurations = map[int]bool{15: true, 30: true, 45: true, 60: true}

var validDoctorStatuses = map[string]bool{
	DoctorStatusPending: true, DoctorStatusVerified: true, DoctorStatusSuspended: true,
}

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if err := validateDoctor(d); err != nil {
		return err
	}
	if d.Status == "" {
		d.Status = DoctorStatusPending
	}
	if !validDoctorStatuses[d.Status] {
		return fmt.Errorf("invalid doctor status: %s", d.Status)
	}
	if err := s.fillPrimarySpecialty(ctx, d); err != nil {
		return err
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) GetDoctorByUserID(ctx context.Context, userID string) (*Doctor, error) {
	return s.doctors.GetByUserID(ctx, userID)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if err := validateDoctor(d); err != nil {
		return err
	}
	if d.Status != "" && !validDoctorStatuses[d.Status] {
		return fmt.Errorf("invalid doctor status: %s", d.Status)
	}
	if err := s.fillPrimarySpecialty(ctx, d); err != nil {
		return err
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) ListDoctors(ctx context.Context, f ListFilter, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, f, limit, offset)
}

func (s *Service) DoctorStats(ctx context.Context) (*DoctorStats, error) {
	return s.doctors.Stats(ctx)
}

// maxSearchSet caps how many verified doctors feed one in-memory search.
const maxSearchSet = 500

// SearchDoctors runs the in-memory engine over the verified directory.
// The coarse SQL filters narrow the fetched set; the engine applies the
// full stage pipeline and ordering.
func (s *Service) SearchDoctors(ctx context.Context, q Query) ([]*Doctor, error) {
	f := ListFilter{Status: DoctorStatusVerified, Specialty: q.Specialty, MaxFee: q.MaxPrice}
	candidates, _, err := s.doctors.List(ctx, f, maxSearchSet, 0)
	if err != nil {
		return nil, err
	}
	return Search(candidates, q), nil
}

func validateDoctor(d *Doctor) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(d.LicenseNumber) == "" {
		return fmt.Errorf("license_number is required")
	}
	if d.ConsultationFee < 0 {
		return fmt.Errorf("consultation_fee must not be negative")
	}
	if !validDurations[d.ConsultationDuration] {
		return fmt.Errorf("consultation_duration must be 15, 30, 45 or 60 minutes, got %d", d.ConsultationDuration)
	}
	if len(d.Languages) == 0 {
		return fmt.Errorf("at least one language is required")
	}
	for i, slot := range d.Availability {
		if slot.Active && (slot.Start == "" || slot.End == "" || slot.Start >= slot.End) {
			return fmt.Errorf("availability day %d has an invalid time window", i)
		}
	}
	return nil
}

// fillPrimarySpecialty denormalizes the first specialty's English name onto
// the doctor record so listing and search never join per request.
func (s *Service) fillPrimarySpecialty(ctx context.Context, d *Doctor) error {
	if len(d.SpecialtyIDs) == 0 {
		d.PrimarySpecialty = ""
		return nil
	}
	sp, err := s.specialties.GetByID(ctx, d.SpecialtyIDs[0])
	if err != nil {
		return fmt.Errorf("resolve primary specialty: %w", err)
	}
	d.PrimarySpecialty = sp.NameEN
	return nil
}

// -- Specialty --

var validCategories = map[string]bool{
	CategoryPrimaryCare: true, CategorySpecialty: true, CategorySurgery: true,
	CategoryDiagnostics: true, CategoryMentalHealth: true, CategoryDental: true,
}

func (s *Service) CreateSpecialty(ctx context.Context, sp *Specialty) error {
	if err := validateSpecialty(sp); err != nil {
		return err
	}
	return s.specialties.Create(ctx, sp)
}

func (s *Service) GetSpecialty(ctx context.Context, id uuid.UUID) (*Specialty, error) {
	return s.specialties.GetByID(ctx, id)
}

func (s *Service) UpdateSpecialty(ctx context.Context, sp *Specialty) error {
	if err := validateSpecialty(sp); err != nil {
		return err
	}
	return s.specialties.Update(ctx, sp)
}

func (s *Service) ListSpecialties(ctx context.Context, activeOnly bool) ([]*Specialty, error) {
	return s.specialties.List(ctx, activeOnly)
}

func validateSpecialty(sp *Specialty) error {
	if strings.TrimSpace(sp.NameEN) == "" || strings.TrimSpace(sp.NameES) == "" {
		return fmt.Errorf("name_en and name_es are required")
	}
	if !validCategories[sp.Category] {
		return fmt.Errorf("invalid specialty category: %s", sp.Category)
	}
	if sp.Priority < 1 || sp.Priority > 10 {
		return fmt.Errorf("priority must be between 1 and 10, got %d", sp.Priority)
	}
	return nil
}
