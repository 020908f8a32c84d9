package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrForbidden marks an operation the caller is not allowed to perform on
// this appointment. Handlers map it to HTTP 403.
var ErrForbidden = fmt.Errorf("not allowed for this appointment")

// ErrInvalidTransition marks a status change the graph does not allow.
// Handlers map it to HTTP 422.
type ErrInvalidTransition struct {
	From, To string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot transition appointment from %s to %s", e.From, e.To)
}

var validDurations = map[int]bool{15: true, 30: true, 45: true, 60: true}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// BookRequest is the customer-supplied slice of a new appointment. Status
// always starts at pending regardless of input.
type BookRequest struct {
	DoctorID       uuid.UUID `json:"doctorId"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	Duration       int       `json:"duration"`
	Type           string    `json:"type"`
	ReasonForVisit string    `json:"reasonForVisit"`
	PatientNotes   string    `json:"patientNotes"`
}

func (s *Service) Book(ctx context.Context, customerID string, req *BookRequest) (*Appointment, error) {
	if req.DoctorID == uuid.Nil {
		return nil, fmt.Errorf("doctor_id is required")
	}
	if !req.ScheduledAt.After(s.now()) {
		return nil, fmt.Errorf("scheduled_at must be in the future")
	}
	if !validDurations[req.Duration] {
		return nil, fmt.Errorf("duration must be 15, 30, 45 or 60 minutes, got %d", req.Duration)
	}
	if req.Type == "" {
		req.Type = TypeConsultation
	}
	if !ValidType(req.Type) {
		return nil, fmt.Errorf("invalid appointment type: %s", req.Type)
	}
	if strings.TrimSpace(req.ReasonForVisit) == "" {
		return nil, fmt.Errorf("reason_for_visit is required")
	}

	a := &Appointment{
		CustomerID:     customerID,
		DoctorID:       req.DoctorID,
		ScheduledAt:    req.ScheduledAt.UTC(),
		Duration:       req.Duration,
		Type:           req.Type,
		Status:         StatusPending,
		ReasonForVisit: strings.TrimSpace(req.ReasonForVisit),
		PatientNotes:   req.PatientNotes,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	log.Info().Str("appointment_id", a.ID.String()).Str("customer_id", customerID).
		Str("doctor_id", a.DoctorID.String()).Msg("appointment booked")
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus moves the appointment along the transition graph. force
// bypasses the graph for admin correction of mis-entered states; even
// forced, the target must name a known status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, to string, force bool) (*Appointment, error) {
	if !ValidStatus(to) {
		return nil, fmt.Errorf("unknown appointment status: %s", to)
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !force && !CanTransition(a.Status, to) {
		return nil, &ErrInvalidTransition{From: a.Status, To: to}
	}
	from := a.Status
	a.Status = to
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	log.Info().Str("appointment_id", id.String()).Str("from", from).Str("to", to).
		Bool("force", force).Msg("appointment status changed")
	return a, nil
}

// Cancel is the customer-facing path: only pending or confirmed
// appointments belonging to the caller can be cancelled.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, customerID, reason string) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.CustomerID != customerID {
		return nil, ErrForbidden
	}
	if !CanTransition(a.Status, StatusCancelled) {
		return nil, &ErrInvalidTransition{From: a.Status, To: StatusCancelled}
	}
	a.Status = StatusCancelled
	a.CancelReason = reason
	return a, s.repo.Update(ctx, a)
}

// Reschedule terminates the old appointment and books a replacement that
// points back at it.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, customerID string, newTime time.Time) (*Appointment, error) {
	old, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if old.CustomerID != customerID {
		return nil, ErrForbidden
	}
	if !CanTransition(old.Status, StatusRescheduled) {
		return nil, &ErrInvalidTransition{From: old.Status, To: StatusRescheduled}
	}
	if !newTime.After(s.now()) {
		return nil, fmt.Errorf("scheduled_at must be in the future")
	}

	old.Status = StatusRescheduled
	if err := s.repo.Update(ctx, old); err != nil {
		return nil, err
	}

	oldID := old.ID
	replacement := &Appointment{
		CustomerID:      old.CustomerID,
		DoctorID:        old.DoctorID,
		ScheduledAt:     newTime.UTC(),
		Duration:        old.Duration,
		Type:            old.Type,
		Status:          StatusPending,
		ReasonForVisit:  old.ReasonForVisit,
		PatientNotes:    old.PatientNotes,
		RescheduledFrom: &oldID,
	}
	if err := s.repo.Create(ctx, replacement); err != nil {
		return nil, err
	}
	log.Info().Str("old_id", oldID.String()).Str("new_id", replacement.ID.String()).
		Msg("appointment rescheduled")
	return replacement, nil
}

// UpdateClinical applies a partial clinical edit. Only the appointment's
// doctor may write the record, and only once the visit has started.
func (s *Service) UpdateClinical(ctx context.Context, id, doctorID uuid.UUID, u *ClinicalUpdate) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.DoctorID != doctorID {
		return nil, ErrForbidden
	}
	switch a.Status {
	case StatusInProgress, StatusCompleted:
	default:
		return nil, fmt.Errorf("clinical record is editable only during or after the visit, status is %s", a.Status)
	}
	if err := ApplyClinicalUpdate(a, u); err != nil {
		return nil, err
	}
	return a, s.repo.Update(ctx, a)
}

// CustomerSchedule is the customer dashboard split: upcoming holds future,
// non-terminal appointments ordered soonest first; everything else is
// history.
type CustomerSchedule struct {
	Upcoming []*Appointment `json:"upcoming"`
	History  []*Appointment `json:"history"`
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string, limit, offset int) (*CustomerSchedule, error) {
	items, _, err := s.repo.List(ctx, ListFilter{CustomerID: customerID}, limit, offset)
	if err != nil {
		return nil, err
	}
	now := s.now()
	sched := &CustomerSchedule{Upcoming: []*Appointment{}, History: []*Appointment{}}
	for _, a := range items {
		if a.IsUpcoming(now) {
			sched.Upcoming = append(sched.Upcoming, a)
		} else {
			sched.History = append(sched.History, a)
		}
	}
	return sched, nil
}

// CustomerHistory lists the customer's past and terminal appointments,
// optionally narrowed to one exact status. Empty or "all" disables the
// status filter.
func (s *Service) CustomerHistory(ctx context.Context, customerID, status string, limit, offset int) ([]*Appointment, error) {
	f := ListFilter{CustomerID: customerID}
	if status != "" && status != "all" {
		if !ValidStatus(status) {
			return nil, fmt.Errorf("unknown appointment status: %s", status)
		}
		f.Status = status
	}
	items, _, err := s.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	now := s.now()
	history := []*Appointment{}
	for _, a := range items {
		if !a.IsUpcoming(now) {
			history = append(history, a)
		}
	}
	return history, nil
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	f.DoctorID = doctorID
	return s.repo.List(ctx, f, limit, offset)
}

func (s *Service) StatsOverview(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}
