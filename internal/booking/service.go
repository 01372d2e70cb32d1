package booking

import (
	"context"
	"errors"
	"time"

	"github.com/veloria-studio/session-booking-backend/internal/auth"
	"github.com/veloria-studio/session-booking-backend/internal/availability"
	"github.com/veloria-studio/session-booking-backend/internal/professional"
)

// Policy holds the scheduling rules that are deployment-tunable. Booking
// hours are evaluated in the start time's own location: the lower bound is
// inclusive, the upper bound exclusive, so with 9 and 22 a session may start
// at 09:00 but not at 22:00.
type Policy struct {
	HorizonDays  int
	HourStart    int
	HourEnd      int
	CancelCutoff time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		HorizonDays:  90,
		HourStart:    9,
		HourEnd:      22,
		CancelCutoff: 24 * time.Hour,
	}
}

// Actor identifies who is performing a booking operation. ProfileID is the
// artist or professional profile matching the role, resolved before the call.
// ProfileName is the profile's public label: stage name for artists, display
// name for professionals.
type Actor struct {
	UserID      string
	Role        auth.Role
	ProfileID   string
	ProfileName string
}

type CreateRequest struct {
	ProfessionalID      string
	SessionType         SessionType
	StartTime           time.Time
	DurationHours       int
	Location            string
	Notes               string
	SpecialRequirements string
}

type RescheduleRequest struct {
	StartTime     *time.Time
	DurationHours *int
}

type Service interface {
	Create(ctx context.Context, actor Actor, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, actor Actor, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, to Status) (*Booking, error)
	Reschedule(ctx context.Context, actor Actor, id string, req RescheduleRequest) (*Booking, error)

	// CheckConflict runs the overlap check without reserving anything.
	// A nil Conflict means the interval is free. excludeBookingID is used
	// when probing a reschedule of an existing booking.
	CheckConflict(ctx context.Context, professionalID string, start, end time.Time, excludeBookingID string) (*Conflict, error)

	// FreeSlots returns the professional's open slots on the given date,
	// derived from their availability windows minus active bookings.
	FreeSlots(ctx context.Context, professionalID string, date time.Time) ([]TimeSlot, error)

	// CompleteElapsed marks confirmed bookings whose interval has passed as
	// completed. Returns the number of bookings transitioned.
	CompleteElapsed(ctx context.Context) (int, error)
}

type service struct {
	repo         Repository
	proService   professional.Service
	availService availability.Service
	notifier     Notifier
	policy       Policy
	now          func() time.Time
}

func NewService(repo Repository, proService professional.Service, availService availability.Service, notifier Notifier, policy Policy) Service {
	return &service{
		repo:         repo,
		proService:   proService,
		availService: availService,
		notifier:     notifier,
		policy:       policy,
		now:          time.Now,
	}
}

// validateStart applies the temporal rules shared by create and reschedule.
func (s *service) validateStart(start time.Time) error {
	now := s.now()
	// Strictly in the future; a start at the current instant is too late.
	if !start.After(now) {
		return ErrPastDate
	}
	if start.After(now.AddDate(0, 0, s.policy.HorizonDays)) {
		return ErrTooFarInFuture
	}
	if h := start.Hour(); h < s.policy.HourStart || h >= s.policy.HourEnd {
		return ErrOutsideBookingHours
	}
	return nil
}

// findConflict scans active bookings near the candidate interval. The scan
// starts conflictLookback before the candidate: no booking lasts longer than
// that, so earlier ones cannot reach it.
func (s *service) findConflict(ctx context.Context, professionalID string, start, end time.Time, excludeBookingID string) (*Conflict, error) {
	existing, err := s.repo.ListActiveBetween(ctx, professionalID, start.Add(-conflictLookback), end, excludeBookingID)
	if err != nil {
		return nil, err
	}
	return findOverlap(start, end, existing), nil
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateRequest) (*Booking, error) {
	if actor.Role != auth.RoleArtist || actor.ProfileID == "" {
		return nil, ErrUnauthorized
	}
	if !ValidSessionType(req.SessionType) {
		return nil, ErrInvalidSessionType
	}
	if req.DurationHours < FormDurationMin || req.DurationHours > FormDurationMax {
		return nil, ErrDurationOutOfRange
	}
	if err := s.validateStart(req.StartTime); err != nil {
		return nil, err
	}

	pro, err := s.proService.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, professional.ErrNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}
	if !pro.IsActive || !pro.IsAvailable {
		return nil, ErrProfessionalUnavailable
	}

	end := req.StartTime.Add(time.Duration(req.DurationHours) * time.Hour)
	conflict, err := s.findConflict(ctx, req.ProfessionalID, req.StartTime, end, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, newConflictError(conflict)
	}

	b := &Booking{
		ArtistID:            actor.ProfileID,
		ArtistStageName:     actor.ProfileName,
		ProfessionalID:      req.ProfessionalID,
		ProfessionalName:    pro.DisplayName,
		SessionType:         req.SessionType,
		StartTime:           req.StartTime,
		DurationHours:       req.DurationHours,
		Status:              StatusPending,
		TotalCost:           CalculateCost(pro.HourlyRate, req.DurationHours),
		Location:            req.Location,
		Notes:               req.Notes,
		SpecialRequirements: req.SpecialRequirements,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.notifier.ReservationCreated(ctx, b)
	return b, nil
}

// participant reports whether the actor is a party to the booking.
func participant(actor Actor, b *Booking) bool {
	switch actor.Role {
	case auth.RoleArtist:
		return actor.ProfileID == b.ArtistID
	case auth.RoleProfessional:
		return actor.ProfileID == b.ProfessionalID
	}
	return false
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !participant(actor, b) {
		return nil, ErrUnauthorized
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, actor Actor, id string, to Status) (*Booking, error) {
	if !ValidStatus(to) {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !participant(actor, b) {
		return nil, ErrUnauthorized
	}

	from := b.Status
	if !CanTransition(from, to) {
		return nil, ErrInvalidTransition
	}

	switch to {
	case StatusConfirmed:
		// Only the booked professional accepts a request.
		if actor.Role != auth.RoleProfessional {
			return nil, ErrUnauthorized
		}
	case StatusCompleted:
		if actor.Role != auth.RoleProfessional {
			return nil, ErrUnauthorized
		}
		if s.now().Before(b.EndTime()) {
			return nil, ErrInvalidTransition
		}
	case StatusCancelled:
		// The requesting artist may withdraw a pending booking any time,
		// but a confirmed one only up to the cancellation cutoff. The
		// professional may cancel until the booking is terminal.
		if actor.Role == auth.RoleArtist && from == StatusConfirmed {
			if s.now().After(b.StartTime.Add(-s.policy.CancelCutoff)) {
				return nil, ErrCancelWindowClosed
			}
		}
	}

	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	b.Status = to

	s.notifier.ReservationStatusChanged(ctx, b, from, to)
	return b, nil
}

func (s *service) Reschedule(ctx context.Context, actor Actor, id string, req RescheduleRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != auth.RoleArtist || actor.ProfileID != b.ArtistID {
		return nil, ErrUnauthorized
	}
	if b.Status != StatusPending {
		return nil, ErrInvalidTransition
	}

	changed := false
	if req.StartTime != nil {
		b.StartTime = *req.StartTime
		changed = true
	}
	if req.DurationHours != nil {
		if *req.DurationHours < FormDurationMin || *req.DurationHours > FormDurationMax {
			return nil, ErrDurationOutOfRange
		}
		b.DurationHours = *req.DurationHours
		changed = true
	}
	if !changed {
		return b, nil
	}

	if err := s.validateStart(b.StartTime); err != nil {
		return nil, err
	}

	conflict, err := s.findConflict(ctx, b.ProfessionalID, b.StartTime, b.EndTime(), b.ID)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, newConflictError(conflict)
	}

	if b.TotalCost == nil {
		pro, err := s.proService.GetByID(ctx, b.ProfessionalID)
		if err == nil {
			b.TotalCost = CalculateCost(pro.HourlyRate, b.DurationHours)
		}
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) CheckConflict(ctx context.Context, professionalID string, start, end time.Time, excludeBookingID string) (*Conflict, error) {
	if !end.After(start) {
		return nil, ErrDurationOutOfRange
	}
	return s.findConflict(ctx, professionalID, start, end, excludeBookingID)
}

func (s *service) FreeSlots(ctx context.Context, professionalID string, date time.Time) ([]TimeSlot, error) {
	windows, err := s.availService.IntervalsOn(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := s.repo.ListActiveBetween(ctx, professionalID, dayStart.Add(-conflictLookback), dayEnd, "")
	if err != nil {
		return nil, err
	}
	return FreeSlots(windows, bookings), nil
}

func (s *service) CompleteElapsed(ctx context.Context) (int, error) {
	elapsed, err := s.repo.ListConfirmedEndedBefore(ctx, s.now())
	if err != nil {
		return 0, err
	}

	count := 0
	for _, b := range elapsed {
		if err := s.repo.UpdateStatus(ctx, b.ID, StatusCompleted); err != nil {
			return count, err
		}
		b.Status = StatusCompleted
		s.notifier.ReservationStatusChanged(ctx, b, StatusConfirmed, StatusCompleted)
		count++
	}
	return count, nil
}
