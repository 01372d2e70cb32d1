package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloria-studio/session-booking-backend/internal/auth"
	"github.com/veloria-studio/session-booking-backend/internal/availability"
	"github.com/veloria-studio/session-booking-backend/internal/pkg/apperror"
	"github.com/veloria-studio/session-booking-backend/internal/professional"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	bookings map[string]*Booking
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]*Booking)}
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	r.nextID++
	b.ID = fmt.Sprintf("bk-%d", r.nextID)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if filter.ArtistID != "" && b.ArtistID != filter.ArtistID {
			continue
		}
		if filter.ProfessionalID != "" && b.ProfessionalID != filter.ProfessionalID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, b *Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeRepo) ListActiveBetween(_ context.Context, professionalID string, from, to time.Time, excludeBookingID string) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.ProfessionalID != professionalID || !b.Active() {
			continue
		}
		if b.ID == excludeBookingID {
			continue
		}
		if b.StartTime.Before(from) || !b.StartTime.Before(to) {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeRepo) ListConfirmedEndedBefore(_ context.Context, cutoff time.Time) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.Status == StatusConfirmed && !b.EndTime().After(cutoff) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

// fakeProService serves a fixed set of professionals.
type fakeProService struct {
	pros map[string]*professional.Professional
}

func (s *fakeProService) Create(context.Context, professional.CreateRequest) (*professional.Professional, error) {
	panic("not used")
}

func (s *fakeProService) GetByID(_ context.Context, id string) (*professional.Professional, error) {
	p, ok := s.pros[id]
	if !ok {
		return nil, professional.ErrNotFound
	}
	return p, nil
}

func (s *fakeProService) GetByUserID(_ context.Context, userID string) (*professional.Professional, error) {
	for _, p := range s.pros {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, professional.ErrNotFound
}

func (s *fakeProService) List(context.Context, professional.Filter) ([]*professional.Professional, int, error) {
	panic("not used")
}

func (s *fakeProService) Update(context.Context, string, professional.UpdateRequest) (*professional.Professional, error) {
	panic("not used")
}

// fakeAvailService returns canned intervals per professional.
type fakeAvailService struct {
	intervals map[string][]availability.Interval
}

func (s *fakeAvailService) Create(context.Context, availability.CreateRequest) (*availability.Window, error) {
	panic("not used")
}

func (s *fakeAvailService) ListByProfessional(context.Context, string, bool) ([]*availability.Window, error) {
	panic("not used")
}

func (s *fakeAvailService) SetActive(context.Context, string, string, bool) (*availability.Window, error) {
	panic("not used")
}

func (s *fakeAvailService) Calendar(context.Context, string, time.Time, int) ([]availability.DaySchedule, error) {
	panic("not used")
}

func (s *fakeAvailService) Delete(context.Context, string, string) error {
	panic("not used")
}

func (s *fakeAvailService) IntervalsOn(_ context.Context, professionalID string, _ time.Time) ([]availability.Interval, error) {
	return s.intervals[professionalID], nil
}

// recordingNotifier captures emitted events.
type recordingNotifier struct {
	created     []string
	changed     []string
	lastCreated *Booking
}

func (n *recordingNotifier) ReservationCreated(_ context.Context, b *Booking) {
	n.created = append(n.created, b.ID)
	n.lastCreated = b
}

func (n *recordingNotifier) ReservationStatusChanged(_ context.Context, b *Booking, from, to Status) {
	n.changed = append(n.changed, fmt.Sprintf("%s:%s->%s", b.ID, from, to))
}

const (
	testArtistID = "artist-1"
	testProID    = "pro-1"
)

// testNow is the frozen clock for all service tests: a Tuesday at noon UTC.
var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*service, *fakeRepo, *recordingNotifier) {
	t.Helper()

	rate := decimal.RequireFromString("50.00")
	pros := &fakeProService{pros: map[string]*professional.Professional{
		testProID: {
			ID:          testProID,
			UserID:      "user-pro",
			DisplayName: "Sam Engineer",
			HourlyRate:  &rate,
			IsAvailable: true,
			IsActive:    true,
		},
	}}

	repo := newFakeRepo()
	notifier := &recordingNotifier{}
	avail := &fakeAvailService{intervals: map[string][]availability.Interval{}}

	svc := NewService(repo, pros, avail, notifier, DefaultPolicy()).(*service)
	svc.now = func() time.Time { return testNow }
	return svc, repo, notifier
}

func artistActor() Actor {
	return Actor{UserID: "user-artist", Role: auth.RoleArtist, ProfileID: testArtistID, ProfileName: "Nova Vox"}
}

func proActor() Actor {
	return Actor{UserID: "user-pro", Role: auth.RoleProfessional, ProfileID: testProID}
}

func validCreateRequest() CreateRequest {
	// Two days out, 14:00 local start.
	return CreateRequest{
		ProfessionalID: testProID,
		SessionType:    TypeRecording,
		StartTime:      time.Date(2026, 9, 3, 14, 0, 0, 0, time.UTC),
		DurationHours:  2,
	}
}

func errKind(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Kind
}

func TestCreateBooking(t *testing.T) {
	svc, _, notifier := newTestService(t)

	b, err := svc.Create(context.Background(), artistActor(), validCreateRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, testArtistID, b.ArtistID)
	assert.Equal(t, "Nova Vox", b.ArtistStageName)
	assert.Equal(t, "Sam Engineer", b.ProfessionalName)
	require.NotNil(t, b.TotalCost)
	assert.Equal(t, "100.00", b.TotalCost.StringFixed(2))
	assert.Equal(t, []string{b.ID}, notifier.created)

	// The event carries both party names so notifications can render them
	// without a second lookup.
	require.NotNil(t, notifier.lastCreated)
	assert.Equal(t, "Nova Vox", notifier.lastCreated.ArtistStageName)
	assert.Equal(t, "Sam Engineer", notifier.lastCreated.ProfessionalName)
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*CreateRequest)
		wantErr  error
		wantKind string
	}{
		{
			name:     "start in the past",
			mutate:   func(r *CreateRequest) { r.StartTime = testNow.Add(-time.Hour) },
			wantErr:  ErrPastDate,
			wantKind: "past_date",
		},
		{
			name:     "start exactly at the current instant",
			mutate:   func(r *CreateRequest) { r.StartTime = testNow },
			wantErr:  ErrPastDate,
			wantKind: "past_date",
		},
		{
			name: "beyond the booking horizon",
			mutate: func(r *CreateRequest) {
				r.StartTime = time.Date(2026, 12, 15, 14, 0, 0, 0, time.UTC)
			},
			wantErr:  ErrTooFarInFuture,
			wantKind: "too_far_in_future",
		},
		{
			name: "start before opening hour",
			mutate: func(r *CreateRequest) {
				r.StartTime = time.Date(2026, 9, 3, 8, 59, 0, 0, time.UTC)
			},
			wantErr:  ErrOutsideBookingHours,
			wantKind: "outside_booking_hours",
		},
		{
			name: "start at closing hour",
			mutate: func(r *CreateRequest) {
				r.StartTime = time.Date(2026, 9, 3, 22, 0, 0, 0, time.UTC)
			},
			wantErr:  ErrOutsideBookingHours,
			wantKind: "outside_booking_hours",
		},
		{
			name:     "zero duration",
			mutate:   func(r *CreateRequest) { r.DurationHours = 0 },
			wantErr:  ErrDurationOutOfRange,
			wantKind: "duration_out_of_range",
		},
		{
			name:     "duration above request cap",
			mutate:   func(r *CreateRequest) { r.DurationHours = 9 },
			wantErr:  ErrDurationOutOfRange,
			wantKind: "duration_out_of_range",
		},
		{
			name:     "unknown session type",
			mutate:   func(r *CreateRequest) { r.SessionType = "karaoke" },
			wantErr:  ErrInvalidSessionType,
			wantKind: "invalid_input",
		},
		{
			name:     "unknown professional",
			mutate:   func(r *CreateRequest) { r.ProfessionalID = "nope" },
			wantErr:  ErrProfessionalNotFound,
			wantKind: "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			req := validCreateRequest()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), artistActor(), req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantKind, errKind(t, err))
		})
	}
}

func TestCreateBookingBoundaryStartHours(t *testing.T) {
	svc, _, _ := newTestService(t)

	// 09:00 is the first allowed start.
	req := validCreateRequest()
	req.StartTime = time.Date(2026, 9, 3, 9, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), artistActor(), req)
	assert.NoError(t, err)

	// 21:59 is still inside the window even though the session runs past it.
	req = validCreateRequest()
	req.StartTime = time.Date(2026, 9, 4, 21, 59, 0, 0, time.UTC)
	_, err = svc.Create(context.Background(), artistActor(), req)
	assert.NoError(t, err)
}

func TestCreateBookingRequiresArtist(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), proActor(), validCreateRequest())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateBookingUnavailableProfessional(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.proService.(*fakeProService).pros[testProID].IsAvailable = false

	_, err := svc.Create(context.Background(), artistActor(), validCreateRequest())
	require.ErrorIs(t, err, ErrProfessionalUnavailable)
}

func TestCreateBookingConflict(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, artistActor(), validCreateRequest())
	require.NoError(t, err)

	// Overlapping request is rejected and names the existing booking.
	req := validCreateRequest()
	req.StartTime = req.StartTime.Add(time.Hour)
	_, err = svc.Create(ctx, artistActor(), req)
	require.Error(t, err)
	assert.Equal(t, "scheduling_conflict", errKind(t, err))
	assert.Contains(t, err.Error(), first.ID)

	// Back-to-back after the existing booking is fine.
	req = validCreateRequest()
	req.StartTime = first.EndTime()
	_, err = svc.Create(ctx, artistActor(), req)
	assert.NoError(t, err)
}

func TestCreateBookingIgnoresCancelled(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, artistActor(), validCreateRequest())
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, first.ID, StatusCancelled))

	_, err = svc.Create(ctx, artistActor(), validCreateRequest())
	assert.NoError(t, err)
}

func TestUpdateStatusTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("professional confirms a pending booking", func(t *testing.T) {
		svc, _, notifier := newTestService(t)
		b, err := svc.Create(ctx, artistActor(), validCreateRequest())
		require.NoError(t, err)

		updated, err := svc.UpdateStatus(ctx, proActor(), b.ID, StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, updated.Status)
		assert.Contains(t, notifier.changed, b.ID+":pending->confirmed")
	})

	t.Run("artist cannot confirm", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b, err := svc.Create(ctx, artistActor(), validCreateRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, artistActor(), b.ID, StatusConfirmed)
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("pending cannot jump to completed", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b, err := svc.Create(ctx, artistActor(), validCreateRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, proActor(), b.ID, StatusCompleted)
		require.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b, err := svc.Create(ctx, artistActor(), validCreateRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, artistActor(), b.ID, StatusCancelled)
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, proActor(), b.ID, StatusConfirmed)
		require.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("stranger cannot touch the booking", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b, err := svc.Create(ctx, artistActor(), validCreateRequest())
		require.NoError(t, err)

		stranger := Actor{UserID: "user-x", Role: auth.RoleArtist, ProfileID: "artist-x"}
		_, err = svc.UpdateStatus(ctx, stranger, b.ID, StatusCancelled)
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("invalid status value", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b, err := svc.Create(ctx, artistActor(), validCreateRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, proActor(), b.ID, Status("archived"))
		require.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestArtistCancellationCutoff(t *testing.T) {
	ctx := context.Background()

	confirmedBooking := func(t *testing.T, svc *service, start time.Time) *Booking {
		t.Helper()
		req := validCreateRequest()
		req.StartTime = start
		b, err := svc.Create(ctx, artistActor(), req)
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, proActor(), b.ID, StatusConfirmed)
		require.NoError(t, err)
		return b
	}

	t.Run("artist may cancel well before start", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b := confirmedBooking(t, svc, time.Date(2026, 9, 5, 14, 0, 0, 0, time.UTC))

		_, err := svc.UpdateStatus(ctx, artistActor(), b.ID, StatusCancelled)
		assert.NoError(t, err)
	})

	t.Run("artist cannot cancel inside the cutoff", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		// Starts 21 hours from the frozen clock, inside the 24h cutoff.
		b := confirmedBooking(t, svc, time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC))

		_, err := svc.UpdateStatus(ctx, artistActor(), b.ID, StatusCancelled)
		require.ErrorIs(t, err, ErrCancelWindowClosed)
	})

	t.Run("professional may cancel inside the cutoff", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b := confirmedBooking(t, svc, time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC))

		_, err := svc.UpdateStatus(ctx, proActor(), b.ID, StatusCancelled)
		assert.NoError(t, err)
	})

	t.Run("artist may cancel pending any time", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		req := validCreateRequest()
		req.StartTime = time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
		b, err := svc.Create(ctx, artistActor(), req)
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, artistActor(), b.ID, StatusCancelled)
		assert.NoError(t, err)
	})
}

func TestReschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("excludes itself from the conflict check", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b, err := svc.Create(ctx, artistActor(), validCreateRequest())
		require.NoError(t, err)

		// Shift one hour into its own old interval.
		newStart := b.StartTime.Add(time.Hour)
		updated, err := svc.Reschedule(ctx, artistActor(), b.ID, RescheduleRequest{StartTime: &newStart})
		require.NoError(t, err)
		assert.Equal(t, newStart, updated.StartTime)
	})

	t.Run("conflicts with other bookings", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		first, err := svc.Create(ctx, artistActor(), validCreateRequest())
		require.NoError(t, err)

		req := validCreateRequest()
		req.StartTime = first.EndTime()
		second, err := svc.Create(ctx, artistActor(), req)
		require.NoError(t, err)

		newStart := first.StartTime.Add(time.Hour)
		_, err = svc.Reschedule(ctx, artistActor(), second.ID, RescheduleRequest{StartTime: &newStart})
		require.Error(t, err)
		assert.Equal(t, "scheduling_conflict", errKind(t, err))
	})

	t.Run("confirmed bookings cannot be rescheduled", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b, err := svc.Create(ctx, artistActor(), validCreateRequest())
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, proActor(), b.ID, StatusConfirmed)
		require.NoError(t, err)

		newStart := b.StartTime.Add(24 * time.Hour)
		_, err = svc.Reschedule(ctx, artistActor(), b.ID, RescheduleRequest{StartTime: &newStart})
		require.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("only the requesting artist may reschedule", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b, err := svc.Create(ctx, artistActor(), validCreateRequest())
		require.NoError(t, err)

		newStart := b.StartTime.Add(24 * time.Hour)
		_, err = svc.Reschedule(ctx, proActor(), b.ID, RescheduleRequest{StartTime: &newStart})
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("new time is validated like a create", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		b, err := svc.Create(ctx, artistActor(), validCreateRequest())
		require.NoError(t, err)

		past := testNow.Add(-time.Hour)
		_, err = svc.Reschedule(ctx, artistActor(), b.ID, RescheduleRequest{StartTime: &past})
		require.ErrorIs(t, err, ErrPastDate)
	})
}

func TestCheckConflictIsReadOnly(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, artistActor(), validCreateRequest())
	require.NoError(t, err)
	before := len(repo.bookings)

	conflict, err := svc.CheckConflict(ctx, testProID, b.StartTime, b.EndTime(), "")
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, b.ID, conflict.BookingID)

	// Probing again gives the same answer and persists nothing.
	conflict, err = svc.CheckConflict(ctx, testProID, b.StartTime, b.EndTime(), "")
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, before, len(repo.bookings))

	// Excluding the booking itself clears the conflict.
	conflict, err = svc.CheckConflict(ctx, testProID, b.StartTime, b.EndTime(), b.ID)
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestFreeSlotsService(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	day := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	svc.availService.(*fakeAvailService).intervals[testProID] = []availability.Interval{
		{Start: day.Add(10 * time.Hour), End: day.Add(18 * time.Hour)},
	}

	// Booked 14:00-16:00 on that day.
	_, err := svc.Create(ctx, artistActor(), validCreateRequest())
	require.NoError(t, err)

	slots, err := svc.FreeSlots(ctx, testProID, day)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, day.Add(10*time.Hour), slots[0].StartTime)
	assert.Equal(t, day.Add(14*time.Hour), slots[0].EndTime)
	assert.Equal(t, day.Add(16*time.Hour), slots[1].StartTime)
	assert.Equal(t, day.Add(18*time.Hour), slots[1].EndTime)
}

func TestCompleteElapsed(t *testing.T) {
	svc, repo, notifier := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, artistActor(), validCreateRequest())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, proActor(), b.ID, StatusConfirmed)
	require.NoError(t, err)

	// Nothing has elapsed yet.
	n, err := svc.CompleteElapsed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// Move the clock past the session end.
	svc.now = func() time.Time { return b.EndTime().Add(time.Minute) }

	n, err = svc.CompleteElapsed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, stored.Status)
	assert.Contains(t, notifier.changed, b.ID+":confirmed->completed")
}
