package booking

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/veloria-studio/session-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound                = apperror.New(http.StatusNotFound, "not_found", "booking not found")
	ErrProfessionalNotFound    = apperror.New(http.StatusNotFound, "not_found", "professional not found")
	ErrProfessionalUnavailable = apperror.New(http.StatusConflict, "professional_unavailable", "professional is not accepting bookings")
	ErrPastDate                = apperror.New(http.StatusBadRequest, "past_date", "cannot create booking in the past")
	ErrTooFarInFuture          = apperror.New(http.StatusBadRequest, "too_far_in_future", "booking is too far in the future")
	ErrOutsideBookingHours     = apperror.New(http.StatusBadRequest, "outside_booking_hours", "booking must start within allowed hours")
	ErrDurationOutOfRange      = apperror.New(http.StatusBadRequest, "duration_out_of_range", "duration is out of range")
	ErrInvalidStatus           = apperror.New(http.StatusBadRequest, "invalid_input", "invalid booking status")
	ErrInvalidSessionType      = apperror.New(http.StatusBadRequest, "invalid_input", "invalid session type")
	ErrCancelWindowClosed      = apperror.New(http.StatusBadRequest, "invalid_transition", "too close to the session start to cancel")
	ErrInvalidTransition       = apperror.New(http.StatusBadRequest, "invalid_transition", "status transition not allowed")
	ErrUnauthorized            = apperror.New(http.StatusForbidden, "unauthorized", "not allowed to act on this booking")
)

// Duration bounds are enforced at two layers on purpose: the request entry
// point is stricter than what the model (and the database check constraint)
// will accept.
const (
	FormDurationMin  = 1
	FormDurationMax  = 8
	ModelDurationMin = 1
	ModelDurationMax = 12
)

// conflictLookback bounds the conflict scan: no booking lasts longer than
// ModelDurationMax hours, so anything starting earlier cannot reach the
// candidate interval. Purely a query optimization.
const conflictLookback = time.Duration(ModelDurationMax) * time.Hour

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition encodes the booking state machine:
// pending -> confirmed | cancelled, confirmed -> completed | cancelled.
// completed and cancelled are terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

type SessionType string

const (
	TypeRecording    SessionType = "recording"
	TypeMixing       SessionType = "mixing"
	TypeMastering    SessionType = "mastering"
	TypeProduction   SessionType = "production"
	TypeLesson       SessionType = "lesson"
	TypeConsultation SessionType = "consultation"
	TypeOther        SessionType = "other"
)

// ValidSessionType reports whether t is one of the known session types.
func ValidSessionType(t SessionType) bool {
	switch t {
	case TypeRecording, TypeMixing, TypeMastering, TypeProduction,
		TypeLesson, TypeConsultation, TypeOther:
		return true
	}
	return false
}

// Booking is a studio session reservation between an artist and a
// professional. Intervals are half-open [StartTime, EndTime()).
type Booking struct {
	ID                  string
	ArtistID            string
	ArtistStageName     string
	ProfessionalID      string
	ProfessionalName    string
	SessionType         SessionType
	StartTime           time.Time
	DurationHours       int
	Status              Status
	TotalCost           *decimal.Decimal
	Location            string
	Notes               string
	SpecialRequirements string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// EndTime returns the exclusive end of the session interval.
func (b *Booking) EndTime() time.Time {
	return b.StartTime.Add(time.Duration(b.DurationHours) * time.Hour)
}

// Active reports whether the booking occupies its time slot. Cancelled and
// completed bookings do not block new reservations.
func (b *Booking) Active() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Filter defines parameters for listing bookings.
type Filter struct {
	ArtistID       string
	ProfessionalID string
	Status         string
	StartTimeFrom  *time.Time
	StartTimeTo    *time.Time
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}
