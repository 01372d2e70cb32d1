package availability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/veloria-studio/session-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "not_found", "availability window not found")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "invalid_input", "start time must be before end time")
	ErrDayOfWeekRequired = apperror.New(http.StatusBadRequest, "invalid_input", "day of week is required for recurring windows")
	ErrDateRequired      = apperror.New(http.StatusBadRequest, "invalid_input", "specific date is required for one-off windows")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "unauthorized", "permission denied")
)

type Mode string

const (
	ModeRecurring Mode = "recurring"
	ModeSpecific  Mode = "specific"
)

// Window is a declared open interval during which a professional is bookable.
// Recurring windows repeat on a weekday (0=Monday..6=Sunday, optionally until
// RecurrenceEnd); specific windows apply to a single date. Deactivated windows
// are kept for history rather than deleted.
type Window struct {
	ID             string
	ProfessionalID string
	Mode           Mode
	DayOfWeek      *int       // 0-6, set for recurring windows (derived for specific ones)
	SpecificDate   *time.Time // date-only, set for specific windows
	StartTime      string     // clock time "HH:MM" or "HH:MM:SS"
	EndTime        string
	RecurrenceEnd  *time.Time // date-only, recurring windows stop applying after this
	IsActive       bool
	CreatedAt      time.Time
}

// weekday maps time.Weekday onto the 0=Monday..6=Sunday convention used by
// DayOfWeek.
func weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Normalize enforces the mode invariant: specific windows derive their
// day-of-week from the date, recurring windows drop any specific date.
func (w *Window) Normalize() {
	if w.Mode == ModeSpecific && w.SpecificDate != nil {
		d := weekday(*w.SpecificDate)
		w.DayOfWeek = &d
	}
	if w.Mode == ModeRecurring {
		w.SpecificDate = nil
	}
}

// Validate checks the window invariants.
func (w *Window) Validate() error {
	start, err := ParseClock(w.StartTime)
	if err != nil {
		return apperror.Wrap(err, http.StatusBadRequest, "invalid_input", "invalid start time")
	}
	end, err := ParseClock(w.EndTime)
	if err != nil {
		return apperror.Wrap(err, http.StatusBadRequest, "invalid_input", "invalid end time")
	}
	if start >= end {
		return ErrInvalidTimeRange
	}

	switch w.Mode {
	case ModeRecurring:
		if w.DayOfWeek == nil || *w.DayOfWeek < 0 || *w.DayOfWeek > 6 {
			return ErrDayOfWeekRequired
		}
	case ModeSpecific:
		if w.SpecificDate == nil {
			return ErrDateRequired
		}
	default:
		return apperror.New(http.StatusBadRequest, "invalid_input", "mode must be recurring or specific")
	}
	return nil
}

// AppliesOn reports whether the window offers time on the given date.
func (w *Window) AppliesOn(date time.Time) bool {
	if !w.IsActive {
		return false
	}
	switch w.Mode {
	case ModeSpecific:
		return w.SpecificDate != nil && sameDate(*w.SpecificDate, date)
	case ModeRecurring:
		if w.DayOfWeek == nil || *w.DayOfWeek != weekday(date) {
			return false
		}
		if w.RecurrenceEnd != nil && date.After(*w.RecurrenceEnd) {
			return false
		}
		return true
	}
	return false
}

// IntervalOn materializes the window into a concrete [start, end) interval on
// the given date, in the date's location.
func (w *Window) IntervalOn(date time.Time) (time.Time, time.Time, error) {
	start, err := ParseClock(w.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseClock(w.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(start), day.Add(end), nil
}

// ParseClock parses a clock time ("HH:MM" or "HH:MM:SS") into an offset from
// midnight.
func ParseClock(s string) (time.Duration, error) {
	var t time.Time
	var err error
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err = time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid clock time %q", s)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Filter defines parameters for listing availability windows.
type Filter struct {
	ProfessionalID string
	OnlyActive     bool
}
