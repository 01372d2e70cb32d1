package booking

import (
	"fmt"
	"net/http"
	"time"

	"github.com/veloria-studio/session-booking-backend/internal/pkg/apperror"
)

// Conflict describes an existing booking that overlaps a candidate interval.
type Conflict struct {
	BookingID string
	Start     time.Time
	End       time.Time
}

// newConflictError builds the validation error surfaced to callers, naming
// the overlapping booking.
func newConflictError(c *Conflict) *apperror.AppError {
	return apperror.New(
		http.StatusConflict,
		"scheduling_conflict",
		fmt.Sprintf("time slot overlaps booking %s (%s - %s)",
			c.BookingID,
			c.Start.Format(time.RFC3339),
			c.End.Format(time.RFC3339)),
	)
}

// findOverlap applies the half-open interval overlap test to the candidate
// [start, end) against each existing booking. Touching boundaries (candidate
// starting exactly at an existing end, or vice versa) do not conflict.
// Callers pass only active bookings for the same professional; the booking
// being updated, if any, must already be excluded.
func findOverlap(start, end time.Time, existing []*Booking) *Conflict {
	for _, b := range existing {
		bEnd := b.EndTime()
		if start.Before(bEnd) && end.After(b.StartTime) {
			return &Conflict{
				BookingID: b.ID,
				Start:     b.StartTime,
				End:       bEnd,
			}
		}
	}
	return nil
}
