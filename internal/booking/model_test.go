package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusCompleted}: true,
		{StatusConfirmed, StatusCancelled}: true,
	}

	statuses := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]Status{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusCompleted))
	assert.False(t, ValidStatus(Status("archived")))
	assert.False(t, ValidStatus(Status("")))
}

func TestValidSessionType(t *testing.T) {
	assert.True(t, ValidSessionType(TypeRecording))
	assert.True(t, ValidSessionType(TypeOther))
	assert.False(t, ValidSessionType(SessionType("karaoke")))
}

func TestBookingEndTime(t *testing.T) {
	start := time.Date(2026, 9, 3, 14, 0, 0, 0, time.UTC)
	b := &Booking{StartTime: start, DurationHours: 3}
	assert.Equal(t, start.Add(3*time.Hour), b.EndTime())
}

func TestBookingActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).Active())
	assert.True(t, (&Booking{Status: StatusConfirmed}).Active())
	assert.False(t, (&Booking{Status: StatusCompleted}).Active())
	assert.False(t, (&Booking{Status: StatusCancelled}).Active())
}
