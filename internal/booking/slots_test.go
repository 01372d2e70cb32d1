package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/veloria-studio/session-booking-backend/internal/availability"
)

func TestFreeSlots(t *testing.T) {
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	at := func(hour int) time.Time { return day.Add(time.Duration(hour) * time.Hour) }

	window := availability.Interval{Start: at(9), End: at(18)}

	tests := []struct {
		name     string
		windows  []availability.Interval
		bookings []*Booking
		want     []TimeSlot
	}{
		{
			name:     "no bookings, whole window open",
			windows:  []availability.Interval{window},
			bookings: nil,
			want:     []TimeSlot{{StartTime: at(9), EndTime: at(18)}},
		},
		{
			name:    "one booking splits the window",
			windows: []availability.Interval{window},
			bookings: []*Booking{
				mkBooking("b1", at(12), 1, StatusConfirmed),
			},
			want: []TimeSlot{
				{StartTime: at(9), EndTime: at(12)},
				{StartTime: at(13), EndTime: at(18)},
			},
		},
		{
			name:    "pending bookings block time",
			windows: []availability.Interval{window},
			bookings: []*Booking{
				mkBooking("b1", at(10), 1, StatusPending),
			},
			want: []TimeSlot{
				{StartTime: at(9), EndTime: at(10)},
				{StartTime: at(11), EndTime: at(18)},
			},
		},
		{
			name:    "cancelled and completed bookings are ignored",
			windows: []availability.Interval{window},
			bookings: []*Booking{
				mkBooking("b1", at(10), 2, StatusCancelled),
				mkBooking("b2", at(14), 2, StatusCompleted),
			},
			want: []TimeSlot{{StartTime: at(9), EndTime: at(18)}},
		},
		{
			name:    "unsorted and overlapping bookings",
			windows: []availability.Interval{window},
			bookings: []*Booking{
				mkBooking("late", at(15), 2, StatusConfirmed),
				mkBooking("early", at(10), 3, StatusPending),
				mkBooking("inside", at(11), 1, StatusConfirmed),
			},
			want: []TimeSlot{
				{StartTime: at(9), EndTime: at(10)},
				{StartTime: at(13), EndTime: at(15)},
				{StartTime: at(17), EndTime: at(18)},
			},
		},
		{
			name:    "booking spilling in from before the window",
			windows: []availability.Interval{window},
			bookings: []*Booking{
				mkBooking("b1", at(7), 3, StatusConfirmed), // 07:00 - 10:00
			},
			want: []TimeSlot{{StartTime: at(10), EndTime: at(18)}},
		},
		{
			name:    "fully booked day yields nothing",
			windows: []availability.Interval{window},
			bookings: []*Booking{
				mkBooking("b1", at(9), 9, StatusConfirmed),
			},
			want: nil,
		},
		{
			name: "split windows each subtract independently",
			windows: []availability.Interval{
				{Start: at(9), End: at(12)},
				{Start: at(14), End: at(18)},
			},
			bookings: []*Booking{
				mkBooking("b1", at(10), 1, StatusConfirmed),
			},
			want: []TimeSlot{
				{StartTime: at(9), EndTime: at(10)},
				{StartTime: at(11), EndTime: at(12)},
				{StartTime: at(14), EndTime: at(18)},
			},
		},
		{
			name:     "no windows means no slots",
			windows:  nil,
			bookings: []*Booking{mkBooking("b1", at(10), 1, StatusConfirmed)},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FreeSlots(tt.windows, tt.bookings)
			assert.Equal(t, tt.want, got)
		})
	}
}
