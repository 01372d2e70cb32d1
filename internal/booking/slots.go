package booking

import (
	"sort"
	"time"

	"github.com/veloria-studio/session-booking-backend/internal/availability"
)

// TimeSlot is a bookable gap within a professional's declared availability.
type TimeSlot struct {
	StartTime time.Time
	EndTime   time.Time
}

// FreeSlots subtracts active bookings from the materialized availability
// intervals of a single day and returns the remaining open slots, sorted by
// start time. Cancelled and completed bookings do not occupy time.
func FreeSlots(windows []availability.Interval, bookings []*Booking) []TimeSlot {
	busy := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Active() {
			busy = append(busy, b)
		}
	}
	sort.Slice(busy, func(i, j int) bool {
		return busy[i].StartTime.Before(busy[j].StartTime)
	})

	var slots []TimeSlot
	for _, w := range windows {
		cursor := w.Start
		for _, b := range busy {
			bEnd := b.EndTime()
			if !b.StartTime.Before(w.End) || !bEnd.After(cursor) {
				continue
			}
			if b.StartTime.After(cursor) {
				slots = append(slots, TimeSlot{StartTime: cursor, EndTime: b.StartTime})
			}
			if bEnd.After(cursor) {
				cursor = bEnd
			}
			if !cursor.Before(w.End) {
				break
			}
		}
		if cursor.Before(w.End) {
			slots = append(slots, TimeSlot{StartTime: cursor, EndTime: w.End})
		}
	}
	return slots
}
