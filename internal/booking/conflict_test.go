package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkBooking(id string, start time.Time, hours int, status Status) *Booking {
	return &Booking{
		ID:            id,
		StartTime:     start,
		DurationHours: hours,
		Status:        status,
	}
}

func TestFindOverlap(t *testing.T) {
	base := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	existing := []*Booking{
		mkBooking("b1", base, 2, StatusConfirmed), // 14:00 - 16:00
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		hit   bool
	}{
		{
			name:  "fully inside",
			start: base.Add(30 * time.Minute),
			end:   base.Add(90 * time.Minute),
			hit:   true,
		},
		{
			name:  "overlaps the tail",
			start: base.Add(time.Hour),
			end:   base.Add(3 * time.Hour),
			hit:   true,
		},
		{
			name:  "overlaps the head",
			start: base.Add(-time.Hour),
			end:   base.Add(time.Hour),
			hit:   true,
		},
		{
			name:  "envelops the existing booking",
			start: base.Add(-time.Hour),
			end:   base.Add(3 * time.Hour),
			hit:   true,
		},
		{
			name:  "identical interval",
			start: base,
			end:   base.Add(2 * time.Hour),
			hit:   true,
		},
		{
			name:  "back to back after, no conflict",
			start: base.Add(2 * time.Hour),
			end:   base.Add(3 * time.Hour),
			hit:   false,
		},
		{
			name:  "back to back before, no conflict",
			start: base.Add(-time.Hour),
			end:   base,
			hit:   false,
		},
		{
			name:  "well clear",
			start: base.Add(5 * time.Hour),
			end:   base.Add(6 * time.Hour),
			hit:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findOverlap(tt.start, tt.end, existing)
			if !tt.hit {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, "b1", got.BookingID)
			assert.Equal(t, base, got.Start)
			assert.Equal(t, base.Add(2*time.Hour), got.End)
		})
	}
}

func TestFindOverlapReportsFirstMatch(t *testing.T) {
	base := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	// 09:00-10:00 and 11:00-12:00; the probe spans both.
	existing := []*Booking{
		mkBooking("early", base, 1, StatusPending),
		mkBooking("late", base.Add(2*time.Hour), 1, StatusConfirmed),
	}

	got := findOverlap(base.Add(30*time.Minute), base.Add(3*time.Hour), existing)
	require.NotNil(t, got)
	assert.Equal(t, "early", got.BookingID)
}

func TestNewConflictErrorNamesTheBooking(t *testing.T) {
	c := &Conflict{
		BookingID: "b42",
		Start:     time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		End:       time.Date(2026, 9, 10, 16, 0, 0, 0, time.UTC),
	}

	err := newConflictError(c)
	assert.Equal(t, "scheduling_conflict", err.Kind)
	assert.Contains(t, err.Message, "b42")
	assert.Contains(t, err.Message, "2026-09-10T14:00:00Z")
}
