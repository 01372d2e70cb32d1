package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "09:00", want: 9 * time.Hour},
		{in: "09:00:00", want: 9 * time.Hour},
		{in: "14:30", want: 14*time.Hour + 30*time.Minute},
		{in: "23:59:59", want: 23*time.Hour + 59*time.Minute + 59*time.Second},
		{in: "00:00", want: 0},
		{in: "25:00", wantErr: true},
		{in: "oops", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		window  Window
		wantErr error
	}{
		{
			name: "valid recurring window",
			window: Window{
				Mode:      ModeRecurring,
				DayOfWeek: intPtr(0),
				StartTime: "09:00",
				EndTime:   "17:00",
			},
		},
		{
			name: "valid specific window",
			window: Window{
				Mode:         ModeSpecific,
				SpecificDate: datePtr(2026, 9, 14),
				StartTime:    "10:00",
				EndTime:      "12:00",
			},
		},
		{
			name: "start after end",
			window: Window{
				Mode:      ModeRecurring,
				DayOfWeek: intPtr(2),
				StartTime: "17:00",
				EndTime:   "09:00",
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "zero-length window",
			window: Window{
				Mode:      ModeRecurring,
				DayOfWeek: intPtr(2),
				StartTime: "09:00",
				EndTime:   "09:00",
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "recurring without day of week",
			window: Window{
				Mode:      ModeRecurring,
				StartTime: "09:00",
				EndTime:   "17:00",
			},
			wantErr: ErrDayOfWeekRequired,
		},
		{
			name: "specific without date",
			window: Window{
				Mode:      ModeSpecific,
				StartTime: "09:00",
				EndTime:   "17:00",
			},
			wantErr: ErrDateRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalizeDerivesDayOfWeek(t *testing.T) {
	// 2026-09-14 is a Monday.
	w := Window{
		Mode:         ModeSpecific,
		SpecificDate: datePtr(2026, 9, 14),
		StartTime:    "09:00",
		EndTime:      "17:00",
	}
	w.Normalize()

	require.NotNil(t, w.DayOfWeek)
	assert.Equal(t, 0, *w.DayOfWeek)

	// 2026-09-20 is a Sunday.
	w = Window{
		Mode:         ModeSpecific,
		SpecificDate: datePtr(2026, 9, 20),
	}
	w.Normalize()
	require.NotNil(t, w.DayOfWeek)
	assert.Equal(t, 6, *w.DayOfWeek)
}

func TestNormalizeDropsDateForRecurring(t *testing.T) {
	w := Window{
		Mode:         ModeRecurring,
		DayOfWeek:    intPtr(3),
		SpecificDate: datePtr(2026, 9, 14),
	}
	w.Normalize()
	assert.Nil(t, w.SpecificDate)
}

func TestAppliesOn(t *testing.T) {
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	nextMonday := monday.AddDate(0, 0, 7)

	t.Run("recurring matches its weekday", func(t *testing.T) {
		w := Window{Mode: ModeRecurring, DayOfWeek: intPtr(0), IsActive: true}
		assert.True(t, w.AppliesOn(monday))
		assert.True(t, w.AppliesOn(nextMonday))
		assert.False(t, w.AppliesOn(tuesday))
	})

	t.Run("recurrence end stops repetition", func(t *testing.T) {
		w := Window{
			Mode:          ModeRecurring,
			DayOfWeek:     intPtr(0),
			RecurrenceEnd: &monday,
			IsActive:      true,
		}
		assert.True(t, w.AppliesOn(monday))
		assert.False(t, w.AppliesOn(nextMonday))
	})

	t.Run("specific matches only its date", func(t *testing.T) {
		w := Window{Mode: ModeSpecific, SpecificDate: &monday, IsActive: true}
		assert.True(t, w.AppliesOn(monday))
		assert.False(t, w.AppliesOn(tuesday))
		assert.False(t, w.AppliesOn(nextMonday))
	})

	t.Run("inactive windows never apply", func(t *testing.T) {
		w := Window{Mode: ModeSpecific, SpecificDate: &monday, IsActive: false}
		assert.False(t, w.AppliesOn(monday))
	})
}

func TestIntervalOn(t *testing.T) {
	w := Window{
		Mode:      ModeRecurring,
		DayOfWeek: intPtr(0),
		StartTime: "09:30",
		EndTime:   "17:00",
		IsActive:  true,
	}

	date := time.Date(2026, 9, 14, 15, 42, 0, 0, time.UTC)
	start, end, err := w.IntervalOn(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 14, 9, 30, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 9, 14, 17, 0, 0, 0, time.UTC), end)
}
