package http

import (
	"time"

	"github.com/veloria-studio/session-booking-backend/internal/availability"
)

type CreateWindowBody struct {
	Mode          string  `json:"mode" binding:"required,oneof=recurring specific"`
	DayOfWeek     *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	SpecificDate  *string `json:"specific_date"` // "2006-01-02"
	StartTime     string  `json:"start_time" binding:"required"`
	EndTime       string  `json:"end_time" binding:"required"`
	RecurrenceEnd *string `json:"recurrence_end"` // "2006-01-02"
}

type SetActiveBody struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type WindowResponse struct {
	ID             string    `json:"id"`
	ProfessionalID string    `json:"professional_id"`
	Mode           string    `json:"mode"`
	DayOfWeek      *int      `json:"day_of_week"`
	SpecificDate   *string   `json:"specific_date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	RecurrenceEnd  *string   `json:"recurrence_end"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

type IntervalResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// CalendarDayResponse is one dated entry in the calendar view.
type CalendarDayResponse struct {
	Date      string             `json:"date"` // "2006-01-02"
	Intervals []IntervalResponse `json:"intervals"`
}

func NewCalendarDayResponse(d availability.DaySchedule) CalendarDayResponse {
	intervals := make([]IntervalResponse, len(d.Intervals))
	for i, iv := range d.Intervals {
		intervals[i] = IntervalResponse{StartTime: iv.Start, EndTime: iv.End}
	}
	return CalendarDayResponse{
		Date:      d.Date.Format("2006-01-02"),
		Intervals: intervals,
	}
}

func NewWindowResponse(w *availability.Window) WindowResponse {
	formatDate := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.Format("2006-01-02")
		return &s
	}

	return WindowResponse{
		ID:             w.ID,
		ProfessionalID: w.ProfessionalID,
		Mode:           string(w.Mode),
		DayOfWeek:      w.DayOfWeek,
		SpecificDate:   formatDate(w.SpecificDate),
		StartTime:      w.StartTime,
		EndTime:        w.EndTime,
		RecurrenceEnd:  formatDate(w.RecurrenceEnd),
		IsActive:       w.IsActive,
		CreatedAt:      w.CreatedAt,
	}
}
