package availability

import (
	"context"
	"sort"
	"time"
)

type CreateRequest struct {
	ProfessionalID string
	Mode           Mode
	DayOfWeek      *int
	SpecificDate   *time.Time
	StartTime      string
	EndTime        string
	RecurrenceEnd  *time.Time
}

// Interval is a materialized open window on a concrete date.
type Interval struct {
	Start time.Time
	End   time.Time
}

// DaySchedule pairs a calendar date with the open intervals on it.
type DaySchedule struct {
	Date      time.Time
	Intervals []Interval
}

// CalendarDays is the default span of the calendar view.
const CalendarDays = 28

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Window, error)
	ListByProfessional(ctx context.Context, professionalID string, onlyActive bool) ([]*Window, error)
	// SetActive soft-toggles a window; ownerProfessionalID must own it.
	SetActive(ctx context.Context, id, ownerProfessionalID string, active bool) (*Window, error)
	Delete(ctx context.Context, id, ownerProfessionalID string) error
	// IntervalsOn materializes the professional's active windows into concrete
	// intervals on the given date, sorted by start.
	IntervalsOn(ctx context.Context, professionalID string, date time.Time) ([]Interval, error)
	// Calendar materializes the professional's active windows over a range of
	// days starting at from. Days without any open interval are omitted.
	Calendar(ctx context.Context, professionalID string, from time.Time, days int) ([]DaySchedule, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Window, error) {
	w := &Window{
		ProfessionalID: req.ProfessionalID,
		Mode:           req.Mode,
		DayOfWeek:      req.DayOfWeek,
		SpecificDate:   req.SpecificDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		RecurrenceEnd:  req.RecurrenceEnd,
		IsActive:       true,
	}
	w.Normalize()

	if err := w.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) ListByProfessional(ctx context.Context, professionalID string, onlyActive bool) ([]*Window, error) {
	return s.repo.List(ctx, Filter{ProfessionalID: professionalID, OnlyActive: onlyActive})
}

func (s *service) SetActive(ctx context.Context, id, ownerProfessionalID string, active bool) (*Window, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.ProfessionalID != ownerProfessionalID {
		return nil, ErrPermissionDenied
	}

	w.IsActive = active
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) Delete(ctx context.Context, id, ownerProfessionalID string) error {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if w.ProfessionalID != ownerProfessionalID {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) IntervalsOn(ctx context.Context, professionalID string, date time.Time) ([]Interval, error) {
	windows, err := s.repo.List(ctx, Filter{ProfessionalID: professionalID, OnlyActive: true})
	if err != nil {
		return nil, err
	}
	return MaterializeOn(windows, date)
}

func (s *service) Calendar(ctx context.Context, professionalID string, from time.Time, days int) ([]DaySchedule, error) {
	if days <= 0 {
		days = CalendarDays
	}

	windows, err := s.repo.List(ctx, Filter{ProfessionalID: professionalID, OnlyActive: true})
	if err != nil {
		return nil, err
	}

	var schedule []DaySchedule
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		intervals, err := MaterializeOn(windows, date)
		if err != nil {
			return nil, err
		}
		if len(intervals) == 0 {
			continue
		}
		schedule = append(schedule, DaySchedule{Date: date, Intervals: intervals})
	}
	return schedule, nil
}

// MaterializeOn converts the windows that apply on the given date into sorted
// concrete intervals.
func MaterializeOn(windows []*Window, date time.Time) ([]Interval, error) {
	var intervals []Interval
	for _, w := range windows {
		if !w.AppliesOn(date) {
			continue
		}
		start, end, err := w.IntervalOn(date)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, Interval{Start: start, End: end})
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})
	return intervals, nil
}
