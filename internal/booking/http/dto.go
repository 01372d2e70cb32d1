package http

import (
	"time"

	"github.com/veloria-studio/session-booking-backend/internal/booking"
	"github.com/veloria-studio/session-booking-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings. Sort
// keys are whitelisted; time bounds are RFC 3339.
type ListBookingsRequest struct {
	request.ListParams
	Status        string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	StartTimeFrom string `form:"start_time_from"`
	StartTimeTo   string `form:"start_time_to"`
	SortBy        string `form:"sort_by" binding:"omitempty,oneof=start_time created_at status"`
}

type CreateBookingBody struct {
	ProfessionalID      string    `json:"professional_id" binding:"required,uuid"`
	SessionType         string    `json:"session_type" binding:"required,oneof=recording mixing mastering production lesson consultation other"`
	StartTime           time.Time `json:"start_time" binding:"required"`
	DurationHours       int       `json:"duration_hours" binding:"required,min=1,max=8"`
	Location            string    `json:"location"`
	Notes               string    `json:"notes"`
	SpecialRequirements string    `json:"special_requirements"`
}

type UpdateStatusBody struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

type RescheduleBody struct {
	StartTime     *time.Time `json:"start_time"`
	DurationHours *int       `json:"duration_hours" binding:"omitempty,min=1,max=8"`
}

// PartyTag is the minimal participant reference embedded in booking responses.
type PartyTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID                  string    `json:"id"`
	Artist              PartyTag  `json:"artist"`
	Professional        PartyTag  `json:"professional"`
	SessionType         string    `json:"session_type"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	DurationHours       int       `json:"duration_hours"`
	Status              string    `json:"status"`
	TotalCost           *string   `json:"total_cost"`
	Location            string    `json:"location,omitempty"`
	Notes               string    `json:"notes,omitempty"`
	SpecialRequirements string    `json:"special_requirements,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	var cost *string
	if b.TotalCost != nil {
		s := b.TotalCost.StringFixed(2)
		cost = &s
	}

	return BookingResponse{
		ID:                  b.ID,
		Artist:              PartyTag{ID: b.ArtistID, Name: b.ArtistStageName},
		Professional:        PartyTag{ID: b.ProfessionalID, Name: b.ProfessionalName},
		SessionType:         string(b.SessionType),
		StartTime:           b.StartTime,
		EndTime:             b.EndTime(),
		DurationHours:       b.DurationHours,
		Status:              string(b.Status),
		TotalCost:           cost,
		Location:            b.Location,
		Notes:               b.Notes,
		SpecialRequirements: b.SpecialRequirements,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

type SlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ConflictResponse reports the outcome of a dry-run conflict check.
type ConflictResponse struct {
	Conflict  bool       `json:"conflict"`
	BookingID string     `json:"booking_id,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}
