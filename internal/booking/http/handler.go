package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/veloria-studio/session-booking-backend/internal/artist"
	"github.com/veloria-studio/session-booking-backend/internal/auth"
	"github.com/veloria-studio/session-booking-backend/internal/booking"
	"github.com/veloria-studio/session-booking-backend/internal/pkg/response"
	"github.com/veloria-studio/session-booking-backend/internal/professional"
)

type Handler struct {
	service       booking.Service
	artistService artist.Service
	proService    professional.Service
}

func NewHandler(service booking.Service, artistService artist.Service, proService professional.Service) *Handler {
	return &Handler{
		service:       service,
		artistService: artistService,
		proService:    proService,
	}
}

// resolveActor looks up the profile matching the authenticated user's role.
func (h *Handler) resolveActor(c *gin.Context) (booking.Actor, bool) {
	actor := booking.Actor{
		UserID: auth.GetUserID(c),
		Role:   auth.GetRole(c),
	}

	ctx := c.Request.Context()
	switch actor.Role {
	case auth.RoleArtist:
		a, err := h.artistService.GetByUserID(ctx, actor.UserID)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "artist profile required"})
			return actor, false
		}
		actor.ProfileID = a.ID
		actor.ProfileName = a.StageName
	case auth.RoleProfessional:
		p, err := h.proService.GetByUserID(ctx, actor.UserID)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "professional profile required"})
			return actor, false
		}
		actor.ProfileID = p.ID
		actor.ProfileName = p.DisplayName
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "unknown role"})
		return actor, false
	}
	return actor, true
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	actor, ok := h.resolveActor(c)
	if !ok {
		return
	}

	b, err := h.service.Create(c.Request.Context(), actor, booking.CreateRequest{
		ProfessionalID:      body.ProfessionalID,
		SessionType:         booking.SessionType(body.SessionType),
		StartTime:           body.StartTime,
		DurationHours:       body.DurationHours,
		Location:            body.Location,
		Notes:               body.Notes,
		SpecialRequirements: body.SpecialRequirements,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// List returns the caller's bookings, scoped to their own profile.
func (h *Handler) List(c *gin.Context) {
	actor, ok := h.resolveActor(c)
	if !ok {
		return
	}

	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	if req.StartTimeFrom != "" {
		t, err := time.Parse(time.RFC3339, req.StartTimeFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_time_from must be RFC 3339"})
			return
		}
		filter.StartTimeFrom = &t
	}
	if req.StartTimeTo != "" {
		t, err := time.Parse(time.RFC3339, req.StartTimeTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_time_to must be RFC 3339"})
			return
		}
		filter.StartTimeTo = &t
	}

	switch actor.Role {
	case auth.RoleArtist:
		filter.ArtistID = actor.ProfileID
	case auth.RoleProfessional:
		filter.ProfessionalID = actor.ProfileID
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	actor, ok := h.resolveActor(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor, ok := h.resolveActor(c)
	if !ok {
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), actor, id, booking.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Reschedule(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body RescheduleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor, ok := h.resolveActor(c)
	if !ok {
		return
	}

	b, err := h.service.Reschedule(c.Request.Context(), actor, id, booking.RescheduleRequest{
		StartTime:     body.StartTime,
		DurationHours: body.DurationHours,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// CheckConflict probes an interval without reserving it.
func (h *Handler) CheckConflict(c *gin.Context) {
	professionalID := c.Query("professional_id")
	if _, err := uuid.Parse(professionalID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professional_id must be a valid UUID"})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start_time"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be RFC3339"})
		return
	}

	duration, err := strconv.Atoi(c.DefaultQuery("duration_hours", "1"))
	if err != nil || duration < booking.ModelDurationMin || duration > booking.ModelDurationMax {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration_hours is out of range"})
		return
	}

	end := start.Add(time.Duration(duration) * time.Hour)
	conflict, err := h.service.CheckConflict(c.Request.Context(), professionalID, start, end, c.Query("exclude_booking_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := ConflictResponse{Conflict: conflict != nil}
	if conflict != nil {
		resp.BookingID = conflict.BookingID
		resp.StartTime = &conflict.Start
		resp.EndTime = &conflict.End
	}
	c.JSON(http.StatusOK, resp)
}

// FreeSlots returns the professional's open slots on a date (public view).
func (h *Handler) FreeSlots(c *gin.Context) {
	professionalID := c.Query("professional_id")
	if _, err := uuid.Parse(professionalID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professional_id must be a valid UUID"})
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	slots, err := h.service.FreeSlots(c.Request.Context(), professionalID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = SlotResponse{StartTime: s.StartTime, EndTime: s.EndTime}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
