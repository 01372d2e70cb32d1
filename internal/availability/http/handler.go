package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/veloria-studio/session-booking-backend/internal/auth"
	"github.com/veloria-studio/session-booking-backend/internal/availability"
	"github.com/veloria-studio/session-booking-backend/internal/pkg/response"
	"github.com/veloria-studio/session-booking-backend/internal/professional"
)

type Handler struct {
	service    availability.Service
	proService professional.Service
}

func NewHandler(service availability.Service, proService professional.Service) *Handler {
	return &Handler{service: service, proService: proService}
}

// ownProfessionalID resolves the authenticated user's professional profile.
func (h *Handler) ownProfessionalID(c *gin.Context) (string, bool) {
	p, err := h.proService.GetByUserID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "professional profile required"})
		return "", false
	}
	return p.ID, true
}

// List returns the active windows of a professional (public view).
func (h *Handler) List(c *gin.Context) {
	professionalID := c.Query("professional_id")
	if _, err := uuid.Parse(professionalID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professional_id must be a valid UUID"})
		return
	}

	windows, err := h.service.ListByProfessional(c.Request.Context(), professionalID, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]WindowResponse, len(windows))
	for i, w := range windows {
		items[i] = NewWindowResponse(w)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListMine returns all windows of the authenticated professional, including
// deactivated ones.
func (h *Handler) ListMine(c *gin.Context) {
	proID, ok := h.ownProfessionalID(c)
	if !ok {
		return
	}

	windows, err := h.service.ListByProfessional(c.Request.Context(), proID, false)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]WindowResponse, len(windows))
	for i, w := range windows {
		items[i] = NewWindowResponse(w)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateWindowBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	proID, ok := h.ownProfessionalID(c)
	if !ok {
		return
	}

	parseDate := func(s *string) (*time.Time, bool) {
		if s == nil {
			return nil, true
		}
		t, err := time.Parse("2006-01-02", *s)
		if err != nil {
			return nil, false
		}
		return &t, true
	}

	specificDate, ok := parseDate(body.SpecificDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "specific_date must be YYYY-MM-DD"})
		return
	}
	recurrenceEnd, ok := parseDate(body.RecurrenceEnd)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recurrence_end must be YYYY-MM-DD"})
		return
	}

	req := availability.CreateRequest{
		ProfessionalID: proID,
		Mode:           availability.Mode(body.Mode),
		DayOfWeek:      body.DayOfWeek,
		SpecificDate:   specificDate,
		StartTime:      body.StartTime,
		EndTime:        body.EndTime,
		RecurrenceEnd:  recurrenceEnd,
	}

	w, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewWindowResponse(w))
}

func (h *Handler) SetActive(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body SetActiveBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	proID, ok := h.ownProfessionalID(c)
	if !ok {
		return
	}

	w, err := h.service.SetActive(c.Request.Context(), id, proID, *body.IsActive)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWindowResponse(w))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	proID, ok := h.ownProfessionalID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, proID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Calendar returns the professional's open intervals per day over a date
// range (public view). Days without any open interval are omitted.
func (h *Handler) Calendar(c *gin.Context) {
	professionalID := c.Query("professional_id")
	if _, err := uuid.Parse(professionalID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professional_id must be a valid UUID"})
		return
	}

	from := time.Now()
	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		from = parsed
	}

	days := availability.CalendarDays
	if s := c.Query("days"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 || parsed > 90 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 90"})
			return
		}
		days = parsed
	}

	schedule, err := h.service.Calendar(c.Request.Context(), professionalID, from, days)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CalendarDayResponse, len(schedule))
	for i, d := range schedule {
		items[i] = NewCalendarDayResponse(d)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
