package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/veloria-studio/session-booking-backend/internal/auth"
	"github.com/veloria-studio/session-booking-backend/internal/pkg/response"
	"github.com/veloria-studio/session-booking-backend/internal/professional"
)

type Handler struct {
	service professional.Service
}

func NewHandler(service professional.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListProfessionalsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := professional.Filter{
		Specialization: req.Specialization,
		OnlyAvailable:  req.OnlyAvailable,
		Page:           req.Page,
		PageSize:       req.PageSize,
	}

	pros, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ProfessionalResponse, len(pros))
	for i, p := range pros {
		items[i] = NewProfessionalResponse(p)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewProfessionalResponse(p))
}

// GetMe returns the professional profile of the authenticated user.
func (h *Handler) GetMe(c *gin.Context) {
	p, err := h.service.GetByUserID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewProfessionalResponse(p))
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var body UpdateProfessionalBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := professional.UpdateRequest{
		Specialization:  body.Specialization,
		Skills:          body.Skills,
		ExperienceLevel: body.ExperienceLevel,
		HourlyRate:      body.HourlyRate,
		ClearHourlyRate: body.ClearHourlyRate,
		IsAvailable:     body.IsAvailable,
	}

	p, err := h.service.Update(c.Request.Context(), auth.GetUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewProfessionalResponse(p))
}
