package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/veloria-studio/session-booking-backend/internal/artist"
	"github.com/veloria-studio/session-booking-backend/internal/auth"
	"github.com/veloria-studio/session-booking-backend/internal/pkg/response"
)

type Handler struct {
	service artist.Service
}

func NewHandler(service artist.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListArtistsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := artist.Filter{
		Genre:    req.Genre,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	artists, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ArtistResponse, len(artists))
	for i, a := range artists {
		items[i] = NewArtistResponse(a)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewArtistResponse(a))
}

// GetMe returns the artist profile of the authenticated user.
func (h *Handler) GetMe(c *gin.Context) {
	a, err := h.service.GetByUserID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewArtistResponse(a))
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var body UpdateArtistBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := artist.UpdateRequest{
		StageName: body.StageName,
		Genres:    body.Genres,
		Bio:       body.Bio,
	}

	a, err := h.service.Update(c.Request.Context(), auth.GetUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewArtistResponse(a))
}
