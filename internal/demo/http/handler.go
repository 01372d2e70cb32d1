package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/veloria-studio/session-booking-backend/internal/artist"
	"github.com/veloria-studio/session-booking-backend/internal/auth"
	"github.com/veloria-studio/session-booking-backend/internal/demo"
	"github.com/veloria-studio/session-booking-backend/internal/pkg/response"
)

type Handler struct {
	service       demo.Service
	artistService artist.Service
}

func NewHandler(service demo.Service, artistService artist.Service) *Handler {
	return &Handler{service: service, artistService: artistService}
}

// ownArtistID resolves the authenticated user's artist profile.
func (h *Handler) ownArtistID(c *gin.Context) (string, bool) {
	a, err := h.artistService.GetByUserID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "artist profile required"})
		return "", false
	}
	return a.ID, true
}

func (h *Handler) Upload(c *gin.Context) {
	artistID, ok := h.ownArtistID(c)
	if !ok {
		return
	}

	audio, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}
	cover, _ := c.FormFile("cover")

	d, err := h.service.Upload(c.Request.Context(), demo.UploadRequest{
		ArtistID:    artistID,
		Title:       c.PostForm("title"),
		Genre:       c.PostForm("genre"),
		Description: c.PostForm("description"),
		IsPublic:    c.DefaultPostForm("is_public", "true") == "true",
		Audio:       audio,
		Cover:       cover,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewDemoResponse(d))
}

// ListByArtist returns an artist's public demos.
func (h *Handler) ListByArtist(c *gin.Context) {
	artistID := c.Query("artist_id")
	if _, err := uuid.Parse(artistID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "artist_id must be a valid UUID"})
		return
	}

	demos, err := h.service.ListByArtist(c.Request.Context(), artistID, false)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]DemoResponse, len(demos))
	for i, d := range demos {
		items[i] = NewDemoResponse(d)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListMine returns all of the authenticated artist's demos, private included.
func (h *Handler) ListMine(c *gin.Context) {
	artistID, ok := h.ownArtistID(c)
	if !ok {
		return
	}

	demos, err := h.service.ListByArtist(c.Request.Context(), artistID, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]DemoResponse, len(demos))
	for i, d := range demos {
		items[i] = NewDemoResponse(d)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) StreamAudio(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rc, d, err := h.service.OpenAudio(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, d.AudioSize, d.AudioContentType, rc, nil)
}

func (h *Handler) Cover(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rc, _, err := h.service.OpenCover(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	artistID, ok := h.ownArtistID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, artistID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
