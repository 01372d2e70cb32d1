package http

import (
	"time"

	"github.com/veloria-studio/session-booking-backend/internal/demo"
)

type DemoResponse struct {
	ID          string    `json:"id"`
	ArtistID    string    `json:"artist_id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre,omitempty"`
	Description string    `json:"description,omitempty"`
	AudioURL    string    `json:"audio_url"`
	CoverURL    *string   `json:"cover_url"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewDemoResponse(d *demo.Demo) DemoResponse {
	var coverURL *string
	if d.CoverPath != nil {
		u := demo.CoverURL(d.ID)
		coverURL = &u
	}

	return DemoResponse{
		ID:          d.ID,
		ArtistID:    d.ArtistID,
		Title:       d.Title,
		Genre:       d.Genre,
		Description: d.Description,
		AudioURL:    demo.AudioURL(d.ID),
		CoverURL:    coverURL,
		IsPublic:    d.IsPublic,
		CreatedAt:   d.CreatedAt,
	}
}
