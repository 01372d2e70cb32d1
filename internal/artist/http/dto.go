package http

import (
	"time"

	"github.com/veloria-studio/session-booking-backend/internal/artist"
	"github.com/veloria-studio/session-booking-backend/internal/pkg/request"
)

// ListArtistsRequest defines query parameters for listing artists.
type ListArtistsRequest struct {
	request.ListParams
	Genre string `form:"genre"`
}

type ArtistResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	StageName   string    `json:"stage_name"`
	Genres      []string  `json:"genres"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewArtistResponse(a *artist.Artist) ArtistResponse {
	genres := a.GenresList()
	if genres == nil {
		genres = []string{}
	}
	return ArtistResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		DisplayName: a.DisplayName,
		StageName:   a.StageName,
		Genres:      genres,
		Bio:         a.Bio,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ArtistTag is the minimal artist reference embedded in other responses.
type ArtistTag struct {
	ID        string `json:"id"`
	StageName string `json:"stage_name"`
}

type UpdateArtistBody struct {
	StageName *string `json:"stage_name"`
	Genres    *string `json:"genres"`
	Bio       *string `json:"bio"`
}
