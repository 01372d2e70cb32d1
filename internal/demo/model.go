package demo

import (
	"net/http"
	"time"

	"github.com/veloria-studio/session-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "not_found", "demo not found")
	ErrTitleRequired    = apperror.New(http.StatusBadRequest, "invalid_input", "title is required")
	ErrNotAudio         = apperror.New(http.StatusBadRequest, "invalid_input", "file must be an audio upload")
	ErrTooLarge         = apperror.New(http.StatusRequestEntityTooLarge, "invalid_input", "file exceeds the upload size limit")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "unauthorized", "not allowed to modify this demo")
)

// MaxAudioSize caps demo uploads at 50 MB.
const MaxAudioSize = 50 << 20

// Demo is an audio sample an artist attaches to their profile, with optional
// cover art. Storage paths are internal; clients get URLs.
type Demo struct {
	ID               string
	ArtistID         string
	Title            string
	Genre            string
	Description      string
	AudioPath        string
	AudioContentType string
	AudioSize        int64
	CoverPath        *string
	IsPublic         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AudioURL returns the public URL for streaming the demo audio.
func AudioURL(id string) string {
	return "/demos/" + id + "/audio"
}

// CoverURL returns the public URL for the demo's cover thumbnail.
func CoverURL(id string) string {
	return "/demos/" + id + "/cover"
}
