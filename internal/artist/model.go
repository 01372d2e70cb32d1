package artist

import (
	"net/http"
	"strings"
	"time"

	"github.com/veloria-studio/session-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "not_found", "artist not found")
	ErrStageNameRequired = apperror.New(http.StatusBadRequest, "invalid_input", "stage name is required")
	ErrAlreadyExists     = apperror.New(http.StatusConflict, "already_exists", "artist profile already exists for this user")
)

// Artist is the booking-requester profile attached to a user account.
type Artist struct {
	ID          string
	UserID      string
	DisplayName string // from the user account, read-only here
	StageName   string
	Genres      string // comma-separated list
	Bio         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GenresList splits the comma-separated genres field.
func (a *Artist) GenresList() []string {
	var out []string
	for _, g := range strings.Split(a.Genres, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// Filter defines parameters for listing artists.
type Filter struct {
	Genre    string
	Page     int
	PageSize int
}
