package professional

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/veloria-studio/session-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound               = apperror.New(http.StatusNotFound, "not_found", "professional not found")
	ErrSpecializationRequired = apperror.New(http.StatusBadRequest, "invalid_input", "specialization is required")
	ErrNegativeRate           = apperror.New(http.StatusBadRequest, "invalid_input", "hourly rate cannot be negative")
	ErrAlreadyExists          = apperror.New(http.StatusConflict, "already_exists", "professional profile already exists for this user")
)

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceProfessional ExperienceLevel = "professional"
)

// Professional is the bookable-party profile: producers, engineers, session
// musicians and so on. HourlyRate is nil when the professional has not set a
// rate; bookings against them are then priced out of band.
type Professional struct {
	ID              string
	UserID          string
	DisplayName     string // from the user account, read-only here
	Specialization  string
	Skills          string // comma-separated list
	ExperienceLevel ExperienceLevel
	HourlyRate      *decimal.Decimal
	IsAvailable     bool
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SkillsList splits the comma-separated skills field.
func (p *Professional) SkillsList() []string {
	var out []string
	for _, s := range strings.Split(p.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Filter defines parameters for listing professionals.
type Filter struct {
	Specialization string
	OnlyAvailable  bool
	Page           int
	PageSize       int
}
