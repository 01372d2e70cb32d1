package http

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/veloria-studio/session-booking-backend/internal/pkg/request"
	"github.com/veloria-studio/session-booking-backend/internal/professional"
)

// ListProfessionalsRequest defines query parameters for listing professionals.
type ListProfessionalsRequest struct {
	request.ListParams
	Specialization string `form:"specialization"`
	OnlyAvailable  bool   `form:"only_available"`
}

type ProfessionalResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	DisplayName     string    `json:"display_name"`
	Specialization  string    `json:"specialization"`
	Skills          []string  `json:"skills"`
	ExperienceLevel string    `json:"experience_level"`
	HourlyRate      *string   `json:"hourly_rate"` // decimal string, null when unset
	IsAvailable     bool      `json:"is_available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewProfessionalResponse(p *professional.Professional) ProfessionalResponse {
	skills := p.SkillsList()
	if skills == nil {
		skills = []string{}
	}

	var rate *string
	if p.HourlyRate != nil {
		s := p.HourlyRate.StringFixed(2)
		rate = &s
	}

	return ProfessionalResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		DisplayName:     p.DisplayName,
		Specialization:  p.Specialization,
		Skills:          skills,
		ExperienceLevel: string(p.ExperienceLevel),
		HourlyRate:      rate,
		IsAvailable:     p.IsAvailable,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ProfessionalTag is the minimal professional reference embedded in other responses.
type ProfessionalTag struct {
	ID             string `json:"id"`
	Specialization string `json:"specialization"`
}

type UpdateProfessionalBody struct {
	Specialization  *string          `json:"specialization"`
	Skills          *string          `json:"skills"`
	ExperienceLevel *string          `json:"experience_level" binding:"omitempty,oneof=beginner intermediate advanced professional"`
	HourlyRate      *decimal.Decimal `json:"hourly_rate"`
	ClearHourlyRate bool             `json:"clear_hourly_rate"`
	IsAvailable     *bool            `json:"is_available"`
}
