package professional

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	UserID          string
	Specialization  string
	Skills          string
	ExperienceLevel string
	HourlyRate      *decimal.Decimal
}

type UpdateRequest struct {
	Specialization  *string
	Skills          *string
	ExperienceLevel *string
	HourlyRate      *decimal.Decimal
	ClearHourlyRate bool
	IsAvailable     *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Professional, error)
	GetByID(ctx context.Context, id string) (*Professional, error)
	GetByUserID(ctx context.Context, userID string) (*Professional, error)
	List(ctx context.Context, filter Filter) ([]*Professional, int, error)
	Update(ctx context.Context, userID string, req UpdateRequest) (*Professional, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func parseExperience(s string) ExperienceLevel {
	switch ExperienceLevel(s) {
	case ExperienceBeginner, ExperienceAdvanced, ExperienceProfessional:
		return ExperienceLevel(s)
	default:
		return ExperienceIntermediate
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Professional, error) {
	if strings.TrimSpace(req.Specialization) == "" {
		return nil, ErrSpecializationRequired
	}
	if req.HourlyRate != nil && req.HourlyRate.IsNegative() {
		return nil, ErrNegativeRate
	}

	p := &Professional{
		UserID:          req.UserID,
		Specialization:  strings.TrimSpace(req.Specialization),
		Skills:          strings.TrimSpace(req.Skills),
		ExperienceLevel: parseExperience(req.ExperienceLevel),
		HourlyRate:      req.HourlyRate,
		IsAvailable:     true,
		IsActive:        true,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Professional, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Professional, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Professional, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, userID string, req UpdateRequest) (*Professional, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Specialization != nil {
		if strings.TrimSpace(*req.Specialization) == "" {
			return nil, ErrSpecializationRequired
		}
		p.Specialization = strings.TrimSpace(*req.Specialization)
	}
	if req.Skills != nil {
		p.Skills = strings.TrimSpace(*req.Skills)
	}
	if req.ExperienceLevel != nil {
		p.ExperienceLevel = parseExperience(*req.ExperienceLevel)
	}
	if req.ClearHourlyRate {
		p.HourlyRate = nil
	} else if req.HourlyRate != nil {
		if req.HourlyRate.IsNegative() {
			return nil, ErrNegativeRate
		}
		p.HourlyRate = req.HourlyRate
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
