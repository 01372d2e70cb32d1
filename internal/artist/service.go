package artist

import (
	"context"
	"strings"
)

type CreateRequest struct {
	UserID    string
	StageName string
	Genres    string
	Bio       string
}

type UpdateRequest struct {
	StageName *string
	Genres    *string
	Bio       *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Artist, error)
	GetByID(ctx context.Context, id string) (*Artist, error)
	GetByUserID(ctx context.Context, userID string) (*Artist, error)
	List(ctx context.Context, filter Filter) ([]*Artist, int, error)
	Update(ctx context.Context, userID string, req UpdateRequest) (*Artist, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Artist, error) {
	if strings.TrimSpace(req.StageName) == "" {
		return nil, ErrStageNameRequired
	}

	a := &Artist{
		UserID:    req.UserID,
		StageName: strings.TrimSpace(req.StageName),
		Genres:    strings.TrimSpace(req.Genres),
		Bio:       req.Bio,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Artist, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Artist, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Artist, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, userID string, req UpdateRequest) (*Artist, error) {
	a, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.StageName != nil {
		if strings.TrimSpace(*req.StageName) == "" {
			return nil, ErrStageNameRequired
		}
		a.StageName = strings.TrimSpace(*req.StageName)
	}
	if req.Genres != nil {
		a.Genres = strings.TrimSpace(*req.Genres)
	}
	if req.Bio != nil {
		a.Bio = *req.Bio
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
