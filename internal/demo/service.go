package demo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veloria-studio/session-booking-backend/internal/pkg/storage"
)

type UploadRequest struct {
	ArtistID    string
	Title       string
	Genre       string
	Description string
	IsPublic    bool
	Audio       *multipart.FileHeader
	Cover       *multipart.FileHeader
}

type Service interface {
	Upload(ctx context.Context, req UploadRequest) (*Demo, error)
	GetByID(ctx context.Context, id string) (*Demo, error)
	ListByArtist(ctx context.Context, artistID string, includePrivate bool) ([]*Demo, error)
	// OpenAudio streams the stored audio file.
	OpenAudio(ctx context.Context, id string) (io.ReadCloser, *Demo, error)
	// OpenCover streams the stored cover thumbnail.
	OpenCover(ctx context.Context, id string) (io.ReadCloser, *Demo, error)
	Delete(ctx context.Context, id, ownerArtistID string) error
}

type service struct {
	repo    Repository
	storage storage.Storage
	logger  *zap.Logger
}

func NewService(repo Repository, store storage.Storage, logger *zap.Logger) Service {
	return &service{repo: repo, storage: store, logger: logger}
}

// shardPath spreads stored files across subdirectories keyed by the first two
// characters of the file ID.
func shardPath(fileID, suffix string) string {
	return fmt.Sprintf("demos/%s/%s%s", fileID[:2], fileID, suffix)
}

func (s *service) Upload(ctx context.Context, req UploadRequest) (*Demo, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if req.Audio.Size > MaxAudioSize {
		return nil, ErrTooLarge
	}

	contentType := req.Audio.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		return nil, ErrNotAudio
	}

	src, err := req.Audio.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded audio failed: %w", err)
	}
	defer src.Close()

	fileID := uuid.New().String()
	audioPath := shardPath(fileID, strings.ToLower(filepath.Ext(req.Audio.Filename)))

	if err := s.storage.Save(ctx, audioPath, src); err != nil {
		return nil, fmt.Errorf("save audio failed: %w", err)
	}

	var coverPath *string
	if req.Cover != nil {
		if p, err := s.saveCover(ctx, fileID, req.Cover); err != nil {
			// A broken cover image should not sink the whole upload.
			s.logger.Warn("demo cover processing failed", zap.String("artist_id", req.ArtistID), zap.Error(err))
		} else {
			coverPath = &p
		}
	}

	d := &Demo{
		ArtistID:         req.ArtistID,
		Title:            req.Title,
		Genre:            req.Genre,
		Description:      req.Description,
		AudioPath:        audioPath,
		AudioContentType: contentType,
		AudioSize:        req.Audio.Size,
		CoverPath:        coverPath,
		IsPublic:         req.IsPublic,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		_ = s.storage.Remove(ctx, audioPath)
		if coverPath != nil {
			_ = s.storage.Remove(ctx, *coverPath)
		}
		return nil, err
	}
	return d, nil
}

func (s *service) saveCover(ctx context.Context, fileID string, header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded cover failed: %w", err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read uploaded cover failed: %w", err)
	}

	thumb, err := storage.Thumbnail(bytes.NewReader(content), 600, 600)
	if err != nil {
		return "", err
	}

	path := shardPath(fileID, "_cover.jpg")
	if err := s.storage.Save(ctx, path, thumb); err != nil {
		return "", fmt.Errorf("save cover failed: %w", err)
	}
	return path, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Demo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByArtist(ctx context.Context, artistID string, includePrivate bool) ([]*Demo, error) {
	return s.repo.ListByArtist(ctx, artistID, !includePrivate)
}

func (s *service) OpenAudio(ctx context.Context, id string) (io.ReadCloser, *Demo, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.storage.Open(ctx, d.AudioPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open stored audio failed: %w", err)
	}
	return rc, d, nil
}

func (s *service) OpenCover(ctx context.Context, id string) (io.ReadCloser, *Demo, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if d.CoverPath == nil {
		return nil, nil, ErrNotFound
	}

	rc, err := s.storage.Open(ctx, *d.CoverPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open stored cover failed: %w", err)
	}
	return rc, d, nil
}

func (s *service) Delete(ctx context.Context, id, ownerArtistID string) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d.ArtistID != ownerArtistID {
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Best-effort cleanup after the row is gone.
	if err := s.storage.Remove(ctx, d.AudioPath); err != nil {
		s.logger.Warn("demo audio cleanup failed", zap.String("demo_id", id), zap.Error(err))
	}
	if d.CoverPath != nil {
		if err := s.storage.Remove(ctx, *d.CoverPath); err != nil {
			s.logger.Warn("demo cover cleanup failed", zap.String("demo_id", id), zap.Error(err))
		}
	}
	return nil
}
