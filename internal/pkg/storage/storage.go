package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded media (demo audio, cover art) lives.
type Storage interface {
	// Save writes content at the given relative path, creating parent
	// directories as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Open returns a reader for the file at the given relative path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Remove deletes the file at the given relative path. Removing a
	// missing file is not an error.
	Remove(ctx context.Context, path string) error
}
