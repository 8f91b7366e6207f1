package storage

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidPath = errors.New("invalid storage path")

// FileStorage keeps attachment bytes outside the database; rows only hold the
// returned key.
type FileStorage interface {
	// Upload writes file under key and returns the normalized key
	Upload(ctx context.Context, file io.Reader, key string) (string, error)

	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete is a no-op for missing keys
	Delete(ctx context.Context, key string) error
}
