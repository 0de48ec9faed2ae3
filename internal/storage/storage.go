package storage

import (
	"context"
	"io"
)

// Storage is the file storage capability used for task attachments.
type Storage interface {
	// Save stores a file at the given relative path.
	Save(ctx context.Context, path string, reader io.Reader) error

	// Open retrieves a file for reading.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file. Deleting an absent file is not an error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether a file is present.
	Exists(ctx context.Context, path string) (bool, error)
}

// Config holds storage configuration.
type Config struct {
	BasePath string
	BaseURL  string
}
