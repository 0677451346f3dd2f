package domain

import (
	"context"
	"errors"
	"io"
)

// Storage faults. All of them leave nothing reachable at a public path.
var (
	ErrTooLarge    = errors.New("file too large")
	ErrInvalidPath = errors.New("cannot store file outside uploads directory")
	ErrIOFailure   = errors.New("could not store file")
)

// MaxUploadBytes is the largest blob a FileStore accepts (20 MiB).
const MaxUploadBytes int64 = 20 << 20

// FileStore persists uploaded blobs under a fixed root and returns the public path they are served at.
type FileStore interface {
	// Save returns "" and no error for an empty upload.
	Save(ctx context.Context, src io.Reader, originalName string, size int64) (string, error)
	Remove(ctx context.Context, publicPath string) error
}
