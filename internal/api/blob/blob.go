// Package blob stores admin-uploaded images.
package blob

import (
	"context"
	"errors"
	"io"
	"strings"
)

var (
	ErrNotFound    = errors.New("blob: not found")
	ErrInvalidName = errors.New("blob: invalid object name")
)

// Info describes a stored object.
type Info struct {
	Name        string
	ContentType string
	Size        int64
}

// Storage is implemented by the local directory and MinIO backends.
type Storage interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error

	// Get returns ErrNotFound for unknown names. The caller closes the reader.
	Get(ctx context.Context, name string) (io.ReadCloser, Info, error)

	Delete(ctx context.Context, name string) error
}

// ValidName reports whether name is a flat object name safe to use as a
// file name and as a URL path segment.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." || len(name) > 128 {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}
