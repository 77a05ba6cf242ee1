package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/lexdesk/internal/api/blob"
	"github.com/aussiebroadwan/lexdesk/pkg/cryptox"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

// MaxImageBytes is the largest accepted upload.
const MaxImageBytes = 3 << 20

// UploadURLPrefix is where stored images are served from.
const UploadURLPrefix = "/uploads/"

var (
	ErrImageRequired    = errors.New("image required")
	ErrImageTooLarge    = errors.New("image too large")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadService stores staff-uploaded images under random names.
type UploadService struct {
	Blobs    blob.Storage
	MaxBytes int64
}

func (s *UploadService) maxBytes() int64 {
	if s.MaxBytes > 0 {
		return s.MaxBytes
	}
	return MaxImageBytes
}

// Save stores an image and returns its public URL. declaredType is the
// client's Content-Type; the stored type comes from sniffing the bytes, and
// both must be an allowed image type.
func (s *UploadService) Save(ctx context.Context, declaredType string, r io.Reader) (string, error) {
	if r == nil {
		return "", ErrImageRequired
	}
	if _, ok := imageExtensions[declaredType]; !ok {
		return "", ErrUnsupportedImage
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes()+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return "", ErrImageRequired
	}
	if int64(len(data)) > s.maxBytes() {
		return "", ErrImageTooLarge
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", ErrUnsupportedImage
	}

	name, err := randomName(ext)
	if err != nil {
		return "", err
	}
	if err := s.Blobs.Put(ctx, name, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		slogx.FromContext(ctx).Error("failed to store upload", slog.Any("error", err))
		return "", fmt.Errorf("store image: %w", err)
	}

	slogx.FromContext(ctx).Info("image uploaded",
		slog.String("name", name),
		slog.String("content_type", contentType),
		slog.Int("size", len(data)),
	)
	return UploadURLPrefix + name, nil
}

// Open returns a stored image. Names containing a path separator are
// rejected as not found.
func (s *UploadService) Open(ctx context.Context, name string) (io.ReadCloser, blob.Info, error) {
	if !blob.ValidName(name) {
		return nil, blob.Info{}, blob.ErrNotFound
	}
	return s.Blobs.Get(ctx, name)
}

func randomName(ext string) (string, error) {
	name, err := cryptox.GenerateHex(cryptox.FileNameSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	return name + ext, nil
}
