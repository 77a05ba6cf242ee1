package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/lexdesk/internal/api/blob"
	"github.com/aussiebroadwan/lexdesk/internal/api/blob/local"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

func newUploadService(t *testing.T) *UploadService {
	t.Helper()
	dir, err := local.New(t.TempDir())
	require.NoError(t, err)
	return &UploadService{Blobs: dir}
}

func TestUploadService_Save(t *testing.T) {
	ctx := context.Background()
	svc := newUploadService(t)

	url, err := svc.Save(ctx, "image/png", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, UploadURLPrefix))
	require.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, UploadURLPrefix)
	require.Len(t, name, 32+len(".png"))

	rc, info, err := svc.Open(ctx, name)
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, pngBytes, got)
	require.Equal(t, "image/png", info.ContentType)
}

func TestUploadService_Rejects(t *testing.T) {
	ctx := context.Background()
	svc := newUploadService(t)
	svc.MaxBytes = 64

	_, err := svc.Save(ctx, "image/svg+xml", strings.NewReader("<svg/>"))
	require.ErrorIs(t, err, ErrUnsupportedImage)

	// Declared as an image but the bytes are HTML.
	_, err = svc.Save(ctx, "image/png", strings.NewReader("<html><script>alert(1)</script></html>"))
	require.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = svc.Save(ctx, "image/png", bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrImageRequired)

	_, err = svc.Save(ctx, "image/png", bytes.NewReader(append(pngBytes, make([]byte, 64)...)))
	require.ErrorIs(t, err, ErrImageTooLarge)
}

func TestUploadService_OpenRejectsPaths(t *testing.T) {
	svc := newUploadService(t)
	for _, name := range []string{"../secret", `..\secret`, "a/b.png", ""} {
		_, _, err := svc.Open(context.Background(), name)
		require.ErrorIs(t, err, blob.ErrNotFound, name)
	}
}
