package local

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/lexdesk/internal/api/blob"
)

func TestDir_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	d, err := New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	data := []byte("\x89PNG\r\n\x1a\nrest")
	require.NoError(t, d.Put(ctx, "abc.png", bytes.NewReader(data), int64(len(data)), "image/png"))

	rc, info, err := d.Get(ctx, "abc.png")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, data, got)
	require.Equal(t, "image/png", info.ContentType)
	require.EqualValues(t, len(data), info.Size)

	require.NoError(t, d.Delete(ctx, "abc.png"))
	_, _, err = d.Get(ctx, "abc.png")
	require.ErrorIs(t, err, blob.ErrNotFound)
	require.ErrorIs(t, d.Delete(ctx, "abc.png"), blob.ErrNotFound)
}

func TestDir_RejectsPathNames(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d, err := New(root)
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../x.png", `a\b.png`, "a/b.png"} {
		require.ErrorIs(t, d.Put(ctx, name, bytes.NewReader(nil), 0, ""), blob.ErrInvalidName, name)
		_, _, err := d.Get(ctx, name)
		require.ErrorIs(t, err, blob.ErrNotFound, name)
	}

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Empty(t, entries)
}
