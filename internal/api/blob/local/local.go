// Package local stores blobs as files in a single directory.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/lexdesk/internal/api/blob"
)

var _ blob.Storage = (*Dir)(nil)

type Dir struct {
	root string
}

// New creates root if needed.
func New(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) Put(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	if !blob.ValidName(name) {
		return blob.ErrInvalidName
	}

	// Write to a temp file first so a reader never sees a partial object.
	tmp, err := os.CreateTemp(d.root, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(d.root, name)); err != nil {
		return fmt.Errorf("failed to store object: %w", err)
	}
	return nil
}

func (d *Dir) Get(_ context.Context, name string) (io.ReadCloser, blob.Info, error) {
	if !blob.ValidName(name) {
		return nil, blob.Info{}, blob.ErrNotFound
	}

	f, err := os.Open(filepath.Join(d.root, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, blob.Info{}, blob.ErrNotFound
		}
		return nil, blob.Info{}, fmt.Errorf("failed to open object: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, blob.Info{}, fmt.Errorf("failed to stat object: %w", err)
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, blob.Info{}, blob.ErrNotFound
	}

	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return f, blob.Info{Name: name, ContentType: ct, Size: st.Size()}, nil
}

func (d *Dir) Delete(_ context.Context, name string) error {
	if !blob.ValidName(name) {
		return blob.ErrNotFound
	}
	err := os.Remove(filepath.Join(d.root, name))
	if errors.Is(err, fs.ErrNotExist) {
		return blob.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
