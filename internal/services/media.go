package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MediaStore keeps uploaded post images. Names are slash-separated paths
// relative to the media root, e.g. "posts/<uuid>.png".
type MediaStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, name string) error
}

// LocalMedia stores images on the local filesystem under Root.
type LocalMedia struct {
	Root string
}

var _ MediaStore = (*LocalMedia)(nil)

func NewLocalMedia(root string) *LocalMedia {
	return &LocalMedia{Root: root}
}

const mediaDir = "posts"

// imageExt derives the stored extension from the file content, falling back
// to the uploaded name.
func imageExt(header *multipart.FileHeader) string {
	if f, err := header.Open(); err == nil {
		defer f.Close()
		if mtype, err := mimetype.DetectReader(f); err == nil && mtype.Extension() != "" {
			return mtype.Extension()
		}
	}
	return strings.ToLower(filepath.Ext(header.Filename))
}

func (m *LocalMedia) Save(ctx context.Context, header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(m.Root, mediaDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name := path.Join(mediaDir, uuid.NewString()+imageExt(header))
	dst, err := os.Create(m.path(name))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(m.path(name))
		return "", fmt.Errorf("write media file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close media file: %w", err)
	}
	return name, nil
}

func (m *LocalMedia) Delete(ctx context.Context, name string) error {
	err := os.Remove(m.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

// path resolves a stored name, refusing to leave the media root.
func (m *LocalMedia) path(name string) string {
	clean := path.Clean("/" + name)
	return filepath.Join(m.Root, filepath.FromSlash(clean))
}
