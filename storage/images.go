// Package storage keeps uploaded attraction images, either under the local
// static directory or in a Cloudflare R2 bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ImageDir is the directory, relative to the storage root, that holds
// attraction images.
const ImageDir = "images"

var (
	ErrInvalidFilename  = errors.New("invalid image file name")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image too large")
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// ImageStore persists image bytes under a relative path such as
// images/<uuid>-museum.jpg and tells templates where to fetch them.
type ImageStore interface {
	Save(ctx context.Context, relPath string, data []byte, contentType string) error
	Delete(ctx context.Context, relPath string) error
	URL(relPath string) string
}

// Uploader validates uploaded images before handing them to an ImageStore.
type Uploader struct {
	store    ImageStore
	maxBytes int64
}

func NewUploader(store ImageStore, maxBytes int64) *Uploader {
	return &Uploader{store: store, maxBytes: maxBytes}
}

// Store saves the uploaded file and returns the relative path to persist on
// the attraction. A nil header means no image was sent and yields "".
func (u *Uploader) Store(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", nil
	}
	name := SecureFilename(fh.Filename)
	if name == "" {
		return "", ErrInvalidFilename
	}
	if fh.Size > u.maxBytes {
		return "", ErrImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	return u.save(ctx, name, f)
}

func (u *Uploader) save(ctx context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > u.maxBytes {
		return "", ErrImageTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mtype.String())
	}

	// Every upload gets its own key so no submission can replace another
	// attraction's image.
	relPath := path.Join(ImageDir, uuid.NewString()+"-"+name)
	if err := u.store.Save(ctx, relPath, data, mtype.String()); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return relPath, nil
}

// Discard removes an image saved by Store whose attraction was never
// written. An empty path is a no-op.
func (u *Uploader) Discard(ctx context.Context, relPath string) error {
	if relPath == "" {
		return nil
	}
	if err := u.store.Delete(ctx, relPath); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// URL resolves a stored relative path for templates.
func (u *Uploader) URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return u.store.URL(relPath)
}
