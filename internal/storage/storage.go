package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("photo not found in storage")
	ErrInvalidKey = errors.New("invalid storage key")
)

// PhotoStore keeps vehicle photo bytes. Keys are slash-separated and relative.
type PhotoStore interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, int64, error)
}

// Config holds storage configuration
type Config struct {
	Type         string // "local"
	UploadDir    string
	MaxFileBytes int64
}

// NewPhotoKey builds a unique key of the form bookings/<id>/<phase>/<type>-<uuid><ext>.
func NewPhotoKey(bookingID int32, phase, photoType, ext string) string {
	return fmt.Sprintf("bookings/%d/%s/%s-%s%s", bookingID, phase, photoType, uuid.NewString(), ext)
}

// cleanKey rejects absolute keys and anything that climbs out of the root.
func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
