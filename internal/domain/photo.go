package domain

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// DefaultMaxPhotoBytes is the largest photo the form accepts (5 MB).
const DefaultMaxPhotoBytes int64 = 5 * 1024 * 1024

// MaxPhotoNameLength bounds the filename kept for an attached photo.
const MaxPhotoNameLength = 255

// DefaultPhotoTypes mirrors the file picker's accept filter.
var DefaultPhotoTypes = []string{"image/png", "image/jpeg", "image/jpg"}

// Photo is the metadata of an image attached to a draft. The bytes live in a
// staging store and are referenced by StorageKey.
type Photo struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required"`
	Size        int64  `json:"size" validate:"gte=0"`
	StorageKey  string `json:"storage_key" validate:"required,safepath"`
}

// Validate checks the metadata before the photo is attached to a draft.
func (p Photo) Validate() error {
	if err := validatorInstance.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrPhotoInvalid, err)
	}
	return nil
}

// PhotoPolicy holds the size and type limits applied before a photo enters a
// draft.
type PhotoPolicy struct {
	MaxBytes     int64
	AllowedTypes map[string]bool
}

// NewPhotoPolicy builds a policy; a non-positive maxBytes disables the size
// check and an empty type list allows any type.
func NewPhotoPolicy(maxBytes int64, allowedTypes []string) PhotoPolicy {
	types := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			types[t] = true
		}
	}
	return PhotoPolicy{MaxBytes: maxBytes, AllowedTypes: types}
}

// DefaultPhotoPolicy is 5 MB of PNG or JPEG.
func DefaultPhotoPolicy() PhotoPolicy {
	return NewPhotoPolicy(DefaultMaxPhotoBytes, DefaultPhotoTypes)
}

// Check rejects photos that are too large or of a disallowed content type.
func (p PhotoPolicy) Check(size int64, contentType string) error {
	if p.MaxBytes > 0 && size > p.MaxBytes {
		return fmt.Errorf("%d bytes exceeds the limit of %d bytes: %w", size, p.MaxBytes, ErrPhotoTooLarge)
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if len(p.AllowedTypes) > 0 && !p.AllowedTypes[ct] {
		return fmt.Errorf("type %q: %w", contentType, ErrPhotoTypeNotAllowed)
	}
	return nil
}

// CheckName rejects filenames longer than MaxPhotoNameLength characters.
func (p PhotoPolicy) CheckName(filename string) error {
	if n := utf8.RuneCountInString(filename); n > MaxPhotoNameLength {
		return fmt.Errorf("%d characters exceeds the limit of %d: %w", n, MaxPhotoNameLength, ErrPhotoNameTooLong)
	}
	return nil
}

// PhotoStore persists staged photo bytes between attach and submit.
type PhotoStore interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
