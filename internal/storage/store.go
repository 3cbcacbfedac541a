package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Store defines the interface for a staged-photo storage backend.
type Store interface {
	Save(ctx context.Context, key string, reader io.Reader) (int64, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// safeExt matches the extensions kept in storage keys.
var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// DraftKey builds a unique storage key for a photo attached to a draft.
// Only the extension of the original filename is kept, and only when it is
// short and alphanumeric.
func DraftKey(draftID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if !safeExt.MatchString(ext) {
		ext = ""
	}
	return path.Join("drafts", draftID, uuid.NewString()+ext)
}
