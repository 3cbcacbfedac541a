package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// AferoStore implements Store on top of an afero filesystem.
type AferoStore struct {
	fs afero.Fs
}

// NewAferoStore creates a new AferoStore.
func NewAferoStore(fs afero.Fs) *AferoStore {
	return &AferoStore{fs: fs}
}

// New returns an in-memory store when dir is empty, otherwise a store rooted
// at dir on the local disk.
func New(dir string) (*AferoStore, error) {
	if dir == "" {
		return NewAferoStore(afero.NewMemMapFs()), nil
	}
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir %s: %w", dir, err)
	}
	return NewAferoStore(afero.NewBasePathFs(osFs, dir)), nil
}

// Save writes the content of the reader to the given key.
func (s *AferoStore) Save(ctx context.Context, key string, reader io.Reader) (int64, error) {
	if err := s.fs.MkdirAll(filepath.Dir(key), 0o755); err != nil {
		return 0, err
	}
	f, err := s.fs.Create(key)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(f, reader)
}

// Delete removes a staged file. Deleting a missing key is not an error.
func (s *AferoStore) Delete(ctx context.Context, key string) error {
	if err := s.fs.Remove(key); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Get opens a staged file for reading.
func (s *AferoStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.fs.OpenFile(key, os.O_RDONLY, 0)
}
