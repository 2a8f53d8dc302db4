package photostore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var ErrEmptyPhoto = errors.New("photo payload is empty")

// Store persists submitted photos as opaque blobs on disk. Callers only ever
// see the returned handle; the storage layout is an implementation detail.
type Store struct {
	dir string
}

// New creates a photo store rooted at dir, creating the directory if needed
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the photo bytes under a fresh UUID name and returns its handle
func (s *Store) Save(photo []byte) (string, error) {
	if len(photo) == 0 {
		return "", ErrEmptyPhoto
	}

	name := uuid.New().String() + ".jpg"
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, photo, 0o644); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	return path, nil
}
