// Package store persists small named documents, such as the editor content
// and the selected theme, as files in a directory.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/google/renameio"
)

// Well-known keys.
const (
	KeyContent = "markdown-content"
	KeyTheme   = "theme"
)

var (
	// ErrNotFound is returned by Get for a key that was never stored.
	ErrNotFound = errors.New("key not found")
	// ErrInvalidKey is returned for keys outside [a-z0-9-].
	ErrInvalidKey = errors.New("invalid key")
)

var validKey = regexp.MustCompile(`^[a-z0-9-]+$`)

// Store is a directory of key files. Writes are atomic: a reader sees
// either the previous or the new value, never a partial one.
type Store struct {
	dir string
	mu  sync.Mutex // serializes writers
}

// Open returns a Store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key), nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), nil
}

// GetOr returns the value stored under key, or fallback when it is missing.
func (s *Store) GetOr(key, fallback string) (string, error) {
	value, err := s.Get(key)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	return value, err
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := renameio.WriteFile(path, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
