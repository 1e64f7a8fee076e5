package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// StubStorage implements ObjectStorage in memory. Used in development and
// tests where no object store is available.
type StubStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

// NewStubStorage creates an in-memory storage backend
func NewStubStorage(baseURL string) *StubStorage {
	if baseURL == "" {
		baseURL = "http://localhost/uploads"
	}
	return &StubStorage{
		objects: make(map[string][]byte),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Upload stores data under the key and returns the object's URL
func (s *StubStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[key] = stored

	return s.URL(key), nil
}

// Delete removes an object. Deleting a missing key is not an error.
func (s *StubStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, key)
	return nil
}

// Exists reports whether an object is stored under the key
func (s *StubStorage) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.objects[key]
	return exists, nil
}

// URL resolves the public URL for a stored object
func (s *StubStorage) URL(key string) string {
	return s.baseURL + "/" + key
}

// Get returns a stored object's bytes (for testing)
func (s *StubStorage) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.objects[key]
	return data, exists
}

var _ ObjectStorage = (*StubStorage)(nil)
