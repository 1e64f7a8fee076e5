// Package storage provides object storage for uploaded photos.
package storage

import (
	"context"
	"fmt"

	"github.com/dormlife/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ObjectStorage stores uploaded files and resolves their public URLs
type ObjectStorage interface {
	// Upload stores data under the key and returns the object's URL
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under the key
	Exists(ctx context.Context, key string) (bool, error)

	// URL resolves the public URL for a stored object
	URL(key string) string
}

// New creates the storage backend selected by configuration
func New(cfg *config.StorageConfig, logger *zap.Logger) (ObjectStorage, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(cfg, logger)
	case "stub", "":
		return NewStubStorage(cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}
