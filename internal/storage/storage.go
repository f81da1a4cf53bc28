package storage

import (
	"context"
	"io"
	"time"
)

// BackupFile represents a stored backup artifact
type BackupFile struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Storage defines the interface for backup storage backends
type Storage interface {
	// Store saves artifact data under the given key
	Store(ctx context.Context, key string, reader io.Reader) error

	// List returns all artifacts matching the prefix
	List(ctx context.Context, prefix string) ([]BackupFile, error)

	// Delete removes an artifact
	Delete(ctx context.Context, key string) error

	// Get retrieves an artifact for reading
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// StorageType creates Storage instances from configuration.
// Each storage backend implements this interface to provide factory functionality.
type StorageType interface {
	// Name returns the type identifier ("local", "s3", etc.)
	Name() string

	// Create instantiates storage from pool configuration options
	Create(poolName string, options map[string]string) (Storage, error)
}
