package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dcbak/dcbak/internal/storage"
)

func init() {
	storage.Register(&LocalStorageType{})
}

// LocalStorageType is the factory for local storage
type LocalStorageType struct{}

// Name returns the storage type identifier
func (t *LocalStorageType) Name() string {
	return "local"
}

// Create instantiates a new local storage from options
func (t *LocalStorageType) Create(poolName string, options map[string]string) (storage.Storage, error) {
	path, ok := options["path"]
	if !ok || path == "" {
		return nil, fmt.Errorf("local storage requires 'path' option")
	}

	return New(path)
}

// New returns local storage rooted at path, creating it if missing
func New(path string) (*LocalStorage, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{basePath: path}, nil
}

// LocalStorage implements Storage for a flat directory of artifacts
type LocalStorage struct {
	basePath string
}

// Store saves artifact data to the directory
func (l *LocalStorage) Store(ctx context.Context, key string, reader io.Reader) error {
	fullPath := filepath.Join(l.basePath, key)

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(fullPath) // Clean up on failure
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// List returns all artifacts whose name starts with prefix, newest first
func (l *LocalStorage) List(ctx context.Context, prefix string) ([]storage.BackupFile, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var files []storage.BackupFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, storage.BackupFile{
			Key:          entry.Name(),
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].LastModified.After(files[j].LastModified)
	})

	return files, nil
}

// Delete removes an artifact file
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := os.Remove(filepath.Join(l.basePath, key)); err != nil {
		if os.IsNotExist(err) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// Get retrieves an artifact file for reading
func (l *LocalStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(l.basePath, key))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}
