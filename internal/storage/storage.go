package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/config"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no image exists for a reference
	ErrNotFound = errors.New("attachment not found")
	// ErrInvalidReference is returned for references this store never issued
	ErrInvalidReference = errors.New("invalid attachment reference")
	// ErrUnsupportedType is returned for uploads that are not images
	ErrUnsupportedType = errors.New("unsupported attachment type")
)

// allowedTypes maps accepted image content types to the extension stored in the reference
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// Storage stores the images owners attach to quote requests. References
// returned by Upload are opaque to the rest of the system.
type Storage interface {
	Upload(ctx context.Context, contentType string, data io.Reader) (string, int64, error)
	Download(ctx context.Context, reference string) (io.ReadCloser, error)
	Delete(ctx context.Context, reference string) error
}

// NewStorage creates a new storage instance based on configuration.
// For local mode, files are stored on the local filesystem.
// For cloud/azure mode, files are stored in Azure Blob Storage.
func NewStorage(cfg *config.StorageConfig, logger *zap.Logger) (Storage, error) {
	switch cfg.Mode {
	case "local":
		return NewLocalStorage(cfg.LocalBasePath)
	case "cloud", "azure":
		if cfg.CloudConnectionString == "" {
			return nil, fmt.Errorf("cloud connection string required for azure storage")
		}
		return NewAzureBlobStorage(cfg.CloudConnectionString, cfg.CloudContainer, logger)
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.Mode)
	}
}

// newReference builds a fresh reference for an upload of the given content type
func newReference(contentType string) (string, error) {
	ext, ok := allowedTypes[normalizeType(contentType)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	return uuid.New().String() + ext, nil
}

// ValidateReference checks that a reference has the shape produced by Upload
func ValidateReference(reference string) error {
	ext := filepath.Ext(reference)
	if _, err := uuid.Parse(strings.TrimSuffix(reference, ext)); err != nil {
		return ErrInvalidReference
	}
	for _, allowed := range allowedTypes {
		if ext == allowed {
			return nil
		}
	}
	return ErrInvalidReference
}

// ContentTypeFor returns the image content type implied by a reference
func ContentTypeFor(reference string) string {
	ext := filepath.Ext(reference)
	for contentType, allowed := range allowedTypes {
		if ext == allowed {
			return contentType
		}
	}
	return "application/octet-stream"
}

func normalizeType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// LocalStorage implements Storage interface for local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// path shards files by the first characters of the reference
func (s *LocalStorage) path(reference string) string {
	return filepath.Join(s.basePath, reference[:2], reference[2:4], reference)
}

// Upload writes an image to local storage
func (s *LocalStorage) Upload(ctx context.Context, contentType string, data io.Reader) (string, int64, error) {
	reference, err := newReference(contentType)
	if err != nil {
		return "", 0, err
	}
	fullPath := s.path(reference)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, data)
	if err != nil {
		os.Remove(fullPath) // Cleanup on error
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return reference, size, nil
}

// Download opens a stored image
func (s *LocalStorage) Download(ctx context.Context, reference string) (io.ReadCloser, error) {
	if err := ValidateReference(reference); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path(reference))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes a stored image; deleting a missing one is not an error
func (s *LocalStorage) Delete(ctx context.Context, reference string) error {
	if err := ValidateReference(reference); err != nil {
		return err
	}

	if err := os.Remove(s.path(reference)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
