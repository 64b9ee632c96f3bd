package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/commerceops/backoffice/internal"
	"github.com/google/uuid"
)

// MaxFileSize caps product images at 5MB.
const MaxFileSize = 5 << 20

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type Service struct {
	cfg    internal.StorageConfig
	logger *slog.Logger

	mu    sync.Mutex
	store ObjectStore
}

func NewService(cfg internal.StorageConfig, logger *slog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
	}
}

// NewServiceWithStore injects a prebuilt store, bypassing lazy construction.
func NewServiceWithStore(cfg internal.StorageConfig, store ObjectStore, logger *slog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
		store:  store,
	}
}

// objectStore builds the S3 client on first use so a misconfigured storage
// section only fails upload requests, never startup.
func (s *Service) objectStore() (ObjectStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		return s.store, nil
	}
	if !s.cfg.Configured() {
		return nil, internal.NewConfigurationError("image storage is not configured", internal.ErrCodeStorageConfig)
	}

	store, err := NewS3Store(s.cfg)
	if err != nil {
		return nil, internal.NewConfigurationError("image storage is not configured", internal.ErrCodeStorageConfig)
	}
	s.store = store
	return store, nil
}

// ValidateFilename checks the extension against the allowed image types and
// returns the matching content type.
func ValidateFilename(filename string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return "", internal.NewValidationError(
			"Only jpg, jpeg and png files are allowed",
			internal.ErrCodeUploadInvalidType)
	}
	return contentType, nil
}

// Upload stores one image and returns its public URL. When oldKey is set the
// replaced object is deleted best-effort after a successful upload.
func (s *Service) Upload(ctx context.Context, filename string, size int64, body io.Reader, oldKey string) (string, error) {
	contentType, err := ValidateFilename(filename)
	if err != nil {
		return "", err
	}
	if size > MaxFileSize {
		return "", internal.NewValidationError(
			"File exceeds the 5MB size limit",
			internal.ErrCodeUploadTooLarge)
	}

	store, err := s.objectStore()
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("products/%s%s", uuid.NewString(), ext)

	putCtx, cancel := internal.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := store.Put(putCtx, key, body, contentType); err != nil {
		s.logger.Error("upload to object storage failed", "key", key, "error", err)
		return "", internal.NewExternalError("failed to store image", err)
	}

	if oldKey != "" {
		if err := store.Delete(ctx, oldKey); err != nil {
			s.logger.Warn("failed to delete replaced image", "key", oldKey, "error", err)
		}
	}

	return s.cfg.PublicURL(key), nil
}
