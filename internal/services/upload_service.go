package services

import (
	"context"
	"mime"
	"net/http"

	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/storage"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// UploadService validates uploaded photos and stores them when a store is
// configured. Without a store uploads are only validated.
type UploadService struct {
	store storage.ImageStore
}

func NewUploadService(store storage.ImageStore) *UploadService {
	return &UploadService{store: store}
}

// Upload returns the storage key, or "" when nothing was stored.
func (s *UploadService) Upload(ctx context.Context, data []byte, declaredType string) (string, error) {
	contentType := imageType(data, declaredType)
	if !allowedImageTypes[contentType] {
		return "", ErrUnsupportedImage
	}

	if s.store == nil {
		return "", nil
	}
	return s.store.PutImage(ctx, data, contentType)
}

// imageType trusts the declared part type unless it is missing or generic,
// in which case the bytes are sniffed.
func imageType(data []byte, declared string) string {
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
			return mt
		}
	}
	return http.DetectContentType(data)
}
