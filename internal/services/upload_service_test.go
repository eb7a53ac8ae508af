package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

type memoryStore struct {
	stored map[string][]byte
}

func (m *memoryStore) PutImage(_ context.Context, data []byte, contentType string) (string, error) {
	if m.stored == nil {
		m.stored = map[string][]byte{}
	}
	key := "uploads/test" + map[string]string{"image/png": ".png", "image/jpeg": ".jpg"}[contentType]
	m.stored[key] = data
	return key, nil
}

func TestUpload_ValidatesOnlyWithoutStore(t *testing.T) {
	svc := NewUploadService(nil)

	key, err := svc.Upload(context.Background(), []byte("anything"), "image/jpeg")
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestUpload_RejectsOtherFormats(t *testing.T) {
	svc := NewUploadService(&memoryStore{})

	_, err := svc.Upload(context.Background(), []byte("GIF89a"), "image/gif")
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = svc.Upload(context.Background(), []byte("plain text"), "")
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestUpload_SniffsGenericType(t *testing.T) {
	store := &memoryStore{}
	svc := NewUploadService(store)

	key, err := svc.Upload(context.Background(), pngHeader, "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "uploads/test.png", key)
	assert.Equal(t, pngHeader, store.stored[key])
}
