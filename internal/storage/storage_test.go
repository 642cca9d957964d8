package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/config"
	"github.com/straye-as/repair-quote-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	ref, size, err := s.Upload(ctx, "image/jpeg; charset=binary", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)
	assert.True(t, strings.HasSuffix(ref, ".jpg"))
	require.NoError(t, storage.ValidateReference(ref))
	assert.Equal(t, "image/jpeg", storage.ContentTypeFor(ref))

	rc, err := s.Download(ctx, ref)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "jpeg-bytes", string(body))

	require.NoError(t, s.Delete(ctx, ref))
	require.NoError(t, s.Delete(ctx, ref), "deleting twice is fine")

	_, err = s.Download(ctx, ref)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLocalStorage_RejectsNonImages(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, _, err = s.Upload(context.Background(), "application/pdf", strings.NewReader("%PDF"))
	assert.ErrorIs(t, err, storage.ErrUnsupportedType)
}

func TestValidateReference(t *testing.T) {
	id := uuid.NewString()
	tests := []struct {
		ref   string
		valid bool
	}{
		{id + ".png", true},
		{id + ".webp", true},
		{id + ".exe", false},
		{id, false},
		{"../../etc/passwd", false},
		{"not-a-uuid.jpg", false},
		{"", false},
	}

	for _, tt := range tests {
		err := storage.ValidateReference(tt.ref)
		if tt.valid {
			assert.NoError(t, err, tt.ref)
		} else {
			assert.ErrorIs(t, err, storage.ErrInvalidReference, tt.ref)
		}
	}
}

func TestNewStorage(t *testing.T) {
	s, err := storage.NewStorage(&config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, s)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "azure"}, zap.NewNop())
	assert.Error(t, err)

	_, err = storage.NewStorage(&config.StorageConfig{Mode: "ftp"}, zap.NewNop())
	assert.Error(t, err)
}
