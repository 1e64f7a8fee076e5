package storage

import (
	"context"
	"testing"

	"github.com/dormlife/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStubStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("upload returns the public URL", func(t *testing.T) {
		s := NewStubStorage("https://cdn.example.com/uploads/")

		url, err := s.Upload(ctx, "requests/abc/photo_0.jpg", []byte("jpeg-bytes"), "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/uploads/requests/abc/photo_0.jpg", url)

		data, exists := s.Get("requests/abc/photo_0.jpg")
		require.True(t, exists)
		assert.Equal(t, []byte("jpeg-bytes"), data)
	})

	t.Run("upload copies the data", func(t *testing.T) {
		s := NewStubStorage("")

		buf := []byte("original")
		_, err := s.Upload(ctx, "key", buf, "application/octet-stream")
		require.NoError(t, err)

		buf[0] = 'X'

		data, _ := s.Get("key")
		assert.Equal(t, []byte("original"), data)
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		s := NewStubStorage("")

		_, err := s.Upload(ctx, "", []byte("x"), "")
		assert.Error(t, err)

		_, err = s.Exists(ctx, "")
		assert.Error(t, err)

		assert.Error(t, s.Delete(ctx, ""))
	})

	t.Run("delete removes the object and tolerates missing keys", func(t *testing.T) {
		s := NewStubStorage("")

		_, err := s.Upload(ctx, "key", []byte("x"), "")
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, "key"))

		exists, err := s.Exists(ctx, "key")
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, s.Delete(ctx, "key"))
	})

	t.Run("default base URL", func(t *testing.T) {
		s := NewStubStorage("")
		assert.Equal(t, "http://localhost/uploads/key", s.URL("key"))
	})
}

func TestNew(t *testing.T) {
	logger := zap.NewNop()

	t.Run("empty provider selects the stub", func(t *testing.T) {
		store, err := New(&config.StorageConfig{}, logger)
		require.NoError(t, err)
		_, ok := store.(*StubStorage)
		assert.True(t, ok)
	})

	t.Run("unknown provider fails", func(t *testing.T) {
		_, err := New(&config.StorageConfig{Provider: "gcs"}, logger)
		assert.Error(t, err)
	})
}
