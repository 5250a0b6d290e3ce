package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePut(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "/media/")

	url, err := store.Put(context.Background(), "camp-a/EMP001/photo/face.png", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/media/camp-a/EMP001/photo/face.png", url)

	written, err := os.ReadFile(filepath.Join(root, "camp-a", "EMP001", "photo", "face.png"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(written))
}

func TestLocalStorePutOverwrite(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "/media")

	_, err := store.Put(context.Background(), "a/b.txt", strings.NewReader("v1"))
	require.NoError(t, err)
	_, err = store.Put(context.Background(), "a/b.txt", strings.NewReader("v2"))
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(root, "a", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(written))
}

func TestLocalStorePutRejectsEscape(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "/media")

	for _, path := range []string{"../escape.txt", "a/../../escape.txt", "/abs.txt", "."} {
		_, err := store.Put(context.Background(), path, strings.NewReader("x"))
		require.Error(t, err, "path=%q", path)
	}
}

func TestLocalStorePutCancelledContext(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/media")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Put(ctx, "a.txt", strings.NewReader("x"))
	require.ErrorIs(t, err, context.Canceled)
}
