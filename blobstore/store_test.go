package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreLifecycle(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Open(ctx, "missing.cks")
	require.ErrorIs(t, err, ErrNotFound)

	data := []byte("CKS1 frame for a two-cluster model")
	require.NoError(t, store.Put(ctx, "models/a.cks", data))
	require.NoError(t, store.Put(ctx, "models/b.cks", []byte("b")))
	require.NoError(t, store.Put(ctx, "other.cks", []byte("other")))

	blob, err := store.Open(ctx, "models/a.cks")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "CKS1", string(buf[:n]))

	n, err = blob.ReadAt(ctx, make([]byte, 10), int64(len(data))-3)
	assert.Equal(t, 3, n)
	assert.Equal(t, io.EOF, err)

	_, err = blob.ReadAt(ctx, buf, int64(len(data))+1)
	assert.Equal(t, io.EOF, err)

	all, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, data, all)
	require.NoError(t, blob.Close())

	// Overwrite replaces content.
	require.NoError(t, store.Put(ctx, "models/b.cks", []byte("bb")))
	got, err := Get(ctx, store, "models/b.cks")
	require.NoError(t, err)
	assert.Equal(t, []byte("bb"), got)

	names, err := store.List(ctx, "models/")
	require.NoError(t, err)
	assert.Equal(t, []string{"models/a.cks", "models/b.cks"}, names)

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"models/a.cks", "models/b.cks", "other.cks"}, names)

	require.NoError(t, store.Delete(ctx, "models/a.cks"))
	require.NoError(t, store.Delete(ctx, "models/a.cks"))
	_, err = store.Open(ctx, "models/a.cks")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "empty.cks", nil))
	got, err = Get(ctx, store, "empty.cks")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStore(t *testing.T) {
	testStoreLifecycle(t, NewMemoryStore())
}

func TestMemoryStore_PutCopiesInput(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "x", data))
	data[0] = 'z'

	got, err := Get(ctx, store, "x")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestLocalStore(t *testing.T) {
	testStoreLifecycle(t, NewLocalStore(t.TempDir()))
}

func TestLocalStore_AtomicPutLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewLocalStore(dir)

	require.NoError(t, store.Put(ctx, "nested/deep/model.cks", []byte("frame")))

	entries, err := os.ReadDir(filepath.Join(dir, "nested", "deep"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "model.cks", entries[0].Name())

	// Stray temp files from an interrupted write are not listed.
	require.NoError(t, os.WriteFile(filepath.Join(dir, tempPrefix+"123"), []byte("partial"), 0o644))
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"nested/deep/model.cks"}, names)
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "does-not-exist"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewLocalStore(t.TempDir())
	assert.ErrorIs(t, store.Put(ctx, "x", []byte("x")), context.Canceled)
	_, err := store.Open(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
