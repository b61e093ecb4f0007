package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.cks")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestMapping_OpenReadClose(t *testing.T) {
	m, err := Open(writeFile(t, []byte("CKS1 snapshot")))
	require.NoError(t, err)

	assert.Equal(t, int64(13), m.Size())
	assert.Equal(t, []byte("CKS1 snapshot"), m.Bytes())
	assert.NoError(t, m.Advise(AccessSequential))

	buf := make([]byte, 8)
	n, err := m.ReadAt(buf, 5)
	require.NoError(t, err)
	assert.Equal(t, "snapshot", string(buf[:n]))

	n, err = m.ReadAt(make([]byte, 10), 9)
	assert.Equal(t, 4, n)
	assert.Equal(t, io.EOF, err)

	_, err = m.ReadAt(buf, 100)
	assert.Equal(t, io.EOF, err)

	_, err = m.ReadAt(buf, -1)
	assert.Equal(t, ErrInvalidOffset, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())

	_, err = m.ReadAt(buf, 0)
	assert.Equal(t, ErrClosed, err)
	assert.Equal(t, ErrClosed, m.Advise(AccessRandom))
}

func TestMapping_EmptyFile(t *testing.T) {
	m, err := Open(writeFile(t, nil))
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, int64(0), m.Size())
	assert.Nil(t, m.Bytes())
	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.Equal(t, io.EOF, err)
}

func TestMapping_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
