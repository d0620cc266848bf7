package objects

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_ReadWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Read(ctx, "users.json")
	require.ErrorIs(t, err, ErrNotExist)

	require.NoError(t, s.Write(ctx, "users.json", []byte(`{"a":1}`)))
	got, err := s.Read(ctx, "users.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, s.Write(ctx, "users.json", []byte(`{}`)))
	got, err = s.Read(ctx, "users.json")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files may be left behind")
}

func TestFileStore_RejectsPathNames(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"", ".", "..", "../x.json", "a/b.json", `a\b.json`} {
		require.Error(t, s.Write(ctx, name, []byte("x")), name)
		_, err := s.Read(ctx, name)
		require.Error(t, err, name)
	}
}

func TestFileStore_CanceledContext(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.Write(ctx, "a.json", nil), context.Canceled)
	_, err = s.Read(ctx, "a.json")
	require.ErrorIs(t, err, context.Canceled)
}
