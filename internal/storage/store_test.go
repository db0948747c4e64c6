package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exercise runs the contract every backend must satisfy.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "finance-hub-initialized", []byte("true")))
	got, err := s.Get(ctx, "finance-hub-initialized")
	require.NoError(t, err)
	assert.Equal(t, "true", string(got))

	require.NoError(t, s.Set(ctx, "finance-hub-initialized", []byte("false")))
	got, err = s.Get(ctx, "finance-hub-initialized")
	require.NoError(t, err)
	assert.Equal(t, "false", string(got))

	require.NoError(t, s.Remove(ctx, "finance-hub-initialized"))
	_, err = s.Get(ctx, "finance-hub-initialized")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Remove(ctx, "finance-hub-initialized"), "removing twice is fine")
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	exercise(t, m)

	buf := []byte("abc")
	require.NoError(t, m.Set(context.Background(), "k", buf))
	buf[0] = 'x'
	got, _ := m.Get(context.Background(), "k")
	assert.Equal(t, "abc", string(got))
	assert.Equal(t, 1, m.Keys())
}

func TestFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	f, err := NewFile(dir)
	require.NoError(t, err)
	exercise(t, f)

	require.NoError(t, f.Set(context.Background(), "finance-hub-settings", []byte(`{}`)))
	_, err = os.Stat(filepath.Join(dir, "finance-hub-settings.json"))
	assert.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileRejectsBadKeys(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../etc", "a/b", ".hidden"} {
		assert.Error(t, f.Set(context.Background(), key, []byte("x")), "key %q", key)
	}
}

func TestSQLite(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "financehub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	exercise(t, s)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	var v []string
	ok, err := GetJSON(ctx, s, "list", &v)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetJSON(ctx, s, "list", []string{"a", "b"}))
	ok, err = GetJSON(ctx, s, "list", &v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)

	require.NoError(t, s.Set(ctx, "list", []byte("{not json")))
	_, err = GetJSON(ctx, s, "list", &v)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	s, err = Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(ctx, Options{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Options{Backend: "redis"})
	assert.ErrorContains(t, err, "unknown storage backend")
}
