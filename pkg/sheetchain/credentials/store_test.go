package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.yaml")
	s := NewFileStore(path)

	_, ok, err := s.Get()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("  sk-test  "))
	key, ok, err := s.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "sk-test", key)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, s.Clear())
	_, ok, err = s.Get()
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing twice is fine
	require.NoError(t, s.Clear())
	assert.Error(t, s.Set(" "))
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: [unterminated"), 0600))

	_, _, err := NewFileStore(path).Get()
	assert.Error(t, err)
}

func TestEnvStore(t *testing.T) {
	t.Setenv("SHEETCHAIN_TEST_KEY", "from-env")
	s := EnvStore{Var: "SHEETCHAIN_TEST_KEY"}

	key, ok, err := s.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "from-env", key)
	assert.ErrorIs(t, s.Set("x"), ErrReadOnly)
	assert.ErrorIs(t, s.Clear(), ErrReadOnly)
}

func TestChain(t *testing.T) {
	t.Setenv("SHEETCHAIN_TEST_KEY", "")
	file := NewFileStore(filepath.Join(t.TempDir(), "credentials.yaml"))
	c := Chain{EnvStore{Var: "SHEETCHAIN_TEST_KEY"}, file}

	_, ok, err := c.Get()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set("stored"))
	key, ok, err := c.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "stored", key)

	t.Setenv("SHEETCHAIN_TEST_KEY", "override")
	key, _, _ = c.Get()
	assert.Equal(t, "override", key)

	require.NoError(t, c.Clear())
	_, ok, _ = file.Get()
	assert.False(t, ok)

	assert.ErrorIs(t, Chain{EnvStore{Var: "X"}}.Set("k"), ErrReadOnly)
}
