package filestore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/pagetest.net/internal/adapter/logging"
	"gitlab.com/pagetest.net/internal/core/services/keys"
	"gitlab.com/pagetest.net/internal/static/errs"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "tests"), ".spec.js", logging.NewNopLogger())
	require.NoError(t, err)
	return s
}

func TestStore_RoundTripIsByteIdentical(t *testing.T) {
	s := newStore(t)
	key := keys.Derive("https://example.com")
	script := "const { test, expect } = require('@playwright/test');\r\n\ttest('ü', async () => {});\n\x00tail"

	assert.False(t, s.Exists(key))
	require.NoError(t, s.Write(key, script))
	assert.True(t, s.Exists(key))

	got, err := s.Read(key)
	require.NoError(t, err)
	assert.Equal(t, script, got)

	raw, err := os.ReadFile(filepath.Join(s.Dir(), key+".spec.js"))
	require.NoError(t, err)
	assert.Equal(t, []byte(script), raw)
}

func TestStore_ReadMissing(t *testing.T) {
	s := newStore(t)

	_, err := s.Read("missing_key")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestStore_WriteOverwritesAndLeavesNoTempFiles(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Write("k", "first"))
	require.NoError(t, s.Write("k", "second"))

	got, err := s.Read("k")
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.spec.js", entries[0].Name())
}

func TestStore_WriteIntoMissingDirFails(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.RemoveAll(s.Dir()))

	err := s.Write("k", "x")
	assert.ErrorIs(t, err, errs.ErrIO)
}

func TestStore_Resolve(t *testing.T) {
	s := newStore(t)
	key := keys.Derive("https://example.com")

	got, err := s.Resolve(s.Path(key))
	require.NoError(t, err)
	assert.Equal(t, key, got)

	got, err = s.Resolve(key + ".spec.js")
	require.NoError(t, err)
	assert.Equal(t, key, got)

	bad := []string{
		"",
		"/etc/passwd",
		filepath.Join(s.Dir(), "..", "escape.spec.js"),
		filepath.Join(s.Dir(), "nested", "k.spec.js"),
		filepath.Join(s.Dir(), "k.js"),
		filepath.Join(s.Dir(), "bad-key.spec.js"),
		s.Dir(),
	}
	for _, p := range bad {
		_, err := s.Resolve(p)
		assert.Error(t, err, p)
	}
}

func TestStore_SweepTemp(t *testing.T) {
	s, err := New(t.TempDir(), ".spec.js", logging.NewNopLogger())
	require.NoError(t, err)

	stale := filepath.Join(s.Dir(), ".k-123.tmp")
	fresh := filepath.Join(s.Dir(), ".k-456.tmp")
	require.NoError(t, os.WriteFile(stale, []byte("partial"), 0o600))
	require.NoError(t, os.WriteFile(fresh, []byte("partial"), 0o600))
	require.NoError(t, s.Write("k", "test('a', () => {});"))

	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	removed, err := s.SweepTemp(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.True(t, s.Exists("k"))
}
