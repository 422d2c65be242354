package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epic-events/epic-events/internal/shared"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "epic_events", "access_token.txt"))
}

func TestWriteReadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Write("header.payload.signature"))
	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "header.payload.signature", got)
}

func TestWriteOverwritesPreviousToken(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Write("first"))
	require.NoError(t, store.Write("second"))

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestWriteSetsOwnerOnlyMode(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Write("tok"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestReadMissingFile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Read()
	assert.ErrorIs(t, err, shared.ErrNoSession)
}

func TestClearIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Clear())

	require.NoError(t, store.Write("tok"))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	_, err := store.Read()
	assert.ErrorIs(t, err, shared.ErrNoSession)
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Write("tok"))

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
