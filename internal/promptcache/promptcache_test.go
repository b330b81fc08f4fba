package promptcache

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "prompts.db"), ttl, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFingerprintNormalization(t *testing.T) {
	base := Fingerprint("best running shoes for flat feet")

	assert.Equal(t, base, Fingerprint("Best Running  Shoes\tfor flat FEET"))
	assert.Equal(t, base, Fingerprint("  best running shoes for flat feet\n"))
	assert.NotEqual(t, base, Fingerprint("best running shoes for wide feet"))
	assert.Len(t, base, 64)
}

func TestSeenFirstAndRepeat(t *testing.T) {
	store := openTestStore(t, time.Hour)

	seen, err := store.Seen("what is session quality score")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = store.Seen("What is  session quality score")
	require.NoError(t, err)
	assert.True(t, seen, "normalized repeat must be recognized")

	seen, err = store.Seen("a different prompt entirely")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestSeenPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := Open(path, time.Hour, logger)
	require.NoError(t, err)
	_, err = store.Seen("persisted prompt")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path, time.Hour, logger)
	require.NoError(t, err)
	defer reopened.Close()

	seen, err := reopened.Seen("persisted prompt")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestTTLExpiry(t *testing.T) {
	store := openTestStore(t, time.Hour)

	current := time.Now()
	store.now = func() time.Time { return current }

	_, err := store.Seen("stale prompt")
	require.NoError(t, err)

	// Two hours later the entry is past its TTL.
	current = current.Add(2 * time.Hour)

	seen, err := store.Seen("stale prompt")
	require.NoError(t, err)
	assert.False(t, seen, "expired entry counts as unseen")
}

func TestCleanup(t *testing.T) {
	store := openTestStore(t, time.Hour)

	current := time.Now()
	store.now = func() time.Time { return current }

	_, err := store.Seen("old prompt one")
	require.NoError(t, err)
	_, err = store.Seen("old prompt two")
	require.NoError(t, err)

	current = current.Add(2 * time.Hour)
	_, err = store.Seen("fresh prompt")
	require.NoError(t, err)

	removed, err := store.Cleanup()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	seen, err := store.Seen("fresh prompt")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestCleanupWithoutTTL(t *testing.T) {
	store := openTestStore(t, 0)

	_, err := store.Seen("kept forever")
	require.NoError(t, err)

	removed, err := store.Cleanup()
	require.NoError(t, err)
	assert.Zero(t, removed)

	seen, err := store.Seen("kept forever")
	require.NoError(t, err)
	assert.True(t, seen)
}
