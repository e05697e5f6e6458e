package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitSample(t *testing.T, w *Watcher) Sample {
	t.Helper()
	select {
	case s, ok := <-w.Samples():
		require.True(t, ok, "samples channel closed")
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for sample")
		return Sample{}
	}
}

func TestWatcher_EmitsExistingContents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processed.txt")
	require.NoError(t, os.WriteFile(path, []byte("1500\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	assert.Equal(t, "1500", waitSample(t, w).Raw)
}

func TestWatcher_EmitsOnWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processed.txt")

	w, err := NewWatcher(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(path, []byte("42"), 0o644))
	assert.Equal(t, "42", waitSample(t, w).Raw)

	require.NoError(t, os.WriteFile(path, []byte("not a number"), 0o644))
	assert.Equal(t, "not a number", waitSample(t, w).Raw)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "processed.txt")

	w, err := NewWatcher(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("7"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("8"), 0o644))

	assert.Equal(t, "8", waitSample(t, w).Raw)
}

func TestWatcher_ClosesOnCancel(t *testing.T) {
	t.Parallel()

	w, err := NewWatcher(filepath.Join(t.TempDir(), "processed.txt"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()

	select {
	case _, ok := <-w.Samples():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("samples channel not closed after cancel")
	}
}
