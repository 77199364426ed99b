package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "refresh_seconds: 5\n")

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("refresh_seconds: 7\n"), 0o644))

	select {
	case _, ok := <-w.Events():
		assert.True(t, ok)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case <-w.Events():
		t.Fatal("unrelated file must not trigger a reload")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	w, err := NewWatcher(path, 100*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("cache_seconds: 9\n"), 0o644))
	}

	select {
	case <-w.Events():
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}

	select {
	case <-w.Events():
		t.Fatal("burst should collapse to a single notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_CloseClosesEvents(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")

	w, err := NewWatcher(path, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultWatchDebounce, w.debounce)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close(), "second close is a no-op")

	select {
	case _, ok := <-w.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("events channel should close")
	}
}
