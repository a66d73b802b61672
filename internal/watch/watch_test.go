package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
)

func startWatcher(t *testing.T, path string) *atomic.Int32 {
	t.Helper()
	w, err := New(path, Options{Logger: mdwlog.Discard(), Debounce: 50 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var calls atomic.Int32
	go func() {
		done <- w.Run(ctx, func() { calls.Add(1) })
	}()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	return &calls
}

func TestWatcher_ReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.peb")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

	calls := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("x = 2"), 0o644))
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("x = 3"), 0o644))
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.peb")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

	calls := startWatcher(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.peb"), []byte("y = 1"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcher_CreatedLater(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "later.peb")

	calls := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "prog.peb"), Options{Logger: mdwlog.Discard()})
	require.Error(t, err)
}
