package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, ch <-chan FileModification, path string, match func(FileModification) bool) FileModification {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case mod, ok := <-ch:
			require.True(t, ok, "event channel closed unexpectedly")
			if mod.Path == path && match(mod) {
				return mod
			}
		case <-timeout:
			t.Fatalf("timeout waiting for event on %s", path)
		}
	}
}

func TestWatcherTrackedFiles(t *testing.T) {
	tempDir := t.TempDir()
	tracked := filepath.Join(tempDir, "tracked.txt")
	other := filepath.Join(tempDir, "other.txt")
	require.NoError(t, os.WriteFile(tracked, []byte("v1"), 0644))
	require.NoError(t, os.WriteFile(other, []byte("v1"), 0644))

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Track([]string{tracked}))
	require.NoError(t, w.Start())
	defer w.Stop()

	assert.Equal(t, []string{tempDir}, w.GetDirectories())
	assert.True(t, w.IsRunning())
	assert.Error(t, w.Start())

	// allow fsnotify to settle
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte("v2"), 0644))
	require.NoError(t, os.WriteFile(tracked, []byte("v2"), 0644))

	mod := waitFor(t, w.FileChannel(), tracked, func(m FileModification) bool {
		return m.Op.Has(fsnotify.Write)
	})
	require.NotNil(t, mod.Info)
	assert.Equal(t, "tracked.txt", mod.Info.Name())
	assert.False(t, mod.Removed())

	require.NoError(t, os.Remove(tracked))
	mod = waitFor(t, w.FileChannel(), tracked, func(m FileModification) bool {
		return m.Op.Has(fsnotify.Remove)
	})
	assert.True(t, mod.Removed())
}

func TestTrackReplacesDirectories(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Track([]string{filepath.Join(a, "x.txt")}))
	assert.Equal(t, []string{a}, w.GetDirectories())

	require.NoError(t, w.Track([]string{filepath.Join(b, "y.txt")}))
	assert.Equal(t, []string{b}, w.GetDirectories())

	assert.Error(t, w.Track([]string{"/definitely/not/here/z.txt"}))
}

func TestStopClosesChannel(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Start())
	w.Stop()
	w.Stop()

	_, ok := <-w.FileChannel()
	assert.False(t, ok)
	assert.False(t, w.IsRunning())
}

func TestDetector(t *testing.T) {
	d := NewDetector()
	assert.True(t, d.Changed("/a.txt", []byte("one")))
	assert.False(t, d.Changed("/a.txt", []byte("one")))
	assert.True(t, d.Changed("/a.txt", []byte("two")))
	assert.False(t, d.Changed("/x/../a.txt", []byte("two")))

	d.Forget("/a.txt")
	assert.True(t, d.Changed("/a.txt", []byte("two")))
}
