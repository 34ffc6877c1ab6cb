package assetwatch

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, root string) *Watcher {
	t.Helper()
	w, err := New(root, log.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func waitFor(t *testing.T, w *Watcher, want string) {
	t.Helper()
	var got []string
	assert.Eventually(t, func() bool {
		got = append(got, w.Drain()...)
		for _, p := range got {
			if p == want {
				return true
			}
		}
		return false
	}, 5*time.Second, 20*time.Millisecond, "expected change for %s", want)
}

func TestWatcher_ReportsWrites(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "ship.png")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	w := newTestWatcher(t, root)
	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))

	waitFor(t, w, "ship.png")
}

func TestWatcher_ReportsNestedFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "ships"), 0o755))

	w := newTestWatcher(t, root)
	require.NoError(t, os.WriteFile(filepath.Join(root, "ships", "ship2.png"), []byte("x"), 0o644))

	waitFor(t, w, "ships/ship2.png")
}

func TestWatcher_DrainIsEmptyWithoutChanges(t *testing.T) {
	w := newTestWatcher(t, t.TempDir())
	assert.Empty(t, w.Drain())
}

func TestWatcher_DrainDeduplicates(t *testing.T) {
	w := &Watcher{changed: make(chan string, 8)}
	w.changed <- "a.png"
	w.changed <- "b.png"
	w.changed <- "a.png"

	assert.Equal(t, []string{"a.png", "b.png"}, w.Drain())
	assert.Empty(t, w.Drain())
}

func TestWatcher_Close(t *testing.T) {
	w, err := New(t.TempDir(), log.New(io.Discard))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Close(), ErrClosed)
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), log.New(io.Discard))
	assert.Error(t, err)
}
