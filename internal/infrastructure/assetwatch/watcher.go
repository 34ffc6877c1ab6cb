// Package assetwatch reports asset files that changed on disk.
package assetwatch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const defaultBuffer = 64

var ErrClosed = errors.New("asset watcher already closed")

// Watcher watches a directory tree. Changed files are queued as slash
// separated paths relative to the root and collected with Drain.
type Watcher struct {
	root    string
	watcher *fsnotify.Watcher
	changed chan string
	done    chan struct{}
	wg      sync.WaitGroup
	logger  *log.Logger

	mu     sync.Mutex
	closed bool
}

// New starts watching root and every directory below it.
func New(root string, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		root:    root,
		watcher: fw,
		changed: make(chan string, defaultBuffer),
		done:    make(chan struct{}),
		logger:  logger,
	}
	if err := w.addRecursive(root); err != nil {
		fw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(e)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("asset watcher error", "err", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(e fsnotify.Event) {
	if !e.Has(fsnotify.Create) && !e.Has(fsnotify.Write) {
		return
	}
	if info, err := os.Stat(e.Name); err == nil && info.IsDir() {
		if e.Has(fsnotify.Create) {
			if err := w.addRecursive(e.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", e.Name, "err", err)
			}
		}
		return
	}

	rel, err := filepath.Rel(w.root, e.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	select {
	case w.changed <- rel:
		w.logger.Debug("asset changed", "path", rel)
	default:
		w.logger.Warn("asset change dropped", "path", rel)
	}
}

// Drain returns the changed paths queued since the last call, without
// duplicates. It never blocks.
func (w *Watcher) Drain() []string {
	var out []string
	seen := make(map[string]bool)
	for {
		select {
		case p := <-w.changed:
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		default:
			return out
		}
	}
}

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
