package assets

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/logger"
)

// ErrWatcherClosed is returned when adding a directory to a closed watcher.
var ErrWatcherClosed = errors.New("watcher already closed")

// Watcher reports files that were written or created in a set of
// directories. It never touches GL: changed paths are posted to a channel
// the frame loop drains.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changes chan string
	done    chan struct{}
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewWatcher starts watching dirs (non-recursively).
func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		changes: make(chan string, 64),
		done:    make(chan struct{}),
	}
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Add starts watching dir.
func (w *Watcher) Add(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}
	return w.fsw.Add(dir)
}

// Changes returns the channel of changed file paths.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Drain returns every pending change without blocking, each path once.
func (w *Watcher) Drain() []string {
	var paths []string
	seen := make(map[string]bool)
	for {
		select {
		case p, ok := <-w.changes:
			if !ok {
				return paths
			}
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		default:
			return paths
		}
	}
}

// Close stops the watcher and closes the Changes channel.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	close(w.changes)
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			path := filepath.Clean(e.Name)
			select {
			case w.changes <- path:
			default:
				// The frame loop is behind; it will reload what it already has queued.
				logger.Debug("asset change dropped", zap.String("path", path))
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("asset watcher error", zap.Error(err))

		case <-w.done:
			return
		}
	}
}
