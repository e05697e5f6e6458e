// Package feed watches a plain-text counter file and delivers its contents
// as processed-count readings. A batch job can report progress by rewriting
// the file with a single integer; the dashboard applies each reading the
// same way as one typed at the keyboard.
package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thruflo/burndown/internal/logging"
)

// DefaultDebounce is how long the file must be quiet before it is read.
const DefaultDebounce = 100 * time.Millisecond

// Sample is one reading taken from the counter file. Raw is the trimmed file
// contents and is not validated here.
type Sample struct {
	Raw string
	At  time.Time
}

// Watcher monitors a counter file for changes.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	samples  chan Sample
	debounce time.Duration
	now      func() time.Time
	log      *logging.Logger

	mu   sync.Mutex
	last string
}

// NewWatcher creates a watcher for the counter file at path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve feed path: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		path:     abs,
		watcher:  fsWatcher,
		samples:  make(chan Sample, 10),
		debounce: DefaultDebounce,
		now:      time.Now,
		log:      logging.WithFields(map[string]interface{}{"component": "feed", "path": abs}),
	}, nil
}

// Samples returns the channel that receives readings. It is closed when the
// watcher stops.
func (w *Watcher) Samples() <-chan Sample {
	return w.samples
}

// Start emits the current contents, if the file exists, and begins watching.
// The file's directory is watched rather than the file itself so that
// writers which replace the file by renaming are picked up.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", filepath.Dir(w.path), err)
	}

	if _, err := os.Stat(w.path); err == nil {
		w.read()
	}

	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.samples)
	defer w.watcher.Close()

	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				pending = time.Now()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("feed watch error", "error", err)

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				pending = time.Time{}
				w.read()
			}
		}
	}
}

// read emits the file contents unless they are unchanged since the last sample.
func (w *Watcher) read() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.log.Warn("failed to read feed file", "error", err)
		return
	}
	raw := strings.TrimSpace(string(data))

	w.mu.Lock()
	if raw == w.last {
		w.mu.Unlock()
		return
	}
	w.last = raw
	w.mu.Unlock()

	select {
	case w.samples <- Sample{Raw: raw, At: w.now()}:
	default:
		w.log.Warn("feed sample dropped", "raw", raw)
	}
}
