package candidates

import (
	"context"
	"math/big"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher keeps a harvest directory under continuous observation and
// streams freshly discovered bases, so a long-running radar session picks
// up new survey announcements as soon as their logs land on disk.
// Files already present when the watcher starts are treated as known and
// never re-emitted.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	dir         string
	pattern     *regexp.Regexp
	seen        map[string]struct{}
	debounceMap map[string]time.Time
	debounceDur time.Duration
	discoveries chan []*big.Int
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	logger      *zap.Logger

	stats WatcherStats
}

// WatcherStats tracks watcher activity for debugging and status output.
type WatcherStats struct {
	FilesCreated      int
	FilesModified     int
	FilesDeleted      int
	HarvestsTriggered int
	BasesDiscovered   int
	Errors            int
	LastEventTime     time.Time
	LastEventPath     string
	LastEventType     string
}

// NewWatcher creates a Watcher over the given harvest directory.
func NewWatcher(dir string, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		watcher:     fsw,
		dir:         dir,
		pattern:     discoveryPattern,
		seen:        make(map[string]struct{}),
		debounceMap: make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond, // settle rapid log appends
		discoveries: make(chan []*big.Int, 16),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		logger:      logger,
	}, nil
}

// Discoveries returns the stream of freshly harvested bases. The channel
// closes when the watcher stops.
func (w *Watcher) Discoveries() <-chan []*big.Int { return w.discoveries }

// Start begins watching. Non-blocking; the event loop runs in its own
// goroutine until Stop or context cancellation. The directory's current
// contents are absorbed first so only later discoveries are emitted.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		w.logger.Warn("failed to create harvest dir, continuing",
			zap.String("dir", w.dir), zap.Error(err))
	}

	w.absorbExisting()

	if err := w.watcher.Add(w.dir); err != nil {
		w.logger.Warn("initial watch failed, dir may appear later",
			zap.String("dir", w.dir), zap.Error(err))
	} else {
		w.logger.Info("watching harvest directory", zap.String("dir", w.dir))
	}

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to drain, then
// closes the discovery stream.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("error closing fs watcher", zap.Error(err))
	}
	close(w.discoveries)
	w.logger.Info("harvest watcher stopped")
}

// Stats returns a snapshot of the watcher counters.
func (w *Watcher) Stats() WatcherStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

// absorbExisting marks every base currently on disk as seen.
func (w *Watcher) absorbExisting() {
	files, err := harvestFiles(w.dir)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, name := range files {
		values, err := harvestFile(name, w.pattern)
		if err != nil {
			continue
		}
		for _, v := range values {
			w.seen[v.String()] = struct{}{}
		}
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	debounceTicker := time.NewTicker(100 * time.Millisecond)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("harvest watcher: context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("harvest watcher error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-debounceTicker.C:
			w.processDebounced()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !harvestable(event.Name) {
		return
	}

	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	case event.Op&fsnotify.Remove != 0:
		eventType = "delete"
	case event.Op&fsnotify.Rename != 0:
		eventType = "rename"
	default:
		return
	}

	w.mu.Lock()
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = event.Name
	w.stats.LastEventType = eventType

	switch eventType {
	case "create":
		w.stats.FilesCreated++
	case "modify":
		w.stats.FilesModified++
	case "delete", "rename":
		w.stats.FilesDeleted++
		delete(w.debounceMap, event.Name)
		w.mu.Unlock()
		return
	}

	w.debounceMap[event.Name] = time.Now()
	w.mu.Unlock()
}

// processDebounced harvests files whose events have settled past the
// debounce window.
func (w *Watcher) processDebounced() {
	w.mu.Lock()
	now := time.Now()
	var toProcess []string
	for path, eventTime := range w.debounceMap {
		if now.Sub(eventTime) >= w.debounceDur {
			toProcess = append(toProcess, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	for _, path := range toProcess {
		w.harvest(path)
	}
}

// harvest re-scans one settled file and emits any bases not seen before.
func (w *Watcher) harvest(path string) {
	values, err := harvestFile(path, w.pattern)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		w.logger.Warn("failed to harvest file", zap.String("file", path), zap.Error(err))
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
		return
	}

	w.mu.Lock()
	w.stats.HarvestsTriggered++
	var fresh []*big.Int
	for _, v := range values {
		key := v.String()
		if _, ok := w.seen[key]; ok {
			continue
		}
		w.seen[key] = struct{}{}
		fresh = append(fresh, v)
	}
	w.stats.BasesDiscovered += len(fresh)
	w.mu.Unlock()

	if len(fresh) == 0 {
		return
	}
	w.logger.Info("new bases discovered",
		zap.String("file", path), zap.Int("count", len(fresh)))

	select {
	case w.discoveries <- dedupe(fresh):
	case <-w.stopCh:
	}
}

func harvestable(name string) bool {
	for _, suffix := range []string{".log", ".txt", ".html"} {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
