package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"devenv/internal/config"
	"devenv/pkg/logging"
)

// DefaultDebounce is used when NewWatcher is given zero.
const DefaultDebounce = 300 * time.Millisecond

// Kind says what a changed file holds.
type Kind string

const (
	KindTemplate Kind = "template"
	KindSettings Kind = "settings"
)

// Operation is the coalesced change to a file.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// ChangeEvent is emitted once per file after its changes settled.
type ChangeEvent struct {
	Kind      Kind
	Name      string
	Operation Operation
	FilePath  string
	Timestamp time.Time
}

// Watcher reports changes to the settings file and the custom template
// directory below a config directory.
type Watcher struct {
	mu sync.Mutex

	configPath   string
	templatesDir string
	debounce     time.Duration

	watcher *fsnotify.Watcher
	pending map[string]*pendingChange
	stopped bool
}

type pendingChange struct {
	event ChangeEvent
	timer *time.Timer
}

// NewWatcher creates a Watcher for configPath. templatesDir is normally
// catalog.Store.Dir().
func NewWatcher(configPath, templatesDir string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		configPath:   configPath,
		templatesDir: templatesDir,
		debounce:     debounce,
		pending:      make(map[string]*pendingChange),
	}
}

// Run watches until ctx is done, sending debounced events to changes. The
// watched directories are created if missing. Events are dropped rather than
// blocking when changes is full.
func (w *Watcher) Run(ctx context.Context, changes chan<- ChangeEvent) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	for _, dir := range []string{w.configPath, w.templatesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		if err := fsw.Add(dir); err != nil {
			return err
		}
		logging.Debug("Watcher", "Watching directory: %s", dir)
	}

	w.mu.Lock()
	w.watcher = fsw
	w.stopped = false
	w.mu.Unlock()
	defer w.stop()

	logging.Info("Watcher", "Started watching %s for changes", w.configPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event, changes)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logging.Error("Watcher", err, "Filesystem watcher error")
		}
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	for key, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, key)
	}
}

// classify maps a path to the kind of file it is, or "" if it is not watched.
func (w *Watcher) classify(path string) (Kind, string) {
	dir, base := filepath.Dir(path), filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return "", ""
	}
	switch {
	case filepath.Clean(dir) == filepath.Clean(w.templatesDir) && config.IsYAMLFile(base):
		return KindTemplate, strings.TrimSuffix(base, filepath.Ext(base))
	case path == config.ConfigFilePath(w.configPath):
		return KindSettings, base
	default:
		return "", ""
	}
}

func toOperation(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return OperationCreate, true
	case op.Has(fsnotify.Write):
		return OperationUpdate, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return OperationDelete, true
	default:
		return "", false
	}
}

func (w *Watcher) handle(event fsnotify.Event, changes chan<- ChangeEvent) {
	kind, name := w.classify(event.Name)
	if kind == "" {
		return
	}
	op, ok := toOperation(event.Op)
	if !ok {
		return
	}
	w.schedule(ChangeEvent{
		Kind:      kind,
		Name:      name,
		Operation: op,
		FilePath:  event.Name,
		Timestamp: time.Now(),
	}, changes)
}

func (w *Watcher) schedule(event ChangeEvent, changes chan<- ChangeEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := event.FilePath
	if p, ok := w.pending[key]; ok {
		p.timer.Stop()
		event.Operation = mergeOperations(p.event.Operation, event.Operation)
	}

	p := &pendingChange{event: event}
	p.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		current, ok := w.pending[key]
		if ok && current == p {
			delete(w.pending, key)
		}
		stopped := w.stopped
		w.mu.Unlock()

		if !ok || current != p || stopped {
			return
		}
		select {
		case changes <- p.event:
			logging.Debug("Watcher", "Emitted %s %s %s", p.event.Operation, p.event.Kind, p.event.Name)
		default:
			logging.Warn("Watcher", "Change channel full, dropping event for %s", p.event.FilePath)
		}
	})
	w.pending[key] = p
}

// mergeOperations coalesces two operations on the same file. A file created
// and then written is still new; anything ending in a removal is a delete.
func mergeOperations(old, next Operation) Operation {
	if next == OperationDelete {
		return OperationDelete
	}
	if old == OperationCreate {
		return OperationCreate
	}
	return next
}
