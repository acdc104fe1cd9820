package workspace

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/codepad/internal/logging"
)

// ErrWatcherClosed is returned when adding to a closed Watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// Op is the kind of change seen on a watched file.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

// String returns the operation names joined by "|".
func (op Op) String() string {
	var parts []string
	if op.Has(OpCreate) {
		parts = append(parts, "CREATE")
	}
	if op.Has(OpWrite) {
		parts = append(parts, "WRITE")
	}
	if op.Has(OpRemove) {
		parts = append(parts, "REMOVE")
	}
	if op.Has(OpRename) {
		parts = append(parts, "RENAME")
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// Has reports whether op includes o.
func (op Op) Has(o Op) bool {
	return op&o != 0
}

// FileEvent is a change to an open file.
type FileEvent struct {
	Path      string
	Op        Op
	Timestamp time.Time
}

// DefaultDebounce is how long the watcher waits for a burst of changes to
// the same file to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to the files open in the workspace. It watches
// each file's directory, so files replaced by rename are still seen, and
// merges bursts of events on one file into a single FileEvent.
type Watcher struct {
	mu sync.Mutex

	fsw   *fsnotify.Watcher
	log   *logging.Logger
	delay time.Duration

	files   map[string]int // file -> references
	dirs    map[string]int // directory -> watched files inside
	pending map[string]*pendingEvent

	events   chan FileEvent
	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

type pendingEvent struct {
	op    Op
	timer *time.Timer
}

// NewWatcher starts a watcher. A delay <= 0 uses DefaultDebounce.
func NewWatcher(delay time.Duration, log *logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if log == nil {
		log = logging.Nop()
	}

	w := &Watcher{
		fsw:     fsw,
		log:     log.WithComponent("watcher"),
		delay:   delay,
		files:   make(map[string]int),
		dirs:    make(map[string]int),
		pending: make(map[string]*pendingEvent),
		events:  make(chan FileEvent, 64),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Events returns the channel FileEvents are delivered on. It is closed by
// Close.
func (w *Watcher) Events() <-chan FileEvent {
	return w.events
}

// Add starts watching path. Adding the same path again only counts a
// reference.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.files[abs] > 0 {
		w.files[abs]++
		return nil
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = 1
	return nil
}

// Remove drops one reference to path and stops watching it when none are
// left.
func (w *Watcher) Remove(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.files[abs] == 0 {
		return
	}
	w.files[abs]--
	if w.files[abs] > 0 {
		return
	}
	delete(w.files, abs)
	if p := w.pending[abs]; p != nil {
		p.timer.Stop()
		delete(w.pending, abs)
	}

	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		if err := w.fsw.Remove(dir); err != nil {
			w.log.WithError(err).Debug("unwatch %s", dir)
		}
	}
}

// IsWatching reports whether path is watched.
func (w *Watcher) IsWatching(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[abs] > 0
}

// Close stops the watcher and closes the Events channel.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.closedWg.Wait()
	close(w.events)
	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("watch error")
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	op := convertOp(ev.Op)
	if op == 0 {
		return
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.files[path] == 0 {
		return
	}
	if p := w.pending[path]; p != nil {
		p.op |= op
		p.timer.Reset(w.delay)
		return
	}
	w.pending[path] = &pendingEvent{
		op:    op,
		timer: time.AfterFunc(w.delay, func() { w.flush(path) }),
	}
}

func (w *Watcher) flush(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p := w.pending[path]
	if w.closed || p == nil {
		return
	}
	delete(w.pending, path)

	ev := FileEvent{Path: path, Op: p.op, Timestamp: time.Now()}
	select {
	case w.events <- ev:
	default:
		w.log.Warn("event channel full, dropping %s %s", ev.Op, ev.Path)
	}
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
