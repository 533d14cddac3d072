package engine

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/editsys/internal/engine/collection"
	"github.com/dshills/editsys/internal/engine/history"
	"github.com/dshills/editsys/internal/notify"
)

// Re-export commonly used types for convenience.
type (
	// History is the undo/redo session driven by the engine.
	History = history.History

	// Checkpoint is a position in history that can be returned to.
	Checkpoint = history.Checkpoint

	// Observable is a list whose changes can be recorded.
	Observable = collection.Observable
)

// State is a point-in-time view of the engine's history.
type State struct {
	CanUndo    bool
	CanRedo    bool
	CanClear   bool
	UndoCount  int
	RedoCount  int
	PauseDepth int
	BatchDepth int
	Limit      int
	Listeners  int
	Marks      []string
}

// Engine serializes access to one History and the objects it records.
//
// History itself assumes a single caller. Engine is the place where a host
// that edits from several goroutines gets that guarantee: every mutation of
// tracked state goes through Edit, and Undo, Redo and Clear take the same
// lock.
type Engine struct {
	mu sync.RWMutex

	history *history.History
	marks   map[string]history.Checkpoint

	// History notifications raised while a writer holds mu are queued in
	// pending and delivered on events once mu is released.
	events    *notify.Notifier
	pending   *notify.Batch
	deferring bool

	// Configuration
	logger   *zap.Logger
	limit    int
	notifier *notify.Notifier
	readOnly bool
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: zap.NewNop(),
		limit:  DefaultLimit,
		marks:  make(map[string]history.Checkpoint),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.events = e.notifier
	if e.events == nil {
		e.events = notify.New()
	}

	e.history = history.New(
		history.WithLogger(e.logger.Named("history")),
		history.WithLimit(e.limit),
	)
	e.pending = e.events.NewBatch(e.history)
	e.history.Subscribe(e.forward)

	return e
}

// forward relays a history notification to the engine's subscribers.
func (e *Engine) forward(sender any, args *notify.Args) {
	if e.deferring {
		e.pending.Add(args.Name())
		return
	}
	e.events.RaiseArgs(sender, args)
}

// lock takes the write lock. Notifications raised until unlock are held
// back so that handlers can call back into the engine.
func (e *Engine) lock() {
	e.mu.Lock()
	e.deferring = true
}

// unlock releases the write lock and then delivers the held notifications,
// each property once, in the order they were first raised.
func (e *Engine) unlock() {
	e.deferring = false
	pending := e.pending
	e.pending = e.events.NewBatch(e.history)
	e.mu.Unlock()

	pending.Commit()
}

// History returns the underlying history. Hosts pass it to the models they
// create; direct calls on it bypass the engine's lock.
func (e *Engine) History() *history.History {
	return e.history
}

// ============================================================================
// Editing
// ============================================================================

// Edit runs fn under the engine lock inside a batch, so everything fn records
// undoes as one entry.
func (e *Engine) Edit(fn func(h *history.History) error) error {
	e.lock()
	defer e.unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	return e.history.Batch(func() error {
		return fn(e.history)
	})
}

// Apply runs fn under the engine lock without opening a batch.
func (e *Engine) Apply(fn func(h *history.History) error) error {
	e.lock()
	defer e.unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return fn(e.history)
}

// Untracked runs fn under the engine lock with recording paused.
func (e *Engine) Untracked(fn func() error) error {
	e.lock()
	defer e.unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Paused(fn)
}

// Track records every subsequent change of list.
func (e *Engine) Track(list collection.Observable) {
	e.lock()
	defer e.unlock()
	e.history.Listen(list)
}

// Untrack stops recording changes of list.
func (e *Engine) Untrack(list collection.Observable) {
	e.lock()
	defer e.unlock()
	e.history.Unlisten(list)
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo reverses the most recent entry.
func (e *Engine) Undo() error {
	e.lock()
	defer e.unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Undo()
}

// Redo reapplies the most recently undone entry.
func (e *Engine) Redo() error {
	e.lock()
	defer e.unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Redo()
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.CanRedo()
}

// ClearHistory removes all undo/redo entries and every mark.
func (e *Engine) ClearHistory() {
	e.lock()
	defer e.unlock()

	e.history.Clear()
	clear(e.marks)
}

// ============================================================================
// Marks
// ============================================================================

// Mark names the current history position.
func (e *Engine) Mark(name string) {
	e.lock()
	defer e.unlock()
	e.marks[name] = e.history.Checkpoint()
}

// RevertTo undoes every entry recorded since the named mark.
func (e *Engine) RevertTo(name string) error {
	e.lock()
	defer e.unlock()

	cp, ok := e.marks[name]
	if !ok {
		return fmt.Errorf("mark %q: %w", name, ErrMarkNotFound)
	}
	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.UndoTo(cp)
}

// ReplayTo redoes entries until the history is back at the named mark.
func (e *Engine) ReplayTo(name string) error {
	e.lock()
	defer e.unlock()

	cp, ok := e.marks[name]
	if !ok {
		return fmt.Errorf("mark %q: %w", name, ErrMarkNotFound)
	}
	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.RedoTo(cp)
}

// DeleteMark removes a mark. Unknown names are ignored.
func (e *Engine) DeleteMark(name string) {
	e.lock()
	defer e.unlock()
	delete(e.marks, name)
}

// ============================================================================
// Observation
// ============================================================================

// Subscribe registers a handler for history property changes. Changes made
// inside an engine call are delivered after the call releases its lock, so
// the handler may query or edit the engine.
func (e *Engine) Subscribe(fn notify.Handler) *notify.Subscription {
	return e.events.Subscribe(fn)
}

// State returns a snapshot of the history state. It takes the write lock
// because counting listeners prunes collected lists.
func (e *Engine) State() State {
	e.lock()
	defer e.unlock()

	marks := make([]string, 0, len(e.marks))
	for name := range e.marks {
		marks = append(marks, name)
	}
	sort.Strings(marks)

	h := e.history
	return State{
		CanUndo:    h.CanUndo(),
		CanRedo:    h.CanRedo(),
		CanClear:   h.CanClear(),
		UndoCount:  h.UndoCount(),
		RedoCount:  h.RedoCount(),
		PauseDepth: h.PauseDepth(),
		BatchDepth: h.BatchDepth(),
		Limit:      h.Limit(),
		Listeners:  h.ListenerCount(),
		Marks:      marks,
	}
}

// IsReadOnly returns true if the engine rejects edits.
func (e *Engine) IsReadOnly() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.readOnly
}

// SetReadOnly switches the engine between editable and read-only.
func (e *Engine) SetReadOnly(readOnly bool) {
	e.lock()
	defer e.unlock()
	e.readOnly = readOnly
}
