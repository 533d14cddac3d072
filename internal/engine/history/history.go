package history

import (
	"go.uber.org/zap"

	"github.com/dshills/editsys/internal/notify"
)

// Names of the observable History properties.
const (
	PropCanUndo    = "CanUndo"
	PropCanRedo    = "CanRedo"
	PropCanClear   = "CanClear"
	PropUndoCount  = "UndoCount"
	PropRedoCount  = "RedoCount"
	PropPauseDepth = "PauseDepth"
	PropBatchDepth = "BatchDepth"
)

// History records reversible operations on two stacks and replays them.
//
// Pushes are ignored while paused and collected into a single record while a
// batch is open. Undo and Redo require the history to be neither paused nor
// batching. Every change of an observable property is reported through the
// history's notifier after the operation has taken effect.
//
// History is not safe for concurrent use. A host serializes all calls.
type History struct {
	undoStack []Record
	redoStack []Record

	pauseDepth int
	batchDepth int
	batch      *transactionBuffer

	replaying bool

	limit     int
	logger    *zap.Logger
	notifier  *notify.Notifier
	listeners listenerRegistry
}

// New creates an empty history.
func New(opts ...Option) *History {
	h := &History{
		logger:   zap.NewNop(),
		notifier: notify.New(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// state is the observable part of a History, compared before and after
// each operation to decide which properties changed.
type state struct {
	canUndo, canRedo, canClear bool
	undoCount, redoCount       int
	pauseDepth, batchDepth     int
}

func (h *History) snapshot() state {
	return state{
		canUndo:    h.CanUndo(),
		canRedo:    h.CanRedo(),
		canClear:   h.CanClear(),
		undoCount:  len(h.undoStack),
		redoCount:  len(h.redoStack),
		pauseDepth: h.pauseDepth,
		batchDepth: h.batchDepth,
	}
}

// raiseChanges reports every property that differs from before.
func (h *History) raiseChanges(before state) {
	after := h.snapshot()
	if after == before {
		return
	}

	b := h.notifier.NewBatch(h)
	if before.canUndo != after.canUndo {
		b.Add(PropCanUndo)
	}
	if before.canRedo != after.canRedo {
		b.Add(PropCanRedo)
	}
	if before.canClear != after.canClear {
		b.Add(PropCanClear)
	}
	if before.undoCount != after.undoCount {
		b.Add(PropUndoCount)
	}
	if before.redoCount != after.redoCount {
		b.Add(PropRedoCount)
	}
	if before.pauseDepth != after.pauseDepth {
		b.Add(PropPauseDepth)
	}
	if before.batchDepth != after.batchDepth {
		b.Add(PropBatchDepth)
	}
	b.Commit()
}

// Push records an operation whose effect the caller applies separately.
// undo must exactly reverse the effect and redo must exactly reapply it.
//
// Push does nothing while paused. While a batch is open the record joins the
// batch. Otherwise it goes on the undo stack and the redo stack is discarded.
func (h *History) Push(undo, redo func()) {
	if h.pauseDepth > 0 {
		return
	}

	rec := NewRecord(undo, redo)

	if h.batchDepth > 0 {
		h.batch.push(rec)
		h.logger.Debug("history: push into batch",
			zap.Int("batchDepth", h.batchDepth),
			zap.Int("batchSize", h.batch.len()))
		return
	}

	before := h.snapshot()
	h.pushRecord(rec)
	h.logger.Debug("history: push",
		zap.Int("undo", len(h.undoStack)),
		zap.Int("redo", len(h.redoStack)))
	h.raiseChanges(before)
}

// pushRecord places rec on the undo stack without notifying.
func (h *History) pushRecord(rec Record) {
	h.undoStack = append(h.undoStack, rec)

	if len(h.redoStack) > 0 {
		h.redoStack = nil
	}

	if h.limit > 0 && len(h.undoStack) > h.limit {
		excess := len(h.undoStack) - h.limit
		n := copy(h.undoStack, h.undoStack[excess:])
		clear(h.undoStack[n:])
		h.undoStack = h.undoStack[:n]
		h.logger.Debug("history: evicted oldest entries", zap.Int("count", excess))
	}
}

// Undo reverses the most recent operation. It does nothing when there is
// nothing to undo.
//
// If the undo side panics, the panic propagates, the history stays usable,
// and the record is dropped.
func (h *History) Undo() error {
	if err := h.checkIdle(); err != nil {
		return err
	}
	if !h.CanUndo() {
		return nil
	}

	before := h.snapshot()
	defer h.raiseChanges(before)

	rec := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	h.replay(rec.Undo)

	h.redoStack = append(h.redoStack, rec)
	h.logger.Debug("history: undo",
		zap.Int("undo", len(h.undoStack)),
		zap.Int("redo", len(h.redoStack)))
	return nil
}

// Redo reapplies the most recently undone operation. It does nothing when
// there is nothing to redo.
func (h *History) Redo() error {
	if err := h.checkIdle(); err != nil {
		return err
	}
	if !h.CanRedo() {
		return nil
	}

	before := h.snapshot()
	defer h.raiseChanges(before)

	rec := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	h.replay(rec.Redo)

	h.undoStack = append(h.undoStack, rec)
	h.logger.Debug("history: redo",
		zap.Int("undo", len(h.undoStack)),
		zap.Int("redo", len(h.redoStack)))
	return nil
}

func (h *History) checkIdle() error {
	if h.batchDepth > 0 {
		return ErrBatchActive
	}
	if h.pauseDepth > 0 {
		return ErrPauseActive
	}
	return nil
}

// replay runs fn with the replaying flag set, clearing it on every exit path.
func (h *History) replay(fn func()) {
	h.replaying = true
	defer func() { h.replaying = false }()
	fn()
}

// Clear empties both stacks. It is allowed in any state and leaves the
// pause depth, the batch depth and an open batch untouched.
func (h *History) Clear() {
	before := h.snapshot()

	h.undoStack = nil
	h.redoStack = nil

	h.logger.Debug("history: clear")
	h.raiseChanges(before)
}

// BeginBatch opens a batch. Batches nest; only the outermost one collects
// records, and its records reach the stack as a single entry when it closes.
func (h *History) BeginBatch() {
	before := h.snapshot()

	h.batchDepth++
	if h.batchDepth == 1 {
		h.batch = &transactionBuffer{}
	}

	h.logger.Debug("history: begin batch", zap.Int("depth", h.batchDepth))
	h.raiseChanges(before)
}

// EndBatch closes the innermost open batch. Closing the outermost batch
// pushes the collected records as one entry, or nothing if none were pushed.
func (h *History) EndBatch() error {
	if h.batchDepth == 0 {
		return ErrBatchNotBegun
	}

	before := h.snapshot()

	h.batchDepth--
	if h.batchDepth == 0 {
		buf := h.batch
		h.batch = nil

		switch {
		case buf.empty():
			h.logger.Debug("history: end empty batch")
		case h.pauseDepth > 0:
			h.logger.Debug("history: end batch while paused, discarded", zap.Int("size", buf.len()))
		default:
			h.pushRecord(buf.collapse())
			h.logger.Debug("history: end batch", zap.Int("size", buf.len()))
		}
	}

	h.raiseChanges(before)
	return nil
}

// BeginPause suspends recording. Pauses nest.
func (h *History) BeginPause() {
	before := h.snapshot()
	h.pauseDepth++
	h.logger.Debug("history: begin pause", zap.Int("depth", h.pauseDepth))
	h.raiseChanges(before)
}

// EndPause resumes recording once every BeginPause has been matched.
func (h *History) EndPause() error {
	if h.pauseDepth == 0 {
		return ErrPauseNotBegun
	}

	before := h.snapshot()
	h.pauseDepth--
	h.logger.Debug("history: end pause", zap.Int("depth", h.pauseDepth))
	h.raiseChanges(before)
	return nil
}

// CanUndo reports whether there is an operation to undo.
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo reports whether there is an operation to redo.
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// CanClear reports whether either stack holds an operation.
func (h *History) CanClear() bool { return h.CanUndo() || h.CanRedo() }

// UndoCount returns the number of operations that can be undone.
func (h *History) UndoCount() int { return len(h.undoStack) }

// RedoCount returns the number of operations that can be redone.
func (h *History) RedoCount() int { return len(h.redoStack) }

// PauseDepth returns the number of unmatched BeginPause calls.
func (h *History) PauseDepth() int { return h.pauseDepth }

// BatchDepth returns the number of unmatched BeginBatch calls.
func (h *History) BatchDepth() int { return h.batchDepth }

// IsPaused reports whether recording is suspended.
func (h *History) IsPaused() bool { return h.pauseDepth > 0 }

// IsBatching reports whether a batch is open.
func (h *History) IsBatching() bool { return h.batchDepth > 0 }

// IsReplaying reports whether an undo or redo side is executing.
func (h *History) IsReplaying() bool { return h.replaying }

// Limit returns the undo stack bound, or zero when unbounded.
func (h *History) Limit() int { return h.limit }

// Notifier returns the notifier that receives history property changes.
func (h *History) Notifier() *notify.Notifier { return h.notifier }

// Subscribe registers a handler for every history property change.
func (h *History) Subscribe(fn notify.Handler) *notify.Subscription {
	return h.notifier.Subscribe(fn)
}

// SubscribeProperty registers a handler for changes of one named property.
func (h *History) SubscribeProperty(name string, fn notify.Handler) *notify.Subscription {
	return h.notifier.SubscribeProperty(name, fn)
}
