package history

// Scope closes a batch or pause opened by BatchScope or PauseScope.
// Usage:
//
//	func renameAll(h *history.History, doc *document.Document) error {
//	    defer h.BatchScope().End()
//	    // ... several tracked edits ...
//	}
type Scope struct {
	end    func() error
	active bool
}

// BatchScope opens a batch and returns the scope that closes it.
func (h *History) BatchScope() *Scope {
	h.BeginBatch()
	return &Scope{end: h.EndBatch, active: true}
}

// PauseScope suspends recording and returns the scope that resumes it.
func (h *History) PauseScope() *Scope {
	h.BeginPause()
	return &Scope{end: h.EndPause, active: true}
}

// End closes the scope.
// Safe to call multiple times; only the first call has effect.
func (s *Scope) End() error {
	if !s.active {
		return nil
	}
	s.active = false
	return s.end()
}

// Batch runs fn inside a batch so everything it records undoes as one entry.
// The batch is closed even if fn fails or panics. An error from fn takes
// precedence over an error closing the batch.
func (h *History) Batch(fn func() error) (err error) {
	h.BeginBatch()
	defer func() {
		if endErr := h.EndBatch(); err == nil {
			err = endErr
		}
	}()
	return fn()
}

// Paused runs fn with recording suspended.
func (h *History) Paused(fn func() error) (err error) {
	h.BeginPause()
	defer func() {
		if endErr := h.EndPause(); err == nil {
			err = endErr
		}
	}()
	return fn()
}

// Checkpoint represents a point in history that can be returned to.
// Checkpoints are positions, not identities: evictions caused by a limit and
// new pushes after an undo invalidate them.
type Checkpoint struct {
	undoDepth int
}

// Depth returns the undo count captured by the checkpoint.
func (c Checkpoint) Depth() int {
	return c.undoDepth
}

// Checkpoint captures the current history position.
func (h *History) Checkpoint() Checkpoint {
	return Checkpoint{undoDepth: len(h.undoStack)}
}

// UndoTo undoes every operation recorded since cp.
func (h *History) UndoTo(cp Checkpoint) error {
	for h.UndoCount() > cp.undoDepth {
		if err := h.Undo(); err != nil {
			return err
		}
	}
	return nil
}

// RedoTo redoes operations until the history is back at cp, or the redo
// stack runs out.
func (h *History) RedoTo(cp Checkpoint) error {
	for h.UndoCount() < cp.undoDepth && h.CanRedo() {
		if err := h.Redo(); err != nil {
			return err
		}
	}
	return nil
}
