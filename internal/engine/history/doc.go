// Package history provides undo/redo for observable object graphs.
//
// A History keeps two stacks of Records. Each Record pairs an undo and a redo
// closure supplied by the code that performed a mutation:
//
//	h := history.New()
//
//	old := model.Count
//	h.Push(func() { model.Count = old }, func() { model.Count = 42 })
//	model.Count = 42
//
//	h.Undo() // model.Count == old
//	h.Redo() // model.Count == 42
//
// Pushing a new record discards everything that could have been redone.
//
// # Batches
//
// Records pushed between BeginBatch and EndBatch collapse into one entry that
// undoes its parts in reverse order and redoes them in order. Batches nest,
// and only the outermost one reaches the stack:
//
//	err := h.Batch(func() error {
//	    // ... several tracked edits ...
//	    return nil
//	})
//
// # Pausing
//
// Between BeginPause and EndPause mutations still happen but nothing is
// recorded. Undo and Redo fail while a batch is open or recording is paused.
//
// # Collections
//
// Listen subscribes the history to a collection.Observable. Every change the
// list reports is translated into a Record that replays or inverts it in
// place. Changes caused by an undo or redo in progress are ignored. The
// registry holds lists weakly, so listening never keeps a list alive.
//
// # Notifications
//
// CanUndo, CanRedo, CanClear, UndoCount, RedoCount, PauseDepth and BatchDepth
// are observable through Subscribe. A property is reported at most once per
// operation, after the operation has taken effect, and only if its value
// changed.
package history
