// Package engine provides the undo/redo engine for editsys.
//
// The engine package serves as the main facade over a history session,
// serializing the edits, undos and redos a host performs so that a History,
// which assumes a single caller, can be shared by goroutines.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - history: undo/redo stacks, batches, pausing and collection translation
//   - collection: observable lists and the change events they report
//   - tracking: property and flag setters that record into a history
//
// # Basic Usage
//
// Create an engine, bind models to its history, and edit through it:
//
//	e := engine.New(engine.WithLimit(500))
//
//	doc := document.New(e.History())
//
//	// Everything recorded by fn undoes as one entry
//	err := e.Edit(func(h *history.History) error {
//	    doc.SetTitle("Draft")
//	    _, err := doc.Add("intro", -1)
//	    return err
//	})
//
//	e.Undo()
//	e.Redo()
//
// # Lists
//
// Lists are recorded once tracked:
//
//	list := collection.NewList[string]()
//	e.Track(list)
//
// Clear a tracked list with tracking.ClearEx. A plain Clear cannot be undone
// and is rejected with ErrResetNotSupported.
//
// # Marks
//
// Mark names the current history position. RevertTo undoes everything
// recorded after a mark, and ReplayTo redoes back to it:
//
//	e.Mark("saved")
//	// ... edits ...
//	e.RevertTo("saved")
//
// # Notifications
//
// Subscribe observes the history's CanUndo, CanRedo, CanClear, UndoCount,
// RedoCount, PauseDepth and BatchDepth properties. A property is reported
// only when its value changes.
//
// # Thread Safety
//
// Engine methods are safe for concurrent use. Models and lists bound to the
// engine's history must only be mutated inside Edit, Apply or Untracked.
package engine
