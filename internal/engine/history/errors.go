package history

import (
	"errors"
	"fmt"
)

// Error categories. Every specific error below wraps one of them, so callers
// can test with errors.Is at either level.
var (
	// ErrInvalidOperation indicates a call made in a state that forbids it.
	ErrInvalidOperation = errors.New("invalid history operation")

	// ErrNotSupported indicates a collection change that cannot be recorded.
	ErrNotSupported = errors.New("not supported")

	// ErrNotImplemented indicates a collection change shape that is not handled.
	ErrNotImplemented = errors.New("not implemented")
)

// Errors returned by history operations.
var (
	// ErrBatchActive indicates Undo or Redo was called during batch recording.
	ErrBatchActive = fmt.Errorf("%w: undo/redo during batch recording", ErrInvalidOperation)

	// ErrPauseActive indicates Undo or Redo was called while paused.
	ErrPauseActive = fmt.Errorf("%w: undo/redo while paused", ErrInvalidOperation)

	// ErrBatchNotBegun indicates EndBatch without a matching BeginBatch.
	ErrBatchNotBegun = fmt.Errorf("%w: batch recording has not begun", ErrInvalidOperation)

	// ErrPauseNotBegun indicates EndPause without a matching BeginPause.
	ErrPauseNotBegun = fmt.Errorf("%w: pause has not begun", ErrInvalidOperation)

	// ErrResetNotSupported is returned when a listened list is reset while
	// recording. Clear lists with tracking.ClearEx instead.
	ErrResetNotSupported = fmt.Errorf("%w: collection reset is not undoable, use ClearEx", ErrNotSupported)

	// ErrMultiItemMove indicates a move event carrying more than one item.
	ErrMultiItemMove = fmt.Errorf("%w: multi-item move", ErrNotImplemented)

	// ErrMultiItemReplace indicates a replace event carrying more than one item.
	ErrMultiItemReplace = fmt.Errorf("%w: multi-item replace", ErrNotImplemented)

	// ErrReplayFailed indicates a recorded list change could not be undone or
	// redone because the list no longer has the recorded shape.
	ErrReplayFailed = fmt.Errorf("%w: list change cannot be replayed", ErrInvalidOperation)

	// ErrUnknownChange indicates a change type the translator does not know.
	ErrUnknownChange = errors.New("unknown collection change")
)
