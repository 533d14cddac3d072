package script

import "errors"

// Errors returned by script runs.
var (
	// ErrClosed is returned when running on a closed Runner.
	ErrClosed = errors.New("script runner is closed")

	// ErrTimeout is returned when a run exceeds its time limit.
	ErrTimeout = errors.New("script timed out")

	// ErrUnbalanced is returned when a script leaves a batch or pause open.
	// The runner closes them before returning it.
	ErrUnbalanced = errors.New("script left history batch or pause open")
)
