package engine

import (
	"errors"

	"github.com/dshills/editsys/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrMarkNotFound indicates a mark was not found.
	ErrMarkNotFound = errors.New("mark not found")
)

// History errors, re-exported for callers that only import engine.
var (
	ErrInvalidOperation  = history.ErrInvalidOperation
	ErrNotSupported      = history.ErrNotSupported
	ErrNotImplemented    = history.ErrNotImplemented
	ErrBatchActive       = history.ErrBatchActive
	ErrPauseActive       = history.ErrPauseActive
	ErrBatchNotBegun     = history.ErrBatchNotBegun
	ErrPauseNotBegun     = history.ErrPauseNotBegun
	ErrResetNotSupported = history.ErrResetNotSupported
	ErrReplayFailed      = history.ErrReplayFailed
)
