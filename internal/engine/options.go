package engine

import (
	"go.uber.org/zap"

	"github.com/dshills/editsys/internal/notify"
)

// DefaultLimit is the default bound on undo entries. Zero means unbounded.
const DefaultLimit = 0

// Option configures an Engine during creation.
type Option func(*Engine)

// WithLogger sets the logger. The history logs under the "history" name.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLimit bounds the number of undo entries. Zero means unbounded.
func WithLimit(max int) Option {
	return func(e *Engine) {
		if max >= 0 {
			e.limit = max
		}
	}
}

// WithNotifier sets the notifier that Subscribe registers on. It receives
// history property changes once the engine call that caused them returns.
func WithNotifier(n *notify.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithReadOnly creates a read-only engine.
// Edit, Undo and Redo will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
