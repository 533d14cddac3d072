package history

import (
	"go.uber.org/zap"

	"github.com/dshills/editsys/internal/notify"
)

// Option configures a History during creation.
type Option func(*History)

// WithLogger sets the logger used for debug tracing of history transitions.
func WithLogger(logger *zap.Logger) Option {
	return func(h *History) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithLimit bounds the undo stack to n entries. When a push exceeds the
// bound, the oldest entries are evicted. Zero means unbounded.
func WithLimit(n int) Option {
	return func(h *History) {
		if n >= 0 {
			h.limit = n
		}
	}
}

// WithNotifier sets the notifier that receives history property changes.
// Use it to share one notifier between a history and the models it serves.
func WithNotifier(n *notify.Notifier) Option {
	return func(h *History) {
		if n != nil {
			h.notifier = n
		}
	}
}
