package history

import (
	"go.uber.org/zap"

	"github.com/dshills/editsys/internal/engine/collection"
)

// listener is one registration of the translator on a list. It holds the list
// only weakly; the list holds the forwarding handler.
type listener struct {
	ref    collection.WeakRef
	id     collection.SubscriptionID
	refs   int
	active bool
}

type listenerRegistry struct {
	entries []*listener
}

// find returns the live entry for src, pruning dead entries on the way.
func (r *listenerRegistry) find(src collection.Observable) *listener {
	r.prune()
	for _, l := range r.entries {
		if l.ref() == src {
			return l
		}
	}
	return nil
}

func (r *listenerRegistry) prune() {
	live := r.entries[:0]
	for _, l := range r.entries {
		if l.active && l.ref() != nil {
			live = append(live, l)
		}
	}
	clear(r.entries[len(live):])
	r.entries = live
}

func (r *listenerRegistry) remove(target *listener) {
	for i, l := range r.entries {
		if l == target {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// Listen routes every change of src through Translate. Registrations are
// counted: each Listen needs a matching Unlisten before src is detached.
// The history does not keep src alive.
func (h *History) Listen(src collection.Observable) {
	if collection.IsNil(src) {
		return
	}

	if l := h.listeners.find(src); l != nil {
		l.refs++
		return
	}

	l := &listener{ref: src.Weak(), refs: 1, active: true}
	l.id = src.Subscribe(func(list collection.Observable, ch collection.Change) error {
		if !l.active || l.ref() == nil {
			return nil
		}
		return h.Translate(list, ch)
	})
	h.listeners.entries = append(h.listeners.entries, l)

	h.logger.Debug("history: listening to collection", zap.Int("listeners", len(h.listeners.entries)))
}

// Unlisten drops one registration for src, detaching from it when the last
// one is gone. Unknown lists are ignored.
func (h *History) Unlisten(src collection.Observable) {
	if collection.IsNil(src) {
		return
	}

	l := h.listeners.find(src)
	if l == nil {
		return
	}

	l.refs--
	if l.refs > 0 {
		return
	}

	l.active = false
	src.Unsubscribe(l.id)
	h.listeners.remove(l)

	h.logger.Debug("history: stopped listening to collection", zap.Int("listeners", len(h.listeners.entries)))
}

// Listening reports whether src is routed through this history.
func (h *History) Listening(src collection.Observable) bool {
	if collection.IsNil(src) {
		return false
	}
	return h.listeners.find(src) != nil
}

// ListenerCount returns the number of lists currently listened to.
// Entries whose list has been collected are pruned first.
func (h *History) ListenerCount() int {
	h.listeners.prune()
	return len(h.listeners.entries)
}
