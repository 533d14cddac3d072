package tracking

import (
	"github.com/dshills/editsys/internal/engine/history"
	"github.com/dshills/editsys/internal/notify"
)

// Model is an embeddable base for host types with tracked properties.
//
// Property changes are reported to the model's subscribers on the first
// assignment and again on every undo and redo of it. Call Setup before use;
// a model without a history applies assignments without recording them.
type Model struct {
	owner    any
	history  *history.History
	notifier *notify.Notifier
}

// Setup binds the model to the value that embeds it, which is reported as the
// sender of property changes, and to the history that records its edits.
func (m *Model) Setup(owner any, h *history.History) {
	m.owner = owner
	m.history = h
	if m.notifier == nil {
		m.notifier = notify.New()
	}
}

// History returns the history recording this model, or nil.
func (m *Model) History() *history.History {
	return m.history
}

// Subscribe registers a handler for every property change of the model.
func (m *Model) Subscribe(fn notify.Handler) *notify.Subscription {
	return m.ensureNotifier().Subscribe(fn)
}

// SubscribeProperty registers a handler for one named property.
func (m *Model) SubscribeProperty(name string, fn notify.Handler) *notify.Subscription {
	return m.ensureNotifier().SubscribeProperty(name, fn)
}

// RaisePropertyChanged reports that the named property changed.
func (m *Model) RaisePropertyChanged(name string) {
	if m.notifier == nil {
		return
	}
	sender := m.owner
	if sender == nil {
		sender = m
	}
	m.notifier.RaiseArgs(sender, notify.ArgsFor(name))
}

func (m *Model) ensureNotifier() *notify.Notifier {
	if m.notifier == nil {
		m.notifier = notify.New()
	}
	return m.notifier
}

func (m *Model) recorder() Recorder {
	if m.history == nil {
		return nil
	}
	return m.history
}

// Property assigns next to the named property of m through set, recording it
// in m's history and reporting the change.
func Property[T comparable](m *Model, name string, set func(T), current, next T) bool {
	return SetProperty(m.recorder(), raising(m, name, set), current, next)
}

// FlagProperty sets or clears flag in the named flag word of m.
func FlagProperty[T Unsigned](m *Model, name string, set func(T), current, flag T, on bool) bool {
	return SetFlag(m.recorder(), raising(m, name, set), current, flag, on)
}

// PropertyWithoutHistory stores v and reports the change without recording it.
func PropertyWithoutHistory[T comparable](m *Model, name string, storage *T, v T) bool {
	if !SetWithoutHistory(storage, v) {
		return false
	}
	m.RaisePropertyChanged(name)
	return true
}

// FlagPropertyWithoutHistory sets or clears flag without recording it.
func FlagPropertyWithoutHistory[T Unsigned](m *Model, name string, storage *T, flag T, on bool) bool {
	if !SetFlagWithoutHistory(storage, flag, on) {
		return false
	}
	m.RaisePropertyChanged(name)
	return true
}

// raising wraps set so every application also reports the property change.
func raising[T any](m *Model, name string, set func(T)) func(T) {
	return func(v T) {
		set(v)
		m.RaisePropertyChanged(name)
	}
}
