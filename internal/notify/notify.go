// Package notify provides property-changed notification.
//
// A Notifier delivers the name of a changed property to its subscribers,
// synchronously and in subscription order. Subscribers may observe every
// property or a single named one.
package notify

import (
	"sync"
)

// Args carries the name of a changed property. Args values are immutable and
// are shared between notifications; obtain them through ArgsFor.
type Args struct {
	name string
}

// Name returns the property name.
func (a *Args) Name() string {
	return a.name
}

// argsCache memoizes one *Args per property name.
var argsCache sync.Map

// ArgsFor returns the shared Args for name. Concurrent callers asking for the
// same name receive the same pointer.
func ArgsFor(name string) *Args {
	if v, ok := argsCache.Load(name); ok {
		return v.(*Args)
	}
	v, _ := argsCache.LoadOrStore(name, &Args{name: name})
	return v.(*Args)
}

// Handler is called when a property of sender changes.
type Handler func(sender any, args *Args)

// Subscription represents an active handler registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
	once     sync.Once
}

// Unsubscribe removes this subscription. Calling it more than once is harmless.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.notifier == nil {
		return
	}
	s.once.Do(func() {
		s.notifier.unsubscribe(s.id)
	})
}

type entry struct {
	id       uint64
	property string // empty matches every property
	handler  Handler
}

// Notifier manages property-changed subscriptions.
type Notifier struct {
	mu      sync.RWMutex
	entries []entry
	nextID  uint64
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers a handler for every property change.
func (n *Notifier) Subscribe(h Handler) *Subscription {
	return n.add("", h)
}

// SubscribeProperty registers a handler called only when the named property changes.
func (n *Notifier) SubscribeProperty(name string, h Handler) *Subscription {
	return n.add(name, h)
}

func (n *Notifier) add(property string, h Handler) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	n.entries = append(n.entries, entry{id: n.nextID, property: property, handler: h})

	return &Subscription{id: n.nextID, notifier: n}
}

// Raise notifies subscribers that property name of sender changed.
func (n *Notifier) Raise(sender any, name string) {
	n.RaiseArgs(sender, ArgsFor(name))
}

// RaiseArgs notifies subscribers with a prepared Args value.
// Handlers run outside the lock, so they may subscribe or unsubscribe.
func (n *Notifier) RaiseArgs(sender any, args *Args) {
	if n == nil {
		return
	}

	n.mu.RLock()
	var handlers []Handler
	for _, e := range n.entries {
		if e.property == "" || e.property == args.name {
			handlers = append(handlers, e.handler)
		}
	}
	n.mu.RUnlock()

	for _, h := range handlers {
		h(sender, args)
	}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.entries)
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, e := range n.entries {
		if e.id == id {
			n.entries = append(n.entries[:i:i], n.entries[i+1:]...)
			return
		}
	}
}

// Batch collects property names and raises each of them once on Commit,
// in the order they were first added.
type Batch struct {
	notifier *Notifier
	sender   any
	names    []string
}

// NewBatch creates a batch raising on behalf of sender.
func (n *Notifier) NewBatch(sender any) *Batch {
	return &Batch{notifier: n, sender: sender}
}

// Add queues name. Duplicate names are raised once.
func (b *Batch) Add(name string) {
	for _, existing := range b.names {
		if existing == name {
			return
		}
	}
	b.names = append(b.names, name)
}

// Len returns the number of queued names.
func (b *Batch) Len() int {
	return len(b.names)
}

// Commit raises every queued name and empties the batch.
func (b *Batch) Commit() {
	names := b.names
	b.names = nil
	for _, name := range names {
		b.notifier.Raise(b.sender, name)
	}
}

// Discard empties the batch without raising anything.
func (b *Batch) Discard() {
	b.names = nil
}
