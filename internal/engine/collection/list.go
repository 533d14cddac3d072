package collection

import (
	"fmt"
	"reflect"
	"weak"
)

// SubscriptionID identifies a handler registered with Subscribe.
type SubscriptionID uint64

// Handler receives every change applied to src.
// A non-nil error is returned to the caller of the mutating method.
type Handler func(src Observable, change Change) error

// WeakRef resolves to its list while the list is reachable, and to nil afterwards.
type WeakRef func() Observable

// Observable is the element-type-agnostic view of a list used by consumers
// that replay or invert changes.
//
// The untyped mutators notify subscribers exactly like their typed
// counterparts; the first handler error is returned.
type Observable interface {
	Len() int
	ValueAt(i int) any
	InsertValue(i int, v any) error
	RemoveValueAt(i int) (any, error)
	SetValue(i int, v any) (any, error)

	Subscribe(h Handler) SubscriptionID
	Unsubscribe(id SubscriptionID)

	// Weak returns a handle that does not keep the list alive.
	Weak() WeakRef
}

// IsNil reports whether o is nil or holds a nil pointer.
func IsNil(o Observable) bool {
	if o == nil {
		return true
	}
	v := reflect.ValueOf(o)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

type subscription struct {
	id SubscriptionID
	fn Handler
}

// ObservableList is a slice-backed list that reports each mutation to its
// subscribers after applying it.
//
// ObservableList is not safe for concurrent use.
type ObservableList[T comparable] struct {
	items  []T
	subs   []subscription
	nextID SubscriptionID
}

// NewList creates a list holding items. No change is reported for them.
func NewList[T comparable](items ...T) *ObservableList[T] {
	l := &ObservableList[T]{}
	if len(items) > 0 {
		l.items = append(make([]T, 0, len(items)), items...)
	}
	return l
}

// Len returns the number of items.
func (l *ObservableList[T]) Len() int {
	return len(l.items)
}

// At returns the item at index i. It panics if i is out of range.
func (l *ObservableList[T]) At(i int) T {
	return l.items[i]
}

// Items returns a copy of the items.
func (l *ObservableList[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// IndexOf returns the index of the first item equal to v, or -1.
func (l *ObservableList[T]) IndexOf(v T) int {
	for i, item := range l.items {
		if item == v {
			return i
		}
	}
	return -1
}

// Contains reports whether v is in the list.
func (l *ObservableList[T]) Contains(v T) bool {
	return l.IndexOf(v) >= 0
}

// Append adds items at the end of the list.
func (l *ObservableList[T]) Append(items ...T) error {
	return l.Insert(len(l.items), items...)
}

// Insert inserts items at index i, shifting later items up.
// Inserting several items reports a single Added change.
func (l *ObservableList[T]) Insert(i int, items ...T) error {
	if i < 0 || i > len(l.items) {
		return fmt.Errorf("insert at %d (len %d): %w", i, len(l.items), ErrIndexOutOfRange)
	}
	if len(items) == 0 {
		return nil
	}

	grown := make([]T, 0, len(l.items)+len(items))
	grown = append(grown, l.items[:i]...)
	grown = append(grown, items...)
	grown = append(grown, l.items[i:]...)
	l.items = grown

	return l.notify(Added{Index: i, Items: toAny(items)})
}

// RemoveAt removes the item at index i.
func (l *ObservableList[T]) RemoveAt(i int) error {
	return l.RemoveRange(i, 1)
}

// RemoveRange removes n contiguous items starting at index i and reports them
// as a single Removed change.
func (l *ObservableList[T]) RemoveRange(i, n int) error {
	if n <= 0 {
		return nil
	}
	if i < 0 || i+n > len(l.items) {
		return fmt.Errorf("remove [%d,%d) (len %d): %w", i, i+n, len(l.items), ErrIndexOutOfRange)
	}

	removed := make([]T, n)
	copy(removed, l.items[i:i+n])
	l.items = append(l.items[:i], l.items[i+n:]...)

	return l.notify(Removed{Index: i, Items: toAny(removed)})
}

// Remove removes the first item equal to v.
// It reports false if v was not found.
func (l *ObservableList[T]) Remove(v T) (bool, error) {
	i := l.IndexOf(v)
	if i < 0 {
		return false, nil
	}
	return true, l.RemoveAt(i)
}

// Set replaces the item at index i with v.
func (l *ObservableList[T]) Set(i int, v T) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("set at %d (len %d): %w", i, len(l.items), ErrIndexOutOfRange)
	}

	old := l.items[i]
	l.items[i] = v

	return l.notify(Replaced{Index: i, OldItems: []any{old}, NewItems: []any{v}})
}

// Move relocates the item at index from to index to.
func (l *ObservableList[T]) Move(from, to int) error {
	if from < 0 || from >= len(l.items) || to < 0 || to >= len(l.items) {
		return fmt.Errorf("move %d to %d (len %d): %w", from, to, len(l.items), ErrIndexOutOfRange)
	}

	item := l.items[from]
	l.items = append(l.items[:from], l.items[from+1:]...)
	l.items = append(l.items, item)
	copy(l.items[to+1:], l.items[to:len(l.items)-1])
	l.items[to] = item

	return l.notify(Moved{OldIndex: from, NewIndex: to, Items: []any{item}})
}

// Clear removes all items and reports a Reset.
//
// Undo histories do not record a Reset; use an explicit remove loop inside a
// batch when the clear must be undoable.
func (l *ObservableList[T]) Clear() error {
	l.items = nil
	return l.notify(Reset{})
}

// ValueAt implements Observable.
func (l *ObservableList[T]) ValueAt(i int) any {
	return l.items[i]
}

// InsertValue implements Observable. v must hold a T.
func (l *ObservableList[T]) InsertValue(i int, v any) error {
	return l.Insert(i, v.(T))
}

// RemoveValueAt implements Observable.
func (l *ObservableList[T]) RemoveValueAt(i int) (any, error) {
	if i < 0 || i >= len(l.items) {
		return nil, fmt.Errorf("remove at %d (len %d): %w", i, len(l.items), ErrIndexOutOfRange)
	}
	v := l.items[i]
	return v, l.RemoveAt(i)
}

// SetValue implements Observable. v must hold a T.
func (l *ObservableList[T]) SetValue(i int, v any) (any, error) {
	if i < 0 || i >= len(l.items) {
		return nil, fmt.Errorf("set at %d (len %d): %w", i, len(l.items), ErrIndexOutOfRange)
	}
	old := l.items[i]
	return old, l.Set(i, v.(T))
}

// Subscribe registers h for every subsequent change.
func (l *ObservableList[T]) Subscribe(h Handler) SubscriptionID {
	l.nextID++
	l.subs = append(l.subs, subscription{id: l.nextID, fn: h})
	return l.nextID
}

// Unsubscribe removes the handler registered under id. Unknown ids are ignored.
func (l *ObservableList[T]) Unsubscribe(id SubscriptionID) {
	for i, s := range l.subs {
		if s.id == id {
			l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of registered handlers.
func (l *ObservableList[T]) Subscribers() int {
	return len(l.subs)
}

// Weak implements Observable.
func (l *ObservableList[T]) Weak() WeakRef {
	wp := weak.Make(l)
	return func() Observable {
		if p := wp.Value(); p != nil {
			return p
		}
		return nil
	}
}

// notify delivers change to a snapshot of the subscribers so handlers may
// subscribe or unsubscribe while being called.
func (l *ObservableList[T]) notify(change Change) error {
	if len(l.subs) == 0 {
		return nil
	}

	subs := make([]subscription, len(l.subs))
	copy(subs, l.subs)

	var first error
	for _, s := range subs {
		if err := s.fn(l, change); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func toAny[T any](items []T) []any {
	out := make([]any, len(items))
	for i, v := range items {
		out[i] = v
	}
	return out
}
