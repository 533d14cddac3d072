package tracking

import (
	"github.com/dshills/editsys/internal/engine/collection"
)

// Unsigned is the set of integer types usable as flag words.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Recorder is the part of a history that tracked setters need.
// *history.History implements it.
type Recorder interface {
	Push(undo, redo func())
	Listen(src collection.Observable)
	Unlisten(src collection.Observable)
}

// SetProperty assigns next through set and records the assignment in r.
// It reports false, and does nothing, when next equals current.
//
// When the values are observable lists, r stops listening to the list being
// replaced and starts listening to the new one. Undo and redo move the
// listener back and forth with the value.
//
// A nil r applies the assignment without recording it.
func SetProperty[T comparable](r Recorder, set func(T), current, next T) bool {
	if current == next {
		return false
	}

	if r != nil {
		old := current
		r.Push(func() {
			relisten(r, next, old)
			set(old)
		}, func() {
			relisten(r, old, next)
			set(next)
		})
		relisten(r, old, next)
	}

	set(next)
	return true
}

// SetFlag sets or clears flag in current and records the change in r.
// Setting a bit that is already set, or clearing one that is already clear,
// reports false and records nothing.
//
// A flag with several bits is treated as a mask: the call is a no-op only
// when every bit already has the requested state. Setting a partly set mask
// sets the missing bits and records one change.
func SetFlag[T Unsigned](r Recorder, set func(T), current, flag T, on bool) bool {
	next := withFlag(current, flag, on)
	if next == current {
		return false
	}

	if r != nil {
		old := current
		r.Push(func() { set(old) }, func() { set(next) })
	}

	set(next)
	return true
}

// SetWithoutHistory stores v in *storage without recording anything.
func SetWithoutHistory[T comparable](storage *T, v T) bool {
	if *storage == v {
		return false
	}
	*storage = v
	return true
}

// SetFlagWithoutHistory sets or clears flag in *storage without recording anything.
func SetFlagWithoutHistory[T Unsigned](storage *T, flag T, on bool) bool {
	next := withFlag(*storage, flag, on)
	if next == *storage {
		return false
	}
	*storage = next
	return true
}

// HasFlag reports whether every bit of flag is set in v.
func HasFlag[T Unsigned](v, flag T) bool {
	return v&flag == flag
}

func withFlag[T Unsigned](v, flag T, on bool) T {
	if on {
		return v | flag
	}
	return v &^ flag
}

func relisten(r Recorder, from, to any) {
	if src, ok := from.(collection.Observable); ok {
		r.Unlisten(src)
	}
	if dst, ok := to.(collection.Observable); ok {
		r.Listen(dst)
	}
}
