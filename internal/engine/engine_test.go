package engine

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/dshills/editsys/internal/engine/collection"
	"github.com/dshills/editsys/internal/engine/history"
	"github.com/dshills/editsys/internal/engine/tracking"
	"github.com/dshills/editsys/internal/notify"
)

// counter is a minimal tracked host type.
type counter struct {
	tracking.Model
	n int
}

func newCounter(e *Engine) *counter {
	c := &counter{}
	c.Setup(c, e.History())
	return c
}

func (c *counter) set(v int) bool {
	return tracking.Property(&c.Model, "N", func(v int) { c.n = v }, c.n, v)
}

// setTo applies one recorded assignment through the engine.
func (c *counter) setTo(t *testing.T, e *Engine, v int) {
	t.Helper()
	if err := e.Apply(func(*history.History) error { c.set(v); return nil }); err != nil {
		t.Fatalf("Apply: %v", err)
	}
}

// ============================================================================
// Basic Operations
// ============================================================================

func TestNew(t *testing.T) {
	e := New()
	st := e.State()

	if st.CanUndo || st.CanRedo {
		t.Error("new engine should have nothing to undo or redo")
	}
	if st.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", st.Limit, DefaultLimit)
	}
	if len(st.Marks) != 0 {
		t.Errorf("Marks = %v, want none", st.Marks)
	}
	if e.History() == nil {
		t.Error("History() = nil")
	}
}

func TestNewWithLimit(t *testing.T) {
	e := New(WithLimit(2))
	c := newCounter(e)

	for i := 1; i <= 5; i++ {
		c.setTo(t, e, i)
	}
	if got := e.State().UndoCount; got != 2 {
		t.Errorf("UndoCount = %d, want 2", got)
	}
}

func TestEditIsOneEntry(t *testing.T) {
	e := New()
	c := newCounter(e)
	list := collection.NewList[string]()
	e.Track(list)

	err := e.Edit(func(h *history.History) error {
		c.set(1)
		c.set(2)
		return list.Append("a", "b")
	})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if got := e.State().UndoCount; got != 1 {
		t.Errorf("UndoCount = %d, want 1", got)
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if c.n != 0 || list.Len() != 0 {
		t.Errorf("after undo n=%d len=%d, want 0 and 0", c.n, list.Len())
	}

	if err := e.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if c.n != 2 {
		t.Errorf("n = %d, want 2", c.n)
	}
	if !slices.Equal(list.Items(), []string{"a", "b"}) {
		t.Errorf("Items() = %v", list.Items())
	}
}

func TestEditErrorStillClosesBatch(t *testing.T) {
	e := New()
	c := newCounter(e)
	boom := errors.New("boom")

	err := e.Edit(func(*history.History) error {
		c.set(1)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Edit error = %v, want boom", err)
	}
	st := e.State()
	if st.BatchDepth != 0 {
		t.Errorf("BatchDepth = %d, want 0", st.BatchDepth)
	}
	if st.UndoCount != 1 {
		t.Errorf("UndoCount = %d, applied edits should stay recorded", st.UndoCount)
	}
}

func TestUntracked(t *testing.T) {
	e := New()
	c := newCounter(e)

	if err := e.Untracked(func() error { c.set(9); return nil }); err != nil {
		t.Fatalf("Untracked: %v", err)
	}
	if c.n != 9 {
		t.Errorf("n = %d, want 9", c.n)
	}
	if e.CanUndo() {
		t.Error("untracked edit was recorded")
	}
}

func TestTrackUntrack(t *testing.T) {
	e := New()
	list := collection.NewList[int]()

	e.Track(list)
	if err := list.Append(1); err != nil {
		t.Fatal(err)
	}
	if got := e.State().Listeners; got != 1 {
		t.Errorf("Listeners = %d, want 1", got)
	}

	e.Untrack(list)
	if err := list.Append(2); err != nil {
		t.Fatal(err)
	}
	st := e.State()
	if st.UndoCount != 1 {
		t.Errorf("UndoCount = %d, want 1", st.UndoCount)
	}
	if st.Listeners != 0 {
		t.Errorf("Listeners = %d, want 0", st.Listeners)
	}
}

// ============================================================================
// Read-only
// ============================================================================

func TestReadOnly(t *testing.T) {
	e := New(WithReadOnly())
	if !e.IsReadOnly() {
		t.Fatal("IsReadOnly() = false")
	}

	nop := func(*history.History) error { return nil }
	for name, err := range map[string]error{
		"Edit":      e.Edit(nop),
		"Apply":     e.Apply(nop),
		"Untracked": e.Untracked(func() error { return nil }),
		"Undo":      e.Undo(),
		"Redo":      e.Redo(),
	} {
		if !errors.Is(err, ErrReadOnly) {
			t.Errorf("%s error = %v, want ErrReadOnly", name, err)
		}
	}

	e.SetReadOnly(false)
	if err := e.Undo(); err != nil {
		t.Errorf("Undo after SetReadOnly(false): %v", err)
	}
}

// ============================================================================
// Marks
// ============================================================================

func TestMarks(t *testing.T) {
	e := New()
	c := newCounter(e)

	c.setTo(t, e, 1)
	e.Mark("one")
	c.setTo(t, e, 2)
	c.setTo(t, e, 3)
	e.Mark("three")

	if err := e.RevertTo("one"); err != nil {
		t.Fatalf("RevertTo: %v", err)
	}
	if c.n != 1 {
		t.Errorf("n = %d, want 1", c.n)
	}

	if err := e.ReplayTo("three"); err != nil {
		t.Fatalf("ReplayTo: %v", err)
	}
	if c.n != 3 {
		t.Errorf("n = %d, want 3", c.n)
	}

	if got := e.State().Marks; !slices.Equal(got, []string{"one", "three"}) {
		t.Errorf("Marks = %v", got)
	}

	e.DeleteMark("one")
	if err := e.RevertTo("one"); !errors.Is(err, ErrMarkNotFound) {
		t.Errorf("RevertTo deleted mark error = %v", err)
	}
	if err := e.ReplayTo("nope"); !errors.Is(err, ErrMarkNotFound) {
		t.Errorf("ReplayTo unknown mark error = %v", err)
	}

	e.ClearHistory()
	st := e.State()
	if len(st.Marks) != 0 {
		t.Errorf("Marks after ClearHistory = %v", st.Marks)
	}
	if st.CanClear {
		t.Error("CanClear after ClearHistory")
	}
}

// ============================================================================
// Notifications and errors
// ============================================================================

func TestSubscribeAndSharedNotifier(t *testing.T) {
	n := notify.New()
	e := New(WithNotifier(n))
	c := newCounter(e)

	var got []string
	e.Subscribe(func(_ any, args *notify.Args) { got = append(got, args.Name()) })

	c.setTo(t, e, 1)
	want := []string{history.PropCanUndo, history.PropCanClear, history.PropUndoCount}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if n.Len() != 1 {
		t.Errorf("shared notifier Len() = %d, want 1", n.Len())
	}
}

func TestSubscriberMayQueryEngine(t *testing.T) {
	e := New()
	c := newCounter(e)

	var seen []bool
	e.Subscribe(func(_ any, args *notify.Args) {
		if args.Name() == history.PropCanUndo {
			seen = append(seen, e.CanUndo())
		}
	})

	done := make(chan error, 1)
	go func() {
		done <- e.Apply(func(*history.History) error { c.set(1); return nil })
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Apply did not return")
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if want := []bool{true, false}; !slices.Equal(seen, want) {
		t.Errorf("CanUndo seen by handler = %v, want %v", seen, want)
	}
}

func TestSubscriberMayEditEngine(t *testing.T) {
	e := New()
	c := newCounter(e)

	e.Subscribe(func(_ any, args *notify.Args) {
		if args.Name() == history.PropUndoCount && e.State().UndoCount == 1 {
			_ = e.Edit(func(*history.History) error { c.set(c.n * 10); return nil })
		}
	})

	if err := e.Edit(func(*history.History) error { c.set(2); return nil }); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if c.n != 20 {
		t.Errorf("n = %d, want 20", c.n)
	}
	if got := e.State().UndoCount; got != 2 {
		t.Errorf("UndoCount = %d, want 2", got)
	}
}

func TestNotificationsCoalescePerCall(t *testing.T) {
	e := New()
	c := newCounter(e)

	var got []string
	e.Subscribe(func(_ any, args *notify.Args) { got = append(got, args.Name()) })

	err := e.Apply(func(*history.History) error {
		c.set(1)
		c.set(2)
		c.set(3)
		return nil
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []string{history.PropCanUndo, history.PropCanClear, history.PropUndoCount}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got = nil
	e.History().BeginPause()
	if want := []string{history.PropPauseDepth}; !slices.Equal(got, want) {
		t.Errorf("direct history call: got %v, want %v", got, want)
	}
	if err := e.History().EndPause(); err != nil {
		t.Fatal(err)
	}
}

func TestReexportedErrors(t *testing.T) {
	e := New()

	e.History().BeginBatch()
	err := e.Undo()
	if !errors.Is(err, ErrBatchActive) || !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("Undo during batch error = %v", err)
	}
	if err := e.History().EndBatch(); err != nil {
		t.Fatal(err)
	}

	if err := e.History().EndPause(); !errors.Is(err, ErrPauseNotBegun) {
		t.Errorf("EndPause error = %v, want ErrPauseNotBegun", err)
	}
}

// ============================================================================
// Concurrency
// ============================================================================

func TestConcurrentEdits(t *testing.T) {
	e := New()
	c := newCounter(e)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = e.Edit(func(*history.History) error {
				c.set(c.n + 1)
				return nil
			})
			_ = e.State()
		}()
	}
	wg.Wait()

	if c.n != 50 {
		t.Errorf("n = %d, want 50", c.n)
	}
	if got := e.State().UndoCount; got != 50 {
		t.Errorf("UndoCount = %d, want 50", got)
	}

	for e.CanUndo() {
		if err := e.Undo(); err != nil {
			t.Fatalf("Undo: %v", err)
		}
	}
	if c.n != 0 {
		t.Errorf("n = %d, want 0", c.n)
	}
}
