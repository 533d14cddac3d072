package history

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/editsys/internal/engine/collection"
)

// Translate records ch, a change src has just applied, as an undoable
// operation. Items implementing collection.Item are told about the change
// now and again on every undo and redo.
//
// Changes caused by an undo or redo in progress are ignored. A Reset is
// ignored while paused and rejected otherwise.
func (h *History) Translate(src collection.Observable, ch collection.Change) error {
	if h.replaying {
		return nil
	}

	switch c := ch.(type) {
	case collection.Added:
		h.translateAdded(src, c)
	case collection.Removed:
		h.translateRemoved(src, c)
	case collection.Moved:
		if len(c.Items) != 1 {
			return fmt.Errorf("%w: %d items", ErrMultiItemMove, len(c.Items))
		}
		h.translateMoved(src, c)
	case collection.Replaced:
		if len(c.OldItems) != 1 || len(c.NewItems) != 1 {
			return fmt.Errorf("%w: %d old, %d new", ErrMultiItemReplace, len(c.OldItems), len(c.NewItems))
		}
		h.translateReplaced(src, c)
	case collection.Reset:
		if h.pauseDepth > 0 {
			return nil
		}
		h.logger.Debug("history: rejected collection reset")
		return ErrResetNotSupported
	default:
		return fmt.Errorf("%w: %T", ErrUnknownChange, ch)
	}

	h.logger.Debug("history: translated collection change", zap.Stringer("kind", ch.Kind()))
	return nil
}

func (h *History) translateAdded(src collection.Observable, c collection.Added) {
	items := c.Items
	index := c.Index

	redo := func() {
		for i, item := range items {
			mustReplay(src.InsertValue(index+i, item))
			collection.Notify(item, collection.ItemAdded)
		}
	}
	undo := func() {
		for i := len(items) - 1; i >= 0; i-- {
			_, err := src.RemoveValueAt(index + i)
			mustReplay(err)
			collection.Notify(items[i], collection.ItemRemoved)
		}
	}

	for _, item := range items {
		collection.Notify(item, collection.ItemAdded)
	}
	h.Push(undo, redo)
}

// translateRemoved re-reads the live slots on redo instead of reusing the
// captured items, and the next undo reinserts what redo actually removed.
// If unrelated code changed those slots between undo and redo, redo removes
// whatever now occupies them.
func (h *History) translateRemoved(src collection.Observable, c collection.Removed) {
	items := append([]any(nil), c.Items...)
	index := c.Index

	redo := func() {
		for i := range items {
			item, err := src.RemoveValueAt(index)
			mustReplay(err)
			items[i] = item
			collection.Notify(item, collection.ItemRemoved)
		}
	}
	undo := func() {
		for i, item := range items {
			mustReplay(src.InsertValue(index+i, item))
			collection.Notify(item, collection.ItemAdded)
		}
	}

	for _, item := range items {
		collection.Notify(item, collection.ItemRemoved)
	}
	h.Push(undo, redo)
}

func (h *History) translateMoved(src collection.Observable, c collection.Moved) {
	from, to := c.OldIndex, c.NewIndex

	move := func(src collection.Observable, from, to int) {
		item, err := src.RemoveValueAt(from)
		mustReplay(err)
		mustReplay(src.InsertValue(to, item))
		collection.Notify(item, collection.ItemMoved)
	}

	redo := func() { move(src, from, to) }
	undo := func() { move(src, to, from) }

	collection.Notify(c.Items[0], collection.ItemMoved)
	h.Push(undo, redo)
}

func (h *History) translateReplaced(src collection.Observable, c collection.Replaced) {
	index := c.Index
	oldItem, newItem := c.OldItems[0], c.NewItems[0]

	install := func(item any) {
		displaced, err := src.SetValue(index, item)
		mustReplay(err)
		collection.Notify(displaced, collection.ItemRemoved)
		collection.Notify(item, collection.ItemAdded)
	}

	redo := func() { install(newItem) }
	undo := func() { install(oldItem) }

	collection.Notify(oldItem, collection.ItemRemoved)
	collection.Notify(newItem, collection.ItemAdded)
	h.Push(undo, redo)
}

// mustReplay fails a replay whose list no longer matches the recorded change.
// Undo and Redo let the panic through and drop the record.
func mustReplay(err error) {
	if err != nil {
		panic(fmt.Errorf("%w: %w", ErrReplayFailed, err))
	}
}
