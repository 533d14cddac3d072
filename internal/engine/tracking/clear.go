package tracking

import (
	"github.com/dshills/editsys/internal/engine/collection"
	"github.com/dshills/editsys/internal/engine/history"
)

// ClearEx empties list one item at a time, last first, inside a single batch
// of h, so one undo restores every item in place. Use it instead of Clear on
// a list the history listens to.
//
// With a nil h the items are removed without a batch.
func ClearEx[T comparable](list *collection.ObservableList[T], h *history.History) error {
	removeAll := func() error {
		for list.Len() > 0 {
			if err := list.RemoveAt(list.Len() - 1); err != nil {
				return err
			}
		}
		return nil
	}

	if h == nil {
		return removeAll()
	}
	return h.Batch(removeAll)
}
