package document

import (
	"github.com/google/uuid"

	"github.com/dshills/editsys/internal/engine/collection"
)

// Item is an element of a document's item list. It counts how often it has
// been added to, removed from and moved within a list, including the
// membership changes replayed by undo and redo.
type Item struct {
	ID   uuid.UUID
	name string

	Added   int
	Removed int
	Moved   int
}

// NewItem creates an item with a fresh identifier.
func NewItem(name string) *Item {
	return &Item{ID: uuid.New(), name: normalize(name)}
}

// Name returns the item name.
func (i *Item) Name() string {
	return i.name
}

// Attached reports whether the item is currently in a list.
func (i *Item) Attached() bool {
	return i.Added > i.Removed
}

// CollectionChanged implements collection.Item.
func (i *Item) CollectionChanged(change collection.ItemChange) {
	switch change {
	case collection.ItemAdded:
		i.Added++
	case collection.ItemRemoved:
		i.Removed++
	case collection.ItemMoved:
		i.Moved++
	}
}

var _ collection.Item = (*Item)(nil)
