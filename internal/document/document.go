// Package document implements a small editable model on top of the history
// engine: scalar properties, a flag word, an item list and a tag set, all of
// them undoable.
package document

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/editsys/internal/engine/collection"
	"github.com/dshills/editsys/internal/engine/history"
	"github.com/dshills/editsys/internal/engine/tracking"
)

// Names of the document properties reported to subscribers.
const (
	PropTitle = "Title"
	PropCount = "Count"
	PropFlags = "Flags"
	PropItems = "Items"
	PropTags  = "Tags"
)

// ItemList is the observable list type holding a document's items.
type ItemList = collection.ObservableList[*Item]

// Document is an editable model whose every change can be undone.
type Document struct {
	tracking.Model

	id    uuid.UUID
	title string
	count int
	flags Flag
	items *ItemList
	tags  mapset.Set[string]
}

// New creates an empty document recording into h. A nil h gives a document
// whose edits are applied but not recorded.
func New(h *history.History) *Document {
	d := &Document{
		id:    uuid.New(),
		items: collection.NewList[*Item](),
		tags:  mapset.NewThreadUnsafeSet[string](),
	}
	d.Setup(d, h)
	if h != nil {
		h.Listen(d.items)
	}
	return d
}

// Close stops the history from recording changes of the item list.
func (d *Document) Close() {
	if h := d.History(); h != nil && d.items != nil {
		h.Unlisten(d.items)
	}
}

// ID returns the document identifier.
func (d *Document) ID() uuid.UUID { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// SetTitle sets the title. Titles are compared in NFC form, so assigning a
// title that only differs in Unicode normalization changes nothing.
func (d *Document) SetTitle(title string) bool {
	return tracking.Property(&d.Model, PropTitle, func(v string) { d.title = v }, d.title, normalize(title))
}

// Count returns the document counter.
func (d *Document) Count() int { return d.count }

// SetCount sets the counter.
func (d *Document) SetCount(n int) bool {
	return tracking.Property(&d.Model, PropCount, func(v int) { d.count = v }, d.count, n)
}

// SetCountWithoutHistory sets the counter without recording it.
func (d *Document) SetCountWithoutHistory(n int) bool {
	return tracking.PropertyWithoutHistory(&d.Model, PropCount, &d.count, n)
}

// Flags returns the flag word.
func (d *Document) Flags() Flag { return d.flags }

// HasFlag reports whether f is set.
func (d *Document) HasFlag(f Flag) bool {
	return tracking.HasFlag(d.flags, f)
}

// SetFlag sets or clears f.
func (d *Document) SetFlag(f Flag, on bool) bool {
	return tracking.FlagProperty(&d.Model, PropFlags, func(v Flag) { d.flags = v }, d.flags, f, on)
}

// SetFlagWithoutHistory sets or clears f without recording it.
func (d *Document) SetFlagWithoutHistory(f Flag, on bool) bool {
	return tracking.FlagPropertyWithoutHistory(&d.Model, PropFlags, &d.flags, f, on)
}

// Items returns the current item list, which may be nil.
func (d *Document) Items() *ItemList { return d.items }

// SetItems replaces the item list. The history follows the assignment: it
// records changes of the new list and no longer of the old one, and undo
// and redo move it back and forth.
func (d *Document) SetItems(list *ItemList) bool {
	return tracking.Property(&d.Model, PropItems, func(v *ItemList) { d.items = v }, d.items, list)
}

// Add inserts a new item named name at index, or appends it when index is
// negative.
func (d *Document) Add(name string, index int) (*Item, error) {
	if d.items == nil {
		return nil, ErrNoItems
	}
	if index < 0 {
		index = d.items.Len()
	}
	item := NewItem(name)
	if err := d.items.Insert(index, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove removes and returns the item at index.
func (d *Document) Remove(index int) (*Item, error) {
	if d.items == nil {
		return nil, ErrNoItems
	}
	if index < 0 || index >= d.items.Len() {
		return nil, d.items.RemoveAt(index)
	}
	item := d.items.At(index)
	if err := d.items.RemoveAt(index); err != nil {
		return nil, err
	}
	return item, nil
}

// Move moves the item at from to to.
func (d *Document) Move(from, to int) error {
	if d.items == nil {
		return ErrNoItems
	}
	return d.items.Move(from, to)
}

// Replace puts a new item named name at index and returns it.
func (d *Document) Replace(index int, name string) (*Item, error) {
	if d.items == nil {
		return nil, ErrNoItems
	}
	item := NewItem(name)
	if err := d.items.Set(index, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Clear removes every item as one undoable entry.
func (d *Document) Clear() error {
	if d.items == nil {
		return ErrNoItems
	}
	return tracking.ClearEx(d.items, d.History())
}

// Names returns the item names in list order.
func (d *Document) Names() []string {
	if d.items == nil {
		return nil
	}
	names := make([]string, 0, d.items.Len())
	for _, item := range d.items.Items() {
		names = append(names, item.Name())
	}
	return names
}

// Tags returns the tags in sorted order.
func (d *Document) Tags() []string {
	tags := d.tags.ToSlice()
	slices.Sort(tags)
	return tags
}

// HasTag reports whether the document carries tag.
func (d *Document) HasTag(tag string) bool {
	return d.tags.Contains(normalize(tag))
}

// AddTag adds tag. It reports false if the tag was already present.
func (d *Document) AddTag(tag string) bool {
	tag = normalize(tag)
	if d.tags.Contains(tag) {
		return false
	}
	d.recordTag(tag, true)
	return true
}

// RemoveTag removes tag. It reports false if the tag was absent.
func (d *Document) RemoveTag(tag string) bool {
	tag = normalize(tag)
	if !d.tags.Contains(tag) {
		return false
	}
	d.recordTag(tag, false)
	return true
}

func (d *Document) recordTag(tag string, add bool) {
	put := func() {
		d.tags.Add(tag)
		d.RaisePropertyChanged(PropTags)
	}
	drop := func() {
		d.tags.Remove(tag)
		d.RaisePropertyChanged(PropTags)
	}

	apply, revert := put, drop
	if !add {
		apply, revert = drop, put
	}
	if h := d.History(); h != nil {
		h.Push(revert, apply)
	}
	apply()
}

func normalize(s string) string {
	return norm.NFC.String(s)
}
