package collection

// ItemChange tells an Item how its membership changed.
type ItemChange int

const (
	ItemAdded ItemChange = iota
	ItemRemoved
	ItemMoved
)

// String returns the change name.
func (c ItemChange) String() string {
	switch c {
	case ItemAdded:
		return "added"
	case ItemRemoved:
		return "removed"
	case ItemMoved:
		return "moved"
	default:
		return "unknown"
	}
}

// Item is implemented by list elements that want to track their own membership,
// for example to maintain a parent back-reference or a counter.
type Item interface {
	CollectionChanged(change ItemChange)
}

// Notify forwards change to v if v implements Item.
func Notify(v any, change ItemChange) {
	if item, ok := v.(Item); ok {
		item.CollectionChanged(change)
	}
}
