package collection

// Kind identifies the shape of a Change.
type Kind int

const (
	KindAdd Kind = iota
	KindRemove
	KindMove
	KindReplace
	KindReset
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	case KindMove:
		return "move"
	case KindReplace:
		return "replace"
	case KindReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change describes one mutation of an observable list.
// The set of implementations is closed; see Added, Removed, Moved, Replaced and Reset.
type Change interface {
	Kind() Kind
	sealed()
}

// Added reports Items inserted contiguously starting at Index.
type Added struct {
	Index int
	Items []any
}

// Removed reports Items removed contiguously starting at Index.
type Removed struct {
	Index int
	Items []any
}

// Moved reports Items relocated from OldIndex to NewIndex.
// Lists in this package only ever move a single item.
type Moved struct {
	OldIndex int
	NewIndex int
	Items    []any
}

// Replaced reports OldItems substituted by NewItems at Index.
type Replaced struct {
	Index    int
	OldItems []any
	NewItems []any
}

// Reset reports that the list was cleared.
type Reset struct{}

func (Added) Kind() Kind    { return KindAdd }
func (Removed) Kind() Kind  { return KindRemove }
func (Moved) Kind() Kind    { return KindMove }
func (Replaced) Kind() Kind { return KindReplace }
func (Reset) Kind() Kind    { return KindReset }

func (Added) sealed()    {}
func (Removed) sealed()  {}
func (Moved) sealed()    {}
func (Replaced) sealed() {}
func (Reset) sealed()    {}
