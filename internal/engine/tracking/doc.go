// Package tracking provides setters that record property assignments in a
// history.
//
// SetProperty and SetFlag are the low-level helpers: they compare old and new
// values, push the undo/redo pair and apply the assignment. Assigning a value
// equal to the current one records nothing.
//
// Model is an embeddable base for host types. Its Property and FlagProperty
// helpers also report the change to the model's subscribers on the first
// assignment and on every undo and redo:
//
//	type Doc struct {
//	    tracking.Model
//	    title string
//	}
//
//	func (d *Doc) SetTitle(v string) bool {
//	    return tracking.Property(&d.Model, "Title", func(v string) { d.title = v }, d.title, v)
//	}
package tracking
