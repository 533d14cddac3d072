package history

// Record pairs the two sides of one reversible operation.
// A Record is immutable once created; a nil side does nothing.
type Record struct {
	undo func()
	redo func()
}

// NewRecord creates a record from its undo and redo sides.
func NewRecord(undo, redo func()) Record {
	return Record{undo: undo, redo: redo}
}

// Undo reverses the operation.
func (r Record) Undo() {
	if r.undo != nil {
		r.undo()
	}
}

// Redo reapplies the operation.
func (r Record) Redo() {
	if r.redo != nil {
		r.redo()
	}
}
