package history

// transactionBuffer accumulates the records pushed while a batch is open.
// It is collapsed into a single Record when the outermost batch closes.
type transactionBuffer struct {
	undoStack []Record
	redoStack []Record
}

func (b *transactionBuffer) push(rec Record) {
	b.undoStack = append(b.undoStack, rec)
	b.redoStack = nil
}

func (b *transactionBuffer) empty() bool {
	return len(b.undoStack) == 0 && len(b.redoStack) == 0
}

func (b *transactionBuffer) len() int {
	return len(b.undoStack) + len(b.redoStack)
}

// undoAll undoes every accumulated record, most recent first.
func (b *transactionBuffer) undoAll() {
	for len(b.undoStack) > 0 {
		rec := b.undoStack[len(b.undoStack)-1]
		b.undoStack = b.undoStack[:len(b.undoStack)-1]
		rec.Undo()
		b.redoStack = append(b.redoStack, rec)
	}
}

// redoAll redoes every accumulated record in the order it was first recorded.
func (b *transactionBuffer) redoAll() {
	for len(b.redoStack) > 0 {
		rec := b.redoStack[len(b.redoStack)-1]
		b.redoStack = b.redoStack[:len(b.redoStack)-1]
		rec.Redo()
		b.undoStack = append(b.undoStack, rec)
	}
}

// collapse returns one record replaying the whole transaction.
func (b *transactionBuffer) collapse() Record {
	return NewRecord(b.undoAll, b.redoAll)
}
