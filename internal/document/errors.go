package document

import "errors"

// Errors returned by document operations.
var (
	// ErrUnknownFlag indicates a flag name that is not defined.
	ErrUnknownFlag = errors.New("unknown flag")

	// ErrNoItems indicates the document has no item list.
	ErrNoItems = errors.New("document has no item list")
)
