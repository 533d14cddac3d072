package collection

import "errors"

// ErrIndexOutOfRange indicates an index outside the list bounds.
var ErrIndexOutOfRange = errors.New("index out of range")
