package document

import (
	"fmt"
	"strings"
)

// Flag is a bit in a document's flag word.
type Flag uint8

const (
	Locked Flag = 1 << iota
	Hidden
	Starred
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{Locked, "locked"},
	{Hidden, "hidden"},
	{Starred, "starred"},
}

// String returns the names of the set bits joined by "|".
func (f Flag) String() string {
	names := f.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Names returns the names of the set bits in declaration order.
func (f Flag) Names() []string {
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return names
}

// ParseFlag returns the flag with the given name, ignoring case.
func ParseFlag(name string) (Flag, error) {
	for _, fn := range flagNames {
		if strings.EqualFold(fn.name, name) {
			return fn.flag, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
}
