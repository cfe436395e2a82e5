package layout

import (
	"fmt"
	"strings"

	"ctypes/internal/types"
)

// ErrorKind enumerates the ways layout computation can fail.
type ErrorKind uint8

const (
	// ErrRecursiveUnsized marks a record that contains itself (directly or
	// through a chain of by-value members) with no indirection to break the
	// cycle, and therefore has no finite size.
	ErrRecursiveUnsized ErrorKind = iota + 1
	ErrBitIntOutOfRange
)

// Error is returned alongside a zero Layout when layout computation fails
// outright rather than merely coming back "unknown" (Layout.Ok == false).
type Error struct {
	Kind  ErrorKind
	Type  types.TypeID
	Cycle []types.TypeID // for ErrRecursiveUnsized
	Bits  uint8          // for ErrBitIntOutOfRange
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ErrRecursiveUnsized:
		if len(e.Cycle) == 0 {
			return fmt.Sprintf("recursive type has no finite size (type#%d)", e.Type)
		}
		parts := make([]string, 0, len(e.Cycle))
		for _, id := range e.Cycle {
			parts = append(parts, fmt.Sprintf("type#%d", id))
		}
		return fmt.Sprintf("recursive type has no finite size (cycle: %s)", strings.Join(parts, " -> "))
	case ErrBitIntOutOfRange:
		return fmt.Sprintf("_BitInt(%d) is out of the engine's representable range (type#%d)", e.Bits, e.Type)
	default:
		return fmt.Sprintf("layout error kind=%d type#%d", e.Kind, e.Type)
	}
}
