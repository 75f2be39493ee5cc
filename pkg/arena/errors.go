package arena

import "fmt"

// Code is the closed set of status codes returned by the CRUD surface.
//
// It intentionally mirrors a small C-style error-code ABI rather than the
// richer [error]-returning style used elsewhere in this module: callers
// embedding this store on constrained devices need a value they can switch
// on without an allocation, and the set of outcomes is small and fixed.
type Code int32

const (
	// NoError indicates the operation completed successfully.
	NoError Code = 0
	// Error indicates a generic failure, e.g. the arena has no room left.
	Error Code = -1
	// KeyNotFound indicates the requested key does not exist.
	KeyNotFound Code = -2
	// KeyExists indicates Create was called for a key that already exists.
	KeyExists Code = -3
	// BadSize indicates a Read or Update was called with a size that does
	// not match the stored value's size.
	BadSize Code = -4
)

// IsError reports whether v is a negative (failing) status code.
func IsError(v Code) bool { return v < 0 }

func (c Code) String() string {
	switch c {
	case NoError:
		return "NoError"
	case Error:
		return "Error"
	case KeyNotFound:
		return "KeyNotFound"
	case KeyExists:
		return "KeyExists"
	case BadSize:
		return "BadSize"
	default:
		return fmt.Sprintf("Code(%d)", int32(c))
	}
}

// ErrBadBuffer is returned by [Init] when the supplied buffer is too small
// to hold a header, or hunkSize is zero.
var ErrBadBuffer = fmt.Errorf("kvarena: buffer too small or hunk size is zero")
