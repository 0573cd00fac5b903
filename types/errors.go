// errors.go defines the error taxonomy shared by the converter and the copy engine.

package types

import "errors"

var (
	// ErrBadValue indicates a structural mismatch: wrong plane count,
	// incompatible bit depth, an unsupported packing convention or a
	// dimension mismatch.
	ErrBadValue = errors.New("bad value")

	// ErrNoInit indicates an entirely unrecognized layout shape
	// (e.g. YUVA, or a multi-plane layout of unknown type).
	ErrNoInit = errors.New("unrecognized layout")

	// ErrNoMemory indicates a caller-supplied buffer that is too small.
	ErrNoMemory = errors.New("not enough memory")
)
