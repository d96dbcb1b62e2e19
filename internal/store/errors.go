package store

import "errors"

// Sentinel errors surfaced by container operations. The command dispatcher
// maps these to the exact wire-level error frames spec §7 names; the
// containers themselves never know about RESP.
var (
	errOverflow = errors.New("integer overflow")
	errNotFloat = errors.New("not a valid float")
)

// IsOverflow reports whether err is the integer-overflow sentinel.
func IsOverflow(err error) bool { return errors.Is(err, errOverflow) }

// IsNotFloat reports whether err is the not-a-valid-float sentinel.
func IsNotFloat(err error) bool { return errors.Is(err, errNotFloat) }
