package spatial

import "go.viam.com/rigidbodydynamics/rbderrors"

// mustMatch panics with a FrameMismatch error if a != b and frame checks
// are compiled in. Every spatial operation that combines two quantities
// calls this first; the spec treats a mismatch as a fatal programming
// error (§7), not a recoverable condition, so a panic rather than an
// error return is appropriate here.
func mustMatch(op string, a, b Frame) {
	if checkFrames && a != b {
		panic(rbderrors.FrameMismatch(op))
	}
}
