// Package rbderrors defines the error taxonomy used across the dynamics
// core. Every error returned by this module wraps one of the
// sentinels below with errors.Is-compatible context, so callers can
// distinguish a programming error (frame mismatch, dimension mismatch,
// unsupported topology/joint) from a numerical failure (singular, zero
// mass) without string matching.
package rbderrors

import "github.com/pkg/errors"

// Sentinel errors. None of these are swallowed internally; every
// algorithm that can produce one returns it (wrapped) to the caller.
var (
	// ErrFrameMismatch signals two spatial quantities were combined
	// without matching frames. Always a programming error.
	ErrFrameMismatch = errors.New("frame mismatch")

	// ErrDimensionMismatch signals an output buffer or q/v vector had
	// the wrong length for the mechanism it was used with.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrUnsupportedTopology signals inverse dynamics was invoked on a
	// mechanism that has loop (non-tree) joints; tree form only.
	ErrUnsupportedTopology = errors.New("unsupported topology")

	// ErrUnsupportedJoint signals loop-constraint assembly encountered
	// a joint whose motion subspace is not constant (Ṡ ≠ 0).
	ErrUnsupportedJoint = errors.New("unsupported joint")

	// ErrSingular signals a numerical factorization failed (mass matrix
	// not SPD, or constraint Schur complement rank-deficient).
	ErrSingular = errors.New("singular")

	// ErrZeroMass signals center_of_mass was requested for a subset
	// whose total mass is zero.
	ErrZeroMass = errors.New("zero mass")
)

// FrameMismatch wraps ErrFrameMismatch with the offending operation name.
func FrameMismatch(op string) error {
	return errors.Wrapf(ErrFrameMismatch, "%s", op)
}

// DimensionMismatch wraps ErrDimensionMismatch with expected/actual sizes.
func DimensionMismatch(op string, want, got int) error {
	return errors.Wrapf(ErrDimensionMismatch, "%s: want length %d, got %d", op, want, got)
}

// UnsupportedTopology wraps ErrUnsupportedTopology with the operation name.
func UnsupportedTopology(op string) error {
	return errors.Wrapf(ErrUnsupportedTopology, "%s: mechanism has loop joints", op)
}

// UnsupportedJoint wraps ErrUnsupportedJoint with the offending joint name.
func UnsupportedJoint(jointName string) error {
	return errors.Wrapf(ErrUnsupportedJoint, "joint %q does not have a constant motion subspace", jointName)
}

// Singular wraps ErrSingular with the factorization that failed.
func Singular(what string) error {
	return errors.Wrapf(ErrSingular, "%s factorization failed", what)
}

// ZeroMass wraps ErrZeroMass with the subset that triggered it.
func ZeroMass(subset string) error {
	return errors.Wrapf(ErrZeroMass, "center of mass requested for zero-mass subset %q", subset)
}
