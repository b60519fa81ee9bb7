// Package joint implements a tagged-variant joint-kind dispatch: each of
// the four closed joint kinds (floating, revolute, prismatic, fixed)
// implements the same capability set through the Joint interface, and
// callers switch on Kind() only where behavior must genuinely branch.
// A hand-rolled dispatch switch over a closed, stable kind set reads
// more plainly than a virtual-table-per-instance scheme would here.
package joint

import (
	"math/rand"

	"go.viam.com/rigidbodydynamics/spatial"
)

// Kind identifies which of the four closed joint variants a Joint is.
type Kind int

const (
	// KindFixed is the 0-DoF identity joint.
	KindFixed Kind = iota
	// KindRevolute is the 1-DoF rotation-about-axis joint.
	KindRevolute
	// KindPrismatic is the 1-DoF translation-along-axis joint.
	KindPrismatic
	// KindFloating is the 6-DoF unit-quaternion + translation joint.
	KindFloating
)

func (k Kind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindRevolute:
		return "revolute"
	case KindPrismatic:
		return "prismatic"
	case KindFloating:
		return "floating"
	default:
		return "unknown"
	}
}

// Joint is the capability set every joint kind implements. All motion
// subspaces in this closed set are constant in q (body-fixed axes, or
// the floating joint's identity partition), so MotionSubspace takes no
// configuration argument; this constancy is also what makes every joint
// in this package eligible as a loop joint, whose own constraint
// subspace needs to be derived once rather than per configuration.
type Joint interface {
	Kind() Kind
	NQ() int
	NV() int

	// Transform returns the joint transform at configuration q: the pose
	// of after relative to before, as a transform from frame_after to
	// frame_before.
	Transform(q []float64, before, after spatial.Frame) spatial.Transform3D

	// MotionSubspace returns the nv columns mapping joint velocity to
	// the twist of after w.r.t. before, expressed in after.
	MotionSubspace(before, after spatial.Frame) []spatial.Twist

	// BiasAcceleration returns the part of the joint's spatial
	// acceleration independent of v̇, expressed in after. It is zero
	// for every kind in this closed set, but is exposed as a method
	// (rather than hardcoded at the mechanism level) so a future joint
	// kind with a non-constant subspace has somewhere to plug in a
	// nonzero value.
	BiasAcceleration(after spatial.Frame) spatial.SpatialAcceleration

	// QDot maps (q, v) to q̇.
	QDot(q, v []float64) []float64
	// VFromQDot is QDot's inverse: maps (q, q̇) to v.
	VFromQDot(q, qdot []float64) []float64

	// ZeroConfiguration returns the nq-length identity configuration.
	ZeroConfiguration() []float64
	// RandomConfiguration returns a random valid configuration.
	RandomConfiguration(rng *rand.Rand) []float64

	// TorqueFromWrench projects a joint wrench (expressed in after)
	// onto the motion subspace, yielding the nv-length joint torque
	// S^T·wrench.
	TorqueFromWrench(w spatial.Wrench, after spatial.Frame) []float64

	// LocalCoordinates returns the SE(3)-exponential-style local
	// coordinates phi = log(T(q0)⁻¹T(q)) and their rate phidot, flattened
	// to nv-length slices. For 1-DoF kinds this is simply q-q0 and v;
	// for Fixed both are empty.
	LocalCoordinates(q0, q, v []float64) (phi, phidot []float64)
	// GlobalCoordinates is LocalCoordinates' inverse: recovers q from a
	// base configuration q0 and local coordinates phi.
	GlobalCoordinates(q0, phi []float64) []float64

	// FlipDirection returns an equivalent joint with its sense reversed
	// (negating the axis for a 1-DoF kind, a no-op for kinds with no
	// directional axis), used when re-rooting a subtree so the
	// parent/child roles of before/after swap without changing the
	// physical axis.
	FlipDirection() Joint
}
