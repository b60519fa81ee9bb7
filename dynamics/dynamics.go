// Package dynamics implements the composite-rigid-body mass matrix,
// Newton-Euler inverse dynamics and dynamics bias, loop-constraint
// Jacobian/bias assembly, and the constrained-forward-dynamics KKT
// solve, plus the momentum matrix and center-of-mass/Jacobian kinematic
// quantities built on top of them. Every hot-path algorithm has an
// "Into" form operating on caller-supplied output (and scratch, where the
// algorithm needs working storage) alongside an allocating convenience
// wrapper for callers outside the simulation loop. The Into forms are not
// allocation-free: DynamicsSolveInto allocates its factorizations and
// temporary vectors on every call, and the MechanismState caches they
// read allocate when they are refreshed.
package dynamics

import (
	"go.viam.com/rigidbodydynamics/contact"
	"go.viam.com/rigidbodydynamics/mechanism"
	"go.viam.com/rigidbodydynamics/rbderrors"
	"go.viam.com/rigidbodydynamics/spatial"
)

// DynamicsInto runs the full forward-dynamics pipeline into result
// (sized for state.Mechanism() via NewResult): contact
// points are evaluated against the environment and summed with
// externalWrenches into result.TotalWrenches; the dynamics bias and mass
// matrix are computed from state; if the mechanism has loop joints, the
// constraint Jacobian and bias are assembled too; finally
// DynamicsSolveInto produces result.Vdot and result.Lambda.
//
// contactPoints/environment may both be nil for an unconstrained,
// contactless mechanism. externalWrenches, if non-nil, must be sized to
// mechanism.NumBodies() (index 0 ignored); a nil externalWrenches is
// treated as all-zero.
func DynamicsInto(
	result *Result,
	state *mechanism.MechanismState,
	contactPoints []contact.Point,
	environment []contact.HalfSpace,
	externalWrenches []spatial.Wrench,
	tau []float64,
) error {
	mech := state.Mechanism()
	n := mech.NumBodies()

	for i := range result.ContactWrenches {
		result.ContactWrenches[i] = spatial.ZeroWrench(mech.Root().Default)
	}
	if err := contact.Dynamics(contactPoints, environment, state, result.ContactWrenches); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		total := result.ContactWrenches[i]
		if externalWrenches != nil {
			total = total.Add(externalWrenches[i])
		}
		result.TotalWrenches[i] = total
	}

	if err := DynamicsBiasInto(result.C, result.BodyAccelerations, result.JointWrenches, state, result.TotalWrenches); err != nil {
		return err
	}
	if err := MassMatrixInto(result.M, state, result.ForceScratch, result.TauScratch); err != nil {
		return err
	}

	if result.NLambda > 0 {
		if result.K == nil {
			return rbderrors.DimensionMismatch("dynamics.DynamicsInto", result.NLambda, 0)
		}
		for i := 0; i < result.NLambda; i++ {
			for j := 0; j < result.NV; j++ {
				result.K.Set(i, j, 0)
			}
		}
		if err := ConstraintJacobianAndBiasInto(result.K, result.KBias, result.ConstraintWorldScratch, state); err != nil {
			return err
		}
	}

	return DynamicsSolveInto(result, tau)
}
