package dynamics

import (
	"go.viam.com/rigidbodydynamics/mechanism"
	"go.viam.com/rigidbodydynamics/rbderrors"
	"go.viam.com/rigidbodydynamics/spatial"
)

// MomentumMatrixInto fills out (already sized to mechanism.NV() columns)
// with A(q) such that A(q)·v equals the mechanism's total momentum
// wrench, summed in world (root) frame. Each joint's columns are the
// same F_i = I_crb(i)·S_i force-space blocks the composite-rigid-body
// mass matrix contracts against its own motion subspace; here they are
// written directly as momentum-matrix columns instead of being
// projected into H.
func MomentumMatrixInto(out *spatial.MomentumMatrix, state *mechanism.MechanismState) error {
	mech := state.Mechanism()
	n := mech.NV()
	if _, cols := out.Ang.Dims(); cols != n {
		return rbderrors.DimensionMismatch("dynamics.MomentumMatrixInto", n, cols)
	}
	for i := 1; i < mech.NumBodies(); i++ {
		body := mech.Body(i)
		subspace := state.MotionSubspaceInWorld(body)
		crb := state.CRBInertia(body)
		off, _ := mech.VRange(body)
		for c, col := range subspace {
			out.SetColumn(off+c, crb.Momentum(col))
		}
	}
	return nil
}

// MomentumMatrix allocates and fills the mechanism's momentum matrix (a
// convenience wrapper over MomentumMatrixInto).
func MomentumMatrix(state *mechanism.MechanismState) (*spatial.MomentumMatrix, error) {
	mech := state.Mechanism()
	out := spatial.NewMomentumMatrix(mech.Root().Default, mech.NV())
	if err := MomentumMatrixInto(out, state); err != nil {
		return nil, err
	}
	return out, nil
}

// TotalMomentum returns the mechanism's total momentum wrench by summing
// each body's own momentum (CRB-free: each body's own inertia, not its
// composite subtree inertia) transformed into world, independent of
// MomentumMatrix - a second, independently-derived way to arrive at the
// same total momentum A(q)·v computes, useful as a cross-check.
func TotalMomentum(state *mechanism.MechanismState) spatial.Wrench {
	mech := state.Mechanism()
	root := mech.Root()
	total := spatial.ZeroWrench(root.Default)
	for i := 1; i < mech.NumBodies(); i++ {
		body := mech.Body(i)
		if body.Inertia == nil {
			continue
		}
		T := state.TransformToRoot(body)
		worldInertia := body.Inertia.Transform(spatial.Transform3D{From: body.Default, To: root.Default, Rot: T.Rot, Trans: T.Trans})
		twist := state.TwistWrtWorld(body)
		total = total.Add(worldInertia.Momentum(twist))
	}
	return total
}
