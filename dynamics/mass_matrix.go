package dynamics

import (
	"gonum.org/v1/gonum/mat"

	"go.viam.com/rigidbodydynamics/mechanism"
	"go.viam.com/rigidbodydynamics/rbderrors"
	"go.viam.com/rigidbodydynamics/spatial"
)

// maxJointNV is the largest per-joint velocity-vector length in this
// package's closed set of joint kinds (Floating, at 6); it sizes the
// scratch buffers MassMatrixInto needs per body.
const maxJointNV = 6

// project applies Wrench.Dot (the power pairing τ·ω + f·v) between w and
// every column of subspace, writing the generalized force that
// subspace's joint feels from w into out[:len(subspace)]. Equivalent to
// each joint's TorqueFromWrench evaluated with w in the joint's local
// "after" frame (the pairing is rotation-invariant), but usable directly
// on the world-frame subspaces and wrenches this package works with.
func project(out []float64, subspace []spatial.Twist, w spatial.Wrench) {
	for i, s := range subspace {
		out[i] = w.Dot(s)
	}
}

// MassMatrixInto fills the lower (and, via SetSym, upper) triangle of
// out, an n x n symmetric matrix with n = mechanism.NV(), using the
// composite-rigid-body algorithm. For each body i: F_i = I_crb(i)·S_i,
// treating each of body i's world-frame motion-subspace columns as a
// velocity and contracting it through the composite inertia's Momentum
// map to get a wrench. H[i,i] = S_i^T F_i. Then, walking up the ancestor
// chain from body i's parent to the root, H[j,i] = S_j^T F_i for every
// ancestor j still holding a degree of freedom — the off-diagonal
// coupling between i's motion and each ancestor joint's own subspace.
//
// forcesScratch and tausScratch are caller-supplied working storage,
// each of length at least maxJointNV; since DynamicsInto calls this once
// per step (and an integrator may call it many times per rollout), the
// per-body forces/taus buffers live here rather than being allocated
// fresh on every invocation.
func MassMatrixInto(out *mat.SymDense, state *mechanism.MechanismState, forcesScratch []spatial.Wrench, tausScratch []float64) error {
	mech := state.Mechanism()
	n := mech.NV()
	if out.SymmetricDim() != n {
		return rbderrors.DimensionMismatch("dynamics.MassMatrixInto", n, out.SymmetricDim())
	}
	if len(forcesScratch) < maxJointNV {
		return rbderrors.DimensionMismatch("dynamics.MassMatrixInto(forcesScratch)", maxJointNV, len(forcesScratch))
	}
	if len(tausScratch) < maxJointNV {
		return rbderrors.DimensionMismatch("dynamics.MassMatrixInto(tausScratch)", maxJointNV, len(tausScratch))
	}

	for i := 1; i < mech.NumBodies(); i++ {
		body := mech.Body(i)
		subspace := state.MotionSubspaceInWorld(body)
		crb := state.CRBInertia(body)
		iOff, iN := mech.VRange(body)

		forces := forcesScratch[:iN]
		for c, col := range subspace {
			forces[c] = crb.Momentum(col)
		}

		for b := 0; b < iN; b++ {
			taus := tausScratch[:iN]
			project(taus, subspace, forces[b])
			for a := 0; a < iN; a++ {
				out.SetSym(iOff+a, iOff+b, taus[a])
			}
		}

		for anc, ok := mech.Parent(body); ok; anc, ok = mech.Parent(anc) {
			ancSubspace := state.MotionSubspaceInWorld(anc)
			jOff, jN := mech.VRange(anc)
			for b := 0; b < iN; b++ {
				taus := tausScratch[:jN]
				project(taus, ancSubspace, forces[b])
				for a := 0; a < jN; a++ {
					out.SetSym(jOff+a, iOff+b, taus[a])
				}
			}
		}
	}
	return nil
}

// MassMatrix allocates and fills the mechanism's joint-space mass
// matrix (a convenience wrapper over MassMatrixInto).
func MassMatrix(state *mechanism.MechanismState) (*mat.SymDense, error) {
	out := mat.NewSymDense(state.Mechanism().NV(), nil)
	forces := make([]spatial.Wrench, maxJointNV)
	taus := make([]float64, maxJointNV)
	if err := MassMatrixInto(out, state, forces, taus); err != nil {
		return nil, err
	}
	return out, nil
}
