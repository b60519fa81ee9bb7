package dynamics

import (
	"gonum.org/v1/gonum/mat"

	"go.viam.com/rigidbodydynamics/mechanism"
	"go.viam.com/rigidbodydynamics/rbderrors"
	"go.viam.com/rigidbodydynamics/spatial"
)

// NumConstraints returns the total loop-constraint row count n_λ: the
// sum, over every loop joint, of the dimension of its constraint wrench
// subspace (6 minus its motion subspace's dimension).
func NumConstraints(mech *mechanism.Mechanism) int {
	n := 0
	for _, l := range mech.LoopJoints() {
		n += 6 - l.Joint.Kind.NV()
	}
	return n
}

func dot6(a, b [6]float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func wrenchToArray6(w spatial.Wrench) [6]float64 {
	return [6]float64{w.Ang.X, w.Ang.Y, w.Ang.Z, w.Lin.X, w.Lin.Y, w.Lin.Z}
}

// ConstraintJacobianAndBiasInto fills K (n_λ x mechanism.NV(), already
// zeroed or freshly allocated) and k (length n_λ): for each loop joint,
// its constraint wrench subspace T contracted against every tree joint's
// motion subspace along the cached predecessor-to-successor path gives
// K's nonzero blocks, and T contracted against the relative-velocity
// cross term plus the two endpoints' bias accelerations gives k
// (Featherstone eq. 8.47).
//
// worldScratch is caller-supplied working storage, length NumConstraints
// (mech), used to hold each loop joint's subspace transformed into world
// before it's contracted against the path's motion subspaces, so the
// pass, which DynamicsInto calls every evaluation, does not allocate that
// buffer itself (the state's loop-path cache it reads is still rebuilt,
// with allocation, after each SetConfiguration).
//
// This assumes, as mechanism.Mechanism's Reattach/AttachSubmechanism
// already do for tree joints, that a loop joint's frame_after/
// frame_before coincide with its successor/predecessor body's own
// Default frame (no registered offset) - see DESIGN.md.
func ConstraintJacobianAndBiasInto(K *mat.Dense, k []float64, worldScratch []spatial.Wrench, state *mechanism.MechanismState) error {
	mech := state.Mechanism()
	nLambda := NumConstraints(mech)
	if len(worldScratch) != nLambda {
		return rbderrors.DimensionMismatch("dynamics.ConstraintJacobianAndBiasInto(worldScratch)", nLambda, len(worldScratch))
	}

	rowOff := 0
	for li, lj := range mech.LoopJoints() {
		T := state.LoopConstraintSubspace(li)
		nT := len(T)
		if nT == 0 {
			continue
		}

		succToRoot := state.TransformToRoot(lj.Successor)
		afterToRoot := spatial.Transform3D{From: lj.Joint.FrameAfter, To: succToRoot.To, Rot: succToRoot.Rot, Trans: succToRoot.Trans}
		worldT := worldScratch[rowOff : rowOff+nT]
		for a, w := range T {
			worldT[a] = w.Transform(afterToRoot)
		}

		for _, e := range state.LoopPath(li) {
			body := mech.Body(e.BodyIndex)
			vOff, vN := mech.VRange(body)
			if vN == 0 {
				continue
			}
			S := state.MotionSubspaceInWorld(body)
			sign := 1.0
			if e.Up {
				sign = -1.0
			}
			for a := 0; a < nT; a++ {
				for c := 0; c < vN; c++ {
					K.Set(rowOff+a, vOff+c, sign*worldT[a].Dot(S[c]))
				}
			}
		}

		twistSucc := state.TwistWrtWorld(lj.Successor)
		twistPred := state.TwistWrtWorld(lj.Predecessor)
		biasSucc := state.BiasAcceleration(lj.Successor)
		biasPred := state.BiasAcceleration(lj.Predecessor)
		crossed := twistSucc.Cross(spatial.Twist{Frame: twistSucc.Frame, Ang: twistPred.Ang, Lin: twistPred.Lin})

		total := [6]float64{
			crossed.Ang.X + biasSucc.Ang.X - biasPred.Ang.X,
			crossed.Ang.Y + biasSucc.Ang.Y - biasPred.Ang.Y,
			crossed.Ang.Z + biasSucc.Ang.Z - biasPred.Ang.Z,
			crossed.Lin.X + biasSucc.Lin.X - biasPred.Lin.X,
			crossed.Lin.Y + biasSucc.Lin.Y - biasPred.Lin.Y,
			crossed.Lin.Z + biasSucc.Lin.Z - biasPred.Lin.Z,
		}
		for a := 0; a < nT; a++ {
			k[rowOff+a] = dot6(wrenchToArray6(worldT[a]), total)
		}
		rowOff += nT
	}
	return nil
}
