package dynamics

import (
	"github.com/golang/geo/r3"

	"go.viam.com/rigidbodydynamics/mechanism"
	"go.viam.com/rigidbodydynamics/rbderrors"
	"go.viam.com/rigidbodydynamics/spatial"
)

// RelativeAcceleration returns the spatial acceleration of body relative
// to base, expressed in world, given the full mechanism v̇: walk the
// tree path between base and body, accumulate each traversed
// joint's acceleration contribution (negated when the path goes "up"),
// then combine with the cached bias accelerations of body and base.
// Because BiasAcceleration is itself an additive recursion from the
// root, subtracting biasBase from biasBody cancels their shared
// root-to-LCA prefix exactly.
func RelativeAcceleration(state *mechanism.MechanismState, body, base *mechanism.RigidBody, vdot []float64) (spatial.SpatialAcceleration, error) {
	mech := state.Mechanism()
	if len(vdot) != mech.NV() {
		return spatial.SpatialAcceleration{}, rbderrors.DimensionMismatch("dynamics.RelativeAcceleration", mech.NV(), len(vdot))
	}

	path := Path(mech, base, body)
	var ang, lin r3.Vector
	for _, e := range path {
		subspace := state.MotionSubspaceInWorld(e.Body)
		off, n := mech.VRange(e.Body)
		vd := vdot[off : off+n]
		sign := 1.0
		if e.Up {
			sign = -1.0
		}
		for c, twist := range subspace {
			ang = ang.Add(twist.Ang.Mul(sign * vd[c]))
			lin = lin.Add(twist.Lin.Mul(sign * vd[c]))
		}
	}

	biasBody := state.BiasAcceleration(body)
	biasBase := state.BiasAcceleration(base)
	return spatial.SpatialAcceleration{
		Body: body.Default, Base: base.Default, Frame: mech.Root().Default,
		Ang: ang.Add(biasBody.Ang).Sub(biasBase.Ang),
		Lin: lin.Add(biasBody.Lin).Sub(biasBase.Lin),
	}, nil
}
