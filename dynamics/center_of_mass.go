package dynamics

import (
	"github.com/golang/geo/r3"

	"go.viam.com/rigidbodydynamics/mechanism"
	"go.viam.com/rigidbodydynamics/rbderrors"
)

// CenterOfMass returns the mass-weighted center of mass of every
// non-root body in the mechanism, expressed in root (world) frame.
// Fails with ZeroMass if the subset's total mass is zero.
func CenterOfMass(state *mechanism.MechanismState) (r3.Vector, error) {
	mech := state.Mechanism()
	var totalMass float64
	var weighted r3.Vector
	for i := 1; i < mech.NumBodies(); i++ {
		body := mech.Body(i)
		if body.Inertia == nil || body.Inertia.M == 0 {
			continue
		}
		T := state.TransformToRoot(body)
		worldCOM := T.TransformPoint(body.Inertia.CenterOfMass())
		weighted = weighted.Add(worldCOM.Mul(body.Inertia.M))
		totalMass += body.Inertia.M
	}
	if totalMass == 0 {
		return r3.Vector{}, rbderrors.ZeroMass("CenterOfMass")
	}
	return weighted.Mul(1 / totalMass), nil
}
