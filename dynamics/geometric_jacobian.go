package dynamics

import (
	"go.viam.com/rigidbodydynamics/mechanism"
	"go.viam.com/rigidbodydynamics/rbderrors"
	"go.viam.com/rigidbodydynamics/spatial"
)

// NumVelocities returns the total velocity-vector length spanned by
// path, the required column count for GeometricJacobianInto's out.
func NumVelocities(path []PathEdge) int {
	n := 0
	for _, e := range path {
		n += e.Joint.NV()
	}
	return n
}

// GeometricJacobianInto fills out (already sized to NumVelocities(path)
// columns) so that out.Mul(pathVelocitySubvector) yields the twist of
// target w.r.t. source expressed in out.Frame. For each
// edge, the joint's motion-subspace-in-world is negated if the edge is
// traversed "up", then re-expressed into out.Frame via transformFn
// before being written into that joint's local column range.
func GeometricJacobianInto(
	out *spatial.GeometricJacobian,
	state *mechanism.MechanismState,
	path []PathEdge,
	transformFn func(spatial.Twist) spatial.Twist,
) error {
	want := NumVelocities(path)
	if out.NumVelocities() != want {
		return rbderrors.DimensionMismatch("dynamics.GeometricJacobianInto", want, out.NumVelocities())
	}
	col := 0
	for _, e := range path {
		subspace := state.MotionSubspaceInWorld(e.Body)
		for _, twist := range subspace {
			out.SetColumn(col, transformFn(twist), e.Up)
			col++
		}
	}
	return nil
}

// GeometricJacobian allocates and fills a Jacobian for path, expressed
// in frame (a convenience wrapper over GeometricJacobianInto).
func GeometricJacobian(
	state *mechanism.MechanismState,
	source, target *mechanism.RigidBody,
	frame spatial.Frame,
	transformFn func(spatial.Twist) spatial.Twist,
) (*spatial.GeometricJacobian, error) {
	path := Path(state.Mechanism(), source, target)
	out := spatial.NewGeometricJacobian(target.Default, source.Default, frame, NumVelocities(path))
	if err := GeometricJacobianInto(out, state, path, transformFn); err != nil {
		return nil, err
	}
	return out, nil
}
