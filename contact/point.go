package contact

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rigidbodydynamics/mechanism"
	"go.viam.com/rigidbodydynamics/spatial"
)

// HalfSpace is an environment contact primitive: the set of points p
// with Normal·p <= Offset is solid.
type HalfSpace struct {
	Normal r3.Vector
	Offset float64
}

// Separation returns the signed penetration of p into the half-space:
// positive when p is inside.
func (h HalfSpace) Separation(p r3.Vector) float64 {
	return h.Offset - h.Normal.Dot(p)
}

// Point is a body-fixed contact point together with the state machine
// that turns its penetration/velocity against a primitive into a force.
type Point struct {
	Body          *mechanism.RigidBody
	LocalPosition r3.Vector
	Model         Model
}

// Dynamics evaluates every point against every primitive, accumulating
// the resulting wrench onto the owning body, and writes the accumulated
// world-frame wrench for each point's body into bodyWrenches (indexed
// as state.Mechanism()'s topological body indices; bodyWrenches must
// already be sized to NumBodies() and filled by the caller with zero
// wrenches expressed in the root's Default frame). A point
// touching no primitive has its model Reset instead. Failures from
// independent points are aggregated via multierr rather than aborting
// the whole pass early, since each point is otherwise independent.
func Dynamics(points []Point, primitives []HalfSpace, state *mechanism.MechanismState, bodyWrenches []spatial.Wrench) error {
	mech := state.Mechanism()
	root := mech.Root()

	var errs error
	for _, pt := range points {
		bodyIdx, ok := mech.BodyIndex(pt.Body)
		if !ok {
			errs = multierr.Append(errs, errors.Errorf("contact.Dynamics: body %q is not in this mechanism", pt.Body.Name))
			continue
		}

		T := state.TransformToRoot(pt.Body)
		worldPos := T.TransformPoint(pt.LocalPosition)
		twist := state.TwistWrtWorld(pt.Body)
		worldVel := twist.Lin.Add(twist.Ang.Cross(worldPos))

		touched := false
		for _, prim := range primitives {
			sep := prim.Separation(worldPos)
			if sep <= 0 {
				continue
			}
			touched = true
			force, err := pt.Model.Step(sep, worldVel, prim.Normal)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			w := spatial.NewForceWrench(root.Default, worldPos, force)
			bodyWrenches[bodyIdx] = bodyWrenches[bodyIdx].Add(w)
		}
		if !touched {
			pt.Model.Reset()
		}
	}
	return errs
}
