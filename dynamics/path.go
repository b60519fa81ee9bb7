package dynamics

import "go.viam.com/rigidbodydynamics/mechanism"

// PathEdge names a tree joint (and the body it terminates at) plus the
// direction a body-to-body path traverses it.
type PathEdge struct {
	Joint *mechanism.Joint
	Body  *mechanism.RigidBody
	Up    bool
}

// Path returns the sequence of tree-joint edges from source to target,
// walking toward their lowest common ancestor by always advancing
// whichever side has the deeper topological index - the same technique
// mechanism.MechanismState's loop-path cache uses.
func Path(mech *mechanism.Mechanism, source, target *mechanism.RigidBody) []PathEdge {
	srcIdx, _ := mech.BodyIndex(source)
	tgtIdx, _ := mech.BodyIndex(target)

	var up, down []PathEdge
	a, b := srcIdx, tgtIdx
	for a != b {
		if a > b {
			body := mech.Body(a)
			j, _ := mech.ParentJoint(body)
			up = append(up, PathEdge{Joint: j, Body: body, Up: true})
			parent, _ := mech.Parent(body)
			a, _ = mech.BodyIndex(parent)
		} else {
			body := mech.Body(b)
			j, _ := mech.ParentJoint(body)
			down = append(down, PathEdge{Joint: j, Body: body, Up: false})
			parent, _ := mech.Parent(body)
			b, _ = mech.BodyIndex(parent)
		}
	}
	for i, j := 0, len(down)-1; i < j; i, j = i+1, j-1 {
		down[i], down[j] = down[j], down[i]
	}
	return append(up, down...)
}
