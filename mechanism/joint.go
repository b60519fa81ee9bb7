package mechanism

import (
	"go.viam.com/rigidbodydynamics/joint"
	"go.viam.com/rigidbodydynamics/spatial"
)

// Joint is a tree edge (or, for a loop joint, a non-owning back
// reference): a name, frame_before (attached to the predecessor body),
// frame_after (attached to the successor body), and a joint-kind
// variant. frame_after becomes the successor body's Default frame once
// attached.
type Joint struct {
	Name        string
	FrameBefore spatial.Frame
	FrameAfter  spatial.Frame
	Kind        joint.Joint
}

// NewJoint builds a tree edge of the given kind.
func NewJoint(name string, before, after spatial.Frame, kind joint.Joint) *Joint {
	return &Joint{Name: name, FrameBefore: before, FrameAfter: after, Kind: kind}
}

// NQ returns the joint kind's configuration-vector length.
func (j *Joint) NQ() int { return j.Kind.NQ() }

// NV returns the joint kind's velocity-vector length.
func (j *Joint) NV() int { return j.Kind.NV() }

func (j *Joint) String() string { return j.Name + "(" + j.Kind.Kind().String() + ")" }
