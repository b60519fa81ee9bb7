package mechanism

import "go.viam.com/rigidbodydynamics/spatial"

// RigidBody is a link: an optional spatial inertia (nil for the root
// body) plus a set of body-fixed frame definitions, each stored as the
// transform from that frame to the body's Default frame. The Default
// frame is always among the definitions and is self-identity.
type RigidBody struct {
	Name    string
	Inertia *spatial.SpatialInertia
	Default spatial.Frame

	frames map[spatial.Frame]spatial.Transform3D
}

// NewRigidBody constructs a body with a fresh Default frame and the
// given inertia (expressed in that Default frame).
func NewRigidBody(name string, inertia spatial.SpatialInertia) *RigidBody {
	def := spatial.NewFrame()
	b := &RigidBody{Name: name, Default: def, frames: map[spatial.Frame]spatial.Transform3D{}}
	inertia.Frame = def
	b.Inertia = &inertia
	b.frames[def] = spatial.IdentityTransform3D(def)
	return b
}

// NewRootBody constructs the massless root of a mechanism tree.
func NewRootBody(name string) *RigidBody {
	def := spatial.NewFrame()
	return &RigidBody{
		Name:    name,
		Default: def,
		frames:  map[spatial.Frame]spatial.Transform3D{def: spatial.IdentityTransform3D(def)},
	}
}

// IsRoot reports whether b carries no spatial inertia.
func (b *RigidBody) IsRoot() bool { return b.Inertia == nil }

// AddFrame registers an additional body-fixed frame as a transform to
// b.Default.
func (b *RigidBody) AddFrame(frame spatial.Frame, toDefault spatial.Transform3D) {
	b.frames[frame] = toDefault
}

// FrameTransform returns the transform from frame to b.Default, if frame
// has been registered on b.
func (b *RigidBody) FrameTransform(frame spatial.Frame) (spatial.Transform3D, bool) {
	t, ok := b.frames[frame]
	return t, ok
}

func (b *RigidBody) String() string {
	if b.IsRoot() {
		return b.Name + " (root)"
	}
	return b.Name
}
