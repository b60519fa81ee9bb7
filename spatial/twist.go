package spatial

import "github.com/golang/geo/r3"

// Twist is the relative angular/linear velocity of Body with respect to
// Base, expressed in Frame.
type Twist struct {
	Body, Base, Frame Frame
	Ang, Lin          r3.Vector
}

// ZeroTwist returns the zero twist with the given body/base/frame tags.
func ZeroTwist(body, base, frame Frame) Twist {
	return Twist{Body: body, Base: base, Frame: frame}
}

// Add composes two twists: t.Body must equal other.Base (chaining), and
// both must share the same expressed-in frame. The result is the twist
// of t.Body relative to other.Base.
func (t Twist) Add(other Twist) Twist {
	mustMatch("Twist.Add(body/base chain)", t.Base, other.Body)
	mustMatch("Twist.Add(expressed-in frame)", t.Frame, other.Frame)
	return Twist{
		Body:  t.Body,
		Base:  other.Base,
		Frame: t.Frame,
		Ang:   t.Ang.Add(other.Ang),
		Lin:   t.Lin.Add(other.Lin),
	}
}

// Transform re-expresses t (which must be expressed in T.From) in T.To.
// This is the motion-vector adjoint action; Body and Base are
// unaffected, only the expressed-in frame changes.
func (t Twist) Transform(T Transform3D) Twist {
	mustMatch("Twist.Transform", t.Frame, T.From)
	ang := T.TransformVector(t.Ang)
	lin := T.TransformVector(t.Lin).Add(T.Trans.Cross(ang))
	return Twist{Body: t.Body, Base: t.Base, Frame: T.To, Ang: ang, Lin: lin}
}

// Cross computes the motion-cross-motion product t ×m other, the spatial
// analogue of the Coriolis term v×v̇ that appears in bias-acceleration
// recursions (a parent body's twist crossed with its child joint's own
// twist). Both operands must share an expressed-in frame; the result
// carries that same frame.
func (t Twist) Cross(other Twist) SpatialAcceleration {
	mustMatch("Twist.Cross", t.Frame, other.Frame)
	return SpatialAcceleration{
		Body:  other.Body,
		Base:  other.Base,
		Frame: t.Frame,
		Ang:   t.Ang.Cross(other.Ang),
		Lin:   t.Ang.Cross(other.Lin).Add(t.Lin.Cross(other.Ang)),
	}
}

// CrossForce computes the motion-on-force dual cross product t ×* w
// (Featherstone's v×* operator), used by SpatialInertia's Newton-Euler
// formula: wrench = I·a + v ×* (I·v).
func (t Twist) CrossForce(w Wrench) Wrench {
	mustMatch("Twist.CrossForce", t.Frame, w.Frame)
	return Wrench{
		Frame: t.Frame,
		Ang:   t.Ang.Cross(w.Ang).Add(t.Lin.Cross(w.Lin)),
		Lin:   t.Ang.Cross(w.Lin),
	}
}
