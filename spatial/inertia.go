package spatial

import "github.com/golang/geo/r3"

// SpatialInertia is the 6x6 inertia operator of a rigid body, stored as
// (J, c, m): J is the 3x3 moment of inertia about Frame's origin, c is
// the first moment of mass (c = m·r_com, r_com measured from the
// origin), and m is the mass.
type SpatialInertia struct {
	Frame Frame
	J     Mat3
	C     r3.Vector
	M     float64
}

// NewSpatialInertia builds a spatial inertia about frame's origin from
// mass, center of mass (relative to the origin) and the moment of
// inertia about the origin.
func NewSpatialInertia(frame Frame, mass float64, com r3.Vector, momentAboutOrigin Mat3) SpatialInertia {
	return SpatialInertia{Frame: frame, J: momentAboutOrigin, C: com.Mul(mass), M: mass}
}

// CenterOfMass returns the body's center of mass, expressed in Frame.
func (si SpatialInertia) CenterOfMass() r3.Vector {
	if si.M == 0 {
		return r3.Vector{}
	}
	return si.C.Mul(1 / si.M)
}

// Add sums two spatial inertias expressed in the same frame.
func (si SpatialInertia) Add(other SpatialInertia) SpatialInertia {
	mustMatch("SpatialInertia.Add", si.Frame, other.Frame)
	return SpatialInertia{
		Frame: si.Frame,
		J:     si.J.Add(other.J),
		C:     si.C.Add(other.C),
		M:     si.M + other.M,
	}
}

// Transform re-expresses si (given about T.From's origin) about T.To's
// origin, using the parallel-axis theorem twice: once to shift the
// reference point from T.From's origin to the (frame-independent)
// center of mass, and once from there to T.To's origin.
func (si SpatialInertia) Transform(T Transform3D) SpatialInertia {
	mustMatch("SpatialInertia.Transform", si.Frame, T.From)
	R := RotationMatrix(T.Rot)

	// c expressed about T.To's origin, in T.To's axes.
	cNew := R.MulVec(si.C).Add(T.Trans.Mul(si.M))

	var rFromCOM, rToCOM r3.Vector
	if si.M != 0 {
		rFromCOM = R.MulVec(si.C.Mul(1 / si.M)) // COM rel. to T.From's origin, in T.To axes
		rToCOM = cNew.Mul(1 / si.M)             // COM rel. to T.To's origin, in T.To axes
	}

	Jrot := Congruence(R, si.J)
	Jcom := Jrot.Add(Skew(rFromCOM).Mul(Skew(rFromCOM)).Scale(si.M))
	Jnew := Jcom.Sub(Skew(rToCOM).Mul(Skew(rToCOM)).Scale(si.M))

	return SpatialInertia{Frame: T.To, J: Jnew, C: cNew, M: si.M}
}

// Momentum returns the spatial momentum h = I·t for a twist t expressed
// in si.Frame (Featherstone eq. 2.63): h_ang = J·ω + c×v; h_lin = m·v − c×ω.
func (si SpatialInertia) Momentum(t Twist) Wrench {
	mustMatch("SpatialInertia.Momentum", si.Frame, t.Frame)
	return Wrench{
		Frame: si.Frame,
		Ang:   si.J.MulVec(t.Ang).Add(si.C.Cross(t.Lin)),
		Lin:   t.Lin.Mul(si.M).Sub(si.C.Cross(t.Ang)),
	}
}

// Force returns the wrench I·a for a spatial acceleration a (same
// (J,c,m) contraction as Momentum, applied to an acceleration instead of
// a velocity).
func (si SpatialInertia) Force(a SpatialAcceleration) Wrench {
	mustMatch("SpatialInertia.Force", si.Frame, a.Frame)
	return Wrench{
		Frame: si.Frame,
		Ang:   si.J.MulVec(a.Ang).Add(si.C.Cross(a.Lin)),
		Lin:   a.Lin.Mul(si.M).Sub(si.C.Cross(a.Ang)),
	}
}

// NewtonEuler computes the net wrench required to produce acceleration a
// on a body moving with twist v under this inertia:
// wrench = I·a + v ×* (I·v), the rigid-body Newton-Euler equation with
// the velocity-product (Coriolis/centrifugal) term folded in.
func (si SpatialInertia) NewtonEuler(a SpatialAcceleration, v Twist) Wrench {
	mustMatch("SpatialInertia.NewtonEuler", si.Frame, v.Frame)
	momentum := si.Momentum(v)
	return si.Force(a).Add(v.CrossForce(momentum))
}
