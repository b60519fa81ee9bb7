package spatial

import "github.com/golang/geo/r3"

// SpatialAcceleration has the same frame structure as Twist but
// represents a rate of change of velocity rather than a velocity.
type SpatialAcceleration struct {
	Body, Base, Frame Frame
	Ang, Lin          r3.Vector
}

// ZeroSpatialAcceleration returns the zero acceleration with the given tags.
func ZeroSpatialAcceleration(body, base, frame Frame) SpatialAcceleration {
	return SpatialAcceleration{Body: body, Base: base, Frame: frame}
}

// Add composes two accelerations the same way Twist.Add does.
func (a SpatialAcceleration) Add(other SpatialAcceleration) SpatialAcceleration {
	mustMatch("SpatialAcceleration.Add(body/base chain)", a.Base, other.Body)
	mustMatch("SpatialAcceleration.Add(expressed-in frame)", a.Frame, other.Frame)
	return SpatialAcceleration{
		Body:  a.Body,
		Base:  other.Base,
		Frame: a.Frame,
		Ang:   a.Ang.Add(other.Ang),
		Lin:   a.Lin.Add(other.Lin),
	}
}

// Sub returns a - other (both must share Body/Base/Frame); useful for
// computing a relative acceleration, where bias accelerations of two
// bodies sharing a common ancestor are differenced.
func (a SpatialAcceleration) Sub(other SpatialAcceleration) SpatialAcceleration {
	mustMatch("SpatialAcceleration.Sub(body)", a.Body, other.Body)
	mustMatch("SpatialAcceleration.Sub(base)", a.Base, other.Base)
	mustMatch("SpatialAcceleration.Sub(frame)", a.Frame, other.Frame)
	return SpatialAcceleration{
		Body:  a.Body,
		Base:  a.Base,
		Frame: a.Frame,
		Ang:   a.Ang.Sub(other.Ang),
		Lin:   a.Lin.Sub(other.Lin),
	}
}

// Transform re-expresses a (expressed in T.From) in T.To, using the same
// motion-vector adjoint as Twist.Transform.
func (a SpatialAcceleration) Transform(T Transform3D) SpatialAcceleration {
	mustMatch("SpatialAcceleration.Transform", a.Frame, T.From)
	ang := T.TransformVector(a.Ang)
	lin := T.TransformVector(a.Lin).Add(T.Trans.Cross(ang))
	return SpatialAcceleration{Body: a.Body, Base: a.Base, Frame: T.To, Ang: ang, Lin: lin}
}

// FromMotionSubspaceColumn scales a single motion-subspace column (itself
// a Twist-shaped basis vector) by a joint velocity/acceleration
// coefficient, yielding the joint's contribution to a spatial
// acceleration: scaling a motion-subspace column by a velocity-vector
// slice yields exactly the joint's own contribution to the total.
func FromMotionSubspaceColumn(col Twist, coeff float64) SpatialAcceleration {
	return SpatialAcceleration{
		Body:  col.Body,
		Base:  col.Base,
		Frame: col.Frame,
		Ang:   col.Ang.Mul(coeff),
		Lin:   col.Lin.Mul(coeff),
	}
}
