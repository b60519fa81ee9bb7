package spatial

import "github.com/golang/geo/r3"

// Transform3D is a rigid transform from the From frame to the To frame:
// p_to = Rot*p_from + Trans.
type Transform3D struct {
	From, To Frame
	Rot      Rotation
	Trans    r3.Vector
}

// NewTransform3D builds a transform with the given rotation and
// translation, normalizing rot on the way in so accumulated floating-
// point drift never compounds across a chain of composed transforms.
func NewTransform3D(from, to Frame, rot Rotation, trans r3.Vector) Transform3D {
	return Transform3D{From: from, To: to, Rot: NormalizeRotation(rot), Trans: trans}
}

// IdentityTransform3D returns the identity transform between from and to
// (used e.g. for a body's default frame mapping to itself).
func IdentityTransform3D(frame Frame) Transform3D {
	return Transform3D{From: frame, To: frame, Rot: IdentityRotation()}
}

// TransformPoint maps a point expressed in From into To.
func (t Transform3D) TransformPoint(p r3.Vector) r3.Vector {
	return RotateVector(t.Rot, p).Add(t.Trans)
}

// TransformVector maps a free (direction) vector expressed in From into
// To: the rotational part only, no translation.
func (t Transform3D) TransformVector(v r3.Vector) r3.Vector {
	return RotateVector(t.Rot, v)
}

// Inv returns the inverse transform, from To back to From.
func (t Transform3D) Inv() Transform3D {
	rInv := InvRotation(t.Rot)
	return Transform3D{
		From:  t.To,
		To:    t.From,
		Rot:   rInv,
		Trans: RotateVector(rInv, t.Trans).Mul(-1),
	}
}

// Compose returns a∘b: first apply b (From=b.From, To=b.To=a.From), then
// a, yielding a transform from b.From to a.To. Requires a.From == b.To.
func Compose(a, b Transform3D) Transform3D {
	mustMatch("spatial.Compose", a.From, b.To)
	return Transform3D{
		From:  b.From,
		To:    a.To,
		Rot:   ComposeRotation(a.Rot, b.Rot),
		Trans: RotateVector(a.Rot, b.Trans).Add(a.Trans),
	}
}
