package spatial

import (
	"math"

	"github.com/golang/geo/r3"
)

// SE3Log is the SE(3) exponential-coordinate vector: Ang is the
// axis-angle rotation vector (direction = rotation axis, magnitude =
// rotation angle), Lin is the translation part of the same exponential
// coordinates (not the raw translation - see vMatrix below).
type SE3Log struct {
	Ang, Lin r3.Vector
}

// vMatrix is the left Jacobian of SO(3) at rotation vector w: the matrix
// V such that Exp(w, p).Trans == V(w)*p. Its closed form (Rodrigues'
// formula's translation analogue) avoids the coordinate singularity at
// w=0 via the small-angle series.
func vMatrix(w r3.Vector) Mat3 {
	theta := w.Norm()
	if theta < epsilon {
		// V(w) → I + hat(w)/2 + hat(w)²/6 for small θ.
		h := Skew(w)
		return IdentityMat3().Add(h.Scale(0.5)).Add(h.Mul(h).Scale(1.0 / 6))
	}
	h := Skew(w)
	a := (1 - math.Cos(theta)) / (theta * theta)
	b := (theta - math.Sin(theta)) / (theta * theta * theta)
	return IdentityMat3().Add(h.Scale(a)).Add(h.Mul(h).Scale(b))
}

// vMatrixInv returns the inverse of vMatrix(w), again via a
// small-angle-safe closed form.
func vMatrixInv(w r3.Vector) Mat3 {
	theta := w.Norm()
	h := Skew(w)
	if theta < epsilon {
		return IdentityMat3().Sub(h.Scale(0.5)).Add(h.Mul(h).Scale(1.0 / 12))
	}
	half := theta / 2
	cot := math.Cos(half) / math.Sin(half)
	c := (1 - half*cot) / (theta * theta)
	return IdentityMat3().Sub(h.Scale(0.5)).Add(h.Mul(h).Scale(c))
}

// Exp builds the Transform3D (from frame to frame, frame is both the
// origin and destination of the local chart) corresponding to SE3Log
// coordinates phi.
func Exp(frame Frame, phi SE3Log) Transform3D {
	theta := phi.Ang.Norm()
	var rot Rotation
	if theta < epsilon {
		rot = IdentityRotation()
	} else {
		rot = RotationFromAxisAngle(phi.Ang, theta)
	}
	trans := vMatrix(phi.Ang).MulVec(phi.Lin)
	return NewTransform3D(frame, frame, rot, trans)
}

// Log computes the SE3Log coordinates of t (t.From must equal t.To - a
// local chart - in the caller's use this is always true, since it is
// invoked as log(T(q0)⁻¹·T(q)), a transform from the body frame to
// itself through two different configurations of the same joint).
func Log(t Transform3D) SE3Log {
	w := quaternionLog(t.Rot)
	p := vMatrixInv(w).MulVec(t.Trans)
	return SE3Log{Ang: w, Lin: p}
}

// quaternionLog returns the axis-angle rotation vector (axis * angle)
// for a unit quaternion.
func quaternionLog(q Rotation) r3.Vector {
	q = NormalizeRotation(q)
	imag := r3.Vector{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	sinHalf := imag.Norm()
	if sinHalf < epsilon {
		return r3.Vector{}
	}
	halfAngle := math.Atan2(sinHalf, q.Real)
	return imag.Mul(2 * halfAngle / sinHalf)
}

// LogDot computes ϕ̇ given the current local coordinates phi and the
// twist of the joint's successor body relative to its local-chart origin
// q0, expressed in the successor body's own frame, with q0 treated as
// momentarily stationary. This uses the right-Jacobian inverse
// J_r⁻¹(ϕ) = J_l⁻¹(−ϕ) (vMatrixInv evaluated at −phi.Ang) relating a
// body-frame velocity to the rate of change of exponential coordinates,
// applied independently to the rotational and translational blocks; it
// is exact for phi.Ang and a first-order-consistent approximation for
// phi.Lin (the fully coupled SE(3) expression has an additional
// Ang-Lin cross term that is not included). Its only caller is
// Floating.LocalCoordinates' ϕ̇ output.
func LogDot(phi SE3Log, twist Twist) SE3Log {
	vinv := vMatrixInv(phi.Ang.Mul(-1))
	return SE3Log{
		Ang: vinv.MulVec(twist.Ang),
		Lin: vinv.MulVec(twist.Lin),
	}
}
