package joint

import (
	"math/rand"

	"github.com/golang/geo/r3"
	"go.viam.com/rigidbodydynamics/spatial"
	"gonum.org/v1/gonum/num/quat"
)

// Floating is the 6-DoF unit-quaternion + translation joint. Configuration
// q = (w,x,y,z, px,py,pz); velocity v = (ω_body, v_body), the body-frame
// angular and linear velocity. Its motion subspace is the identity,
// partitioned into an angular and a linear 3-column block.
type Floating struct{}

var _ Joint = Floating{}

// NewFloating constructs a Floating joint.
func NewFloating() Floating { return Floating{} }

// Kind returns KindFloating.
func (Floating) Kind() Kind { return KindFloating }

// NQ returns 7.
func (Floating) NQ() int { return 7 }

// NV returns 6.
func (Floating) NV() int { return 6 }

func quatOf(q []float64) spatial.Rotation {
	return quat.Number{Real: q[0], Imag: q[1], Jmag: q[2], Kmag: q[3]}
}

func transOf(q []float64) r3.Vector {
	return r3.Vector{X: q[4], Y: q[5], Z: q[6]}
}

func packQ(rot spatial.Rotation, trans r3.Vector) []float64 {
	return []float64{rot.Real, rot.Imag, rot.Jmag, rot.Kmag, trans.X, trans.Y, trans.Z}
}

// Transform returns the pose of after relative to before at q.
func (Floating) Transform(q []float64, before, after spatial.Frame) spatial.Transform3D {
	return spatial.NewTransform3D(after, before, quatOf(q), transOf(q))
}

// MotionSubspace returns the six standard-basis columns: three angular,
// three linear, since v is already the body twist (S = I).
func (Floating) MotionSubspace(before, after spatial.Frame) []spatial.Twist {
	return []spatial.Twist{
		{Body: after, Base: before, Frame: after, Ang: r3.Vector{X: 1}},
		{Body: after, Base: before, Frame: after, Ang: r3.Vector{Y: 1}},
		{Body: after, Base: before, Frame: after, Ang: r3.Vector{Z: 1}},
		{Body: after, Base: before, Frame: after, Lin: r3.Vector{X: 1}},
		{Body: after, Base: before, Frame: after, Lin: r3.Vector{Y: 1}},
		{Body: after, Base: before, Frame: after, Lin: r3.Vector{Z: 1}},
	}
}

// BiasAcceleration returns zero: the identity motion subspace is
// constant in both q and frame, so there is no velocity-dependent term.
func (Floating) BiasAcceleration(after spatial.Frame) spatial.SpatialAcceleration {
	return spatial.ZeroSpatialAcceleration(after, after, after)
}

// QDot computes q̇ = (½ quat⊗[0,ω], R(quat)·v_body).
func (Floating) QDot(q, v []float64) []float64 {
	rot := spatial.NormalizeRotation(quatOf(q))
	omega := quat.Number{Imag: v[0], Jmag: v[1], Kmag: v[2]}
	quatDot := quat.Scale(0.5, quat.Mul(rot, omega))

	vBody := r3.Vector{X: v[3], Y: v[4], Z: v[5]}
	posDot := spatial.RotateVector(rot, vBody)

	return []float64{quatDot.Real, quatDot.Imag, quatDot.Jmag, quatDot.Kmag, posDot.X, posDot.Y, posDot.Z}
}

// VFromQDot inverts QDot: recovers the body-frame (ω, v) from q̇.
func (Floating) VFromQDot(q, qdot []float64) []float64 {
	rot := spatial.NormalizeRotation(quatOf(q))
	rotInv := spatial.InvRotation(rot)

	quatDot := quat.Number{Real: qdot[0], Imag: qdot[1], Jmag: qdot[2], Kmag: qdot[3]}
	omega := quat.Scale(2, quat.Mul(rotInv, quatDot))

	posDot := r3.Vector{X: qdot[4], Y: qdot[5], Z: qdot[6]}
	vBody := spatial.RotateVector(rotInv, posDot)

	return []float64{omega.Imag, omega.Jmag, omega.Kmag, vBody.X, vBody.Y, vBody.Z}
}

// ZeroConfiguration returns the identity pose (w,x,y,z,px,py,pz) =
// (1,0,0,0,0,0,0).
func (Floating) ZeroConfiguration() []float64 {
	return []float64{1, 0, 0, 0, 0, 0, 0}
}

// RandomConfiguration returns a uniformly random unit quaternion
// (Gaussian-sample-then-normalize) and a random translation in
// [-1, 1)^3.
func (Floating) RandomConfiguration(rng *rand.Rand) []float64 {
	q := quat.Number{Real: rng.NormFloat64(), Imag: rng.NormFloat64(), Jmag: rng.NormFloat64(), Kmag: rng.NormFloat64()}
	q = spatial.NormalizeRotation(q)
	return []float64{
		q.Real, q.Imag, q.Jmag, q.Kmag,
		rng.Float64()*2 - 1, rng.Float64()*2 - 1, rng.Float64()*2 - 1,
	}
}

// TorqueFromWrench returns the full 6-vector (torque, force) since S = I.
func (Floating) TorqueFromWrench(w spatial.Wrench, after spatial.Frame) []float64 {
	return []float64{w.Ang.X, w.Ang.Y, w.Ang.Z, w.Lin.X, w.Lin.Y, w.Lin.Z}
}

// LocalCoordinates returns ϕ = log(T(q0)⁻¹T(q)) and ϕ̇ derived from the
// twist at q.
func (Floating) LocalCoordinates(q0, q, v []float64) ([]float64, []float64) {
	before := spatial.NewFrame()
	T0 := spatial.NewTransform3D(before, before, quatOf(q0), transOf(q0))
	T := spatial.NewTransform3D(before, before, quatOf(q), transOf(q))
	rel := spatial.Compose(T0.Inv(), T)
	phi := spatial.Log(rel)

	twist := spatial.Twist{
		Body: before, Base: before, Frame: before,
		Ang: r3.Vector{X: v[0], Y: v[1], Z: v[2]},
		Lin: r3.Vector{X: v[3], Y: v[4], Z: v[5]},
	}
	phidot := spatial.LogDot(phi, twist)

	return []float64{phi.Ang.X, phi.Ang.Y, phi.Ang.Z, phi.Lin.X, phi.Lin.Y, phi.Lin.Z},
		[]float64{phidot.Ang.X, phidot.Ang.Y, phidot.Ang.Z, phidot.Lin.X, phidot.Lin.Y, phidot.Lin.Z}
}

// GlobalCoordinates inverts LocalCoordinates: q = compose(T(q0), Exp(ϕ)).
func (Floating) GlobalCoordinates(q0, phi []float64) []float64 {
	before := spatial.NewFrame()
	T0 := spatial.NewTransform3D(before, before, quatOf(q0), transOf(q0))
	delta := spatial.Exp(before, spatial.SE3Log{
		Ang: r3.Vector{X: phi[0], Y: phi[1], Z: phi[2]},
		Lin: r3.Vector{X: phi[3], Y: phi[4], Z: phi[5]},
	})
	T := spatial.Compose(T0, delta)
	return packQ(T.Rot, T.Trans)
}

// FlipDirection is a no-op for Floating: it has no directional axis.
func (f Floating) FlipDirection() Joint { return f }
