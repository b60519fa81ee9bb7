package joint

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"go.viam.com/rigidbodydynamics/spatial"
)

// Revolute is the 1-DoF rotation-about-axis joint. Axis is unit,
// body-fixed (expressed in the after frame).
type Revolute struct {
	Axis r3.Vector
}

var _ Joint = Revolute{}

// NewRevolute constructs a Revolute joint about axis (normalized).
func NewRevolute(axis r3.Vector) Revolute {
	return Revolute{Axis: axis.Normalize()}
}

// Kind returns KindRevolute.
func (Revolute) Kind() Kind { return KindRevolute }

// NQ returns 1.
func (Revolute) NQ() int { return 1 }

// NV returns 1.
func (Revolute) NV() int { return 1 }

// Transform returns a rotation by q[0] radians about Axis (Rodrigues).
func (r Revolute) Transform(q []float64, before, after spatial.Frame) spatial.Transform3D {
	rot := spatial.RotationFromAxisAngle(r.Axis, q[0])
	return spatial.NewTransform3D(after, before, rot, r3.Vector{})
}

// MotionSubspace returns a single column equal to Axis (pure rotation
// about a body-fixed axis).
func (r Revolute) MotionSubspace(before, after spatial.Frame) []spatial.Twist {
	return []spatial.Twist{{Body: after, Base: before, Frame: after, Ang: r.Axis}}
}

// BiasAcceleration returns zero: the axis is body-fixed and constant, so
// there is no velocity-dependent contribution.
func (Revolute) BiasAcceleration(after spatial.Frame) spatial.SpatialAcceleration {
	return spatial.ZeroSpatialAcceleration(after, after, after)
}

// QDot returns v unchanged (q̇ = v for a 1-DoF joint).
func (Revolute) QDot(q, v []float64) []float64 { return []float64{v[0]} }

// VFromQDot returns qdot unchanged.
func (Revolute) VFromQDot(q, qdot []float64) []float64 { return []float64{qdot[0]} }

// ZeroConfiguration returns [0].
func (Revolute) ZeroConfiguration() []float64 { return []float64{0} }

// RandomConfiguration returns a uniformly random angle in [-π, π).
func (Revolute) RandomConfiguration(rng *rand.Rand) []float64 {
	return []float64{(rng.Float64()*2 - 1) * math.Pi}
}

// TorqueFromWrench returns axis·(wrench torque part), the scalar torque
// about Axis.
func (r Revolute) TorqueFromWrench(w spatial.Wrench, after spatial.Frame) []float64 {
	return []float64{r.Axis.Dot(w.Ang)}
}

// LocalCoordinates returns phi = q - q0, phidot = v.
func (Revolute) LocalCoordinates(q0, q, v []float64) ([]float64, []float64) {
	return []float64{q[0] - q0[0]}, []float64{v[0]}
}

// GlobalCoordinates returns q0 + phi.
func (Revolute) GlobalCoordinates(q0, phi []float64) []float64 {
	return []float64{q0[0] + phi[0]}
}

// FlipDirection negates Axis.
func (r Revolute) FlipDirection() Joint {
	return Revolute{Axis: r.Axis.Mul(-1)}
}
