package joint

import (
	"math/rand"

	"github.com/golang/geo/r3"
	"go.viam.com/rigidbodydynamics/spatial"
)

// Prismatic is the 1-DoF translation-along-axis joint. Axis is unit,
// body-fixed (expressed in the after frame).
type Prismatic struct {
	Axis r3.Vector
}

var _ Joint = Prismatic{}

// NewPrismatic constructs a Prismatic joint along axis (normalized).
func NewPrismatic(axis r3.Vector) Prismatic {
	return Prismatic{Axis: axis.Normalize()}
}

// Kind returns KindPrismatic.
func (Prismatic) Kind() Kind { return KindPrismatic }

// NQ returns 1.
func (Prismatic) NQ() int { return 1 }

// NV returns 1.
func (Prismatic) NV() int { return 1 }

// Transform returns a pure translation of q[0] along Axis.
func (p Prismatic) Transform(q []float64, before, after spatial.Frame) spatial.Transform3D {
	return spatial.NewTransform3D(after, before, spatial.IdentityRotation(), p.Axis.Mul(q[0]))
}

// MotionSubspace returns a single column equal to Axis (pure translation
// along a body-fixed axis).
func (p Prismatic) MotionSubspace(before, after spatial.Frame) []spatial.Twist {
	return []spatial.Twist{{Body: after, Base: before, Frame: after, Lin: p.Axis}}
}

// BiasAcceleration returns zero: the axis is body-fixed and constant, so
// there is no velocity-dependent contribution.
func (Prismatic) BiasAcceleration(after spatial.Frame) spatial.SpatialAcceleration {
	return spatial.ZeroSpatialAcceleration(after, after, after)
}

// QDot returns v unchanged.
func (Prismatic) QDot(q, v []float64) []float64 { return []float64{v[0]} }

// VFromQDot returns qdot unchanged.
func (Prismatic) VFromQDot(q, qdot []float64) []float64 { return []float64{qdot[0]} }

// ZeroConfiguration returns [0].
func (Prismatic) ZeroConfiguration() []float64 { return []float64{0} }

// RandomConfiguration returns a random displacement in [-1, 1) meters.
func (Prismatic) RandomConfiguration(rng *rand.Rand) []float64 {
	return []float64{rng.Float64()*2 - 1}
}

// TorqueFromWrench returns axis·(wrench force part).
func (p Prismatic) TorqueFromWrench(w spatial.Wrench, after spatial.Frame) []float64 {
	return []float64{p.Axis.Dot(w.Lin)}
}

// LocalCoordinates returns phi = q - q0, phidot = v.
func (Prismatic) LocalCoordinates(q0, q, v []float64) ([]float64, []float64) {
	return []float64{q[0] - q0[0]}, []float64{v[0]}
}

// GlobalCoordinates returns q0 + phi.
func (Prismatic) GlobalCoordinates(q0, phi []float64) []float64 {
	return []float64{q0[0] + phi[0]}
}

// FlipDirection negates Axis.
func (p Prismatic) FlipDirection() Joint {
	return Prismatic{Axis: p.Axis.Mul(-1)}
}
