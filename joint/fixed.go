package joint

import (
	"math/rand"

	"go.viam.com/rigidbodydynamics/spatial"
)

// Fixed is the 0-DoF joint: identity transform, empty motion subspace.
type Fixed struct{}

var _ Joint = Fixed{}

// NewFixed constructs a Fixed joint.
func NewFixed() Fixed { return Fixed{} }

// Kind returns KindFixed.
func (Fixed) Kind() Kind { return KindFixed }

// NQ returns 0.
func (Fixed) NQ() int { return 0 }

// NV returns 0.
func (Fixed) NV() int { return 0 }

// Transform returns the identity transform from after to before.
func (Fixed) Transform(q []float64, before, after spatial.Frame) spatial.Transform3D {
	return spatial.Transform3D{From: after, To: before, Rot: spatial.IdentityRotation()}
}

// MotionSubspace returns no columns.
func (Fixed) MotionSubspace(before, after spatial.Frame) []spatial.Twist { return nil }

// BiasAcceleration returns the zero acceleration.
func (Fixed) BiasAcceleration(after spatial.Frame) spatial.SpatialAcceleration {
	return spatial.ZeroSpatialAcceleration(after, after, after)
}

// QDot returns an empty slice.
func (Fixed) QDot(q, v []float64) []float64 { return nil }

// VFromQDot returns an empty slice.
func (Fixed) VFromQDot(q, qdot []float64) []float64 { return nil }

// ZeroConfiguration returns an empty slice.
func (Fixed) ZeroConfiguration() []float64 { return nil }

// RandomConfiguration returns an empty slice.
func (Fixed) RandomConfiguration(rng *rand.Rand) []float64 { return nil }

// TorqueFromWrench returns an empty slice.
func (Fixed) TorqueFromWrench(w spatial.Wrench, after spatial.Frame) []float64 { return nil }

// LocalCoordinates returns two empty slices.
func (Fixed) LocalCoordinates(q0, q, v []float64) ([]float64, []float64) { return nil, nil }

// GlobalCoordinates returns an empty slice.
func (Fixed) GlobalCoordinates(q0, phi []float64) []float64 { return nil }

// FlipDirection is a no-op for Fixed.
func (f Fixed) FlipDirection() Joint { return f }
