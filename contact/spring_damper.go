package contact

import "github.com/golang/geo/r3"

// NormalSpringDamper is a stateless contact-normal force model: a linear
// spring-damper along the contact normal, clamped to be non-tensile. It
// carries no internal state, so Reset/ZeroDerivative/State/
// SetState are all no-ops; it satisfies Model purely so it can be
// composed directly, or wrapped by StickSlipFriction for the tangential
// component.
type NormalSpringDamper struct {
	Stiffness, Damping float64
}

var _ Model = (*NormalSpringDamper)(nil)

// NewNormalSpringDamper builds a normal contact model with the given
// stiffness and damping coefficients.
func NewNormalSpringDamper(stiffness, damping float64) *NormalSpringDamper {
	return &NormalSpringDamper{Stiffness: stiffness, Damping: damping}
}

// Reset is a no-op: NormalSpringDamper has no internal state.
func (m *NormalSpringDamper) Reset() {}

// ZeroDerivative is a no-op: NormalSpringDamper has no internal state.
func (m *NormalSpringDamper) ZeroDerivative() {}

// Derivative is always zero: NormalSpringDamper has no internal state.
func (m *NormalSpringDamper) Derivative() r3.Vector { return r3.Vector{} }

// State is always zero: NormalSpringDamper has no internal state.
func (m *NormalSpringDamper) State() r3.Vector { return r3.Vector{} }

// SetState is a no-op: NormalSpringDamper has no internal state.
func (m *NormalSpringDamper) SetState(r3.Vector) {}

// Step returns normal*max(0, k*penetration - b*v_n), v_n the velocity's
// component along normal: a spring pushing the point out, damped
// against closing velocity, never allowed to pull the point in.
func (m *NormalSpringDamper) Step(penetration float64, velocity, normal r3.Vector) (r3.Vector, error) {
	if penetration <= 0 {
		return r3.Vector{}, nil
	}
	closingVel := velocity.Dot(normal)
	mag := m.Stiffness*penetration - m.Damping*closingVel
	if mag < 0 {
		mag = 0
	}
	return normal.Mul(mag), nil
}
