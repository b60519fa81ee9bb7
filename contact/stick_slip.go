package contact

import (
	"math"

	"github.com/golang/geo/r3"
)

// StickSlipFriction wraps a normal-force model with a Coulomb-cone
// tangential friction model, tracked via a single bristle-deflection
// state vector. The bristle deflects like a spring under
// relative tangential sliding; its restoring force is clamped to the
// static/dynamic Coulomb cone scaled by the normal force computed this
// step, the same static-vs-dynamic split the constraint-contact solver
// in the example pack uses for its own tangential impulse.
type StickSlipFriction struct {
	Normal *NormalSpringDamper

	StaticFriction, DynamicFriction float64
	BristleStiffness, BristleDamping float64

	bristle      r3.Vector
	bristleDeriv r3.Vector
}

var _ Model = (*StickSlipFriction)(nil)

// NewStickSlipFriction builds a friction model around normal, with the
// given static/dynamic Coulomb coefficients and bristle stiffness/damping.
func NewStickSlipFriction(normal *NormalSpringDamper, staticFriction, dynamicFriction, bristleStiffness, bristleDamping float64) *StickSlipFriction {
	return &StickSlipFriction{
		Normal:           normal,
		StaticFriction:   staticFriction,
		DynamicFriction:  dynamicFriction,
		BristleStiffness: bristleStiffness,
		BristleDamping:   bristleDamping,
	}
}

// Reset zeroes the bristle deflection (spec: "reset the contact state"),
// called once a point leaves every primitive it was tracked against.
func (m *StickSlipFriction) Reset() {
	m.bristle = r3.Vector{}
	m.bristleDeriv = r3.Vector{}
}

// ZeroDerivative clears the tracked bristle-velocity without touching
// the bristle deflection itself.
func (m *StickSlipFriction) ZeroDerivative() {
	m.bristleDeriv = r3.Vector{}
}

// Derivative returns the bristle's current rate of deflection, for an
// external time-stepper to integrate.
func (m *StickSlipFriction) Derivative() r3.Vector { return m.bristleDeriv }

// State returns the bristle's current tangential deflection.
func (m *StickSlipFriction) State() r3.Vector { return m.bristle }

// SetState overwrites the bristle deflection with an externally
// integrated value.
func (m *StickSlipFriction) SetState(s r3.Vector) { m.bristle = s }

// Step computes the normal force via m.Normal, then the tangential
// (friction) force from the bristle's spring-damper response to the
// velocity's tangential component, clamped to the Coulomb cone scaled by
// the normal force's magnitude: within the static limit the bristle
// deflects and stores energy (stick); beyond it, the force saturates at
// the dynamic limit and the bristle's stored deflection is rescaled back
// onto the cone (slip), matching the static/dynamic split used for
// tangential impulses in the example pack's own contact solver.
func (m *StickSlipFriction) Step(penetration float64, velocity, normal r3.Vector) (r3.Vector, error) {
	normalForce, err := m.Normal.Step(penetration, velocity, normal)
	if err != nil {
		return r3.Vector{}, err
	}
	normalMag := normalForce.Norm()
	if penetration <= 0 || normalMag <= 0 {
		m.ZeroDerivative()
		return normalForce, nil
	}

	tangentVel := velocity.Sub(normal.Mul(velocity.Dot(normal)))
	m.bristleDeriv = tangentVel

	trial := m.bristle.Mul(-m.BristleStiffness).Sub(tangentVel.Mul(m.BristleDamping))
	trialMag := trial.Norm()

	staticLimit := m.StaticFriction * normalMag
	dynamicLimit := m.DynamicFriction * normalMag

	var friction r3.Vector
	if trialMag <= staticLimit || trialMag < 1e-12 {
		friction = trial
	} else {
		friction = trial.Mul(dynamicLimit / trialMag)
		// Rescale the stored deflection back onto the cone so a
		// sustained slip doesn't let the bristle wind up unboundedly.
		if m.BristleStiffness > 0 {
			m.bristle = friction.Mul(-1 / m.BristleStiffness)
		}
	}

	mag := math.Min(friction.Norm(), dynamicLimit+staticLimit)
	if friction.Norm() > 0 {
		friction = friction.Mul(mag / friction.Norm())
	}

	return normalForce.Add(friction), nil
}
