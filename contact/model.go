// Package contact implements per-contact-point state machines: given a
// point's penetration, velocity and surface normal, a Model produces an
// instantaneous contact force. The core never integrates a Model's own
// internal state itself; Step updates the model's derivative bookkeeping
// (StickSlipFriction's Step also rescales its stored bristle deflection
// back onto the friction cone while slipping), and an external
// time-stepper reads Derivative(), integrates it over its own step, and
// pushes the result back in via SetState.
package contact

import "github.com/golang/geo/r3"

// Model is the capability set a contact-point state machine exposes.
type Model interface {
	// Reset returns the model to its no-contact state, called when a
	// point leaves every primitive it was tracked against.
	Reset()
	// ZeroDerivative clears the currently-tracked state derivative
	// without touching the state itself.
	ZeroDerivative()
	// Derivative returns the model's current internal-state rate of
	// change, for an external time-stepper to integrate.
	Derivative() r3.Vector
	// State returns the model's current internal state (e.g. a
	// friction bristle's tangential deflection).
	State() r3.Vector
	// SetState overwrites the model's internal state, for an external
	// time-stepper to push an integrated value back in.
	SetState(r3.Vector)
	// Step computes the instantaneous contact force given the point's
	// penetration depth (positive = inside the primitive), world-frame
	// velocity, and the primitive's outward normal at the point,
	// updating Derivative() as a side effect.
	Step(penetration float64, velocity, normal r3.Vector) (force r3.Vector, err error)
}
