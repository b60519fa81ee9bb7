package dynamics

import (
	"github.com/golang/geo/r3"

	"go.viam.com/rigidbodydynamics/mechanism"
	"go.viam.com/rigidbodydynamics/rbderrors"
	"go.viam.com/rigidbodydynamics/spatial"
)

// computeNewtonEuler is the shared recursion behind both InverseDynamics
// and DynamicsBias, which is exactly inverse dynamics evaluated with
// v̇ = 0. vdot == nil is the zero-v̇ sentinel that lets DynamicsBias
// reuse this without allocating a zeroed velocity-length slice on every
// call.
//
// Forward pass: rather than re-deriving each joint's per-edge Coriolis
// and joint-bias contribution from scratch, this exploits that
// state.BiasAcceleration is itself built by the identical additive
// recursion with v̇≡0 (mechanism/state.go's ensureKinematics step 3): the
// difference of two adjacent cached bias accelerations is exactly that
// edge's own contribution, so accelScratch[i] = accelScratch[parent] +
// S_i·v̇_i + (bias(body) - bias(parent)).
func computeNewtonEuler(
	tau []float64,
	accelScratch []spatial.SpatialAcceleration,
	wrenchScratch []spatial.Wrench,
	state *mechanism.MechanismState,
	vdot []float64,
	externalWrenches []spatial.Wrench,
) error {
	mech := state.Mechanism()
	n := mech.NumBodies()
	if len(tau) != mech.NV() {
		return rbderrors.DimensionMismatch("dynamics.InverseDynamics(tau)", mech.NV(), len(tau))
	}
	if vdot != nil && len(vdot) != mech.NV() {
		return rbderrors.DimensionMismatch("dynamics.InverseDynamics(vdot)", mech.NV(), len(vdot))
	}
	if len(accelScratch) != n {
		return rbderrors.DimensionMismatch("dynamics.InverseDynamics(accelScratch)", n, len(accelScratch))
	}
	if len(wrenchScratch) != n {
		return rbderrors.DimensionMismatch("dynamics.InverseDynamics(wrenchScratch)", n, len(wrenchScratch))
	}
	if len(externalWrenches) != n {
		return rbderrors.DimensionMismatch("dynamics.InverseDynamics(externalWrenches)", n, len(externalWrenches))
	}

	root := mech.Root()
	gravity := mech.Gravity()
	accelScratch[0] = spatial.SpatialAcceleration{Body: root.Default, Base: root.Default, Frame: root.Default, Lin: gravity.Mul(-1)}

	// Forward pass: root to leaves.
	for i := 1; i < n; i++ {
		body := mech.Body(i)
		parent, _ := mech.Parent(body)
		parentIdx, _ := mech.BodyIndex(parent)
		subspace := state.MotionSubspaceInWorld(body)
		vOff, _ := mech.VRange(body)

		biasBody := state.BiasAcceleration(body)
		biasParent := state.BiasAcceleration(parent)

		var velAng, velLin r3.Vector
		if vdot != nil {
			for c, col := range subspace {
				velAng = velAng.Add(col.Ang.Mul(vdot[vOff+c]))
				velLin = velLin.Add(col.Lin.Mul(vdot[vOff+c]))
			}
		}
		accelScratch[i] = spatial.SpatialAcceleration{
			Body: body.Default, Base: root.Default, Frame: root.Default,
			Ang: accelScratch[parentIdx].Ang.Add(velAng).Add(biasBody.Ang.Sub(biasParent.Ang)),
			Lin: accelScratch[parentIdx].Lin.Add(velLin).Add(biasBody.Lin.Sub(biasParent.Lin)),
		}
	}

	// Per-body Newton-Euler: net_wrench_i = I_i·accel_i + twist_i ×* (I_i·twist_i) - external_i.
	wrenchScratch[0] = spatial.ZeroWrench(root.Default)
	for i := 1; i < n; i++ {
		body := mech.Body(i)
		inertiaWorld := spatial.SpatialInertia{Frame: root.Default}
		if body.Inertia != nil {
			T := state.TransformToRoot(body)
			inertiaWorld = body.Inertia.Transform(spatial.Transform3D{From: body.Default, To: root.Default, Rot: T.Rot, Trans: T.Trans})
		}
		twist := state.TwistWrtWorld(body)
		net := inertiaWorld.NewtonEuler(accelScratch[i], twist)
		net = net.Sub(externalWrenches[i])
		wrenchScratch[i] = net
	}

	// Backward pass: leaves to root, accumulating each body's net wrench
	// plus its children's into its parent.
	for i := n - 1; i >= 1; i-- {
		body := mech.Body(i)
		parent, _ := mech.Parent(body)
		parentIdx, _ := mech.BodyIndex(parent)
		wrenchScratch[parentIdx] = wrenchScratch[parentIdx].Add(wrenchScratch[i])
	}

	// Project each joint's accumulated wrench onto its motion subspace,
	// after inverse-transforming from world back into frame_after, to
	// recover the per-kind joint torque via the closed-set dispatch
	// (TorqueFromWrench).
	for i := 1; i < n; i++ {
		body := mech.Body(i)
		j, _ := mech.ParentJoint(body)
		vOff, vN := mech.VRange(body)
		if vN == 0 {
			continue
		}
		T := state.TransformToRoot(body)
		afterToRoot := spatial.Transform3D{From: j.FrameAfter, To: root.Default, Rot: T.Rot, Trans: T.Trans}
		localWrench := wrenchScratch[i].Transform(afterToRoot.Inv())
		taus := j.Kind.TorqueFromWrench(localWrench, j.FrameAfter)
		copy(tau[vOff:vOff+vN], taus)
	}
	return nil
}

// InverseDynamicsInto fills tau (length mechanism.NV()) with the joint
// torques required to produce acceleration vdot given externalWrenches
// (one per body, world frame; index 0 is ignored), using caller-supplied
// accelScratch/wrenchScratch (each length mechanism.NumBodies()) as
// allocation-free working storage. Fails with UnsupportedTopology if the
// mechanism has loop joints.
func InverseDynamicsInto(
	tau []float64,
	accelScratch []spatial.SpatialAcceleration,
	wrenchScratch []spatial.Wrench,
	state *mechanism.MechanismState,
	vdot []float64,
	externalWrenches []spatial.Wrench,
) error {
	if len(state.Mechanism().LoopJoints()) > 0 {
		return rbderrors.UnsupportedTopology("dynamics.InverseDynamics")
	}
	return computeNewtonEuler(tau, accelScratch, wrenchScratch, state, vdot, externalWrenches)
}

// InverseDynamics allocates tau and scratch buffers and fills them via
// InverseDynamicsInto (a convenience wrapper).
func InverseDynamics(state *mechanism.MechanismState, vdot []float64, externalWrenches []spatial.Wrench) ([]float64, error) {
	mech := state.Mechanism()
	tau := make([]float64, mech.NV())
	accel := make([]spatial.SpatialAcceleration, mech.NumBodies())
	wrench := make([]spatial.Wrench, mech.NumBodies())
	if err := InverseDynamicsInto(tau, accel, wrench, state, vdot, externalWrenches); err != nil {
		return nil, err
	}
	return tau, nil
}

// DynamicsBiasInto fills tau (length mechanism.NV()) with c(q, v,
// w_ext), the Coriolis/centrifugal/gravity bias, by rerunning
// InverseDynamicsInto's recursion with v̇ implicitly zero. The recursion
// covers the tree joints only; unlike InverseDynamicsInto it accepts a
// mechanism with loop joints, whose constraints DynamicsInto handles
// separately.
func DynamicsBiasInto(
	tau []float64,
	accelScratch []spatial.SpatialAcceleration,
	wrenchScratch []spatial.Wrench,
	state *mechanism.MechanismState,
	externalWrenches []spatial.Wrench,
) error {
	return computeNewtonEuler(tau, accelScratch, wrenchScratch, state, nil, externalWrenches)
}

// DynamicsBias allocates tau and scratch buffers and fills them via
// DynamicsBiasInto (a convenience wrapper).
func DynamicsBias(state *mechanism.MechanismState, externalWrenches []spatial.Wrench) ([]float64, error) {
	mech := state.Mechanism()
	tau := make([]float64, mech.NV())
	accel := make([]spatial.SpatialAcceleration, mech.NumBodies())
	wrench := make([]spatial.Wrench, mech.NumBodies())
	if err := DynamicsBiasInto(tau, accel, wrench, state, externalWrenches); err != nil {
		return nil, err
	}
	return tau, nil
}

// ZeroExternalWrenches returns a body-indexed slice of zero wrenches
// (world frame), the externalWrenches argument's identity element for
// mechanisms with no applied external loads.
func ZeroExternalWrenches(mech *mechanism.Mechanism) []spatial.Wrench {
	out := make([]spatial.Wrench, mech.NumBodies())
	for i := range out {
		out[i] = spatial.ZeroWrench(mech.Root().Default)
	}
	return out
}
