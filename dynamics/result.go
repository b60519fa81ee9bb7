package dynamics

import (
	"gonum.org/v1/gonum/mat"

	"go.viam.com/rigidbodydynamics/mechanism"
	"go.viam.com/rigidbodydynamics/spatial"
)

// Result is the caller-owned scratch-plus-output buffer for DynamicsInto:
// every quantity the top-level dynamics pass produces or needs as
// working storage lives here, sized once from a Mechanism via NewResult,
// so a caller can reuse one Result across an entire simulation rollout
// without the hot path allocating.
type Result struct {
	NV, NLambda int

	// Vdot and Lambda are dynamics_solve's outputs.
	Vdot   []float64
	Lambda []float64

	// M, C are the mass matrix and dynamics bias.
	M *mat.SymDense
	C []float64

	// K, KBias are the loop-constraint Jacobian and bias (nil/empty
	// when the mechanism has no loop joints).
	K     *mat.Dense
	KBias []float64

	// BodyAccelerations and JointWrenches are DynamicsBias/
	// InverseDynamics' own scratch, exposed here so callers inspecting
	// a finished Result can read the per-body spatial accelerations and
	// joint wrenches the bias pass computed along the way.
	BodyAccelerations []spatial.SpatialAcceleration
	JointWrenches     []spatial.Wrench

	// ContactWrenches and TotalWrenches are per-body (index 0 = root,
	// unused) world-frame wrenches: the contact pass's output, and its
	// sum with the caller's external wrenches.
	ContactWrenches []spatial.Wrench
	TotalWrenches   []spatial.Wrench

	// ForceScratch and TauScratch are MassMatrixInto's own per-body
	// working storage (sized for the largest joint in the closed set,
	// not n, since only one body's columns are live at a time).
	ForceScratch []spatial.Wrench
	TauScratch   []float64

	// ConstraintWorldScratch is ConstraintJacobianAndBiasInto's working
	// storage for each loop joint's constraint subspace transformed into
	// world, one slot per constraint row.
	ConstraintWorldScratch []spatial.Wrench
}

// NewResult allocates a Result sized for mech at its current topology
// (number of bodies/velocities/loop constraints never change after
// construction, so this is the only allocation a caller needs before
// reusing Result across an entire rollout).
func NewResult(mech *mechanism.Mechanism) *Result {
	nv := mech.NV()
	nLambda := NumConstraints(mech)
	numBodies := mech.NumBodies()

	r := &Result{
		NV:                     nv,
		NLambda:                nLambda,
		Vdot:                   make([]float64, nv),
		Lambda:                 make([]float64, nLambda),
		M:                      mat.NewSymDense(nv, nil),
		C:                      make([]float64, nv),
		KBias:                  make([]float64, nLambda),
		BodyAccelerations:      make([]spatial.SpatialAcceleration, numBodies),
		JointWrenches:          make([]spatial.Wrench, numBodies),
		ContactWrenches:        make([]spatial.Wrench, numBodies),
		TotalWrenches:          make([]spatial.Wrench, numBodies),
		ForceScratch:           make([]spatial.Wrench, maxJointNV),
		TauScratch:             make([]float64, maxJointNV),
		ConstraintWorldScratch: make([]spatial.Wrench, nLambda),
	}
	if nLambda > 0 {
		r.K = mat.NewDense(nLambda, nv, nil)
	}
	return r
}
