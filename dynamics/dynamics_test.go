package dynamics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"go.viam.com/rigidbodydynamics/mechanism"
	"go.viam.com/rigidbodydynamics/rbdtest"
	"go.viam.com/test"
)

func TestPendulumHorizontalAccelerationMatchesGravityTorque(t *testing.T) {
	// A unit-mass pendulum of length 1 at q=0 has its point mass offset
	// horizontally along X from the Y-axis pivot, perpendicular to
	// gravity, so the full lever-arm torque m*g*length divided by the
	// parallel-axis inertia m*length^2 leaves v̇ = ±g/length.
	m, link := rbdtest.Pendulum(r3.Vector{Y: 1}, 1, 1)
	s := mechanism.NewMechanismState(m)
	test.That(t, s.SetConfiguration([]float64{0}), test.ShouldBeNil)
	test.That(t, s.SetVelocity([]float64{0}), test.ShouldBeNil)

	result := NewResult(m)
	wrenches := ZeroExternalWrenches(m)
	tau := []float64{0}

	test.That(t, DynamicsInto(result, s, nil, nil, wrenches, tau), test.ShouldBeNil)
	test.That(t, math.Abs(result.Vdot[0]), test.ShouldAlmostEqual, 9.81, 1e-6)
	_ = link
}

func TestFloatingBodyFreeFallMatchesGravity(t *testing.T) {
	m, body := rbdtest.FloatingBody(2)
	s := mechanism.NewMechanismState(m)
	// Identity quaternion + zero translation: the floating joint's own
	// ZeroConfiguration (body frame coincides with world at this instant).
	test.That(t, s.SetConfiguration([]float64{1, 0, 0, 0, 0, 0, 0}), test.ShouldBeNil)
	_ = body

	result := NewResult(m)
	wrenches := ZeroExternalWrenches(m)
	tau := make([]float64, m.NV())

	test.That(t, DynamicsInto(result, s, nil, nil, wrenches, tau), test.ShouldBeNil)
	// Floating joint velocity layout is [angular(3), linear(3)]; linear
	// components should free-fall at -9.81 along Z regardless of mass.
	test.That(t, result.Vdot[3], test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, result.Vdot[4], test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, result.Vdot[5], test.ShouldAlmostEqual, -9.81, 1e-6)
}

func TestMassMatrixIsSymmetricPositiveDefinite(t *testing.T) {
	m, _, _ := rbdtest.TwoLinkArm()
	s := mechanism.NewMechanismState(m)
	test.That(t, s.SetConfiguration([]float64{0.3, -0.7}), test.ShouldBeNil)

	M, err := MassMatrix(s)
	test.That(t, err, test.ShouldBeNil)

	n := m.NV()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			test.That(t, M.At(i, j), test.ShouldAlmostEqual, M.At(j, i), 1e-9)
		}
		test.That(t, M.At(i, i), test.ShouldBeGreaterThan, 0.0)
	}
}

func TestInverseDynamicsAndMassMatrixAgree(t *testing.T) {
	// tau = M(q)v̇ + c(q,v) for any v̇, since both sides decompose the
	// same Newton-Euler recursion.
	m, _, _ := rbdtest.TwoLinkArm()
	s := mechanism.NewMechanismState(m)
	test.That(t, s.SetConfiguration([]float64{0.2, 0.5}), test.ShouldBeNil)
	test.That(t, s.SetVelocity([]float64{0.1, -0.3}), test.ShouldBeNil)

	vdot := []float64{1.5, -2.0}
	wrenches := ZeroExternalWrenches(m)

	tau, err := InverseDynamics(s, vdot, wrenches)
	test.That(t, err, test.ShouldBeNil)

	M, err := MassMatrix(s)
	test.That(t, err, test.ShouldBeNil)
	c, err := DynamicsBias(s, wrenches)
	test.That(t, err, test.ShouldBeNil)

	for i := 0; i < m.NV(); i++ {
		expected := c[i]
		for j := 0; j < m.NV(); j++ {
			expected += M.At(i, j) * vdot[j]
		}
		test.That(t, tau[i], test.ShouldAlmostEqual, expected, 1e-6)
	}
}

func TestTotalMomentumMatchesMomentumMatrixTimesVelocity(t *testing.T) {
	m, _, _ := rbdtest.TwoLinkArm()
	s := mechanism.NewMechanismState(m)
	test.That(t, s.SetConfiguration([]float64{0.4, -0.1}), test.ShouldBeNil)
	v := []float64{0.6, 0.2}
	test.That(t, s.SetVelocity(v), test.ShouldBeNil)

	A, err := MomentumMatrix(s)
	test.That(t, err, test.ShouldBeNil)
	viaMatrix := A.Mul(v)

	total := TotalMomentum(s)
	test.That(t, total.Lin.X, test.ShouldAlmostEqual, viaMatrix.Lin.X, 1e-6)
	test.That(t, total.Lin.Y, test.ShouldAlmostEqual, viaMatrix.Lin.Y, 1e-6)
	test.That(t, total.Lin.Z, test.ShouldAlmostEqual, viaMatrix.Lin.Z, 1e-6)
	test.That(t, total.Ang.X, test.ShouldAlmostEqual, viaMatrix.Ang.X, 1e-6)
	test.That(t, total.Ang.Y, test.ShouldAlmostEqual, viaMatrix.Ang.Y, 1e-6)
	test.That(t, total.Ang.Z, test.ShouldAlmostEqual, viaMatrix.Ang.Z, 1e-6)
}

func TestFourBarLoopConstraintResidualIsSatisfied(t *testing.T) {
	m, _, _, _ := rbdtest.FourBarLoop()
	s := mechanism.NewMechanismState(m)
	test.That(t, s.SetConfiguration([]float64{0.2, -0.3, 0.1}), test.ShouldBeNil)
	test.That(t, s.SetVelocity([]float64{0.05, 0.02, -0.01}), test.ShouldBeNil)

	result := NewResult(m)
	wrenches := ZeroExternalWrenches(m)
	tau := make([]float64, m.NV())

	test.That(t, DynamicsInto(result, s, nil, nil, wrenches, tau), test.ShouldBeNil)
	test.That(t, result.NLambda, test.ShouldEqual, 5)

	// K·v̇ + k ≈ 0 is the defining residual of the loop constraint; check
	// it holds for the solved v̇.
	for i := 0; i < result.NLambda; i++ {
		row := 0.0
		for j := 0; j < result.NV; j++ {
			row += result.K.At(i, j) * result.Vdot[j]
		}
		row += result.KBias[i]
		test.That(t, row, test.ShouldAlmostEqual, 0, 1e-6)
	}
}

func TestPrismaticRevoluteInverseThenForwardRoundTrip(t *testing.T) {
	m, _, _ := rbdtest.PrismaticRevoluteChain()
	s := mechanism.NewMechanismState(m)
	test.That(t, s.SetConfiguration([]float64{0.3, 0.5}), test.ShouldBeNil)
	test.That(t, s.SetVelocity([]float64{0.1, -0.2}), test.ShouldBeNil)

	vdotWant := []float64{0.7, -1.1}
	wrenches := ZeroExternalWrenches(m)
	tau, err := InverseDynamics(s, vdotWant, wrenches)
	test.That(t, err, test.ShouldBeNil)

	result := NewResult(m)
	test.That(t, DynamicsInto(result, s, nil, nil, wrenches, tau), test.ShouldBeNil)
	test.That(t, result.Vdot[0], test.ShouldAlmostEqual, vdotWant[0], 1e-6)
	test.That(t, result.Vdot[1], test.ShouldAlmostEqual, vdotWant[1], 1e-6)
}

func r3Y() r3.Vector { return r3.Vector{Y: 1} }
