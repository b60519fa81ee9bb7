package contact

import (
	"testing"

	"github.com/golang/geo/r3"

	"go.viam.com/rigidbodydynamics/mechanism"
	"go.viam.com/rigidbodydynamics/rbdtest"
	"go.viam.com/rigidbodydynamics/spatial"
	"go.viam.com/test"
)

func TestHalfSpaceSeparationSignConvention(t *testing.T) {
	h := HalfSpace{Normal: r3.Vector{Z: 1}, Offset: 0}
	test.That(t, h.Separation(r3.Vector{Z: -0.01}), test.ShouldBeGreaterThan, 0.0)
	test.That(t, h.Separation(r3.Vector{Z: 0.01}), test.ShouldBeLessThan, 0.0)
}

func TestNormalSpringDamperIsZeroOutsidePenetration(t *testing.T) {
	m := NewNormalSpringDamper(100, 1)
	f, err := m.Step(-0.01, r3.Vector{}, r3.Vector{Z: 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, f.Norm(), test.ShouldAlmostEqual, 0, 1e-12)
}

func TestNormalSpringDamperPushesAlongNormal(t *testing.T) {
	m := NewNormalSpringDamper(100, 1)
	f, err := m.Step(0.01, r3.Vector{}, r3.Vector{Z: 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, f.Z, test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestNormalSpringDamperClampsNonTensile(t *testing.T) {
	m := NewNormalSpringDamper(1, 100)
	// Large separating velocity would otherwise make the damping term
	// dominate and pull the point back in; Step must clamp to zero.
	f, err := m.Step(0.01, r3.Vector{Z: 10}, r3.Vector{Z: 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, f.Norm(), test.ShouldAlmostEqual, 0, 1e-12)
}

func TestDynamicsProducesPositiveNormalWrenchOnPenetration(t *testing.T) {
	m, body := rbdtest.FloatingBody(1)
	s := mechanism.NewMechanismState(m)
	// Body origin sits 0.01 below the ground plane z=0: penetrating.
	test.That(t, s.SetConfiguration([]float64{1, 0, 0, 0, 0, 0, -0.01}), test.ShouldBeNil)

	points := []Point{{Body: body, LocalPosition: r3.Vector{}, Model: NewNormalSpringDamper(1000, 10)}}
	ground := []HalfSpace{{Normal: r3.Vector{Z: 1}, Offset: 0}}
	wrenches := make([]spatial.Wrench, m.NumBodies())
	for i := range wrenches {
		wrenches[i] = spatial.ZeroWrench(m.Root().Default)
	}

	err := Dynamics(points, ground, s, wrenches)
	test.That(t, err, test.ShouldBeNil)

	bodyIdx, ok := m.BodyIndex(body)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, wrenches[bodyIdx].Lin.Z, test.ShouldBeGreaterThan, 0.0)
}

func TestDynamicsResetsModelWhenNotTouching(t *testing.T) {
	m, body := rbdtest.FloatingBody(1)
	s := mechanism.NewMechanismState(m)
	test.That(t, s.SetConfiguration([]float64{1, 0, 0, 0, 0, 0, 1.0}), test.ShouldBeNil)

	normal := NewNormalSpringDamper(1000, 10)
	friction := NewStickSlipFriction(normal, 0.8, 0.6, 500, 5)
	friction.SetState(r3.Vector{X: 1, Y: 1})

	points := []Point{{Body: body, LocalPosition: r3.Vector{}, Model: friction}}
	ground := []HalfSpace{{Normal: r3.Vector{Z: 1}, Offset: 0}}
	wrenches := make([]spatial.Wrench, m.NumBodies())

	err := Dynamics(points, ground, s, wrenches)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, friction.State().Norm(), test.ShouldAlmostEqual, 0, 1e-12)
}

func TestDynamicsErrorsOnUnknownBody(t *testing.T) {
	m, _ := rbdtest.FloatingBody(1)
	s := mechanism.NewMechanismState(m)
	foreign := mechanism.NewRigidBody("foreign", rbdtest.PointMassInertia(1))

	points := []Point{{Body: foreign, LocalPosition: r3.Vector{}, Model: NewNormalSpringDamper(1, 1)}}
	wrenches := make([]spatial.Wrench, m.NumBodies())

	err := Dynamics(points, nil, s, wrenches)
	test.That(t, err, test.ShouldNotBeNil)
}
