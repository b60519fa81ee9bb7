package dynamics

import (
	"testing"

	"go.viam.com/rigidbodydynamics/mechanism"
	"go.viam.com/rigidbodydynamics/rbdtest"
	"go.viam.com/rigidbodydynamics/spatial"
	"go.viam.com/test"
)

func TestCenterOfMassMatchesSingleLinkOffset(t *testing.T) {
	m, _ := rbdtest.Pendulum(rbdtest.Gravity, 1, 1)
	s := mechanism.NewMechanismState(m)

	com, err := CenterOfMass(s)
	test.That(t, err, test.ShouldBeNil)
	// At the joint's zero configuration the link's point mass sits at
	// (length, 0, 0) relative to its own joint, and the joint itself is
	// attached at the root's origin, so the world center of mass is
	// exactly that offset.
	test.That(t, com.X, test.ShouldAlmostEqual, 1.0, 1e-9)
	test.That(t, com.Y, test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, com.Z, test.ShouldAlmostEqual, 0.0, 1e-9)
}

func TestCenterOfMassOfMasslessMechanismIsZeroMassError(t *testing.T) {
	root := mechanism.NewRootBody("root")
	m := mechanism.New(root, rbdtest.Gravity)
	s := mechanism.NewMechanismState(m)

	_, err := CenterOfMass(s)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPathFromRootToLinkHasNoUpwardEdges(t *testing.T) {
	m, _, link2 := rbdtest.TwoLinkArm()
	path := Path(m, m.Root(), link2)
	test.That(t, len(path), test.ShouldEqual, 2)
	for _, e := range path {
		test.That(t, e.Up, test.ShouldBeFalse)
	}
}

func TestPathFromChildToParentIsOneUpEdge(t *testing.T) {
	m, link1, link2 := rbdtest.TwoLinkArm()
	path := Path(m, link2, link1)
	test.That(t, len(path), test.ShouldEqual, 1)
	test.That(t, path[0].Up, test.ShouldBeTrue)
	test.That(t, path[0].Body, test.ShouldEqual, link2)
}

func TestGeometricJacobianColumnCountMatchesPathVelocities(t *testing.T) {
	m, _, link2 := rbdtest.TwoLinkArm()
	s := mechanism.NewMechanismState(m)

	identity := func(tw spatial.Twist) spatial.Twist { return tw }
	jac, err := GeometricJacobian(s, m.Root(), link2, link2.Default, identity)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, jac.NumVelocities(), test.ShouldEqual, 2)
}
