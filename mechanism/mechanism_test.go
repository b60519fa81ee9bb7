package mechanism

import (
	"math"
	"testing"

	"go.viam.com/rigidbodydynamics/rbdtest"
	"go.viam.com/test"
)

func TestPendulumIndexRanges(t *testing.T) {
	m, link := rbdtest.Pendulum(rbdtest.Gravity, 1, 1)
	test.That(t, m.NumBodies(), test.ShouldEqual, 2)
	test.That(t, m.NQ(), test.ShouldEqual, 1)
	test.That(t, m.NV(), test.ShouldEqual, 1)

	qOff, qN := m.QRange(link)
	test.That(t, qOff, test.ShouldEqual, 0)
	test.That(t, qN, test.ShouldEqual, 1)

	vOff, vN := m.VRange(link)
	test.That(t, vOff, test.ShouldEqual, 0)
	test.That(t, vN, test.ShouldEqual, 1)

	parent, ok := m.Parent(link)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, parent, test.ShouldEqual, m.Root())
}

func TestTwoLinkArmIndexRangesAreDisjoint(t *testing.T) {
	m, link1, link2 := rbdtest.TwoLinkArm()
	test.That(t, m.NQ(), test.ShouldEqual, 2)
	test.That(t, m.NV(), test.ShouldEqual, 2)

	q1Off, _ := m.QRange(link1)
	q2Off, _ := m.QRange(link2)
	test.That(t, q1Off, test.ShouldEqual, 0)
	test.That(t, q2Off, test.ShouldEqual, 1)
}

func TestValidatePassesForAllFixtures(t *testing.T) {
	m1, _ := rbdtest.Pendulum(rbdtest.Gravity, 1, 1)
	test.That(t, m1.Validate(), test.ShouldBeNil)

	m2, _ := rbdtest.FloatingBody(1)
	test.That(t, m2.Validate(), test.ShouldBeNil)

	m3, _, _ := rbdtest.TwoLinkArm()
	test.That(t, m3.Validate(), test.ShouldBeNil)

	m4, _, _ := rbdtest.PrismaticRevoluteChain()
	test.That(t, m4.Validate(), test.ShouldBeNil)

	m5, _, _, _ := rbdtest.FourBarLoop()
	test.That(t, m5.Validate(), test.ShouldBeNil)
}

func TestFourBarLoopHasOneLoopJoint(t *testing.T) {
	m, _, _, b3 := rbdtest.FourBarLoop()
	loops := m.LoopJoints()
	test.That(t, len(loops), test.ShouldEqual, 1)
	test.That(t, loops[0].Predecessor, test.ShouldEqual, b3)
	test.That(t, loops[0].Successor, test.ShouldEqual, m.Root())
}

func TestRemoveFixedJointsPreservesDOFCount(t *testing.T) {
	m, _, _ := rbdtest.TwoLinkArm()
	nqBefore, nvBefore := m.NQ(), m.NV()

	reduced, err := m.RemoveFixedJoints()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, reduced.NQ(), test.ShouldEqual, nqBefore)
	test.That(t, reduced.NV(), test.ShouldEqual, nvBefore)
	test.That(t, reduced.Validate(), test.ShouldBeNil)
}

func TestSubmechanismAndReattachRoundTrip(t *testing.T) {
	m, link1, link2 := rbdtest.TwoLinkArm()

	sub, err := m.Submechanism(link1)
	test.That(t, err, test.ShouldBeNil)
	// Submechanism grafts root's subtree onto a fresh massless root via a
	// Fixed joint, so sub.Root() is that graft root, not link1 itself.
	test.That(t, sub.NumBodies(), test.ShouldEqual, 3)
	_ = link2

	reattached, err := m.Reattach(link2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, reattached.Root(), test.ShouldEqual, link2)
	test.That(t, reattached.NumBodies(), test.ShouldEqual, m.NumBodies())
	test.That(t, reattached.Validate(), test.ShouldBeNil)
}

func TestAttachSubmechanismAppendsBodies(t *testing.T) {
	m1, link1, _ := rbdtest.TwoLinkArm()
	m2, _ := rbdtest.Pendulum(rbdtest.Gravity, 1, 1)

	before := m1.NumBodies()
	err := m1.AttachSubmechanism(link1, m2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m1.NumBodies(), test.ShouldEqual, before+m2.NumBodies()-1)
	test.That(t, m1.Validate(), test.ShouldBeNil)
}

func TestMechanismStateDirtyBitsRecomputeOnConfigurationChange(t *testing.T) {
	m, link := rbdtest.Pendulum(rbdtest.Gravity, 1, 1)
	s := NewMechanismState(m)

	err := s.SetConfiguration([]float64{0})
	test.That(t, err, test.ShouldBeNil)
	t0 := s.TransformToRoot(link)

	err = s.SetConfiguration([]float64{1.5})
	test.That(t, err, test.ShouldBeNil)
	t1 := s.TransformToRoot(link)

	test.That(t, math.Abs(t0.Rot.Real-t1.Rot.Real), test.ShouldBeGreaterThan, 1e-6)
}

func TestSetConfigurationWrongLengthErrors(t *testing.T) {
	m, _ := rbdtest.Pendulum(rbdtest.Gravity, 1, 1)
	s := NewMechanismState(m)
	err := s.SetConfiguration([]float64{1, 2, 3})
	test.That(t, err, test.ShouldNotBeNil)
}
