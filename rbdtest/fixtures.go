// Package rbdtest holds small mechanism fixtures shared across this
// module's test suites (single revolute pendulum, free-falling floating
// body, two-link planar arm, prismatic-revolute chain, four-bar loop),
// built once here instead of re-derived ad hoc in every _test.go file.
package rbdtest

import (
	"github.com/golang/geo/r3"

	"go.viam.com/rigidbodydynamics/joint"
	"go.viam.com/rigidbodydynamics/mechanism"
	"go.viam.com/rigidbodydynamics/spatial"
)

// PointMassInertia returns the spatial inertia of a point mass at the
// origin of its own body frame (no rotational inertia of its own).
func PointMassInertia(mass float64) spatial.SpatialInertia {
	return spatial.NewSpatialInertia(spatial.Frame(0), mass, r3.Vector{}, spatial.Mat3{})
}

// PointMassInertiaAt returns the spatial inertia of a point mass located
// at com relative to its own body frame's origin.
func PointMassInertiaAt(mass float64, com r3.Vector) spatial.SpatialInertia {
	x, y, z := com.X, com.Y, com.Z
	j := spatial.Mat3{
		{mass * (y*y + z*z), -mass * x * y, -mass * x * z},
		{-mass * x * y, mass * (x*x + z*z), -mass * y * z},
		{-mass * x * z, -mass * y * z, mass * (x*x + y*y)},
	}
	return spatial.NewSpatialInertia(spatial.Frame(0), mass, com, j)
}

// BoxInertia returns the spatial inertia of a solid box of the given
// mass and half-extents, about its own center.
func BoxInertia(mass float64, halfExtents r3.Vector) spatial.SpatialInertia {
	hx, hy, hz := halfExtents.X, halfExtents.Y, halfExtents.Z
	j := spatial.Mat3{
		{mass / 3 * (hy*hy + hz*hz), 0, 0},
		{0, mass / 3 * (hx*hx + hz*hz), 0},
		{0, 0, mass / 3 * (hx*hx + hy*hy)},
	}
	return spatial.NewSpatialInertia(spatial.Frame(0), mass, r3.Vector{}, j)
}

// Gravity is standard Earth surface gravity, pointing along -Z.
var Gravity = r3.Vector{X: 0, Y: 0, Z: -9.81}

// Pendulum builds a single revolute pendulum: a point mass at distance
// length along X from the joint axis, rotating about axis, attached to
// a gravity-affected root.
func Pendulum(axis r3.Vector, mass, length float64) (*mechanism.Mechanism, *mechanism.RigidBody) {
	root := mechanism.NewRootBody("root")
	m := mechanism.New(root, Gravity)

	link := mechanism.NewRigidBody("link", PointMassInertiaAt(mass, r3.Vector{X: length}))
	j := mechanism.NewJoint("pivot", spatial.NewFrame(), link.Default, joint.NewRevolute(axis))
	if err := m.Attach(root, j, spatial.IdentityTransform3D(j.FrameBefore), link); err != nil {
		panic(err)
	}
	return m, link
}

// FloatingBody builds a single free-floating body with the given mass,
// attached to the root by a Floating joint.
func FloatingBody(mass float64) (*mechanism.Mechanism, *mechanism.RigidBody) {
	root := mechanism.NewRootBody("root")
	m := mechanism.New(root, Gravity)

	body := mechanism.NewRigidBody("body", BoxInertia(mass, r3.Vector{X: 0.1, Y: 0.1, Z: 0.1}))
	j := mechanism.NewJoint("float", spatial.NewFrame(), body.Default, joint.NewFloating())
	if err := m.Attach(root, j, spatial.IdentityTransform3D(j.FrameBefore), body); err != nil {
		panic(err)
	}
	return m, body
}

// TwoLinkArm builds a planar two-revolute-joint arm, both axes along Z,
// each link a unit point mass one meter from its own joint.
func TwoLinkArm() (m *mechanism.Mechanism, link1, link2 *mechanism.RigidBody) {
	root := mechanism.NewRootBody("root")
	m = mechanism.New(root, Gravity)

	link1 = mechanism.NewRigidBody("link1", PointMassInertiaAt(1, r3.Vector{X: 1}))
	j1 := mechanism.NewJoint("joint1", spatial.NewFrame(), link1.Default, joint.NewRevolute(r3.Vector{Z: 1}))
	if err := m.Attach(root, j1, spatial.IdentityTransform3D(j1.FrameBefore), link1); err != nil {
		panic(err)
	}

	link2 = mechanism.NewRigidBody("link2", PointMassInertiaAt(1, r3.Vector{X: 1}))
	j2 := mechanism.NewJoint("joint2", spatial.NewFrame(), link2.Default, joint.NewRevolute(r3.Vector{Z: 1}))
	if err := m.Attach(link1, j2, spatial.NewTransform3D(j2.FrameBefore, link1.Default, spatial.IdentityRotation(), r3.Vector{X: 1}), link2); err != nil {
		panic(err)
	}
	return m, link1, link2
}

// PrismaticRevoluteChain builds a two-body chain: a revolute joint about
// Z followed by a prismatic joint along X.
func PrismaticRevoluteChain() (m *mechanism.Mechanism, link1, link2 *mechanism.RigidBody) {
	root := mechanism.NewRootBody("root")
	m = mechanism.New(root, Gravity)

	link1 = mechanism.NewRigidBody("link1", PointMassInertiaAt(2, r3.Vector{Y: 0.5}))
	j1 := mechanism.NewJoint("revolute", spatial.NewFrame(), link1.Default, joint.NewRevolute(r3.Vector{Z: 1}))
	if err := m.Attach(root, j1, spatial.IdentityTransform3D(j1.FrameBefore), link1); err != nil {
		panic(err)
	}

	link2 = mechanism.NewRigidBody("link2", PointMassInertia(1))
	j2 := mechanism.NewJoint("prismatic", spatial.NewFrame(), link2.Default, joint.NewPrismatic(r3.Vector{X: 1}))
	link1.AddFrame(j2.FrameBefore, spatial.IdentityTransform3D(j2.FrameBefore))
	if err := m.Attach(link1, j2, spatial.IdentityTransform3D(j2.FrameBefore), link2); err != nil {
		panic(err)
	}
	return m, link1, link2
}

// FourBarLoop builds a planar four-bar linkage: three tree revolute
// joints forming an open chain root->b1->b2->b3, closed by a fourth
// non-tree (loop) revolute joint connecting b3 back to root.
func FourBarLoop() (m *mechanism.Mechanism, b1, b2, b3 *mechanism.RigidBody) {
	root := mechanism.NewRootBody("root")
	m = mechanism.New(root, Gravity)
	axis := r3.Vector{Z: 1}

	b1 = mechanism.NewRigidBody("b1", PointMassInertiaAt(1, r3.Vector{Y: 0.5}))
	j1 := mechanism.NewJoint("j1", spatial.NewFrame(), b1.Default, joint.NewRevolute(axis))
	if err := m.Attach(root, j1, spatial.IdentityTransform3D(j1.FrameBefore), b1); err != nil {
		panic(err)
	}

	b2 = mechanism.NewRigidBody("b2", PointMassInertiaAt(1, r3.Vector{Y: 0.5}))
	j2 := mechanism.NewJoint("j2", spatial.NewFrame(), b2.Default, joint.NewRevolute(axis))
	if err := m.Attach(b1, j2, spatial.NewTransform3D(j2.FrameBefore, b1.Default, spatial.IdentityRotation(), r3.Vector{X: 1}), b2); err != nil {
		panic(err)
	}

	b3 = mechanism.NewRigidBody("b3", PointMassInertiaAt(1, r3.Vector{Y: 0.5}))
	j3 := mechanism.NewJoint("j3", spatial.NewFrame(), b3.Default, joint.NewRevolute(axis))
	if err := m.Attach(b2, j3, spatial.NewTransform3D(j3.FrameBefore, b2.Default, spatial.IdentityRotation(), r3.Vector{X: 1}), b3); err != nil {
		panic(err)
	}

	// The loop joint's frame_before/frame_after coincide with its
	// predecessor/successor bodies' own Default frames, matching the
	// assumption dynamics.ConstraintJacobianAndBiasInto relies on (see
	// its doc comment).
	loopJoint := mechanism.NewJoint("loop", b3.Default, root.Default, joint.NewRevolute(axis))
	if err := m.AddLoopJoint(b3, root, loopJoint); err != nil {
		panic(err)
	}
	return m, b1, b2, b3
}
