package spatial

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestTransformComposeInverse(t *testing.T) {
	a := NewFrame()
	b := NewFrame()
	c := NewFrame()

	ab := NewTransform3D(a, b, RotationFromAxisAngle(r3.Vector{Z: 1}, math.Pi/2), r3.Vector{X: 1})
	bc := NewTransform3D(b, c, RotationFromAxisAngle(r3.Vector{X: 1}, math.Pi/4), r3.Vector{Y: 2})

	ac := Compose(bc, ab)
	test.That(t, ac.From, test.ShouldEqual, a)
	test.That(t, ac.To, test.ShouldEqual, c)

	// Composing a transform with its own inverse yields identity.
	roundTrip := Compose(ab.Inv(), ab)
	test.That(t, roundTrip.From, test.ShouldEqual, a)
	test.That(t, roundTrip.To, test.ShouldEqual, a)
	p := r3.Vector{X: 3, Y: -2, Z: 5}
	test.That(t, roundTrip.TransformPoint(p).X, test.ShouldAlmostEqual, p.X, 1e-9)
	test.That(t, roundTrip.TransformPoint(p).Y, test.ShouldAlmostEqual, p.Y, 1e-9)
	test.That(t, roundTrip.TransformPoint(p).Z, test.ShouldAlmostEqual, p.Z, 1e-9)
}

func TestTwistTransformPreservesFrameTags(t *testing.T) {
	body, base, from, to := NewFrame(), NewFrame(), NewFrame(), NewFrame()
	tw := Twist{Body: body, Base: base, Frame: from, Ang: r3.Vector{Z: 1}, Lin: r3.Vector{X: 2}}
	T := NewTransform3D(from, to, RotationFromAxisAngle(r3.Vector{Z: 1}, math.Pi/2), r3.Vector{X: 1})

	out := tw.Transform(T)
	test.That(t, out.Body, test.ShouldEqual, body)
	test.That(t, out.Base, test.ShouldEqual, base)
	test.That(t, out.Frame, test.ShouldEqual, to)
}

func TestFrameMismatchPanics(t *testing.T) {
	defer func() {
		r := recover()
		test.That(t, r, test.ShouldNotBeNil)
	}()
	a, b := NewFrame(), NewFrame()
	t1 := Twist{Body: a, Base: a, Frame: a}
	t2 := Twist{Body: b, Base: b, Frame: b}
	t1.Add(t2)
}

func TestSpatialInertiaParallelAxis(t *testing.T) {
	// A unit point mass at the origin of frame f (zero inertia about its
	// own COM) transformed into a frame g one meter away picks up
	// exactly m*d^2 = 1 on the two axes perpendicular to the offset, per
	// the parallel axis theorem.
	f := NewFrame()
	si := NewSpatialInertia(f, 1, r3.Vector{}, Mat3{})

	g := NewFrame()
	// T maps points expressed in f into g: p_g = p_f + (1,0,0), i.e. f's
	// origin sits at (1,0,0) in g.
	T := NewTransform3D(f, g, IdentityRotation(), r3.Vector{X: 1})
	moved := si.Transform(T)

	test.That(t, moved.M, test.ShouldAlmostEqual, 1.0, 1e-9)
	test.That(t, moved.J[0][0], test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, moved.J[1][1], test.ShouldAlmostEqual, 1.0, 1e-9)
	test.That(t, moved.J[2][2], test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestNewtonEulerZeroVelocityIsPureForce(t *testing.T) {
	f := NewFrame()
	si := NewSpatialInertia(f, 2, r3.Vector{}, Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	accel := SpatialAcceleration{Body: f, Base: f, Frame: f, Lin: r3.Vector{Z: -9.81}}
	zeroVel := Twist{Body: f, Base: f, Frame: f}

	wrench := si.NewtonEuler(accel, zeroVel)
	test.That(t, wrench.Lin.Z, test.ShouldAlmostEqual, 2*-9.81, 1e-9)
	test.That(t, wrench.Ang.Norm(), test.ShouldAlmostEqual, 0, 1e-9)
}

func TestSE3LogExpRoundTrip(t *testing.T) {
	f := NewFrame()
	rot := RotationFromAxisAngle(r3.Vector{X: 1, Y: 1}, 0.6)
	trans := r3.Vector{X: 0.5, Y: -0.2, Z: 1.3}
	T := NewTransform3D(f, f, rot, trans)

	phi := Log(T)
	back := Exp(f, phi)

	test.That(t, back.Trans.X, test.ShouldAlmostEqual, T.Trans.X, 1e-6)
	test.That(t, back.Trans.Y, test.ShouldAlmostEqual, T.Trans.Y, 1e-6)
	test.That(t, back.Trans.Z, test.ShouldAlmostEqual, T.Trans.Z, 1e-6)
	test.That(t, math.Abs(back.Rot.Real), test.ShouldAlmostEqual, math.Abs(T.Rot.Real), 1e-6)
}

func TestSE3LogOfIdentityIsZero(t *testing.T) {
	f := NewFrame()
	phi := Log(IdentityTransform3D(f))
	test.That(t, phi.Ang.Norm(), test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, phi.Lin.Norm(), test.ShouldAlmostEqual, 0, 1e-12)
}

func TestGeometricJacobianMulMatchesColumns(t *testing.T) {
	body, base, frame := NewFrame(), NewFrame(), NewFrame()
	g := NewGeometricJacobian(body, base, frame, 2)
	g.SetColumn(0, Twist{Body: body, Base: base, Frame: frame, Ang: r3.Vector{Z: 1}}, false)
	g.SetColumn(1, Twist{Body: body, Base: base, Frame: frame, Lin: r3.Vector{X: 1}}, false)

	out := g.Mul([]float64{2, 3})
	test.That(t, out.Ang.Z, test.ShouldAlmostEqual, 2, 1e-9)
	test.That(t, out.Lin.X, test.ShouldAlmostEqual, 3, 1e-9)
}

func TestSkewCrossEquivalence(t *testing.T) {
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	x := r3.Vector{X: 4, Y: -1, Z: 2}
	viaSkew := Skew(v).MulVec(x)
	viaCross := v.Cross(x)
	test.That(t, viaSkew.X, test.ShouldAlmostEqual, viaCross.X, 1e-9)
	test.That(t, viaSkew.Y, test.ShouldAlmostEqual, viaCross.Y, 1e-9)
	test.That(t, viaSkew.Z, test.ShouldAlmostEqual, viaCross.Z, 1e-9)
}
