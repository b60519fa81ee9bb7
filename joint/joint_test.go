package joint

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/rigidbodydynamics/spatial"
	"go.viam.com/test"
)

func allKinds() []Joint {
	return []Joint{
		NewFixed(),
		NewRevolute(r3.Vector{Z: 1}),
		NewPrismatic(r3.Vector{X: 1}),
		NewFloating(),
	}
}

func TestVQDotRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, j := range allKinds() {
		q := j.RandomConfiguration(rng)
		v := make([]float64, j.NV())
		for i := range v {
			v[i] = rng.NormFloat64()
		}
		qdot := j.QDot(q, v)
		back := j.VFromQDot(q, qdot)
		test.That(t, len(back), test.ShouldEqual, len(v))
		for i := range v {
			test.That(t, back[i], test.ShouldAlmostEqual, v[i], 1e-9)
		}
	}
}

func TestFloatingQuaternionNormPreservedUnderIntegration(t *testing.T) {
	f := NewFloating()
	q := f.ZeroConfiguration()
	v := []float64{0.1, -0.2, 0.3, 1, 0, 0}
	dt := 0.001
	for i := 0; i < 1000; i++ {
		qdot := f.QDot(q, v)
		for k := range q {
			q[k] += qdot[k] * dt
		}
		norm := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
		for k := 0; k < 4; k++ {
			q[k] /= norm
		}
	}
	norm := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	test.That(t, norm, test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestLocalGlobalCoordinatesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, j := range allKinds() {
		q0 := j.RandomConfiguration(rng)
		q := j.RandomConfiguration(rng)
		v := make([]float64, j.NV())
		for i := range v {
			v[i] = rng.NormFloat64()
		}
		phi, _ := j.LocalCoordinates(q0, q, v)
		back := j.GlobalCoordinates(q0, phi)
		test.That(t, len(back), test.ShouldEqual, len(q))
		for i := range q {
			test.That(t, back[i], test.ShouldAlmostEqual, q[i], 1e-6)
		}
	}
}

func TestFlipDirectionNegatesAxis(t *testing.T) {
	r := NewRevolute(r3.Vector{X: 1})
	flipped := r.FlipDirection().(Revolute)
	test.That(t, flipped.Axis.X, test.ShouldAlmostEqual, -1.0, 1e-9)

	p := NewPrismatic(r3.Vector{Y: 1})
	flippedP := p.FlipDirection().(Prismatic)
	test.That(t, flippedP.Axis.Y, test.ShouldAlmostEqual, -1.0, 1e-9)

	fx := NewFixed()
	test.That(t, fx.FlipDirection(), test.ShouldResemble, fx)
}

func TestDimensionsMatchSpecTable(t *testing.T) {
	cases := []struct {
		j      Joint
		nq, nv int
	}{
		{NewFixed(), 0, 0},
		{NewRevolute(r3.Vector{Z: 1}), 1, 1},
		{NewPrismatic(r3.Vector{X: 1}), 1, 1},
		{NewFloating(), 7, 6},
	}
	for _, c := range cases {
		test.That(t, c.j.NQ(), test.ShouldEqual, c.nq)
		test.That(t, c.j.NV(), test.ShouldEqual, c.nv)
		test.That(t, len(c.j.ZeroConfiguration()), test.ShouldEqual, c.nq)
	}
}

func TestRevoluteTorqueFromWrenchProjectsOntoAxis(t *testing.T) {
	r := NewRevolute(r3.Vector{Z: 1})
	after := spatial.NewFrame()
	w := spatial.Wrench{Frame: after, Ang: r3.Vector{X: 1, Y: 1, Z: 5}}
	tau := r.TorqueFromWrench(w, after)
	test.That(t, len(tau), test.ShouldEqual, 1)
	test.That(t, tau[0], test.ShouldAlmostEqual, 5.0, 1e-9)
}
