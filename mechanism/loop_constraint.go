package mechanism

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/rigidbodydynamics/spatial"
)

func dot6(a, b [6]float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func twistToArray6(t spatial.Twist) [6]float64 {
	return [6]float64{t.Ang.X, t.Ang.Y, t.Ang.Z, t.Lin.X, t.Lin.Y, t.Lin.Z}
}

// loopConstraintSubspace returns the orthonormal complement, in the
// standard 6-vector (ang;lin) basis, of j's motion subspace, expressed as
// Wrench-valued columns in frame: the directions a loop joint can carry
// constraint force/torque in, since anything in the motion subspace
// itself is a free degree of freedom rather than a constraint. Every
// joint kind eligible to be a loop joint has a motion subspace constant
// in q (Joint's doc comment), so this only needs j's kind and can be
// computed once and reused for the mechanism's lifetime rather than
// re-derived per configuration.
func loopConstraintSubspace(j *Joint, frame spatial.Frame) []spatial.Wrench {
	local := j.Kind.MotionSubspace(j.FrameBefore, j.FrameAfter)
	cols := make([][6]float64, len(local))
	for i, t := range local {
		cols[i] = twistToArray6(t)
	}

	standardBasis := [6][6]float64{
		{1, 0, 0, 0, 0, 0}, {0, 1, 0, 0, 0, 0}, {0, 0, 1, 0, 0, 0},
		{0, 0, 0, 1, 0, 0}, {0, 0, 0, 0, 1, 0}, {0, 0, 0, 0, 0, 1},
	}

	var complement [][6]float64
	for _, e := range standardBasis {
		v := e
		for _, c := range cols {
			d, nrm := dot6(v, c), dot6(c, c)
			if nrm < 1e-12 {
				continue
			}
			for i := range v {
				v[i] -= d / nrm * c[i]
			}
		}
		for _, done := range complement {
			d := dot6(v, done)
			for i := range v {
				v[i] -= d * done[i]
			}
		}
		norm := math.Sqrt(dot6(v, v))
		if norm < 1e-9 {
			continue
		}
		for i := range v {
			v[i] /= norm
		}
		complement = append(complement, v)
	}

	out := make([]spatial.Wrench, len(complement))
	for i, v := range complement {
		out[i] = spatial.Wrench{
			Frame: frame,
			Ang:   r3.Vector{X: v[0], Y: v[1], Z: v[2]},
			Lin:   r3.Vector{X: v[3], Y: v[4], Z: v[5]},
		}
	}
	return out
}
