package spatial

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// GeometricJacobian is the 3xn angular and 3xn linear column blocks
// mapping a path's velocity subvector to the twist of Body w.r.t. Base,
// expressed in Frame.
type GeometricJacobian struct {
	Body, Base, Frame Frame
	Ang, Lin          *mat.Dense // each 3 x n
}

// NewGeometricJacobian allocates a zeroed n-column Jacobian. Callers on
// the hot path should instead reuse one across calls and pass it to the
// in-place algorithm forms.
func NewGeometricJacobian(body, base, frame Frame, n int) *GeometricJacobian {
	return &GeometricJacobian{
		Body: body, Base: base, Frame: frame,
		Ang: mat.NewDense(3, n, nil),
		Lin: mat.NewDense(3, n, nil),
	}
}

// NumVelocities returns the number of columns.
func (g *GeometricJacobian) NumVelocities() int {
	_, n := g.Ang.Dims()
	return n
}

// SetColumn writes twist's angular/linear parts into column j, negating
// first if negate is true — a body-to-body path edge traversed upward
// contributes its joint's motion subspace with a flipped sign.
func (g *GeometricJacobian) SetColumn(j int, twist Twist, negate bool) {
	ang, lin := twist.Ang, twist.Lin
	if negate {
		ang, lin = ang.Mul(-1), lin.Mul(-1)
	}
	g.Ang.SetCol(j, []float64{ang.X, ang.Y, ang.Z})
	g.Lin.SetCol(j, []float64{lin.X, lin.Y, lin.Z})
}

// Column reconstructs column j as a Twist.
func (g *GeometricJacobian) Column(j int) Twist {
	return Twist{
		Body: g.Body, Base: g.Base, Frame: g.Frame,
		Ang: r3.Vector{X: g.Ang.At(0, j), Y: g.Ang.At(1, j), Z: g.Ang.At(2, j)},
		Lin: r3.Vector{X: g.Lin.At(0, j), Y: g.Lin.At(1, j), Z: g.Lin.At(2, j)},
	}
}

// Mul contracts the Jacobian against a velocity subvector v (length n),
// returning the twist of Body w.r.t. Base in Frame.
func (g *GeometricJacobian) Mul(v []float64) Twist {
	n := g.NumVelocities()
	if len(v) != n {
		panic("spatial: GeometricJacobian.Mul: length mismatch")
	}
	vVec := mat.NewVecDense(n, v)
	var ang, lin mat.VecDense
	ang.MulVec(g.Ang, vVec)
	lin.MulVec(g.Lin, vVec)
	return Twist{
		Body: g.Body, Base: g.Base, Frame: g.Frame,
		Ang: r3.Vector{X: ang.AtVec(0), Y: ang.AtVec(1), Z: ang.AtVec(2)},
		Lin: r3.Vector{X: lin.AtVec(0), Y: lin.AtVec(1), Z: lin.AtVec(2)},
	}
}

// Transform transforms every column of g by T (g.Frame must equal T.From).
func (g *GeometricJacobian) Transform(T Transform3D) *GeometricJacobian {
	mustMatch("GeometricJacobian.Transform", g.Frame, T.From)
	out := NewGeometricJacobian(g.Body, g.Base, T.To, g.NumVelocities())
	for j := 0; j < g.NumVelocities(); j++ {
		out.SetColumn(j, g.Column(j).Transform(T), false)
	}
	return out
}

// MomentumMatrix is a GeometricJacobian-shaped object whose columns are
// per-velocity momentum contributions (wrench-valued) rather than
// twists; A(q)·v yields the mechanism's total momentum.
type MomentumMatrix struct {
	Frame    Frame
	Ang, Lin *mat.Dense // each 3 x n
}

// NewMomentumMatrix allocates a zeroed n-column momentum matrix.
func NewMomentumMatrix(frame Frame, n int) *MomentumMatrix {
	return &MomentumMatrix{Frame: frame, Ang: mat.NewDense(3, n, nil), Lin: mat.NewDense(3, n, nil)}
}

// SetColumn writes a wrench (momentum contribution) into column j.
func (m *MomentumMatrix) SetColumn(j int, w Wrench) {
	m.Ang.SetCol(j, []float64{w.Ang.X, w.Ang.Y, w.Ang.Z})
	m.Lin.SetCol(j, []float64{w.Lin.X, w.Lin.Y, w.Lin.Z})
}

// Mul contracts the momentum matrix against a velocity vector v, giving
// the total momentum wrench.
func (m *MomentumMatrix) Mul(v []float64) Wrench {
	_, n := m.Ang.Dims()
	vVec := mat.NewVecDense(n, v)
	var ang, lin mat.VecDense
	ang.MulVec(m.Ang, vVec)
	lin.MulVec(m.Lin, vVec)
	return Wrench{
		Frame: m.Frame,
		Ang:   r3.Vector{X: ang.AtVec(0), Y: ang.AtVec(1), Z: ang.AtVec(2)},
		Lin:   r3.Vector{X: lin.AtVec(0), Y: lin.AtVec(1), Z: lin.AtVec(2)},
	}
}
