package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Rotation is a unit quaternion orientation, stored as gonum's
// quat.Number, which is also the natural storage for the floating
// joint's configuration quaternion q = (w,x,y,z) in its 7-vector
// (w,x,y,z, px,py,pz).
type Rotation = quat.Number

// IdentityRotation is the zero-angle orientation.
func IdentityRotation() Rotation {
	return quat.Number{Real: 1}
}

// RotationFromAxisAngle builds a unit quaternion rotating by angle
// radians about axis (need not be pre-normalized).
func RotationFromAxisAngle(axis r3.Vector, angle float64) Rotation {
	n := axis.Norm()
	if n == 0 {
		return IdentityRotation()
	}
	mq := mgl64.QuatRotate(angle, toMgl64Vec3(axis.Mul(1/n)))
	return fromMgl64Quat(mq)
}

// NormalizeRotation returns q scaled to unit norm.
func NormalizeRotation(q Rotation) Rotation {
	n := quat.Abs(q)
	if n == 0 {
		return IdentityRotation()
	}
	return quat.Scale(1/n, q)
}

// ComposeRotation returns the rotation equivalent to applying b then a
// (a∘b, consistent with Transform3D.Compose below).
func ComposeRotation(a, b Rotation) Rotation {
	return quat.Mul(a, b)
}

// InvRotation returns the inverse (= conjugate, for a unit quaternion) of q.
func InvRotation(q Rotation) Rotation {
	return NormalizeRotation(quat.Conj(q))
}

// RotateVector applies q to v.
func RotateVector(q Rotation, v r3.Vector) r3.Vector {
	mq := toMgl64Quat(q)
	return fromMgl64Vec3(mq.Rotate(toMgl64Vec3(v)))
}

func toMgl64Vec3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl64Vec3(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

func toMgl64Quat(q Rotation) mgl64.Quat {
	return mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}
}

func fromMgl64Quat(q mgl64.Quat) Rotation {
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}

// Mat3 is a dense 3x3 matrix, row-major. It backs the moment-of-inertia
// tensor J and the rotation-matrix form of a Rotation used on the hot
// path of spatial-inertia congruence transforms, where converting a
// quaternion to a matrix once and reusing it beats re-deriving it per
// vector.
type Mat3 [3][3]float64

// IdentityMat3 is the 3x3 identity matrix.
func IdentityMat3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// RotationMatrix converts q to its equivalent 3x3 rotation matrix.
func RotationMatrix(q Rotation) Mat3 {
	q = NormalizeRotation(q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return Mat3{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}
}

// MulVec applies m to v.
func (m Mat3) MulVec(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Mul returns m*n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += m[i][k] * n[k][j]
			}
			out[i][j] = s
		}
	}
	return out
}

// Add returns m+n.
func (m Mat3) Add(n Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] + n[i][j]
		}
	}
	return out
}

// Sub returns m-n.
func (m Mat3) Sub(n Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] - n[i][j]
		}
	}
	return out
}

// Scale returns s*m.
func (m Mat3) Scale(s float64) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = s * m[i][j]
		}
	}
	return out
}

// Transpose returns m^T.
func (m Mat3) Transpose() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Skew returns the 3x3 skew-symmetric matrix hat(v) such that
// hat(v)*x == v.Cross(x) for all x.
func Skew(v r3.Vector) Mat3 {
	return Mat3{
		{0, -v.Z, v.Y},
		{v.Z, 0, -v.X},
		{-v.Y, v.X, 0},
	}
}

// Congruence returns R*m*R^T.
func Congruence(r Mat3, m Mat3) Mat3 {
	return r.Mul(m).Mul(r.Transpose())
}

// epsilon bounds the small-angle series used by SE3 exp/log below.
const epsilon = 1e-9

func clampAbs(x, lo float64) float64 {
	if math.Abs(x) < lo {
		return lo
	}
	return x
}
