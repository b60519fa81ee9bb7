package spatial

import "github.com/golang/geo/r3"

// Wrench is the force-space dual of a twist: (τ, f) expressed in Frame.
type Wrench struct {
	Frame    Frame
	Ang, Lin r3.Vector // Ang is torque, Lin is force
}

// ZeroWrench returns the zero wrench in frame.
func ZeroWrench(frame Frame) Wrench {
	return Wrench{Frame: frame}
}

// NewForceWrench builds a wrench applying pure force f at point p
// (expressed in frame), i.e. with torque p×f about the frame origin.
func NewForceWrench(frame Frame, p, f r3.Vector) Wrench {
	return Wrench{Frame: frame, Ang: p.Cross(f), Lin: f}
}

// Add sums two wrenches in the same frame.
func (w Wrench) Add(other Wrench) Wrench {
	mustMatch("Wrench.Add", w.Frame, other.Frame)
	return Wrench{Frame: w.Frame, Ang: w.Ang.Add(other.Ang), Lin: w.Lin.Add(other.Lin)}
}

// Sub subtracts other from w, both in the same frame.
func (w Wrench) Sub(other Wrench) Wrench {
	mustMatch("Wrench.Sub", w.Frame, other.Frame)
	return Wrench{Frame: w.Frame, Ang: w.Ang.Sub(other.Ang), Lin: w.Lin.Sub(other.Lin)}
}

// Transform re-expresses w (expressed in T.From) in T.To. Wrenches
// transform coadjointly: the force rotates like a vector, and the torque
// picks up a lever-arm cross term from the translation.
func (w Wrench) Transform(T Transform3D) Wrench {
	mustMatch("Wrench.Transform", w.Frame, T.From)
	lin := T.TransformVector(w.Lin)
	ang := T.TransformVector(w.Ang).Add(T.Trans.Cross(lin))
	return Wrench{Frame: T.To, Ang: ang, Lin: lin}
}

// Dot returns the power τ·ω + f·v delivered by w against twist t (both
// must share a frame); used to project a joint wrench onto a motion
// subspace column to recover a scalar joint torque.
func (w Wrench) Dot(t Twist) float64 {
	mustMatch("Wrench.Dot", w.Frame, t.Frame)
	return w.Ang.Dot(t.Ang) + w.Lin.Dot(t.Lin)
}
