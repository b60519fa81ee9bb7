// Package spatial implements the Featherstone-style spatial-algebra
// layer of the dynamics core: frames, rigid transforms, twists, spatial
// accelerations, wrenches, spatial inertias and the geometric-Jacobian /
// momentum-matrix column blocks built from them.
//
// Every quantity carries the frame(s) it is expressed in; combining two
// quantities whose frames don't match is a programming error, checked by
// mustMatch when the checkFrames constant is set. These are design-level
// preconditions, not recoverable
// runtime errors, so the check is compiled out in release builds (see
// checks_release.go).
package spatial

import "sync/atomic"

// Frame is an opaque, comparable identity for a coordinate frame. Frame
// values are generated by NewFrame; equality is the only operation a
// caller ever needs to perform on one.
type Frame uint64

var frameCounter uint64

// NewFrame mints a fresh, globally unique frame identity.
func NewFrame() Frame {
	return Frame(atomic.AddUint64(&frameCounter, 1))
}

// World is the frame conventionally used as the root of a mechanism's
// kinematic tree. It is a Frame like any other; nothing distinguishes it
// except that callers choose to treat it as the root.
var World = NewFrame()
