package mechanism

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"go.viam.com/rigidbodydynamics/joint"
	"go.viam.com/rigidbodydynamics/spatial"
)

// edge is a tree joint together with the topological bookkeeping the
// mechanism needs: the body it terminates at, that body's parent, and
// its slice of the flattened q/v vectors.
type edge struct {
	body    *RigidBody
	parent  *RigidBody
	joint   *Joint
	qOffset int
	vOffset int
}

// LoopJoint is a non-tree constraint joint connecting two bodies already
// present in the tree. Predecessor/Successor are non-owning references:
// the joint does not change tree topology.
type LoopJoint struct {
	Predecessor *RigidBody
	Successor   *RigidBody
	Joint       *Joint
}

// Mechanism is a tree of rigid bodies connected by tree joints, plus
// optional loop joints, a gravity vector, and a topologically sorted
// traversal order. It is shared-immutable once built: every mutating
// method here is a construction-time operation, never invoked
// concurrently with a MechanismState reading it.
type Mechanism struct {
	gravity r3.Vector
	edges   []edge // edges[0] is the root: body set, parent/joint nil
	index   map[*RigidBody]int
	loops   []LoopJoint
	nq, nv  int
}

// New constructs a mechanism with root as its sole body.
func New(root *RigidBody, gravity r3.Vector) *Mechanism {
	m := &Mechanism{
		gravity: gravity,
		edges:   []edge{{body: root}},
		index:   map[*RigidBody]int{root: 0},
	}
	return m
}

// Gravity returns the mechanism's gravity vector, expressed in root frame.
func (m *Mechanism) Gravity() r3.Vector { return m.gravity }

// NQ returns the total length of the flattened configuration vector.
func (m *Mechanism) NQ() int { return m.nq }

// NV returns the total length of the flattened velocity vector.
func (m *Mechanism) NV() int { return m.nv }

// NumBodies returns the number of bodies, including the root.
func (m *Mechanism) NumBodies() int { return len(m.edges) }

// Root returns the mechanism's root body.
func (m *Mechanism) Root() *RigidBody { return m.edges[0].body }

// Body returns the body at topological index i: body indices are a
// body's position in the mechanism's topological traversal order.
func (m *Mechanism) Body(i int) *RigidBody { return m.edges[i].body }

// BodyIndex returns b's topological index.
func (m *Mechanism) BodyIndex(b *RigidBody) (int, bool) {
	i, ok := m.index[b]
	return i, ok
}

// Parent returns b's parent body, or (nil, false) if b is the root.
func (m *Mechanism) Parent(b *RigidBody) (*RigidBody, bool) {
	i, ok := m.index[b]
	if !ok || i == 0 {
		return nil, false
	}
	return m.edges[i].parent, true
}

// ParentJoint returns the tree joint connecting b to its parent, or
// (nil, false) if b is the root.
func (m *Mechanism) ParentJoint(b *RigidBody) (*Joint, bool) {
	i, ok := m.index[b]
	if !ok || i == 0 {
		return nil, false
	}
	return m.edges[i].joint, true
}

// QRange returns b's slice of the flattened configuration vector.
func (m *Mechanism) QRange(b *RigidBody) (offset, n int) {
	i, ok := m.index[b]
	if !ok || i == 0 {
		return 0, 0
	}
	e := m.edges[i]
	return e.qOffset, e.joint.NQ()
}

// VRange returns b's slice of the flattened velocity vector.
func (m *Mechanism) VRange(b *RigidBody) (offset, n int) {
	i, ok := m.index[b]
	if !ok || i == 0 {
		return 0, 0
	}
	e := m.edges[i]
	return e.vOffset, e.joint.NV()
}

// LoopJoints returns the mechanism's non-tree joints.
func (m *Mechanism) LoopJoints() []LoopJoint { return m.loops }

// String renders a human-readable table of the mechanism's bodies, their
// parent joints and q/v ranges, plus any loop joints, matching the
// teacher's worldstate.go debug-dump idiom (go-pretty table).
func (m *Mechanism) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Body", "Parent Joint", "Kind", "q range", "v range"})
	t.AppendRow(table.Row{m.Root().String(), "-", "-", "-", "-"})
	for i := 1; i < len(m.edges); i++ {
		e := m.edges[i]
		qOff, qN := m.QRange(e.body)
		vOff, vN := m.VRange(e.body)
		t.AppendRow(table.Row{
			e.body.String(), e.joint.Name, e.joint.Kind.Kind().String(),
			fmt.Sprintf("[%d,%d)", qOff, qOff+qN),
			fmt.Sprintf("[%d,%d)", vOff, vOff+vN),
		})
	}
	out := t.Render()
	if len(m.loops) > 0 {
		lt := table.NewWriter()
		lt.AppendHeader(table.Row{"Loop Joint", "Predecessor", "Successor"})
		for _, l := range m.loops {
			lt.AppendRow(table.Row{l.Joint.Name, l.Predecessor.String(), l.Successor.String()})
		}
		out += "\n" + lt.Render()
	}
	return out
}

// Attach connects child to parent via tree joint j. jointToParent places
// j.FrameBefore relative to parent's default frame. j.FrameAfter must
// equal child's Default frame; extraChildFrames optionally registers
// further body-fixed frames on child relative to that default, letting a
// caller register as many extra frames as it needs in one call. Only
// jointToParent's rotation and translation are used: the registration is
// stored on parent with From=j.FrameBefore and To=parent.Default.
func (m *Mechanism) Attach(
	parent *RigidBody,
	j *Joint,
	jointToParent spatial.Transform3D,
	child *RigidBody,
	extraChildFrames ...FrameDef,
) error {
	if _, ok := m.index[parent]; !ok {
		return errors.Errorf("mechanism.Attach: parent %q is not in this mechanism", parent.Name)
	}
	if _, exists := m.index[child]; exists {
		return errors.Errorf("mechanism.Attach: child %q is already attached", child.Name)
	}
	if j.FrameAfter != child.Default {
		return errors.Errorf("mechanism.Attach: joint %q frame_after must equal child %q's default frame", j.Name, child.Name)
	}

	parent.AddFrame(j.FrameBefore, spatial.Transform3D{From: j.FrameBefore, To: parent.Default, Rot: jointToParent.Rot, Trans: jointToParent.Trans})
	for _, fd := range extraChildFrames {
		child.AddFrame(fd.Frame, fd.Transform)
	}

	qOff, vOff := m.nq, m.nv
	m.edges = append(m.edges, edge{body: child, parent: parent, joint: j, qOffset: qOff, vOffset: vOff})
	m.index[child] = len(m.edges) - 1
	m.nq += j.NQ()
	m.nv += j.NV()
	return nil
}

// FrameDef is a body-fixed frame definition: Frame, and its transform to
// the owning body's Default frame.
type FrameDef struct {
	Frame     spatial.Frame
	Transform spatial.Transform3D
}

// AddLoopJoint registers a non-tree constraint joint between two bodies
// already present in the tree; both endpoints must already be attached.
func (m *Mechanism) AddLoopJoint(predecessor, successor *RigidBody, j *Joint) error {
	if _, ok := m.index[predecessor]; !ok {
		return errors.Errorf("mechanism.AddLoopJoint: predecessor %q is not in this mechanism", predecessor.Name)
	}
	if _, ok := m.index[successor]; !ok {
		return errors.Errorf("mechanism.AddLoopJoint: successor %q is not in this mechanism", successor.Name)
	}
	m.loops = append(m.loops, LoopJoint{Predecessor: predecessor, Successor: successor, Joint: j})
	return nil
}

// AttachSubmechanism grafts sub's bodies onto parent, discarding sub's
// own (massless) root and re-parenting sub's direct children onto
// parent directly. Precondition: sub.Root() is coincident with parent's
// default frame (identity graft) - any extra frames registered on
// sub.Root() besides its own default are carried over onto parent
// as-is.
func (m *Mechanism) AttachSubmechanism(parent *RigidBody, sub *Mechanism) error {
	if _, ok := m.index[parent]; !ok {
		return errors.Errorf("mechanism.AttachSubmechanism: parent %q is not in this mechanism", parent.Name)
	}
	for f, t := range sub.Root().frames {
		if f == sub.Root().Default {
			continue
		}
		parent.AddFrame(f, t)
	}

	remap := map[*RigidBody]*RigidBody{sub.Root(): parent}
	for i := 1; i < len(sub.edges); i++ {
		e := sub.edges[i]
		p := e.parent
		if e.parent == sub.Root() {
			p = parent
		}
		if _, exists := m.index[e.body]; exists {
			return errors.Errorf("mechanism.AttachSubmechanism: body %q already present", e.body.Name)
		}
		qOff, vOff := m.nq, m.nv
		m.edges = append(m.edges, edge{body: e.body, parent: p, joint: e.joint, qOffset: qOff, vOffset: vOff})
		m.index[e.body] = len(m.edges) - 1
		m.nq += e.joint.NQ()
		m.nv += e.joint.NV()
		remap[e.body] = e.body
	}
	for _, l := range sub.loops {
		m.loops = append(m.loops, l)
	}
	return nil
}

// Submechanism extracts the subtree rooted at root as an independent
// Mechanism: a fresh massless root is created and root's subtree is
// attached to it via a Fixed joint at identity, preserving every
// descendant edge's joint and relative transforms unchanged.
func (m *Mechanism) Submechanism(root *RigidBody) (*Mechanism, error) {
	rootIdx, ok := m.index[root]
	if !ok {
		return nil, errors.Errorf("mechanism.Submechanism: %q is not in this mechanism", root.Name)
	}

	sub := New(NewRootBody(root.Name+"_subroot"), m.gravity)
	rootJoint := NewJoint(root.Name+"_graft", sub.Root().Default, root.Default, joint.NewFixed())
	if err := sub.Attach(sub.Root(), rootJoint, spatial.IdentityTransform3D(sub.Root().Default), root); err != nil {
		return nil, err
	}

	inSubtree := map[*RigidBody]bool{root: true}
	for i := rootIdx + 1; i < len(m.edges); i++ {
		e := m.edges[i]
		if !inSubtree[e.parent] {
			continue
		}
		inSubtree[e.body] = true
		qOff, vOff := sub.nq, sub.nv
		sub.edges = append(sub.edges, edge{body: e.body, parent: e.parent, joint: e.joint, qOffset: qOff, vOffset: vOff})
		sub.index[e.body] = len(sub.edges) - 1
		sub.nq += e.joint.NQ()
		sub.nv += e.joint.NV()
	}
	for _, l := range m.loops {
		if inSubtree[l.Predecessor] && inSubtree[l.Successor] {
			sub.loops = append(sub.loops, l)
		}
	}
	return sub, nil
}

// Reattach returns a mechanism equivalent to m but re-rooted at newRoot:
// the tree path from the current root to newRoot is reversed, each
// reversed joint's direction flipped via FlipDirection. Re-rooting
// preserves the mechanism's trajectories up to frame relabeling; a
// cross-mechanism graft onto a foreign parent is a separate operation,
// already covered by AttachSubmechanism.
func (m *Mechanism) Reattach(newRoot *RigidBody) (*Mechanism, error) {
	newRootIdx, ok := m.index[newRoot]
	if !ok {
		return nil, errors.Errorf("mechanism.Reattach: %q is not in this mechanism", newRoot.Name)
	}
	if newRootIdx == 0 {
		return m, nil
	}

	// Walk from newRoot up to the old root, collecting the path of
	// (child, joint) edges to reverse.
	type step struct {
		child *RigidBody
		j     *Joint
	}
	var path []step
	for b := newRoot; ; {
		i := m.index[b]
		if i == 0 {
			break
		}
		e := m.edges[i]
		path = append(path, step{child: e.body, j: e.joint})
		b = e.parent
	}

	out := New(newRoot, m.gravity)
	// path[0] is (newRoot, joint-to-its-old-parent); reversed edges run
	// from newRoot back toward the old root, flipping direction at each
	// step so successor/predecessor swap. This assumes every tree joint
	// was attached with frame_before == parent.Default (true of every
	// attachment this package's own constructors make); a joint
	// attached at a genuinely offset frame_before would need the
	// parent's Default rebased first, which this simplified re-rooting
	// does not do (see DESIGN.md).
	prevBody := newRoot
	for _, s := range path {
		flipped := s.j.Kind.FlipDirection()
		oldParentIdx := m.index[s.child]
		oldParent := m.edges[oldParentIdx].parent
		rev := NewJoint(s.j.Name+"_rev", s.j.FrameAfter, oldParent.Default, flipped)
		if err := out.Attach(prevBody, rev, spatial.IdentityTransform3D(s.j.FrameAfter), oldParent); err != nil {
			return nil, err
		}
		prevBody = oldParent
	}

	inPath := map[*RigidBody]bool{}
	for _, s := range path {
		inPath[s.child] = true
	}
	inPath[m.Root()] = true

	for i := 1; i < len(m.edges); i++ {
		e := m.edges[i]
		if inPath[e.body] {
			continue
		}
		if _, exists := out.index[e.parent]; !exists {
			continue
		}
		if err := out.Attach(e.parent, e.joint, spatial.IdentityTransform3D(e.joint.FrameBefore), e.body); err != nil {
			return nil, err
		}
	}
	for _, l := range m.loops {
		if err := out.AddLoopJoint(l.Predecessor, l.Successor, l.Joint); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RemoveFixedJoints collapses every Fixed-kind tree joint, merging each
// such child into its parent: frames are re-expressed relative to the
// parent's default, inertia is summed via the parallel-axis transform,
// and grandchildren are reparented directly onto the parent. Returns a
// new Mechanism; m is unmodified.
func (m *Mechanism) RemoveFixedJoints() (*Mechanism, error) {
	// mergedInto[b] is the surviving body that b's contents were folded
	// into (possibly b itself).
	mergedInto := map[*RigidBody]*RigidBody{m.Root(): m.Root()}
	mergedFrame := map[*RigidBody]spatial.Transform3D{m.Root(): spatial.IdentityTransform3D(m.Root().Default)}

	for i := 1; i < len(m.edges); i++ {
		e := m.edges[i]
		survivor := mergedInto[e.parent]
		if e.joint.Kind.Kind() != joint.KindFixed {
			mergedInto[e.body] = e.body
			mergedFrame[e.body] = spatial.IdentityTransform3D(e.body.Default)
			continue
		}
		// Fold e.body into survivor. Fixed's own joint transform is
		// identity (zero q), so frame_before and frame_after coincide
		// pose-wise; bodyToParent re-labels the registered
		// frame_before->parent.Default transform as body.Default->
		// parent.Default, then composes with the parent's own
		// accumulated transform to survivor.
		jointToParent, ok := e.parent.FrameTransform(e.joint.FrameBefore)
		if !ok {
			return nil, errors.Errorf("mechanism.RemoveFixedJoints: missing frame_before registration on %q", e.parent.Name)
		}
		bodyToParent := spatial.Transform3D{From: e.body.Default, To: e.parent.Default, Rot: jointToParent.Rot, Trans: jointToParent.Trans}
		toSurvivor := spatial.Compose(bodyToParent.Inv(), mergedFrame[e.parent]) // From=survivor.Default, To=e.body.Default
		mergedInto[e.body] = survivor
		mergedFrame[e.body] = toSurvivor

		if e.body.Inertia != nil {
			placed := e.body.Inertia.Transform(toSurvivor.Inv()) // From=e.body.Default, To=survivor.Default
			if survivor.Inertia == nil {
				inertia := placed
				inertia.Frame = survivor.Default
				survivor.Inertia = &inertia
			} else {
				summed := survivor.Inertia.Add(spatial.SpatialInertia{Frame: survivor.Default, J: placed.J, C: placed.C, M: placed.M})
				survivor.Inertia = &summed
			}
		}
		for f, t := range e.body.frames {
			if f == e.body.Default {
				continue
			}
			survivor.AddFrame(f, spatial.Compose(toSurvivor.Inv(), t))
		}
	}

	out := New(m.Root(), m.gravity)
	for i := 1; i < len(m.edges); i++ {
		e := m.edges[i]
		if e.joint.Kind.Kind() == joint.KindFixed {
			continue
		}
		parentSurvivor := mergedInto[e.parent]
		if err := out.Attach(parentSurvivor, e.joint, spatial.IdentityTransform3D(e.joint.FrameBefore), e.body); err != nil {
			return nil, err
		}
	}
	for _, l := range m.loops {
		pred, succ := mergedInto[l.Predecessor], mergedInto[l.Successor]
		if err := out.AddLoopJoint(pred, succ, l.Joint); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Validate runs this package's cheap structural invariant checks once,
// at construction time, rather than per-state-update: every non-root
// body's q/v range is disjoint from every other's and
// the union covers [0, NQ())/[0, NV()) exactly, and every loop joint's
// predecessor/successor is present in the tree. It does not recompute
// anything MechanismState already checks per-call (buffer lengths); it
// is meant to be called once after a mechanism is fully built.
func (m *Mechanism) Validate() error {
	qCovered := make([]bool, m.nq)
	vCovered := make([]bool, m.nv)
	for i := 1; i < len(m.edges); i++ {
		e := m.edges[i]
		for q := e.qOffset; q < e.qOffset+e.joint.NQ(); q++ {
			if qCovered[q] {
				return errors.Errorf("mechanism.Validate: q index %d claimed by more than one body", q)
			}
			qCovered[q] = true
		}
		for v := e.vOffset; v < e.vOffset+e.joint.NV(); v++ {
			if vCovered[v] {
				return errors.Errorf("mechanism.Validate: v index %d claimed by more than one body", v)
			}
			vCovered[v] = true
		}
	}
	for q, ok := range qCovered {
		if !ok {
			return errors.Errorf("mechanism.Validate: q index %d is not covered by any body", q)
		}
	}
	for v, ok := range vCovered {
		if !ok {
			return errors.Errorf("mechanism.Validate: v index %d is not covered by any body", v)
		}
	}
	for _, l := range m.loops {
		if _, ok := m.index[l.Predecessor]; !ok {
			return errors.Errorf("mechanism.Validate: loop joint %q predecessor %q is not in the tree", l.Joint.Name, l.Predecessor.Name)
		}
		if _, ok := m.index[l.Successor]; !ok {
			return errors.Errorf("mechanism.Validate: loop joint %q successor %q is not in the tree", l.Joint.Name, l.Successor.Name)
		}
	}
	return nil
}
