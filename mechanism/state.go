package mechanism

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"go.viam.com/rigidbodydynamics/rbderrors"
	"go.viam.com/rigidbodydynamics/spatial"
)

// MechanismState owns the current (q, v) and every lazily-recomputed,
// dirty-bit-gated cache this package derives from them: per-body
// transforms to root, per-body twists and bias accelerations w.r.t.
// world, per-joint motion subspaces in world, per-body
// composite-rigid-body inertias, and per-loop-joint tree-path structure.
// It is not safe for concurrent use; callers needing to evaluate a
// mechanism from multiple goroutines should give each its own State.
type MechanismState struct {
	mech *Mechanism

	q []float64
	v []float64

	transformsToRoot []spatial.Transform3D
	twistsWorld      []spatial.Twist
	biasAccelsWorld  []spatial.SpatialAcceleration
	subspacesWorld   [][]spatial.Twist
	crbInertias      []spatial.SpatialInertia
	loopPaths        []loopPath
	loopSubspaces    [][]spatial.Wrench

	kinematicsDirty    bool
	velocityDirty      bool
	crbDirty           bool
	loopPathsDirty     bool
	loopSubspacesReady bool
}

// PathEdge names a tree joint (by the body index it terminates at) and
// the direction a loop-joint path traverses it.
type PathEdge struct {
	BodyIndex int
	Up        bool
}

type loopPath struct {
	edges []PathEdge
}

// NewMechanismState allocates a state for mech at its zero configuration
// and zero velocity.
func NewMechanismState(mech *Mechanism) *MechanismState {
	s := &MechanismState{
		mech:             mech,
		q:                make([]float64, mech.NQ()),
		v:                make([]float64, mech.NV()),
		transformsToRoot: make([]spatial.Transform3D, mech.NumBodies()),
		twistsWorld:      make([]spatial.Twist, mech.NumBodies()),
		biasAccelsWorld:  make([]spatial.SpatialAcceleration, mech.NumBodies()),
		subspacesWorld:   make([][]spatial.Twist, mech.NumBodies()),
		crbInertias:      make([]spatial.SpatialInertia, mech.NumBodies()),
		loopPaths:        make([]loopPath, len(mech.LoopJoints())),
		loopSubspaces:    make([][]spatial.Wrench, len(mech.LoopJoints())),
	}
	for i := 1; i < mech.NumBodies(); i++ {
		b := mech.Body(i)
		j, _ := mech.ParentJoint(b)
		off, n := mech.QRange(b)
		copy(s.q[off:off+n], j.Kind.ZeroConfiguration())
	}
	s.kinematicsDirty = true
	s.velocityDirty = true
	s.crbDirty = true
	s.loopPathsDirty = true
	return s
}

// Mechanism returns the mechanism this state was built from.
func (s *MechanismState) Mechanism() *Mechanism { return s.mech }

// Configuration returns the current q (read-only; callers must not
// mutate the returned slice).
func (s *MechanismState) Configuration() []float64 { return s.q }

// Velocity returns the current v (read-only).
func (s *MechanismState) Velocity() []float64 { return s.v }

// SetConfiguration overwrites q and dirties every kinematics-derived
// cache.
func (s *MechanismState) SetConfiguration(q []float64) error {
	if len(q) != s.mech.NQ() {
		return rbderrors.DimensionMismatch("MechanismState.SetConfiguration", s.mech.NQ(), len(q))
	}
	copy(s.q, q)
	s.kinematicsDirty = true
	s.crbDirty = true
	s.loopPathsDirty = true
	return nil
}

// SetVelocity overwrites v and dirties only the velocity-dependent
// caches.
func (s *MechanismState) SetVelocity(v []float64) error {
	if len(v) != s.mech.NV() {
		return rbderrors.DimensionMismatch("MechanismState.SetVelocity", s.mech.NV(), len(v))
	}
	copy(s.v, v)
	s.velocityDirty = true
	return nil
}

// ensureKinematics recomputes transforms-to-root, twists, bias
// accelerations and motion subspaces, all in the topological order
// stored by the mechanism, each body's pass depending only on quantities
// already computed for its parent. Every cached twist and
// bias acceleration uses the fixed convention (Body=body.Default,
// Base=root.Default, Frame=root.Default): "this body relative to the
// fixed world frame, expressed in world." Sums across the parent chain
// are therefore done as plain vector addition of Ang/Lin rather than
// through the frame-chain-checked Twist.Add/SpatialAcceleration.Add
// (those enforce a Base==Body chaining convention this cache does not
// use); Cross and Transform, which only check a shared Frame, are used
// directly.
func (s *MechanismState) ensureKinematics() {
	if !s.kinematicsDirty && !s.velocityDirty {
		return
	}
	root := s.mech.Root()
	s.transformsToRoot[0] = spatial.IdentityTransform3D(root.Default)
	s.twistsWorld[0] = spatial.ZeroTwist(root.Default, root.Default, root.Default)
	s.biasAccelsWorld[0] = spatial.ZeroSpatialAcceleration(root.Default, root.Default, root.Default)

	for i := 1; i < s.mech.NumBodies(); i++ {
		body := s.mech.Body(i)
		parent := mustParent(s.mech, body)
		parentIdx, _ := s.mech.BodyIndex(parent)
		j, _ := s.mech.ParentJoint(body)
		qOff, _ := s.mech.QRange(body)
		vOff, _ := s.mech.VRange(body)

		jointToParent, _ := parent.FrameTransform(j.FrameBefore)
		jointTransform := j.Kind.Transform(s.q[qOff:qOff+j.NQ()], j.FrameBefore, j.FrameAfter)

		parentToRoot := s.transformsToRoot[parentIdx]
		toParentFrame := spatial.Compose(parentToRoot, jointToParent)
		toRoot := spatial.Compose(toParentFrame, jointTransform)
		s.transformsToRoot[i] = toRoot

		afterToRoot := spatial.Transform3D{From: j.FrameAfter, To: root.Default, Rot: toRoot.Rot, Trans: toRoot.Trans}

		subspace := j.Kind.MotionSubspace(j.FrameBefore, j.FrameAfter)
		worldSubspace := make([]spatial.Twist, len(subspace))
		for c, col := range subspace {
			worldSubspace[c] = col.Transform(afterToRoot)
		}
		s.subspacesWorld[i] = worldSubspace

		var angSum, linSum r3.Vector
		vSlice := s.v[vOff : vOff+j.NV()]
		for c, col := range worldSubspace {
			angSum = angSum.Add(col.Ang.Mul(vSlice[c]))
			linSum = linSum.Add(col.Lin.Mul(vSlice[c]))
		}
		jointTwist := spatial.Twist{Body: body.Default, Base: parent.Default, Frame: root.Default, Ang: angSum, Lin: linSum}

		s.twistsWorld[i] = spatial.Twist{
			Body: body.Default, Base: root.Default, Frame: root.Default,
			Ang: s.twistsWorld[parentIdx].Ang.Add(jointTwist.Ang),
			Lin: s.twistsWorld[parentIdx].Lin.Add(jointTwist.Lin),
		}

		coriolis := s.twistsWorld[parentIdx].Cross(jointTwist)
		jointBiasWorld := j.Kind.BiasAcceleration(j.FrameAfter).Transform(afterToRoot)
		s.biasAccelsWorld[i] = spatial.SpatialAcceleration{
			Body: body.Default, Base: root.Default, Frame: root.Default,
			Ang: s.biasAccelsWorld[parentIdx].Ang.Add(coriolis.Ang).Add(jointBiasWorld.Ang),
			Lin: s.biasAccelsWorld[parentIdx].Lin.Add(coriolis.Lin).Add(jointBiasWorld.Lin),
		}
	}

	s.kinematicsDirty = false
	s.velocityDirty = false
}

// ensureCRB performs the reverse-topological composite-rigid-body
// inertia pass: I_crb(body) = I_body(world) + sum of children's I_crb.
func (s *MechanismState) ensureCRB() {
	s.ensureKinematics()
	if !s.crbDirty {
		return
	}
	n := s.mech.NumBodies()
	worldInertia := make([]spatial.SpatialInertia, n)
	for i := 0; i < n; i++ {
		body := s.mech.Body(i)
		if body.Inertia == nil {
			worldInertia[i] = spatial.SpatialInertia{Frame: s.mech.Root().Default}
			continue
		}
		T := s.transformsToRoot[i]
		worldInertia[i] = body.Inertia.Transform(spatial.Transform3D{From: body.Default, To: s.mech.Root().Default, Rot: T.Rot, Trans: T.Trans})
	}
	crb := make([]spatial.SpatialInertia, n)
	copy(crb, worldInertia)
	for i := n - 1; i >= 1; i-- {
		parentIdx, _ := s.mech.BodyIndex(mustParent(s.mech, s.mech.Body(i)))
		crb[parentIdx] = crb[parentIdx].Add(crb[i])
	}
	s.crbInertias = crb
	s.crbDirty = false
}

// TransformToRoot returns the cached world-frame pose of body.
func (s *MechanismState) TransformToRoot(body *RigidBody) spatial.Transform3D {
	s.ensureKinematics()
	i, _ := s.mech.BodyIndex(body)
	return s.transformsToRoot[i]
}

// TwistWrtWorld returns the cached twist of body relative to the root,
// expressed in world (root) frame.
func (s *MechanismState) TwistWrtWorld(body *RigidBody) spatial.Twist {
	s.ensureKinematics()
	i, _ := s.mech.BodyIndex(body)
	return s.twistsWorld[i]
}

// BiasAcceleration returns the cached velocity-product (Coriolis +
// centrifugal) acceleration of body, expressed in world.
func (s *MechanismState) BiasAcceleration(body *RigidBody) spatial.SpatialAcceleration {
	s.ensureKinematics()
	i, _ := s.mech.BodyIndex(body)
	return s.biasAccelsWorld[i]
}

// MotionSubspaceInWorld returns the cached motion subspace of body's
// parent joint, transformed into world.
func (s *MechanismState) MotionSubspaceInWorld(body *RigidBody) []spatial.Twist {
	s.ensureKinematics()
	i, _ := s.mech.BodyIndex(body)
	return s.subspacesWorld[i]
}

// CRBInertia returns the cached composite-rigid-body inertia of the
// subtree rooted at body, expressed in world.
func (s *MechanismState) CRBInertia(body *RigidBody) spatial.SpatialInertia {
	s.ensureCRB()
	i, _ := s.mech.BodyIndex(body)
	return s.crbInertias[i]
}

// ensureLoopPaths computes, for each loop joint, the tree path from its
// predecessor to its successor via their lowest common ancestor, by
// walking whichever side has the deeper topological index - the same
// technique a relative-acceleration query between two arbitrary bodies
// uses to find their shared ancestor.
func (s *MechanismState) ensureLoopPaths() {
	if !s.loopPathsDirty {
		return
	}
	for li, lj := range s.mech.LoopJoints() {
		predIdx, _ := s.mech.BodyIndex(lj.Predecessor)
		succIdx, _ := s.mech.BodyIndex(lj.Successor)

		var up, down []PathEdge
		a, b := predIdx, succIdx
		for a != b {
			if a > b {
				up = append(up, PathEdge{BodyIndex: a, Up: true})
				a, _ = s.mech.BodyIndex(mustParent(s.mech, s.mech.Body(a)))
			} else {
				down = append(down, PathEdge{BodyIndex: b, Up: false})
				b, _ = s.mech.BodyIndex(mustParent(s.mech, s.mech.Body(b)))
			}
		}
		for i, j := 0, len(down)-1; i < j; i, j = i+1, j-1 {
			down[i], down[j] = down[j], down[i]
		}
		edges := append(up, down...)
		s.loopPaths[li] = loopPath{edges: edges}
	}
	s.loopPathsDirty = false
}

// LoopPath returns the cached tree path for the i'th loop joint.
func (s *MechanismState) LoopPath(i int) []PathEdge {
	s.ensureLoopPaths()
	return s.loopPaths[i].edges
}

// ensureLoopSubspaces computes each loop joint's constraint wrench
// subspace once and keeps it forever: unlike every other cache on this
// type, nothing invalidates it, since a loop joint's motion subspace
// depends only on its (immutable) kind, never on q or v.
func (s *MechanismState) ensureLoopSubspaces() {
	if s.loopSubspacesReady {
		return
	}
	for i, l := range s.mech.LoopJoints() {
		s.loopSubspaces[i] = loopConstraintSubspace(l.Joint, l.Joint.FrameAfter)
	}
	s.loopSubspacesReady = true
}

// LoopConstraintSubspace returns the i'th loop joint's constraint wrench
// subspace, expressed in its frame_after, computed once per mechanism and
// reused across every subsequent call rather than rebuilt from scratch.
func (s *MechanismState) LoopConstraintSubspace(i int) []spatial.Wrench {
	s.ensureLoopSubspaces()
	return s.loopSubspaces[i]
}

// String renders a per-body table of q, v and cached world transform
// origin, matching the teacher's worldstate.go table-dump idiom; it
// forces every lazy cache fresh first, so calling it never observes a
// stale value.
func (s *MechanismState) String() string {
	s.ensureKinematics()
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Body", "q", "v", "world origin"})
	for i := 0; i < s.mech.NumBodies(); i++ {
		body := s.mech.Body(i)
		qOff, qN := s.mech.QRange(body)
		vOff, vN := s.mech.VRange(body)
		origin := s.transformsToRoot[i].Trans
		t.AppendRow(table.Row{
			body.String(),
			fmt.Sprintf("%v", s.q[qOff:qOff+qN]),
			fmt.Sprintf("%v", s.v[vOff:vOff+vN]),
			fmt.Sprintf("(%.4f, %.4f, %.4f)", origin.X, origin.Y, origin.Z),
		})
	}
	return t.Render()
}

func mustParent(m *Mechanism, b *RigidBody) *RigidBody {
	p, ok := m.Parent(b)
	if !ok {
		panic(errors.Errorf("mechanism: %q has no parent (is it the root?)", b.Name))
	}
	return p
}
