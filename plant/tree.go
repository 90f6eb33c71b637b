// Package plant implements the branching growth graph shared by the canopy and the roots.
//
// A Tree is an arena: segments and points live in flat slices and refer to each
// other through SegmentID and PointID handles. A segment owns an ordered run of
// points; a point may own up to two forked child segments (left and right).
package plant

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sprout/config"
	"github.com/pthm-cable/sprout/geom"
)

// Kind identifies which branching system a tree models.
type Kind uint8

const (
	KindCanopy Kind = iota
	KindRoot
)

func (k Kind) String() string {
	switch k {
	case KindCanopy:
		return "canopy"
	case KindRoot:
		return "root"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// SegmentID addresses a segment within its tree.
type SegmentID int32

// PointID addresses a point within its tree.
type PointID int32

const (
	NoSegment SegmentID = -1
	NoPoint   PointID   = -1
)

// Side selects one of the two fork slots of a point.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Point is a placed node along a segment. Pos and Control are in the local
// frame of the owning segment.
type Point struct {
	Pos     r2.Vec
	Control r2.Vec // Bezier control point of the curve arriving at this point
	Width   float64

	Segment SegmentID
	Index   int // Position within the owning segment

	Left  SegmentID
	Right SegmentID
}

// Child returns the segment forked on the given side, or NoSegment.
func (p *Point) Child(side Side) SegmentID {
	if side == SideLeft {
		return p.Left
	}
	return p.Right
}

// FreeSide returns the first side without a forked segment.
func (p *Point) FreeSide() (Side, bool) {
	if p.Left == NoSegment {
		return SideLeft, true
	}
	if p.Right == NoSegment {
		return SideRight, true
	}
	return SideLeft, false
}

func (p *Point) setChild(side Side, id SegmentID) {
	if side == SideLeft {
		p.Left = id
	} else {
		p.Right = id
	}
}

// Segment is one grown run of a branch or root.
type Segment struct {
	Parent PointID   // NoPoint for the top-level segment
	Points []PointID // Growth order; Points[0] is the attachment point
	Depth  int

	Angle float64    // Rotation relative to the parent frame, degrees
	Frame geom.Frame // Local-to-world transform

	GrowthFactor float64 // Per-segment random growth rate multiplier
	Growth       float64 // Progress toward the next point, [0,1]

	line  Line
	dirty bool
}

// Listener receives graph mutations. Calls happen synchronously inside the
// mutating operation, after the graph is consistent.
type Listener interface {
	PointAdded(t *Tree, p PointID)
	SegmentForked(t *Tree, s SegmentID)
}

// Tree is one branching system rooted at the plant origin.
type Tree struct {
	kind     Kind
	cfg      config.SegmentConfig
	origin   r2.Vec
	rng      *rand.Rand
	listener Listener

	segments []Segment
	points   []Point
	root     SegmentID
}

// NewTree creates an empty tree. Call Plant to create the top-level segment.
func NewTree(kind Kind, cfg config.SegmentConfig, origin r2.Vec, rng *rand.Rand, listener Listener) *Tree {
	return &Tree{
		kind:     kind,
		cfg:      cfg,
		origin:   origin,
		rng:      rng,
		listener: listener,
		root:     NoSegment,
	}
}

// Plant creates and initializes the top-level segment. It is a no-op if the
// tree was already planted.
func (t *Tree) Plant() SegmentID {
	if t.root != NoSegment {
		return t.root
	}
	t.root = t.allocSegment(NoPoint, 0)
	t.initSegment(t.root, nil)
	return t.root
}

// Kind returns the branching system of the tree.
func (t *Tree) Kind() Kind { return t.kind }

// Root returns the top-level segment, or NoSegment before Plant.
func (t *Tree) Root() SegmentID { return t.root }

// Config returns the segment configuration the tree grows with.
func (t *Tree) Config() config.SegmentConfig { return t.cfg }

// NumSegments returns the number of segments in the arena.
func (t *Tree) NumSegments() int { return len(t.segments) }

// NumPoints returns the number of points in the arena.
func (t *Tree) NumPoints() int { return len(t.points) }

// Segment returns a copy of the segment header. The Points slice is shared
// with the tree and must not be modified.
func (t *Tree) Segment(id SegmentID) Segment {
	return t.segments[id]
}

// Point returns a copy of the point.
func (t *Tree) Point(id PointID) Point {
	return t.points[id]
}

// WorldPos returns the world position of a point.
func (t *Tree) WorldPos(id PointID) r2.Vec {
	p := &t.points[id]
	return t.segments[p.Segment].Frame.ToWorld(p.Pos)
}

// IsTip reports whether the point is the last point of its segment.
func (t *Tree) IsTip(id PointID) bool {
	p := &t.points[id]
	return p.Index == len(t.segments[p.Segment].Points)-1
}

// Tip returns the last point of a segment.
func (t *Tree) Tip(id SegmentID) PointID {
	pts := t.segments[id].Points
	return pts[len(pts)-1]
}

// AtMaxDepth reports whether a segment has used its whole depth budget.
func (t *Tree) AtMaxDepth(id SegmentID) bool {
	s := &t.segments[id]
	return s.Depth+len(s.Points) >= t.cfg.MaxDepth
}

// ChildDepth returns the depth a segment forked at p would have.
func (t *Tree) ChildDepth(p PointID) int {
	pt := &t.points[p]
	return t.segments[pt.Segment].Depth + pt.Index + 1
}

// ChildFrame returns the frame a segment forked at p with relDeg would grow in.
func (t *Tree) ChildFrame(p PointID, relDeg float64) geom.Frame {
	pt := &t.points[p]
	return t.segments[pt.Segment].Frame.Child(pt.Pos, relDeg)
}

// CanFork reports whether a new segment may be forked from p on side.
// A fork needs a free slot and room for its two initial points.
func (t *Tree) CanFork(p PointID, side Side) bool {
	if p < 0 || int(p) >= len(t.points) {
		return false
	}
	pt := &t.points[p]
	if pt.Child(side) != NoSegment {
		return false
	}
	return t.ChildDepth(p)+2 <= t.cfg.MaxDepth
}

// Fork creates a child segment at p on the given side, rotated relDeg from the
// parent frame. tip, if non-nil, places the second point explicitly in the
// child's local frame. Fork slots are permanent once assigned.
func (t *Tree) Fork(p PointID, side Side, relDeg float64, tip *r2.Vec) (SegmentID, bool) {
	if !t.CanFork(p, side) {
		return NoSegment, false
	}
	id := t.allocSegment(p, relDeg)
	t.points[p].setChild(side, id)
	t.initSegment(id, tip)
	if t.listener != nil {
		t.listener.SegmentForked(t, id)
	}
	return id, true
}

// Walk visits segments depth-first from the root: a segment, then the forks of
// each of its points in order, left before right. Returning false stops the walk.
func (t *Tree) Walk(fn func(id SegmentID) bool) {
	if t.root == NoSegment {
		return
	}
	t.walk(t.root, fn)
}

func (t *Tree) walk(id SegmentID, fn func(SegmentID) bool) bool {
	if !fn(id) {
		return false
	}
	for _, pid := range t.segments[id].Points {
		p := &t.points[pid]
		if p.Left != NoSegment && !t.walk(p.Left, fn) {
			return false
		}
		if p.Right != NoSegment && !t.walk(p.Right, fn) {
			return false
		}
	}
	return true
}

// Check verifies the structural invariants of the arena.
func (t *Tree) Check() error {
	for i := range t.segments {
		id := SegmentID(i)
		s := &t.segments[i]
		if len(s.Points) < 2 {
			return fmt.Errorf("segment %d has %d points", id, len(s.Points))
		}
		if s.Depth+len(s.Points) > t.cfg.MaxDepth {
			return fmt.Errorf("segment %d exceeds max depth: %d+%d > %d", id, s.Depth, len(s.Points), t.cfg.MaxDepth)
		}
		if s.Growth < 0 || s.Growth > 1 {
			return fmt.Errorf("segment %d growth %f out of range", id, s.Growth)
		}
		if s.Parent != NoPoint {
			pt := &t.points[s.Parent]
			if pt.Left != id && pt.Right != id {
				return fmt.Errorf("segment %d not owned by its parent point %d", id, s.Parent)
			}
			if want := t.ChildDepth(s.Parent); s.Depth != want {
				return fmt.Errorf("segment %d depth %d, want %d", id, s.Depth, want)
			}
		}
		for idx, pid := range s.Points {
			pt := &t.points[pid]
			if pt.Segment != id || pt.Index != idx {
				return fmt.Errorf("point %d misplaced: segment %d index %d", pid, pt.Segment, pt.Index)
			}
			if pt.Width < 0 {
				return fmt.Errorf("point %d has negative width %f", pid, pt.Width)
			}
		}
	}
	return nil
}

// randRange returns a uniform value in [lo, hi).
func (t *Tree) randRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + t.rng.Float64()*(hi-lo)
}
