package plant

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sprout/geom"
)

// seedWidth is the width of the attachment point of a new segment.
const seedWidth = 1.0

// allocSegment appends an empty segment attached to parent. The segment is not
// usable until initSegment has run.
func (t *Tree) allocSegment(parent PointID, relDeg float64) SegmentID {
	s := Segment{
		Parent:       parent,
		Angle:        relDeg,
		GrowthFactor: t.randRange(t.cfg.GrowthFactorMin, t.cfg.GrowthFactorMax),
		dirty:        true,
	}
	if parent == NoPoint {
		s.Frame = geom.Frame{Origin: t.origin, Angle: t.cfg.BaseAngle + relDeg}
	} else {
		s.Depth = t.ChildDepth(parent)
		s.Frame = t.ChildFrame(parent, relDeg)
	}
	t.segments = append(t.segments, s)
	return SegmentID(len(t.segments) - 1)
}

// initSegment places the seed point at the local origin and appends the
// first grown point, so every live segment has at least two points.
func (t *Tree) initSegment(id SegmentID, tip *r2.Vec) {
	seed := PointID(len(t.points))
	t.points = append(t.points, Point{
		Width:   seedWidth,
		Segment: id,
		Left:    NoSegment,
		Right:   NoSegment,
	})
	s := &t.segments[id]
	s.Points = append(s.Points, seed)
	s.Growth = 0

	t.AppendPoint(id, tip)
}

// AppendPoint adds a point at the end of a segment and resets its growth.
// local, if non-nil, is the position in the segment frame; otherwise the point
// is placed one segment length further along local up with some lateral jitter.
// Returns false once the segment has used its depth budget.
func (t *Tree) AppendPoint(id SegmentID, local *r2.Vec) (PointID, bool) {
	if t.AtMaxDepth(id) {
		return NoPoint, false
	}
	s := &t.segments[id]
	prev := t.points[s.Points[len(s.Points)-1]].Pos

	var pos r2.Vec
	if local != nil {
		pos = *local
	} else {
		length := t.cfg.SegmentLength * (1 + t.randRange(-t.cfg.LengthVariance, t.cfg.LengthVariance))
		jitter := t.randRange(-1, 1) * (1 - geom.Clamp01(t.cfg.Straightness)) * t.cfg.SegmentLength
		pos = r2.Add(prev, r2.Vec{X: jitter, Y: length})
	}

	pid := PointID(len(t.points))
	t.points = append(t.points, Point{
		Pos:     pos,
		Control: t.controlPoint(prev, pos),
		Segment: id,
		Index:   len(s.Points),
		Left:    NoSegment,
		Right:   NoSegment,
	})
	s.Points = append(s.Points, pid)
	s.Growth = 0
	s.dirty = true

	if t.listener != nil {
		t.listener.PointAdded(t, pid)
	}
	return pid, true
}

// controlPoint picks the bezier control point of the curve from prev to pos:
// the chord direction turned by up to +/-90*wobble/2 degrees, at a quarter to
// three quarters of the chord length from prev.
func (t *Tree) controlPoint(prev, pos r2.Vec) r2.Vec {
	chord := r2.Sub(pos, prev)
	space := r2.Norm(chord)
	if space == 0 {
		return prev
	}
	w := math.Min(t.cfg.Wobble, 1) / 2
	dir := geom.RotateDegs(r2.Unit(chord), t.randRange(-90*w, 90*w))
	return r2.Add(prev, r2.Scale(t.randRange(space/4, 3*space/4), dir))
}

// Tick advances growth on every segment that has not finished growing toward
// its next point.
func (t *Tree) Tick(dt float64) {
	for i := range t.segments {
		t.tickSegment(SegmentID(i), dt)
	}
}

func (t *Tree) tickSegment(id SegmentID, dt float64) {
	s := &t.segments[id]
	if s.Growth >= 1 {
		return
	}
	delta := math.Min(dt*t.cfg.GrowthSpeed*s.GrowthFactor, 1-s.Growth)
	if delta <= 0 {
		return
	}
	s.Growth += delta
	t.thicken(id, len(s.Points)-1, delta)
}

// thicken adds delta to the width of every point up to idx in the segment, then
// continues up the ancestor chain from each parent attachment point.
func (t *Tree) thicken(id SegmentID, idx int, delta float64) {
	for {
		s := &t.segments[id]
		for i := 0; i <= idx && i < len(s.Points); i++ {
			t.points[s.Points[i]].Width += delta
		}
		s.dirty = true
		if s.Parent == NoPoint {
			return
		}
		parent := &t.points[s.Parent]
		id, idx = parent.Segment, parent.Index
	}
}
