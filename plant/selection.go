package plant

import (
	"github.com/pthm-cable/sprout/config"
)

// Score rates a segment for autonomous growth: its growth progress, or -1 once
// it can no longer grow.
func (t *Tree) Score(id SegmentID) float64 {
	if t.AtMaxDepth(id) {
		return -1
	}
	return t.segments[id].Growth
}

// FindBestSegmentToGrow returns the highest-scoring segment in the tree.
// Ties keep the first segment in walk order. Returns NoSegment, -1 before Plant.
func (t *Tree) FindBestSegmentToGrow() (SegmentID, float64) {
	if t.root == NoSegment {
		return NoSegment, -1
	}
	return t.findBest(t.root)
}

func (t *Tree) findBest(id SegmentID) (SegmentID, float64) {
	best, bestScore := id, t.Score(id)
	for _, pid := range t.segments[id].Points {
		p := &t.points[pid]
		for _, child := range [2]SegmentID{p.Left, p.Right} {
			if child == NoSegment {
				continue
			}
			if c, score := t.findBest(child); score > bestScore {
				best, bestScore = c, score
			}
		}
	}
	return best, bestScore
}

// GrowBranch appends a point to a fully grown segment and may fork new
// segments a few points behind the new tip, one chance roll per side.
// Returns false when the segment is still growing or out of depth budget.
func (t *Tree) GrowBranch(id SegmentID, b config.BranchingConfig) bool {
	if t.segments[id].Growth < 1 || t.AtMaxDepth(id) {
		return false
	}
	if _, ok := t.AppendPoint(id, nil); !ok {
		return false
	}

	pts := t.segments[id].Points
	at := len(pts) - 1 - b.Offset
	if at < 0 {
		return true
	}
	fork := pts[at]
	if t.rng.Float64() < b.Chance {
		angle := b.AngleDeg + t.randRange(-b.AngleVarianceDeg, b.AngleVarianceDeg)
		t.Fork(fork, SideLeft, angle, nil)
	}
	if t.rng.Float64() < b.Chance {
		angle := -(b.AngleDeg + t.randRange(-b.AngleVarianceDeg, b.AngleVarianceDeg))
		t.Fork(fork, SideRight, angle, nil)
	}
	return true
}

// AllAtMaxDepth reports whether no segment of the tree can grow further.
// An unplanted tree is never complete.
func (t *Tree) AllAtMaxDepth() bool {
	if t.root == NoSegment {
		return false
	}
	all := true
	t.Walk(func(id SegmentID) bool {
		all = t.AtMaxDepth(id)
		return all
	})
	return all
}

// Stats summarizes a tree for telemetry.
type Stats struct {
	Segments   int
	Points     int
	Complete   int // Segments at max depth
	MaxReached int // Deepest depth+points of any segment
	Depths     []float64
}

// Stats walks the tree and summarizes it.
func (t *Tree) Stats() Stats {
	st := Stats{Points: len(t.points)}
	t.Walk(func(id SegmentID) bool {
		s := &t.segments[id]
		reach := s.Depth + len(s.Points)
		st.Segments++
		if t.AtMaxDepth(id) {
			st.Complete++
		}
		if reach > st.MaxReached {
			st.MaxReached = reach
		}
		st.Depths = append(st.Depths, float64(s.Depth))
		return true
	})
	return st
}
