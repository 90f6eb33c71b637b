package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sprout/config"
	"github.com/pthm-cable/sprout/geom"
	"github.com/pthm-cable/sprout/plant"
	"github.com/pthm-cable/sprout/systems"
)

// Rejection says why a root extension was refused. RejectNone means accepted.
type Rejection uint8

const (
	RejectNone Rejection = iota
	RejectAboveGround
	RejectNothingInRange
	RejectTooClose
	RejectForksFull
	RejectStillGrowing
	RejectMaxDepth
	RejectRock
	RejectUnaffordable
	RejectGameOver
)

var rejectionNames = [...]string{
	RejectNone:           "none",
	RejectAboveGround:    "above ground",
	RejectNothingInRange: "nothing in range",
	RejectTooClose:       "too close",
	RejectForksFull:      "forks full",
	RejectStillGrowing:   "still growing",
	RejectMaxDepth:       "max depth",
	RejectRock:           "rock",
	RejectUnaffordable:   "unaffordable",
	RejectGameOver:       "game over",
}

func (r Rejection) String() string {
	if int(r) < len(rejectionNames) {
		return rejectionNames[r]
	}
	return "unknown"
}

// Candidate is the root point an extension toward Target would grow from.
type Candidate struct {
	Point  plant.PointID
	Pos    r2.Vec // World position of the point
	Target r2.Vec
	Dist   float64
	Extend bool       // Append at the segment tip rather than fork
	Side   plant.Side // Fork side when !Extend
}

// Commit describes a successful extension.
type Commit struct {
	Candidate
	Segment plant.SegmentID // Extended or newly forked segment
	NewTip  plant.PointID
}

// RootExtender validates and applies player-directed root growth.
type RootExtender struct {
	cfg   config.InteractionConfig
	roots *plant.Tree
	soil  *systems.Soil
	eco   *systems.Economy
}

// NewRootExtender creates an extender over the root tree.
func NewRootExtender(cfg config.InteractionConfig, roots *plant.Tree, soil *systems.Soil, eco *systems.Economy) *RootExtender {
	return &RootExtender{cfg: cfg, roots: roots, soil: soil, eco: eco}
}

// Find evaluates the extension gates for a world-space target without
// mutating anything.
func (x *RootExtender) Find(target r2.Vec) (Candidate, Rejection) {
	c := Candidate{Point: plant.NoPoint, Target: target}
	if target.Y > x.cfg.GroundLevel {
		return c, RejectAboveGround
	}

	pid, dist, ok := x.soil.NearestRootNode(target, x.cfg.MaxRadius)
	if !ok {
		return c, RejectNothingInRange
	}
	c.Point = pid
	c.Pos = x.roots.WorldPos(pid)
	c.Dist = dist
	if dist < x.cfg.MinRadius {
		return c, RejectTooClose
	}

	pt := x.roots.Point(pid)
	if pt.Left != plant.NoSegment && pt.Right != plant.NoSegment {
		return c, RejectForksFull
	}

	if x.roots.IsTip(pid) {
		seg := x.roots.Segment(pt.Segment)
		if seg.Growth < 1 {
			return c, RejectStillGrowing
		}
		if x.roots.AtMaxDepth(pt.Segment) {
			return c, RejectMaxDepth
		}
		c.Extend = true
	} else {
		side, _ := pt.FreeSide()
		if !x.roots.CanFork(pid, side) {
			return c, RejectMaxDepth
		}
		c.Side = side
	}

	if x.soil.RockNear(target, x.cfg.RockRadius) {
		return c, RejectRock
	}
	return c, RejectNone
}

// Commit grows a root toward target if every gate passes and the plant can
// afford it. The root cost is paid once, after the graph mutation succeeded.
func (x *RootExtender) Commit(target r2.Vec) (Commit, Rejection) {
	c, rej := x.Find(target)
	if rej != RejectNone {
		return Commit{Candidate: c}, rej
	}
	if x.eco.HowManyRootsCanGrow() < 1 {
		return Commit{Candidate: c}, RejectUnaffordable
	}

	out := Commit{Candidate: c}
	pt := x.roots.Point(c.Point)
	if c.Extend {
		seg := x.roots.Segment(pt.Segment)
		local := seg.Frame.ToLocal(target)
		tip, ok := x.roots.AppendPoint(pt.Segment, &local)
		if !ok {
			return out, RejectMaxDepth
		}
		out.Segment, out.NewTip = pt.Segment, tip
	} else {
		parent := x.roots.Segment(pt.Segment).Frame
		dir := parent.VectorToLocal(r2.Sub(target, c.Pos))
		tip := r2.Vec{Y: r2.Norm(dir)}
		id, ok := x.roots.Fork(c.Point, c.Side, geom.AngleTo(dir), &tip)
		if !ok {
			return out, RejectMaxDepth
		}
		out.Segment, out.NewTip = id, x.roots.Tip(id)
	}

	x.eco.SpendRoot()
	return out, RejectNone
}
