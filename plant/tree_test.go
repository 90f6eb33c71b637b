package plant

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sprout/config"
)

// testSegmentConfig returns a deterministic configuration: unit length, no
// jitter, no wobble and a growth rate of exactly 1 per second.
func testSegmentConfig(maxDepth int) config.SegmentConfig {
	return config.SegmentConfig{
		SegmentLength:     1,
		Straightness:      1,
		CurveSubdivisions: 4,
		ThicknessFactor:   1,
		GrowthSpeed:       1,
		GrowthFactorMin:   1,
		GrowthFactorMax:   1,
		MaxDepth:          maxDepth,
	}
}

type recorder struct {
	added  []PointID
	forked []SegmentID
}

func (r *recorder) PointAdded(_ *Tree, p PointID)      { r.added = append(r.added, p) }
func (r *recorder) SegmentForked(_ *Tree, s SegmentID) { r.forked = append(r.forked, s) }

func newTestTree(kind Kind, cfg config.SegmentConfig, l Listener) *Tree {
	tr := NewTree(kind, cfg, r2.Vec{}, rand.New(rand.NewSource(1)), l)
	tr.Plant()
	return tr
}

// growFully ticks until the segment has reached its next point.
func growFully(tr *Tree, id SegmentID) {
	for tr.Segment(id).Growth < 1 {
		tr.Tick(1)
	}
}

func near(a, b r2.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestPlant(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		angle   float64
		wantTip r2.Vec
	}{
		{"canopy grows up", KindCanopy, 0, r2.Vec{X: 0, Y: 1}},
		{"roots grow down", KindRoot, 180, r2.Vec{X: 0, Y: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testSegmentConfig(6)
			cfg.BaseAngle = tt.angle
			rec := &recorder{}
			tr := newTestTree(tt.kind, cfg, rec)

			root := tr.Segment(tr.Root())
			if len(root.Points) != 2 {
				t.Fatalf("expected 2 points after plant, got %d", len(root.Points))
			}
			if root.Depth != 0 || root.Growth != 0 {
				t.Errorf("expected depth 0 growth 0, got %d %f", root.Depth, root.Growth)
			}
			if got := tr.WorldPos(tr.Tip(tr.Root())); !near(got, tt.wantTip) {
				t.Errorf("tip = %v, want %v", got, tt.wantTip)
			}
			if len(rec.added) != 1 {
				t.Errorf("expected 1 PointAdded notification, got %d", len(rec.added))
			}
			if again := tr.Plant(); again != tr.Root() || tr.NumSegments() != 1 {
				t.Error("expected second Plant to be a no-op")
			}
			if err := tr.Check(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestTickAccumulatesAndClamps(t *testing.T) {
	tr := newTestTree(KindCanopy, testSegmentConfig(6), nil)
	id := tr.Root()

	tr.Tick(0.3)
	if g := tr.Segment(id).Growth; math.Abs(g-0.3) > 1e-9 {
		t.Errorf("growth after 0.3s = %f, want 0.3", g)
	}

	tr.Tick(5)
	if g := tr.Segment(id).Growth; g != 1 {
		t.Errorf("growth should clamp at 1, got %f", g)
	}

	// Only the budget actually consumed thickens the points.
	pts := tr.Segment(id).Points
	if w := tr.Point(pts[1]).Width; math.Abs(w-1) > 1e-9 {
		t.Errorf("tip width = %f, want 1", w)
	}
	if w := tr.Point(pts[0]).Width; math.Abs(w-(seedWidth+1)) > 1e-9 {
		t.Errorf("seed width = %f, want %f", w, seedWidth+1)
	}

	tr.Tick(1)
	if w := tr.Point(pts[1]).Width; math.Abs(w-1) > 1e-9 {
		t.Errorf("fully grown segment should not thicken, got %f", w)
	}
}

func TestWidthPropagatesToAncestors(t *testing.T) {
	tr := newTestTree(KindRoot, testSegmentConfig(6), nil)
	root := tr.Root()
	growFully(tr, root)

	parentTip := tr.Tip(root)
	before := tr.Point(parentTip).Width
	seedBefore := tr.Point(tr.Segment(root).Points[0]).Width

	child, ok := tr.Fork(parentTip, SideLeft, 30, nil)
	if !ok {
		t.Fatal("expected fork to succeed")
	}
	tr.Tick(0.5)

	if g := tr.Segment(child).Growth; math.Abs(g-0.5) > 1e-9 {
		t.Errorf("child growth = %f, want 0.5", g)
	}
	if w := tr.Point(parentTip).Width; math.Abs(w-(before+0.5)) > 1e-9 {
		t.Errorf("parent point width = %f, want %f", w, before+0.5)
	}
	if w := tr.Point(tr.Segment(root).Points[0]).Width; math.Abs(w-(seedBefore+0.5)) > 1e-9 {
		t.Errorf("parent seed width = %f, want %f", w, seedBefore+0.5)
	}
}

func TestAppendPoint(t *testing.T) {
	tr := newTestTree(KindCanopy, testSegmentConfig(6), nil)
	id := tr.Root()
	tr.Tick(0.4)

	n := len(tr.Segment(id).Points)
	local := r2.Vec{X: 0.5, Y: 3}
	pid, ok := tr.AppendPoint(id, &local)
	if !ok {
		t.Fatal("expected append to succeed")
	}

	seg := tr.Segment(id)
	if len(seg.Points) != n+1 {
		t.Errorf("point count = %d, want %d", len(seg.Points), n+1)
	}
	if seg.Growth != 0 {
		t.Errorf("growth should reset to 0, got %f", seg.Growth)
	}
	if got := tr.Point(pid).Pos; !near(got, local) {
		t.Errorf("explicit position = %v, want %v", got, local)
	}
	if !tr.IsTip(pid) {
		t.Error("appended point should be the tip")
	}
}

func TestDepthBudget(t *testing.T) {
	tr := newTestTree(KindCanopy, testSegmentConfig(3), nil)
	id := tr.Root()

	if _, ok := tr.AppendPoint(id, nil); !ok {
		t.Fatal("expected third point to fit")
	}
	if !tr.AtMaxDepth(id) {
		t.Fatal("expected segment at max depth with 3 points")
	}
	if _, ok := tr.AppendPoint(id, nil); ok {
		t.Error("append past max depth should fail")
	}
	if tr.Score(id) != -1 {
		t.Errorf("score at max depth = %f, want -1", tr.Score(id))
	}

	// Forking at the seed needs depth 1 + 2 points <= 3.
	seed := tr.Segment(id).Points[0]
	if _, ok := tr.Fork(seed, SideLeft, 20, nil); !ok {
		t.Error("expected fork at seed to fit")
	}
	tip := tr.Tip(id)
	if _, ok := tr.Fork(tip, SideLeft, 20, nil); ok {
		t.Error("fork at tip should exceed the depth budget")
	}

	// A terminal segment no longer grows.
	growFully(tr, id)
	tr.Tick(10)
	if g := tr.Segment(id).Growth; g != 1 {
		t.Errorf("terminal growth = %f, want 1", g)
	}
	if err := tr.Check(); err != nil {
		t.Error(err)
	}
}

func TestForkSlotsArePermanent(t *testing.T) {
	rec := &recorder{}
	tr := newTestTree(KindRoot, testSegmentConfig(8), rec)
	tip := tr.Tip(tr.Root())

	tipLocal := r2.Vec{X: 0, Y: 2}
	left, ok := tr.Fork(tip, SideLeft, 45, &tipLocal)
	if !ok {
		t.Fatal("left fork failed")
	}
	if got := tr.Point(tr.Tip(left)).Pos; !near(got, tipLocal) {
		t.Errorf("explicit fork tip = %v, want %v", got, tipLocal)
	}
	if _, ok := tr.Fork(tip, SideLeft, 10, nil); ok {
		t.Error("occupied left slot should refuse a second fork")
	}
	if _, ok := tr.Fork(tip, SideRight, -45, nil); !ok {
		t.Error("right slot should still be free")
	}

	pt := tr.Point(tip)
	if _, free := pt.FreeSide(); free {
		t.Error("expected both slots taken")
	}
	if len(rec.forked) != 2 {
		t.Errorf("expected 2 fork notifications, got %d", len(rec.forked))
	}
	if d := tr.Segment(left).Depth; d != 2 {
		t.Errorf("child depth = %d, want 2", d)
	}
	if err := tr.Check(); err != nil {
		t.Error(err)
	}
}
