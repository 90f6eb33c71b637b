package plant

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sprout/config"
)

var noBranching = config.BranchingConfig{AngleDeg: 25, Chance: 0, Offset: 2}

func TestFindBestSegmentToGrow(t *testing.T) {
	tr := newTestTree(KindCanopy, testSegmentConfig(4), nil)
	root := tr.Root()

	seed := tr.Segment(root).Points[0]
	mid, ok := tr.Fork(seed, SideLeft, 30, nil)
	if !ok {
		t.Fatal("fork failed")
	}

	// Grow the trunk to max depth.
	for !tr.AtMaxDepth(root) {
		growFully(tr, root)
		if !tr.GrowBranch(root, noBranching) {
			t.Fatal("GrowBranch failed before max depth")
		}
	}
	tr.segments[mid].Growth = 0.6

	best, score := tr.FindBestSegmentToGrow()
	if best != mid {
		t.Errorf("best = %d, want mid-growth segment %d", best, mid)
	}
	if math.Abs(score-0.6) > 1e-9 {
		t.Errorf("score = %f, want 0.6", score)
	}
}

func TestFindBestTieKeepsWalkOrder(t *testing.T) {
	tr := newTestTree(KindCanopy, testSegmentConfig(8), nil)
	root := tr.Root()
	tip := tr.Tip(root)
	left, _ := tr.Fork(tip, SideLeft, 20, nil)
	right, _ := tr.Fork(tip, SideRight, -20, nil)

	tr.segments[root].Growth = 0.2
	tr.segments[left].Growth = 0.7
	tr.segments[right].Growth = 0.7

	if best, _ := tr.FindBestSegmentToGrow(); best != left {
		t.Errorf("tie should resolve to left fork %d, got %d", left, best)
	}
}

func TestGrowBranch(t *testing.T) {
	b := config.BranchingConfig{AngleDeg: 25, Chance: 1, Offset: 0}
	rec := &recorder{}
	tr := newTestTree(KindCanopy, testSegmentConfig(10), rec)
	root := tr.Root()

	if tr.GrowBranch(root, b) {
		t.Fatal("GrowBranch should refuse a segment that is still growing")
	}

	growFully(tr, root)
	if !tr.GrowBranch(root, b) {
		t.Fatal("GrowBranch failed on a grown segment")
	}

	seg := tr.Segment(root)
	if len(seg.Points) != 3 || seg.Growth != 0 {
		t.Errorf("expected 3 points and reset growth, got %d %f", len(seg.Points), seg.Growth)
	}
	tip := tr.Point(tr.Tip(root))
	if tip.Left == NoSegment || tip.Right == NoSegment {
		t.Fatal("expected forks on both sides at offset 0")
	}
	if a := tr.Segment(tip.Left).Angle; a != 25 {
		t.Errorf("left fork angle = %f, want 25", a)
	}
	if a := tr.Segment(tip.Right).Angle; a != -25 {
		t.Errorf("right fork angle = %f, want -25", a)
	}
	if len(rec.forked) != 2 {
		t.Errorf("expected 2 fork notifications, got %d", len(rec.forked))
	}
	if err := tr.Check(); err != nil {
		t.Error(err)
	}
}

func TestGrowBranchOffsetBeyondSegment(t *testing.T) {
	b := config.BranchingConfig{AngleDeg: 25, Chance: 1, Offset: 5}
	tr := newTestTree(KindCanopy, testSegmentConfig(10), nil)
	growFully(tr, tr.Root())

	if !tr.GrowBranch(tr.Root(), b) {
		t.Fatal("GrowBranch failed")
	}
	if tr.NumSegments() != 1 {
		t.Errorf("offset past the seed should not fork, got %d segments", tr.NumSegments())
	}
}

func TestAllAtMaxDepth(t *testing.T) {
	tr := newTestTree(KindCanopy, testSegmentConfig(4), nil)
	root := tr.Root()

	seed := tr.Segment(root).Points[0]
	fork, ok := tr.Fork(seed, SideRight, -30, nil)
	if !ok {
		t.Fatal("fork failed")
	}

	for !tr.AtMaxDepth(root) {
		growFully(tr, root)
		tr.GrowBranch(root, noBranching)
	}
	if tr.AllAtMaxDepth() {
		t.Error("fork below max depth should keep the tree incomplete")
	}

	growFully(tr, fork)
	if !tr.GrowBranch(fork, noBranching) {
		t.Fatal("GrowBranch on fork failed")
	}
	if !tr.AllAtMaxDepth() {
		t.Error("expected tree complete once every segment is at max depth")
	}

	st := tr.Stats()
	if st.Segments != 2 || st.Complete != 2 || st.MaxReached != 4 {
		t.Errorf("unexpected stats: %+v", st)
	}
}

func TestAllAtMaxDepthUnplanted(t *testing.T) {
	tr := NewTree(KindCanopy, testSegmentConfig(4), r2.Vec{}, nil, nil)
	if tr.AllAtMaxDepth() {
		t.Error("unplanted tree should not be complete")
	}
	if id, score := tr.FindBestSegmentToGrow(); id != NoSegment || score != -1 {
		t.Errorf("unplanted best = %d %f", id, score)
	}
}
