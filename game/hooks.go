package game

import (
	"log/slog"

	"github.com/pthm-cable/sprout/plant"
	"github.com/pthm-cable/sprout/telemetry"
)

// plantHooks routes tree mutations to the economy, the soil index, sound and
// telemetry.
type plantHooks struct {
	g *Game
}

// PointAdded implements plant.Listener.
func (h plantHooks) PointAdded(t *plant.Tree, p plant.PointID) {
	g := h.g
	if t.Kind() == plant.KindCanopy {
		g.eco.OnCanopyPointAdded()
		return
	}

	pos := t.WorldPos(p)
	g.soil.AddRootNode(pos, p)
	if n := g.eco.OnRootPointAdded(pos); n > 0 {
		g.sfx.Play(SFXResourcesHit)
		ev := telemetry.NewEvent(g.tick, telemetry.EventPoolConnected, pos.X, pos.Y)
		ev.Count = n
		g.collector.Record(ev)
		slog.Debug("pools connected", "count", n, "x", pos.X, "y", pos.Y)
	}
}

// SegmentForked implements plant.Listener.
func (h plantHooks) SegmentForked(t *plant.Tree, s plant.SegmentID) {
	seg := t.Segment(s)
	slog.Debug("segment forked", "tree", t.Kind().String(), "segment", s, "depth", seg.Depth)
}
