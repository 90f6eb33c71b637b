package game

import (
	"log/slog"

	"github.com/pthm-cable/sprout/systems"
	"github.com/pthm-cable/sprout/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and writes it out.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sample())
	perfStats := g.perf.Stats()

	if g.opts.LogStats {
		stats.LogStats()
		slog.Info("perf", "stats", perfStats)
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	g.writeEvents()
}

// writeEvents drains the event queue into events.csv.
func (g *Game) writeEvents() {
	events := g.collector.DrainEvents()
	if err := g.output.WriteEvents(events); err != nil {
		slog.Error("failed to write events", "error", err)
	}
}

// sample captures the plant and soil state for a stats window.
func (g *Game) sample() telemetry.Sample {
	canopy := g.canopy.Stats()
	roots := g.roots.Stats()
	water := g.eco.Stock(systems.Water)
	minerals := g.eco.Stock(systems.Minerals)
	energy := g.eco.Stock(systems.Energy)
	poolW, poolM := g.soil.PoolTotals()

	return telemetry.Sample{
		CanopySegments: canopy.Segments,
		CanopyPoints:   canopy.Points,
		CanopyComplete: canopy.Complete,
		RootSegments:   roots.Segments,
		RootPoints:     roots.Points,
		Depths:         canopy.Depths,

		Water:       water.Value,
		WaterMax:    water.Max,
		Minerals:    minerals.Value,
		MineralsMax: minerals.Max,
		Energy:      energy.Value,
		EnergyMax:   energy.Max,

		PoolsLeft:     g.soil.NumPools(),
		PoolsAttached: len(g.eco.Connected()),
		PoolWater:     poolW,
		PoolMinerals:  poolM,

		BranchBudget: g.eco.HowManyBranchesCanGrow(),
		RootBudget:   g.eco.HowManyRootsCanGrow(),
		Outcome:      g.outcome.String(),
	}
}
