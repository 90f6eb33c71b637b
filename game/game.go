// Package game wires the plant, its soil and economy into a playable
// simulation with an optional raylib front-end.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sprout/camera"
	"github.com/pthm-cable/sprout/config"
	"github.com/pthm-cable/sprout/plant"
	"github.com/pthm-cable/sprout/systems"
	"github.com/pthm-cable/sprout/telemetry"
	"github.com/pthm-cable/sprout/ui"
)

// lateralRootDeg is the angle of the second root planted next to the taproot.
const lateralRootDeg = 35.0

// Game holds the complete simulation state.
type Game struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand
	seed int64

	soil      *systems.Soil
	eco       *systems.Economy
	canopy    *plant.Tree
	roots     *plant.Tree
	scheduler *systems.Scheduler
	extender  *RootExtender
	autopilot *Autopilot // nil when disabled

	sfx       SoundQueue
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	// State
	tick    int32
	simTime float64
	paused  bool
	outcome systems.Outcome

	// Graphics mode
	camera       *camera.Camera
	hud          *ui.HUD
	screenWidth  float32
	screenHeight float32
	hover        Candidate
	hoverRej     Rejection
	hoverValid   bool
}

// NewGame creates a planted game. The only errors come from setting up the
// output directory.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	opts = opts.withDefaults()

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Sim.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{cfg: cfg, opts: opts}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		g.output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	if !opts.Headless {
		g.screenWidth = float32(cfg.Screen.Width)
		g.screenHeight = float32(cfg.Screen.Height)
		g.hud = ui.NewHUD()
		g.camera = camera.New(g.screenWidth, g.screenHeight, float32(cfg.Screen.PixelsPerU),
			float32(cfg.Soil.MinY), float32(cfg.Canopy.SegmentLength)*float32(cfg.Canopy.MaxDepth))
	}

	g.reset(seed)
	return g, nil
}

// reset builds a fresh soil and plant from seed. Output, camera and options
// carry over.
func (g *Game) reset(seed int64) {
	cfg := g.cfg
	statsWindow := cfg.Telemetry.StatsWindow
	if g.opts.StatsWindowSec > 0 {
		statsWindow = g.opts.StatsWindowSec
	}

	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
	g.collector = telemetry.NewCollector(statsWindow, cfg.Sim.DT)
	g.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.tick, g.simTime = 0, 0
	g.outcome = systems.Running
	g.paused = false
	g.hoverValid = false

	g.soil = systems.NewSoil(cfg.Soil)
	systems.GenerateSoil(g.soil, cfg.Soil, g.rng)
	g.eco = systems.NewEconomy(cfg.Economy, g.soil)

	hooks := plantHooks{g: g}
	g.canopy = plant.NewTree(plant.KindCanopy, cfg.Canopy, r2.Vec{}, g.rng, hooks)
	g.roots = plant.NewTree(plant.KindRoot, cfg.Roots, r2.Vec{}, g.rng, hooks)
	g.plant()

	g.scheduler = systems.NewScheduler(cfg, g.canopy, g.eco, g.rng)
	g.extender = NewRootExtender(cfg.Interaction, g.roots, g.soil, g.eco)
	g.autopilot = nil
	if cfg.Autopilot.Enabled || g.opts.Autopilot {
		g.autopilot = NewAutopilot(cfg, g.roots, g.eco, g.rng)
	}

	g.sfx.Play(SFXGameStart)
	slog.Info("plant sown",
		"seed", seed,
		"pools", g.soil.NumPools(),
		"rocks", g.soil.NumRocks(),
		"autopilot", g.autopilot != nil,
	)
}

// plant sows the canopy trunk, the taproot and one lateral root.
func (g *Game) plant() {
	g.canopy.Plant()
	root := g.roots.Plant()
	seed := g.roots.Segment(root).Points[0]
	g.roots.Fork(seed, plant.SideLeft, lateralRootDeg, nil)
}

// Step advances the simulation by dt seconds, bounded by sim.max_dt. Once the
// game is won or lost time stands still.
func (g *Game) Step(dt float64) {
	if g.outcome.Terminal() || dt <= 0 {
		return
	}
	dt = min(dt, g.cfg.Sim.MaxDT)

	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseGrowth)
	g.canopy.Tick(dt)
	g.roots.Tick(dt)

	g.perf.StartPhase(telemetry.PhaseSchedule)
	g.applySchedule(g.scheduler.Advance(dt))

	if g.autopilot != nil && !g.outcome.Terminal() {
		g.perf.StartPhase(telemetry.PhaseAutopilot)
		g.autopilot.Step(dt, g.ExtendRoot)
	}

	g.tick++
	g.simTime += dt

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perf.EndTick()
}

// applySchedule turns a scheduler report into events and sounds.
func (g *Game) applySchedule(rep systems.ScheduleReport) {
	var water, minerals float64
	for _, c := range rep.Cycles {
		water += c.Extracted[0]
		minerals += c.Extracted[1]
		for range c.Depleted {
			g.collector.Record(telemetry.NewEvent(g.tick, telemetry.EventPoolDepleted, 0, 0))
		}
	}
	g.collector.RecordCycles(rep.ResourceCycles, rep.GrowthCycles, water, minerals)

	if rep.BranchesGrown > 0 {
		ev := telemetry.NewEvent(g.tick, telemetry.EventBranchGrown, 0, 0)
		ev.Count = rep.BranchesGrown
		g.collector.Record(ev)
		g.sfx.Play(SFXBranchGrowth)
	}

	if rep.Outcome != g.outcome {
		g.setOutcome(rep.Outcome)
	}
}

func (g *Game) setOutcome(o systems.Outcome) {
	g.outcome = o
	switch o {
	case systems.Won:
		g.sfx.Play(SFXVictory)
		g.collector.Record(telemetry.NewEvent(g.tick, telemetry.EventWon, 0, 0))
	case systems.Lost:
		g.sfx.Play(SFXDefeat)
		g.collector.Record(telemetry.NewEvent(g.tick, telemetry.EventLost, 0, 0))
	}
	slog.Info("game over", "outcome", o.String(), "tick", g.tick, "sim_time", g.simTime)
	g.writeEvents()
}

// ExtendRoot grows a root toward a world-space target, the way a click does.
func (g *Game) ExtendRoot(target r2.Vec) (Commit, Rejection) {
	if g.outcome.Terminal() {
		return Commit{}, RejectGameOver
	}
	c, rej := g.extender.Commit(target)
	switch rej {
	case RejectNone:
		typ := telemetry.EventRootExtended
		if !c.Extend {
			typ = telemetry.EventRootForked
		}
		g.collector.Record(telemetry.NewEvent(g.tick, typ, target.X, target.Y))
		g.sfx.Play(SFXRootGrowth)
	case RejectRock:
		g.sfx.Play(SFXRockHit)
		fallthrough
	default:
		g.collector.Record(telemetry.NewRejectionEvent(g.tick, target.X, target.Y, rej.String()))
	}
	return c, rej
}

// Unload releases resources.
func (g *Game) Unload() {
	g.writeEvents()
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the number of steps simulated.
func (g *Game) Tick() int32 { return g.tick }

// SimTime returns the simulated time in seconds.
func (g *Game) SimTime() float64 { return g.simTime }

// Outcome returns whether the game is running, won or lost.
func (g *Game) Outcome() systems.Outcome { return g.outcome }

// Seed returns the RNG seed the game was created with.
func (g *Game) Seed() int64 { return g.seed }

// Canopy returns the above-ground tree.
func (g *Game) Canopy() *plant.Tree { return g.canopy }

// Roots returns the below-ground tree.
func (g *Game) Roots() *plant.Tree { return g.roots }

// Economy returns the resource economy.
func (g *Game) Economy() *systems.Economy { return g.eco }

// Soil returns the soil world.
func (g *Game) Soil() *systems.Soil { return g.soil }

// Sounds returns the pending sound queue.
func (g *Game) Sounds() *SoundQueue { return &g.sfx }
