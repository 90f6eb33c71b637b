package main

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/sprout/config"
	"github.com/pthm-cable/sprout/game"
	"github.com/pthm-cable/sprout/systems"
)

// Penalty offsets, in multiples of the run length. A won run always beats a
// timeout, and a timeout always beats a loss.
const (
	timeoutPenalty = 1.0
	lossPenalty    = 2.0
)

// FitnessEvaluator runs headless autopilot games and scores how fast the
// canopy completes.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	mu       sync.Mutex
	lastRuns []runResult
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// runResult is the end state of one headless game.
type runResult struct {
	outcome  systems.Outcome
	simTime  float64
	progress float64 // Fraction of canopy segments at max depth
}

// LastWinRate returns the share of seeds won by the most recent evaluation.
func (fe *FitnessEvaluator) LastWinRate() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	if len(fe.lastRuns) == 0 {
		return 0
	}
	won := 0
	for _, r := range fe.lastRuns {
		if r.outcome == systems.Won {
			won++
		}
	}
	return float64(won) / float64(len(fe.lastRuns))
}

// Evaluate computes fitness for a parameter vector (lower = better), averaged
// over all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, r := range results {
		total += fe.computeFitness(r, cfg.Sim.DT)
	}

	fe.mu.Lock()
	fe.lastRuns = results
	fe.mu.Unlock()

	return total / float64(len(results))
}

// runSimulation plays one game until it ends or maxTicks is reached.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) runResult {
	g, err := game.NewGame(cfg, game.Options{
		Seed:      seed,
		Headless:  true,
		Autopilot: true,
	})
	if err != nil {
		slog.Error("failed to create game", "seed", seed, "error", err)
		return runResult{outcome: systems.Lost}
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks && !g.Outcome().Terminal() {
		g.UpdateHeadless()
	}

	st := g.Canopy().Stats()
	progress := 0.0
	if st.Segments > 0 {
		progress = float64(st.Complete) / float64(st.Segments)
	}
	return runResult{outcome: g.Outcome(), simTime: g.SimTime(), progress: progress}
}

// copyConfig returns a copy of the base config that parameters can be
// applied to without touching the base.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness maps a run to a cost in sim-seconds. A win costs its
// duration. A timeout or a loss costs the full run length times its penalty,
// plus the share of the canopy still incomplete.
func (fe *FitnessEvaluator) computeFitness(r runResult, dt float64) float64 {
	runSec := float64(fe.maxTicks) * dt
	switch r.outcome {
	case systems.Won:
		return r.simTime
	case systems.Lost:
		return runSec*(1+lossPenalty) + runSec*(1-clamp01(r.progress))
	default:
		return runSec*(1+timeoutPenalty) + runSec*(1-clamp01(r.progress))
	}
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
