package main

import (
	"testing"

	"github.com/pthm-cable/sprout/config"
	"github.com/pthm-cable/sprout/systems"
)

func TestParamRoundTrip(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	got := pv.ExtractFromConfig(cfg)
	if len(got) != pv.Dim() {
		t.Fatalf("extracted %d values, want %d", len(got), pv.Dim())
	}
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s: config default %f, spec default %f", spec.Name, got[i], spec.Default)
		}
	}

	raw := pv.Denormalize(pv.Normalize(got))
	for i := range raw {
		if d := raw[i] - got[i]; d > 1e-9 || d < -1e-9 {
			t.Errorf("%s: round trip %f, want %f", pv.Specs[i].Name, raw[i], got[i])
		}
	}
}

func TestApplyToConfigClampsAndDerives(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	values := pv.DefaultVector()
	values[0] = 100 // canopy growth speed above bound
	values[7] = 2   // resource interval
	pv.ApplyToConfig(cfg, values)

	if cfg.Canopy.GrowthSpeed != pv.Specs[0].Max {
		t.Errorf("growth speed = %f, want clamped to %f", cfg.Canopy.GrowthSpeed, pv.Specs[0].Max)
	}
	want := 2 * cfg.Schedule.GrowthIntervalMultiple
	if cfg.Derived.GrowthInterval != want {
		t.Errorf("growth interval = %f, want %f", cfg.Derived.GrowthInterval, want)
	}
}

func TestFitnessOrdering(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(), 600, []int64{1}, config.Default())
	dt := 1.0 / 60

	fastWin := fe.computeFitness(runResult{outcome: systems.Won, simTime: 5}, dt)
	slowWin := fe.computeFitness(runResult{outcome: systems.Won, simTime: 9}, dt)
	timeout := fe.computeFitness(runResult{outcome: systems.Running, progress: 1}, dt)
	nearTimeout := fe.computeFitness(runResult{outcome: systems.Running, progress: 0.5}, dt)
	loss := fe.computeFitness(runResult{outcome: systems.Lost, progress: 1}, dt)

	if !(fastWin < slowWin && slowWin < timeout && timeout < nearTimeout && nearTimeout < loss) {
		t.Errorf("unexpected ordering: win %f/%f timeout %f/%f loss %f",
			fastWin, slowWin, timeout, nearTimeout, loss)
	}
}

func TestEvaluateCopiesConfig(t *testing.T) {
	base := config.Default()
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 1, []int64{1, 2}, base)

	values := pv.DefaultVector()
	values[2] = 0.9
	fe.Evaluate(values)

	if base.Branching.Chance != 0.5 {
		t.Errorf("base config mutated: branching chance %f", base.Branching.Chance)
	}
	if r := fe.LastWinRate(); r != 0 {
		t.Errorf("win rate after one tick = %f, want 0", r)
	}
}
