package game

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sprout/config"
	"github.com/pthm-cable/sprout/plant"
	"github.com/pthm-cable/sprout/systems"
)

// Autopilot plays the root extension for headless runs. Every interval it
// proposes targets below random root points and commits the first one the
// extender accepts, as long as the plant keeps its root margin.
type Autopilot struct {
	cfg      config.AutopilotConfig
	interact config.InteractionConfig
	margin   int

	clock *systems.Clock
	rng   *rand.Rand
	roots *plant.Tree
	eco   *systems.Economy
}

// NewAutopilot creates an autopilot over the root tree.
func NewAutopilot(cfg *config.Config, roots *plant.Tree, eco *systems.Economy, rng *rand.Rand) *Autopilot {
	return &Autopilot{
		cfg:      cfg.Autopilot,
		interact: cfg.Interaction,
		margin:   cfg.Economy.MinRoots,
		clock:    systems.NewClock(cfg.Autopilot.Interval),
		rng:      rng,
		roots:    roots,
		eco:      eco,
	}
}

// Step advances the autopilot clock and, when it fires, tries to extend.
// commit applies a target the way a player click would.
func (a *Autopilot) Step(dt float64, commit func(target r2.Vec) (Commit, Rejection)) (attempts, committed int) {
	for range a.clock.Advance(dt) {
		if a.eco.HowManyRootsCanGrow() <= a.margin {
			continue
		}
		for range a.cfg.Attempts {
			attempts++
			if _, rej := commit(a.propose()); rej == RejectNone {
				committed++
				break
			}
		}
	}
	return attempts, committed
}

// propose picks a target below a random root point, between the minimum and
// maximum interaction radius away, spread sideways.
func (a *Autopilot) propose() r2.Vec {
	n := a.roots.NumPoints()
	from := a.roots.WorldPos(plant.PointID(a.rng.Intn(n)))
	reach := a.interact.MinRadius + a.rng.Float64()*(a.interact.MaxRadius-a.interact.MinRadius)
	dx := (a.rng.Float64()*2 - 1) * a.cfg.Spread
	dir := r2.Unit(r2.Vec{X: dx, Y: -1})
	return r2.Add(from, r2.Scale(reach, dir))
}
