package systems

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/sprout/config"
	"github.com/pthm-cable/sprout/plant"
)

// Clock is a fixed-interval logical timer advanced by the caller.
type Clock struct {
	interval float64
	elapsed  float64
	next     func() float64 // Optional: picks the interval after each fire
}

// NewClock creates a clock that fires every interval seconds.
func NewClock(interval float64) *Clock {
	return &Clock{interval: interval}
}

// NewJitteredClock creates a clock whose interval is re-rolled after every fire
// within +/- band around base.
func NewJitteredClock(base, band float64, rng *rand.Rand) *Clock {
	roll := func() float64 {
		return base * (1 + (rng.Float64()*2-1)*band)
	}
	return &Clock{interval: roll(), next: roll}
}

// Advance moves the clock forward by dt and returns how many times it fired.
func (c *Clock) Advance(dt float64) int {
	if c.interval <= 0 {
		return 0
	}
	c.elapsed += dt
	fired := 0
	for c.elapsed >= c.interval {
		c.elapsed -= c.interval
		fired++
		if c.next != nil {
			c.interval = c.next()
		}
	}
	return fired
}

// Interval returns the current interval.
func (c *Clock) Interval() float64 { return c.interval }

// Outcome is the game state evaluated by the scheduler.
type Outcome uint8

const (
	Running Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "running"
	}
}

// Terminal reports whether the simulation should stop advancing.
func (o Outcome) Terminal() bool { return o != Running }

// ScheduleReport summarizes what one Advance call did.
type ScheduleReport struct {
	ResourceCycles int
	GrowthCycles   int
	BranchesGrown  int
	Cycles         []CycleReport
	Outcome        Outcome
}

// Scheduler drives the resource and growth cycles and evaluates win and loss.
type Scheduler struct {
	schedule  config.ScheduleConfig
	economy   config.EconomyConfig
	branching config.BranchingConfig

	canopy *plant.Tree
	eco    *Economy

	resource *Clock
	growth   *Clock

	outcome Outcome
}

// NewScheduler creates a scheduler over the canopy tree and the economy.
func NewScheduler(cfg *config.Config, canopy *plant.Tree, eco *Economy, rng *rand.Rand) *Scheduler {
	return &Scheduler{
		schedule:  cfg.Schedule,
		economy:   cfg.Economy,
		branching: cfg.Branching,
		canopy:    canopy,
		eco:       eco,
		resource:  NewClock(cfg.Schedule.ResourceInterval),
		growth:    NewJitteredClock(cfg.Derived.GrowthInterval, cfg.Schedule.GrowthIntervalBand, rng),
	}
}

// Outcome returns the current game state.
func (s *Scheduler) Outcome() Outcome { return s.outcome }

// Advance moves both clocks by dt and runs every cycle that fired: resource
// cycles first, then growth cycles. Once terminal, Advance does nothing.
func (s *Scheduler) Advance(dt float64) ScheduleReport {
	var rep ScheduleReport
	if s.outcome.Terminal() {
		rep.Outcome = s.outcome
		return rep
	}

	resourceFires := s.resource.Advance(dt)
	growthFires := s.growth.Advance(dt)

	for range resourceFires {
		if s.outcome.Terminal() {
			break
		}
		rep.Cycles = append(rep.Cycles, s.resourceCycle())
		rep.ResourceCycles++
	}
	for range growthFires {
		if s.outcome.Terminal() {
			break
		}
		if s.growthCycle() {
			rep.BranchesGrown++
		}
		rep.GrowthCycles++
	}

	rep.Outcome = s.outcome
	return rep
}

// resourceCycle harvests and checks the loss condition.
func (s *Scheduler) resourceCycle() CycleReport {
	cycle := s.eco.RunCycle()
	if s.eco.HowManyRootsCanGrow() == 0 {
		s.outcome = Lost
		slog.Info("plant starved", "stocks", s.eco.Amounts())
	}
	return cycle
}

// CanAutoGrow reports whether the stocks allow an autonomous branch growth
// while keeping a margin for roots.
func (s *Scheduler) CanAutoGrow() bool {
	return s.eco.HowManyBranchesCanGrow() >= s.economy.MinBranches &&
		s.eco.HowManyRootsCanGrow() >= s.economy.MinRoots
}

// growthCycle grows the best canopy segment if it is ready and affordable.
func (s *Scheduler) growthCycle() bool {
	if !s.CanAutoGrow() {
		return false
	}
	id, score := s.canopy.FindBestSegmentToGrow()
	if id == plant.NoSegment || score < 1 {
		return false
	}
	if !s.canopy.GrowBranch(id, s.branching) {
		return false
	}
	s.eco.SpendBranch()

	if s.canopy.AllAtMaxDepth() {
		s.outcome = Won
		slog.Info("canopy complete", "segments", s.canopy.NumSegments())
	}
	return true
}
