package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window, indexed by EventType
	counts [len(eventNames)]int

	resourceCycles int
	growthCycles   int
	extractedW     float64
	extractedM     float64

	// Events not yet written out
	pending []Event
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record counts an event and queues it for the event log.
func (c *Collector) Record(ev Event) {
	if int(ev.Type) < len(c.counts) {
		c.counts[ev.Type]++
	}
	c.pending = append(c.pending, ev)
}

// RecordCycles adds scheduler cycle counts and pool extraction.
func (c *Collector) RecordCycles(resource, growth int, water, minerals float64) {
	c.resourceCycles += resource
	c.growthCycles += growth
	c.extractedW += water
	c.extractedM += minerals
}

// Count returns how many events of a type were recorded this window.
func (c *Collector) Count(t EventType) int {
	if int(t) >= len(c.counts) {
		return 0
	}
	return c.counts[t]
}

// DrainEvents returns queued events and clears the queue.
func (c *Collector) DrainEvents() []Event {
	out := c.pending
	c.pending = nil
	return out
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample is the plant and soil state at the end of a window.
type Sample struct {
	CanopySegments, CanopyPoints, CanopyComplete int
	RootSegments, RootPoints                     int
	Depths                                       []float64

	Water, WaterMax       float64
	Minerals, MineralsMax float64
	Energy, EnergyMax     float64

	PoolsLeft, PoolsAttached int
	PoolWater, PoolMinerals  float64

	BranchBudget, RootBudget int
	Outcome                  string
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	mean, std, p50, p90 := ComputeDepthStats(s.Depths)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		CanopySegments: s.CanopySegments,
		CanopyPoints:   s.CanopyPoints,
		CanopyComplete: s.CanopyComplete,
		RootSegments:   s.RootSegments,
		RootPoints:     s.RootPoints,

		DepthMean: mean,
		DepthStd:  std,
		DepthP50:  p50,
		DepthP90:  p90,

		BranchesGrown:  c.counts[EventBranchGrown],
		RootsExtended:  c.counts[EventRootExtended],
		RootsForked:    c.counts[EventRootForked],
		Rejections:     c.counts[EventExtensionRejected],
		PoolsConnected: c.counts[EventPoolConnected],
		PoolsDepleted:  c.counts[EventPoolDepleted],
		ResourceCycles: c.resourceCycles,
		GrowthCycles:   c.growthCycles,

		Water:       s.Water,
		WaterMax:    s.WaterMax,
		Minerals:    s.Minerals,
		MineralsMax: s.MineralsMax,
		Energy:      s.Energy,
		EnergyMax:   s.EnergyMax,

		PoolsLeft:         s.PoolsLeft,
		PoolsAttached:     s.PoolsAttached,
		PoolWater:         s.PoolWater,
		PoolMinerals:      s.PoolMinerals,
		ExtractedWater:    c.extractedW,
		ExtractedMinerals: c.extractedM,
		BranchBudget:      s.BranchBudget,
		RootBudget:        s.RootBudget,
		Outcome:           s.Outcome,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.counts = [len(eventNames)]int{}
	c.resourceCycles = 0
	c.growthCycles = 0
	c.extractedW = 0
	c.extractedM = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
