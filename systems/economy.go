package systems

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sprout/components"
	"github.com/pthm-cable/sprout/config"
)

// Resource indexes the three plant resources.
type Resource int

const (
	Water Resource = iota
	Minerals
	Energy
	NumResources
)

func (r Resource) String() string {
	switch r {
	case Water:
		return "water"
	case Minerals:
		return "minerals"
	case Energy:
		return "energy"
	default:
		return fmt.Sprintf("resource(%d)", int(r))
	}
}

// Stock is one resource: its current value, its cap and its gain per cycle.
type Stock struct {
	Value float64
	Max   float64
	Gain  float64
}

// Want returns the delta the stock would like to take this cycle.
func (s Stock) Want() float64 {
	return math.Max(0, math.Min(s.Max-s.Value, s.Gain))
}

// clamp keeps the value within [0, Max].
func (s *Stock) clamp() {
	s.Value = math.Max(0, math.Min(s.Value, s.Max))
}

// CycleReport summarizes one resource cycle.
type CycleReport struct {
	Wanted    [NumResources]float64
	Realized  [NumResources]float64
	Extracted [2]float64 // Water and minerals pulled from pools
	Depleted  int        // Pools removed this cycle
}

// Economy tracks the plant's water, minerals and energy and the pools its
// roots are connected to.
type Economy struct {
	cfg    config.EconomyConfig
	soil   *Soil
	stocks [NumResources]Stock

	// Rates contributed by connected pools, included in the stock gains.
	poolRate [2]float64

	connected  []ecs.Entity
	subscribed map[ecs.Entity]bool

	// Lifetime counters for telemetry.
	poolsConnected int
	poolsDepleted  int
}

// NewEconomy creates an economy with the configured initial stocks and caps.
func NewEconomy(cfg config.EconomyConfig, soil *Soil) *Economy {
	e := &Economy{
		cfg:        cfg,
		soil:       soil,
		subscribed: make(map[ecs.Entity]bool),
	}
	e.stocks[Water] = Stock{Value: cfg.Initial.Water, Max: cfg.Max.Water, Gain: cfg.BaseGain.Water}
	e.stocks[Minerals] = Stock{Value: cfg.Initial.Minerals, Max: cfg.Max.Minerals, Gain: cfg.BaseGain.Minerals}
	e.stocks[Energy] = Stock{Value: cfg.Initial.Energy, Max: cfg.Max.Energy, Gain: cfg.BaseGain.Energy}
	for i := range e.stocks {
		e.stocks[i].clamp()
	}
	return e
}

// Stock returns the state of one resource.
func (e *Economy) Stock(r Resource) Stock {
	return e.stocks[r]
}

// Amounts returns the current stock values.
func (e *Economy) Amounts() config.Amounts {
	return config.Amounts{
		Water:    e.stocks[Water].Value,
		Minerals: e.stocks[Minerals].Value,
		Energy:   e.stocks[Energy].Value,
	}
}

// Connected returns the pools currently feeding the plant.
func (e *Economy) Connected() []ecs.Entity {
	return e.connected
}

// OnCanopyPointAdded applies the leaf deltas: more energy gain, a water
// transpiration cost and a larger water cap.
func (e *Economy) OnCanopyPointAdded() {
	e.stocks[Energy].Gain += e.cfg.LeafEnergyGain
	e.stocks[Water].Gain -= e.cfg.LeafWaterCost
	e.stocks[Water].Max += e.cfg.LeafWaterCap
}

// OnRootPointAdded raises every cap and connects the pools within reach of the
// new root point. Returns the number of pools newly connected.
func (e *Economy) OnRootPointAdded(at r2.Vec) int {
	e.stocks[Water].Max += e.cfg.RootCap.Water
	e.stocks[Minerals].Max += e.cfg.RootCap.Minerals
	e.stocks[Energy].Max += e.cfg.RootCap.Energy

	if e.soil == nil {
		return 0
	}

	added := 0
	for _, n := range e.soil.Query(at, e.cfg.PoolSearchRadius, components.KindPool) {
		pool := e.soil.Pool(n.E)
		if pool == nil {
			continue
		}
		already := e.subscribed[n.E]
		if already && !e.cfg.CompoundPoolDiscovery {
			continue
		}

		pool.WaterRate += e.cfg.PoolWaterExtraction
		pool.MineralsRate += e.cfg.PoolMineralsExtraction
		pool.Subscriptions++
		e.stocks[Water].Gain += e.cfg.PoolWaterExtraction
		e.stocks[Minerals].Gain += e.cfg.PoolMineralsExtraction
		e.poolRate[0] += e.cfg.PoolWaterExtraction
		e.poolRate[1] += e.cfg.PoolMineralsExtraction

		if !already {
			e.subscribed[n.E] = true
			e.connected = append(e.connected, n.E)
			e.poolsConnected++
			added++
		}
	}
	return added
}

// RunCycle performs one harvest: each stock wants min(cap-value, gain), the
// part of that gain owed to pools is extracted from them, and the realized
// deltas are applied. Pools emptied on both resources are removed.
func (e *Economy) RunCycle() CycleReport {
	var rep CycleReport
	for r := range e.stocks {
		rep.Wanted[r] = e.stocks[r].Want()
	}

	// Pools can only cover what they are subscribed for.
	var fromPools [2]float64
	for i := range fromPools {
		fromPools[i] = math.Max(0, math.Min(rep.Wanted[i], e.poolRate[i]))
	}

	remaining := fromPools
	kept := e.connected[:0]
	for _, ent := range e.connected {
		pool := e.soil.Pool(ent)
		if pool == nil {
			e.disconnect(ent, nil)
			continue
		}
		w, m, depleted := pool.Extract(remaining[0], remaining[1])
		remaining[0] -= w
		remaining[1] -= m
		rep.Extracted[0] += w
		rep.Extracted[1] += m
		if depleted {
			e.disconnect(ent, pool)
			rep.Depleted++
			continue
		}
		kept = append(kept, ent)
	}
	e.connected = kept

	for r := range e.stocks {
		realized := rep.Wanted[r]
		if r < 2 {
			realized += rep.Extracted[r] - fromPools[r]
		}
		rep.Realized[r] = realized
		e.stocks[r].Value += realized
		e.stocks[r].clamp()
	}
	return rep
}

// disconnect drops a pool's rates from the gains and removes it from the soil.
func (e *Economy) disconnect(ent ecs.Entity, pool *components.Pool) {
	if pool != nil {
		e.stocks[Water].Gain -= pool.WaterRate
		e.stocks[Minerals].Gain -= pool.MineralsRate
		e.poolRate[0] = math.Max(0, e.poolRate[0]-pool.WaterRate)
		e.poolRate[1] = math.Max(0, e.poolRate[1]-pool.MineralsRate)
		e.soil.RemovePool(ent)
		e.poolsDepleted++
		slog.Debug("pool depleted", "subscriptions", pool.Subscriptions)
	}
	delete(e.subscribed, ent)
}

// HowManyBranchesCanGrow returns how many branch growths the stocks can pay for.
func (e *Economy) HowManyBranchesCanGrow() int {
	return e.affordable(e.cfg.BranchCost)
}

// HowManyRootsCanGrow returns how many root growths the stocks can pay for.
func (e *Economy) HowManyRootsCanGrow() int {
	return e.affordable(e.cfg.RootCost)
}

func (e *Economy) affordable(cost config.Amounts) int {
	n := math.Inf(1)
	for r, c := range [NumResources]float64{cost.Water, cost.Minerals, cost.Energy} {
		if c <= 0 {
			continue
		}
		n = math.Min(n, math.Floor(e.stocks[r].Value/c))
	}
	if math.IsInf(n, 1) {
		// Free growth is only bounded by the depth budget.
		return math.MaxInt32
	}
	return max(0, int(n))
}

// SpendBranch deducts one branch growth. Returns false if unaffordable.
func (e *Economy) SpendBranch() bool {
	return e.spend(e.cfg.BranchCost)
}

// SpendRoot deducts one root growth. Returns false if unaffordable.
func (e *Economy) SpendRoot() bool {
	return e.spend(e.cfg.RootCost)
}

func (e *Economy) spend(cost config.Amounts) bool {
	if e.affordable(cost) < 1 {
		return false
	}
	e.stocks[Water].Value -= cost.Water
	e.stocks[Minerals].Value -= cost.Minerals
	e.stocks[Energy].Value -= cost.Energy
	for i := range e.stocks {
		e.stocks[i].clamp()
	}
	return true
}

// PoolsConnected returns the number of pools ever connected.
func (e *Economy) PoolsConnected() int { return e.poolsConnected }

// PoolsDepleted returns the number of pools drained and removed.
func (e *Economy) PoolsDepleted() int { return e.poolsDepleted }
