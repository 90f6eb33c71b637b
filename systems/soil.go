package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sprout/components"
	"github.com/pthm-cable/sprout/config"
	"github.com/pthm-cable/sprout/plant"
)

// Soil owns the objects buried underground: resource pools, rocks and the
// markers of grown root points. It answers "objects of kind K within radius R
// of point P" queries for the economy and the root extension controller.
type Soil struct {
	world *ecs.World
	grid  *SpatialGrid

	poolMapper *ecs.Map3[components.Position, components.Object, components.Pool]
	rockMapper *ecs.Map3[components.Position, components.Object, components.Rock]
	nodeMapper *ecs.Map3[components.Position, components.Object, components.RootNode]

	posMap  *ecs.Map1[components.Position]
	objMap  *ecs.Map1[components.Object]
	poolMap *ecs.Map[components.Pool]
	rockMap *ecs.Map1[components.Rock]
	nodeMap *ecs.Map1[components.RootNode]

	poolFilter *ecs.Filter2[components.Position, components.Pool]
	rockFilter *ecs.Filter2[components.Position, components.Rock]

	numPools, numRocks, numNodes int
	maxRockRadius                float64

	scratch []Neighbor
}

// NewSoil creates an empty soil covering the configured bounds. The grid
// extends up to y=0 so root nodes near the surface are indexed too.
func NewSoil(cfg config.SoilConfig) *Soil {
	world := ecs.NewWorld()
	return &Soil{
		world: world,
		grid:  NewSpatialGrid(cfg.MinX, cfg.MinY, cfg.MaxX, math.Max(cfg.MaxY, 0), cfg.CellSize),

		poolMapper: ecs.NewMap3[components.Position, components.Object, components.Pool](world),
		rockMapper: ecs.NewMap3[components.Position, components.Object, components.Rock](world),
		nodeMapper: ecs.NewMap3[components.Position, components.Object, components.RootNode](world),

		posMap:  ecs.NewMap1[components.Position](world),
		objMap:  ecs.NewMap1[components.Object](world),
		poolMap: ecs.NewMap[components.Pool](world),
		rockMap: ecs.NewMap1[components.Rock](world),
		nodeMap: ecs.NewMap1[components.RootNode](world),

		poolFilter: ecs.NewFilter2[components.Position, components.Pool](world),
		rockFilter: ecs.NewFilter2[components.Position, components.Rock](world),
	}
}

// AddPool places a resource pool. Extraction rates start at zero until a root
// discovers the pool.
func (s *Soil) AddPool(at r2.Vec, water, minerals float64) ecs.Entity {
	pos := components.PositionOf(at)
	obj := components.Object{Kind: components.KindPool}
	pool := components.Pool{Water: water, Minerals: minerals}
	e := s.poolMapper.NewEntity(&pos, &obj, &pool)
	s.grid.Insert(e, pos.X, pos.Y)
	s.numPools++
	return e
}

// AddRock places a circular obstacle.
func (s *Soil) AddRock(at r2.Vec, radius float64) ecs.Entity {
	pos := components.PositionOf(at)
	obj := components.Object{Kind: components.KindRock}
	rock := components.Rock{Radius: radius}
	e := s.rockMapper.NewEntity(&pos, &obj, &rock)
	s.grid.Insert(e, pos.X, pos.Y)
	s.numRocks++
	s.maxRockRadius = math.Max(s.maxRockRadius, radius)
	return e
}

// AddRootNode indexes a grown root point so it can be found by position.
func (s *Soil) AddRootNode(at r2.Vec, p plant.PointID) ecs.Entity {
	pos := components.PositionOf(at)
	obj := components.Object{Kind: components.KindRootNode}
	node := components.RootNode{Point: p}
	e := s.nodeMapper.NewEntity(&pos, &obj, &node)
	s.grid.Insert(e, pos.X, pos.Y)
	s.numNodes++
	return e
}

// Query returns objects of kind within radius of at, nearest first.
// The returned slice is reused by the next call.
func (s *Soil) Query(at r2.Vec, radius float64, kind components.Kind) []Neighbor {
	s.scratch = s.grid.QueryRadiusInto(s.scratch[:0], at.X, at.Y, radius, s.posMap, func(e ecs.Entity) bool {
		obj := s.objMap.Get(e)
		return obj != nil && obj.Kind == kind
	})
	return s.scratch
}

// Nearest returns the closest object of kind within radius of at.
func (s *Soil) Nearest(at r2.Vec, radius float64, kind components.Kind) (Neighbor, bool) {
	found := s.Query(at, radius, kind)
	if len(found) == 0 {
		return Neighbor{}, false
	}
	return found[0], true
}

// NearestRootNode returns the root point closest to at within radius.
func (s *Soil) NearestRootNode(at r2.Vec, radius float64) (plant.PointID, float64, bool) {
	n, ok := s.Nearest(at, radius, components.KindRootNode)
	if !ok {
		return plant.NoPoint, 0, false
	}
	return s.nodeMap.Get(n.E).Point, n.Dist, true
}

// RockNear reports whether any rock overlaps the circle of radius around at.
func (s *Soil) RockNear(at r2.Vec, radius float64) bool {
	for _, n := range s.Query(at, radius+s.maxRockRadius, components.KindRock) {
		if n.Dist <= radius+s.rockMap.Get(n.E).Radius {
			return true
		}
	}
	return false
}

// Pool returns the pool component of a live pool entity, or nil.
func (s *Soil) Pool(e ecs.Entity) *components.Pool {
	if !s.world.Alive(e) || !s.poolMap.Has(e) {
		return nil
	}
	return s.poolMap.Get(e)
}

// RemovePool destroys a pool entity and drops it from the spatial index.
func (s *Soil) RemovePool(e ecs.Entity) {
	if !s.world.Alive(e) || !s.poolMap.Has(e) {
		return
	}
	pos := s.posMap.Get(e)
	s.grid.Remove(e, pos.X, pos.Y)
	s.poolMapper.Remove(e)
	s.numPools--
}

// EachPool calls fn for every remaining pool.
func (s *Soil) EachPool(fn func(pos r2.Vec, pool *components.Pool)) {
	query := s.poolFilter.Query()
	for query.Next() {
		pos, pool := query.Get()
		fn(pos.Vec(), pool)
	}
}

// EachRock calls fn for every rock.
func (s *Soil) EachRock(fn func(pos r2.Vec, radius float64)) {
	query := s.rockFilter.Query()
	for query.Next() {
		pos, rock := query.Get()
		fn(pos.Vec(), rock.Radius)
	}
}

// PoolTotals sums the remaining water and minerals across all pools.
func (s *Soil) PoolTotals() (water, minerals float64) {
	s.EachPool(func(_ r2.Vec, p *components.Pool) {
		water += p.Water
		minerals += p.Minerals
	})
	return water, minerals
}

// NumPools returns the number of remaining pools.
func (s *Soil) NumPools() int { return s.numPools }

// NumRocks returns the number of rocks.
func (s *Soil) NumRocks() int { return s.numRocks }

// NumRootNodes returns the number of indexed root points.
func (s *Soil) NumRootNodes() int { return s.numNodes }
