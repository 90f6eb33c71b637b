// Package components defines ECS components for objects buried in the soil.
package components

import (
	"math"

	"github.com/pthm-cable/sprout/plant"
)

// Kind distinguishes soil objects for spatial queries.
type Kind uint8

const (
	KindPool Kind = iota // Water and minerals reservoir
	KindRock             // Obstacle that blocks root extension
	KindRootNode         // A grown root point
)

func (k Kind) String() string {
	switch k {
	case KindPool:
		return "pool"
	case KindRock:
		return "rock"
	case KindRootNode:
		return "root_node"
	default:
		return "unknown"
	}
}

// Object tags an entity with its soil kind.
type Object struct {
	Kind Kind
}

// Pool is a finite reservoir tapped by nearby root points.
type Pool struct {
	Water    float64
	Minerals float64

	// Extraction per resource cycle; raised each time a root discovers the pool.
	WaterRate    float64
	MineralsRate float64

	Subscriptions int // Root points that discovered the pool
}

// Extract removes up to the wanted amounts from the pool, each capped by the
// pool's extraction rate and its remaining stock. depleted reports whether the
// pool has no water and no minerals left.
func (p *Pool) Extract(wantWater, wantMinerals float64) (water, minerals float64, depleted bool) {
	water = math.Max(0, math.Min(math.Min(p.WaterRate, wantWater), p.Water))
	minerals = math.Max(0, math.Min(math.Min(p.MineralsRate, wantMinerals), p.Minerals))
	p.Water -= water
	p.Minerals -= minerals
	return water, minerals, p.Empty()
}

// Empty reports whether both stocks are exhausted.
func (p *Pool) Empty() bool {
	return p.Water <= 0 && p.Minerals <= 0
}

// Rock is a circular obstacle.
type Rock struct {
	Radius float64
}

// RootNode links a soil entity back to the root point it marks.
type RootNode struct {
	Point plant.PointID
}
