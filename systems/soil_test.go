package systems

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sprout/components"
	"github.com/pthm-cable/sprout/config"
)

func testSoil() *Soil {
	return NewSoil(config.Default().Soil)
}

func TestSoilQuery(t *testing.T) {
	s := testSoil()
	near := s.AddPool(r2.Vec{X: 0, Y: -5}, 10, 5)
	s.AddPool(r2.Vec{X: 0.5, Y: -6}, 10, 5)
	s.AddRock(r2.Vec{X: 0, Y: -4}, 0.5)

	got := s.Query(r2.Vec{X: 0, Y: -4.5}, 2, components.KindPool)
	if len(got) != 2 {
		t.Fatalf("expected 2 pools in range, got %d", len(got))
	}
	if got[0].E != near {
		t.Error("expected results sorted nearest first")
	}

	if n, ok := s.Nearest(r2.Vec{X: 10, Y: -10}, 1, components.KindPool); ok {
		t.Errorf("expected nothing in range, got %+v", n)
	}
}

func TestSoilNearestRootNode(t *testing.T) {
	s := testSoil()
	s.AddRootNode(r2.Vec{X: 0, Y: -1}, 1)
	s.AddRootNode(r2.Vec{X: 0, Y: -3}, 4)

	p, dist, ok := s.NearestRootNode(r2.Vec{X: 0.5, Y: -3.5}, 3)
	if !ok || p != 4 {
		t.Fatalf("nearest = %d (ok=%v), want 4", p, ok)
	}
	if dist <= 0 || dist > 1 {
		t.Errorf("unexpected distance %f", dist)
	}
	if s.NumRootNodes() != 2 {
		t.Errorf("expected 2 root nodes, got %d", s.NumRootNodes())
	}
}

func TestSoilRockNear(t *testing.T) {
	s := testSoil()
	s.AddRock(r2.Vec{X: 3, Y: -5}, 0.5)

	tests := []struct {
		name   string
		at     r2.Vec
		radius float64
		want   bool
	}{
		{"overlapping", r2.Vec{X: 3.8, Y: -5}, 0.4, true},
		{"touching center", r2.Vec{X: 3, Y: -5}, 0.1, true},
		{"clear", r2.Vec{X: 5, Y: -5}, 0.5, false},
	}
	for _, tt := range tests {
		if got := s.RockNear(tt.at, tt.radius); got != tt.want {
			t.Errorf("%s: RockNear = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSoilRemovePool(t *testing.T) {
	s := testSoil()
	e := s.AddPool(r2.Vec{X: 1, Y: -8}, 3, 3)

	if s.Pool(e) == nil {
		t.Fatal("expected live pool")
	}
	s.RemovePool(e)
	if s.Pool(e) != nil {
		t.Error("removed pool should not resolve")
	}
	if got := s.Query(r2.Vec{X: 1, Y: -8}, 1, components.KindPool); len(got) != 0 {
		t.Errorf("removed pool still indexed: %d results", len(got))
	}
	if s.NumPools() != 0 {
		t.Errorf("expected 0 pools, got %d", s.NumPools())
	}

	// Removing twice is a no-op.
	s.RemovePool(e)
	if s.NumPools() != 0 {
		t.Errorf("double remove changed count: %d", s.NumPools())
	}
}

func TestGenerateSoil(t *testing.T) {
	cfg := config.Default().Soil
	s := NewSoil(cfg)
	GenerateSoil(s, cfg, rand.New(rand.NewSource(7)))

	if s.NumPools()+s.NumRocks() == 0 {
		t.Fatal("expected generated soil objects")
	}

	clearSq := cfg.ClearRadius * cfg.ClearRadius
	check := func(pos r2.Vec) {
		if r2.Dot(pos, pos) < clearSq {
			t.Errorf("object at %v inside clear radius", pos)
		}
		if pos.X < cfg.MinX || pos.X > cfg.MaxX+cfg.CellSize || pos.Y < cfg.MinY || pos.Y > cfg.MaxY {
			t.Errorf("object at %v outside soil bounds", pos)
		}
	}
	s.EachPool(func(pos r2.Vec, p *components.Pool) {
		check(pos)
		if p.Water < cfg.PoolWater || p.Minerals < cfg.PoolMinerals {
			t.Errorf("pool below base stock: %+v", p)
		}
	})
	s.EachRock(func(pos r2.Vec, radius float64) {
		check(pos)
		if radius != cfg.RockSize {
			t.Errorf("rock radius = %f, want %f", radius, cfg.RockSize)
		}
	})
}

func TestSpatialGridClampsOutOfBounds(t *testing.T) {
	s := testSoil()
	// Above the soil bounds; still indexed in the border row.
	s.AddRootNode(r2.Vec{X: 0, Y: 0.5}, 2)
	if _, _, ok := s.NearestRootNode(r2.Vec{X: 0, Y: 0}, 1); !ok {
		t.Error("expected node near the surface to be found")
	}
}
