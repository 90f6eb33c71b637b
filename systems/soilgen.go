package systems

import (
	"math/rand"

	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sprout/config"
)

// GenerateSoil scatters pools and rocks over the soil using perlin noise.
// Each cell samples the noise once at a jittered point: high values become
// pools, low values become rocks. Nothing is placed within ClearRadius of the
// plant origin.
func GenerateSoil(s *Soil, cfg config.SoilConfig, rng *rand.Rand) {
	noise := perlin.NewPerlin(cfg.NoiseAlpha, cfg.NoiseBeta, cfg.NoiseOctaves, rng.Int63())
	clearSq := cfg.ClearRadius * cfg.ClearRadius

	for y := cfg.MinY; y < cfg.MaxY; y += cfg.CellSize {
		for x := cfg.MinX; x < cfg.MaxX; x += cfg.CellSize {
			at := r2.Vec{
				X: x + rng.Float64()*cfg.CellSize,
				Y: y + rng.Float64()*cfg.CellSize,
			}
			if at.Y > cfg.MaxY || r2.Dot(at, at) < clearSq {
				continue
			}

			n := noise.Noise2D(at.X/cfg.NoiseScale, at.Y/cfg.NoiseScale)
			switch {
			case n > cfg.PoolThreshold:
				// Richer noise means a fuller pool.
				scale := 1 + (n - cfg.PoolThreshold)
				s.AddPool(at, cfg.PoolWater*scale, cfg.PoolMinerals*scale)
			case n < -cfg.RockThreshold:
				s.AddRock(at, cfg.RockSize)
			}
		}
	}
}
