package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// UpdateHeadless runs one update worth of fixed steps without graphics.
func (g *Game) UpdateHeadless() {
	for range g.opts.StepsPerUpdate {
		g.Step(g.cfg.Sim.DT)
	}
	g.sfx.Flush(g.opts.Sounds)
}

// Update handles input and advances the simulation by the frame time.
func (g *Game) Update() {
	g.perf.RecordFrame()
	g.handleInput()

	if !g.paused {
		dt := float64(rl.GetFrameTime())
		for range g.opts.StepsPerUpdate {
			g.Step(dt)
		}
	}
	g.sfx.Flush(g.opts.Sounds)
}

// Restart replaces the simulation with a freshly planted one, keeping the
// window, camera and output.
func (g *Game) Restart() {
	g.writeEvents()
	g.reset(g.rng.Int63())
}
