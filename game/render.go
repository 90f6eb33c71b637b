package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sprout/components"
	"github.com/pthm-cable/sprout/plant"
	"github.com/pthm-cable/sprout/systems"
	"github.com/pthm-cable/sprout/ui"
)

var (
	skyColor    = rl.Color{R: 168, G: 206, B: 230, A: 255}
	soilColor   = rl.Color{R: 92, G: 64, B: 44, A: 255}
	barkColor   = rl.Color{R: 86, G: 58, B: 36, A: 255}
	leafColor   = rl.Color{R: 70, G: 140, B: 60, A: 255}
	rootColor   = rl.Color{R: 226, G: 205, B: 170, A: 255}
	poolColor   = rl.Color{R: 70, G: 130, B: 200, A: 200}
	rockColor   = rl.Color{R: 120, G: 120, B: 125, A: 255}
	markerOK    = rl.Color{R: 250, G: 240, B: 120, A: 255}
	markerNotOK = rl.Color{R: 230, G: 90, B: 80, A: 200}
)

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(skyColor)

	g.drawSoil()
	g.drawTree(g.roots, rootColor)
	g.drawTree(g.canopy, barkColor)
	g.drawLeaves()
	g.drawRootPreview()
	g.drawUI()

	rl.EndDrawing()
}

func (g *Game) toScreen(p r2.Vec) rl.Vector2 {
	x, y := g.camera.WorldToScreen(float32(p.X), float32(p.Y))
	return rl.Vector2{X: x, Y: y}
}

// drawSoil fills everything below ground and draws pools and rocks.
func (g *Game) drawSoil() {
	_, groundY := g.camera.WorldToScreen(0, 0)
	if groundY < g.screenHeight {
		top := max(groundY, 0)
		rl.DrawRectangle(0, int32(top), int32(g.screenWidth), int32(g.screenHeight-top), soilColor)
	}

	g.soil.EachPool(func(pos r2.Vec, pool *components.Pool) {
		r := float32(0.25 * math.Sqrt(pool.Water+pool.Minerals))
		if !g.camera.IsVisible(float32(pos.X), float32(pos.Y), r) {
			return
		}
		rl.DrawCircleV(g.toScreen(pos), g.camera.WorldLength(r), poolColor)
	})
	g.soil.EachRock(func(pos r2.Vec, radius float64) {
		r := float32(radius)
		if !g.camera.IsVisible(float32(pos.X), float32(pos.Y), r) {
			return
		}
		rl.DrawCircleV(g.toScreen(pos), g.camera.WorldLength(r), rockColor)
	})
}

// drawTree draws every segment polyline with its tapering widths.
func (g *Game) drawTree(t *plant.Tree, color rl.Color) {
	t.Walk(func(id plant.SegmentID) bool {
		line := t.Line(id)
		for i := 1; i < len(line.World); i++ {
			a, b := line.World[i-1], line.World[i]
			w := float32(line.Widths[i-1]+line.Widths[i]) / 2
			thick := max(g.camera.WorldLength(w), 1)
			rl.DrawLineEx(g.toScreen(a), g.toScreen(b), thick, color)
			rl.DrawCircleV(g.toScreen(b), thick/2, color)
		}
		return true
	})
}

// drawLeaves marks canopy tips that can still grow.
func (g *Game) drawLeaves() {
	g.canopy.Walk(func(id plant.SegmentID) bool {
		if g.canopy.AtMaxDepth(id) {
			return true
		}
		seg := g.canopy.Segment(id)
		tip := g.canopy.WorldPos(g.canopy.Tip(id))
		r := g.camera.WorldLength(float32(0.15 + 0.2*seg.Growth))
		rl.DrawCircleV(g.toScreen(tip), r, leafColor)
		return true
	})
}

// drawRootPreview shows the joint a click would grow from and a line to the
// mouse target.
func (g *Game) drawRootPreview() {
	if !g.hoverValid || g.hover.Point == plant.NoPoint {
		return
	}
	color := markerOK
	if g.hoverRej != RejectNone {
		color = markerNotOK
	}
	from := g.toScreen(g.hover.Pos)
	to := g.toScreen(g.hover.Target)
	rl.DrawLineEx(from, to, 2, color)

	pulse := 1 + 0.3*float32(math.Sin(rl.GetTime()*4))
	rl.DrawCircleLinesV(from, 8*pulse, color)
}

// drawUI renders the HUD and applies its buttons.
func (g *Game) drawUI() {
	stock := func(name string, r systems.Resource) ui.Stock {
		s := g.eco.Stock(r)
		return ui.Stock{Name: name, Value: s.Value, Max: s.Max, Gain: s.Gain}
	}

	data := ui.HUDData{
		Title: "Sprout",
		Stocks: [3]ui.Stock{
			stock("Water", systems.Water),
			stock("Minerals", systems.Minerals),
			stock("Energy", systems.Energy),
		},
		Branches:     g.eco.HowManyBranchesCanGrow(),
		Roots:        g.eco.HowManyRootsCanGrow(),
		Segments:     g.canopy.NumSegments(),
		RootSegments: g.roots.NumSegments(),
		Tick:         g.tick,
		SimTime:      g.simTime,
		Speed:        g.opts.StepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
	}
	if g.outcome.Terminal() {
		data.Outcome = g.outcome.String()
	}
	if g.hoverValid && g.hoverRej != RejectNone {
		data.Hint = fmt.Sprintf("Cannot grow here: %s", g.hoverRej)
	}

	act := g.hud.Draw(data)
	if act.TogglePause {
		g.paused = !g.paused
	}
	if act.Restart {
		g.Restart()
	}
}
