package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Stock is one resource line of the HUD.
type Stock struct {
	Name  string
	Value float64
	Max   float64
	Gain  float64
}

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Stocks       [3]Stock // Water, minerals, energy
	Branches     int      // Affordable canopy growths
	Roots        int      // Affordable root extensions
	Segments     int
	RootSegments int
	Tick         int32
	SimTime      float64
	Speed        int
	FPS          int32
	Paused       bool
	Outcome      string // "" while running
	Hint         string // Root extension preview status
	ScreenWidth  int32
	ScreenHeight int32
}

// HUDActions are the buttons pressed this frame.
type HUDActions struct {
	TogglePause bool
	Restart     bool
}

// PanelWidth is the width of the resource panel in pixels.
const PanelWidth = 260

// HUD renders the resource panel, status line and controls.
type HUD struct {
	Theme Theme
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{Theme: DefaultTheme()}
}

// Contains reports whether a screen position falls on the HUD panel.
func (h *HUD) Contains(x, y float32) bool {
	return x >= 0 && x <= float32(PanelWidth+h.Theme.Padding) && y >= 0 && y <= float32(h.panelHeight()+h.Theme.Padding)
}

func (h *HUD) panelHeight() int32 {
	return h.Theme.HeaderFontSize + 3*2*h.Theme.LineHeight + 5*h.Theme.LineHeight + 2*h.Theme.Padding
}

// Draw renders the HUD and returns which buttons were pressed.
func (h *HUD) Draw(data HUDData) HUDActions {
	t := h.Theme
	var act HUDActions

	x := t.Padding
	y := t.Padding
	h.Theme.DrawPanel(x, y, PanelWidth, h.panelHeight())
	x += t.Padding
	y += t.Padding

	rl.DrawText(data.Title, x, y, t.HeaderFontSize, t.SectionHeader)
	y += t.HeaderFontSize + 4

	colors := [3]rl.Color{t.Water, t.Minerals, t.Energy}
	barW := float32(PanelWidth - 2*t.Padding - t.LabelWidth)
	for i, s := range data.Stocks {
		rl.DrawText(s.Name, x, y, t.FontSize, colors[i])
		gain := t.GainColor
		if s.Gain < 0 {
			gain = t.LossColor
		}
		rl.DrawText(FormatStock(s.Value, s.Max), x+t.LabelWidth, y, t.FontSize, t.ValueColor)
		rl.DrawText(FormatGain(s.Gain), x+t.LabelWidth+110, y, t.FontSize, gain)
		y += t.LineHeight

		hi := float32(s.Max)
		if hi <= 0 {
			hi = 1
		}
		gui.ProgressBar(
			rl.Rectangle{X: float32(x + t.LabelWidth), Y: float32(y), Width: barW, Height: float32(t.BarHeight)},
			"", "",
			float32(s.Value), 0, hi,
		)
		y += t.LineHeight
	}

	rl.DrawText(fmt.Sprintf("Can grow: %d branches | %d roots", data.Branches, data.Roots), x, y, t.FontSize, t.LabelColor)
	y += t.LineHeight
	rl.DrawText(fmt.Sprintf("Canopy: %d | Roots: %d segments", data.Segments, data.RootSegments), x, y, t.FontSize, t.LabelColor)
	y += t.LineHeight
	rl.DrawText(fmt.Sprintf("t=%.1fs | Speed: %dx | FPS: %d", data.SimTime, data.Speed, data.FPS), x, y, t.FontSize, t.LabelColor)
	y += t.LineHeight + 4

	pauseLabel := "Pause"
	if data.Paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 110, Height: 24}, pauseLabel) {
		act.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: float32(x + 120), Y: float32(y), Width: 110, Height: 24}, "Restart") {
		act.Restart = true
	}

	if data.Hint != "" {
		rl.DrawText(data.Hint, t.Padding, data.ScreenHeight-50, t.FontSize, t.LabelColor)
	}
	if data.Outcome != "" {
		h.drawBanner(data)
	}
	h.DrawControls(data.ScreenHeight, "Click: grow root | W/S or arrows: scroll | wheel: zoom | SPACE: pause | R: restart | < >: speed")
	return act
}

func (h *HUD) drawBanner(data HUDData) {
	text := "The plant starved"
	color := h.Theme.LossColor
	if data.Outcome == "won" {
		text = "The canopy is complete!"
		color = h.Theme.GainColor
	}
	const size = 36
	w := rl.MeasureText(text, size)
	rl.DrawText(text, (data.ScreenWidth-w)/2, data.ScreenHeight/3, size, color)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, h.Theme.Padding, screenHeight-25, 14, rl.Gray)
}
