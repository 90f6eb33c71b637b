// Package ui draws the heads-up display over the plant view.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	GainColor     rl.Color
	LossColor     rl.Color

	Water    rl.Color
	Minerals rl.Color
	Energy   rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.RayWhite,
		GainColor:     rl.Color{R: 120, G: 210, B: 120, A: 255},
		LossColor:     rl.Color{R: 220, G: 110, B: 100, A: 255},

		Water:    rl.Color{R: 80, G: 150, B: 230, A: 255},
		Minerals: rl.Color{R: 190, G: 150, B: 90, A: 255},
		Energy:   rl.Color{R: 230, G: 210, B: 80, A: 255},

		Padding:        10,
		LineHeight:     18,
		LabelWidth:     70,
		BarHeight:      14,
		FontSize:       14,
		HeaderFontSize: 18,
	}
}

// DrawPanel draws a panel background with border.
func (t Theme) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, t.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, t.PanelBorder)
}
