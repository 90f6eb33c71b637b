package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const eps = 1e-9

func near(a, b r2.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func TestQuadBezier(t *testing.T) {
	p0 := r2.Vec{X: 0, Y: 0}
	c := r2.Vec{X: 1, Y: 2}
	p1 := r2.Vec{X: 2, Y: 0}

	tests := []struct {
		name string
		t    float64
		want r2.Vec
	}{
		{"start", 0, p0},
		{"end", 1, p1},
		{"mid", 0.5, r2.Vec{X: 1, Y: 1}},
		{"below range clamps", -3, p0},
		{"above range clamps", 7, p1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuadBezier(p0, c, p1, tt.t)
			if !near(got, tt.want) {
				t.Errorf("QuadBezier(t=%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestRotateDegs(t *testing.T) {
	tests := []struct {
		v    r2.Vec
		degs float64
		want r2.Vec
	}{
		{r2.Vec{X: 1, Y: 0}, 90, r2.Vec{X: 0, Y: 1}},
		{r2.Vec{X: 0, Y: 1}, 90, r2.Vec{X: -1, Y: 0}},
		{r2.Vec{X: 0, Y: 1}, 180, r2.Vec{X: 0, Y: -1}},
		{r2.Vec{X: 3, Y: 4}, 0, r2.Vec{X: 3, Y: 4}},
		{r2.Vec{X: 1, Y: 0}, -90, r2.Vec{X: 0, Y: -1}},
	}

	for _, tt := range tests {
		got := RotateDegs(tt.v, tt.degs)
		if !near(got, tt.want) {
			t.Errorf("RotateDegs(%v, %v) = %v, want %v", tt.v, tt.degs, got, tt.want)
		}
	}
}

func TestAngleToInvertsRotate(t *testing.T) {
	for _, degs := range []float64{0, 30, -45, 90, 135, -170} {
		dir := RotateDegs(Up, degs)
		got := AngleTo(dir)
		if math.Abs(got-degs) > 1e-6 {
			t.Errorf("AngleTo(RotateDegs(Up, %v)) = %v", degs, got)
		}
	}
	if AngleTo(r2.Vec{}) != 0 {
		t.Error("expected zero vector to map to angle 0")
	}
}

func TestFrameRoundtrip(t *testing.T) {
	f := Frame{Origin: r2.Vec{X: 2, Y: -3}, Angle: 180}

	local := r2.Vec{X: 0, Y: 1}
	world := f.ToWorld(local)
	if !near(world, r2.Vec{X: 2, Y: -4}) {
		t.Errorf("ToWorld = %v, want (2,-4)", world)
	}
	if back := f.ToLocal(world); !near(back, local) {
		t.Errorf("ToLocal(ToWorld(p)) = %v, want %v", back, local)
	}
}

func TestFrameChild(t *testing.T) {
	root := Frame{Angle: 180}
	child := root.Child(r2.Vec{X: 0, Y: 2}, 90)

	if !near(child.Origin, r2.Vec{X: 0, Y: -2}) {
		t.Errorf("child origin = %v, want (0,-2)", child.Origin)
	}
	if math.Abs(child.Angle-270) > eps {
		t.Errorf("child angle = %v, want 270", child.Angle)
	}

	// Local up in a 270 degree frame points along +X in world space.
	tip := child.ToWorld(Up)
	if !near(tip, r2.Vec{X: 1, Y: -2}) {
		t.Errorf("child tip = %v, want (1,-2)", tip)
	}
}

func TestClampAndLerp(t *testing.T) {
	if Clamp01(-1) != 0 || Clamp01(2) != 1 || Clamp01(0.3) != 0.3 {
		t.Error("Clamp01 out of range")
	}
	if Lerp(2, 4, 0.25) != 2.5 {
		t.Errorf("Lerp = %v, want 2.5", Lerp(2, 4, 0.25))
	}
	if Clamp(5, 0, 3) != 3 {
		t.Error("Clamp above range")
	}
}
