// Package geom provides the 2D curve and transform helpers used by the growth model.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Up is the local growth direction of every segment.
var Up = r2.Vec{X: 0, Y: 1}

// QuadBezier evaluates the quadratic bezier through p0, c, p1 at t.
// t is clamped to [0, 1].
func QuadBezier(p0, c, p1 r2.Vec, t float64) r2.Vec {
	t = Clamp01(t)
	u := 1 - t
	return r2.Add(
		r2.Add(r2.Scale(u*u, p0), r2.Scale(2*u*t, c)),
		r2.Scale(t*t, p1),
	)
}

// RotateDegs rotates v counter-clockwise around the origin by degs degrees.
func RotateDegs(v r2.Vec, degs float64) r2.Vec {
	return RotateRads(v, degs*math.Pi/180)
}

// RotateRads rotates v counter-clockwise around the origin by rads radians.
func RotateRads(v r2.Vec, rads float64) r2.Vec {
	return r2.Rotate(v, rads, r2.Vec{})
}

// AngleTo returns the rotation in degrees that turns Up onto dir.
// A zero dir yields 0.
func AngleTo(dir r2.Vec) float64 {
	if dir.X == 0 && dir.Y == 0 {
		return 0
	}
	return math.Atan2(-dir.X, dir.Y) * 180 / math.Pi
}

// Clamp01 clamps v to the [0, 1] range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp clamps v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Dist returns the Euclidean distance between p and q.
func Dist(p, q r2.Vec) float64 {
	return r2.Norm(r2.Sub(p, q))
}
