package geom

import "gonum.org/v1/gonum/spatial/r2"

// Frame is a rigid 2D transform: a world-space origin and a rotation in degrees.
// Segments grow in their own frame, nested inside the frame of their parent segment.
type Frame struct {
	Origin r2.Vec
	Angle  float64
}

// ToWorld maps a frame-local point to world space.
func (f Frame) ToWorld(local r2.Vec) r2.Vec {
	return r2.Add(f.Origin, RotateDegs(local, f.Angle))
}

// ToLocal maps a world point into the frame.
func (f Frame) ToLocal(world r2.Vec) r2.Vec {
	return RotateDegs(r2.Sub(world, f.Origin), -f.Angle)
}

// VectorToLocal maps a world-space direction into the frame, ignoring the origin.
func (f Frame) VectorToLocal(v r2.Vec) r2.Vec {
	return RotateDegs(v, -f.Angle)
}

// Child returns the frame rooted at a local point of f, rotated by relDeg.
func (f Frame) Child(localOrigin r2.Vec, relDeg float64) Frame {
	return Frame{
		Origin: f.ToWorld(localOrigin),
		Angle:  f.Angle + relDeg,
	}
}
