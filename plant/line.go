package plant

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sprout/geom"
)

// Line is the renderable polyline of a segment: bezier samples through its
// points with a width per sample.
type Line struct {
	Local  []r2.Vec // Samples in the segment frame
	World  []r2.Vec // Samples in world space
	Widths []float64
}

// widthKey is one key of the piecewise-linear width curve.
type widthKey struct {
	time, value float64
}

// Line returns the polyline for a segment, rebuilding it if the segment
// changed since the last call. The returned slices are owned by the tree.
func (t *Tree) Line(id SegmentID) Line {
	s := &t.segments[id]
	if s.dirty {
		t.rebuildLine(id)
		s.dirty = false
	}
	return s.line
}

// Thickness maps an accumulated point width to a render width.
func (t *Tree) Thickness(width float64) float64 {
	if width <= 0 {
		return 0
	}
	return t.cfg.ThicknessFactor * math.Log10(1+width) / 2
}

func (t *Tree) rebuildLine(id SegmentID) {
	s := &t.segments[id]
	n := len(s.Points)
	sub := max(t.cfg.CurveSubdivisions, 1)

	ln := Line{
		Local:  s.line.Local[:0],
		World:  s.line.World[:0],
		Widths: s.line.Widths[:0],
	}
	keys := t.widthKeys(s)

	first := t.points[s.Points[0]].Pos
	ln.Local = append(ln.Local, first)
	ln.Widths = append(ln.Widths, evalWidth(keys, 0))
	for i := 1; i < n; i++ {
		p0 := t.points[s.Points[i-1]].Pos
		p1 := &t.points[s.Points[i]]
		for j := 1; j <= sub; j++ {
			f := float64(j) / float64(sub)
			ln.Local = append(ln.Local, geom.QuadBezier(p0, p1.Control, p1.Pos, f))
			ln.Widths = append(ln.Widths, evalWidth(keys, (float64(i-1)+f)/float64(n-1)))
		}
	}
	for _, p := range ln.Local {
		ln.World = append(ln.World, s.Frame.ToWorld(p))
	}
	s.line = ln
}

// widthKeys builds one key per point at evenly spaced times. The tip key has
// zero width and slides from the previous key toward the end as the segment
// grows, so a fresh point tapers in.
func (t *Tree) widthKeys(s *Segment) []widthKey {
	n := len(s.Points)
	keys := make([]widthKey, n)
	last := float64(n - 1)
	for i := 0; i < n-1; i++ {
		keys[i] = widthKey{
			time:  float64(i) / last,
			value: t.Thickness(t.points[s.Points[i]].Width),
		}
	}
	keys[n-1] = widthKey{
		time:  geom.Lerp(float64(n-2)/last, 1, geom.Clamp01(s.Growth)),
		value: 0,
	}
	return keys
}

func evalWidth(keys []widthKey, u float64) float64 {
	if u <= keys[0].time {
		return keys[0].value
	}
	last := keys[len(keys)-1]
	if u >= last.time {
		return last.value
	}
	for k := 0; k < len(keys)-1; k++ {
		a, b := keys[k], keys[k+1]
		if u > b.time {
			continue
		}
		span := b.time - a.time
		if span <= 0 {
			return b.value
		}
		return geom.Lerp(a.value, b.value, (u-a.time)/span)
	}
	return last.value
}
