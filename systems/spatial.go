// Package systems provides the soil, economy and scheduling systems of the simulation.
package systems

import (
	"math"
	"sort"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sprout/components"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E    ecs.Entity
	Pos  r2.Vec
	Dist float64
}

// SpatialGrid provides cell-based neighbor lookups over a bounded rectangle.
// Positions outside the bounds are clamped into the border cells.
type SpatialGrid struct {
	cellSize   float64
	minX, minY float64
	cols, rows int
	cells      [][]ecs.Entity
}

// NewSpatialGrid creates a spatial grid covering [minX,maxX] x [minY,maxY].
func NewSpatialGrid(minX, minY, maxX, maxY, cellSize float64) *SpatialGrid {
	cols := int((maxX-minX)/cellSize) + 1
	rows := int((maxY-minY)/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 4)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		minX:     minX,
		minY:     minY,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, x, y float64) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], e)
}

// Remove deletes an entity previously inserted at the given position.
func (g *SpatialGrid) Remove(e ecs.Entity, x, y float64) {
	idx := g.cellIndex(x, y)
	cell := g.cells[idx]
	for i, other := range cell {
		if other == e {
			cell[i] = cell[len(cell)-1]
			g.cells[idx] = cell[:len(cell)-1]
			return
		}
	}
}

// MaxQueryResults caps the number of neighbors returned by spatial queries.
const MaxQueryResults = 128

// QueryRadiusInto finds entities within radius and appends them to dst, up to
// MaxQueryResults. Results are sorted by distance. keep, if non-nil, filters
// candidates before the distance test.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float64, posMap *ecs.Map1[components.Position], keep func(ecs.Entity) bool) []Neighbor {
	start := len(dst)
	cellRadius := int(radius/g.cellSize) + 1
	centerCol, centerRow := g.cellCoords(x, y)
	radiusSq := radius * radius

	for dr := -cellRadius; dr <= cellRadius; dr++ {
		row := centerRow + dr
		if row < 0 || row >= g.rows {
			continue
		}
		for dc := -cellRadius; dc <= cellRadius; dc++ {
			col := centerCol + dc
			if col < 0 || col >= g.cols {
				continue
			}
			for _, e := range g.cells[row*g.cols+col] {
				if keep != nil && !keep(e) {
					continue
				}
				pos := posMap.Get(e)
				if pos == nil {
					continue
				}
				dx, dy := pos.X-x, pos.Y-y
				distSq := dx*dx + dy*dy
				if distSq > radiusSq {
					continue
				}
				dst = append(dst, Neighbor{E: e, Pos: pos.Vec(), Dist: math.Sqrt(distSq)})
				if len(dst)-start >= MaxQueryResults {
					sortByDist(dst[start:])
					return dst
				}
			}
		}
	}

	sortByDist(dst[start:])
	return dst
}

func sortByDist(ns []Neighbor) {
	sort.SliceStable(ns, func(i, j int) bool { return ns[i].Dist < ns[j].Dist })
}

// cellCoords returns the clamped column and row for a world position.
func (g *SpatialGrid) cellCoords(x, y float64) (col, row int) {
	col = int(math.Floor((x - g.minX) / g.cellSize))
	row = int(math.Floor((y - g.minY) / g.cellSize))

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(x, y float64) int {
	col, row := g.cellCoords(x, y)
	return row*g.cols + col
}
