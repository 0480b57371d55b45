package behavior

import (
	"math"

	"github.com/SeanRemedios/Boid-System/pkg/geometry"
)

// minCellSize avoids tiny grids or div by zero when separation is disabled.
const minCellSize = 10.0

type gridKey struct {
	x, y int
}

// Grid is a uniform spatial hash over boid indices.
// With a cell size at least as large as the query radius, every neighbour
// within that radius lies in the 3x3 block of cells around the query point.
type Grid struct {
	cellSize float64
	cells    map[gridKey][]int
}

// NewGrid creates an empty grid for queries of the given radius.
func NewGrid(radius float64) *Grid {
	return &Grid{
		cellSize: math.Max(radius, minCellSize),
		cells:    make(map[gridKey][]int),
	}
}

// CellSize returns the side of a grid cell.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// Rebuild indexes the given states. Slices are reset to length 0 but keep their
// capacity, so steady state ticks allocate almost nothing.
func (g *Grid) Rebuild(states []State) {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	for i, st := range states {
		key := g.keyOf(st.Pos)
		g.cells[key] = append(g.cells[key], i)
	}
}

func (g *Grid) keyOf(p geometry.Vector2D) gridKey {
	// floor keeps cells uniform on both sides of the origin, boids spawn off screen
	return gridKey{
		x: int(math.Floor(p.X / g.cellSize)),
		y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// Near appends to buf the indices stored in the 3x3 block around p and returns it.
// Cells are visited in a fixed order so results are deterministic.
func (g *Grid) Near(p geometry.Vector2D, buf []int) []int {
	c := g.keyOf(p)
	for i := c.x - 1; i <= c.x+1; i++ {
		for j := c.y - 1; j <= c.y+1; j++ {
			if ids, ok := g.cells[gridKey{x: i, y: j}]; ok {
				buf = append(buf, ids...)
			}
		}
	}
	return buf
}
