package entities

import (
	"math"
	"sort"
)

// Point is an (x, y) coordinate within one floor.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Neighbors8 lists the 8-connected neighborhood offsets in scan order
// (row by row, left to right). Order matters for deterministic tie-breaks.
var Neighbors8 = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// EuclideanDist returns the straight-line distance between two points.
func EuclideanDist(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ChebyshevDist returns the 8-connected move distance between two points.
func ChebyshevDist(a, b Point) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// CellGrid is a point-in-time snapshot of one floor's cells, loaded from
// the store after a flush. Planner and frontier scans run against a grid so
// a slow search never holds the store; grids are always safe to discard and
// reload.
type CellGrid struct {
	Z           int
	LootCeiling int64

	cells map[Point]*MapCell
}

// NewCellGrid returns an empty grid for floor z.
func NewCellGrid(z int, lootCeiling int64) *CellGrid {
	if lootCeiling <= 0 {
		lootCeiling = DefaultLootCeiling
	}
	return &CellGrid{
		Z:           z,
		LootCeiling: lootCeiling,
		cells:       make(map[Point]*MapCell),
	}
}

// Put inserts or replaces a cell in the grid.
func (g *CellGrid) Put(c *MapCell) {
	g.cells[Point{X: c.X, Y: c.Y}] = c
}

// At returns the cell at (x, y), if one has ever been observed.
func (g *CellGrid) At(x, y int) (*MapCell, bool) {
	c, ok := g.cells[Point{X: x, Y: y}]
	return c, ok
}

// Len returns the number of observed cells in the grid.
func (g *CellGrid) Len() int {
	return len(g.cells)
}

// IsExplored reports whether (x, y) has been marked explored.
func (g *CellGrid) IsExplored(x, y int) bool {
	c, ok := g.At(x, y)
	return ok && c.Explored
}

// IsWalkable reports whether (x, y) is explored and walkable. Unknown
// cells are never walkable: the planner must not route through them.
func (g *CellGrid) IsWalkable(x, y int) bool {
	c, ok := g.At(x, y)
	return ok && c.Explored && c.Walkable
}

// Danger returns the danger score at (x, y), or 0 for unknown cells.
func (g *CellGrid) Danger(x, y int) float64 {
	c, ok := g.At(x, y)
	if !ok {
		return 0
	}
	return c.DangerScore()
}

// Value returns the value score at (x, y), or 0 for unknown cells.
func (g *CellGrid) Value(x, y int) float64 {
	c, ok := g.At(x, y)
	if !ok {
		return 0
	}
	return c.ValueScore(g.LootCeiling)
}

// Points returns all observed coordinates in scan order (y, then x).
// The stable order keeps frontier ranking and zone output deterministic.
func (g *CellGrid) Points() []Point {
	pts := make([]Point, 0, len(g.cells))
	for p := range g.cells {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	return pts
}
