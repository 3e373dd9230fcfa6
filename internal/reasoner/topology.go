package reasoner

import "github.com/wayfarer-ai/wayfarer/internal/entities"

const (
	// Classification needs at least half the inner ring explored; below
	// that the local structure is anyone's guess.
	minExploredRing1 = 4

	// A dead end has one walkable neighbor of eight (0.125), a straight
	// corridor two (0.25). The cut points sit between the archetypes.
	deadEndRatio  = 0.15
	corridorRatio = 0.4
	openRatio     = 0.75
	enclosedRatio = 0.3
)

// ringRatio returns walkable/explored over the cells at Chebyshev
// distance exactly r, and how many of them are explored.
func ringRatio(grid *entities.CellGrid, center entities.Point, r int) (float64, int) {
	explored, walkable := 0, 0
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if max(abs(dx), abs(dy)) != r {
				continue
			}
			x, y := center.X+dx, center.Y+dy
			if !grid.IsExplored(x, y) {
				continue
			}
			explored++
			if grid.IsWalkable(x, y) {
				walkable++
			}
		}
	}
	if explored == 0 {
		return 0, 0
	}
	return float64(walkable) / float64(explored), explored
}

// classifyTopology buckets the local walkable structure from the two
// rings around the position. Only explored neighbors count; a mostly
// unknown neighborhood stays unknown rather than guessing.
func classifyTopology(grid *entities.CellGrid, center entities.Point) Topology {
	r1, explored1 := ringRatio(grid, center, 1)
	r2, explored2 := ringRatio(grid, center, 2)

	if explored1 < minExploredRing1 {
		return TopologyUnknown
	}

	switch {
	case r1 <= deadEndRatio:
		return TopologyDeadEnd
	case r1 <= corridorRatio:
		return TopologyCorridor
	}

	// Inner ring is open. The outer ring tells rooms, open fields and
	// mazes apart: open in both rings is a field, open inside with a
	// mostly blocked outer ring is an enclosed room, and a mixed outer
	// ring reads as maze. Nothing explored out there also means a room.
	if explored2 == 0 {
		return TopologyRoom
	}
	switch {
	case r2 >= openRatio:
		return TopologyOpen
	case r2 <= enclosedRatio:
		return TopologyRoom
	default:
		return TopologyMaze
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
