package entities

// Frontier is an explored, walkable cell with at least one unexplored
// 8-neighbor: the boundary of current knowledge. Frontiers are transient,
// computed on demand and never persisted.
type Frontier struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`

	Priority float64 `json:"priority"`
	Danger   float64 `json:"danger"`
	Value    float64 `json:"value"`

	UnexploredNeighbors int `json:"unexplored_neighbors"`
}

// ExplorationTarget is where the explorer is currently headed and why.
type ExplorationTarget struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`

	Reason   string  `json:"reason"`
	Priority float64 `json:"priority"`
}

// Point2 returns the target's floor coordinate.
func (t *ExplorationTarget) Point2() Point {
	return Point{X: t.X, Y: t.Y}
}
