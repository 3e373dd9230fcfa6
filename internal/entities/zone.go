package entities

// Zone is a derived cluster of nearby cells sharing aggregate danger,
// value and creature characteristics. Zones are recomputed wholesale per
// floor and replaced in the store; no component may assume a stored zone
// list is fresh beyond the call that produced it.
type Zone struct {
	ID      string `json:"id"`
	Z       int    `json:"z"`
	CenterX int    `json:"center_x"`
	CenterY int    `json:"center_y"`

	// Radius is the distance from the center to the farthest member cell.
	Radius float64 `json:"radius"`

	AvgDanger float64 `json:"avg_danger"`
	AvgValue  float64 `json:"avg_value"`

	Creatures map[string]int `json:"creatures,omitempty"`

	CellCount   int   `json:"cell_count"`
	TotalDeaths int   `json:"total_deaths"`
	TotalLoot   int64 `json:"total_loot"`
}
