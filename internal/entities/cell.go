// Package entities defines the core data model of the spatial world model:
// map cells, landmarks, zones, frontiers and synthesized routes.
package entities

import "time"

// CellType classifies what the perception layer reported at a coordinate.
type CellType string

// Cell types
const (
	CellUnknown    CellType = "unknown"
	CellWalkable   CellType = "walkable"
	CellWall       CellType = "wall"
	CellWater      CellType = "water"
	CellLava       CellType = "lava"
	CellStairUp    CellType = "stair_up"
	CellStairDown  CellType = "stair_down"
	CellRopeHole   CellType = "rope_hole"
	CellShovelHole CellType = "shovel_hole"
	CellTeleport   CellType = "teleport"
	CellDoor       CellType = "door"
	CellLockedDoor CellType = "locked_door"
	CellDepot      CellType = "depot"
	CellTemple     CellType = "temple"
	CellNPC        CellType = "npc"
	CellDangerous  CellType = "dangerous"
)

// Danger score weights. Scores are pure functions of the stored counters;
// there is no cached danger field that could go stale.
const (
	dangerPerDeath      = 0.15
	dangerDeathCap      = 0.5
	dangerPerCreature   = 0.02 // per sighting beyond the free threshold
	creatureFreeCount   = 10
	dangerCreatureCap   = 0.3
	dangerPerPlayer     = 0.05
	dangerPlayerCap     = 0.2
	valueCreatureWeight = 0.6
	valueLootWeight     = 0.4
	valueCreatureSat    = 50 // sightings at which creature density saturates
)

// DefaultLootCeiling is the loot value at which a cell's loot contribution
// saturates, when no ceiling is configured.
const DefaultLootCeiling int64 = 10000

// MapCell is one grid cell of a floor, keyed by (X, Y, Z). Cells are
// append-only: created on first observation, mutated forever after, never
// deleted.
type MapCell struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`

	Type     CellType `json:"type"`
	Walkable bool     `json:"walkable"`
	Explored bool     `json:"explored"`

	LastSeen   time.Time `json:"last_seen"`
	VisitCount int       `json:"visit_count,omitempty"`

	DeathCount      int            `json:"death_count,omitempty"`
	DamageTaken     int64          `json:"damage_taken,omitempty"`
	Creatures       map[string]int `json:"creatures,omitempty"`
	LootValue       int64          `json:"loot_value,omitempty"`
	PlayerSightings int            `json:"player_sightings,omitempty"`

	LandmarkTag string `json:"landmark_tag,omitempty"`
}

// NewMapCell returns an unexplored cell at the given coordinate.
func NewMapCell(x, y, z int) *MapCell {
	return &MapCell{X: x, Y: y, Z: z, Type: CellUnknown}
}

// CreatureCount returns the total creature sightings recorded at this cell.
func (c *MapCell) CreatureCount() int {
	total := 0
	for _, n := range c.Creatures {
		total += n
	}
	return total
}

// DangerScore derives a [0, 1] danger heuristic from the cell's counters:
// up to 0.5 from deaths, up to 0.3 from creature density beyond the free
// threshold, up to 0.2 from player sightings. Monotonically non-decreasing
// in every input counter.
func (c *MapCell) DangerScore() float64 {
	score := capAt(float64(c.DeathCount)*dangerPerDeath, dangerDeathCap)

	if n := c.CreatureCount(); n > creatureFreeCount {
		score += capAt(float64(n-creatureFreeCount)*dangerPerCreature, dangerCreatureCap)
	}

	score += capAt(float64(c.PlayerSightings)*dangerPerPlayer, dangerPlayerCap)

	return capAt(score, 1.0)
}

// ValueScore derives a [0, 1] value heuristic: 0.6 weight on creature
// density (saturating at 50 sightings) and 0.4 on cumulative loot value
// (saturating at lootCeiling).
func (c *MapCell) ValueScore(lootCeiling int64) float64 {
	if lootCeiling <= 0 {
		lootCeiling = DefaultLootCeiling
	}

	creatureScore := capAt(float64(c.CreatureCount())/valueCreatureSat, 1.0)
	lootScore := capAt(float64(c.LootValue)/float64(lootCeiling), 1.0)

	return valueCreatureWeight*creatureScore + valueLootWeight*lootScore
}

func capAt(v, limit float64) float64 {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
