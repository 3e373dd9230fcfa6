package entities

import "time"

// CellDelta is one pending mutation to a cell. Observation calls append
// deltas to the world model's write buffer; deltas for the same coordinate
// are merged in the buffer and applied to the stored cell in one flush.
type CellDelta struct {
	X int
	Y int
	Z int

	// Type is applied only when non-empty.
	Type CellType
	// SetWalkable distinguishes "leave walkability alone" (nil) from an
	// explicit walkable/blocked observation.
	SetWalkable *bool
	// MarkExplored never clears an existing explored flag.
	MarkExplored bool

	SeenAt time.Time

	Visits          int
	Deaths          int
	Damage          int64
	Creatures       map[string]int
	Loot            int64
	PlayerSightings int

	// LandmarkTag is applied only when non-empty.
	LandmarkTag string
}

// Merge folds a later delta for the same coordinate into d. Counters sum,
// flags latch, and the later delta wins on type, walkability and landmark
// tag.
func (d *CellDelta) Merge(later *CellDelta) {
	if later.Type != "" {
		d.Type = later.Type
	}
	if later.SetWalkable != nil {
		d.SetWalkable = later.SetWalkable
	}
	if later.MarkExplored {
		d.MarkExplored = true
	}
	if later.SeenAt.After(d.SeenAt) {
		d.SeenAt = later.SeenAt
	}

	d.Visits += later.Visits
	d.Deaths += later.Deaths
	d.Damage += later.Damage
	d.Loot += later.Loot
	d.PlayerSightings += later.PlayerSightings

	if len(later.Creatures) > 0 {
		if d.Creatures == nil {
			d.Creatures = make(map[string]int, len(later.Creatures))
		}
		for name, n := range later.Creatures {
			d.Creatures[name] += n
		}
	}

	if later.LandmarkTag != "" {
		d.LandmarkTag = later.LandmarkTag
	}
}

// ApplyTo upserts the delta into a cell. The cell's coordinate is assumed
// to match the delta's.
func (d *CellDelta) ApplyTo(c *MapCell) {
	if d.Type != "" {
		c.Type = d.Type
	}
	if d.SetWalkable != nil {
		c.Walkable = *d.SetWalkable
	}
	if d.MarkExplored {
		c.Explored = true
	}
	if d.SeenAt.After(c.LastSeen) {
		c.LastSeen = d.SeenAt
	}

	c.VisitCount += d.Visits
	c.DeathCount += d.Deaths
	c.DamageTaken += d.Damage
	c.LootValue += d.Loot
	c.PlayerSightings += d.PlayerSightings

	if len(d.Creatures) > 0 {
		if c.Creatures == nil {
			c.Creatures = make(map[string]int, len(d.Creatures))
		}
		for name, n := range d.Creatures {
			c.Creatures[name] += n
		}
	}

	if d.LandmarkTag != "" {
		c.LandmarkTag = d.LandmarkTag
	}
}

// Bool returns a pointer to b, for SetWalkable.
func Bool(b bool) *bool {
	return &b
}
