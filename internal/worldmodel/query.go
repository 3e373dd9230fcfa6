package worldmodel

import (
	"context"
	"sort"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/errors"
	"github.com/wayfarer-ai/wayfarer/internal/repositories/cells"
)

// UnknownAreaDanger is the danger reported for areas with no recorded
// cells: unexplored terrain is treated as moderately risky, not safe.
const UnknownAreaDanger = 0.5

// IsExplored reports whether a coordinate has been marked explored.
// Buffered observations are not visible until the next flush.
func (m *Model) IsExplored(ctx context.Context, x, y, z int) (bool, error) {
	out, err := m.store.GetCell(ctx, cells.GetCellInput{X: x, Y: y, Z: z})
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return out.Cell.Explored, nil
}

// IsWalkable reports whether a coordinate is known to be walkable. Unknown
// coordinates are not walkable.
func (m *Model) IsWalkable(ctx context.Context, x, y, z int) (bool, error) {
	out, err := m.store.GetCell(ctx, cells.GetCellInput{X: x, Y: y, Z: z})
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return out.Cell.Walkable, nil
}

// AreaDanger returns the mean danger score of the observed cells in a
// bounded box around (x, y). With no recorded cells it returns
// UnknownAreaDanger.
func (m *Model) AreaDanger(ctx context.Context, x, y, z, radius int) (float64, error) {
	box, err := m.boxCells(ctx, x, y, z, radius)
	if err != nil {
		return 0, err
	}
	if len(box) == 0 {
		return UnknownAreaDanger, nil
	}

	total := 0.0
	for _, c := range box {
		total += c.DangerScore()
	}
	return total / float64(len(box)), nil
}

// AreaValue returns the mean value score of the observed cells in a
// bounded box around (x, y); 0 with no recorded cells.
func (m *Model) AreaValue(ctx context.Context, x, y, z, radius int) (float64, error) {
	box, err := m.boxCells(ctx, x, y, z, radius)
	if err != nil {
		return 0, err
	}
	if len(box) == 0 {
		return 0, nil
	}

	total := 0.0
	for _, c := range box {
		total += c.ValueScore(m.lootCeiling)
	}
	return total / float64(len(box)), nil
}

// CreaturesInArea returns the summed creature sightings in a bounded box
// around (x, y), grouped by name.
func (m *Model) CreaturesInArea(ctx context.Context, x, y, z, radius int) (map[string]int, error) {
	box, err := m.boxCells(ctx, x, y, z, radius)
	if err != nil {
		return nil, err
	}

	creatures := make(map[string]int)
	for _, c := range box {
		for name, n := range c.Creatures {
			creatures[name] += n
		}
	}
	return creatures, nil
}

// NearestLandmark returns the closest landmark of the given type on floor
// z. Returns a NotFound error when no such landmark is known.
func (m *Model) NearestLandmark(ctx context.Context, x, y, z int, landmarkType string) (*entities.Landmark, error) {
	out, err := m.store.ListLandmarks(ctx, cells.ListLandmarksInput{Type: landmarkType})
	if err != nil {
		return nil, err
	}

	origin := entities.Point{X: x, Y: y}
	var nearest *entities.Landmark
	best := 0.0
	for _, l := range out.Landmarks {
		if l.Z != z {
			continue
		}
		d := entities.EuclideanDist(origin, entities.Point{X: l.X, Y: l.Y})
		if nearest == nil || d < best {
			nearest = l
			best = d
		}
	}

	if nearest == nil {
		return nil, errors.NotFoundf("no %s landmark known on floor %d", landmarkType, z)
	}
	return nearest, nil
}

// FloorSnapshot flushes pending observations and loads every observed cell
// of floor z into a grid. Plan-critical consumers (pathfinding, frontier
// detection) work off the snapshot so searches never block the observation
// producer.
func (m *Model) FloorSnapshot(ctx context.Context, z int) (*entities.CellGrid, error) {
	if err := m.Flush(ctx); err != nil {
		return nil, err
	}

	out, err := m.store.GetFloor(ctx, cells.GetFloorInput{Z: z})
	if err != nil {
		return nil, err
	}

	grid := entities.NewCellGrid(z, m.lootCeiling)
	for _, c := range out.Cells {
		grid.Put(c)
	}
	return grid, nil
}

// KnownFloors returns every floor with at least one observed cell.
func (m *Model) KnownFloors(ctx context.Context) ([]int, error) {
	out, err := m.store.Floors(ctx)
	if err != nil {
		return nil, err
	}
	return out.Floors, nil
}

// boxCells flushes nothing; point-in-time box reads accept the documented
// staleness window. Plan-critical callers flush via FloorSnapshot instead.
func (m *Model) boxCells(ctx context.Context, x, y, z, radius int) ([]*entities.MapCell, error) {
	if radius < 0 {
		return nil, errors.InvalidArgument("radius must not be negative")
	}
	out, err := m.store.GetBox(ctx, cells.GetBoxInput{
		Z:    z,
		MinX: x - radius,
		MinY: y - radius,
		MaxX: x + radius,
		MaxY: y + radius,
	})
	if err != nil {
		return nil, err
	}
	return out.Cells, nil
}

// topCreatures ranks a creature distribution descending by count, ties
// broken by name for determinism.
func topCreatures(creatures map[string]int, limit int) []entities.CreatureTarget {
	ranked := make([]entities.CreatureTarget, 0, len(creatures))
	for name, n := range creatures {
		ranked = append(ranked, entities.CreatureTarget{Name: name, Encounters: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Encounters != ranked[j].Encounters {
			return ranked[i].Encounters > ranked[j].Encounters
		}
		return ranked[i].Name < ranked[j].Name
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
