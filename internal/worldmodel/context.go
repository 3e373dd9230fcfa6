package worldmodel

import (
	"context"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/errors"
	"github.com/wayfarer-ai/wayfarer/internal/repositories/cells"
)

const (
	contextTopCreatures = 5
	contextTopFrontiers = 3
)

// ExplorationContext is the structured area summary handed to the external
// policy layer. It is a snapshot: nothing in it stays fresh beyond the
// call that produced it.
type ExplorationContext struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`

	// ExploredRatio is explored cells over total cells in the queried box.
	ExploredRatio float64 `json:"explored_ratio"`
	// CellCount is the total observed cells on this floor.
	CellCount int64 `json:"cell_count"`

	KnownFloors   []int `json:"known_floors"`
	LandmarkCount int   `json:"landmark_count"`

	AreaDanger float64 `json:"area_danger"`
	AreaValue  float64 `json:"area_value"`

	TopCreatures []entities.CreatureTarget `json:"top_creatures,omitempty"`
	TopFrontiers []entities.Frontier       `json:"top_frontiers,omitempty"`

	NearestDepot     *entities.Landmark `json:"nearest_depot,omitempty"`
	NearestStairUp   *entities.Landmark `json:"nearest_stair_up,omitempty"`
	NearestStairDown *entities.Landmark `json:"nearest_stair_down,omitempty"`
}

// ExplorationContext flushes pending observations and builds the area
// summary around (x, y, z) within the given box radius.
func (m *Model) ExplorationContext(ctx context.Context, x, y, z, radius int) (*ExplorationContext, error) {
	if radius <= 0 {
		return nil, errors.InvalidArgument("radius must be positive")
	}

	if err := m.Flush(ctx); err != nil {
		return nil, err
	}

	box, err := m.boxCells(ctx, x, y, z, radius)
	if err != nil {
		return nil, err
	}

	side := 2*radius + 1
	explored := 0
	creatures := make(map[string]int)
	dangerTotal, valueTotal := 0.0, 0.0
	for _, c := range box {
		if c.Explored {
			explored++
		}
		dangerTotal += c.DangerScore()
		valueTotal += c.ValueScore(m.lootCeiling)
		for name, n := range c.Creatures {
			creatures[name] += n
		}
	}

	ec := &ExplorationContext{
		X: x, Y: y, Z: z,
		ExploredRatio: float64(explored) / float64(side*side),
		AreaDanger:    UnknownAreaDanger,
		TopCreatures:  topCreatures(creatures, contextTopCreatures),
	}
	if len(box) > 0 {
		ec.AreaDanger = dangerTotal / float64(len(box))
		ec.AreaValue = valueTotal / float64(len(box))
	}

	count, err := m.store.CountCells(ctx, cells.CountCellsInput{Z: z})
	if err != nil {
		return nil, err
	}
	ec.CellCount = count.Count

	floors, err := m.store.Floors(ctx)
	if err != nil {
		return nil, err
	}
	ec.KnownFloors = floors.Floors

	landmarks, err := m.store.ListLandmarks(ctx, cells.ListLandmarksInput{})
	if err != nil {
		return nil, err
	}
	ec.LandmarkCount = len(landmarks.Landmarks)

	ec.NearestDepot = m.nearestOrNil(ctx, x, y, z, entities.LandmarkDepot)
	ec.NearestStairUp = m.nearestOrNil(ctx, x, y, z, entities.LandmarkStairUp)
	ec.NearestStairDown = m.nearestOrNil(ctx, x, y, z, entities.LandmarkStairDown)

	if m.frontiers != nil {
		grid, err := m.FloorSnapshot(ctx, z)
		if err != nil {
			return nil, err
		}
		ec.TopFrontiers = m.frontiers.Rank(grid, entities.Point{X: x, Y: y}, contextTopFrontiers)
	}

	return ec, nil
}

func (m *Model) nearestOrNil(ctx context.Context, x, y, z int, landmarkType string) *entities.Landmark {
	l, err := m.NearestLandmark(ctx, x, y, z, landmarkType)
	if err != nil {
		return nil
	}
	return l
}
