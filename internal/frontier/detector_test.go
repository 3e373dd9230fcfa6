package frontier_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/frontier"
	"github.com/wayfarer-ai/wayfarer/internal/pkg/clock"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newDetector(t *testing.T) (*frontier.Detector, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(testNow)
	d, err := frontier.New(&frontier.Config{Clock: fake})
	require.NoError(t, err)
	return d, fake
}

// explored fills a rectangle with explored walkable cells seen at testNow.
func explored(minX, minY, maxX, maxY int) *entities.CellGrid {
	grid := entities.NewCellGrid(0, 0)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			cell := entities.NewMapCell(x, y, 0)
			cell.Explored = true
			cell.Walkable = true
			cell.LastSeen = testNow
			grid.Put(cell)
		}
	}
	return grid
}

func TestRankOnlyBoundaryCells(t *testing.T) {
	d, _ := newDetector(t)
	grid := explored(0, 0, 4, 4)

	frontiers := d.Rank(grid, entities.Point{X: 2, Y: 2}, 0)
	require.NotEmpty(t, frontiers)

	for _, f := range frontiers {
		assert.Positive(t, f.UnexploredNeighbors)
		// Interior cells have all 8 neighbors explored.
		assert.True(t, f.X == 0 || f.X == 4 || f.Y == 0 || f.Y == 4,
			"interior cell (%d,%d) reported as frontier", f.X, f.Y)
	}
}

func TestRankSkipsInteriorOfClosedArea(t *testing.T) {
	d, _ := newDetector(t)
	// A 3x3 area whose border is wall: the center is explored and
	// walkable but every neighbor is explored, so nothing is a frontier.
	grid := entities.NewCellGrid(0, 0)
	for y := 0; y <= 2; y++ {
		for x := 0; x <= 2; x++ {
			cell := entities.NewMapCell(x, y, 0)
			cell.Explored = true
			cell.Walkable = x == 1 && y == 1
			grid.Put(cell)
		}
	}

	assert.Empty(t, d.Rank(grid, entities.Point{X: 1, Y: 1}, 0))
}

func TestRankPrefersValuableCells(t *testing.T) {
	d, _ := newDetector(t)
	grid := explored(0, 0, 4, 0)

	rich, _ := grid.At(4, 0)
	rich.Creatures = map[string]int{"Rat": 30}

	frontiers := d.Rank(grid, entities.Point{X: 2, Y: 0}, 0)
	require.NotEmpty(t, frontiers)
	assert.Equal(t, 4, frontiers[0].X)
	assert.Positive(t, frontiers[0].Value)
}

func TestRankPenalizesDanger(t *testing.T) {
	d, _ := newDetector(t)
	grid := explored(0, 0, 4, 0)

	deadly, _ := grid.At(0, 0)
	deadly.DeathCount = 4

	frontiers := d.Rank(grid, entities.Point{X: 2, Y: 0}, 0)
	require.NotEmpty(t, frontiers)
	last := frontiers[len(frontiers)-1]
	assert.Equal(t, 0, last.X)
	assert.InDelta(t, 0.5, last.Danger, 1e-9)
}

func TestRankStalenessSaturates(t *testing.T) {
	d, fake := newDetector(t)
	grid := explored(0, 0, 3, 0)

	// One endpoint unseen for two hours, the other fresh. Staleness
	// contributes at most 0.3 regardless of how old.
	stale, _ := grid.At(0, 0)
	stale.LastSeen = testNow.Add(-2 * time.Hour)
	fake.Set(testNow)

	frontiers := d.Rank(grid, entities.Point{X: 1, Y: 0}, 0)
	require.NotEmpty(t, frontiers)
	assert.Equal(t, 0, frontiers[0].X)
	assert.InDelta(t, 0.3+0.3, frontiers[0].Priority, 1e-9)
}

func TestRankDeterministicTieBreak(t *testing.T) {
	d, _ := newDetector(t)
	grid := explored(0, 0, 2, 2)

	first := d.Rank(grid, entities.Point{X: 1, Y: 1}, 0)
	second := d.Rank(grid, entities.Point{X: 1, Y: 1}, 0)
	assert.Equal(t, first, second)
}

func TestRankRespectsLimit(t *testing.T) {
	d, _ := newDetector(t)
	grid := explored(0, 0, 9, 9)

	frontiers := d.Rank(grid, entities.Point{X: 5, Y: 5}, 3)
	assert.Len(t, frontiers, 3)
}

func TestRankDefaultCap(t *testing.T) {
	fake := clock.NewFake(testNow)
	d, err := frontier.New(&frontier.Config{Clock: fake, MaxResults: 4})
	require.NoError(t, err)

	grid := explored(0, 0, 9, 9)
	assert.Len(t, d.Rank(grid, entities.Point{X: 5, Y: 5}, 0), 4)
}

func TestNearestPicksClosest(t *testing.T) {
	d, _ := newDetector(t)
	grid := explored(0, 0, 10, 0)

	f := d.Nearest(grid, entities.Point{X: 0, Y: 3}, 0)
	require.NotNil(t, f)
	assert.Equal(t, 0, f.X)
	assert.Equal(t, 0, f.Y)
}

func TestNearestHonorsRadius(t *testing.T) {
	d, _ := newDetector(t)
	grid := explored(0, 0, 10, 0)

	// Explore the band alongside the corridor so only the two endpoints
	// stay frontiers, both five tiles from the query origin.
	for y := -1; y <= 1; y++ {
		for x := 0; x <= 10; x++ {
			if grid.IsExplored(x, y) {
				continue
			}
			cell := entities.NewMapCell(x, y, 0)
			cell.Explored = true
			grid.Put(cell)
		}
	}

	origin := entities.Point{X: 5, Y: 0}
	assert.Nil(t, d.Nearest(grid, origin, 2))
	assert.NotNil(t, d.Nearest(grid, origin, 0))
}

func TestNearestEmptyGrid(t *testing.T) {
	d, _ := newDetector(t)
	assert.Nil(t, d.Nearest(entities.NewCellGrid(0, 0), entities.Point{}, 0))
}
