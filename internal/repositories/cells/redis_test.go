package cells_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/errors"
	"github.com/wayfarer-ai/wayfarer/internal/pkg/clock"
	redisclient "github.com/wayfarer-ai/wayfarer/internal/redis"
	"github.com/wayfarer-ai/wayfarer/internal/repositories/cells"
	"github.com/wayfarer-ai/wayfarer/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    redisclient.Client
	clock     *clock.Fake
	repo      cells.Repository
	ctx       context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr, cleanup := testutils.CreateTestRedisClient(s.T())
	s.T().Cleanup(cleanup)
	s.miniRedis = mr
	s.client = client
	s.clock = clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	repo, err := cells.NewRedis(&cells.RedisConfig{
		Client: s.client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) delta(x, y, z int) *entities.CellDelta {
	return &entities.CellDelta{
		X: x, Y: y, Z: z,
		MarkExplored: true,
		SeenAt:       s.clock.Now(),
	}
}

func (s *RedisRepositoryTestSuite) TestApplyBatchCreatesCells() {
	d := s.delta(1, 2, 0)
	d.SetWalkable = entities.Bool(true)
	d.Visits = 1

	out, err := s.repo.ApplyBatch(s.ctx, cells.ApplyBatchInput{
		Deltas: []*entities.CellDelta{d},
	})
	s.Require().NoError(err)
	s.Equal(1, out.CellsWritten)

	got, err := s.repo.GetCell(s.ctx, cells.GetCellInput{X: 1, Y: 2, Z: 0})
	s.Require().NoError(err)
	s.True(got.Cell.Explored)
	s.True(got.Cell.Walkable)
	s.Equal(1, got.Cell.VisitCount)
	s.Equal(s.clock.Now(), got.Cell.LastSeen)
}

func (s *RedisRepositoryTestSuite) TestApplyBatchMergesCounters() {
	d1 := s.delta(5, 5, 1)
	d1.Creatures = map[string]int{"Rat": 1}
	_, err := s.repo.ApplyBatch(s.ctx, cells.ApplyBatchInput{Deltas: []*entities.CellDelta{d1}})
	s.Require().NoError(err)

	d2 := s.delta(5, 5, 1)
	d2.Creatures = map[string]int{"Rat": 1}
	_, err = s.repo.ApplyBatch(s.ctx, cells.ApplyBatchInput{Deltas: []*entities.CellDelta{d2}})
	s.Require().NoError(err)

	got, err := s.repo.GetCell(s.ctx, cells.GetCellInput{X: 5, Y: 5, Z: 1})
	s.Require().NoError(err)
	// One entry with count 2, not two entries.
	s.Len(got.Cell.Creatures, 1)
	s.Equal(2, got.Cell.Creatures["Rat"])
}

func (s *RedisRepositoryTestSuite) TestApplyBatchFoldsDuplicateCoordinates() {
	d1 := s.delta(3, 3, 0)
	d1.Deaths = 1
	d2 := s.delta(3, 3, 0)
	d2.Deaths = 1

	out, err := s.repo.ApplyBatch(s.ctx, cells.ApplyBatchInput{
		Deltas: []*entities.CellDelta{d1, d2},
	})
	s.Require().NoError(err)
	s.Equal(1, out.CellsWritten)

	got, err := s.repo.GetCell(s.ctx, cells.GetCellInput{X: 3, Y: 3, Z: 0})
	s.Require().NoError(err)
	s.Equal(2, got.Cell.DeathCount)
}

func (s *RedisRepositoryTestSuite) TestApplyBatchEmpty() {
	_, err := s.repo.ApplyBatch(s.ctx, cells.ApplyBatchInput{})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestWallStaysBlockedUntilContradicted() {
	wall := s.delta(7, 7, 0)
	wall.Type = entities.CellWall
	wall.SetWalkable = entities.Bool(false)
	_, err := s.repo.ApplyBatch(s.ctx, cells.ApplyBatchInput{Deltas: []*entities.CellDelta{wall}})
	s.Require().NoError(err)

	got, err := s.repo.GetCell(s.ctx, cells.GetCellInput{X: 7, Y: 7, Z: 0})
	s.Require().NoError(err)
	s.False(got.Cell.Walkable)

	// Unrelated observations do not flip walkability.
	damage := s.delta(7, 7, 0)
	damage.Damage = 40
	_, err = s.repo.ApplyBatch(s.ctx, cells.ApplyBatchInput{Deltas: []*entities.CellDelta{damage}})
	s.Require().NoError(err)

	got, err = s.repo.GetCell(s.ctx, cells.GetCellInput{X: 7, Y: 7, Z: 0})
	s.Require().NoError(err)
	s.False(got.Cell.Walkable)
	s.Equal(int64(40), got.Cell.DamageTaken)

	// A contradicting walkable observation flips it.
	walk := s.delta(7, 7, 0)
	walk.Type = entities.CellWalkable
	walk.SetWalkable = entities.Bool(true)
	_, err = s.repo.ApplyBatch(s.ctx, cells.ApplyBatchInput{Deltas: []*entities.CellDelta{walk}})
	s.Require().NoError(err)

	got, err = s.repo.GetCell(s.ctx, cells.GetCellInput{X: 7, Y: 7, Z: 0})
	s.Require().NoError(err)
	s.True(got.Cell.Walkable)
}

func (s *RedisRepositoryTestSuite) TestGetCellNotFound() {
	_, err := s.repo.GetCell(s.ctx, cells.GetCellInput{X: 99, Y: 99, Z: 9})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetBox() {
	deltas := []*entities.CellDelta{
		s.delta(0, 0, 0),
		s.delta(1, 0, 0),
		s.delta(5, 5, 0),
		s.delta(0, 0, 1), // different floor, outside the scan
	}
	_, err := s.repo.ApplyBatch(s.ctx, cells.ApplyBatchInput{Deltas: deltas})
	s.Require().NoError(err)

	out, err := s.repo.GetBox(s.ctx, cells.GetBoxInput{Z: 0, MinX: -1, MinY: -1, MaxX: 2, MaxY: 2})
	s.Require().NoError(err)
	s.Len(out.Cells, 2)

	_, err = s.repo.GetBox(s.ctx, cells.GetBoxInput{Z: 0, MinX: 5, MinY: 5, MaxX: 1, MaxY: 1})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestFloorsAndCount() {
	deltas := []*entities.CellDelta{
		s.delta(0, 0, 0),
		s.delta(1, 1, 0),
		s.delta(0, 0, 3),
		s.delta(0, 0, -1),
	}
	_, err := s.repo.ApplyBatch(s.ctx, cells.ApplyBatchInput{Deltas: deltas})
	s.Require().NoError(err)

	floors, err := s.repo.Floors(s.ctx)
	s.Require().NoError(err)
	s.Equal([]int{-1, 0, 3}, floors.Floors)

	count, err := s.repo.CountCells(s.ctx, cells.CountCellsInput{Z: 0})
	s.Require().NoError(err)
	s.Equal(int64(2), count.Count)
}

func (s *RedisRepositoryTestSuite) TestPutLandmarkMergesOnRediscovery() {
	first := entities.NewLandmark(entities.LandmarkDepot, 10, 20, 0,
		map[string]string{"name": "north depot"}, s.clock.Now())

	out, err := s.repo.PutLandmark(s.ctx, cells.PutLandmarkInput{Landmark: first})
	s.Require().NoError(err)
	s.True(out.Created)

	s.clock.Advance(time.Hour)
	again := entities.NewLandmark(entities.LandmarkDepot, 10, 20, 0,
		map[string]string{"name": "renamed", "locker": "yes"}, s.clock.Now())

	out, err = s.repo.PutLandmark(s.ctx, cells.PutLandmarkInput{Landmark: again})
	s.Require().NoError(err)
	s.False(out.Created)
	s.Equal("north depot", out.Landmark.Metadata["name"])
	s.Equal("yes", out.Landmark.Metadata["locker"])

	list, err := s.repo.ListLandmarks(s.ctx, cells.ListLandmarksInput{})
	s.Require().NoError(err)
	s.Len(list.Landmarks, 1)
}

func (s *RedisRepositoryTestSuite) TestListLandmarksByType() {
	depot := entities.NewLandmark(entities.LandmarkDepot, 1, 1, 0, nil, s.clock.Now())
	stair := entities.NewLandmark(entities.LandmarkStairDown, 2, 2, 0, nil, s.clock.Now())

	_, err := s.repo.PutLandmark(s.ctx, cells.PutLandmarkInput{Landmark: depot})
	s.Require().NoError(err)
	_, err = s.repo.PutLandmark(s.ctx, cells.PutLandmarkInput{Landmark: stair})
	s.Require().NoError(err)

	out, err := s.repo.ListLandmarks(s.ctx, cells.ListLandmarksInput{Type: entities.LandmarkStairDown})
	s.Require().NoError(err)
	s.Len(out.Landmarks, 1)
	s.Equal(entities.LandmarkStairDown, out.Landmarks[0].Type)
}

func (s *RedisRepositoryTestSuite) TestZonesReplacedWholesale() {
	out, err := s.repo.GetZones(s.ctx, cells.GetZonesInput{Z: 0})
	s.Require().NoError(err)
	s.Empty(out.Zones)

	zones := []entities.Zone{
		{ID: "zone_0_0_0", Z: 0, CenterX: 10, CenterY: 10, CellCount: 40},
		{ID: "zone_0_1_0", Z: 0, CenterX: 30, CenterY: 10, CellCount: 12},
	}
	_, err = s.repo.ReplaceZones(s.ctx, cells.ReplaceZonesInput{Z: 0, Zones: zones})
	s.Require().NoError(err)

	replacement := []entities.Zone{
		{ID: "zone_0_2_0", Z: 0, CenterX: 50, CenterY: 10, CellCount: 3},
	}
	_, err = s.repo.ReplaceZones(s.ctx, cells.ReplaceZonesInput{Z: 0, Zones: replacement})
	s.Require().NoError(err)

	out, err = s.repo.GetZones(s.ctx, cells.GetZonesInput{Z: 0})
	s.Require().NoError(err)
	s.Len(out.Zones, 1)
	s.Equal("zone_0_2_0", out.Zones[0].ID)
}

func (s *RedisRepositoryTestSuite) TestGetFloor() {
	deltas := []*entities.CellDelta{
		s.delta(0, 0, 2),
		s.delta(4, 4, 2),
	}
	_, err := s.repo.ApplyBatch(s.ctx, cells.ApplyBatchInput{Deltas: deltas})
	s.Require().NoError(err)

	out, err := s.repo.GetFloor(s.ctx, cells.GetFloorInput{Z: 2})
	s.Require().NoError(err)
	s.Len(out.Cells, 2)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
