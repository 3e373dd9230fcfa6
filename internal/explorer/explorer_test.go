package explorer_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/explorer"
	"github.com/wayfarer-ai/wayfarer/internal/frontier"
	"github.com/wayfarer-ai/wayfarer/internal/pkg/clock"
	"github.com/wayfarer-ai/wayfarer/internal/pkg/idgen"
	"github.com/wayfarer-ai/wayfarer/internal/planner"
	"github.com/wayfarer-ai/wayfarer/internal/repositories/cells"
	"github.com/wayfarer-ai/wayfarer/internal/worldmodel"
)

type ExplorerTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	clock     *clock.Fake
	model     *worldmodel.Model
	explorer  *explorer.Explorer
	ctx       context.Context
}

func (s *ExplorerTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.clock = clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	repo, err := cells.NewRedis(&cells.RedisConfig{Client: client, Clock: s.clock})
	s.Require().NoError(err)

	model, err := worldmodel.New(&worldmodel.Config{Store: repo, Clock: s.clock})
	s.Require().NoError(err)
	s.model = model

	detector, err := frontier.New(&frontier.Config{Clock: s.clock})
	s.Require().NoError(err)

	p, err := planner.New(nil)
	s.Require().NoError(err)

	e, err := explorer.New(&explorer.Config{
		World:     model,
		Frontiers: detector,
		Planner:   p,
		Clock:     s.clock,
		IDGen:     idgen.NewSequential("route"),
	})
	s.Require().NoError(err)
	s.explorer = e
	s.ctx = context.Background()
}

func (s *ExplorerTestSuite) TearDownTest() {
	s.miniRedis.Close()
}

func (s *ExplorerTestSuite) tick(in explorer.TickInput) *explorer.Command {
	s.clock.Advance(time.Second)
	cmd, err := s.explorer.Tick(s.ctx, in)
	s.Require().NoError(err)
	s.Require().NotNil(cmd)
	return cmd
}

func (s *ExplorerTestSuite) TestStartValidation() {
	s.Error(s.explorer.Start(s.ctx, 0, 0, 0, explorer.StrategyIdle))
	s.Error(s.explorer.Start(s.ctx, 0, 0, 0, explorer.Strategy("CHARGE")))

	s.Require().NoError(s.explorer.Start(s.ctx, 0, 0, 0, explorer.StrategyFrontier))
	s.Error(s.explorer.Start(s.ctx, 0, 0, 0, explorer.StrategyFrontier))
}

func (s *ExplorerTestSuite) TestTickIdleWithoutSession() {
	cmd := s.tick(explorer.TickInput{Health: 100, MaxHealth: 100})
	s.Equal(explorer.CommandIdle, cmd.Kind)
	s.Equal(explorer.StrategyIdle, s.explorer.Strategy())
}

func (s *ExplorerTestSuite) TestFrontierStrategyPicksTarget() {
	// A walkable cell at the edge of explored space is the boundary the
	// strategy should head for.
	s.Require().NoError(s.model.ObservePosition(s.ctx, 3, 0, 0, 1))
	s.Require().NoError(s.explorer.Start(s.ctx, 0, 0, 0, explorer.StrategyFrontier))

	cmd := s.tick(explorer.TickInput{X: 0, Y: 0, Z: 0, Health: 100, MaxHealth: 100})
	s.Require().NotNil(cmd.Target)
	s.Equal("nearest frontier", cmd.Target.Reason)
	s.NotEqual(explorer.CommandIdle, cmd.Kind)
}

func (s *ExplorerTestSuite) TestLowHealthForcesReturn() {
	s.Require().NoError(s.explorer.Start(s.ctx, 0, 0, 0, explorer.StrategyFrontier))

	cmd := s.tick(explorer.TickInput{X: 20, Y: 20, Z: 0, Health: 10, MaxHealth: 100})
	s.Equal(explorer.StrategyReturn, s.explorer.Strategy())
	s.Require().NotNil(cmd.Target)
	s.Equal("session start", cmd.Target.Reason)
	s.Equal(0, cmd.Target.X)
}

func (s *ExplorerTestSuite) TestDeathCapForcesReturn() {
	s.Require().NoError(s.explorer.Start(s.ctx, 0, 0, 0, explorer.StrategyFrontier))
	for i := 0; i < 3; i++ {
		s.explorer.RecordDeath()
	}

	s.tick(explorer.TickInput{X: 20, Y: 20, Z: 0, Health: 100, MaxHealth: 100})
	s.Equal(explorer.StrategyReturn, s.explorer.Strategy())
}

func (s *ExplorerTestSuite) TestReturnPrefersDepot() {
	s.Require().NoError(s.model.ObserveLandmark(s.ctx, 30, 30, 0, entities.LandmarkDepot, nil))
	s.Require().NoError(s.explorer.Start(s.ctx, 0, 0, 0, explorer.StrategyReturn))

	cmd := s.tick(explorer.TickInput{X: 10, Y: 10, Z: 0, Health: 100, MaxHealth: 100})
	s.Require().NotNil(cmd.Target)
	s.Equal("depot", cmd.Target.Reason)
	s.Equal(30, cmd.Target.X)
}

func (s *ExplorerTestSuite) TestReturnEndsAtStart() {
	s.Require().NoError(s.explorer.Start(s.ctx, 0, 0, 0, explorer.StrategyReturn))

	// Already within arrival distance of the start and no depot known:
	// the strategy has nothing left to do.
	cmd := s.tick(explorer.TickInput{X: 1, Y: 1, Z: 0, Health: 100, MaxHealth: 100})
	s.Equal(explorer.CommandNoTargets, cmd.Kind)
}

func (s *ExplorerTestSuite) TestDeepPrefersStairDown() {
	s.Require().NoError(s.model.ObserveLandmark(s.ctx, 10, 0, 0, entities.LandmarkStairDown, nil))
	s.Require().NoError(s.explorer.Start(s.ctx, 0, 0, 0, explorer.StrategyDeep))

	cmd := s.tick(explorer.TickInput{X: 0, Y: 0, Z: 0, Health: 100, MaxHealth: 100})
	s.Require().NotNil(cmd.Target)
	s.Equal("stair down", cmd.Target.Reason)
	s.Equal(10, cmd.Target.X)
}

func (s *ExplorerTestSuite) TestDeepFallsBackToFrontier() {
	s.Require().NoError(s.model.ObservePosition(s.ctx, 3, 0, 0, 1))
	s.Require().NoError(s.explorer.Start(s.ctx, 0, 0, 0, explorer.StrategyDeep))

	cmd := s.tick(explorer.TickInput{X: 0, Y: 0, Z: 0, Health: 100, MaxHealth: 100})
	s.Require().NotNil(cmd.Target)
	s.Equal("nearest frontier", cmd.Target.Reason)
}

func (s *ExplorerTestSuite) TestSweepTargetsUnexploredByBearing() {
	s.Require().NoError(s.explorer.Start(s.ctx, 0, 0, 0, explorer.StrategySweep))

	cmd := s.tick(explorer.TickInput{X: 0, Y: 0, Z: 0, Health: 100, MaxHealth: 100})
	s.Require().NotNil(cmd.Target)
	s.Equal("sweep", cmd.Target.Reason)
	// The target is unexplored, so no path exists; movement falls back to
	// a compass bearing.
	s.Equal(explorer.CommandMoveBearing, cmd.Kind)
	s.NotEmpty(cmd.Direction)
}

func (s *ExplorerTestSuite) TestSafeRefusesDangerousFrontiers() {
	// The only boundary cell is blood-soaked; SAFE has nowhere to go.
	s.Require().NoError(s.model.ObservePosition(s.ctx, 2, 0, 0, 1))
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.model.ObserveDeath(s.ctx, 2, 0, 0, "ambush"))
	}
	s.Require().NoError(s.explorer.Start(s.ctx, 0, 0, 0, explorer.StrategySafe))

	cmd := s.tick(explorer.TickInput{X: 0, Y: 0, Z: 0, Health: 100, MaxHealth: 100})
	s.Equal(explorer.CommandNoTargets, cmd.Kind)
}

func (s *ExplorerTestSuite) TestStuckAbandonsTarget() {
	e, err := explorer.New(&explorer.Config{
		World:          s.model,
		Frontiers:      &shiftingFrontiers{},
		Planner:        mustPlanner(s.T()),
		Clock:          s.clock,
		IDGen:          idgen.NewSequential("route"),
		StuckThreshold: 2,
	})
	s.Require().NoError(err)
	s.Require().NoError(e.Start(s.ctx, 0, 0, 0, explorer.StrategyFrontier))

	in := explorer.TickInput{X: 0, Y: 0, Z: 0, Health: 100, MaxHealth: 100}
	_, err = e.Tick(s.ctx, in)
	s.Require().NoError(err)
	first := e.CurrentTarget()
	s.Require().NotNil(first)

	// No movement for two more ticks crosses the threshold; the target is
	// abandoned and a fresh one selected.
	_, err = e.Tick(s.ctx, in)
	s.Require().NoError(err)
	_, err = e.Tick(s.ctx, in)
	s.Require().NoError(err)

	second := e.CurrentTarget()
	s.Require().NotNil(second)
	s.NotEqual(first.X, second.X)
}

func (s *ExplorerTestSuite) TestStopWithFewWaypointsYieldsNoRoute() {
	s.Require().NoError(s.explorer.Start(s.ctx, 0, 0, 0, explorer.StrategyFrontier))
	s.tick(explorer.TickInput{X: 0, Y: 0, Z: 0, Health: 100, MaxHealth: 100})

	findings, err := s.explorer.Stop(s.ctx)
	s.Require().NoError(err)
	s.Nil(findings.Route)
	s.Positive(findings.Observations)
}

func (s *ExplorerTestSuite) TestRouteSynthesisFromWaypoints() {
	// A boundary cell two tiles away keeps every arrival within the
	// arrival radius while the agent stands still.
	s.Require().NoError(s.model.ObservePosition(s.ctx, 2, 0, 0, 1))
	s.Require().NoError(s.model.ObserveCreature(s.ctx, "Rat", 1, 0, 0, false))
	s.Require().NoError(s.model.ObserveCreature(s.ctx, "Rat", 1, 0, 0, false))
	s.Require().NoError(s.model.ObserveCreature(s.ctx, "Wolf", 0, 1, 0, false))

	s.Require().NoError(s.explorer.Start(s.ctx, 0, 0, 0, explorer.StrategyFrontier))

	// Standing on the target: every tick after the first arrives, records
	// a waypoint, and re-targets the same boundary cell.
	in := explorer.TickInput{X: 0, Y: 0, Z: 0, Health: 100, MaxHealth: 100}
	for i := 0; i < 4; i++ {
		s.tick(in)
	}

	findings, err := s.explorer.Stop(s.ctx)
	s.Require().NoError(err)
	s.Require().GreaterOrEqual(len(findings.Waypoints), 3)
	s.Require().NotNil(findings.Route)

	route := findings.Route
	s.Equal("route_1", route.ID)
	s.Equal("area_0_0_floor_0", route.Label)
	s.Require().NotEmpty(route.Targets)
	s.Equal("Rat", route.Targets[0].Name)
	s.Greater(route.Targets[0].Encounters, route.Targets[len(route.Targets)-1].Encounters)

	// Creatures around and low danger classify the stop as a hunt area.
	s.Equal(entities.ActionHuntArea, findings.Waypoints[0].Action)
}

func (s *ExplorerTestSuite) TestStopWithoutSession() {
	_, err := s.explorer.Stop(s.ctx)
	s.Error(err)
}

// shiftingFrontiers hands out a different frontier on every call so
// stuck-abandonment visibly changes the target.
type shiftingFrontiers struct {
	calls int
}

func (f *shiftingFrontiers) Nearest(grid *entities.CellGrid, origin entities.Point, _ float64) *entities.Frontier {
	f.calls++
	return &entities.Frontier{X: origin.X + 10*f.calls, Y: origin.Y, Z: grid.Z, Priority: 1}
}

func (f *shiftingFrontiers) Rank(grid *entities.CellGrid, origin entities.Point, _ int) []entities.Frontier {
	n := f.Nearest(grid, origin, 0)
	return []entities.Frontier{*n}
}

func mustPlanner(t *testing.T) *planner.Planner {
	p, err := planner.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestExplorerTestSuite(t *testing.T) {
	suite.Run(t, new(ExplorerTestSuite))
}
