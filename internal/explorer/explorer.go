// Package explorer drives exploration sessions: it selects targets per
// the active strategy, plans movement, detects arrival and stuck
// conditions, and synthesizes a reusable route when an episode ends.
// Movement commands are returned to the caller; actually executing them
// belongs to the actuation layer, not this package.
package explorer

import (
	"context"
	"log/slog"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/errors"
	"github.com/wayfarer-ai/wayfarer/internal/pkg/clock"
	"github.com/wayfarer-ai/wayfarer/internal/pkg/idgen"
)

//go:generate mockgen -destination=mock/mock_deps.go -package=mockexplorer github.com/wayfarer-ai/wayfarer/internal/explorer World,FrontierSource,PathFinder

// Strategy selects how the explorer picks its next target. The set is
// closed; selection switches over it exhaustively.
type Strategy string

// Strategies
const (
	// StrategyFrontier walks to the nearest boundary of explored space.
	StrategyFrontier Strategy = "FRONTIER"
	// StrategyDeep heads for the nearest way down, frontier otherwise.
	StrategyDeep Strategy = "DEEP"
	// StrategySweep spirals outward over unexplored cells.
	StrategySweep Strategy = "SWEEP"
	// StrategyValue chases the highest-value frontier, frontier otherwise.
	StrategyValue Strategy = "VALUE"
	// StrategySafe takes the lowest-danger frontier under a ceiling.
	StrategySafe Strategy = "SAFE"
	// StrategyReturn heads home: nearest depot, else the session start.
	StrategyReturn Strategy = "RETURN"
	// StrategyIdle is the initial and terminal state; no targets.
	StrategyIdle Strategy = "IDLE"
)

// CommandKind tags what the actuation layer should do this tick.
type CommandKind string

// Command kinds
const (
	// CommandMovePath follows a planned path.
	CommandMovePath CommandKind = "move_path"
	// CommandMoveBearing moves one step along a compass direction; used
	// when no path exists, which is how progress is made into space the
	// planner cannot search.
	CommandMoveBearing CommandKind = "move_bearing"
	// CommandIdle does nothing this tick.
	CommandIdle CommandKind = "idle"
	// CommandNoTargets signals the strategy found nothing left to do; the
	// episode should end. A normal terminal condition, not an error.
	CommandNoTargets CommandKind = "no_targets"
)

// Command is the explorer's per-tick output.
type Command struct {
	Kind   CommandKind                 `json:"kind"`
	Target *entities.ExplorationTarget `json:"target,omitempty"`

	// Path is set for move_path, ordered start to goal.
	Path []entities.Point `json:"path,omitempty"`
	// Direction is set for move_bearing.
	Direction Direction `json:"direction,omitempty"`
}

// World is the slice of the world model the explorer consumes.
type World interface {
	ObservePosition(ctx context.Context, x, y, z, radius int) error
	FloorSnapshot(ctx context.Context, z int) (*entities.CellGrid, error)
	NearestLandmark(ctx context.Context, x, y, z int, landmarkType string) (*entities.Landmark, error)
	AreaDanger(ctx context.Context, x, y, z, radius int) (float64, error)
	CreaturesInArea(ctx context.Context, x, y, z, radius int) (map[string]int, error)
	Save(ctx context.Context) error
}

// FrontierSource finds and ranks boundary cells on a floor snapshot.
type FrontierSource interface {
	Nearest(grid *entities.CellGrid, origin entities.Point, maxRadius float64) *entities.Frontier
	Rank(grid *entities.CellGrid, origin entities.Point, limit int) []entities.Frontier
}

// PathFinder plans over a floor snapshot.
type PathFinder interface {
	FindPath(grid *entities.CellGrid, start, goal entities.Point, avoidDanger bool) []entities.Point
}

const (
	defaultHealthFloor       = 0.3
	defaultDeathCap          = 3
	defaultArrivalRadius     = 3
	defaultObserveRadius     = 2
	defaultWaypointRadius    = 3
	defaultExplorationRadius = 40.0
	defaultStuckThreshold    = 5
	defaultValueFloor        = 0.2
	defaultSafetyCeiling     = 0.4

	// A waypoint with creatures around and danger below this is worth
	// hunting on replay.
	huntDangerCeiling = 0.5

	minRouteWaypoints = 3
	routeTopCreatures = 5
)

// Config holds the explorer configuration.
type Config struct {
	World     World
	Frontiers FrontierSource
	Planner   PathFinder
	Clock     clock.Clock
	IDGen     idgen.Generator

	// HealthFloor forces RETURN below this health ratio.
	HealthFloor float64
	// DeathCap forces RETURN after this many session deaths.
	DeathCap int
	// ArrivalRadius is how close, in tiles, counts as reaching a target.
	ArrivalRadius int
	// ExplorationRadius bounds frontier selection distance.
	ExplorationRadius float64
	// StuckThreshold abandons the target after this many ticks without
	// positional progress.
	StuckThreshold int
	// ValueFloor is the minimum frontier value the VALUE strategy chases.
	ValueFloor float64
	// SafetyCeiling is the maximum frontier danger SAFE accepts.
	SafetyCeiling float64
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.World == nil {
		return errors.InvalidArgument("world is required")
	}
	if c.Frontiers == nil {
		return errors.InvalidArgument("frontier source is required")
	}
	if c.Planner == nil {
		return errors.InvalidArgument("planner is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if c.IDGen == nil {
		return errors.InvalidArgument("id generator is required")
	}
	if c.HealthFloor < 0 || c.HealthFloor > 1 {
		return errors.InvalidArgument("HealthFloor must be within [0, 1]")
	}
	return nil
}

// Explorer owns one exploration session at a time. It is not safe for
// concurrent use; it lives on a single control loop.
type Explorer struct {
	world     World
	frontiers FrontierSource
	planner   PathFinder
	clock     clock.Clock
	idgen     idgen.Generator

	healthFloor       float64
	deathCap          int
	arrivalRadius     int
	explorationRadius float64
	stuckThreshold    int
	valueFloor        float64
	safetyCeiling     float64

	session *session
}

// session is the state of one exploration episode.
type session struct {
	strategy Strategy
	start    entities.Point
	startZ   int

	target *entities.ExplorationTarget

	waypoints      []entities.Waypoint
	targetsReached int
	observations   int
	deaths         int

	lastPos    entities.Point
	lastZ      int
	stuckTicks int
}

// Findings summarize a finished episode.
type Findings struct {
	Strategy       Strategy            `json:"strategy"`
	TargetsReached int                 `json:"targets_reached"`
	Observations   int                 `json:"observations"`
	Deaths         int                 `json:"deaths"`
	Waypoints      []entities.Waypoint `json:"waypoints"`

	// Route is synthesized only from episodes with enough waypoints.
	Route *entities.Route `json:"route,omitempty"`
}

// New creates a new explorer
func New(cfg *Config) (*Explorer, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.IDGen == nil {
		cfg.IDGen = idgen.NewUUID("route")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Explorer{
		world:             cfg.World,
		frontiers:         cfg.Frontiers,
		planner:           cfg.Planner,
		clock:             cfg.Clock,
		idgen:             cfg.IDGen,
		healthFloor:       cfg.HealthFloor,
		deathCap:          cfg.DeathCap,
		arrivalRadius:     cfg.ArrivalRadius,
		explorationRadius: cfg.ExplorationRadius,
		stuckThreshold:    cfg.StuckThreshold,
		valueFloor:        cfg.ValueFloor,
		safetyCeiling:     cfg.SafetyCeiling,
	}
	if e.healthFloor == 0 {
		e.healthFloor = defaultHealthFloor
	}
	if e.deathCap == 0 {
		e.deathCap = defaultDeathCap
	}
	if e.arrivalRadius == 0 {
		e.arrivalRadius = defaultArrivalRadius
	}
	if e.explorationRadius == 0 {
		e.explorationRadius = defaultExplorationRadius
	}
	if e.stuckThreshold == 0 {
		e.stuckThreshold = defaultStuckThreshold
	}
	if e.valueFloor == 0 {
		e.valueFloor = defaultValueFloor
	}
	if e.safetyCeiling == 0 {
		e.safetyCeiling = defaultSafetyCeiling
	}
	return e, nil
}

// Start begins an exploration session at the given position.
func (e *Explorer) Start(ctx context.Context, x, y, z int, strategy Strategy) error {
	if e.session != nil {
		return errors.FailedPrecondition("exploration session already active")
	}
	switch strategy {
	case StrategyFrontier, StrategyDeep, StrategySweep, StrategyValue,
		StrategySafe, StrategyReturn:
	case StrategyIdle:
		return errors.InvalidArgument("cannot start an IDLE session")
	default:
		return errors.InvalidArgumentf("unknown strategy %q", strategy)
	}

	e.session = &session{
		strategy: strategy,
		start:    entities.Point{X: x, Y: y},
		startZ:   z,
		lastPos:  entities.Point{X: x, Y: y},
		lastZ:    z,
	}
	slog.InfoContext(ctx, "exploration session started",
		"strategy", strategy, "x", x, "y", y, "z", z)
	return nil
}

// Stop ends the session, persists pending observations, and returns the
// findings. With three or more recorded waypoints a reusable route is
// synthesized; fewer waypoints yield none.
func (e *Explorer) Stop(ctx context.Context) (*Findings, error) {
	if e.session == nil {
		return nil, errors.FailedPrecondition("no active exploration session")
	}
	s := e.session
	e.session = nil

	if err := e.world.Save(ctx); err != nil {
		return nil, err
	}

	findings := &Findings{
		Strategy:       s.strategy,
		TargetsReached: s.targetsReached,
		Observations:   s.observations,
		Deaths:         s.deaths,
		Waypoints:      s.waypoints,
	}
	if len(s.waypoints) >= minRouteWaypoints {
		findings.Route = e.synthesizeRoute(s)
	}

	slog.InfoContext(ctx, "exploration session stopped",
		"strategy", s.strategy,
		"targets_reached", s.targetsReached,
		"waypoints", len(s.waypoints),
		"route", findings.Route != nil)
	return findings, nil
}

// RecordDeath bumps the session death counter the safety check reads.
func (e *Explorer) RecordDeath() {
	if e.session != nil {
		e.session.deaths++
	}
}

// Strategy returns the active strategy, IDLE outside a session.
func (e *Explorer) Strategy() Strategy {
	if e.session == nil {
		return StrategyIdle
	}
	return e.session.strategy
}

// CurrentTarget returns where the explorer is headed, nil when between
// targets or outside a session.
func (e *Explorer) CurrentTarget() *entities.ExplorationTarget {
	if e.session == nil {
		return nil
	}
	return e.session.target
}
