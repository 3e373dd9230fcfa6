package explorer

import (
	"context"
	"log/slog"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/errors"
)

// Direction is a compass heading for bearing movement.
type Direction string

// Compass directions
const (
	North     Direction = "n"
	NorthEast Direction = "ne"
	East      Direction = "e"
	SouthEast Direction = "se"
	South     Direction = "s"
	SouthWest Direction = "sw"
	West      Direction = "w"
	NorthWest Direction = "nw"
)

// TickInput carries the agent's live state into one tick.
type TickInput struct {
	X, Y, Z   int
	Health    int
	MaxHealth int
}

// Tick advances the session one step and returns the movement command
// for the actuation layer. Per-tick failures are logged and produce an
// idle command rather than halting the control loop; only data-loss
// failures propagate, since losing spatial memory corrupts every
// decision after it.
func (e *Explorer) Tick(ctx context.Context, in TickInput) (*Command, error) {
	if e.session == nil {
		return &Command{Kind: CommandIdle}, nil
	}

	cmd, err := e.tick(ctx, in)
	if err != nil {
		if errors.IsDataLoss(err) {
			return nil, err
		}
		slog.ErrorContext(ctx, "tick failed",
			"x", in.X, "y", in.Y, "z", in.Z,
			"strategy", e.session.strategy,
			"error", err)
		return &Command{Kind: CommandIdle}, nil
	}
	return cmd, nil
}

func (e *Explorer) tick(ctx context.Context, in TickInput) (*Command, error) {
	s := e.session
	pos := entities.Point{X: in.X, Y: in.Y}

	// Safety first: low health or too many deaths turn the session into
	// a retreat regardless of what it was doing.
	if s.strategy != StrategyReturn {
		hpRatio := 1.0
		if in.MaxHealth > 0 {
			hpRatio = float64(in.Health) / float64(in.MaxHealth)
		}
		if hpRatio < e.healthFloor || s.deaths >= e.deathCap {
			slog.InfoContext(ctx, "safety check forcing return",
				"hp_ratio", hpRatio, "deaths", s.deaths)
			s.strategy = StrategyReturn
			s.target = nil
		}
	}

	if err := e.world.ObservePosition(ctx, in.X, in.Y, in.Z, defaultObserveRadius); err != nil {
		return nil, err
	}
	s.observations++

	// Stuck detection. No positional progress past the threshold
	// abandons the current target; the next selection tries elsewhere.
	if pos == s.lastPos && in.Z == s.lastZ {
		s.stuckTicks++
	} else {
		s.stuckTicks = 0
	}
	s.lastPos = pos
	s.lastZ = in.Z
	if s.target != nil && s.stuckTicks >= e.stuckThreshold {
		slog.InfoContext(ctx, "stuck, abandoning target",
			"x", s.target.X, "y", s.target.Y, "ticks", s.stuckTicks)
		s.target = nil
		s.stuckTicks = 0
	}

	if s.target != nil && e.reached(pos, in.Z, s.target) {
		if err := e.recordWaypoint(ctx, in); err != nil {
			return nil, err
		}
		s.targetsReached++
		s.target = nil
	}

	if s.target == nil {
		target, err := e.selectTarget(ctx, in)
		if err != nil {
			return nil, err
		}
		if target == nil {
			slog.InfoContext(ctx, "no targets for strategy", "strategy", s.strategy)
			return &Command{Kind: CommandNoTargets}, nil
		}
		s.target = target
	}

	return e.moveCommand(ctx, pos, in.Z)
}

func (e *Explorer) reached(pos entities.Point, z int, t *entities.ExplorationTarget) bool {
	return z == t.Z && entities.ChebyshevDist(pos, t.Point2()) <= e.arrivalRadius
}

// recordWaypoint classifies the reached target by its surroundings:
// creatures around and tolerable danger make it a hunt area.
func (e *Explorer) recordWaypoint(ctx context.Context, in TickInput) error {
	creatures, err := e.world.CreaturesInArea(ctx, in.X, in.Y, in.Z, defaultWaypointRadius)
	if err != nil {
		return err
	}
	danger, err := e.world.AreaDanger(ctx, in.X, in.Y, in.Z, defaultWaypointRadius)
	if err != nil {
		return err
	}

	action := entities.ActionWalk
	if len(creatures) > 0 && danger < huntDangerCeiling {
		action = entities.ActionHuntArea
	}

	e.session.waypoints = append(e.session.waypoints, entities.Waypoint{
		X: in.X, Y: in.Y, Z: in.Z,
		Action:     action,
		Danger:     danger,
		Creatures:  creatures,
		RecordedAt: e.clock.Now(),
	})
	slog.DebugContext(ctx, "waypoint recorded",
		"x", in.X, "y", in.Y, "z", in.Z, "action", action)
	return nil
}

// moveCommand plans toward the current target. Danger-avoidance is on
// for every strategy except DEEP, which trades safety for descent speed.
// An empty plan falls back to a direct bearing; that is the only way to
// push into space the planner cannot search.
func (e *Explorer) moveCommand(ctx context.Context, pos entities.Point, z int) (*Command, error) {
	s := e.session
	goal := s.target.Point2()

	if z == s.target.Z {
		grid, err := e.world.FloorSnapshot(ctx, z)
		if err != nil {
			return nil, err
		}
		avoidDanger := s.strategy != StrategyDeep
		if path := e.planner.FindPath(grid, pos, goal, avoidDanger); len(path) > 0 {
			return &Command{Kind: CommandMovePath, Target: s.target, Path: path}, nil
		}
	}

	return &Command{
		Kind:      CommandMoveBearing,
		Target:    s.target,
		Direction: bearing(pos, goal),
	}, nil
}

// bearing quantizes the heading from pos to goal into 8 compass
// directions.
func bearing(pos, goal entities.Point) Direction {
	dx := sign(goal.X - pos.X)
	dy := sign(goal.Y - pos.Y)

	switch {
	case dx == 0 && dy < 0:
		return North
	case dx > 0 && dy < 0:
		return NorthEast
	case dx > 0 && dy == 0:
		return East
	case dx > 0 && dy > 0:
		return SouthEast
	case dx == 0 && dy > 0:
		return South
	case dx < 0 && dy > 0:
		return SouthWest
	case dx < 0 && dy == 0:
		return West
	default:
		return NorthWest
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
