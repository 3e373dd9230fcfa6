package explorer

import (
	"context"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/errors"
)

const sweepMaxRadius = 60

// selectTarget picks the next destination per the active strategy. A nil
// target with no error means the strategy is out of work.
func (e *Explorer) selectTarget(ctx context.Context, in TickInput) (*entities.ExplorationTarget, error) {
	pos := entities.Point{X: in.X, Y: in.Y}

	grid, err := e.world.FloorSnapshot(ctx, in.Z)
	if err != nil {
		return nil, err
	}

	switch e.session.strategy {
	case StrategyFrontier:
		return e.nearestFrontierTarget(grid, pos), nil

	case StrategyDeep:
		if l, err := e.world.NearestLandmark(ctx, in.X, in.Y, in.Z, entities.LandmarkStairDown); err == nil {
			return &entities.ExplorationTarget{
				X: l.X, Y: l.Y, Z: l.Z,
				Reason:   "stair down",
				Priority: 1,
			}, nil
		} else if !errors.IsNotFound(err) {
			return nil, err
		}
		return e.nearestFrontierTarget(grid, pos), nil

	case StrategySweep:
		return sweepTarget(grid, pos), nil

	case StrategyValue:
		var best *entities.Frontier
		for _, f := range e.frontiers.Rank(grid, pos, 0) {
			f := f
			if f.Value < e.valueFloor {
				continue
			}
			if best == nil || f.Value > best.Value {
				best = &f
			}
		}
		if best != nil {
			return &entities.ExplorationTarget{
				X: best.X, Y: best.Y, Z: grid.Z,
				Reason:   "high value frontier",
				Priority: best.Priority,
			}, nil
		}
		return e.nearestFrontierTarget(grid, pos), nil

	case StrategySafe:
		var best *entities.Frontier
		for _, f := range e.frontiers.Rank(grid, pos, 0) {
			f := f
			if f.Danger > e.safetyCeiling {
				continue
			}
			if best == nil || f.Danger < best.Danger {
				best = &f
			}
		}
		if best == nil {
			return nil, nil
		}
		return &entities.ExplorationTarget{
			X: best.X, Y: best.Y, Z: grid.Z,
			Reason:   "low danger frontier",
			Priority: best.Priority,
		}, nil

	case StrategyReturn:
		if l, err := e.world.NearestLandmark(ctx, in.X, in.Y, in.Z, entities.LandmarkDepot); err == nil {
			return &entities.ExplorationTarget{
				X: l.X, Y: l.Y, Z: l.Z,
				Reason:   "depot",
				Priority: 1,
			}, nil
		} else if !errors.IsNotFound(err) {
			return nil, err
		}
		if in.Z == e.session.startZ && entities.ChebyshevDist(pos, e.session.start) <= e.arrivalRadius {
			// Already home.
			return nil, nil
		}
		return &entities.ExplorationTarget{
			X: e.session.start.X, Y: e.session.start.Y, Z: e.session.startZ,
			Reason:   "session start",
			Priority: 1,
		}, nil

	case StrategyIdle:
		return nil, nil
	}

	return nil, errors.Internalf("unhandled strategy %q", e.session.strategy)
}

func (e *Explorer) nearestFrontierTarget(grid *entities.CellGrid, pos entities.Point) *entities.ExplorationTarget {
	f := e.frontiers.Nearest(grid, pos, e.explorationRadius)
	if f == nil {
		return nil
	}
	return &entities.ExplorationTarget{
		X: f.X, Y: f.Y, Z: grid.Z,
		Reason:   "nearest frontier",
		Priority: f.Priority,
	}
}

// sweepTarget walks a deterministic outward spiral from the current
// position and targets the first unexplored cell it meets. The spiral
// visits each ring clockwise from the top-left corner, so repeated calls
// from the same position pick the same cell.
func sweepTarget(grid *entities.CellGrid, pos entities.Point) *entities.ExplorationTarget {
	for r := 1; r <= sweepMaxRadius; r++ {
		for _, p := range ringPoints(pos, r) {
			if grid.IsExplored(p.X, p.Y) {
				continue
			}
			return &entities.ExplorationTarget{
				X: p.X, Y: p.Y, Z: grid.Z,
				Reason:   "sweep",
				Priority: 1 / float64(r),
			}
		}
	}
	return nil
}

// ringPoints lists the cells at Chebyshev distance exactly r, clockwise
// from the top-left corner.
func ringPoints(center entities.Point, r int) []entities.Point {
	pts := make([]entities.Point, 0, 8*r)
	// Top edge, left to right.
	for x := center.X - r; x <= center.X+r; x++ {
		pts = append(pts, entities.Point{X: x, Y: center.Y - r})
	}
	// Right edge, top to bottom.
	for y := center.Y - r + 1; y <= center.Y+r; y++ {
		pts = append(pts, entities.Point{X: center.X + r, Y: y})
	}
	// Bottom edge, right to left.
	for x := center.X + r - 1; x >= center.X-r; x-- {
		pts = append(pts, entities.Point{X: x, Y: center.Y + r})
	}
	// Left edge, bottom to top.
	for y := center.Y + r - 1; y >= center.Y-r+1; y-- {
		pts = append(pts, entities.Point{X: center.X - r, Y: y})
	}
	return pts
}
