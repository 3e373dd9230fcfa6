// Package frontier finds the boundary of current knowledge: explored,
// walkable cells with at least one unexplored 8-neighbor. Results are
// always recomputed from the grid handed in, never cached.
package frontier

import (
	"sort"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/errors"
	"github.com/wayfarer-ai/wayfarer/internal/pkg/clock"
)

const (
	defaultMaxResults = 20

	// Staleness saturates after an hour: a frontier unseen for longer is
	// no more urgent than one unseen for exactly an hour.
	staleSaturationSeconds = 3600.0

	valueWeight  = 0.4
	safetyWeight = 0.3
	staleWeight  = 0.3
)

// Config holds the detector configuration.
type Config struct {
	Clock clock.Clock
	// MaxResults caps how many frontiers a scan returns when the caller
	// passes no explicit limit.
	MaxResults int
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if c.MaxResults < 0 {
		return errors.InvalidArgument("MaxResults must not be negative")
	}
	return nil
}

// Detector scans floor snapshots for frontier cells and ranks them.
type Detector struct {
	clock      clock.Clock
	maxResults int
}

// New creates a new detector
func New(cfg *Config) (*Detector, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	maxResults := cfg.MaxResults
	if maxResults == 0 {
		maxResults = defaultMaxResults
	}
	return &Detector{clock: cfg.Clock, maxResults: maxResults}, nil
}

// Rank returns the top frontiers of the grid sorted by priority,
// descending. Priority favors valuable, safe, long-unseen cells:
//
//	0.4*value + 0.3*(1-danger) + 0.3*staleness
//
// Ties keep scan order (y, then x) so repeated scans over the same grid
// rank identically. A limit of 0 uses the configured default cap.
func (d *Detector) Rank(grid *entities.CellGrid, origin entities.Point, limit int) []entities.Frontier {
	if limit <= 0 {
		limit = d.maxResults
	}

	found := d.scan(grid)
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Priority > found[j].Priority
	})
	if len(found) > limit {
		found = found[:limit]
	}
	return found
}

// Nearest returns the frontier closest to origin by straight-line
// distance, searching only within maxRadius (0 means unbounded). A nil
// result means the grid has no frontier in range.
func (d *Detector) Nearest(grid *entities.CellGrid, origin entities.Point, maxRadius float64) *entities.Frontier {
	var best *entities.Frontier
	bestDist := 0.0
	for _, f := range d.scan(grid) {
		f := f
		dist := entities.EuclideanDist(origin, entities.Point{X: f.X, Y: f.Y})
		if maxRadius > 0 && dist > maxRadius {
			continue
		}
		if best == nil || dist < bestDist {
			best = &f
			bestDist = dist
		}
	}
	return best
}

// scan walks the grid in stable order and collects every frontier cell.
func (d *Detector) scan(grid *entities.CellGrid) []entities.Frontier {
	now := d.clock.Now()

	var found []entities.Frontier
	for _, p := range grid.Points() {
		if !grid.IsWalkable(p.X, p.Y) {
			continue
		}

		unexplored := 0
		for _, off := range entities.Neighbors8 {
			if !grid.IsExplored(p.X+off.X, p.Y+off.Y) {
				unexplored++
			}
		}
		if unexplored == 0 {
			continue
		}

		cell, _ := grid.At(p.X, p.Y)
		danger := cell.DangerScore()
		value := cell.ValueScore(grid.LootCeiling)

		staleness := 1.0
		if !cell.LastSeen.IsZero() {
			age := now.Sub(cell.LastSeen).Seconds()
			if age < 0 {
				age = 0
			}
			staleness = age / staleSaturationSeconds
			if staleness > 1 {
				staleness = 1
			}
		}

		found = append(found, entities.Frontier{
			X:                   p.X,
			Y:                   p.Y,
			Z:                   grid.Z,
			Priority:            valueWeight*value + safetyWeight*(1-danger) + staleWeight*staleness,
			Danger:              danger,
			Value:               value,
			UnexploredNeighbors: unexplored,
		})
	}
	return found
}
