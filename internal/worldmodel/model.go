// Package worldmodel implements the spatial world model: an observation
// façade over the durable cell store plus the derived query surface the
// planner, frontier detector, reasoner and explorer share.
//
// Mutations are batched. Every observation appends a merged delta to a
// bounded write buffer; the buffer is flushed as one atomic batch when it
// reaches the flush threshold, before any plan-critical read, or on an
// explicit Save. Readers outside an explicit flush may observe a staleness
// window of at most one buffer's worth of recent observations.
package worldmodel

//go:generate mockgen -destination=mock/mock_model.go -package=worldmodelmock -source=model.go

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/errors"
	"github.com/wayfarer-ai/wayfarer/internal/pkg/clock"
	"github.com/wayfarer-ai/wayfarer/internal/repositories/cells"
)

const (
	defaultFlushThreshold = 50
	defaultScanWorkers    = 4

	// After this many consecutive flush failures the store is considered
	// gone for good. Losing spatial memory corrupts every downstream
	// decision, so this propagates as DataLoss instead of retrying forever.
	maxFlushFailures = 3
)

// FrontierRanker ranks frontier cells of a floor grid. Implemented by the
// frontier detector; injected so the context builder can report the top
// exploration candidates without this package depending on the detector.
type FrontierRanker interface {
	Rank(grid *entities.CellGrid, origin entities.Point, limit int) []entities.Frontier
}

// Config holds the dependencies for the world model.
type Config struct {
	Store cells.Repository
	Clock clock.Clock

	// Frontiers is optional; when set, ExplorationContext includes the
	// top-ranked frontiers.
	Frontiers FrontierRanker

	// FlushThreshold is the buffered-delta count that triggers a flush.
	FlushThreshold int

	// LootCeiling is the loot value at which a cell's value contribution
	// saturates.
	LootCeiling int64

	// ScanWorkers bounds the concurrency of CPU-bound floor scans.
	ScanWorkers int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.FlushThreshold < 0 {
		vb.InvalidField("FlushThreshold", "must not be negative")
	}
	if c.ScanWorkers < 0 {
		vb.InvalidField("ScanWorkers", "must not be negative")
	}

	return vb.Build()
}

// Model is the spatial world model. It owns the single write buffer; all
// observation producers funnel through it (single-writer discipline), and
// consumers that need a consistent snapshot trigger a flush first.
type Model struct {
	store       cells.Repository
	clock       clock.Clock
	frontiers   FrontierRanker
	threshold   int
	lootCeiling int64
	scanWorkers int

	mu            sync.Mutex
	buffer        map[cellKey]*entities.CellDelta
	flushFailures int
}

type cellKey struct {
	x, y, z int
}

// New creates a new world model with the provided dependencies
func New(cfg *Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	threshold := cfg.FlushThreshold
	if threshold == 0 {
		threshold = defaultFlushThreshold
	}
	lootCeiling := cfg.LootCeiling
	if lootCeiling == 0 {
		lootCeiling = entities.DefaultLootCeiling
	}
	workers := cfg.ScanWorkers
	if workers == 0 {
		workers = defaultScanWorkers
	}

	return &Model{
		store:       cfg.Store,
		clock:       c,
		frontiers:   cfg.Frontiers,
		threshold:   threshold,
		lootCeiling: lootCeiling,
		scanWorkers: workers,
		buffer:      make(map[cellKey]*entities.CellDelta),
	}, nil
}

// ObservePosition marks every cell within Euclidean radius of (x, y, z) as
// explored, bumps the visit count and last-seen at the exact coordinate,
// and marks it walkable.
func (m *Model) ObservePosition(ctx context.Context, x, y, z, radius int) error {
	if radius < 0 {
		return errors.InvalidArgument("radius must not be negative")
	}

	now := m.clock.Now()
	deltas := make([]*entities.CellDelta, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			deltas = append(deltas, &entities.CellDelta{
				X: x + dx, Y: y + dy, Z: z,
				MarkExplored: true,
				SeenAt:       now,
			})
		}
	}
	deltas = append(deltas, &entities.CellDelta{
		X: x, Y: y, Z: z,
		SetWalkable: entities.Bool(true),
		Visits:      1,
		SeenAt:      now,
	})

	return m.buffered(ctx, deltas...)
}

// ObserveCreature records a sighting of a named creature at a coordinate.
// Player sightings count separately toward danger.
func (m *Model) ObserveCreature(ctx context.Context, name string, x, y, z int, isPlayer bool) error {
	if name == "" {
		return errors.InvalidArgument("creature name cannot be empty")
	}

	d := &entities.CellDelta{
		X: x, Y: y, Z: z,
		SeenAt: m.clock.Now(),
	}
	if isPlayer {
		d.PlayerSightings = 1
	} else {
		d.Creatures = map[string]int{name: 1}
	}

	return m.buffered(ctx, d)
}

// ObserveDeath records a death at a coordinate. Deaths are signal-critical
// and flush immediately.
func (m *Model) ObserveDeath(ctx context.Context, x, y, z int, cause string) error {
	slog.InfoContext(ctx, "death observed",
		"x", x, "y", y, "z", z,
		"cause", cause)

	d := &entities.CellDelta{
		X: x, Y: y, Z: z,
		Deaths: 1,
		SeenAt: m.clock.Now(),
	}
	if err := m.buffered(ctx, d); err != nil {
		return err
	}
	return m.Flush(ctx)
}

// ObserveLandmark records a landmark at a coordinate. The landmark table
// is written immediately and the cell batch flushes with it.
func (m *Model) ObserveLandmark(ctx context.Context, x, y, z int, landmarkType string, data map[string]string) error {
	if landmarkType == "" {
		return errors.InvalidArgument("landmark type cannot be empty")
	}

	now := m.clock.Now()
	landmark := entities.NewLandmark(landmarkType, x, y, z, data, now)
	if _, err := m.store.PutLandmark(ctx, cells.PutLandmarkInput{Landmark: landmark}); err != nil {
		return errors.Wrapf(err, "failed to store landmark %s", landmark.Key)
	}

	d := &entities.CellDelta{
		X: x, Y: y, Z: z,
		MarkExplored: true,
		SetWalkable:  entities.Bool(true),
		LandmarkTag:  landmarkType,
		SeenAt:       now,
	}
	if ct := landmarkCellType(landmarkType); ct != "" {
		d.Type = ct
	}
	if err := m.buffered(ctx, d); err != nil {
		return err
	}
	return m.Flush(ctx)
}

// ObserveWall records an impassable cell.
func (m *Model) ObserveWall(ctx context.Context, x, y, z int) error {
	return m.buffered(ctx, &entities.CellDelta{
		X: x, Y: y, Z: z,
		Type:         entities.CellWall,
		SetWalkable:  entities.Bool(false),
		MarkExplored: true,
		SeenAt:       m.clock.Now(),
	})
}

// ObserveLoot records loot value found at a coordinate.
func (m *Model) ObserveLoot(ctx context.Context, x, y, z int, value int64) error {
	if value < 0 {
		return errors.InvalidArgument("loot value must not be negative")
	}
	return m.buffered(ctx, &entities.CellDelta{
		X: x, Y: y, Z: z,
		Loot:   value,
		SeenAt: m.clock.Now(),
	})
}

// ObserveDamage records damage taken at a coordinate.
func (m *Model) ObserveDamage(ctx context.Context, x, y, z int, amount int64) error {
	if amount < 0 {
		return errors.InvalidArgument("damage amount must not be negative")
	}
	return m.buffered(ctx, &entities.CellDelta{
		X: x, Y: y, Z: z,
		Damage: amount,
		SeenAt: m.clock.Now(),
	})
}

// Flush writes all buffered deltas as one atomic batch. On failure the
// buffer is retained and retried on the next flush.
func (m *Model) Flush(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushLocked(ctx)
}

// Save is an explicit flush for session boundaries.
func (m *Model) Save(ctx context.Context) error {
	return m.Flush(ctx)
}

// PendingObservations returns the current buffered delta count.
func (m *Model) PendingObservations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buffer)
}

// buffered merges deltas into the write buffer and flushes once the
// threshold is reached. A failed threshold flush is logged and retried on
// the next flush rather than failing the observation, until the store has
// been failing long enough to count as unrecoverable.
func (m *Model) buffered(ctx context.Context, deltas ...*entities.CellDelta) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, d := range deltas {
		k := cellKey{x: d.X, y: d.Y, z: d.Z}
		if existing, ok := m.buffer[k]; ok {
			existing.Merge(d)
		} else {
			m.buffer[k] = d
		}
	}

	if len(m.buffer) < m.threshold {
		return nil
	}

	if err := m.flushLocked(ctx); err != nil {
		if m.flushFailures >= maxFlushFailures {
			return errors.WrapWithCode(err, errors.CodeDataLoss, "cell store is unrecoverable")
		}
		slog.WarnContext(ctx, "flush failed, batch retained for retry",
			"pending", len(m.buffer),
			"consecutive_failures", m.flushFailures,
			"error", err.Error())
	}
	return nil
}

func (m *Model) flushLocked(ctx context.Context) error {
	if len(m.buffer) == 0 {
		return nil
	}

	batch := make([]*entities.CellDelta, 0, len(m.buffer))
	for _, d := range m.buffer {
		batch = append(batch, d)
	}

	out, err := m.store.ApplyBatch(ctx, cells.ApplyBatchInput{Deltas: batch})
	if err != nil {
		m.flushFailures++
		return errors.Wrap(err, "failed to flush observation batch")
	}

	m.buffer = make(map[cellKey]*entities.CellDelta)
	m.flushFailures = 0

	slog.DebugContext(ctx, "flushed observation batch",
		"cells_written", out.CellsWritten)
	return nil
}

// landmarkCellType maps landmark types onto cell types where one exists.
func landmarkCellType(landmarkType string) entities.CellType {
	switch landmarkType {
	case entities.LandmarkStairUp:
		return entities.CellStairUp
	case entities.LandmarkStairDown:
		return entities.CellStairDown
	case entities.LandmarkRopeHole:
		return entities.CellRopeHole
	case entities.LandmarkTeleport:
		return entities.CellTeleport
	case entities.LandmarkDepot:
		return entities.CellDepot
	case entities.LandmarkTemple:
		return entities.CellTemple
	case entities.LandmarkNPC:
		return entities.CellNPC
	default:
		return ""
	}
}
