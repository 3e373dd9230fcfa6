package worldmodel

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/repositories/cells"
)

// zoneBucketSize is the fixed chunking grid for zone discovery. Buckets do
// not merge across boundaries; zone output is advisory context only.
const zoneBucketSize = 20

// DiscoverZones recomputes the zone clustering of floor z wholesale and
// replaces the stored zone list. Bucket aggregation is offloaded to a
// bounded worker group so a large floor never blocks the observation
// producer.
func (m *Model) DiscoverZones(ctx context.Context, z int) ([]entities.Zone, error) {
	if err := m.Flush(ctx); err != nil {
		return nil, err
	}

	out, err := m.store.GetFloor(ctx, cells.GetFloorInput{Z: z})
	if err != nil {
		return nil, err
	}

	buckets := make(map[entities.Point][]*entities.MapCell)
	for _, c := range out.Cells {
		b := entities.Point{X: floorDiv(c.X, zoneBucketSize), Y: floorDiv(c.Y, zoneBucketSize)}
		buckets[b] = append(buckets[b], c)
	}

	var (
		mu    sync.Mutex
		zones []entities.Zone
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.scanWorkers)

	for b, members := range buckets {
		b, members := b, members
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			zone := m.aggregateZone(z, b, members)
			mu.Lock()
			zones = append(zones, zone)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(zones, func(i, j int) bool {
		return zones[i].ID < zones[j].ID
	})

	if _, err := m.store.ReplaceZones(ctx, cells.ReplaceZonesInput{Z: z, Zones: zones}); err != nil {
		return nil, err
	}
	return zones, nil
}

// Zones returns the last stored zone list for floor z without recomputing.
func (m *Model) Zones(ctx context.Context, z int) ([]entities.Zone, error) {
	out, err := m.store.GetZones(ctx, cells.GetZonesInput{Z: z})
	if err != nil {
		return nil, err
	}
	return out.Zones, nil
}

func (m *Model) aggregateZone(z int, bucket entities.Point, members []*entities.MapCell) entities.Zone {
	zone := entities.Zone{
		ID:        fmt.Sprintf("zone_%d_%d_%d", z, bucket.X, bucket.Y),
		Z:         z,
		CellCount: len(members),
		Creatures: make(map[string]int),
	}

	sumX, sumY := 0, 0
	dangerTotal, valueTotal := 0.0, 0.0
	for _, c := range members {
		sumX += c.X
		sumY += c.Y
		dangerTotal += c.DangerScore()
		valueTotal += c.ValueScore(m.lootCeiling)
		zone.TotalDeaths += c.DeathCount
		zone.TotalLoot += c.LootValue
		for name, n := range c.Creatures {
			zone.Creatures[name] += n
		}
	}

	n := float64(len(members))
	zone.CenterX = int(math.Round(float64(sumX) / n))
	zone.CenterY = int(math.Round(float64(sumY) / n))
	zone.AvgDanger = dangerTotal / n
	zone.AvgValue = valueTotal / n

	center := entities.Point{X: zone.CenterX, Y: zone.CenterY}
	for _, c := range members {
		if d := entities.EuclideanDist(center, entities.Point{X: c.X, Y: c.Y}); d > zone.Radius {
			zone.Radius = d
		}
	}
	return zone
}

// floorDiv divides rounding toward negative infinity so negative
// coordinates bucket consistently.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
