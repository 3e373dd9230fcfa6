package cells

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/errors"
	"github.com/wayfarer-ai/wayfarer/internal/pkg/clock"
	redisclient "github.com/wayfarer-ai/wayfarer/internal/redis"
)

const (
	// Key patterns:
	//   wayfarer:floor:{z}:cells  hash, field "x:y" -> cell JSON
	//   wayfarer:floor:{z}:zones  string, zone list JSON, replaced wholesale
	//   wayfarer:landmarks        hash, field "type:x:y:z" -> landmark JSON
	//   wayfarer:floors           set of floor numbers
	floorKeyPrefix = "wayfarer:floor:"
	landmarksKey   = "wayfarer:landmarks"
	floorsKey      = "wayfarer:floors"

	// Error messages
	errBatchEmpty  = "delta batch cannot be empty"
	errLandmarkNil = "landmark cannot be nil"
	errBoxInverted = "box min must not exceed box max"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis cell repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed cell repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func cellsKey(z int) string {
	return fmt.Sprintf("%s%d:cells", floorKeyPrefix, z)
}

func zonesKey(z int) string {
	return fmt.Sprintf("%s%d:zones", floorKeyPrefix, z)
}

func cellField(x, y int) string {
	return fmt.Sprintf("%d:%d", x, y)
}

// ApplyBatch merges each delta into its stored cell and writes every
// touched cell back in one transaction. The read-merge-write is safe
// because all observation producers funnel through the world model's
// single write buffer.
func (r *redisRepository) ApplyBatch(ctx context.Context, input ApplyBatchInput) (*ApplyBatchOutput, error) {
	if len(input.Deltas) == 0 {
		return nil, errors.InvalidArgument(errBatchEmpty)
	}

	// Group merged deltas per floor; duplicate coordinates within the
	// batch fold together before any store round trip.
	byFloor := make(map[int]map[entities.Point]*entities.CellDelta)
	for _, d := range input.Deltas {
		floor := byFloor[d.Z]
		if floor == nil {
			floor = make(map[entities.Point]*entities.CellDelta)
			byFloor[d.Z] = floor
		}
		p := entities.Point{X: d.X, Y: d.Y}
		if existing, ok := floor[p]; ok {
			existing.Merge(d)
		} else {
			cp := *d
			floor[p] = &cp
		}
	}

	pipe := r.client.TxPipeline()
	written := 0

	for z, floor := range byFloor {
		points := make([]entities.Point, 0, len(floor))
		fields := make([]string, 0, len(floor))
		for p := range floor {
			points = append(points, p)
		}
		sort.Slice(points, func(i, j int) bool {
			if points[i].Y != points[j].Y {
				return points[i].Y < points[j].Y
			}
			return points[i].X < points[j].X
		})
		for _, p := range points {
			fields = append(fields, cellField(p.X, p.Y))
		}

		existing, err := r.client.HMGet(ctx, cellsKey(z), fields...).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read cells for floor %d", z)
		}

		values := make(map[string]interface{}, len(points))
		for i, p := range points {
			cell := entities.NewMapCell(p.X, p.Y, z)
			if raw, ok := existing[i].(string); ok {
				if err := json.Unmarshal([]byte(raw), cell); err != nil {
					return nil, errors.Wrapf(err, "failed to unmarshal cell %d:%d on floor %d", p.X, p.Y, z)
				}
			}
			floor[p].ApplyTo(cell)

			data, err := json.Marshal(cell)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to marshal cell %d:%d on floor %d", p.X, p.Y, z)
			}
			values[fields[i]] = data
		}

		pipe.HSet(ctx, cellsKey(z), values)
		pipe.SAdd(ctx, floorsKey, z)
		written += len(points)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to apply cell batch")
	}

	slog.DebugContext(ctx, "applied cell batch",
		"floors", len(byFloor),
		"cells_written", written)

	return &ApplyBatchOutput{CellsWritten: written}, nil
}

func (r *redisRepository) GetCell(ctx context.Context, input GetCellInput) (*GetCellOutput, error) {
	raw, err := r.client.HGet(ctx, cellsKey(input.Z), cellField(input.X, input.Y)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("cell (%d,%d,%d) not found", input.X, input.Y, input.Z)
		}
		return nil, errors.Wrapf(err, "failed to get cell (%d,%d,%d)", input.X, input.Y, input.Z)
	}

	var cell entities.MapCell
	if err := json.Unmarshal([]byte(raw), &cell); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal cell (%d,%d,%d)", input.X, input.Y, input.Z)
	}

	return &GetCellOutput{Cell: &cell}, nil
}

func (r *redisRepository) GetBox(ctx context.Context, input GetBoxInput) (*GetBoxOutput, error) {
	if input.MinX > input.MaxX || input.MinY > input.MaxY {
		return nil, errors.InvalidArgument(errBoxInverted)
	}

	fields := make([]string, 0, (input.MaxX-input.MinX+1)*(input.MaxY-input.MinY+1))
	for y := input.MinY; y <= input.MaxY; y++ {
		for x := input.MinX; x <= input.MaxX; x++ {
			fields = append(fields, cellField(x, y))
		}
	}

	raw, err := r.client.HMGet(ctx, cellsKey(input.Z), fields...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan box on floor %d", input.Z)
	}

	cells := make([]*entities.MapCell, 0, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue // coordinate never observed
		}
		var cell entities.MapCell
		if err := json.Unmarshal([]byte(s), &cell); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal cell %s on floor %d", fields[i], input.Z)
		}
		cells = append(cells, &cell)
	}

	return &GetBoxOutput{Cells: cells}, nil
}

func (r *redisRepository) GetFloor(ctx context.Context, input GetFloorInput) (*GetFloorOutput, error) {
	raw, err := r.client.HGetAll(ctx, cellsKey(input.Z)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load floor %d", input.Z)
	}

	cells := make([]*entities.MapCell, 0, len(raw))
	for field, v := range raw {
		var cell entities.MapCell
		if err := json.Unmarshal([]byte(v), &cell); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal cell %s on floor %d", field, input.Z)
		}
		cells = append(cells, &cell)
	}

	return &GetFloorOutput{Cells: cells}, nil
}

func (r *redisRepository) CountCells(ctx context.Context, input CountCellsInput) (*CountCellsOutput, error) {
	count, err := r.client.HLen(ctx, cellsKey(input.Z)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to count cells on floor %d", input.Z)
	}
	return &CountCellsOutput{Count: count}, nil
}

func (r *redisRepository) Floors(ctx context.Context) (*FloorsOutput, error) {
	members, err := r.client.SMembers(ctx, floorsKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list floors")
	}

	floors := make([]int, 0, len(members))
	for _, m := range members {
		z, err := strconv.Atoi(m)
		if err != nil {
			slog.WarnContext(ctx, "skipping malformed floor entry", "entry", m)
			continue
		}
		floors = append(floors, z)
	}
	sort.Ints(floors)

	return &FloorsOutput{Floors: floors}, nil
}

func (r *redisRepository) PutLandmark(ctx context.Context, input PutLandmarkInput) (*PutLandmarkOutput, error) {
	if input.Landmark == nil {
		return nil, errors.InvalidArgument(errLandmarkNil)
	}

	stored := input.Landmark
	created := true

	raw, err := r.client.HGet(ctx, landmarksKey, input.Landmark.Key).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to get landmark %s", input.Landmark.Key)
	}
	if err == nil {
		var existing entities.Landmark
		if err := json.Unmarshal([]byte(raw), &existing); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal landmark %s", input.Landmark.Key)
		}
		existing.Merge(input.Landmark)
		stored = &existing
		created = false
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal landmark %s", stored.Key)
	}

	if err := r.client.HSet(ctx, landmarksKey, stored.Key, data).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store landmark")
	}

	slog.DebugContext(ctx, "stored landmark",
		"key", stored.Key,
		"created", created)

	return &PutLandmarkOutput{Landmark: stored, Created: created}, nil
}

func (r *redisRepository) ListLandmarks(ctx context.Context, input ListLandmarksInput) (*ListLandmarksOutput, error) {
	raw, err := r.client.HGetAll(ctx, landmarksKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list landmarks")
	}

	landmarks := make([]*entities.Landmark, 0, len(raw))
	for key, v := range raw {
		var l entities.Landmark
		if err := json.Unmarshal([]byte(v), &l); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal landmark %s", key)
		}
		if input.Type != "" && l.Type != input.Type {
			continue
		}
		landmarks = append(landmarks, &l)
	}

	sort.Slice(landmarks, func(i, j int) bool {
		return landmarks[i].Key < landmarks[j].Key
	})

	return &ListLandmarksOutput{Landmarks: landmarks}, nil
}

func (r *redisRepository) ReplaceZones(ctx context.Context, input ReplaceZonesInput) (*ReplaceZonesOutput, error) {
	data, err := json.Marshal(input.Zones)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal zones for floor %d", input.Z)
	}

	if err := r.client.Set(ctx, zonesKey(input.Z), data, 0).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to replace zones")
	}

	return &ReplaceZonesOutput{ZonesWritten: len(input.Zones)}, nil
}

func (r *redisRepository) GetZones(ctx context.Context, input GetZonesInput) (*GetZonesOutput, error) {
	raw, err := r.client.Get(ctx, zonesKey(input.Z)).Result()
	if err != nil {
		if err == redis.Nil {
			return &GetZonesOutput{Zones: []entities.Zone{}}, nil
		}
		return nil, errors.Wrapf(err, "failed to get zones for floor %d", input.Z)
	}

	var zones []entities.Zone
	if err := json.Unmarshal([]byte(raw), &zones); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal zones for floor %d", input.Z)
	}

	return &GetZonesOutput{Zones: zones}, nil
}
