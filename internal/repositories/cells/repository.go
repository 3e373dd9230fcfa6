// Package cells provides the interface for durable map cell persistence
package cells

//go:generate mockgen -destination=mock/mock_repository.go -package=cellsmock github.com/wayfarer-ai/wayfarer/internal/repositories/cells Repository

import (
	"context"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
)

// Repository defines the interface for the per-floor cell store, the
// landmark table and the zone table.
type Repository interface {
	// ApplyBatch upserts a batch of merged cell deltas in one atomic
	// transaction. A batch is never partially applied.
	// Returns errors.InvalidArgument for empty batches
	// Returns errors.Internal for storage failures
	ApplyBatch(ctx context.Context, input ApplyBatchInput) (*ApplyBatchOutput, error)

	// GetCell retrieves a single cell by coordinate
	// Returns errors.NotFound if the coordinate has never been observed
	GetCell(ctx context.Context, input GetCellInput) (*GetCellOutput, error)

	// GetBox retrieves every observed cell inside a bounded box on one
	// floor. Cost is O(cells in box); unobserved coordinates are skipped.
	GetBox(ctx context.Context, input GetBoxInput) (*GetBoxOutput, error)

	// GetFloor retrieves all observed cells of one floor
	GetFloor(ctx context.Context, input GetFloorInput) (*GetFloorOutput, error)

	// CountCells returns the number of observed cells on one floor
	CountCells(ctx context.Context, input CountCellsInput) (*CountCellsOutput, error)

	// Floors returns every floor with at least one observed cell
	Floors(ctx context.Context) (*FloorsOutput, error)

	// PutLandmark creates a landmark or merges metadata into an existing
	// one; landmarks are never overwritten
	PutLandmark(ctx context.Context, input PutLandmarkInput) (*PutLandmarkOutput, error)

	// ListLandmarks returns all landmarks, optionally filtered by type.
	// The landmark set is small by construction, so callers filter further
	// in memory.
	ListLandmarks(ctx context.Context, input ListLandmarksInput) (*ListLandmarksOutput, error)

	// ReplaceZones replaces the zone list of one floor wholesale
	ReplaceZones(ctx context.Context, input ReplaceZonesInput) (*ReplaceZonesOutput, error)

	// GetZones returns the last stored zone list of one floor; an empty
	// list if zone discovery has never run there
	GetZones(ctx context.Context, input GetZonesInput) (*GetZonesOutput, error)
}

// ApplyBatchInput defines the input for applying a delta batch
type ApplyBatchInput struct {
	Deltas []*entities.CellDelta
}

// ApplyBatchOutput defines the output for applying a delta batch
type ApplyBatchOutput struct {
	CellsWritten int
}

// GetCellInput defines the input for getting a cell
type GetCellInput struct {
	X int
	Y int
	Z int
}

// GetCellOutput defines the output for getting a cell
type GetCellOutput struct {
	Cell *entities.MapCell
}

// GetBoxInput defines the input for a bounded-box scan
type GetBoxInput struct {
	Z    int
	MinX int
	MinY int
	MaxX int
	MaxY int
}

// GetBoxOutput defines the output for a bounded-box scan
type GetBoxOutput struct {
	Cells []*entities.MapCell
}

// GetFloorInput defines the input for loading a full floor
type GetFloorInput struct {
	Z int
}

// GetFloorOutput defines the output for loading a full floor
type GetFloorOutput struct {
	Cells []*entities.MapCell
}

// CountCellsInput defines the input for counting a floor's cells
type CountCellsInput struct {
	Z int
}

// CountCellsOutput defines the output for counting a floor's cells
type CountCellsOutput struct {
	Count int64
}

// FloorsOutput defines the output for listing known floors
type FloorsOutput struct {
	Floors []int
}

// PutLandmarkInput defines the input for storing a landmark
type PutLandmarkInput struct {
	Landmark *entities.Landmark
}

// PutLandmarkOutput defines the output for storing a landmark
type PutLandmarkOutput struct {
	Landmark *entities.Landmark
	Created  bool
}

// ListLandmarksInput defines the input for listing landmarks
type ListLandmarksInput struct {
	// Type filters by landmark type when non-empty
	Type string
}

// ListLandmarksOutput defines the output for listing landmarks
type ListLandmarksOutput struct {
	Landmarks []*entities.Landmark
}

// ReplaceZonesInput defines the input for replacing a floor's zones
type ReplaceZonesInput struct {
	Z     int
	Zones []entities.Zone
}

// ReplaceZonesOutput defines the output for replacing a floor's zones
type ReplaceZonesOutput struct {
	ZonesWritten int
}

// GetZonesInput defines the input for reading a floor's zones
type GetZonesInput struct {
	Z int
}

// GetZonesOutput defines the output for reading a floor's zones
type GetZonesOutput struct {
	Zones []entities.Zone
}
