package entities

import (
	"fmt"
	"time"
)

// Landmark type tags. These mirror the cell types for fixtures the
// explorer navigates by.
const (
	LandmarkStairUp   = "stair_up"
	LandmarkStairDown = "stair_down"
	LandmarkRopeHole  = "rope_hole"
	LandmarkTeleport  = "teleport"
	LandmarkDepot     = "depot"
	LandmarkTemple    = "temple"
	LandmarkNPC       = "npc"
)

// Landmark is a semantically significant named coordinate. A landmark is
// created once per unique (type, coordinate) and only gains merged
// metadata on rediscovery; it is never overwritten.
type Landmark struct {
	Key  string `json:"key"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Z    int    `json:"z"`
	Type string `json:"type"`

	Metadata map[string]string `json:"metadata,omitempty"`

	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// LandmarkKey builds the unique storage key for a landmark.
func LandmarkKey(landmarkType string, x, y, z int) string {
	return fmt.Sprintf("%s:%d:%d:%d", landmarkType, x, y, z)
}

// NewLandmark returns a landmark at the given coordinate.
func NewLandmark(landmarkType string, x, y, z int, metadata map[string]string, seenAt time.Time) *Landmark {
	return &Landmark{
		Key:       LandmarkKey(landmarkType, x, y, z),
		X:         x,
		Y:         y,
		Z:         z,
		Type:      landmarkType,
		Metadata:  metadata,
		FirstSeen: seenAt,
		LastSeen:  seenAt,
	}
}

// Merge folds a rediscovery into the landmark: metadata keys are added,
// first write wins on conflicts, and LastSeen advances.
func (l *Landmark) Merge(other *Landmark) {
	if other.LastSeen.After(l.LastSeen) {
		l.LastSeen = other.LastSeen
	}
	if len(other.Metadata) == 0 {
		return
	}
	if l.Metadata == nil {
		l.Metadata = make(map[string]string, len(other.Metadata))
	}
	for k, v := range other.Metadata {
		if _, exists := l.Metadata[k]; !exists {
			l.Metadata[k] = v
		}
	}
}
