package entities

import "time"

// WaypointAction tags what the agent should do at a waypoint when a
// synthesized route is replayed.
type WaypointAction string

// Waypoint actions
const (
	ActionWalk     WaypointAction = "walk"
	ActionHuntArea WaypointAction = "hunt_area"
)

// Waypoint is one recorded stop of an exploration episode.
type Waypoint struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`

	Action WaypointAction `json:"action"`
	Danger float64        `json:"danger"`

	// Creatures seen near the waypoint when it was recorded.
	Creatures map[string]int `json:"creatures,omitempty"`

	RecordedAt time.Time `json:"recorded_at"`
}

// CreatureTarget ranks a creature by how often it was encountered along a
// route.
type CreatureTarget struct {
	Name       string `json:"name"`
	Encounters int    `json:"encounters"`
}

// Route is a reusable, ordered sequence of waypoints synthesized from a
// completed exploration episode, suitable for persistence by an external
// route-storage component.
type Route struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Z     int    `json:"z"`

	Waypoints []Waypoint       `json:"waypoints"`
	Targets   []CreatureTarget `json:"targets,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
