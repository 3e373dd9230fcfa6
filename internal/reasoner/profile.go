package reasoner

import "time"

// DangerTrend describes how area danger has moved across the rolling
// sample window.
type DangerTrend string

// Danger trends
const (
	TrendIncreasing DangerTrend = "increasing"
	TrendDecreasing DangerTrend = "decreasing"
	TrendStable     DangerTrend = "stable"
	TrendUnknown    DangerTrend = "unknown"
)

// Difficulty buckets the sighting-weighted creature tier average.
type Difficulty string

// Difficulty levels
const (
	DifficultyEmpty  Difficulty = "empty"
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyLethal Difficulty = "lethal"
)

// Topology classifies the local walkable structure around a position.
type Topology string

// Topology classes
const (
	TopologyDeadEnd  Topology = "dead_end"
	TopologyCorridor Topology = "corridor"
	TopologyRoom     Topology = "room"
	TopologyOpen     Topology = "open"
	TopologyMaze     Topology = "maze"
	TopologyUnknown  Topology = "unknown"
)

// Anomaly flags an unusual condition the analysis pass noticed.
type Anomaly string

// Anomalies
const (
	AnomalyHealthDrop    Anomaly = "health_drop"
	AnomalyMovementStall Anomaly = "movement_stall"
	AnomalyNewFloor      Anomaly = "new_floor"
)

// Recommendation is the discrete outcome of the additive scorer.
type Recommendation string

// Recommendations
const (
	RecommendPushDeeper Recommendation = "push_deeper"
	RecommendContinue   Recommendation = "continue"
	RecommendExplore    Recommendation = "explore"
	RecommendRetreat    Recommendation = "retreat"
)

// AreaProfile is the compact analysis result handed to the policy layer.
type AreaProfile struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`

	DangerTrend DangerTrend `json:"danger_trend"`
	AreaDanger  float64     `json:"area_danger"`
	AreaValue   float64     `json:"area_value"`

	Difficulty Difficulty `json:"difficulty"`
	Topology   Topology   `json:"topology"`

	// Efficiency is area value discounted by danger: value / (1 + 3*danger).
	Efficiency float64 `json:"efficiency"`

	Anomalies []Anomaly `json:"anomalies,omitempty"`

	Recommendation Recommendation `json:"recommendation"`

	GeneratedAt time.Time `json:"generated_at"`
}

// InferenceRecord is one entry of the rolling inference log.
type InferenceRecord struct {
	At     time.Time `json:"at"`
	Kind   string    `json:"kind"`
	Detail string    `json:"detail"`
}
