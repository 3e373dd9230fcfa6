// Package reasoner runs a rate-limited analysis pass over the world model
// and live telemetry, producing a compact area profile and one discrete
// recommendation for the policy layer.
package reasoner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/errors"
	"github.com/wayfarer-ai/wayfarer/internal/pkg/clock"
)

//go:generate mockgen -destination=mock/mock_world.go -package=mockreasoner github.com/wayfarer-ai/wayfarer/internal/reasoner WorldReader

const (
	// minInterval is the floor on the analysis rate limit. Analysis loads
	// a floor snapshot each run; running it on every telemetry sample
	// would hammer the store for no fresher answer.
	minInterval     = 2 * time.Second
	defaultInterval = 2 * time.Second

	defaultAreaRadius = 7

	dangerWindowSize = 30
	trendLatestSpan  = 5
	trendThreshold   = 0.05

	vitalsWindowSize = 10
	healthDropSpan   = 5
	healthDropRatio  = 0.4
	stallSpan        = 10
	stallMaxDistinct = 2

	defaultLogSize = 100
)

// WorldReader is the slice of the world model the reasoner consumes.
type WorldReader interface {
	AreaDanger(ctx context.Context, x, y, z, radius int) (float64, error)
	AreaValue(ctx context.Context, x, y, z, radius int) (float64, error)
	CreaturesInArea(ctx context.Context, x, y, z, radius int) (map[string]int, error)
	FloorSnapshot(ctx context.Context, z int) (*entities.CellGrid, error)
}

// Config holds the reasoner configuration.
type Config struct {
	World WorldReader
	Clock clock.Clock

	// Interval gates how often a full analysis runs; calls inside the
	// window return the previous profile. Minimum 2s.
	Interval time.Duration
	// AreaRadius bounds the box scanned around the current position.
	AreaRadius int
	// LogSize bounds the rolling inference log.
	LogSize int
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.World == nil {
		return errors.InvalidArgument("world reader is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if c.Interval != 0 && c.Interval < minInterval {
		return errors.InvalidArgumentf("interval must be at least %s", minInterval)
	}
	if c.AreaRadius < 0 {
		return errors.InvalidArgument("AreaRadius must not be negative")
	}
	if c.LogSize < 0 {
		return errors.InvalidArgument("LogSize must not be negative")
	}
	return nil
}

// sample is one telemetry reading recorded per Analyze call.
type sample struct {
	pos      entities.Point
	z        int
	hpRatio  float64
	recorded time.Time
}

// Reasoner owns the rolling telemetry windows, the memoized creature
// tiers, and the inference log. It is not safe for concurrent use; it
// lives on the explorer's single control loop.
type Reasoner struct {
	world      WorldReader
	clock      clock.Clock
	interval   time.Duration
	areaRadius int
	logSize    int

	dangerWindow []float64
	vitals       []sample
	seenFloors   map[int]bool
	tiers        map[string]float64

	inferences []InferenceRecord

	lastRun     time.Time
	lastProfile *AreaProfile
}

// AnalyzeInput carries one telemetry reading into Analyze.
type AnalyzeInput struct {
	X, Y, Z   int
	Health    int
	MaxHealth int
}

// New creates a new reasoner
func New(cfg *Config) (*Reasoner, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	interval := cfg.Interval
	if interval == 0 {
		interval = defaultInterval
	}
	areaRadius := cfg.AreaRadius
	if areaRadius == 0 {
		areaRadius = defaultAreaRadius
	}
	logSize := cfg.LogSize
	if logSize == 0 {
		logSize = defaultLogSize
	}

	return &Reasoner{
		world:      cfg.World,
		clock:      cfg.Clock,
		interval:   interval,
		areaRadius: areaRadius,
		logSize:    logSize,
		seenFloors: make(map[int]bool),
		tiers:      make(map[string]float64),
	}, nil
}

// Analyze records the telemetry sample and, at most once per interval,
// runs a full analysis pass. Calls inside the rate window return the
// previous profile unchanged; the first call always runs.
func (r *Reasoner) Analyze(ctx context.Context, in AnalyzeInput) (*AreaProfile, error) {
	now := r.clock.Now()
	r.recordVitals(in, now)

	if r.lastProfile != nil && now.Sub(r.lastRun) < r.interval {
		return r.lastProfile, nil
	}

	profile, err := r.analyze(ctx, in, now)
	if err != nil {
		return nil, err
	}

	r.lastRun = now
	r.lastProfile = profile
	return profile, nil
}

// LastProfile returns the most recent analysis result, nil before the
// first run.
func (r *Reasoner) LastProfile() *AreaProfile {
	return r.lastProfile
}

// Inferences returns a copy of the rolling inference log, oldest first.
func (r *Reasoner) Inferences() []InferenceRecord {
	out := make([]InferenceRecord, len(r.inferences))
	copy(out, r.inferences)
	return out
}

func (r *Reasoner) analyze(ctx context.Context, in AnalyzeInput, now time.Time) (*AreaProfile, error) {
	danger, err := r.world.AreaDanger(ctx, in.X, in.Y, in.Z, r.areaRadius)
	if err != nil {
		return nil, err
	}
	value, err := r.world.AreaValue(ctx, in.X, in.Y, in.Z, r.areaRadius)
	if err != nil {
		return nil, err
	}
	creatures, err := r.world.CreaturesInArea(ctx, in.X, in.Y, in.Z, r.areaRadius)
	if err != nil {
		return nil, err
	}
	grid, err := r.world.FloorSnapshot(ctx, in.Z)
	if err != nil {
		return nil, err
	}

	r.recordDanger(danger)

	profile := &AreaProfile{
		X: in.X, Y: in.Y, Z: in.Z,
		AreaDanger:  danger,
		AreaValue:   value,
		Efficiency:  value / (1 + 3*danger),
		GeneratedAt: now,
	}

	profile.DangerTrend = r.dangerTrend()
	r.logInference("trend", fmt.Sprintf("danger trend %s over %d samples", profile.DangerTrend, len(r.dangerWindow)))

	profile.Difficulty = r.difficultyFor(creatures, in.X, in.Y, in.Z, grid)
	r.logInference("difficulty", fmt.Sprintf("%s from %d creature kinds", profile.Difficulty, len(creatures)))

	profile.Topology = classifyTopology(grid, entities.Point{X: in.X, Y: in.Y})
	r.logInference("topology", fmt.Sprintf("%s at (%d,%d,%d)", profile.Topology, in.X, in.Y, in.Z))

	profile.Anomalies = r.detectAnomalies(in.Z)
	for _, a := range profile.Anomalies {
		r.logInference("anomaly", string(a))
	}
	r.seenFloors[in.Z] = true

	profile.Recommendation = recommend(profile)
	r.logInference("recommendation", string(profile.Recommendation))

	slog.DebugContext(ctx, "area profile generated",
		"x", in.X, "y", in.Y, "z", in.Z,
		"trend", profile.DangerTrend,
		"difficulty", profile.Difficulty,
		"topology", profile.Topology,
		"recommendation", profile.Recommendation)

	return profile, nil
}

func (r *Reasoner) recordVitals(in AnalyzeInput, now time.Time) {
	hpRatio := 1.0
	if in.MaxHealth > 0 {
		hpRatio = float64(in.Health) / float64(in.MaxHealth)
	}
	r.vitals = append(r.vitals, sample{
		pos:      entities.Point{X: in.X, Y: in.Y},
		z:        in.Z,
		hpRatio:  hpRatio,
		recorded: now,
	})
	if len(r.vitals) > vitalsWindowSize {
		r.vitals = r.vitals[len(r.vitals)-vitalsWindowSize:]
	}
}

func (r *Reasoner) recordDanger(danger float64) {
	r.dangerWindow = append(r.dangerWindow, danger)
	if len(r.dangerWindow) > dangerWindowSize {
		r.dangerWindow = r.dangerWindow[len(r.dangerWindow)-dangerWindowSize:]
	}
}

// dangerTrend compares the mean of the latest samples against the mean of
// the rest of the window.
func (r *Reasoner) dangerTrend() DangerTrend {
	if len(r.dangerWindow) <= trendLatestSpan {
		return TrendUnknown
	}

	split := len(r.dangerWindow) - trendLatestSpan
	older := mean(r.dangerWindow[:split])
	latest := mean(r.dangerWindow[split:])

	switch {
	case latest-older > trendThreshold:
		return TrendIncreasing
	case older-latest > trendThreshold:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func (r *Reasoner) detectAnomalies(z int) []Anomaly {
	var anomalies []Anomaly

	if n := len(r.vitals); n >= 2 {
		span := r.vitals
		if n > healthDropSpan {
			span = span[n-healthDropSpan:]
		}
		peak := span[0].hpRatio
		for _, s := range span {
			if s.hpRatio > peak {
				peak = s.hpRatio
			}
		}
		latest := span[len(span)-1].hpRatio
		if peak > 0 && (peak-latest)/peak > healthDropRatio {
			anomalies = append(anomalies, AnomalyHealthDrop)
		}
	}

	if len(r.vitals) >= stallSpan {
		distinct := make(map[entities.Point]bool)
		for _, s := range r.vitals[len(r.vitals)-stallSpan:] {
			distinct[s.pos] = true
		}
		if len(distinct) <= stallMaxDistinct {
			anomalies = append(anomalies, AnomalyMovementStall)
		}
	}

	if !r.seenFloors[z] {
		anomalies = append(anomalies, AnomalyNewFloor)
	}

	return anomalies
}

func (r *Reasoner) logInference(kind, detail string) {
	r.inferences = append(r.inferences, InferenceRecord{
		At:     r.clock.Now(),
		Kind:   kind,
		Detail: detail,
	})
	if len(r.inferences) > r.logSize {
		r.inferences = r.inferences[len(r.inferences)-r.logSize:]
	}
}

func mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range samples {
		total += s
	}
	return total / float64(len(samples))
}
