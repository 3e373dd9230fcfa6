package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
	"github.com/wayfarer-ai/wayfarer/internal/explorer"
	"github.com/wayfarer-ai/wayfarer/internal/frontier"
	"github.com/wayfarer-ai/wayfarer/internal/pkg/clock"
	"github.com/wayfarer-ai/wayfarer/internal/pkg/idgen"
	"github.com/wayfarer-ai/wayfarer/internal/planner"
	"github.com/wayfarer-ai/wayfarer/internal/reasoner"
	redisclient "github.com/wayfarer-ai/wayfarer/internal/redis"
	"github.com/wayfarer-ai/wayfarer/internal/repositories/cells"
	"github.com/wayfarer-ai/wayfarer/internal/worldmodel"
)

var (
	redisAddress string
	strategyFlag string
	startX       int
	startY       int
	startZ       int
	tickInterval time.Duration
	maxTicks     int
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Run a simulated exploration session",
	Long: `Start an exploration session against the configured cell store and
drive it with a simulated actuator until the strategy runs out of
targets, the tick limit is reached, or the process is signalled. The
session findings, including any synthesized route, are printed on exit.`,
	RunE: runExplore,
}

func init() {
	exploreCmd.Flags().StringVar(&redisAddress, "redis-address", "localhost:6379", "Redis address for the cell store")
	exploreCmd.Flags().StringVar(&strategyFlag, "strategy", string(explorer.StrategyFrontier), "exploration strategy (FRONTIER, DEEP, SWEEP, VALUE, SAFE, RETURN)")
	exploreCmd.Flags().IntVar(&startX, "x", 0, "starting x coordinate")
	exploreCmd.Flags().IntVar(&startY, "y", 0, "starting y coordinate")
	exploreCmd.Flags().IntVar(&startZ, "floor", 0, "starting floor")
	exploreCmd.Flags().DurationVar(&tickInterval, "tick-interval", 250*time.Millisecond, "delay between ticks")
	exploreCmd.Flags().IntVar(&maxTicks, "max-ticks", 500, "stop after this many ticks")
}

func runExplore(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("received shutdown signal, stopping session")
		cancel()
	}()

	client, err := redisclient.NewClient(redisAddress, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slog.Error("failed to close redis client", "error", err)
		}
	}()

	clk := clock.New()

	repo, err := cells.NewRedis(&cells.RedisConfig{Client: client, Clock: clk})
	if err != nil {
		return fmt.Errorf("failed to create cell repository: %w", err)
	}

	detector, err := frontier.New(&frontier.Config{Clock: clk})
	if err != nil {
		return fmt.Errorf("failed to create frontier detector: %w", err)
	}

	model, err := worldmodel.New(&worldmodel.Config{
		Store:     repo,
		Clock:     clk,
		Frontiers: detector,
	})
	if err != nil {
		return fmt.Errorf("failed to create world model: %w", err)
	}

	p, err := planner.New(nil)
	if err != nil {
		return fmt.Errorf("failed to create planner: %w", err)
	}

	r, err := reasoner.New(&reasoner.Config{World: model, Clock: clk})
	if err != nil {
		return fmt.Errorf("failed to create reasoner: %w", err)
	}

	e, err := explorer.New(&explorer.Config{
		World:     model,
		Frontiers: detector,
		Planner:   p,
		Clock:     clk,
		IDGen:     idgen.NewUUID("route"),
	})
	if err != nil {
		return fmt.Errorf("failed to create explorer: %w", err)
	}

	strategy := explorer.Strategy(strategyFlag)
	if err := e.Start(ctx, startX, startY, startZ, strategy); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	slog.Info("exploration session running",
		"strategy", strategy,
		"redis", redisAddress,
		"x", startX, "y", startY, "floor", startZ)

	agent := newSimulatedAgent(startX, startY, startZ)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

loop:
	for tick := 0; tick < maxTicks; tick++ {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
		}

		command, err := e.Tick(ctx, agent.tickInput())
		if err != nil {
			// Only unrecoverable store failures reach here.
			return fmt.Errorf("tick failed: %w", err)
		}
		if command.Kind == explorer.CommandNoTargets {
			slog.Info("strategy exhausted, ending session", "tick", tick)
			break
		}
		agent.execute(command)

		profile, err := r.Analyze(ctx, reasoner.AnalyzeInput(agent.tickInput()))
		if err != nil {
			slog.Error("analysis failed", "error", err)
			continue
		}
		if profile.Recommendation == reasoner.RecommendRetreat && strategy != explorer.StrategyReturn {
			slog.Info("reasoner recommends retreat", "tick", tick)
		}
	}

	// Stop outside the cancelled context so pending observations still
	// reach the store.
	findings, err := e.Stop(context.Background())
	if err != nil {
		return fmt.Errorf("failed to stop session: %w", err)
	}

	out, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode findings: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// simulatedAgent stands in for the actuation layer: it applies movement
// commands to an in-memory position so the session makes progress.
type simulatedAgent struct {
	x, y, z int
}

func newSimulatedAgent(x, y, z int) *simulatedAgent {
	return &simulatedAgent{x: x, y: y, z: z}
}

func (a *simulatedAgent) tickInput() explorer.TickInput {
	return explorer.TickInput{X: a.x, Y: a.y, Z: a.z, Health: 100, MaxHealth: 100}
}

func (a *simulatedAgent) execute(cmd *explorer.Command) {
	switch cmd.Kind {
	case explorer.CommandMovePath:
		if len(cmd.Path) > 1 {
			a.x, a.y = cmd.Path[1].X, cmd.Path[1].Y
		}
	case explorer.CommandMoveBearing:
		step := bearingStep(cmd.Direction)
		a.x += step.X
		a.y += step.Y
	case explorer.CommandIdle, explorer.CommandNoTargets:
	}
}

func bearingStep(d explorer.Direction) entities.Point {
	switch d {
	case explorer.North:
		return entities.Point{X: 0, Y: -1}
	case explorer.NorthEast:
		return entities.Point{X: 1, Y: -1}
	case explorer.East:
		return entities.Point{X: 1, Y: 0}
	case explorer.SouthEast:
		return entities.Point{X: 1, Y: 1}
	case explorer.South:
		return entities.Point{X: 0, Y: 1}
	case explorer.SouthWest:
		return entities.Point{X: -1, Y: 1}
	case explorer.West:
		return entities.Point{X: -1, Y: 0}
	case explorer.NorthWest:
		return entities.Point{X: -1, Y: -1}
	}
	return entities.Point{}
}
