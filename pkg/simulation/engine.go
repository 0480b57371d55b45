package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const snapshotBuffer = 10

// Engine owns the actor system driving a single flock.
type Engine struct {
	cfg       *Config
	logger    golog.Logger
	system    actor.ActorSystem
	flockPID  *actor.PID
	snapshots chan *Snapshot
	runID     string
}

// NewEngine starts an actor system, populates the flock and spawns its actor.
// The flock clock starts now.
func NewEngine(ctx context.Context, cfg *Config, logger golog.Logger) (*Engine, error) {
	runID := uuid.NewString()

	system, err := actor.NewActorSystem("BoidSystem",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	// Buffer to avoid blocking the flock when the renderer lags
	snapshots := make(chan *Snapshot, snapshotBuffer)

	flock := cfg.NewFlock(time.Now())
	pid, err := system.Spawn(ctx, "flock", NewFlockActor(flock, snapshots, cfg.BoidRadius))
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn flock: %w", err)
	}

	logger.Infof("Run %s: %d boids, rule set %s, tick %s, wind after %s, %d workers",
		runID, cfg.NumBoids, cfg.RuleSet, cfg.TickInterval(), cfg.WindDelay(), cfg.Workers)

	return &Engine{
		cfg:       cfg,
		logger:    logger,
		system:    system,
		flockPID:  pid,
		snapshots: snapshots,
		runID:     runID,
	}, nil
}

// RunID identifies this run in logs.
func (e *Engine) RunID() string { return e.runID }

// Snapshots delivers the flock state after each tick. Frames are dropped rather
// than queued when nobody reads.
func (e *Engine) Snapshots() <-chan *Snapshot { return e.snapshots }

// Tick asks the flock to advance once, using now as the tick's wall time.
func (e *Engine) Tick(ctx context.Context, now time.Time) error {
	if err := actor.Tell(ctx, e.flockPID, timestamppb.New(now)); err != nil {
		return fmt.Errorf("failed to send tick: %w", err)
	}
	return nil
}

// Run ticks at the configured interval until ctx is cancelled. Cancellation is
// only observed between ticks.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.cfg.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Infof("Run %s: stop requested", e.runID)
			return nil
		case now := <-ticker.C:
			if err := e.Tick(ctx, now); err != nil {
				return err
			}
		}
	}
}

// Stop shuts down the actor system.
func (e *Engine) Stop(ctx context.Context) error {
	if err := e.system.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop actor system: %w", err)
	}
	return nil
}
