package simulation

import (
	"time"

	"github.com/SeanRemedios/Boid-System/pkg/behavior"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// FlockActor owns the flock. Every tick message advances it exactly once, so the
// flock is never touched by more than one goroutine outside its own evaluate phase.
type FlockActor struct {
	flock      *behavior.Flock
	snapshotCh chan<- *Snapshot
	radius     float64
	// --- Benchmark Stats ---
	tickCount   int
	skipped     int
	stepTime    time.Duration
	lastLogTime time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor wraps a flock; snapshots are pushed to snapshotCh after each tick.
func NewFlockActor(flock *behavior.Flock, snapshotCh chan<- *Snapshot, radius float64) *FlockActor {
	return &FlockActor{
		flock:       flock,
		snapshotCh:  snapshotCh,
		radius:      radius,
		lastLogTime: time.Now(),
	}
}

func (f *FlockActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock of %d boids is ready", f.flock.Len())
	return nil
}

func (f *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Info("Flock started")
		// publish the spawn positions so renderers have a first frame
		f.pushSnapshot(f.flock.Clock().Start())

	// The frame's wall time drives the wind clock
	case *timestamppb.Timestamp:
		now := msg.AsTime()
		start := time.Now()
		f.flock.Step(now)
		f.stepTime += time.Since(start)
		f.tickCount++

		f.logBenchmarks(ctx)
		f.pushSnapshot(now)

	default:
		ctx.Unhandled()
	}
}

func (f *FlockActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock stopped after %d ticks", f.flock.Ticks())
	return nil
}

func (f *FlockActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(f.lastLogTime) < time.Second {
		return
	}
	avg := time.Duration(0)
	if f.tickCount > 0 {
		avg = f.stepTime / time.Duration(f.tickCount)
	}
	ctx.Logger().Infof("TICK RATE: %d/sec (avg step %s, skipped frames %d) | Boids: %d, Perching: %d",
		f.tickCount, avg, f.skipped, f.flock.Len(), f.flock.Perching())
	f.tickCount = 0
	f.skipped = 0
	f.stepTime = 0
	f.lastLogTime = time.Now()
}

func (f *FlockActor) pushSnapshot(now time.Time) {
	select {
	case f.snapshotCh <- f.buildSnapshot(now):
	default:
		// renderer busy, skip frame
		f.skipped++
	}
}

func (f *FlockActor) buildSnapshot(now time.Time) *Snapshot {
	return &Snapshot{
		Tick:       f.flock.Ticks(),
		Positions:  f.flock.Positions(),
		Radius:     f.radius,
		Perching:   f.flock.Perching(),
		WindActive: f.flock.WindActive(now),
	}
}
