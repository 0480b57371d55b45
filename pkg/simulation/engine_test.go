package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	golog "github.com/tochemey/goakt/v3/log"
)

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	ctx := context.Background()
	engine, err := NewEngine(ctx, cfg, golog.DiscardLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Stop(ctx) })
	return engine
}

// waitForTick reads snapshots until one reaches tick or the timeout expires.
func waitForTick(t *testing.T, engine *Engine, tick uint64) *Snapshot {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case snap := <-engine.Snapshots():
			if snap.Tick >= tick {
				return snap
			}
		case <-timeout:
			t.Fatalf("no snapshot for tick %d", tick)
			return nil
		}
	}
}

func TestEngine_Tick(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumBoids = 5
	cfg.Seed = 1
	engine := newTestEngine(t, cfg)
	assert.NotEmpty(t, engine.RunID())

	require.NoError(t, engine.Tick(context.Background(), time.Now()))

	snap := waitForTick(t, engine, 1)
	assert.Equal(t, uint64(1), snap.Tick)
	assert.Len(t, snap.Positions, 5)
	assert.Equal(t, cfg.BoidRadius, snap.Radius)
	assert.False(t, snap.WindActive)
}

func TestEngine_RunStopsOnCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumBoids = 8
	cfg.TickIntervalMs = 5
	engine := newTestEngine(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- engine.Run(ctx) }()

	waitForTick(t, engine, 3)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestEngine_SnapshotsAreIndependent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumBoids = 3
	engine := newTestEngine(t, cfg)

	require.NoError(t, engine.Tick(context.Background(), time.Now()))
	first := waitForTick(t, engine, 1)
	kept := append(first.Positions[:0:0], first.Positions...)

	require.NoError(t, engine.Tick(context.Background(), time.Now()))
	waitForTick(t, engine, 2)

	assert.Equal(t, kept, first.Positions, "a delivered snapshot must never change")
}
