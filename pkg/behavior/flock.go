package behavior

import (
	"time"

	"github.com/SeanRemedios/Boid-System/pkg/geometry"
	"golang.org/x/sync/errgroup"
)

// Flock owns a fixed population of boids and advances them one tick at a time.
//
// A tick has two phases. Every rule delta is first evaluated against a snapshot
// of the pre-tick state, then every boid commits its own delta. A boid therefore
// never sees a sibling that has already moved during the same tick, whether the
// evaluation runs on one goroutine or several.
type Flock struct {
	boids    []*Boid
	settings Settings
	clock    Clock
	workers  int

	grid   *Grid
	states []State
	deltas []geometry.Vector2D
	buf    []int
	ticks  uint64
}

// NewFlock wraps boids. The slice order is the update order and never changes.
func NewFlock(boids []*Boid, s Settings, clock Clock) *Flock {
	return &Flock{
		boids:    boids,
		settings: s,
		clock:    clock,
		workers:  1,
		grid:     NewGrid(s.SeparationDistance),
		states:   make([]State, len(boids)),
		deltas:   make([]geometry.Vector2D, len(boids)),
	}
}

// SetWorkers sets how many goroutines evaluate rules. Values below 2 evaluate
// sequentially.
func (f *Flock) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	f.workers = n
}

// Len returns the population size.
func (f *Flock) Len() int { return len(f.boids) }

// Boids returns the boids in update order. Callers must not mutate them while a
// tick is running.
func (f *Flock) Boids() []*Boid { return f.boids }

// Settings returns the settings the flock was built with.
func (f *Flock) Settings() Settings { return f.settings }

// Clock returns the simulation clock.
func (f *Flock) Clock() Clock { return f.clock }

// Ticks returns the number of completed ticks.
func (f *Flock) Ticks() uint64 { return f.ticks }

// Step advances every boid by one tick at wall time now.
func (f *Flock) Step(now time.Time) {
	windActive := f.clock.Active(now)

	// phase 1: evaluate
	for i, b := range f.boids {
		f.states[i] = b.State()
	}
	n := NewNeighbourhood(f.states, f.grid, f.settings)
	if f.workers > 1 && len(f.boids) > 1 {
		f.evaluateParallel(n, windActive)
	} else {
		for i := range f.boids {
			f.deltas[i], f.buf = n.Evaluate(i, windActive, f.buf)
		}
	}

	// phase 2: commit
	for i, b := range f.boids {
		b.Step(f.deltas[i], f.settings)
	}
	f.ticks++
}

func (f *Flock) evaluateParallel(n *Neighbourhood, windActive bool) {
	var g errgroup.Group
	g.SetLimit(f.workers)

	chunk := (len(f.boids) + f.workers - 1) / f.workers
	for lo := 0; lo < len(f.boids); lo += chunk {
		hi := min(lo+chunk, len(f.boids))
		g.Go(func() error {
			var buf []int
			for i := lo; i < hi; i++ {
				f.deltas[i], buf = n.Evaluate(i, windActive, buf)
			}
			return nil
		})
	}
	// evaluation cannot fail, Wait only joins the workers
	_ = g.Wait()
}

// States returns a copy of the current state of every boid.
func (f *Flock) States() []State {
	out := make([]State, len(f.boids))
	for i, b := range f.boids {
		out[i] = b.State()
	}
	return out
}

// Positions returns a copy of the current boid positions in update order.
func (f *Flock) Positions() []geometry.Vector2D {
	out := make([]geometry.Vector2D, len(f.boids))
	for i, b := range f.boids {
		out[i] = b.Pos
	}
	return out
}

// Perching returns how many boids are currently perching.
func (f *Flock) Perching() int {
	count := 0
	for _, b := range f.boids {
		if b.Perching {
			count++
		}
	}
	return count
}

// WindActive reports whether the wind blows at now.
func (f *Flock) WindActive(now time.Time) bool {
	return f.clock.Active(now)
}
