package behavior

import (
	"math"
	"testing"
	"time"

	"github.com/SeanRemedios/Boid-System/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoBoids() []State {
	return []State{
		{Pos: geometry.Vector2D{X: 0, Y: 0}},
		{Pos: geometry.Vector2D{X: 10, Y: 0}},
	}
}

func TestRules_TwoBoidScenario(t *testing.T) {
	s := DefaultSettings()
	n := NewNeighbourhood(twoBoids(), NewGrid(s.SeparationDistance), s)

	sep, _ := n.Separation(0, nil)
	assert.Equal(t, geometry.Vector2D{X: -10, Y: 0}, sep)
	assert.Equal(t, geometry.Vector2D{X: 1, Y: 0}, n.Cohesion(0))
	assert.Equal(t, geometry.Zero, n.Alignment(0))

	delta, _ := n.Evaluate(0, false, nil)
	require.Equal(t, geometry.Vector2D{X: -9, Y: 0}, delta)

	b := &Boid{}
	b.Integrate(delta, s)
	assert.Equal(t, geometry.Vector2D{X: -9, Y: 0}, b.Vel)
	assert.InDelta(t, -0.09, b.Pos.X, 1e-12)
	assert.Equal(t, 0.0, b.Pos.Y)
}

func TestRules_LegacyCountsSeparationTwice(t *testing.T) {
	s := DefaultSettings()
	s.RuleSet = RuleSetLegacy
	states := twoBoids()
	states[1].Vel = geometry.Vector2D{X: 100, Y: 100} // alignment would react to this

	n := NewNeighbourhood(states, NewGrid(s.SeparationDistance), s)
	delta, _ := n.Evaluate(0, false, nil)

	assert.Equal(t, geometry.Vector2D{X: -19, Y: 0}, delta)
}

func TestRules_Alignment(t *testing.T) {
	s := DefaultSettings()
	states := []State{
		{Pos: geometry.Vector2D{X: 0, Y: 0}, Vel: geometry.Vector2D{X: 2, Y: 0}},
		{Pos: geometry.Vector2D{X: 300, Y: 0}, Vel: geometry.Vector2D{X: 4, Y: 4}},
		{Pos: geometry.Vector2D{X: 0, Y: 300}, Vel: geometry.Vector2D{X: 8, Y: 0}},
	}
	n := NewNeighbourhood(states, NewGrid(s.SeparationDistance), s)

	// others average (6, 2), minus own (2, 0), halved
	assert.Equal(t, geometry.Vector2D{X: 2, Y: 1}, n.Alignment(0))
}

func TestRules_SeparationIgnoresDistantBoids(t *testing.T) {
	s := DefaultSettings()
	states := []State{
		{Pos: geometry.Vector2D{X: 200, Y: 200}},
		{Pos: geometry.Vector2D{X: 240, Y: 200}}, // exactly on the threshold
		{Pos: geometry.Vector2D{X: 200, Y: 170}}, // inside
		{Pos: geometry.Vector2D{X: 500, Y: 500}}, // far away
	}
	n := NewNeighbourhood(states, NewGrid(s.SeparationDistance), s)

	sep, _ := n.Separation(0, nil)
	assert.Equal(t, geometry.Vector2D{X: 0, Y: 30}, sep)
}

func TestRules_SeparationAcrossTheOrigin(t *testing.T) {
	s := DefaultSettings()
	states := []State{
		{Pos: geometry.Vector2D{X: -20, Y: 5}},
		{Pos: geometry.Vector2D{X: 5, Y: 5}},
	}
	n := NewNeighbourhood(states, NewGrid(s.SeparationDistance), s)

	sep, _ := n.Separation(0, nil)
	assert.Equal(t, geometry.Vector2D{X: -25, Y: 0}, sep)
}

func TestRules_SingleBoidIsFinite(t *testing.T) {
	s := DefaultSettings()
	n := NewNeighbourhood([]State{{Pos: geometry.Vector2D{X: 10, Y: 20}, Vel: geometry.Vector2D{X: 1, Y: 1}}},
		NewGrid(s.SeparationDistance), s)

	sep, _ := n.Separation(0, nil)
	assert.Equal(t, geometry.Zero, n.Cohesion(0))
	assert.Equal(t, geometry.Zero, sep)
	assert.Equal(t, geometry.Zero, n.Alignment(0))

	delta, _ := n.Evaluate(0, false, nil)
	assert.Equal(t, geometry.Zero, delta)
	assert.True(t, delta.IsFinite())
}

func TestRules_Wind(t *testing.T) {
	s := DefaultSettings()
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := NewClock(start, 10*time.Second)

	tests := []struct {
		name string
		at   time.Duration
		want geometry.Vector2D
	}{
		{"At start", 0, geometry.Zero},
		{"Just before the delay", 10*time.Second - time.Nanosecond, geometry.Zero},
		{"Exactly at the delay", 10 * time.Second, s.WindDirection},
		{"Long after the delay", time.Minute, s.WindDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wind(clock.Active(start.Add(tt.at)), s)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRules_EvaluateIsDeterministic(t *testing.T) {
	s := DefaultSettings()
	states := []State{
		{Pos: geometry.Vector2D{X: 101.3, Y: 220.7}, Vel: geometry.Vector2D{X: 3.1, Y: -4.2}},
		{Pos: geometry.Vector2D{X: 120.9, Y: 230.1}, Vel: geometry.Vector2D{X: -1.7, Y: 0.4}},
		{Pos: geometry.Vector2D{X: 95.5, Y: 199.2}, Vel: geometry.Vector2D{X: 0.3, Y: 8.8}},
		{Pos: geometry.Vector2D{X: 640.2, Y: 80.4}, Vel: geometry.Vector2D{X: -12, Y: 5}},
	}

	first := make([]geometry.Vector2D, len(states))
	n := NewNeighbourhood(states, NewGrid(s.SeparationDistance), s)
	for i := range states {
		first[i], _ = n.Evaluate(i, true, nil)
	}

	for run := 0; run < 5; run++ {
		n := NewNeighbourhood(states, NewGrid(s.SeparationDistance), s)
		for i := range states {
			got, _ := n.Evaluate(i, true, nil)
			assert.Equal(t, math.Float64bits(first[i].X), math.Float64bits(got.X))
			assert.Equal(t, math.Float64bits(first[i].Y), math.Float64bits(got.Y))
		}
	}
}

func TestGrid_Near(t *testing.T) {
	g := NewGrid(100)
	states := []State{
		{Pos: geometry.Vector2D{X: 150, Y: 150}}, // cell 1,1
		{Pos: geometry.Vector2D{X: 50, Y: 50}},   // cell 0,0
		{Pos: geometry.Vector2D{X: 350, Y: 350}}, // cell 3,3
		{Pos: geometry.Vector2D{X: -50, Y: 50}},  // cell -1,0
	}
	g.Rebuild(states)

	near := g.Near(geometry.Vector2D{X: 150, Y: 150}, nil)
	assert.ElementsMatch(t, []int{0, 1}, near)

	near = g.Near(geometry.Vector2D{X: 10, Y: 10}, near[:0])
	assert.ElementsMatch(t, []int{0, 1, 3}, near)

	// rebuilding forgets old positions
	states[2].Pos = geometry.Vector2D{X: 160, Y: 160}
	g.Rebuild(states)
	near = g.Near(geometry.Vector2D{X: 150, Y: 150}, nil)
	assert.ElementsMatch(t, []int{0, 1, 2}, near)
}

func TestGrid_MinimumCellSize(t *testing.T) {
	assert.Equal(t, minCellSize, NewGrid(0).CellSize())
	assert.Equal(t, 40.0, NewGrid(40).CellSize())
}
