package behavior

import (
	"github.com/SeanRemedios/Boid-System/pkg/geometry"
)

// Neighbourhood is the frozen view of the flock used to evaluate the rules for
// one tick. It is built once from a state snapshot and then only read, so any
// number of goroutines may evaluate boids against it concurrently.
type Neighbourhood struct {
	states []State
	posSum geometry.Vector2D
	velSum geometry.Vector2D
	grid   *Grid
	s      Settings
}

// NewNeighbourhood indexes states for rule evaluation. grid may be reused
// between ticks, it is rebuilt here.
func NewNeighbourhood(states []State, grid *Grid, s Settings) *Neighbourhood {
	n := &Neighbourhood{states: states, grid: grid, s: s}
	for _, st := range states {
		n.posSum.AddAssign(st.Pos)
		n.velSum.AddAssign(st.Vel)
	}
	grid.Rebuild(states)
	return n
}

// others is the number of boids seen by any single boid.
func (n *Neighbourhood) others() float64 {
	return float64(len(n.states) - 1)
}

// Cohesion steers boid i toward the centre of mass of the others.
// A lone boid has no centre to steer to and gets the zero vector.
func (n *Neighbourhood) Cohesion(i int) geometry.Vector2D {
	if len(n.states) < 2 {
		return geometry.Zero
	}
	self := n.states[i].Pos
	centre := n.posSum.Sub(self).Div(n.others())
	return centre.Sub(self).Div(n.s.CohesionDivisor)
}

// Separation pushes boid i away from every other boid closer than
// SeparationDistance, proportionally to how close it is.
func (n *Neighbourhood) Separation(i int, buf []int) (geometry.Vector2D, []int) {
	var v geometry.Vector2D
	self := n.states[i].Pos
	limitSq := n.s.SeparationDistance * n.s.SeparationDistance

	buf = n.grid.Near(self, buf[:0])
	for _, j := range buf {
		if j == i {
			continue
		}
		other := n.states[j].Pos
		if self.DistanceSquaredTo(other) < limitSq {
			v.SubAssign(other.Sub(self))
		}
	}
	return v, buf
}

// Alignment steers the velocity of boid i toward the average velocity of the others.
func (n *Neighbourhood) Alignment(i int) geometry.Vector2D {
	if len(n.states) < 2 {
		return geometry.Zero
	}
	self := n.states[i].Vel
	avg := n.velSum.Sub(self).Div(n.others())
	return avg.Sub(self).Div(n.s.AlignmentDivisor)
}

// Wind returns the configured wind once it blows and the zero vector before.
func Wind(active bool, s Settings) geometry.Vector2D {
	if !active {
		return geometry.Zero
	}
	return s.WindDirection
}

// Evaluate sums the rule contributions for boid i. buf is scratch space for
// neighbour lookups and is returned for reuse.
func (n *Neighbourhood) Evaluate(i int, windActive bool, buf []int) (geometry.Vector2D, []int) {
	sep, buf := n.Separation(i, buf)

	delta := n.Cohesion(i)
	delta.AddAssign(sep)
	if n.s.RuleSet == RuleSetLegacy {
		delta.AddAssign(sep)
	} else {
		delta.AddAssign(n.Alignment(i))
	}
	delta.AddAssign(Wind(windActive, n.s))
	return delta, buf
}
