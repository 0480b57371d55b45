package behavior

import (
	"github.com/SeanRemedios/Boid-System/pkg/geometry"
)

// Boid represents a single entity in the flock.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// The name "boid" corresponds to a shortened version of "bird-oid object".
// https://en.wikipedia.org/wiki/Boids
// We export fields so the renderer and tests can read them.
type Boid struct {
	ID  int
	Pos geometry.Vector2D
	Vel geometry.Vector2D

	// Perching is set when the boid touches the ground. While it is set the
	// boid does not move and its velocity is left untouched.
	Perching bool
	// PerchTicks is drawn once at creation and counts down while perching.
	PerchTicks int
}

// State is the read-only part of a boid that siblings may observe during a tick.
type State struct {
	Pos geometry.Vector2D
	Vel geometry.Vector2D
}

// RuleSet selects how the rule contributions are combined.
type RuleSet string

const (
	// RuleSetReynolds combines cohesion, separation, alignment and wind.
	RuleSetReynolds RuleSet = "reynolds"
	// RuleSetLegacy counts separation twice and ignores alignment, which is how
	// the first version of this simulation behaved.
	RuleSetLegacy RuleSet = "legacy"
)

// Settings controls the physics constants for the simulation.
type Settings struct {
	ScreenWidth  float64
	ScreenHeight float64

	BoidRadius  float64 // draw radius, also the ground contact distance
	WallMargin  float64 // distance from an edge where bounce back starts
	ForceBack   float64 // velocity change applied near an edge
	PerchMargin float64 // distance above the bottom edge where a perching boid rests

	SpeedLimit      float64
	TimeStepDivisor float64 // position += velocity / TimeStepDivisor

	CohesionDivisor    float64
	SeparationDistance float64
	AlignmentDivisor   float64

	WindDirection geometry.Vector2D
	RuleSet       RuleSet

	SpawnOffset   float64
	PerchMinTicks int
	PerchMaxTicks int
}

// DefaultSettings returns the constants the simulation was tuned with.
func DefaultSettings() Settings {
	return Settings{
		ScreenWidth:        800,
		ScreenHeight:       600,
		BoidRadius:         3,
		WallMargin:         100,
		ForceBack:          10,
		PerchMargin:        7,
		SpeedLimit:         500,
		TimeStepDivisor:    100,
		CohesionDivisor:    10,
		SeparationDistance: 40,
		AlignmentDivisor:   2,
		WindDirection:      geometry.Vector2D{X: 1, Y: 5},
		RuleSet:            RuleSetReynolds,
		SpawnOffset:        20,
		PerchMinTicks:      20,
		PerchMaxTicks:      100,
	}
}

// State returns a copy of the observable state.
func (b *Boid) State() State {
	return State{Pos: b.Pos, Vel: b.Vel}
}

// Step commits one tick for this boid given the rule delta computed for it.
// A perching boid only counts down. Otherwise containment runs first and, if it
// grounds the boid, integration is skipped for this tick.
func (b *Boid) Step(delta geometry.Vector2D, s Settings) {
	if b.Perching {
		b.countdown()
		return
	}
	if b.BoundPosition(s) {
		return
	}
	b.Integrate(delta, s)
}

// countdown consumes one perch tick. Reaching zero releases the boid, it moves
// again on the next tick.
func (b *Boid) countdown() {
	if b.PerchTicks > 0 {
		b.PerchTicks--
	}
	if b.PerchTicks == 0 {
		b.Perching = false
	}
}

// BoundPosition keeps the boid on screen. Touching the ground grounds the boid
// and returns true. Near the walls a fixed acceleration pushes it back inside,
// only one vertical correction applies per tick.
func (b *Boid) BoundPosition(s Settings) bool {
	if b.Pos.Y > s.ScreenHeight-s.BoidRadius {
		b.Pos.Y = s.ScreenHeight - s.PerchMargin
		b.Perching = true
		return true
	}

	if b.Pos.X < s.WallMargin {
		b.Vel.X += s.ForceBack
	} else if b.Pos.X > s.ScreenWidth-s.WallMargin {
		b.Vel.X -= s.ForceBack
	}
	if b.Pos.Y < s.WallMargin {
		b.Vel.Y += s.ForceBack
	} else if b.Pos.Y > s.ScreenHeight-s.WallMargin {
		b.Vel.Y -= s.ForceBack
	}
	return false
}

// Integrate applies the rule delta to the velocity, caps the speed and moves.
func (b *Boid) Integrate(delta geometry.Vector2D, s Settings) {
	b.Vel.AddAssign(delta)
	b.LimitSpeed(s)
	b.Pos.AddAssign(b.Vel.Div(s.TimeStepDivisor))
}

// LimitSpeed rescales the velocity to exactly SpeedLimit when it is faster.
// It must divide by speed/SpeedLimit: multiplying by that ratio oscillates.
func (b *Boid) LimitSpeed(s Settings) {
	speed := b.Vel.Len()
	if speed > s.SpeedLimit {
		b.Vel.DivAssign(speed / s.SpeedLimit)
	}
}
