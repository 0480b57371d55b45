package behavior

import (
	"math/rand/v2"

	"github.com/SeanRemedios/Boid-System/pkg/geometry"
)

// RandomStart places a boid just outside one of the four screen edges so it
// visibly flies into the frame. Left/right edges get a random height, top/bottom
// edges a random width, both in whole pixels starting at 1.
func RandomStart(rng *rand.Rand, width, height, offset float64) geometry.Vector2D {
	if rng.IntN(2) == 1 {
		y := float64(1 + rng.IntN(atLeastOne(height)))
		if rng.IntN(2) == 1 {
			return geometry.Vector2D{X: -offset, Y: y}
		}
		return geometry.Vector2D{X: width + offset, Y: y}
	}

	x := float64(1 + rng.IntN(atLeastOne(width)))
	if rng.IntN(2) == 1 {
		return geometry.Vector2D{X: x, Y: -offset}
	}
	return geometry.Vector2D{X: x, Y: height + offset}
}

func atLeastOne(f float64) int {
	if n := int(f); n > 1 {
		return n
	}
	return 1
}

// NewBoid creates a motionless boid at a random start with a random perch duration.
func NewBoid(id int, rng *rand.Rand, s Settings) *Boid {
	span := s.PerchMaxTicks - s.PerchMinTicks + 1
	if span < 1 {
		span = 1
	}
	return &Boid{
		ID:         id,
		Pos:        RandomStart(rng, s.ScreenWidth, s.ScreenHeight, s.SpawnOffset),
		PerchTicks: s.PerchMinTicks + rng.IntN(span),
	}
}

// Populate creates n boids with consecutive IDs starting at 0.
func Populate(n int, rng *rand.Rand, s Settings) []*Boid {
	boids := make([]*Boid, n)
	for i := range boids {
		boids[i] = NewBoid(i, rng, s)
	}
	return boids
}
