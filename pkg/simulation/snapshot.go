package simulation

import (
	"encoding/binary"
	"math"

	"github.com/SeanRemedios/Boid-System/pkg/geometry"
	"github.com/cespare/xxhash/v2"
)

// Snapshot is an immutable view of the flock after a tick. Renderers only ever
// see snapshots, never the live boids.
type Snapshot struct {
	Tick       uint64
	Positions  []geometry.Vector2D
	Radius     float64
	Perching   int
	WindActive bool
}

// Checksum hashes the exact bits of every position. Two runs with the same seed
// and tick times produce the same checksum.
func (s *Snapshot) Checksum() uint64 {
	d := xxhash.New()
	var buf [16]byte
	for _, p := range s.Positions {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(p.X))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p.Y))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
