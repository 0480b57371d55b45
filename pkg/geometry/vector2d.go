package geometry

import (
	"fmt"
	"math"
)

// Epsilon Precision constant used by Eq for float64 comparisons.
const (
	Epsilon = 1e-9
)

// Vector2D represents a 2D vector or point in cartesian space.
// We use public fields (X, Y) because they are fundamental data, not internal state.
// This allows for cleaner literal initialization: v := Vector2D{1, 2}
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zero is the additive identity.
var Zero = Vector2D{}

// NewVector creates a new Vector2D.
func NewVector(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// String implements the fmt.Stringer interface.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// These methods use value receivers and return new Values.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts the other vector from the current vector.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// Div scales the vector by 1/scalar.
// A zero scalar leaves the vector unchanged so a degenerate divisor can never
// push Inf or NaN into agent state.
func (v Vector2D) Div(scalar float64) Vector2D {
	if scalar == 0 {
		return v
	}
	return Vector2D{v.X / scalar, v.Y / scalar}
}

// DivVec divides elementwise. A zero component of the divisor divides that
// component by 1 instead, the other component is divided normally.
func (v Vector2D) DivVec(other Vector2D) Vector2D {
	return Vector2D{v.X / nonZero(other.X), v.Y / nonZero(other.Y)}
}

func nonZero(f float64) float64 {
	if f == 0 {
		return 1
	}
	return f
}

// ---------------------------------------------------------------------
// In-place accumulation
// These mutate the receiver and return it so calls can be chained.
// ---------------------------------------------------------------------

// AddAssign adds other into v.
func (v *Vector2D) AddAssign(other Vector2D) *Vector2D {
	v.X += other.X
	v.Y += other.Y
	return v
}

// SubAssign subtracts other from v.
func (v *Vector2D) SubAssign(other Vector2D) *Vector2D {
	v.X -= other.X
	v.Y -= other.Y
	return v
}

// DivAssign divides v by scalar, with the same zero guard as Div.
func (v *Vector2D) DivAssign(scalar float64) *Vector2D {
	*v = v.Div(scalar)
	return v
}

// DivVecAssign divides v elementwise by other, with the same zero guard as DivVec.
func (v *Vector2D) DivVecAssign(other Vector2D) *Vector2D {
	*v = v.DivVec(other)
	return v
}

// ---------------------------------------------------------------------
// Magnitude
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// This is faster than Len() as it avoids the square root. Use for comparisons.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len calculates the magnitude (length) of the vector.
func (v Vector2D) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector2D) DistanceSquaredTo(other Vector2D) float64 {
	return v.Sub(other).LenSqr()
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}

// Equal reports exact component equality.
func (v Vector2D) Equal(other Vector2D) bool {
	return v.X == other.X && v.Y == other.Y
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vector2D) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
