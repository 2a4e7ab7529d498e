// Package geom provides the 2D primitives used by the physics core:
// vectors, a rotation matrix, circles, boxes, rays and segments, plus the
// intersection and raycast predicates between them.
// Like the rest of the simulation code it has no I/O and never logs.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by NearlyEqual and NearlyZero.
const Epsilon = 1e-5

// Vec2 is a 2D vector. Methods return new values except for the explicit
// in-place mutators Zero and Set.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Mul returns the componentwise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// AddScaled returns v + o*s.
func (v Vec2) AddScaled(o Vec2, s float64) Vec2 {
	return Vec2{X: v.X + o.X*s, Y: v.Y + o.Y*s}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// LenSq returns the squared magnitude. Prefer it over Len for comparisons.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the magnitude.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// DistSq returns the squared distance between v and o.
func (v Vec2) DistSq(o Vec2) float64 {
	return v.Sub(o).LenSq()
}

// Normalize returns the unit vector pointing along v.
// A zero vector has no direction and yields ErrZeroVector.
func (v Vec2) Normalize() (Vec2, error) {
	l := v.Len()
	if l == 0 {
		return Vec2{}, ErrZeroVector
	}
	return Vec2{X: v.X / l, Y: v.Y / l}, nil
}

// MustNormalize is Normalize for callers that already guard against zero
// vectors. It panics on a zero vector.
func (v Vec2) MustNormalize() Vec2 {
	n, err := v.Normalize()
	if err != nil {
		panic(err)
	}
	return n
}

// Clamp clamps each component of v into [lo, hi].
func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{X: clamp(v.X, lo.X, hi.X), Y: clamp(v.Y, lo.Y, hi.Y)}
}

// Signs returns ±1 per component. Zero maps to +1.
func (v Vec2) Signs() Vec2 {
	return Vec2{X: sign(v.X), Y: sign(v.Y)}
}

// Abs returns the componentwise absolute value.
func (v Vec2) Abs() Vec2 {
	return Vec2{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

// ApproxEqual reports whether both components are NearlyEqual.
func (v Vec2) ApproxEqual(o Vec2) bool {
	return NearlyEqual(v.X, o.X) && NearlyEqual(v.Y, o.Y)
}

// IsZero reports whether v is exactly the zero vector.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Zero sets v to the zero vector in place.
func (v *Vec2) Zero() {
	v.X, v.Y = 0, 0
}

// Set copies o into v in place.
func (v *Vec2) Set(o Vec2) {
	v.X, v.Y = o.X, o.Y
}

// String implements fmt.Stringer.
func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// NearlyEqual compares two floats with Epsilon, scaled by their magnitude
// once either exceeds 1. The test is symmetric in a and b.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// NearlyZero reports whether a is within Epsilon of zero.
func NearlyZero(a float64) bool {
	return NearlyEqual(a, 0)
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	return clamp(val, lo, hi)
}

func clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

func sign(a float64) float64 {
	if a < 0 {
		return -1
	}
	return 1
}
