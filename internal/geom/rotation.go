package geom

import "github.com/go-gl/mathgl/mgl64"

// Rotation is a 2x2 rotation matrix. The zero value is not a rotation;
// build one with NewRotation.
type Rotation struct {
	m mgl64.Mat2
}

// Identity is the rotation by zero radians.
var Identity = NewRotation(0)

// NewRotation returns the counter-clockwise rotation by angle radians.
func NewRotation(angle float64) Rotation {
	return Rotation{m: mgl64.Rotate2D(angle)}
}

// Apply rotates v.
func (r Rotation) Apply(v Vec2) Vec2 {
	out := r.m.Mul2x1(mgl64.Vec2{v.X, v.Y})
	return Vec2{X: out[0], Y: out[1]}
}

// Transpose returns the transposed matrix, which for a rotation is its inverse.
func (r Rotation) Transpose() Rotation {
	return Rotation{m: r.m.Transpose()}
}

// ApplyInverse rotates v by the inverse rotation, mapping a world-space
// offset into the rotated frame.
func (r Rotation) ApplyInverse(v Vec2) Vec2 {
	return r.Transpose().Apply(v)
}
