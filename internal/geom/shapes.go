package geom

import "fmt"

// Circle is a center and a radius. The zero value is allowed so slices can
// be allocated before data is known, but it must be filled in before any
// geometric query.
type Circle struct {
	C Vec2    // center
	R float64 // radius, >= 0
}

// NewCircle creates a circle.
func NewCircle(center Vec2, radius float64) Circle {
	return Circle{C: center, R: radius}
}

// Valid reports whether the circle has a usable radius.
func (c Circle) Valid() bool {
	return c.R > 0
}

// AABB is an axis-aligned box stored as center and half-extent.
// Both half-extent components are positive for an initialized box.
type AABB struct {
	pos  Vec2
	half Vec2
}

// NewAABB builds a box from two opposite corners given in any order.
func NewAABB(a, b Vec2) AABB {
	half := b.Sub(a).Scale(0.5).Abs()
	center := a.Add(b).Scale(0.5)
	return AABB{pos: center, half: half}
}

// AABBFromCenter builds a box from its center and half-extent.
func AABBFromCenter(center, half Vec2) AABB {
	return AABB{pos: center, half: half.Abs()}
}

// Center returns the box center.
func (b AABB) Center() Vec2 {
	return b.pos
}

// HalfExtent returns half the box size on each axis.
func (b AABB) HalfExtent() Vec2 {
	return b.half
}

// Min returns the lower corner.
func (b AABB) Min() Vec2 {
	return b.pos.Sub(b.half)
}

// Max returns the upper corner.
func (b AABB) Max() Vec2 {
	return b.pos.Add(b.half)
}

// Size returns the full width and height.
func (b AABB) Size() Vec2 {
	return b.half.Scale(2)
}

// Vertices returns the four corners: min, (min.x, max.y), (max.x, min.y), max.
// The array is a copy owned by the caller.
func (b AABB) Vertices() [4]Vec2 {
	lo, hi := b.Min(), b.Max()
	return [4]Vec2{lo, V(lo.X, hi.Y), V(hi.X, lo.Y), hi}
}

// ContainsPoint reports whether p lies inside or on the boundary.
func (b AABB) ContainsPoint(p Vec2) bool {
	lo, hi := b.Min(), b.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// Union returns the smallest box containing b and o.
func (b AABB) Union(o AABB) AABB {
	lo := V(min(b.Min().X, o.Min().X), min(b.Min().Y, o.Min().Y))
	hi := V(max(b.Max().X, o.Max().X), max(b.Max().Y, o.Max().Y))
	return NewAABB(lo, hi)
}

// Valid reports whether both half-extent components are positive.
func (b AABB) Valid() bool {
	return b.half.X > 0 && b.half.Y > 0
}

// String implements fmt.Stringer.
func (b AABB) String() string {
	return fmt.Sprintf("AABB[%v..%v]", b.Min(), b.Max())
}

// OrientedBox is a box rotated by Angle radians about its center.
type OrientedBox struct {
	pos   Vec2
	half  Vec2
	angle float64
	rot   Rotation
}

// NewOrientedBox builds a box from its unrotated corners and a rotation
// about the box center.
func NewOrientedBox(a, b Vec2, angle float64) OrientedBox {
	box := NewAABB(a, b)
	return OrientedBox{pos: box.pos, half: box.half, angle: angle, rot: NewRotation(angle)}
}

// Center returns the box center.
func (o OrientedBox) Center() Vec2 {
	return o.pos
}

// HalfExtent returns the local half-extent.
func (o OrientedBox) HalfExtent() Vec2 {
	return o.half
}

// Angle returns the rotation in radians.
func (o OrientedBox) Angle() float64 {
	return o.angle
}

// Rotation returns the cached rotation matrix.
func (o OrientedBox) Rotation() Rotation {
	return o.rot
}

// LocalMin returns the pre-rotation lower corner.
func (o OrientedBox) LocalMin() Vec2 {
	return o.pos.Sub(o.half)
}

// LocalMax returns the pre-rotation upper corner.
func (o OrientedBox) LocalMax() Vec2 {
	return o.pos.Add(o.half)
}

// Vertices returns the world-space corners in the same order as
// AABB.Vertices, each rotated about the center.
func (o OrientedBox) Vertices() [4]Vec2 {
	local := [4]Vec2{
		V(-o.half.X, -o.half.Y),
		V(-o.half.X, o.half.Y),
		V(o.half.X, -o.half.Y),
		V(o.half.X, o.half.Y),
	}
	var out [4]Vec2
	for i, v := range local {
		out[i] = o.rot.Apply(v).Add(o.pos)
	}
	return out
}

// Valid reports whether the box was built with NewOrientedBox and has area.
func (o OrientedBox) Valid() bool {
	return o.half.X > 0 && o.half.Y > 0 && o.rot != Rotation{}
}

// Ray is an origin and a unit direction.
type Ray struct {
	Origin Vec2
	Dir    Vec2
}

// NewRay normalizes dir. A zero direction is rejected with ErrZeroVector.
func NewRay(origin, dir Vec2) (Ray, error) {
	n, err := dir.Normalize()
	if err != nil {
		return Ray{}, fmt.Errorf("ray direction: %w", err)
	}
	return Ray{Origin: origin, Dir: n}, nil
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec2 {
	return r.Origin.AddScaled(r.Dir, t)
}

// Valid reports whether Dir is a unit vector.
func (r Ray) Valid() bool {
	return NearlyEqual(r.Dir.LenSq(), 1)
}

// Segment is the line between two endpoints.
type Segment struct {
	A, B Vec2
}

// Len returns the segment length.
func (s Segment) Len() float64 {
	return s.B.Sub(s.A).Len()
}

// LenSq returns the squared segment length.
func (s Segment) LenSq() float64 {
	return s.B.Sub(s.A).LenSq()
}

// Ray returns the ray from A toward B. Degenerate segments fail with
// ErrZeroVector.
func (s Segment) Ray() (Ray, error) {
	return NewRay(s.A, s.B.Sub(s.A))
}
