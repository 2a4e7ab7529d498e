package geom

import "math"

// Axis names the box face pair a ray entered through.
type Axis int

const (
	AxisX Axis = iota // entered through a vertical face (min.x or max.x)
	AxisY             // entered through a horizontal face (min.y or max.y)
)

// String returns "x" or "y".
func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// RayHit describes where a ray enters a box.
type RayHit struct {
	Distance float64 // parametric distance along the unit direction
	Axis     Axis    // face pair struck; X wins exact ties
	Point    Vec2    // entry point
}

// Normal returns the outward face normal at the entry point, facing the
// ray origin.
func (h RayHit) Normal(r Ray) Vec2 {
	if h.Axis == AxisX {
		return V(-sign(r.Dir.X), 0)
	}
	return V(0, -sign(r.Dir.Y))
}

// RaycastAABB intersects a ray with a box using the slab method.
//
// Zero direction components produce infinite slab distances, which the
// min/max logic handles without special cases. A ray starting inside the
// box does not hit it: collisions are never triggered from within a solid.
func RaycastAABB(ray Ray, box AABB) (RayHit, bool) {
	mustRay(ray)
	mustBox(box)

	inv := V(1/ray.Dir.X, 1/ray.Dir.Y)
	lo, hi := box.Min(), box.Max()

	t1 := (lo.X - ray.Origin.X) * inv.X
	t2 := (hi.X - ray.Origin.X) * inv.X
	t3 := (lo.Y - ray.Origin.Y) * inv.Y
	t4 := (hi.Y - ray.Origin.Y) * inv.Y

	enterX, exitX := math.Min(t1, t2), math.Max(t1, t2)
	enterY, exitY := math.Min(t3, t4), math.Max(t3, t4)

	// NaN shows up when the origin sits exactly on a slab plane of an axis
	// the ray runs parallel to (0 * Inf); treat that slab as unbounded.
	if math.IsNaN(enterX) || math.IsNaN(exitX) {
		enterX, exitX = math.Inf(-1), math.Inf(1)
	}
	if math.IsNaN(enterY) || math.IsNaN(exitY) {
		enterY, exitY = math.Inf(-1), math.Inf(1)
	}

	tMin := math.Max(enterX, enterY)
	tMax := math.Min(exitX, exitY)

	switch {
	case tMax < 0: // box is behind the ray
		return RayHit{}, false
	case tMax < tMin: // miss
		return RayHit{}, false
	case tMin < 0: // origin inside the box
		return RayHit{}, false
	}

	axis := AxisY
	if tMin == enterX {
		axis = AxisX
	}
	return RayHit{Distance: tMin, Axis: axis, Point: ray.At(tMin)}, true
}

// SegmentCastAABB casts from A toward B and reports a hit only when the
// box is entered no farther than B.
func SegmentCastAABB(seg Segment, box AABB) (RayHit, bool) {
	ray, err := seg.Ray()
	if err != nil {
		return RayHit{}, false
	}
	hit, ok := RaycastAABB(ray, box)
	if !ok || hit.Distance*hit.Distance > seg.LenSq() {
		return RayHit{}, false
	}
	return hit, true
}
