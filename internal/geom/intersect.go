package geom

import "fmt"

// CircleOverlapsCircle reports whether two circles touch or overlap.
func CircleOverlapsCircle(a, b Circle) bool {
	mustCircle(a)
	mustCircle(b)
	r := a.R + b.R
	return a.C.DistSq(b.C) <= r*r
}

// CircleInCircle reports whether inner lies entirely within outer.
// A circle contains itself.
func CircleInCircle(inner, outer Circle) bool {
	mustCircle(inner)
	mustCircle(outer)
	slack := outer.R - inner.R
	if slack < 0 {
		return false
	}
	return inner.C.DistSq(outer.C) <= slack*slack
}

// ClosestPoint returns the point of box nearest to p.
func ClosestPoint(box AABB, p Vec2) Vec2 {
	mustBox(box)
	return p.Clamp(box.Min(), box.Max())
}

// CircleOverlapsAABB reports whether a circle touches or overlaps a box.
func CircleOverlapsAABB(c Circle, box AABB) bool {
	mustCircle(c)
	return ClosestPoint(box, c.C).DistSq(c.C) <= c.R*c.R
}

// CircleAABBContact tests a circle against a box and, on contact, returns
// the unit normal pointing from the box toward the circle center.
//
// When the center lies inside the box the nearest point is the center
// itself and there is no direction to report: the normal is the zero
// vector. Callers resolving collisions must treat that case separately.
func CircleAABBContact(c Circle, box AABB) (Vec2, bool) {
	mustCircle(c)
	nearest := ClosestPoint(box, c.C)
	d := c.C.Sub(nearest)
	if d.LenSq() > c.R*c.R {
		return Vec2{}, false
	}
	if d.IsZero() {
		return Vec2{}, true
	}
	return d.MustNormalize(), true
}

// CircleOverlapsOrientedBox tests a circle against a rotated box by moving
// the circle center into the box frame and running the AABB test there.
func CircleOverlapsOrientedBox(c Circle, box OrientedBox) bool {
	mustCircle(c)
	mustOriented(box)
	local := box.rot.ApplyInverse(c.C.Sub(box.pos)).Add(box.half)
	frame := NewAABB(Vec2{}, box.half.Scale(2))
	return ClosestPoint(frame, local).DistSq(local) <= c.R*c.R
}

func mustCircle(c Circle) {
	if debugChecks && !c.Valid() {
		panic(fmt.Errorf("%w: query on uninitialized circle", ErrInvalidOperation))
	}
}

func mustBox(b AABB) {
	if debugChecks && !b.Valid() {
		panic(fmt.Errorf("%w: query on uninitialized AABB", ErrInvalidOperation))
	}
}

func mustOriented(b OrientedBox) {
	if debugChecks && !b.Valid() {
		panic(fmt.Errorf("%w: query on uninitialized oriented box", ErrInvalidOperation))
	}
}

func mustRay(r Ray) {
	if debugChecks && !r.Valid() {
		panic(fmt.Errorf("%w: ray direction is not a unit vector", ErrInvalidOperation))
	}
}
