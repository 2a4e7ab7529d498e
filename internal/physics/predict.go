package physics

import (
	"math"

	"github.com/vovakirdan/mayhem/internal/geom"
)

// PathHit is the first wall a straight path runs into.
type PathHit struct {
	Point    geom.Vec2
	Distance float64
	Axis     geom.Axis
	Index    int // index into Layout.Of(KindWall)
}

// PredictPath casts a segment of the given length from origin along dir
// and returns the nearest wall entry. It ignores damping and every tile
// other than walls; the trick-shot UI uses it as an aiming guide.
func PredictPath(l *Layout, origin, dir geom.Vec2, length float64) (PathHit, bool) {
	ray, err := geom.NewRay(origin, dir)
	if err != nil || length <= 0 {
		return PathHit{}, false
	}
	seg := geom.Segment{A: origin, B: ray.At(length)}

	best := PathHit{Distance: math.Inf(1), Index: -1}
	for i, w := range l.Of(KindWall) {
		hit, ok := geom.SegmentCastAABB(seg, w.Box)
		if !ok || hit.Distance >= best.Distance {
			continue
		}
		best = PathHit{Point: hit.Point, Distance: hit.Distance, Axis: hit.Axis, Index: i}
	}
	if best.Index < 0 {
		return PathHit{}, false
	}
	return best, true
}
