package physics

import "github.com/vovakirdan/mayhem/internal/geom"

// resolveWalls reflects the ball off the first wall, in layout order, that
// it overlaps or tunneled through this tick. Later walls are not examined
// once one fires, so two walls meeting at a corner are handled one per tick.
func (s *Stage) resolveWalls(dt float64) {
	b := &s.ball
	for _, w := range s.layout.Of(KindWall) {
		if n, hit := geom.CircleAABBContact(b.Hitbox, w.Box); hit {
			s.bounce(w.Box, n, dt)
			s.events |= EventBounce
			return
		}
		if s.tunneled(w.Box, dt) {
			s.events |= EventTunnel
			return
		}
	}
}

// bounce reflects the ball off box using the contact normal n.
func (s *Stage) bounce(box geom.AABB, n geom.Vec2, dt float64) {
	b := &s.ball
	hitX, hitY := !geom.NearlyZero(n.X), !geom.NearlyZero(n.Y)

	switch {
	case hitX && hitY:
		b.BounceBoth(dt)
	case hitX:
		b.BounceX(dt)
	case hitY:
		b.BounceY(dt)
	default:
		// Center is inside the box: use the direction of travel. Reverse x if
		// the ball crossed into the box's x band since the last tick.
		lo, hi := box.Min(), box.Max()
		prev, cur := b.PrevPos, b.Hitbox.C
		if (lo.X > prev.X && cur.X > lo.X) || (hi.X < prev.X && cur.X < hi.X) {
			b.BounceX(dt)
		} else {
			b.BounceY(dt)
		}
	}
}

// tunneled catches a ball that jumped across a wall's center line in one
// step without ever overlapping it, and reflects the crossed axis.
func (s *Stage) tunneled(box geom.AABB, dt float64) bool {
	b := &s.ball
	c, lo, hi := box.Center(), box.Min(), box.Max()
	prev, cur := b.PrevPos, b.Hitbox.C

	if (prev.X-c.X)*(cur.X-c.X) < 0 && cur.Y >= lo.Y && cur.Y <= hi.Y {
		b.BounceX(dt)
		return true
	}
	if (prev.Y-c.Y)*(cur.Y-c.Y) < 0 && cur.X >= lo.X && cur.X <= hi.X {
		b.BounceY(dt)
		return true
	}
	return false
}

// applyBoosts speeds the ball up once per overlapped boost panel.
func (s *Stage) applyBoosts() {
	b := &s.ball
	for _, c := range s.layout.Of(KindBoost) {
		if !geom.CircleOverlapsAABB(b.Hitbox, c.Box) {
			continue
		}
		s.events |= EventBoost
		if b.SpeedSq() < s.params.BoostCeiling {
			b.Vel = b.Vel.Scale(s.params.BoostFactor)
		}
	}
}

// applyFriction slows the ball once per overlapped friction tile.
func (s *Stage) applyFriction() {
	b := &s.ball
	for _, c := range s.layout.Of(KindFriction) {
		if geom.CircleOverlapsAABB(b.Hitbox, c.Box) {
			b.Vel = b.Vel.Scale(s.params.FrictionFactor)
			s.events |= EventFriction
		}
	}
}

// touchesHazard reports whether the ball overlaps any hazard tile.
func (s *Stage) touchesHazard() bool {
	for _, c := range s.layout.Of(KindHazard) {
		if geom.CircleOverlapsAABB(s.ball.Hitbox, c.Box) {
			return true
		}
	}
	return false
}

// integrate records the previous position, moves the ball, and applies the
// per-tick damping.
func (s *Stage) integrate(dt float64) {
	b := &s.ball
	b.PrevPos = b.Hitbox.C
	b.Hitbox.C = b.Hitbox.C.AddScaled(b.Vel, dt)
	b.Vel = b.Vel.Scale(s.params.LinearDamping)
}
