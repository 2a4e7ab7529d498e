package physics

import "github.com/vovakirdan/mayhem/internal/geom"

// Ball is the single moving body of a stage.
type Ball struct {
	Hitbox  geom.Circle // collision footprint; Hitbox.C is the position
	PrevPos geom.Vec2   // position at the start of the last integration
	Vel     geom.Vec2   // pixels per second
}

// Pos returns the ball center.
func (b *Ball) Pos() geom.Vec2 {
	return b.Hitbox.C
}

// SpeedSq returns the squared speed.
func (b *Ball) SpeedSq() float64 {
	return b.Vel.LenSq()
}

// place puts the ball at p with no motion history.
func (b *Ball) place(p geom.Vec2) {
	b.Hitbox.C = p
	b.PrevPos = p
	b.Vel.Zero()
}

// BounceX reverses horizontal velocity and re-applies it for dt so the ball
// leaves the wall during the same tick.
func (b *Ball) BounceX(dt float64) {
	b.Vel.X = -b.Vel.X
	b.Hitbox.C.X += b.Vel.X * dt
}

// BounceY reverses vertical velocity and re-applies it for dt.
func (b *Ball) BounceY(dt float64) {
	b.Vel.Y = -b.Vel.Y
	b.Hitbox.C.Y += b.Vel.Y * dt
}

// BounceBoth fully reverses the ball, used for corner hits.
func (b *Ball) BounceBoth(dt float64) {
	b.Vel = b.Vel.Neg()
	b.Hitbox.C = b.Hitbox.C.AddScaled(b.Vel, dt)
}
