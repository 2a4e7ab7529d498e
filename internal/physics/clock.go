package physics

import "fmt"

// DefaultTimeStep is the fixed tick length in seconds.
const DefaultTimeStep = 0.0167

// maxStepsPerAdvance bounds catch-up work after a long stall so a slow frame
// cannot snowball into ever longer frames.
const maxStepsPerAdvance = 32

// Clock turns variable frame times into a whole number of fixed-length
// ticks, carrying the remainder to the next frame.
type Clock struct {
	step float64
	acc  float64
}

// NewClock creates a clock ticking every step seconds.
func NewClock(step float64) (*Clock, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: time step %g must be positive", ErrInvalidParams, step)
	}
	return &Clock{step: step}, nil
}

// Step returns the fixed tick length.
func (c *Clock) Step() float64 {
	return c.step
}

// Advance adds frame seconds to the accumulator and calls tick once per
// whole step. It returns the number of ticks run.
func (c *Clock) Advance(frame float64, tick func(dt float64)) int {
	if frame > 0 {
		c.acc += frame
	}
	n := 0
	for c.acc >= c.step {
		if n == maxStepsPerAdvance {
			c.acc = 0
			break
		}
		tick(c.step)
		c.acc -= c.step
		n++
	}
	return n
}

// Reset drops any accumulated time.
func (c *Clock) Reset() {
	c.acc = 0
}
