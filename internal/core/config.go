package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and to pick their fixed step.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second delivered by the platform (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// FrameSeconds returns the wall-clock length of one platform frame.
func (c RuntimeConfig) FrameSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Strokes  int  // Impulses applied this attempt
	Moving   bool // Whether the ball is rolling; input is gated while true
	Complete bool // Whether the ball dropped into the hole
	Quit     bool // Whether the player asked to leave
}

// StepResult is returned by Game.Step() after each platform frame.
type StepResult struct {
	State GameState
	Ticks int // physics ticks run during the frame
}
