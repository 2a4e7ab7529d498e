package tui

import (
	"github.com/vovakirdan/mayhem/internal/config"
	"github.com/vovakirdan/mayhem/internal/games/trickshot"
	"github.com/vovakirdan/mayhem/internal/stage"
)

// Course is what a play session draws games from: the stage list, the
// tuning and the difficulty preset it was loaded with.
type Course struct {
	Maps   []*stage.Map
	Config config.TrickshotConfig
	Preset config.DifficultyPreset
}

// NewGame starts a game on m. With difficulty enabled the hole gets
// stricter as more courses are cleared in the session; the fixed preset
// always plays the configured tuning.
func (c *Course) NewGame(m *stage.Map, cleared int) (*trickshot.Game, error) {
	dm := config.NewDifficultyManager(c.Config.Difficulty)
	if config.IsFixedPreset(c.Preset) {
		dm.SetEnabled(false)
	}
	var opts []trickshot.Option
	if dm.IsEnabled() {
		opts = append(opts, trickshot.WithParams(dm.Params(c.Config.Params(), cleared)))
	}
	return trickshot.New(m, c.Config, opts...)
}
