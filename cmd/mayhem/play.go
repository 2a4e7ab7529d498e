package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mayhem/internal/core"
	"github.com/vovakirdan/mayhem/internal/platform/tui"
	"github.com/vovakirdan/mayhem/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [course]",
	Short: "Play a course",
	Long: `Play the given course, or pick one from a menu when no course is named.

Controls:
  Left/Right, A/D - Aim
  Up/Down, W/S    - Shot power
  Space           - Shoot
  Mouse drag      - Slingshot shot (pull back from the ball and release)
  R               - Back to the tee
  Enter           - Play again after holing out
  Esc/B           - Back to course list
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Forgiving hole, fine aim steps
  normal - Hole tightens as you clear courses
  hard   - Starts tight, coarse aim steps
  fixed  - Uses the config values unchanged

Examples:
  mayhem play
  mayhem play 01-fairway
  mayhem play 03-water-crossing --difficulty hard
  mayhem play --stages ./my-courses --config ./trickshot.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	course, err := loadCourse()
	if err != nil {
		fail("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open attempts database", "error", err)
		store = nil // Continue without storage - game still works
	}

	var runErr error
	if len(args) == 0 {
		runErr = tui.RunSession(course, store, cfg, os.Getenv("USER"), logger)
	} else {
		m, findErr := findMap(course, args[0])
		if findErr != nil {
			fail("%v", findErr)
		}
		game, gameErr := course.NewGame(m, 0)
		if gameErr != nil {
			fail("%v", gameErr)
		}
		runErr = tui.Run(game, store, cfg, string(course.Preset))
		game.Close()
	}

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
