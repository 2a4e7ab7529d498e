// mayhem is a terminal trick-shot golf game built on a small 2D collision
// and response core.
//
// Usage:
//
//	mayhem list              - List available courses
//	mayhem play [course]     - Play a course, or pick one from a menu
//	mayhem serve             - Start SSH server for remote play
//	mayhem scores [course]   - Show best rounds for a course
//	mayhem sim <course>      - Search for hole-in-one shots
//	mayhem replay <file>     - Re-simulate a recorded attempt
//	mayhem config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: 60)
//	--db <path>           - Set database path (default: ~/.mayhem/attempts.db)
//	--config <path>       - Custom trickshot.yaml
//	--stages <dir>        - Extra course directory
//	--difficulty <preset> - easy, normal, hard or fixed
//	--verbose             - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mayhem/internal/config"
	"github.com/vovakirdan/mayhem/internal/platform/tui"
	"github.com/vovakirdan/mayhem/internal/stage"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagStages     string
	flagDifficulty string
	flagVerbose    bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mayhem",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mayhem",
	Short: "Mini-Game Mayhem - trick-shot golf in your terminal",
	Long: `Mini-Game Mayhem is a terminal trick-shot golf game. Aim, pick a power
and sink the ball while walls, boost panels, sand and water get in the way.

Available commands:
  list     - Show all available courses
  play     - Play a course
  serve    - Start SSH server for remote play
  scores   - View best rounds
  sim      - Search a course for hole-in-one shots
  replay   - Re-simulate a recorded attempt
  config   - Print the default configuration

Examples:
  mayhem list
  mayhem play 01-fairway
  mayhem play --difficulty hard
  mayhem serve --ssh :2222
  mayhem sim 02-dogleg --powers 200:900:10`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mayhem/attempts.db", "Path to attempts database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom trickshot config YAML")
	rootCmd.PersistentFlags().StringVar(&flagStages, "stages", "", "Directory with extra course files (.map, .yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadCourse reads the config, applies the difficulty preset and loads the
// built-in courses plus any from --stages or the config's course dir.
func loadCourse() (*tui.Course, error) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	cfg, err := config.LoadTrickshot(flagConfig)
	if err != nil {
		return nil, err
	}
	config.ApplyTrickshotPreset(&cfg, preset)

	opts := []stage.Option{
		stage.WithTileSize(cfg.Course.TileSize),
		stage.WithLogger(logger),
	}
	loaders := []*stage.Loader{stage.NewBuiltinLoader(opts...)}
	dir := flagStages
	if dir == "" {
		dir = cfg.Course.Dir
	}
	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("stage directory: %w", err)
		}
		loaders = append(loaders, stage.NewLoader(dir, opts...))
	}

	maps, err := stage.LoadAllFrom(loaders...)
	if err != nil {
		return nil, err
	}
	logger.Debug("courses loaded", "count", len(maps), "dir", dir, "difficulty", preset)
	return &tui.Course{Maps: maps, Config: cfg, Preset: preset}, nil
}

// findMap returns the course with the given ID.
func findMap(course *tui.Course, id string) (*stage.Map, error) {
	for _, m := range course.Maps {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s (run 'mayhem list' to see available courses)", stage.ErrNotFound, id)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
