package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mayhem/internal/platform/tui"
	"github.com/vovakirdan/mayhem/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [course]",
	Short: "Show best rounds for a course",
	Long: `Display the best finished rounds for a course, fewest strokes first.
Without a course, lists the most recent attempts on every course.

Examples:
  mayhem scores 01-fairway
  mayhem scores 01-fairway --limit 25
  mayhem scores 01-fairway --clear
  mayhem scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all attempts on the course")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse all courses in an interactive table")
}

func runScores(_ *cobra.Command, args []string) {
	course, err := loadCourse()
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening attempts database: %v", err)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, course.Maps, course.Config.Physics.TimeStep, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	if len(args) == 0 {
		printRecent(store)
		return
	}

	m, err := findMap(course, args[0])
	if err != nil {
		fail("%v", err)
	}

	if flagScoresClear {
		if err := store.ClearStage(m.ID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared all attempts on %s.\n", m.Name)
		return
	}

	best, err := store.BestAttempts(m.ID, flagScoresLimit)
	if err != nil {
		fail("retrieving attempts: %v", err)
	}

	fmt.Printf("Best Rounds - %s\n", m.Name)
	fmt.Println()

	if len(best) == 0 {
		fmt.Println("No finished rounds yet.")
		fmt.Println()
		fmt.Printf("Play 'mayhem play %s' to set the first one!\n", m.ID)
		return
	}

	fmt.Printf("  %-4s  %-7s  %-8s  %-12s  %-10s  %s\n", "Rank", "Strokes", "Time", "Player", "Difficulty", "Date")
	fmt.Printf("  %-4s  %-7s  %-8s  %-12s  %-10s  %s\n", "----", "-------", "----", "------", "----------", "----")
	step := course.Config.Physics.TimeStep
	for i, a := range best {
		stale := ""
		if a.Fingerprint != m.Fingerprint() {
			stale = "  (course changed)"
		}
		fmt.Printf("  %-4d  %-7d  %-8s  %-12s  %-10s  %s%s\n",
			i+1, a.Strokes, tickDuration(a.Ticks, step), dash(a.Player), dash(a.Difficulty),
			a.CreatedAt.Format("2006-01-02 15:04"), stale)
	}

	stats, err := store.StageStats(m.ID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d strokes  Finished: %d of %d  Average: %.1f\n",
			stats.BestStrokes, stats.Completed, stats.Attempts, stats.AvgStrokes)
	}
}

func printRecent(store *storage.Store) {
	recent, err := store.RecentAttempts(flagScoresLimit)
	if err != nil {
		fail("retrieving attempts: %v", err)
	}
	if len(recent) == 0 {
		fmt.Println("No attempts recorded yet.")
		return
	}

	fmt.Println("Recent attempts")
	fmt.Println()
	fmt.Printf("  %-36s  %-20s  %-7s  %-8s  %s\n", "ID", "Course", "Strokes", "Result", "Date")
	for _, a := range recent {
		result := "gave up"
		if a.Complete {
			result = "holed"
		}
		fmt.Printf("  %-36s  %-20s  %-7d  %-8s  %s\n",
			a.ID, a.StageID, a.Strokes, result, a.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Println("Watch one again with: mayhem replay --attempt <id>")
}

func tickDuration(ticks uint64, step float64) string {
	d := time.Duration(float64(ticks) * step * float64(time.Second))
	return d.Round(100 * time.Millisecond).String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
