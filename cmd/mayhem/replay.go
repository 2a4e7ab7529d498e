package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mayhem/internal/games/trickshot"
	"github.com/vovakirdan/mayhem/internal/storage"
)

var (
	flagReplayAttempt string
	flagReplayOut     string
)

var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Re-simulate a recorded attempt",
	Long: `Re-run a recorded attempt shot by shot and check that it ends the same
way. Replays come from a file or from the attempts database.

Examples:
  mayhem replay best.replay
  mayhem replay --attempt 6f1c0c1e-3f55-4a59-9a53-6a0e4d1c2b7a
  mayhem replay --attempt 6f1c0c1e-3f55-4a59-9a53-6a0e4d1c2b7a --out best.replay`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayAttempt, "attempt", "", "Attempt ID from 'mayhem scores'")
	replayCmd.Flags().StringVarP(&flagReplayOut, "out", "o", "", "Write the replay to this file")
}

func runReplay(_ *cobra.Command, args []string) {
	data, err := readReplay(args)
	if err != nil {
		fail("%v", err)
	}
	r, err := trickshot.DecodeReplay(data)
	if err != nil {
		fail("%v", err)
	}

	if flagReplayOut != "" {
		if err := os.WriteFile(flagReplayOut, data, 0o600); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Replay written to %s\n", flagReplayOut)
	}

	course, err := loadCourse()
	if err != nil {
		fail("%v", err)
	}
	m, err := findMap(course, r.StageID)
	if err != nil {
		fail("%v", err)
	}

	res, err := r.Run(m)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Replay %s - %s\n", r.ID, m.Name)
	fmt.Printf("  Recorded: %s\n", r.RecordedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("  Shots:    %d\n", len(r.Shots))
	for i, s := range r.Shots {
		fmt.Printf("    %d. tick %-6d impulse (%.1f, %.1f)\n", i+1, s.Tick, s.DX, s.DY)
	}
	fmt.Printf("  Strokes:  %d\n", res.Strokes)
	fmt.Printf("  Ticks:    %d of %d\n", res.Ticks, r.Ticks)
	fmt.Printf("  Ball:     %s\n", res.Ball)
	fmt.Printf("  Holed:    %s\n", yesNo(res.Complete))

	if res.Complete != r.Complete {
		fail("replay diverged: recorded holed=%v, simulated holed=%v", r.Complete, res.Complete)
	}
	logger.Debug("replay matches recording", "id", r.ID, "stage", r.StageID)
}

func readReplay(args []string) ([]byte, error) {
	switch {
	case flagReplayAttempt != "" && len(args) > 0:
		return nil, fmt.Errorf("give either a file or --attempt, not both")
	case flagReplayAttempt != "":
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		a, err := store.AttemptByID(flagReplayAttempt)
		if err != nil {
			return nil, err
		}
		if len(a.Replay) == 0 {
			return nil, fmt.Errorf("attempt %s has no replay", a.ID)
		}
		return a.Replay, nil
	case len(args) == 1:
		return os.ReadFile(args[0])
	}
	return nil, fmt.Errorf("give a replay file or --attempt")
}
