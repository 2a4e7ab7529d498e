package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mayhem/internal/sim"
	"github.com/vovakirdan/mayhem/internal/stage"
)

var (
	flagSimAngles   string
	flagSimPowers   string
	flagSimWorkers  int
	flagSimMaxTicks int
	flagSimTop      int
)

var simCmd = &cobra.Command{
	Use:   "sim <course>",
	Short: "Search a course for hole-in-one shots",
	Long: `Simulate a grid of shots from the tee and report the best ones.

Angles are in degrees, 0 points right and 90 points down. Ranges are
written from:to:step.

Examples:
  mayhem sim 01-fairway
  mayhem sim 02-dogleg --angles -90:0:1 --powers 200:900:10
  mayhem sim 04-boost-alley --workers 4 --top 20`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimAngles, "angles", "-180:175:5", "Angle range in degrees (from:to:step)")
	simCmd.Flags().StringVar(&flagSimPowers, "powers", "100:900:25", "Power range (from:to:step)")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Concurrent simulations (0 = one per CPU)")
	simCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", sim.DefaultMaxTicks, "Give up on a shot after this many ticks")
	simCmd.Flags().IntVar(&flagSimTop, "top", 10, "Number of shots to print")
}

func runSim(_ *cobra.Command, args []string) {
	course, err := loadCourse()
	if err != nil {
		fail("%v", err)
	}
	m, err := findMap(course, args[0])
	if err != nil {
		fail("%v", err)
	}

	angles, err := parseRange(flagSimAngles)
	if err != nil {
		fail("--angles: %v", err)
	}
	powers, err := parseRange(flagSimPowers)
	if err != nil {
		fail("--powers: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := course.Config
	results, err := sim.Sweep(ctx, sim.SweepConfig{
		Map: m,
		Options: stage.BuildOptions{
			BallRadius: cfg.Ball.Radius,
			HoleRadius: cfg.Hole.Radius,
			Params:     cfg.Params(),
		},
		TimeStep: cfg.Physics.TimeStep,
		Angles:   angles,
		Powers:   powers,
		MaxTicks: flagSimMaxTicks,
		Workers:  flagSimWorkers,
	}, logger)
	if err != nil {
		fail("%v", err)
	}

	holed := 0
	for _, r := range results {
		if r.Holed {
			holed++
		}
	}

	fmt.Printf("Shot search - %s\n", m.Name)
	fmt.Printf("%d shots simulated, %d holed in one\n", len(results), holed)
	fmt.Println()
	fmt.Printf("  %-6s  %-6s  %-5s  %-7s  %-6s  %-7s  %s\n", "Angle", "Power", "Holed", "Bounces", "Water", "Ticks", "Rest")
	for i, r := range results {
		if i >= flagSimTop {
			break
		}
		fmt.Printf("  %-6.1f  %-6.0f  %-5s  %-7d  %-6s  %-7d  %s\n",
			r.Angle, r.Power, yesNo(r.Holed), r.Bounces, yesNo(r.Hazard), r.Ticks, r.Final)
	}
}

// parseRange reads "from:to:step", or a single value.
func parseRange(s string) ([]float64, error) {
	parts := strings.Split(s, ":")
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", p)
		}
		vals[i] = v
	}

	switch len(vals) {
	case 1:
		return vals, nil
	case 3:
		r := sim.Range(vals[0], vals[1], vals[2])
		if len(r) == 0 {
			return nil, fmt.Errorf("empty range %q", s)
		}
		return r, nil
	}
	return nil, fmt.Errorf("want from:to:step, got %q", s)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
