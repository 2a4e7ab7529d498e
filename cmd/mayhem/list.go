package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mayhem/internal/physics"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available courses",
	Long:  `Shows the built-in courses and any loaded from --stages.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	course, err := loadCourse()
	if err != nil {
		fail("%v", err)
	}

	if len(course.Maps) == 0 {
		fmt.Println("No courses available.")
		return
	}

	fmt.Println("Available courses:")
	fmt.Println()
	fmt.Printf("  %-20s  %-22s  %-7s  %-4s  %-22s  %s\n", "ID", "Name", "Size", "Par", "Walls/Boost/Sand/Water", "Source")
	for _, m := range course.Maps {
		l := m.Layout()
		par := m.Metadata["par"]
		if par == "" {
			par = "-"
		}
		counts := fmt.Sprintf("%d/%d/%d/%d",
			l.Count(physics.KindWall), l.Count(physics.KindBoost),
			l.Count(physics.KindFriction), l.Count(physics.KindHazard))
		fmt.Printf("  %-20s  %-22s  %-7s  %-4s  %-22s  %s\n",
			m.ID, m.Name, fmt.Sprintf("%dx%d", m.Width, m.Height), par, counts, m.FilePath)
	}
	fmt.Println()
	fmt.Println("Play with: mayhem play <id>")
}
