package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mayhem/internal/config"
)

var flagConfigOut string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default trick-shot configuration",
	Long: `Prints the built-in trickshot.yaml. Save it as
~/.mayhem/configs/trickshot.yaml or ./configs/trickshot.yaml to tune the
physics, shot controls and difficulty.

Examples:
  mayhem config
  mayhem config -o ~/.mayhem/configs/trickshot.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVarP(&flagConfigOut, "out", "o", "", "Write the config to this file instead of stdout")
}

func runConfig(_ *cobra.Command, _ []string) {
	data := config.DefaultTrickshotYAML()
	if flagConfigOut == "" {
		fmt.Print(string(data))
		return
	}

	if _, err := os.Stat(flagConfigOut); err == nil {
		fail("%s already exists", flagConfigOut)
	}
	if err := os.MkdirAll(filepath.Dir(flagConfigOut), 0o755); err != nil {
		fail("%v", err)
	}
	if err := os.WriteFile(flagConfigOut, data, 0o644); err != nil { //nolint:gosec // config file is meant to be readable
		fail("%v", err)
	}
	fmt.Printf("Wrote %s\n", flagConfigOut)
}
