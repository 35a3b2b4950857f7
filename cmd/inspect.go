package cmd

import (
	"github.com/spf13/cobra"

	"github.com/motionforge/motionforge/core"
	"github.com/motionforge/motionforge/internal/contract"
)

// inspectCmd summarizes recordings without converting them.
var inspectCmd = &cobra.Command{
	Use:   "inspect <recording.csv> [more.csv ...]",
	Short: "Summarize recordings: frames, duration and joint ranges",
	Long: `Read each recording and print a summary table: frame count, frame
rate, duration, whether velocities are present, root height range and
the min/max angle of every joint.

Useful before converting, to pick a crop window and sanity-check the
capture.

Examples:
  motionforge inspect walk.csv
  motionforge inspect take_*.csv --input-fps 60`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteInspect(rootCtx, cfg); err != nil {
			contract.LogFatal("Inspect failed", err)
		}
	},
}
