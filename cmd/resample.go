package cmd

import (
	"github.com/spf13/cobra"

	"github.com/motionforge/motionforge/core"
	"github.com/motionforge/motionforge/internal/contract"
)

// resampleCmd changes the frame rate of recordings.
var resampleCmd = &cobra.Command{
	Use:   "resample <recording.csv> [more.csv ...]",
	Short: "Resample recordings to the output frame rate",
	Long: `Re-time each recording onto a uniform grid at --output-fps. Root
positions, joint angles and velocities interpolate linearly; root
orientations interpolate on the shortest arc. The grid never extends
past the last captured frame.

Examples:
  motionforge resample walk.csv -o walk_50hz.csv
  motionforge resample walk.csv --output-fps 100 -o walk_100hz.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteResample(rootCtx, cfg); err != nil {
			contract.LogFatal("Resample failed", err)
		}
	},
}
