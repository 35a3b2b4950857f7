package cmd

import (
	"github.com/spf13/cobra"

	"github.com/motionforge/motionforge/core"
	"github.com/motionforge/motionforge/internal/contract"
)

// cropCmd crops recordings without running physics.
var cropCmd = &cobra.Command{
	Use:   "crop <recording.csv> [more.csv ...]",
	Short: "Crop recordings to a time window and write them back as CSV",
	Long: `Truncate each recording to the [--start, --end] window. Window bounds
resolve to the nearest boundary frames and the output is re-based so
the first retained frame sits at time zero. No physics runs; the output
is CSV in the same layout as the input.

An output file is required. With multiple inputs each result keeps its
input basename under the output path's directory.

Examples:
  motionforge crop walk.csv --start 2 --end 10 -o walk_cropped.csv
  motionforge crop take_*.csv --start 1 --end 4 -o cropped/out.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCrop(rootCtx, cfg); err != nil {
			contract.LogFatal("Crop failed", err)
		}
	},
}
