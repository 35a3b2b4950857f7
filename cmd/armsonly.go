package cmd

import (
	"github.com/spf13/cobra"

	"github.com/motionforge/motionforge/core"
	"github.com/motionforge/motionforge/internal/contract"
)

// armsonlyCmd isolates upper-body motion.
var armsonlyCmd = &cobra.Command{
	Use:   "armsonly <recording.csv> [more.csv ...]",
	Short: "Neutralize locomotion so only the arm motion remains",
	Long: `Crop each recording to the configured window, then clamp every
non-arm joint to the neutral standing pose and pin the root in place.
The arm joints keep their captured trajectories. Use --keep-root to
preserve the captured root trajectory instead of pinning it.

The result is CSV, suitable as input to convert.

Examples:
  motionforge armsonly wave.csv -o wave_arms.csv
  motionforge armsonly wave.csv --start 1 --end 6 --keep-root -o wave_arms.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteArmsOnly(rootCtx, cfg); err != nil {
			contract.LogFatal("Arms-only transform failed", err)
		}
	},
}
