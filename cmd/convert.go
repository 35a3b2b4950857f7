package cmd

import (
	"github.com/spf13/cobra"

	"github.com/motionforge/motionforge/core"
	"github.com/motionforge/motionforge/internal/contract"
	"github.com/motionforge/motionforge/internal/physics"
	"github.com/motionforge/motionforge/internal/regstore"
)

// convertCmd runs the full conversion pipeline.
var convertCmd = &cobra.Command{
	Use:   "convert <recording.csv> [more.csv ...]",
	Short: "Convert recordings into physics-consistent training artifacts",
	Long: `Run the full conversion pipeline: ingest each motion capture CSV, crop
it to the configured window, resimulate it through the tracking
controller, resample to the output rate and serialize a Parquet
artifact.

By default the artifact is written next to the working directory as
<input>.parquet. With --publish the artifact is also stored in the
configured registry; combine --publish with --output-file to keep a
local copy as well.

Examples:
  # Convert a full recording with defaults (30 fps in, 50 fps out)
  motionforge convert walk.csv

  # Crop to a window and choose the output path
  motionforge convert walk.csv --start 2 --end 10 -o artifacts/walk.parquet

  # Publish to the registry under an explicit name, no local file
  motionforge convert walk.csv --publish --name walk_forward

  # Batch conversion; names derive from each input basename
  motionforge convert take_*.csv --publish`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		var reg contract.Registry
		if cfg.Publish {
			store, err := regstore.NewStore(rootCtx, cfg.RegistryBackend, cfg.RegistryConnect)
			if err != nil {
				contract.LogFatal("Registry initialization failed", err)
			}
			defer func() { _ = store.Close() }()
			reg = store
		}

		// Resimulation holds mutable engine state, so every clip gets a
		// fresh engine from this factory.
		newEngine := func() contract.PhysicsEngine {
			return physics.NewPDEngine(physics.Options{
				Kp:           cfg.Kp,
				Kd:           cfg.Kd,
				MaxSubstep:   cfg.MaxSubstep,
				MaxRootDrift: cfg.MaxRootDrift,
			})
		}

		if err := core.ExecuteConvert(rootCtx, cfg, newEngine, reg); err != nil {
			contract.LogFatal("Conversion failed", err)
		}
	},
}
