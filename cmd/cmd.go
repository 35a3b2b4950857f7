// Package cmd defines the command-line interface for motionforge.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/motionforge/motionforge/internal/contract"
	"github.com/motionforge/motionforge/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(cropCmd)
	rootCmd.AddCommand(armsonlyCmd)
	rootCmd.AddCommand(resampleCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the registry subcommands to the parent registry command
	registryCmd.AddCommand(registryStatusCmd)
	registryCmd.AddCommand(registryListCmd)
	registryCmd.AddCommand(registryClearCmd)
	registryCmd.AddCommand(registryMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Float64P("start", "s", 0, "Crop window start in seconds")
	rootCmd.PersistentFlags().Float64P("end", "e", contract.DefaultCropEnd, "Crop window end in seconds (default keeps the whole clip)")
	rootCmd.PersistentFlags().Float64("input-fps", schema.DefaultInputFPS, "Capture frame rate for recordings without a timestamp column")
	rootCmd.PersistentFlags().Float64("output-fps", schema.DefaultOutputFPS, "Artifact frame rate after resampling")
	rootCmd.PersistentFlags().StringP("output-file", "o", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("registry-backend", string(schema.SQLiteBackend), "Registry backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("registry-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().Float64("kp", contract.DefaultKp, "Tracking controller proportional gain")
	rootCmd.PersistentFlags().Float64("kd", contract.DefaultKd, "Tracking controller derivative gain")
	rootCmd.PersistentFlags().Float64("max-substep", contract.DefaultMaxSubstep, "Upper bound on the physics integration substep in seconds")
	rootCmd.PersistentFlags().Float64("max-root-drift", contract.DefaultMaxRootDrift, "Root position error in meters before the simulation is declared diverged")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of convertCmd to Viper
	convertCmd.Flags().StringP("name", "n", "", "Artifact name in the registry (defaults to the input basename)")
	convertCmd.Flags().Bool("publish", false, "Publish the artifact to the registry")
	if err := viper.BindPFlags(convertCmd.Flags()); err != nil {
		contract.LogFatal("Error binding convert flags", err)
	}

	// Bind all flags of armsonlyCmd to Viper
	armsonlyCmd.Flags().Bool("keep-root", false, "Keep the captured root trajectory instead of pinning the standing pose")
	if err := viper.BindPFlags(armsonlyCmd.Flags()); err != nil {
		contract.LogFatal("Error binding armsonly flags", err)
	}

	// Bind all flags of registryMigrateCmd to Viper
	registryMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(registryMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding registry migrate flags", err)
	}
}
