package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/motionforge/motionforge/internal/contract"
	"github.com/motionforge/motionforge/internal/mcp"
	"github.com/motionforge/motionforge/internal/regstore"
	"github.com/motionforge/motionforge/schema"
)

// mcpCmd starts the MCP server.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Model Context Protocol server over stdio",
	Long: `Expose motion inspection, cropping and registry queries as MCP tools
over stdio, for use by AI assistants.

Available tools:
  inspect_motion  - Summarize a motion CSV recording
  crop_motion     - Crop a recording to a time window
  list_artifacts  - List stored artifact versions
  registry_status - Report registry backend totals

Example client configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "motionforge": {
        "command": "motionforge",
        "args": ["mcp"]
      }
    }
  }`,
	PreRunE: registrySetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		baseCfg := &contract.Config{
			Crop:      schema.CropSpec{FPS: viper.GetFloat64("input-fps")},
			OutputFPS: viper.GetFloat64("output-fps"),
		}

		var reg contract.Registry
		if cfg.RegistryBackend != schema.NoneBackend {
			store, err := regstore.NewStore(rootCtx, cfg.RegistryBackend, cfg.RegistryConnect)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			reg = store
		}

		return mcp.StartMCPServer(rootCtx, baseCfg, reg)
	},
}
