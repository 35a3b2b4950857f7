// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/motionforge/motionforge/internal/contract"
)

// NewMCPServer initializes and configures the Motionforge MCP server
// without starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, reg contract.Registry) *server.MCPServer {
	s := server.NewMCPServer(
		"Motionforge Conversion Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		reg:     reg,
	}

	// --- 1. Tool: inspect_motion ---
	s.AddTool(mcp.NewTool("inspect_motion",
		mcp.WithDescription("Inspect a motion capture CSV recording: frame count, duration, frame rate and per-joint angle ranges."),
		mcp.WithString("path", mcp.Description("Path to the motion CSV file."), mcp.Required()),
		mcp.WithNumber("input_fps", mcp.Description("Capture frame rate for recordings without a timestamp column. Defaults to 30.")),
	), h.handleInspectMotion)

	// --- 2. Tool: crop_motion ---
	s.AddTool(mcp.NewTool("crop_motion",
		mcp.WithDescription("Crop a motion CSV recording to a time window and write the result as CSV."),
		mcp.WithString("path", mcp.Description("Path to the motion CSV file."), mcp.Required()),
		mcp.WithNumber("start", mcp.Description("Window start in seconds."), mcp.Required()),
		mcp.WithNumber("end", mcp.Description("Window end in seconds."), mcp.Required()),
		mcp.WithString("output_path", mcp.Description("Where to write the cropped CSV."), mcp.Required()),
		mcp.WithNumber("input_fps", mcp.Description("Capture frame rate for recordings without a timestamp column. Defaults to 30.")),
	), h.handleCropMotion)

	// --- 3. Tool: list_artifacts ---
	s.AddTool(mcp.NewTool("list_artifacts",
		mcp.WithDescription("List all artifact versions stored in the registry, newest first."),
	), h.handleListArtifacts)

	// --- 4. Tool: registry_status ---
	s.AddTool(mcp.NewTool("registry_status",
		mcp.WithDescription("Report registry backend information and storage totals."),
	), h.handleRegistryStatus)

	return s
}

// StartMCPServer starts the Motionforge MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, reg contract.Registry) error {
	s := NewMCPServer(baseCfg, reg)
	return server.ServeStdio(s)
}
