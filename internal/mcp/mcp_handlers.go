package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/motionforge/motionforge/core"
	"github.com/motionforge/motionforge/internal/contract"
	"github.com/motionforge/motionforge/internal/ingest"
	"github.com/motionforge/motionforge/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	reg     contract.Registry
}

// defaultFPS falls back from the server's base configuration to the
// capture pipeline default.
func (h *toolHandler) defaultFPS() float64 {
	if h.baseCfg != nil && h.baseCfg.Crop.FPS > 0 {
		return h.baseCfg.Crop.FPS
	}
	return schema.DefaultInputFPS
}

// clipSummary is the JSON payload for inspect_motion.
type clipSummary struct {
	Path       string           `json:"path"`
	Skeleton   string           `json:"skeleton"`
	Frames     int              `json:"frames"`
	FrameRate  float64          `json:"frame_rate"`
	Duration   float64          `json:"duration_seconds"`
	Velocities bool             `json:"velocities"`
	Joints     []jointRangeJSON `json:"joints"`
}

type jointRangeJSON struct {
	Name string  `json:"name"`
	Min  float64 `json:"min_rad"`
	Max  float64 `json:"max_rad"`
}

func (h *toolHandler) handleInspectMotion(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	fps := request.GetFloat("input_fps", h.defaultFPS())

	skel := schema.G1Skeleton()
	clip, err := ingest.ReadMotionCSV(path, skel, fps)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read recording: %v", err)), nil
	}

	summary := clipSummary{
		Path:       path,
		Skeleton:   fmt.Sprintf("%s v%d", skel.ID, skel.Version),
		Frames:     clip.NumFrames(),
		FrameRate:  clip.FrameRate,
		Duration:   clip.Duration(),
		Velocities: clip.HasVelocities(),
	}
	idx := 0
	for _, joint := range skel.Joints {
		if joint.Kind != schema.HingeJoint {
			continue
		}
		lo, hi := clip.Frames[0].JointAngles[idx], clip.Frames[0].JointAngles[idx]
		for _, f := range clip.Frames[1:] {
			v := f.JointAngles[idx]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		summary.Joints = append(summary.Joints, jointRangeJSON{Name: joint.Name, Min: lo, Max: hi})
		idx++
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCropMotion(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	outputPath := request.GetString("output_path", "")
	if path == "" || outputPath == "" {
		return mcp.NewToolResultError("path and output_path are required"), nil
	}
	spec := schema.CropSpec{
		StartTime: request.GetFloat("start", 0),
		EndTime:   request.GetFloat("end", 0),
		FPS:       request.GetFloat("input_fps", h.defaultFPS()),
	}

	skel := schema.G1Skeleton()
	clip, err := ingest.ReadMotionCSV(path, skel, spec.FPS)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read recording: %v", err)), nil
	}

	cropped, err := core.Crop(clip, spec)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("crop failed: %v", err)), nil
	}
	if err := ingest.WriteMotionCSV(outputPath, cropped); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to write output: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(map[string]any{
		"output":           outputPath,
		"frames":           cropped.NumFrames(),
		"duration_seconds": cropped.Duration(),
		"frame_rate":       cropped.FrameRate,
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListArtifacts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.reg == nil {
		return mcp.NewToolResultError("registry is not configured"), nil
	}
	records, err := h.reg.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}
	jsonData, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRegistryStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.reg == nil {
		return mcp.NewToolResultError("registry is not configured"), nil
	}
	status, err := h.reg.Status(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status query failed: %v", err)), nil
	}
	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
