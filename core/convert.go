package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/motionforge/motionforge/internal/artifact"
	"github.com/motionforge/motionforge/internal/contract"
	"github.com/motionforge/motionforge/internal/ingest"
	"github.com/motionforge/motionforge/internal/logger"
	"github.com/motionforge/motionforge/internal/outwriter"
	"github.com/motionforge/motionforge/schema"
)

// EngineFactory builds a fresh physics engine. The resimulation loop
// holds mutable simulation state, so each clip conversion gets its own
// engine instance.
type EngineFactory func() contract.PhysicsEngine

// ExecuteConvert runs the full pipeline for every input file: ingest,
// crop, resimulate, resample, serialize, then write and/or publish.
// One failed input does not stop the rest; the error reports how many
// inputs failed.
func ExecuteConvert(ctx context.Context, cfg *contract.Config, newEngine EngineFactory, reg contract.Registry) error {
	skel := schema.G1Skeleton()

	var failed int
	for _, path := range cfg.InputFiles {
		start := time.Now()
		if err := convertOne(ctx, cfg, path, skel, newEngine, reg); err != nil {
			contract.LogWarn(fmt.Sprintf("Conversion of %s failed", path), err)
			failed++
			continue
		}
		logger.Info("converted", "input", path, "elapsed", time.Since(start).Round(time.Millisecond))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d input(s) failed to convert", failed, len(cfg.InputFiles))
	}
	return nil
}

// convertOne converts a single recording into an artifact.
func convertOne(ctx context.Context, cfg *contract.Config, path string, skel *schema.Skeleton, newEngine EngineFactory, reg contract.Registry) error {
	clip, err := ingest.ReadMotionCSV(path, skel, cfg.Crop.FPS)
	if err != nil {
		return err
	}
	logger.Debug("ingested recording", "input", path, "frames", clip.NumFrames(), "rate", clip.FrameRate)

	cropped, err := Crop(clip, cfg.Crop)
	if err != nil {
		return err
	}

	eng := newEngine()
	defer func() { _ = eng.Close() }()
	resimmed, err := Resimulate(ctx, cropped, skel, eng)
	if err != nil {
		return err
	}
	logger.Debug("resimulated", "input", path, "frames", resimmed.NumFrames())

	resampled, err := Resample(resimmed, cfg.OutputFPS)
	if err != nil {
		return err
	}

	art, err := artifact.Serialize(resampled, schema.ArtifactMeta{
		SourceName:    filepath.Base(path),
		SchemaID:      skel.ID,
		SchemaVersion: skel.Version,
		CropStart:     cfg.Crop.StartTime,
		CropEnd:       cfg.Crop.EndTime,
		ArmsOnly:      false,
		CreatedAt:     time.Now().UTC(),
		ToolVersion:   contract.ToolVersion,
	})
	if err != nil {
		return err
	}

	outPath := artifactPath(cfg, path)
	if outPath != "" {
		if err := artifact.WriteFile(outPath, art); err != nil {
			return err
		}
		logger.Info("wrote artifact", "output", outPath, "frames", art.NumFrames())
	}

	if cfg.Publish {
		name := artifactName(cfg, path)
		versionID, err := artifact.Publish(ctx, art, name, reg)
		if err != nil {
			return err
		}
		logger.Info("published artifact", "name", name, "version", versionID)
	}
	return nil
}

// ExecuteCrop crops a single recording and writes it back as CSV.
func ExecuteCrop(ctx context.Context, cfg *contract.Config) error {
	return transformOne(cfg, func(clip *schema.MotionClip, skel *schema.Skeleton) (*schema.MotionClip, error) {
		return Crop(clip, cfg.Crop)
	})
}

// ExecuteArmsOnly applies the arms-only transform and writes the result
// as CSV.
func ExecuteArmsOnly(ctx context.Context, cfg *contract.Config) error {
	return transformOne(cfg, func(clip *schema.MotionClip, skel *schema.Skeleton) (*schema.MotionClip, error) {
		return ArmsOnly(clip, cfg.Crop, skel, skel.ArmsMask(), cfg.KeepRoot)
	})
}

// ExecuteResample resamples a recording to the output rate and writes
// it as CSV.
func ExecuteResample(ctx context.Context, cfg *contract.Config) error {
	return transformOne(cfg, func(clip *schema.MotionClip, skel *schema.Skeleton) (*schema.MotionClip, error) {
		return Resample(clip, cfg.OutputFPS)
	})
}

// ExecuteInspect prints a summary of each input recording.
func ExecuteInspect(ctx context.Context, cfg *contract.Config) error {
	skel := schema.G1Skeleton()
	var failed int
	for _, path := range cfg.InputFiles {
		clip, err := ingest.ReadMotionCSV(path, skel, cfg.Crop.FPS)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Inspection of %s failed", path), err)
			failed++
			continue
		}
		if err := outwriter.PrintClipSummary(filepath.Base(path), clip, skel, cfg); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d input(s) failed to inspect", failed, len(cfg.InputFiles))
	}
	return nil
}

// transformOne runs a clip transform over every input and writes each
// result as CSV next to the configured output path.
func transformOne(cfg *contract.Config, transform func(*schema.MotionClip, *schema.Skeleton) (*schema.MotionClip, error)) error {
	if cfg.OutputFile == "" {
		return errors.New("an output file is required for CSV transforms")
	}
	skel := schema.G1Skeleton()

	var failed int
	for _, path := range cfg.InputFiles {
		clip, err := ingest.ReadMotionCSV(path, skel, cfg.Crop.FPS)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Transform of %s failed", path), err)
			failed++
			continue
		}
		out, err := transform(clip, skel)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Transform of %s failed", path), err)
			failed++
			continue
		}
		outPath := transformOutputPath(cfg.OutputFile, path, len(cfg.InputFiles) > 1)
		if err := ingest.WriteMotionCSV(outPath, out); err != nil {
			return err
		}
		logger.Info("wrote clip", "input", path, "output", outPath, "frames", out.NumFrames())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d input(s) failed to transform", failed, len(cfg.InputFiles))
	}
	return nil
}

// artifactPath resolves where the local Parquet copy goes. Empty when
// the user publishes without keeping a local file.
func artifactPath(cfg *contract.Config, inputPath string) string {
	if cfg.OutputFile != "" {
		if len(cfg.InputFiles) > 1 {
			return transformOutputPath(cfg.OutputFile, inputPath, true)
		}
		return cfg.OutputFile
	}
	if cfg.Publish {
		return ""
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return base + ".parquet"
}

// artifactName resolves the registry name for an input. The explicit
// name wins for single-input runs; batches always derive names from
// the inputs so versions stay distinguishable.
func artifactName(cfg *contract.Config, inputPath string) string {
	if cfg.Name != "" && len(cfg.InputFiles) == 1 {
		return cfg.Name
	}
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// transformOutputPath derives a per-input output path. With one input
// the configured path is used as-is; with many, each output keeps its
// input basename under the configured path's directory and extension.
func transformOutputPath(outputFile, inputPath string, multi bool) string {
	if !multi {
		return outputFile
	}
	dir := filepath.Dir(outputFile)
	ext := filepath.Ext(outputFile)
	if ext == "" {
		ext = filepath.Ext(inputPath)
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(dir, base+ext)
}
