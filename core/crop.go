// Package core implements the motion conversion pipeline stages:
// cropping, arms-only neutralization, physics resimulation, resampling,
// and the end-to-end conversion drivers.
package core

import (
	"fmt"

	"github.com/motionforge/motionforge/core/algo"
	"github.com/motionforge/motionforge/schema"
)

// Crop truncates a clip to the given time window. Window bounds resolve
// to the nearest boundary frames (lower bound for start, upper bound
// for end, both inclusive); the output is re-based so the first retained
// frame sits at time zero. The input clip is never modified.
func Crop(clip *schema.MotionClip, spec schema.CropSpec) (*schema.MotionClip, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	frameRate := clip.FrameRate
	if frameRate <= 0 {
		frameRate = spec.FPS
	}
	if frameRate <= 0 {
		return nil, fmt.Errorf("%w: clip has no frame rate and no override was given", schema.ErrRange)
	}

	ts := clip.Timestamps
	if len(ts) == 0 {
		return nil, fmt.Errorf("%w: clip has no frames", schema.ErrRange)
	}
	if spec.StartTime > ts[len(ts)-1] {
		return nil, fmt.Errorf("%w: start time %.3fs is beyond the clip end %.3fs",
			schema.ErrRange, spec.StartTime, ts[len(ts)-1])
	}

	startIdx := algo.LowerIndex(ts, spec.StartTime)
	endIdx := algo.UpperIndex(ts, spec.EndTime)
	if endIdx < startIdx {
		return nil, fmt.Errorf("%w: window [%.3fs, %.3fs] contains no frames",
			schema.ErrRange, spec.StartTime, spec.EndTime)
	}

	n := endIdx - startIdx + 1
	out := &schema.MotionClip{
		FrameRate:  frameRate,
		Timestamps: make([]float64, n),
		Frames:     make([]schema.Frame, n),
	}
	base := ts[startIdx]
	for i := 0; i < n; i++ {
		out.Timestamps[i] = ts[startIdx+i] - base
		out.Frames[i] = clip.Frames[startIdx+i].Clone()
	}
	return out, nil
}
