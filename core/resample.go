package core

import (
	"fmt"
	"math"

	"github.com/motionforge/motionforge/core/algo"
	"github.com/motionforge/motionforge/schema"
)

// Resample converts a clip to a uniform sampling at outputFPS using
// time-aligned interpolation: linear for root position, joint angles
// and all velocity fields, spherical (shortest arc) for orientation.
// The output grid spans [0, lastInputTimestamp]; no extrapolation is
// ever performed, so the frame count is floor(duration*outputFPS)+1.
func Resample(clip *schema.MotionClip, outputFPS float64) (*schema.MotionClip, error) {
	if outputFPS <= 0 {
		return nil, fmt.Errorf("%w: output frame rate must be positive, got %v", schema.ErrRange, outputFPS)
	}
	if clip.NumFrames() < 2 {
		return nil, fmt.Errorf("%w: resampling needs at least 2 frames, got %d", schema.ErrRange, clip.NumFrames())
	}

	last := clip.Timestamps[len(clip.Timestamps)-1]
	n := int(math.Floor(last*outputFPS)) + 1

	out := &schema.MotionClip{
		FrameRate:  outputFPS,
		Timestamps: make([]float64, n),
		Frames:     make([]schema.Frame, n),
	}

	for k := 0; k < n; k++ {
		t := float64(k) / outputFPS
		if t > last {
			t = last
		}
		out.Timestamps[k] = t

		i, j, alpha := algo.Bracket(clip.Timestamps, t)
		a, b := clip.Frames[i], clip.Frames[j]

		f := schema.Frame{
			RootPosition:    algo.LerpVec3(a.RootPosition, b.RootPosition, alpha),
			RootOrientation: algo.QuatSlerp(a.RootOrientation, b.RootOrientation, alpha),
			JointAngles:     algo.LerpSlice(a.JointAngles, b.JointAngles, alpha),
		}
		if a.JointVelocities != nil && b.JointVelocities != nil {
			f.JointVelocities = algo.LerpSlice(a.JointVelocities, b.JointVelocities, alpha)
		}
		if a.RootVelocity != nil && b.RootVelocity != nil {
			f.RootVelocity = algo.LerpSlice(a.RootVelocity, b.RootVelocity, alpha)
		}
		out.Frames[k] = f
	}
	return out, nil
}
