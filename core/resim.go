package core

import (
	"context"
	"fmt"

	"github.com/motionforge/motionforge/core/algo"
	"github.com/motionforge/motionforge/internal/contract"
	"github.com/motionforge/motionforge/schema"
)

// Resimulate drives the physics engine frame by frame with the clip's
// poses as tracking targets and records the integrated state, which
// yields velocities consistent with mass, inertia and contact rather
// than finite differences of noisy capture data.
//
// The loop is inherently sequential: step k depends on the integrated
// state after step k-1, so frames are never resimulated out of order
// and the engine is never shared across conversions.
func Resimulate(ctx context.Context, clip *schema.MotionClip, skel *schema.Skeleton, eng contract.PhysicsEngine) (*schema.MotionClip, error) {
	if clip.NumFrames() == 0 {
		return nil, fmt.Errorf("%w: clip has no frames", schema.ErrRange)
	}
	if err := clip.CheckSkeleton(skel); err != nil {
		return nil, err
	}

	if err := eng.LoadSkeleton(ctx, skel); err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrEngineUnavailable, err)
	}
	if err := eng.SetState(ctx, clip.Frames[0]); err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrEngineUnavailable, err)
	}

	jointDOF := skel.JointDOF()
	out := &schema.MotionClip{
		FrameRate:  clip.FrameRate,
		Timestamps: append([]float64(nil), clip.Timestamps...),
		Frames:     make([]schema.Frame, clip.NumFrames()),
	}

	// Frame 0 is the initial state: captured pose, zero velocity.
	first := clip.Frames[0].Clone()
	first.RootVelocity = make([]float64, 6)
	first.JointVelocities = make([]float64, jointDOF)
	out.Frames[0] = first

	for k := 1; k < clip.NumFrames(); k++ {
		dt := clip.Timestamps[k] - clip.Timestamps[k-1]
		res, err := eng.StepTracking(ctx, clip.Frames[k], dt)
		if err != nil {
			return nil, fmt.Errorf("resimulation aborted at frame %d: %w", k, err)
		}
		if !stepFinite(res) {
			return nil, fmt.Errorf("%w: engine returned non-finite state at frame %d", schema.ErrSimulationDiverged, k)
		}

		// The commanded target is discarded; the simulated state is
		// authoritative.
		out.Frames[k] = schema.Frame{
			RootPosition:    res.RootPosition,
			RootOrientation: res.RootOrientation,
			JointAngles:     append([]float64(nil), res.JointAngles...),
			RootVelocity:    append([]float64(nil), res.RootVelocity...),
			JointVelocities: append([]float64(nil), res.JointVelocities...),
		}
	}
	return out, nil
}

// stepFinite verifies every component of the engine readback.
func stepFinite(res *contract.StepResult) bool {
	if !algo.AllFinite(res.RootPosition[0], res.RootPosition[1], res.RootPosition[2]) {
		return false
	}
	if !algo.AllFinite(res.RootOrientation.X, res.RootOrientation.Y, res.RootOrientation.Z, res.RootOrientation.W) {
		return false
	}
	return algo.SliceFinite(res.JointAngles) &&
		algo.SliceFinite(res.RootVelocity) &&
		algo.SliceFinite(res.JointVelocities)
}
