// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/motionforge/motionforge/schema"
)

// StepResult is the engine state read back after one tracking step.
type StepResult struct {
	RootPosition    schema.Vec3
	RootOrientation schema.Quat
	JointAngles     []float64

	// RootVelocity is linear (3) plus angular (3).
	RootVelocity    []float64
	JointVelocities []float64
}

// PhysicsEngine is the rigid-body simulation collaborator. The engine
// holds a single mutable simulation state: steps must happen in order
// and never concurrently. Use one engine instance per clip conversion.
type PhysicsEngine interface {
	// LoadSkeleton initializes the engine for the given skeleton.
	// Failure means the engine is unusable for this conversion.
	LoadSkeleton(ctx context.Context, skel *schema.Skeleton) error

	// SetState overwrites the simulation state with the frame's pose
	// and zero velocity.
	SetState(ctx context.Context, frame schema.Frame) error

	// StepTracking advances the simulation by dt seconds while tracking
	// the target frame's root pose and joint angles, sub-stepping
	// internally as its stability constraints require. The returned
	// state is the integrated result, not the commanded target.
	StepTracking(ctx context.Context, target schema.Frame, dt float64) (*StepResult, error)

	// Close releases engine resources.
	Close() error
}

// Registry is the artifact registry collaborator. Retry policy for
// transient failures lives behind this interface, not in the pipeline.
type Registry interface {
	// Upload stores a named binary artifact and returns its version id.
	// The artifact is passed alongside its encoded bytes so the
	// registry can index frame counts and provenance without decoding.
	Upload(ctx context.Context, name string, blob []byte, art *schema.Artifact) (string, error)

	// List returns all stored artifact versions, newest first.
	List(ctx context.Context) ([]schema.ArtifactRecord, error)

	// Status reports backend information and storage totals.
	Status(ctx context.Context) (schema.RegistryStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// Visualizer is the optional 3D preview collaborator. It is a debugging
// aid only; conversion correctness never depends on it.
type Visualizer interface {
	ShowClip(ctx context.Context, clip *schema.MotionClip, skel *schema.Skeleton) error
}
