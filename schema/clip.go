package schema

import "fmt"

// Vec3 is a 3D vector.
type Vec3 [3]float64

// Quat is a rotation quaternion stored in xyzw order, matching the
// capture CSV column layout.
type Quat struct {
	X, Y, Z, W float64
}

// IdentityQuat returns the identity rotation.
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// Frame is one sample of the motion: root pose plus actuated joint
// angles. Velocity fields are nil after ingestion and are populated
// only by resimulation, never by finite differencing of the capture.
type Frame struct {
	RootPosition    Vec3
	RootOrientation Quat
	JointAngles     []float64

	// RootVelocity is linear (3) plus angular (3) root velocity.
	RootVelocity []float64
	// JointVelocities has one entry per actuated DOF.
	JointVelocities []float64
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	out := f
	out.JointAngles = append([]float64(nil), f.JointAngles...)
	if f.RootVelocity != nil {
		out.RootVelocity = append([]float64(nil), f.RootVelocity...)
	}
	if f.JointVelocities != nil {
		out.JointVelocities = append([]float64(nil), f.JointVelocities...)
	}
	return out
}

// HasVelocities reports whether the resimulator has populated both
// velocity fields.
func (f Frame) HasVelocities() bool {
	return f.RootVelocity != nil && f.JointVelocities != nil
}

// MotionClip is a complete motion recording: a time-ordered pose
// sequence at a nominal frame rate. Transforms never mutate a clip in
// place; each stage returns a fresh clip and leaves its input intact.
type MotionClip struct {
	FrameRate  float64   // Nominal frames per second, positive
	Timestamps []float64 // Strictly increasing, seconds, one per frame
	Frames     []Frame
}

// NumFrames returns the frame count.
func (c *MotionClip) NumFrames() int {
	return len(c.Frames)
}

// Duration returns the time span covered by the clip in seconds.
func (c *MotionClip) Duration() float64 {
	if len(c.Timestamps) < 2 {
		return 0
	}
	return c.Timestamps[len(c.Timestamps)-1] - c.Timestamps[0]
}

// HasVelocities reports whether every frame carries velocity data.
func (c *MotionClip) HasVelocities() bool {
	if len(c.Frames) == 0 {
		return false
	}
	for _, f := range c.Frames {
		if !f.HasVelocities() {
			return false
		}
	}
	return true
}

// CheckSkeleton verifies that every frame matches the skeleton's
// actuated DOF count.
func (c *MotionClip) CheckSkeleton(skel *Skeleton) error {
	want := skel.JointDOF()
	for i, f := range c.Frames {
		if len(f.JointAngles) != want {
			return fmt.Errorf("%w: frame %d has %d joint angles, skeleton %s expects %d",
				ErrSchemaMismatch, i, len(f.JointAngles), skel.ID, want)
		}
	}
	return nil
}

// CropSpec is a time window to retain. FPS is consulted only when the
// clip carries no usable frame-rate metadata of its own.
type CropSpec struct {
	StartTime float64
	EndTime   float64
	FPS       float64
}

// Validate checks the window bounds.
func (s CropSpec) Validate() error {
	if s.StartTime >= s.EndTime {
		return fmt.Errorf("%w: start time %.3fs must be before end time %.3fs", ErrRange, s.StartTime, s.EndTime)
	}
	return nil
}
